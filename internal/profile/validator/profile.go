package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"garageportal/pkg/logger"
	"garageportal/pkg/model"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ProfileValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewProfileValidator(log *logger.Logger) *ProfileValidator {
	v := validator.New()

	if err := v.RegisterValidation("phone_number", validatePhoneNumber); err != nil {
		log.Fatal("Failed to register 'phone_number' validator", "error", err)
	}
	if err := v.RegisterValidation("signup_password", validatePassword); err != nil {
		log.Fatal("Failed to register 'signup_password' validator", "error", err)
	}

	return &ProfileValidator{
		validate: v,
		logger:   log,
	}
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return lower && upper && digit && special
}

// ValidateUpdate checks a profile edit after sanitization, so a phone the
// sanitizer could not normalize arrives here empty and fails required.
func (pv *ProfileValidator) ValidateUpdate(in *model.OwnerProfileUpdate) error {
	return pv.check(in)
}

func (pv *ProfileValidator) ValidatePasswordReset(in *model.PasswordReset) error {
	return pv.check(in)
}

func (pv *ProfileValidator) check(in any) error {
	err := pv.validate.Struct(in)
	if err == nil {
		return nil
	}

	var invalidErr *validator.InvalidValidationError
	if errors.As(err, &invalidErr) {
		return ValidationErrors{{Field: "input", Message: "invalid payload"}}
	}

	var verrs ValidationErrors
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			verrs = append(verrs, ValidationError{
				Field:   fe.Field(),
				Message: messageForTag(fe),
			})
		}
	}
	return verrs
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "phone_number":
		return "must be a valid phone number"
	case "signup_password":
		return "must be at least 8 characters and include a lowercase letter, an uppercase letter, a digit and a special character"
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
