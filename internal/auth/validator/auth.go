package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"garageportal/pkg/logger"
	"garageportal/pkg/model"
)

// PasswordPolicyMessage is surfaced verbatim when a signup or reset password
// fails the policy.
const PasswordPolicyMessage = "Password must be at least 8 characters and include a lowercase letter, an uppercase letter, a digit and a special character."

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

type AuthValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAuthValidator(log *logger.Logger) *AuthValidator {
	v := validator.New()

	if err := v.RegisterValidation("signup_password", validateSignupPassword); err != nil {
		log.Fatal("Failed to register 'signup_password' validator", "error", err)
	}

	return &AuthValidator{
		validate: v,
		logger:   log,
	}
}

// validateSignupPassword enforces the account password policy: minimum 8
// characters with at least one lower, one upper, one digit and one special
// character.
func validateSignupPassword(fl validator.FieldLevel) bool {
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

func (av *AuthValidator) ValidateCredentials(in *model.Credentials) error {
	return av.check(in)
}

func (av *AuthValidator) ValidateSignup(in *model.SignupInput) error {
	return av.check(in)
}

func (av *AuthValidator) ValidateOTP(in *model.OTPInput) error {
	return av.check(in)
}

func (av *AuthValidator) ValidatePasswordReset(in *model.PasswordReset) error {
	return av.check(in)
}

func (av *AuthValidator) check(in any) error {
	err := av.validate.Struct(in)
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
	case "email":
		return "must be a valid email address"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "signup_password":
		return PasswordPolicyMessage
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
