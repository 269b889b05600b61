package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"garageportal/pkg/logger"
	"garageportal/pkg/model"
)

var rePlate = regexp.MustCompile(`^[A-Z]{3}-\d{4}$`)

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

type VehicleValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewVehicleValidator(log *logger.Logger) *VehicleValidator {
	v := validator.New()

	if err := v.RegisterValidation("license_plate", validateLicensePlate); err != nil {
		log.Fatal("Failed to register 'license_plate' validator", "error", err)
	}

	return &VehicleValidator{
		validate: v,
		logger:   log,
	}
}

func validateLicensePlate(fl validator.FieldLevel) bool {
	return rePlate.MatchString(strings.TrimSpace(fl.Field().String()))
}

func (vv *VehicleValidator) Validate(in *model.VehicleInput) error {
	if err := vv.validate.Struct(in); err != nil {
		var invalidErr *validator.InvalidValidationError
		if errors.As(err, &invalidErr) {
			return ValidationErrors{{Field: "input", Message: "invalid vehicle payload"}}
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
	return nil
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min", "max":
		return fmt.Sprintf("length must respect %s=%s", fe.Tag(), fe.Param())
	case "license_plate":
		return "must match the AAA-9999 plate format"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
