package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"garageportal/pkg/logger"
	"garageportal/pkg/model"
)

// OverlapMessage is surfaced verbatim to the manager when a new slot
// collides with an existing one.
const OverlapMessage = "The time slot overlaps with an existing slot. Please select a different time."

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

type SlotValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewSlotValidator(log *logger.Logger) *SlotValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock_time", validateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}

	return &SlotValidator{
		validate: v,
		logger:   log,
	}
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", strings.TrimSpace(fl.Field().String()))
	return err == nil
}

// Validate checks a slot payload before any network call is made.
func (sv *SlotValidator) Validate(in *model.SlotInput) error {
	if err := sv.validate.Struct(in); err != nil {
		var invalidErr *validator.InvalidValidationError
		if errors.As(err, &invalidErr) {
			return ValidationErrors{{Field: "input", Message: "invalid slot payload"}}
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

	start, end, err := parseWindow(in.StartTime, in.EndTime)
	if err != nil {
		return ValidationErrors{{Field: "startTime", Message: err.Error()}}
	}
	if !start.Before(end) {
		return ValidationErrors{{Field: "endTime", Message: "end time must be after start time"}}
	}

	return nil
}

// CheckOverlap rejects a [start,end) window that intersects another slot on
// the same date. The slot being edited is excluded by ID.
func (sv *SlotValidator) CheckOverlap(existing []model.ServiceSlot, in *model.SlotInput, excludeID int) error {
	start, end, err := parseWindow(in.StartTime, in.EndTime)
	if err != nil {
		return ValidationErrors{{Field: "startTime", Message: err.Error()}}
	}

	for _, slot := range existing {
		if slot.ServiceSlotID == excludeID || slot.ServiceDate != in.ServiceDate {
			continue
		}

		otherStart, otherEnd, err := parseWindow(slot.StartTime, slot.EndTime)
		if err != nil {
			sv.logger.Warn("Skipping slot with unparseable times in overlap check",
				"service_slot_id", slot.ServiceSlotID,
				"start_time", slot.StartTime,
				"end_time", slot.EndTime,
			)
			continue
		}

		if start.Before(otherEnd) && otherStart.Before(end) {
			return ValidationErrors{{Field: "startTime", Message: OverlapMessage}}
		}
	}

	return nil
}

func parseWindow(startTime, endTime string) (time.Time, time.Time, error) {
	start, err := time.Parse("15:04", NormalizeClock(startTime))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %q", startTime)
	}
	end, err := time.Parse("15:04", NormalizeClock(endTime))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time %q", endTime)
	}
	return start, end, nil
}

// NormalizeClock reduces HH:MM:SS times the backend returns to the HH:MM
// the portal renders and compares.
func NormalizeClock(t string) string {
	t = strings.TrimSpace(t)
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "clock_time":
		return "must be a time in HH:MM format"
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
