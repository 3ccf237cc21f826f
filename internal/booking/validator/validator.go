package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"claresys/pkg/logger"
	"claresys/pkg/model"
)

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

// DraftValidator produces the field-level guidance shown next to the form.
// The boolean gate for submission is CanSubmit; Validate explains which
// fields keep the gate closed.
type DraftValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewDraftValidator(log *logger.Logger) *DraftValidator {
	v := validator.New()

	log.Info("Booking draft validator initialized successfully")

	return &DraftValidator{
		validate: v,
		logger:   log,
	}
}

func (v *DraftValidator) Validate(d *Draft, catalog []model.Classroom) error {
	if err := v.validate.Struct(d); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	var validationErrors ValidationErrors

	if !catalogContains(catalog, d.ClassroomID) {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "ClassroomID",
			Message: "classroom is not in the loaded catalog",
		})
	}

	if !IsWeekday(d.Date) {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "Date",
			Message: "bookings are only accepted Monday through Friday",
		})
	}

	if !IsWithinBusinessWindow(d.StartHour, d.StartMinute) {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "StartTime",
			Message: fmt.Sprintf("start must be between %02d:00 and %02d:00", BusinessOpenHour, BusinessCloseHour),
		})
	}

	if !IsWithinBusinessWindow(d.EndHour, d.EndMinute) {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "EndTime",
			Message: fmt.Sprintf("end must be between %02d:00 and %02d:00", BusinessOpenHour, BusinessCloseHour),
		})
	}

	if !IsOrdered(d.Date, d.StartHour, d.StartMinute, d.EndHour, d.EndMinute) {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "EndTime",
			Message: "end_time must be after start_time",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

func (v *DraftValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
