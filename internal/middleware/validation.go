package middleware

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "ossreport/internal/errors"
	"ossreport/pkg/contracts/domain"
)

// Validator checks request DTOs against their validate tags. Error messages
// use the json names of the fields.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the report-specific tags "period" and "dataset"
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("period", isPeriodLabel)
	_ = v.RegisterValidation("dataset", isDatasetKind)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateStruct validates a struct and returns an *errors.APIError listing
// every failed field
func (m *Validator) ValidateStruct(v any) error {
	err := m.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	out := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(out)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "period":
		return fmt.Sprintf("%s must be a period such as TW I, Semester II or Tahunan", field)
	case "dataset":
		return fmt.Sprintf("%s must be registration, permit or project", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isPeriodLabel accepts the labels domain.ParsePeriodSpec understands
func isPeriodLabel(fl validator.FieldLevel) bool {
	_, err := domain.ParsePeriodSpec(fl.Field().String(), 2000)
	return err == nil
}

func isDatasetKind(fl validator.FieldLevel) bool {
	_, err := domain.ParseDatasetKind(fl.Field().String())
	return err == nil
}
