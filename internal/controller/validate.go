package controller

import (
	"reflect"
	"strings"

	"github.com/Pablo-Mora/gestion-activos/internal/models"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries field-level messages back to the form. It blocks
// submission and never reaches the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+" "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var fieldValidator = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the JSON field names the forms use.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func structErrors(err error) map[string]string {
	fields := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = err.Error()
		return fields
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "is required"
		case "max":
			fields[fe.Field()] = "is too long"
		default:
			fields[fe.Field()] = "is invalid"
		}
	}
	return fields
}

// ValidateEmployee enforces the employee form's required fields.
func ValidateEmployee(e models.Employee, _ bool) *ValidationError {
	if err := fieldValidator.Struct(e); err != nil {
		return &ValidationError{Fields: structErrors(err)}
	}
	return nil
}

// ValidateHardware enforces the hardware form's required fields.
func ValidateHardware(h models.HardwareItem, _ bool) *ValidationError {
	if err := fieldValidator.Struct(h); err != nil {
		return &ValidationError{Fields: structErrors(err)}
	}
	return nil
}

// ValidateLicense enforces the license form's required fields.
func ValidateLicense(l models.LicenseItem, _ bool) *ValidationError {
	if err := fieldValidator.Struct(l); err != nil {
		return &ValidationError{Fields: structErrors(err)}
	}
	return nil
}

// ValidateWebAccess enforces the web access form's required fields. The
// password is required on create only; an empty password on update means
// "keep the stored one".
func ValidateWebAccess(w models.WebAccess, create bool) *ValidationError {
	fields := map[string]string{}
	if err := fieldValidator.Struct(w); err != nil {
		fields = structErrors(err)
	}
	if create && strings.TrimSpace(w.AccessPassword) == "" {
		fields["accessPassword"] = "is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
