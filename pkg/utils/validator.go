package utils

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields under their JSON names and adds the notblank
// rule, which rejects whitespace-only strings.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() != reflect.String || strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidateStruct returns field name to message, or nil when data is valid.
func ValidateStruct(data any) map[string]string {
	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(data); !errors.As(err, &fieldErrs) {
		return nil
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Minimum length is " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice {
			return "At most " + fe.Param() + " items"
		}
		return "Maximum length is " + fe.Param()
	case "gte":
		return "Must be at least " + fe.Param()
	case "lte":
		return "Must be at most " + fe.Param()
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url":
		return "Must be a valid URL"
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	}
	return fmt.Sprintf("Invalid %s field", fe.Field())
}

// FormatValidationErrors joins the messages into one line ordered by field.
func FormatValidationErrors(errs map[string]string) string {
	parts := make([]string, 0, len(errs))
	for _, field := range slices.Sorted(maps.Keys(errs)) {
		parts = append(parts, field+": "+errs[field])
	}
	return strings.Join(parts, "; ")
}
