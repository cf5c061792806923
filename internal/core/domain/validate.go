package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs the struct's validate tags and turns the first failure
// into a ValidationError, using messages keyed by "field.tag".
func validateStruct(v any, messages map[string]string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %T: %w", v, err)
	}

	fe := fieldErrs[0]
	field := fe.Field()
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return NewValidationError(field, msg)
	}
	return NewValidationError(field, fmt.Sprintf("%s is invalid", field))
}
