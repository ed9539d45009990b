// Package validation wraps go-playground/validator and turns its field errors into
// apperror validation failures with a readable message.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"todo-api/internal/domain/apperror"
	"todo-api/pkg/msg"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names instead of Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns an *apperror.Error of kind Validation on failure.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return apperror.Validation(err.Error())
	}
	return apperror.Validation(describe(fieldErrors[0]))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "email":
		return msg.GetMessage("validation."+fe.Tag(), fe.Field())
	case "min", "max", "oneof":
		return msg.GetMessage("validation."+fe.Tag(), fe.Field(), fe.Param())
	default:
		return msg.GetMessage("validation.invalid", fe.Field())
	}
}

// EchoValidator plugs Struct into echo.Echo.Validator.
type EchoValidator struct{}

func (EchoValidator) Validate(i any) error {
	return Struct(i)
}
