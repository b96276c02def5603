package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"printshop-backend/store"
	"printshop-backend/utils"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation marks caller-correctable input. It is always wrapped with
	// a description of what was wrong.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTransition is returned when an order cannot move to the
	// requested status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return utils.ValidatePhone(fl.Field().String())
	})
	return v
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return validationErr("%v", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return validationErr("%s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fe.Field() + " must contain at least " + fe.Param() + " entry"
		}
		return fe.Field() + " must not be empty"
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "phone":
		return fe.Field() + " is not a valid phone number"
	case "email":
		return fe.Field() + " is not a valid email address"
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
