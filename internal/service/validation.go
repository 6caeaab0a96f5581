package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var basicEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewValidator returns the validator shared by services. Field names in
// errors use the json tag, and "basic_email" applies the loose email check
// of the signup forms.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	if err := validate.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return basicEmailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register basic_email validation: %v", err))
	}
	return validate
}

const (
	msgRequiredFields = "please complete all required fields"
	msgInvalidEmail   = "please enter a valid email"
	msgShortPassword  = "password must be at least 6 characters"
)

// formErrorFrom maps validation failures onto a single FormError. Missing
// fields win over malformed ones so the user fixes blanks first.
func formErrorFrom(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	for _, fieldErr := range validationErrs {
		if fieldErr.Tag() == "required" {
			return &FormError{Field: fieldErr.Field(), Category: FormRequired, Message: msgRequiredFields}
		}
	}

	first := validationErrs[0]
	switch {
	case first.Tag() == "basic_email" || first.Tag() == "email":
		return &FormError{Field: first.Field(), Category: FormEmail, Message: msgInvalidEmail}
	case first.Field() == "password":
		return &FormError{Field: first.Field(), Category: FormPassword, Message: msgShortPassword}
	default:
		return &FormError{Field: first.Field(), Category: FormRequired, Message: msgRequiredFields}
	}
}
