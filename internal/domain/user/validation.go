package user

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ValidationError is a form problem caught before any request is made
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// fieldLabels turns json field names into the words shown to the user
var fieldLabels = map[string]string{
	"username":        "Username",
	"password":        "Password",
	"confirmPassword": "Confirm password",
	"address":         "Address",
}

// ValidateRegistration checks the registration form, reporting only the first problem
func ValidateRegistration(form RegisterForm) error {
	return firstProblem(validate.Struct(form))
}

// ValidateLogin checks the login form, reporting only the first problem
func ValidateLogin(form LoginForm) error {
	return firstProblem(validate.Struct(form))
}

func firstProblem(err error) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	return &ValidationError{Field: fe.Field(), Message: validationMessage(fe)}
}

func validationMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is a required field"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	case "eqfield":
		return "Passwords do not match"
	}
	return label + " is invalid"
}
