// internal/validation/validation.go
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"login-form-server/internal/domain/form"
)

// Wrapper adapts go-playground/validator to the Validate(any) error
// shape the domain packages depend on. The tags loginemail and
// loginpassword apply the login field rules.
type Wrapper struct {
	validate *validator.Validate
}

func New() *Wrapper {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	mustRegister(v, "loginemail", form.ValidEmail)
	mustRegister(v, "loginpassword", form.ValidPassword)
	return &Wrapper{validate: v}
}

func mustRegister(v *validator.Validate, tag string, rule form.ValidateFunc) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return rule(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// Validate checks i against its struct tags. Failures are flattened into
// a single readable error.
func (w *Wrapper) Validate(i interface{}) error {
	err := w.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "loginemail":
		return fe.Field() + " must contain @"
	case "loginpassword":
		return fe.Field() + " must be longer than 3 characters"
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
