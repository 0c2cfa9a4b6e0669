// Package validation decides whether a submission may be scored and stored.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/mbolis/campus-footprint/footprint"
	"github.com/mbolis/campus-footprint/model"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError collects every rule a submission violates.
type ValidationError struct {
	Fields []FieldError
	errs   *multierror.Error
}

func (e *ValidationError) Error() string {
	return e.errs.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.errs
}

type Validator struct {
	validate *validator.Validate
	factors  footprint.Factors
}

func New(factors footprint.Factors) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, c := range s {
			if c < '0' || c > '9' {
				return false
			}
		}
		return s != ""
	})

	return &Validator{validate: v, factors: factors}
}

// Validate checks in as submitted; callers normalize first if they want
// surrounding whitespace ignored.
func (v *Validator) Validate(in model.SubmissionInput) error {
	var errs *multierror.Error
	var fields []FieldError
	add := func(field, msg string) {
		fe := FieldError{Field: field, Message: msg}
		fields = append(fields, fe)
		errs = multierror.Append(errs, fe)
	}

	err := v.validate.Struct(in)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			add(fieldName(fe), message(fe))
		}
	} else if err != nil {
		return err
	}

	if in.Location != "" && !v.factors.KnownLocation(in.Location) {
		add("location", fmt.Sprintf("unknown location %q", in.Location))
	}
	if in.Location == model.OtherLocation && in.ManualDistance == 0 {
		add("manual_distance", "is required when location is Other")
	}

	if errs == nil {
		return nil
	}
	errs.ErrorFormat = formatErrors
	return &ValidationError{Fields: fields, errs: errs}
}

func fieldName(fe validator.FieldError) string {
	// activities[1] -> activities
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i > 0 {
		return name[:i]
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "digits":
		return "must contain digits only"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}

func formatErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return "please fix the required fields: " + strings.Join(msgs, "; ")
}
