package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	sharederrors "github.com/itchan-dev/chatkit/shared/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report wire names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "media_url", func(fl validator.FieldLevel) bool {
		return MediaURL(fl.Field().String()) == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("can't register validation " + tag + ": " + err.Error())
	}
}

// Struct validates s against its `validate` tags and reports the first
// failing field as a *errors.ValidationError.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &sharederrors.ValidationError{
			Field:   trimRoot(fe.Namespace()),
			Message: describe(fe),
		}
	}
	return &sharederrors.ValidationError{Message: err.Error()}
}

// trimRoot drops the leading struct type name from a namespace like "FileComponent.file.url".
func trimRoot(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "media_url":
		return "must be attachment://<name>.<ext> or an http(s) url"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
