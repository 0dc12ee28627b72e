package validation

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phoneRegexp = regexp.MustCompile(`^1[3-9]\d{9}$`)

// RegisterCustomValidators installs custom validation tags on gin's binding
// engine. Call once at startup before routes are registered.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("cnphone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
}

// TranslateError turns binding failures into per-field messages. Errors that
// are not validator.ValidationErrors fall back to the raw error text.
func TranslateError(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["request"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		if messages := CustomMessage(fe.Field()); messages != nil {
			if msg, ok := messages[fe.Tag()]; ok {
				out[fe.Field()] = msg
				continue
			}
		}
		out[fe.Field()] = fe.Error()
	}

	return out
}
