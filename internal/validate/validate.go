// Package validate provides struct validation with per-field error messages.
package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError is one violated constraint, keyed by the field's json name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	once  sync.Once
	v     *validator.Validate
	trans ut.Translator
)

func get() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ = uni.GetTranslator("en")

		v = validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)
	})
	return v, trans
}

// Struct validates s and returns one FieldError per violated constraint,
// or nil when s is valid. All violations are reported, not just the first.
func Struct(s interface{}) []FieldError {
	val, tr := get()
	err := val.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(tr),
		})
	}
	return out
}
