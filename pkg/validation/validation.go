package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

const (
	notBlankTag  = "notblank"
	notBlankText = "{0} must not be blank"
	requiredText = "{0} is required"
)

// Validator pairs a validator instance with an English translator so failures can be reported per field.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New builds a Validator using JSON field names in messages.
func New() *Validator {
	validate := validator.New()
	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	registerTranslation(validate, trans, notBlankTag, notBlankText, false)
	registerTranslation(validate, trans, "required", requiredText, true)

	return &Validator{validate: validate, trans: trans}
}

// Engine exposes the underlying validator for custom registrations.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// Struct validates s and converts failures into a VALIDATION_ERROR carrying field details.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := fe.Field()
		if _, exists := details[key]; !exists {
			details[key] = fe.Translate(v.trans)
		}
	}
	return appErrors.WithDetails(appErrors.ErrValidation, "invalid payload", details)
}

// Var validates a single value against tag, naming it field in the error.
func (v *Validator) Var(field string, value interface{}, tag string) error {
	if err := v.validate.Var(value, tag); err != nil {
		var fieldErrs validator.ValidationErrors
		msg := field + " is invalid"
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			msg = field + " " + strings.TrimSpace(fieldErrs[0].Translate(v.trans))
		}
		return appErrors.WithDetails(appErrors.ErrValidation, "invalid "+field, map[string]string{field: msg})
	}
	return nil
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, text string, override bool) {
	_ = validate.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}
