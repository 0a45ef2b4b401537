package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"blogapp/internal/core/model/response"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so clients can match them to the body.
	Validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

func addCustomTranslations() {
	register := func(tag, text string, params func(fe validator.FieldError) []string) {
		err := Validator.RegisterTranslation(tag, Translator, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, params(fe)...)
			return t
		})

		if err != nil {
			panic(err)
		}
	}

	field := func(fe validator.FieldError) []string { return []string{fe.Field()} }
	withParam := func(fe validator.FieldError) []string { return []string{fe.Field(), fe.Param()} }

	register("required", "{0} is required", field)
	register("email", "{0} must be a valid email address", field)
	register("min", "{0} must be at least {1} characters long", withParam)
	register("max", "{0} must be at most {1} characters long", withParam)
	register("len", "{0} must be exactly {1} characters long", withParam)
	register("numeric", "{0} must contain only digits", field)
	register("alpha", "{0} must contain only letters", field)
}

func FormatValidationErrors(err error) []response.FieldError {
	var fieldErrors []response.FieldError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			fieldErrors = append(fieldErrors, response.FieldError{
				Field:   fieldError.Field(),
				Message: fieldError.Translate(Translator),
			})
		}
	}

	return fieldErrors
}
