package validation

import (
	"context"
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/umalmyha/customer-registry/internal/country"
)

const (
	countryTag     = "country"
	phonePrefixTag = "phoneprefix"
)

// RegisterCountryRules registers tags backed by country lookup:
// `country` accepts known country codes, `phoneprefix=Field` accepts phones dialable in country stored in Field.
func RegisterCountryRules(validate *validator.Validate, trans ut.Translator, lookup country.Lookup) error {
	if err := validate.RegisterValidationCtx(countryTag, countryRule(lookup)); err != nil {
		return err
	}

	if err := validate.RegisterValidationCtx(phonePrefixTag, phonePrefixRule(lookup)); err != nil {
		return err
	}

	if err := registerTranslation(validate, trans, countryTag, "{0} is not a known country code"); err != nil {
		return err
	}
	return registerTranslation(validate, trans, phonePrefixTag, "{0} doesn't match dialing code of the country")
}

func countryRule(lookup country.Lookup) validator.FuncCtx {
	return func(ctx context.Context, fl validator.FieldLevel) bool {
		code, ok := countryCode(fl.Field())
		if !ok {
			return false
		}
		return lookup.IsValidCountryCode(ctx, code)
	}
}

func phonePrefixRule(lookup country.Lookup) validator.FuncCtx {
	return func(ctx context.Context, fl validator.FieldLevel) bool {
		phone := fl.Field()
		if phone.Kind() != reflect.String {
			return false
		}

		parent := fl.Parent()
		if parent.Kind() == reflect.Pointer {
			parent = parent.Elem()
		}

		code, ok := countryCode(parent.FieldByName(fl.Param()))
		if !ok {
			return false
		}
		return lookup.IsPhonePrefixForCountry(ctx, code, phone.String())
	}
}

func countryCode(v reflect.Value) (int16, bool) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n <= 0 || n > 999 {
			return 0, false
		}
		return int16(n), true
	default:
		return 0, false
	}
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag string, text string) error {
	return validate.RegisterTranslation(
		tag,
		trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// jsonFieldName reports fields by their json names
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
