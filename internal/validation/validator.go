package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/labstack/echo/v4"
)

// Violation describes single invalid field
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PayloadError holds all violations found in request payload
type PayloadError struct {
	violations []Violation
}

func (e *PayloadError) Error() string {
	buff := bytes.NewBufferString("")

	for _, v := range e.violations {
		buff.WriteString(v.Message)
		buff.WriteString("\n")
	}

	return buff.String()
}

// Violations returns found violations
func (e *PayloadError) Violations() []Violation {
	return e.violations
}

func (e *PayloadError) violation(v Violation) {
	e.violations = append(e.violations, v)
}

func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []Violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// EnglishTranslator builds validator with default english messages registered
func EnglishTranslator() (*validator.Validate, ut.Translator, error) {
	enLocale := en.New()
	trans, ok := ut.New(enLocale, enLocale).GetTranslator("en")
	if !ok {
		return nil, nil, errors.New("en translator is missing")
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, err
	}
	return validate, trans, nil
}

// EchoValidator adapts go-playground validator to echo
type EchoValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// Echo builds EchoValidator
func Echo(validator *validator.Validate, translator ut.Translator) *EchoValidator {
	return &EchoValidator{
		validator:  validator,
		translator: translator,
	}
}

func (v *EchoValidator) Validate(i any) error {
	return v.ValidateContext(context.Background(), i)
}

// ValidateContext validates i, ctx reaches rules backed by country lookup
func (v *EchoValidator) ValidateContext(ctx context.Context, i any) error {
	err := v.validator.StructCtx(ctx, i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (v *EchoValidator) payloadError(ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make([]Violation, 0)}
	for _, e := range ve {
		pldErr.violation(Violation{
			Field:   e.Field(),
			Message: e.Translate(v.translator),
		})
	}
	return pldErr
}
