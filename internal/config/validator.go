package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/at-ishikawa/flash/internal/narration"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Validator validates configurations and command options with English error messages
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator() (*Validator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("voice", isVoice); err != nil {
		return nil, fmt.Errorf("failed to register voice validation: %w", err)
	}
	if err := registerTranslation(validate, trans, "voice",
		fmt.Sprintf("{0} must be one of: %s", strings.Join(narration.Voices, ", "))); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("language", isLanguage); err != nil {
		return nil, fmt.Errorf("failed to register language validation: %w", err)
	}
	if err := registerTranslation(validate, trans, "language",
		fmt.Sprintf("{0} must be one of: %s", strings.Join(narration.Languages(), ", "))); err != nil {
		return nil, err
	}

	validate.RegisterStructValidation(validateQuizOptions, QuizOptions{})
	if err := registerTranslation(validate, trans, "distinct_columns",
		"question and answer columns must be different"); err != nil {
		return nil, err
	}

	return &Validator{
		validate:   validate,
		translator: trans,
	}, nil
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, text string) error {
	if err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
		return ut.Add(tag, text, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, fe.Field())
		return t
	}); err != nil {
		return fmt.Errorf("failed to register %s translation: %w", tag, err)
	}
	return nil
}

// Validate returns an error wrapping ErrInvalidConfig with all violations
func (v *Validator) Validate(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	var errorMsgs []string
	for _, e := range validationErrors {
		errorMsgs = append(errorMsgs, e.Translate(v.translator))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errorMsgs, ", "))
}

func isVoice(fl validator.FieldLevel) bool {
	return narration.IsValidVoice(fl.Field().String())
}

func isLanguage(fl validator.FieldLevel) bool {
	return narration.IsValidLanguage(fl.Field().String())
}

func validateQuizOptions(sl validator.StructLevel) {
	options := sl.Current().Interface().(QuizOptions)
	if options.PromptColumn == options.AnswerColumn {
		sl.ReportError(options.AnswerColumn, "AnswerColumn", "AnswerColumn", "distinct_columns", "")
	}
}
