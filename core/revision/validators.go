package revision

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

var (
	weekdaysTag  = "weekdays"
	weekdaysText = "invalid weekday names"

	techniqueTag  = "studytechnique"
	techniqueText = "invalid study technique"
)

// InitValidators registers the revision-specific validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(weekdaysTag, weekdaysValidation)
	core.RegisterCustomTranslation(validate, translator, weekdaysTag, weekdaysText)

	_ = validate.RegisterValidation(techniqueTag, techniqueValidation)
	core.RegisterCustomTranslation(validate, translator, techniqueTag, techniqueText)
}

// weekdaysValidation checks that all provided day names are valid lowercase
// english weekday names.
func weekdaysValidation(fl validator.FieldLevel) bool {
	days, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	for _, day := range days {
		if !IsWeekdayName(day) {
			return false
		}
	}
	return true
}

// techniqueValidation checks that the provided technique is a known one.
func techniqueValidation(fl validator.FieldLevel) bool {
	technique := fl.Field().String()
	for _, known := range AllTechniques {
		if technique == known {
			return true
		}
	}
	return false
}
