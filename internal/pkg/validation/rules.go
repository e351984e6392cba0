package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/emre/studioclass/internal/app/models"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Hex color pattern used for offering colors
	ColorPattern = `^#[0-9a-fA-F]{6}$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Color *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Color: regexp.MustCompile(ColorPattern),
}

// RegisterRules installs the application's custom rules on a validator
// instance. "clock" accepts HH:MM strings; "weekdayraw" accepts any
// day-of-week encoding NormalizeWeekday understands (0-6 or 1-7).
func RegisterRules(v *validator.Validate) error {
	if err := v.RegisterValidation("clock", validateClock); err != nil {
		return err
	}
	if err := v.RegisterValidation("weekdayraw", validateWeekdayRaw); err != nil {
		return err
	}
	return v.RegisterValidation("hexcolor6", validateColor)
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := models.ParseClock(fl.Field().String())
	return err == nil
}

func validateWeekdayRaw(fl validator.FieldLevel) bool {
	_, err := models.NormalizeWeekday(int(fl.Field().Int()))
	return err == nil
}

func validateColor(fl validator.FieldLevel) bool {
	return CompiledPatterns.Color.MatchString(fl.Field().String())
}
