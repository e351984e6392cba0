package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/emre/studioclass/internal/pkg/validation"
)

// RegisterCustomValidations installs the application's custom binding
// rules (clock values, weekday encodings, hex colors) on gin's
// validator engine.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return validation.RegisterRules(v)
}
