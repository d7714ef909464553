// Package validation holds request validation rules shared by the DTOs.
package validation

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TagNotBlank rejects strings made only of whitespace.
const TagNotBlank = "notblank"

// Register adds the custom rules to v.
func Register(v *validator.Validate) error {
	return v.RegisterValidation(TagNotBlank, notBlank)
}

// RegisterWithGin adds the custom rules to gin's binding engine.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
