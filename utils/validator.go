package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/GoyacJ/qmt-gateway/models"
)

var (
	validate     *validator.Validate
	onceValidate sync.Once
)

func GetValidator() *validator.Validate {
	onceValidate.Do(func() {
		validate = validator.New()
		// "interval" accepts the kline interval codes understood by models.ParseInterval.
		_ = validate.RegisterValidation("interval", func(fl validator.FieldLevel) bool {
			return models.IsValidInterval(fl.Field().String())
		})
	})
	return validate
}

// FormatValidationErrors flattens validator errors into field -> failed tag.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return out
	}
	for _, e := range verrs {
		out[e.Field()] = "failed on tag '" + e.Tag() + "'"
	}
	return out
}
