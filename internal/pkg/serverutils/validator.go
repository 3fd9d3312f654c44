package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"ai-chatbot-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into a
// field-keyed validation error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return apperror.Internal()
	}

	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fmt.Sprintf("failed on '%s' validation", fe.Tag())
		}
	}
	return apperror.Validation("request validation failed", fields)
}
