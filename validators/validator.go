package validators

import (
	"fmt"
	"strings"

	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate checks the `validate` tags of i and reports failures as a
// VALIDATION_ERROR naming each offending field.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(err, apperrors.KindValidation, "invalid request")
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return apperrors.New(apperrors.KindValidation, strings.Join(msgs, "; "))
}
