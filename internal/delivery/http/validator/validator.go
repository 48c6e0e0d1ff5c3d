// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type requestValidator struct {
	validate *validator.Validate
}

// New creates an Echo-compatible request validator.
func New() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
