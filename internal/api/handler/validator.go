package handler

import "github.com/rdv360/session-gateway/internal/pkg/validate"

// echoValidator lets Echo call c.Validate(req) with the shared rules.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{}
}

// Validate satisfies the echo.Validator interface.
func (echoValidator) Validate(i any) error {
	return validate.Struct(i)
}
