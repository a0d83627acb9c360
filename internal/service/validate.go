// Package service implements the client-side workflows on top of the API
// bindings: login and session handling, the OTP registration flow, batch
// prediction ingestion and the create/edit form logic. Validation failures
// are caught here, before any network call is made.
package service

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// ErrValidation wraps every client-side validation failure so callers can
// distinguish taxonomy: these never reached the wire.
var ErrValidation = errors.New("validation failed")

var validate = validator.New()

// emailPattern mirrors the permissive check the forms always used.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}
