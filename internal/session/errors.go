package session

import "errors"

// ErrValidation is matched by every error Add returns for bad input.
var ErrValidation = errors.New("validation error")

// Reason identifies which validation rule rejected the input
type Reason int

const (
	ReasonMissingField Reason = iota + 1
	ReasonInvalidEmail
)

// ValidationError describes why a user could not be added
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets callers use errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
