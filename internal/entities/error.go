package entities

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("entity not found")
	ErrUnknownCurrency = errors.New("unknown currency code")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrBadPayload      = errors.New("malformed rate payload")
	ErrUnavailable     = errors.New("rate service unreachable")
)

// ApiError is a non-success response from the remote rate service.
type ApiError struct {
	Status  int
	Message string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("rate api: status %d: %s", e.Status, e.Message)
}
