package color

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrInvalidColorString indicates a literal matched no supported notation
	ErrInvalidColorString = errors.New("invalid color string")

	// ErrUnknownModel indicates an output model other than rgba, hsla or hsva
	ErrUnknownModel = errors.New("unknown color model")
)

// InvalidColorStringError carries the literal exactly as the caller passed it,
// before trimming or case folding
type InvalidColorStringError struct {
	Input string
}

func (e *InvalidColorStringError) Error() string {
	return fmt.Sprintf("invalid color string %q", e.Input)
}

func (e *InvalidColorStringError) Unwrap() error {
	return ErrInvalidColorString
}

// NewInvalidColorStringError creates a new invalid color string error
func NewInvalidColorStringError(input string) error {
	return &InvalidColorStringError{Input: input}
}

// UnknownModelError represents a request for an unsupported output model
type UnknownModelError struct {
	Model string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown color model %q: expected one of rgba, hsla, hsva", e.Model)
}

func (e *UnknownModelError) Unwrap() error {
	return ErrUnknownModel
}

// NewUnknownModelError creates a new unknown model error
func NewUnknownModelError(model string) error {
	return &UnknownModelError{Model: model}
}
