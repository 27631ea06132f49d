package domain

import (
	"errors"
	"fmt"
)

// Image is a stored picture. Image holds a data-URI string of the form
// "data:image/<subtype>;base64,<data>".
type Image struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrFormat       = errors.New("invalid image format")
	ErrStorage      = errors.New("storage failure")
)

// ValidationError describes a rejected input field. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Path    string
	Message string
}

func NewValidationError(path, message string) *ValidationError {
	return &ValidationError{Path: path, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
