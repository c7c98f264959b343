// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Spreadsheet errors.
	ErrCredentialsNotFound = errors.New("credentials file not found")
	ErrSheetNotFound       = errors.New("sheet not found")
	ErrSheetsAPI           = errors.New("sheets api request failed")

	// Data errors.
	ErrMissingColumn  = errors.New("missing column")
	ErrUnknownPalette = errors.New("unknown color palette")
	ErrInvalidColor   = errors.New("invalid color")
	ErrUnknownProduct = errors.New("unknown product")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage extracts the user-facing message from err, falling back to err.Error().
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
