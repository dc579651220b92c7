package cca

import (
	"errors"
	"fmt"
)

// Validation error codes. CONFIGURATION and LAYOUT are fatal at startup,
// PALETTE_GAP is a warning: the automaton still runs on the fallback palette.
const (
	CodeConfiguration = "CONFIGURATION"
	CodeLayout        = "LAYOUT"
	CodePaletteGap    = "PALETTE_GAP"
)

// ValidationError contains details about a rejected configuration.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// HasCode reports whether err is a ValidationError with the given code.
func HasCode(err error, code string) bool {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Code == code
	}
	return false
}

func configError(field, format string, args ...any) error {
	return ValidationError{
		Code:    CodeConfiguration,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func layoutError(field, format string, args ...any) error {
	return ValidationError{
		Code:    CodeLayout,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
