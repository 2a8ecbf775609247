package scheduling

import (
	"errors"
	"math"
	"unicode/utf8"
)

// Input limits, matching the widths of the columns that store them.
const (
	MaxNameLength        = 255
	MaxSceneNumberLength = 32
	MaxMinutes           = math.MaxInt32
	MaxShootDay          = math.MaxInt32
)

func tooLong(value string, max int) bool {
	return utf8.RuneCountInString(value) > max
}

// ValidationError is a rejected request. Message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// Notice is the confirmation shown after a successful change.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func success(description string) *Notice {
	return &Notice{Title: "Success", Description: description}
}
