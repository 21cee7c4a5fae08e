package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrConfiguration  = errors.New("configuration error")
	ErrNotFound       = errors.New("not found")
	ErrStoreAccess    = errors.New("row store access error")
	ErrStorage        = errors.New("object storage error")
	ErrPartialFailure = errors.New("partial failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrStoreAccess
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// userFacing tags an error chain with the exact message action results should
// surface. Markers and causes stay on the chain for classification and logs.
type userFacing struct {
	msg   string
	cause error
}

func (e *userFacing) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *userFacing) Unwrap() error { return e.cause }

// WithUserMessage attaches a user-facing message to err. When err is nil the
// message becomes the whole error.
func WithUserMessage(msg string, err error) error {
	return &userFacing{msg: msg, cause: err}
}

// UserMessage returns the user-facing message for an error chain, or fallback
// when the chain carries none. A nil error returns the empty string.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var uf *userFacing
	if errors.As(err, &uf) {
		return uf.msg
	}
	return fallback
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
