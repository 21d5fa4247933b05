package apperrors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CodedError is an error that carries the HTTP status it should surface
// with. Its string form follows the wire convention "CODE<NNN>: <text>",
// so an error that crosses a layer as a plain string keeps its status.
type CodedError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface using the coded convention.
func (e *CodedError) Error() string {
	return fmt.Sprintf("CODE%d: %s", e.Code, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *CodedError) Unwrap() error {
	return e.Err
}

// NewCoded creates a CodedError for the given status.
func NewCoded(code int, format string, args ...interface{}) *CodedError {
	return &CodedError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// BadRequest creates a 400 CodedError wrapping sentinel err.
func BadRequest(err error, format string, args ...interface{}) *CodedError {
	return &CodedError{Code: 400, Message: fmt.Sprintf(format, args...), Err: err}
}

// NotFound creates a 404 CodedError wrapping sentinel err.
func NotFound(err error, format string, args ...interface{}) *CodedError {
	return &CodedError{Code: 404, Message: fmt.Sprintf(format, args...), Err: err}
}

// Forbidden creates a 403 CodedError wrapping sentinel err.
func Forbidden(err error, format string, args ...interface{}) *CodedError {
	return &CodedError{Code: 403, Message: fmt.Sprintf(format, args...), Err: err}
}

const codePrefix = "CODE"

// Parse extracts the HTTP status and user-facing message from err.
// A *CodedError yields its own code and message. A plain error whose message
// follows the "CODE<NNN>: <text>" convention yields NNN and <text>. Any other
// non-empty message yields 500 with the raw message; an empty message yields
// 500 with "Unknown error".
func Parse(err error) (int, string) {
	if err == nil {
		return 500, "Unknown error"
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code, coded.Message
	}
	msg := err.Error()
	if msg == "" {
		return 500, "Unknown error"
	}
	if strings.HasPrefix(msg, codePrefix) && len(msg) >= len(codePrefix)+3 {
		if code, convErr := strconv.Atoi(msg[len(codePrefix) : len(codePrefix)+3]); convErr == nil {
			text := strings.TrimPrefix(msg[len(codePrefix)+3:], ": ")
			return code, text
		}
	}
	return 500, msg
}

// IsCoded reports whether err carries a recognized status code, either as a
// *CodedError or through the "CODE<NNN>:" message convention.
func IsCoded(err error) bool {
	if err == nil {
		return false
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return true
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, codePrefix) || len(msg) < len(codePrefix)+3 {
		return false
	}
	_, convErr := strconv.Atoi(msg[len(codePrefix) : len(codePrefix)+3])
	return convErr == nil
}

// WrapRepo shields callers from raw persistence errors. A coded error passes
// through untouched; anything else is wrapped under the repository layer's
// fallback message and surfaces as a 500.
func WrapRepo(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if IsCoded(err) {
		return err
	}
	return &CodedError{Code: 500, Message: fallback, Err: err}
}
