package aggregates

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode standardizes failure semantics across services and the HTTP layer.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeForbidden          ErrorCode = "forbidden"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// FieldErrors maps a request field to its messages.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f FieldErrors) Empty() bool { return len(f) == 0 }

// Error is the canonical coded error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Fields  FieldErrors
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	if msg == "" && len(e.Fields) > 0 {
		msg = e.Fields.summary()
	}
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func (f FieldErrors) summary() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(f[k], "; "))
	}
	return strings.Join(parts, ", ")
}

// NewError builds an error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// NewValidation builds a field-level validation error. Returns nil when fields is empty.
func NewValidation(op string, fields FieldErrors) error {
	if fields.Empty() {
		return nil
	}
	return &Error{Code: CodeValidation, Op: strings.TrimSpace(op), Fields: fields}
}

func NotFound(op, message string) error {
	return NewError(CodeNotFound, op, message, nil)
}

func Conflict(op, message string) error {
	return NewError(CodeConflict, op, message, nil)
}

func Forbidden(op, message string) error {
	return NewError(CodeForbidden, op, message, nil)
}

func Unauthorized(op, message string) error {
	return NewError(CodeUnauthorized, op, message, nil)
}

// Wrap annotates an existing error with coded semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or wrapped err) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// CodeOf extracts the error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}

// As returns the coded error carried by err, if any.
func As(err error) (*Error, bool) {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return nil, false
	}
	return aggErr, true
}
