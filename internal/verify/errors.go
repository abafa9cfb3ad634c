package verify

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is matching against the error taxonomy.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrVerificationFail = errors.New("verification failed")
)

// Error types
const (
	ErrTypeInvalidInput    = "invalid_input"
	ErrTypeIndexOutOfRange = "index_out_of_range"
	ErrTypeInternal        = "internal_error"
)

// ErrorCategory groups error types for callers rendering messages.
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryRange      ErrorCategory = "range"
	CategorySystem     ErrorCategory = "system"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeInvalidInput:
		return CategoryValidation
	case ErrTypeIndexOutOfRange:
		return CategoryRange
	default:
		return CategorySystem
	}
}

// Error is a structured verification error. Field names the offending
// input and Context carries what was expected.
type Error struct {
	Type    string         `json:"type"`
	Field   string         `json:"field,omitempty"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`

	cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %s)", e.Field)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := []error{sentinelFor(e.Type)}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

func sentinelFor(errType string) error {
	switch errType {
	case ErrTypeInvalidInput:
		return ErrInvalidInput
	case ErrTypeIndexOutOfRange:
		return ErrIndexOutOfRange
	default:
		return ErrVerificationFail
	}
}

// ErrorBuilder helps construct structured errors with context
type ErrorBuilder struct {
	errType string
	field   string
	message string
	context map[string]any
	cause   error
}

// NewError creates a new error builder
func NewError(errType, message string) *ErrorBuilder {
	return &ErrorBuilder{
		errType: errType,
		message: message,
		context: make(map[string]any),
	}
}

// WithField names the input field that failed
func (eb *ErrorBuilder) WithField(field string) *ErrorBuilder {
	eb.field = field
	return eb
}

// WithContext adds context information to the error
func (eb *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// WithCause adds the underlying cause error
func (eb *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	eb.cause = err
	return eb
}

// Build creates the final Error
func (eb *ErrorBuilder) Build() *Error {
	e := &Error{
		Type:    eb.errType,
		Field:   eb.field,
		Message: eb.message,
		cause:   eb.cause,
	}
	if len(eb.context) > 0 {
		e.Context = eb.context
	}
	return e
}

func invalidInput(field, message string) *ErrorBuilder {
	return NewError(ErrTypeInvalidInput, message).WithField(field)
}

func outOfRange(field, message string) *ErrorBuilder {
	return NewError(ErrTypeIndexOutOfRange, message).WithField(field)
}
