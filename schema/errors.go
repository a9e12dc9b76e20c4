package schema

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrUnknownColumn      ErrorKind = "unknown_column"
	ErrDuplicateColumn    ErrorKind = "duplicate_column"
	ErrIncompatibleSchema ErrorKind = "incompatible_schema"
	ErrInvalidArgument    ErrorKind = "invalid_argument"
	ErrIllegalTransition  ErrorKind = "illegal_transition"
	ErrUnsupported        ErrorKind = "unsupported_operation"
	ErrIO                 ErrorKind = "io"
	ErrSQL                ErrorKind = "sql"
	ErrNotFound           ErrorKind = "not_found"
)

// Error is the single error type raised by this package and the catalog
// layer. All schema-evolution failures are synchronous validation errors;
// callers dispatch on Kind.
type Error struct {
	Kind    ErrorKind
	Message string
	Column  string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Column != "" {
		base = fmt.Sprintf("%s (column=%s)", base, e.Column)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func UnknownColumnError(name string) *Error {
	return &Error{Kind: ErrUnknownColumn, Message: "unknown column", Column: name}
}

func DuplicateColumnError(name string) *Error {
	return &Error{Kind: ErrDuplicateColumn, Message: "column already exists", Column: name}
}

func IncompatibleSchemaError(msg string) *Error {
	return &Error{Kind: ErrIncompatibleSchema, Message: msg}
}

func InvalidArgumentError(msg string) *Error {
	return &Error{Kind: ErrInvalidArgument, Message: msg}
}

func IllegalTransitionError(column, msg string) *Error {
	return &Error{Kind: ErrIllegalTransition, Message: msg, Column: column}
}

func UnsupportedError(msg string) *Error {
	return &Error{Kind: ErrUnsupported, Message: msg}
}

// IsKind reports whether err is a schema Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
