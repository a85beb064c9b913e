package godbc

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the contract can report.
type ErrorKind uint

const (
	// ErrConnection is returned for a malformed URL, an unreachable host
	// or an authentication failure. Fatal to the Connection; never
	// retried by this layer.
	ErrConnection ErrorKind = iota
	// ErrStatement is returned for a prepare-time syntax or plan failure,
	// or for contract misuse such as an out-of-range column index.
	ErrStatement
	// ErrParameterCount is returned when the number of placeholders in a
	// statement does not equal the number of supplied values. Caught
	// before any native call is attempted.
	ErrParameterCount
	// ErrTokenize is returned for malformed SQL text, such as an
	// unterminated string literal or comment.
	ErrTokenize
	// ErrTypeConversion is returned when a native value cannot be coerced
	// to the requested canonical kind.
	ErrTypeConversion
	// ErrUnsupportedType is returned when a native column type has no
	// canonical DataType mapping. This is a configuration defect in the
	// adapter, not a data condition.
	ErrUnsupportedType
	// ErrBackend wraps whatever the underlying client library reported.
	ErrBackend
)

func (k ErrorKind) String() string {
	switch k {
	case ErrConnection:
		return "connection error"
	case ErrStatement:
		return "statement error"
	case ErrParameterCount:
		return "parameter count mismatch"
	case ErrTokenize:
		return "tokenize error"
	case ErrTypeConversion:
		return "type conversion error"
	case ErrUnsupportedType:
		return "unsupported type"
	case ErrBackend:
		return "backend error"
	default:
		return "unknown error"
	}
}

// Error is the canonical error value returned by every fallible contract
// operation. The wrapped cause, if any, is reachable through errors.Unwrap.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an Error of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an Error of the given kind wrapping a native cause.
func WrapError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether any error in err's chain is a contract Error of
// the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
