package fetcher

import (
	"errors"
	"fmt"
)

// UserMessage is the only failure text shown on the dashboard, whatever went wrong.
const UserMessage = "data source unavailable, try again later."

type Kind int

const (
	Network Kind = iota + 1
	HTTP
	Parse
	Shape
)

func (k Kind) String() string {
	switch k {
	case Network:
		return "network"
	case HTTP:
		return "http"
	case Parse:
		return "parse"
	case Shape:
		return "shape"
	}
	return "unknown"
}

var (
	ErrNetwork = errors.New("network error")
	ErrHTTP    = errors.New("HTTP error")
	ErrParse   = errors.New("parse error")
	ErrShape   = errors.New("shape error")
)

func (k Kind) sentinel() error {
	switch k {
	case Network:
		return ErrNetwork
	case HTTP:
		return ErrHTTP
	case Parse:
		return ErrParse
	case Shape:
		return ErrShape
	}
	return nil
}

// Error is a failed fetch. Callers match the broad kind with errors.Is
// against ErrNetwork, ErrHTTP, ErrParse or ErrShape.
type Error struct {
	Kind   Kind
	Source string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Kind.sentinel(), e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the kind of a fetch error, or zero for anything else.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

func newError(kind Kind, source string, err error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:   kind,
		Source: source,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
