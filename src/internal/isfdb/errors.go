package isfdb

import (
	"errors"
	"fmt"
)

// Kind classifies fetch failures so callers can tell a missing record from
// an expired session or upstream markup drift.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindAuthRequired
	KindParse
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAuthRequired:
		return "auth_required"
	case KindParse:
		return "parse_error"
	case KindTransient:
		return "transient"
	}
	return "unknown"
}

// Error is the only error type the fetcher returns for remote failures.
type Error struct {
	Kind Kind
	Op   string
	URL  string
	Err  error
}

func (e *Error) Error() string {
	msg := "isfdb: " + e.Kind.String()
	if e.Op != "" {
		msg = fmt.Sprintf("isfdb: %s: %s", e.Op, e.Kind)
	}
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrAuthRequired = &Error{Kind: KindAuthRequired}
	ErrParse        = &Error{Kind: KindParse}
	ErrTransient    = &Error{Kind: KindTransient}
)

// KindOf reports the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind Kind, op, url string, err error) *Error {
	return &Error{Kind: kind, Op: op, URL: url, Err: err}
}

func parseErrorf(op, url, format string, args ...any) *Error {
	return newError(KindParse, op, url, fmt.Errorf(format, args...))
}
