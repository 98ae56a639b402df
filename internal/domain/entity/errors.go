package entity

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for command operations.
// Use errors.Is against these to classify a failure without matching strings.
var (
	// ErrNetwork indicates a transport-level failure reaching a remote host.
	ErrNetwork = errors.New("network error")

	// ErrHTTPStatus indicates that the remote host answered with a non-success status.
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrParseFailed indicates that a payload could not be parsed as the expected format.
	ErrParseFailed = errors.New("parse failed")

	// ErrNotFound indicates that a native lookup returned nothing.
	ErrNotFound = errors.New("not found")

	// ErrUserCancelled indicates that the user dismissed a native dialog.
	ErrUserCancelled = errors.New("user cancelled")

	// ErrWindowUnavailable indicates that no window handle is attached.
	ErrWindowUnavailable = errors.New("window handle unavailable")

	// ErrInvalidInput indicates that a command argument was rejected before any I/O.
	ErrInvalidInput = errors.New("invalid input")
)

// CommandError is the structured error returned by every command.
// Kind is one of the sentinel errors above; Err carries the underlying cause.
type CommandError struct {
	Kind       error
	Op         string
	StatusCode int
	Err        error
}

// Error returns a descriptive message for logs and for the GUI edge.
func (e *CommandError) Error() string {
	msg := e.Kind.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s %d", msg, e.StatusCode)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *CommandError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError wraps err with the given kind and operation name.
func NewError(kind error, op string, err error) *CommandError {
	return &CommandError{Kind: kind, Op: op, Err: err}
}

// NewStatusError reports a non-success HTTP status from op.
func NewStatusError(op string, statusCode int, body string) *CommandError {
	e := &CommandError{Kind: ErrHTTPStatus, Op: op, StatusCode: statusCode}
	if body != "" {
		e.Err = errors.New(body)
	}
	return e
}

// KindOf returns the sentinel kind carried by err, or nil when err is unclassified.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrNetwork, ErrHTTPStatus, ErrParseFailed, ErrNotFound,
		ErrUserCancelled, ErrWindowUnavailable, ErrInvalidInput,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
