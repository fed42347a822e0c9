// Package toolerr defines the error taxonomy shared by every tool in the
// server. Each fault a tool can hit is classified into a Kind so callers can
// branch on the kind instead of matching message strings. The Message is the
// user-facing text returned through the protocol; the wrapped cause is kept
// for diagnostics only.
package toolerr

import (
	"errors"
	"fmt"
)

// Kind classifies a tool fault.
type Kind string

const (
	// KindUnknownTool means dispatch was asked for a name not in the registry.
	KindUnknownTool Kind = "unknown_tool"
	// KindInvalidArguments means a required parameter was missing or a value
	// did not coerce to its declared type.
	KindInvalidArguments Kind = "invalid_arguments"
	// KindUpstreamUnavailable means an external HTTP API could not be reached
	// or answered with a non-2xx status.
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	// KindUpstreamDataMissing means the upstream call succeeded but the
	// expected field was absent from the response.
	KindUpstreamDataMissing Kind = "upstream_data_missing"
	// KindStoreUnavailable means the backing data store failed to answer.
	KindStoreUnavailable Kind = "store_unavailable"
	// KindInternal covers faults that fit no other kind, such as a recovered
	// handler panic.
	KindInternal Kind = "internal"
)

// Error is a classified tool fault.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// Error returns the user-facing message.
func (e *Error) Error() string { return e.Message }

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrapf creates an Error of the given kind wrapping cause. The formatted
// message is what callers see; cause stays reachable through errors.Unwrap.
func Wrapf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf returns the kind of err. Errors that are not a *Error (including
// wrapped ones with no *Error in the chain) are classified as KindInternal.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}

	return KindInternal
}

// Envelope renders err as the error payload tools return in place of their
// success shape: {"error": "<message>"}.
func Envelope(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}
