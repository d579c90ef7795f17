package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies a failed provider call.
type ErrorKind string

const (
	KindTimeout   ErrorKind = "timeout"
	KindStatus    ErrorKind = "status"
	KindRejected  ErrorKind = "rejected"
	KindMalformed ErrorKind = "malformed"
	KindTransport ErrorKind = "transport"
)

// Error is a classified provider failure.
type Error struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int    // set for KindStatus
	Reason     string // set for KindRejected
	Err        error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindTimeout:
		msg = "request timed out"
	case KindStatus:
		msg = fmt.Sprintf("unexpected status %d", e.StatusCode)
	case KindRejected:
		msg = "request rejected: " + e.Reason
	case KindMalformed:
		msg = "malformed response"
	default:
		msg = "request failed"
	}
	msg = e.Provider + ": " + msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a classified error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}

// transportError wraps a failed round trip, recognising timeouts from either
// the client deadline or the request context.
func transportError(provider string, err error) *Error {
	if isTimeout(err) {
		return &Error{Kind: KindTimeout, Provider: provider, Err: err}
	}
	return &Error{Kind: KindTransport, Provider: provider, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
