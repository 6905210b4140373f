// Package vcerr defines the error-kind taxonomy shared by every layer of
// the blockchain agent protocol client: byte streams, framing, the
// handshake, the request/response codec, and entity certificate parsing.
//
// Every failure in those layers is a returned *Error, never a panic;
// the config and logging packages return plain fmt errors instead. This
// mirrors the source library's convention of status-code returns rather
// than exceptions (see the "Error returns vs exceptions" design note).
package vcerr

import (
	"errors"
	"fmt"
)

// Kind is a closed enumeration of error categories. The zero value,
// Success, is never returned as an error.
type Kind int

const (
	Success Kind = iota
	InvalidArgument
	OutOfMemory
	ReadError
	WriteError
	UnexpectedPayloadSize
	UnexpectedValue
	UnauthorizedPacket
	CryptoFailure
	InetResolutionFailure
	ConnectionRefused
	SocketCreateFailed
	InvalidAddress
	InvalidFieldSize
)

var kindNames = map[Kind]string{
	Success:               "success",
	InvalidArgument:       "invalid-argument",
	OutOfMemory:           "out-of-memory",
	ReadError:             "read-error",
	WriteError:            "write-error",
	UnexpectedPayloadSize: "unexpected-payload-size",
	UnexpectedValue:       "unexpected-value",
	UnauthorizedPacket:    "unauthorized-packet",
	CryptoFailure:         "crypto-failure",
	InetResolutionFailure: "inet-resolution-failure",
	ConnectionRefused:     "connection-refused",
	SocketCreateFailed:    "socket-create-failed",
	InvalidAddress:        "invalid-address",
	InvalidFieldSize:      "invalid-field-size",
}

// String renders the kind using kebab-case names.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the concrete error value returned by the protocol layers
// listed in the package comment. Op names the failing operation (e.g. "framing.ReadAuthed") so
// callers and logs can tell apart two failures of the same Kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error with no wrapped cause.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

// Wrap constructs an *Error wrapping an underlying cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is a *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf extracts the Kind from err, or Success if err is not a *Error
// (and therefore not one of this library's own failures).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Success
}
