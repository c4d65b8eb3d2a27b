// Package errors provides structured error types for huddle.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindConfig
	KindProtocol
	KindClosed
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindProtocol:
		return "protocol error"
	case KindClosed:
		return "closed"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for huddle.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Protocol errors
func FrameDecodeFailed(err error) error {
	return E(Op("protocol.Decode"), KindProtocol, "malformed envelope", err)
}

func MessageDataDecodeFailed(err error) error {
	return E(Op("protocol.DecodeMessageData"), KindProtocol, "malformed message payload", err)
}

func MissingField(field string) error {
	return E(Op("protocol.Decode"), KindProtocol, fmt.Sprintf("envelope is missing %s", field))
}

// Transport errors
func DialFailed(url string, err error) error {
	return E(Op("wsclient.Dial"), KindNetwork, fmt.Sprintf("failed to connect to %s", url), err)
}

func DialTimedOut(url string, err error) error {
	return E(Op("wsclient.Dial"), KindTimeout, fmt.Sprintf("timed out connecting to %s", url), err)
}

func SendBufferFull() error {
	return E(Op("wsclient.TrySend"), KindNetwork, "outbound buffer full")
}

func ClientClosed() error {
	return E(Op("wsclient.TrySend"), KindClosed, "connection closed")
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Local I/O errors
func LogOpenFailed(path string, err error) error {
	return E(Op("logger.Init"), KindIO, fmt.Sprintf("failed to open log file %s", path), err)
}

func ClipboardUnavailable(err error) error {
	return E(Op("clipboard.Init"), KindIO, "clipboard unavailable", err)
}

// Chat state errors
func MessageNotFound(index int) error {
	return E(Op("chat.React"), KindNotFound, fmt.Sprintf("no message at position %d", index))
}

func InvalidReaction(emoji string) error {
	return E(Op("chat.React"), KindInvalid, fmt.Sprintf("reaction %q is not a single emoji", emoji))
}
