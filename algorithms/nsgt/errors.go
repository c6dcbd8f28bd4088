package nsgt

import "fmt"

// ErrorKind classifies transform failures. Every failure is a precondition
// violation; nothing is retried.
type ErrorKind string

const (
	KindInvalidScale         ErrorKind = "INVALID_SCALE"
	KindDegenerateFrame      ErrorKind = "DEGENERATE_FRAME"
	KindLengthMismatch       ErrorKind = "LENGTH_MISMATCH"
	KindChannelCountMismatch ErrorKind = "CHANNEL_COUNT_MISMATCH"
	KindBlockLengthMismatch  ErrorKind = "BLOCK_LENGTH_MISMATCH"
	KindInvalidParameter     ErrorKind = "INVALID_PARAMETER"
)

// TransformError is returned by every operation of the package
type TransformError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Sentinels for errors.Is. A TransformError matches the sentinel of its kind.
var (
	ErrInvalidScale         = &TransformError{Kind: KindInvalidScale}
	ErrDegenerateFrame      = &TransformError{Kind: KindDegenerateFrame}
	ErrLengthMismatch       = &TransformError{Kind: KindLengthMismatch}
	ErrChannelCountMismatch = &TransformError{Kind: KindChannelCountMismatch}
	ErrBlockLengthMismatch  = &TransformError{Kind: KindBlockLengthMismatch}
	ErrInvalidParameter     = &TransformError{Kind: KindInvalidParameter}
)

func (e *TransformError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *TransformError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel (message-less error) of e's kind
func (e *TransformError) Is(target error) bool {
	t, ok := target.(*TransformError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

func newError(kind ErrorKind, format string, args ...any) *TransformError {
	return &TransformError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, cause error, format string, args ...any) *TransformError {
	return &TransformError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
