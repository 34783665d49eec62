package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so the protocol layer can pick the right
// response status without inspecting message text.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindTemporal
	KindConflict
	KindNotFound
	KindAuthorization
	KindSession
	KindProtocol
)

// Error is a typed domain failure. The message is the user-visible text that
// ends up in the wire response.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Errorf builds a typed domain error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var derr *Error
	return errors.As(err, &derr) && derr.Kind == kind
}
