package syntax

import (
	"errors"
	"fmt"

	"github.com/go-stack/stack"
)

// ErrorKind classifies a compile error.
type ErrorKind uint8

const (
	SyntaxError ErrorKind = iota
	DuplicateIdentifierError
	UnknownIdentifierError
	UnknownTypeError
	InvalidCastError
	ImplicitCastError
	AccessViolationError
	StructuralError
	TypeMismatchError
	InternalError
)

var errorKindNames = [...]string{
	SyntaxError:              "SyntaxError",
	DuplicateIdentifierError: "DuplicateIdentifierError",
	UnknownIdentifierError:   "UnknownIdentifierError",
	UnknownTypeError:         "UnknownTypeError",
	InvalidCastError:         "InvalidCastError",
	ImplicitCastError:        "ImplicitCastError",
	AccessViolationError:     "AccessViolationError",
	StructuralError:          "StructuralError",
	TypeMismatchError:        "TypeMismatchError",
	InternalError:            "InternalError",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Error is a fatal compile error. The first Error aborts the compilation unit.
type Error struct {
	Kind ErrorKind
	Pos  Pos
	Msg  string
	Site string // compiler call site, set for internal errors
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// Errorf returns an error of the given kind located at tok.
func Errorf(kind ErrorKind, tok Token, format string, args ...interface{}) error {
	return &Error{Kind: kind, Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

// Internalf returns an InternalError located at tok. The caller's source
// location is recorded in Site.
func Internalf(tok Token, format string, args ...interface{}) error {
	return &Error{
		Kind: InternalError,
		Pos:  tok.Pos,
		Msg:  fmt.Sprintf(format, args...),
		Site: fmt.Sprintf("%+v", stack.Caller(1)),
	}
}

// KindOf returns the kind of err if it wraps an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err wraps an *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}
