package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by every extension. Codes below 1000 are reserved for
// this package, extensions register their own above that.
var (
	// ErrUnauthorized is returned when the request lacks the required
	// signature or derived authority.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when an entity or account does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned when a message fails validation.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned when a stored or to-be stored entity is invalid.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that a correct program never reaches.
	ErrHuman = Register(7, "coding error")

	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an entity is not in a state that allows the
	// requested transition.
	ErrState = Register(10, "invalid state")

	ErrType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when a balance cannot cover a
	// requested amount.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	ErrAmount = Register(13, "invalid amount")

	ErrInput = Register(14, "invalid input")

	// ErrExpired is returned when an operation is attempted after the block
	// time deadline of an entity.
	ErrExpired = Register(15, "expired")

	// ErrOverflow is returned when an arithmetic result does not fit its
	// type.
	ErrOverflow = Register(16, "value overflow")

	ErrDatabase = Register(17, "database error")

	// ErrPanic is set only by Recover. Its details are never exposed to the
	// client.
	ErrPanic = Register(111222, "panic")
)

// Register declares a new root error. Each code can be registered only once,
// a second registration panics. Call it from package level var blocks only.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, e.desc))
	}
	err := &Error{code: code, desc: description}
	usedCodes[code] = err
	return err
}

// usedCodes guards code uniqueness. Code 1 is the internal error returned for
// anything that was not registered.
var usedCodes = map[uint32]*Error{
	1: {code: 1, desc: "internal"},
}

// Error is a root error. Runtime errors wrap one of them so that the client
// always receives a stable ABCI code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the code this error was registered with.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with fmt formatting.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is returns true if err is this root error or wraps it at any depth.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	for {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
}

// Wrap annotates err with a description. A stack trace is attached to the
// innermost error the first time it is wrapped. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with fmt formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the innermost stack trace for the %+v verb.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.msg, e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover turns a panic into an ErrPanic assigned to err. Must be deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
}

// errIsNil returns true for a nil error and for a typed nil pointer hidden
// behind the error interface.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
