package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// SuccessABCICode is the code returned for a successful request.
	SuccessABCICode = 0

	internalABCICode = 1
	internalABCILog  = "internal error"
)

type coder interface {
	ABCICode() uint32
}

// ABCIInfo returns the code and log to be put in an ABCI response. Errors
// that were not registered are reported as internal unless debug is set, in
// which case the full message with stack trace is logged.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	if debug {
		return code, fmt.Sprintf("%+v", err)
	}
	if code == internalABCICode || ErrPanic.Is(err) {
		return internalABCICode, internalABCILog
	}
	return code, err.Error()
}

func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
}

// Redact hides every error that does not originate from a registered root
// error behind a generic internal error. No-op in debug mode.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

// ABCIError rebuilds an error from an ABCI response. Codes that were not
// registered in this process map to an internal error.
func ABCIError(code uint32, log string) error {
	if e, ok := usedCodes[code]; ok && code != internalABCICode {
		return Wrap(e, log)
	}
	return errors.Errorf("code %d: %s", code, log)
}
