package escrow

import "github.com/iov-one/pledge/errors"

// x/escrow reserves 1010 ~ 1019.
var (
	ErrAlreadyFulfilled      = errors.Register(1010, "condition already fulfilled")
	ErrConditionNotFulfilled = errors.Register(1011, "condition not fulfilled")
	ErrNotExpired            = errors.Register(1012, "escrow not expired")
	ErrRegistryFull          = errors.Register(1013, "registry full")
	ErrAlreadyInitialized    = errors.Register(1014, "already initialized")
	ErrMismatchedAccount     = errors.Register(1015, "missing or mismatched account")
	ErrEscrowExists          = errors.Register(1016, "escrow exists")
)
