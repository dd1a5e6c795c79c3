package cash

import "github.com/iov-one/pledge/errors"

// x/cash reserves 30 ~ 39.
var (
	ErrInsufficientFunds = errors.Register(30, "insufficient funds")
	ErrBadAuthority      = errors.Register(31, "bad authority")
)
