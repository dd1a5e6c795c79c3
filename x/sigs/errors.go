package sigs

import "github.com/iov-one/pledge/errors"

// x/sigs reserves 20 ~ 29.
var (
	ErrInvalidSequence = errors.Register(20, "invalid sequence number")
	ErrMissingPubkey   = errors.Register(21, "missing public key")
)
