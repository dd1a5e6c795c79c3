package utils

import (
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ pledge.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Checker) (_ *pledge.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Deliverer) (_ *pledge.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
