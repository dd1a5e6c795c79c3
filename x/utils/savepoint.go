package utils

import (
	"github.com/iov-one/pledge"
)

// Savepoint isolates all writes of the wrapped call. They are written on
// success and dropped on error.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ pledge.Decorator = Savepoint{}

// NewSavepoint returns a disabled savepoint. Enable it with OnCheck and
// OnDeliver.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Checker) (*pledge.CheckResult, error) {
	cstore, ok := db.(pledge.CacheableKVStore)
	if !s.onCheck || !ok {
		return next.Check(ctx, db, tx)
	}
	cache := cstore.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Write()
	return res, nil
}

func (s Savepoint) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Deliverer) (*pledge.DeliverResult, error) {
	cstore, ok := db.(pledge.CacheableKVStore)
	if !s.onDeliver || !ok {
		return next.Deliver(ctx, db, tx)
	}
	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Write()
	return res, nil
}
