package weavetest

import "github.com/iov-one/pledge"

// Decorator is a mock pledge.Decorator. Set CheckErr or DeliverErr to fail
// the corresponding call before the wrapped handler runs. Every call is
// counted.
type Decorator struct {
	checkCall   int
	CheckErr    error
	deliverCall int
	DeliverErr  error
}

var _ pledge.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Checker) (*pledge.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Deliverer) (*pledge.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}
