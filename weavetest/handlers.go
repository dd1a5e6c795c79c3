package weavetest

import "github.com/iov-one/pledge"

// Handler is a mock pledge.Handler returning preset results.
type Handler struct {
	checkCall   int
	CheckResult pledge.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult pledge.DeliverResult
	DeliverErr    error

	// OnDeliver, if set, runs before the result is returned. Use it to
	// write to the store or to panic.
	OnDeliver func(db pledge.KVStore)
}

var _ pledge.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	h.deliverCall++
	if h.OnDeliver != nil {
		h.OnDeliver(db)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
