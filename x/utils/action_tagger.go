package utils

import (
	"github.com/iov-one/pledge"
)

// ActionTagger adds the tag action=<message path> to every successful
// delivery, so that clients can subscribe to a kind of message.
type ActionTagger struct{}

var _ pledge.Decorator = ActionTagger{}

// ActionKey is used by ActionTagger as the Key in the Tag it appends
const ActionKey = "action"

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Checker) (*pledge.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Deliverer) (*pledge.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.AddTag(ActionKey, msg.Path())
	return res, nil
}
