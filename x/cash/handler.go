package cash

import (
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r pledge.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ pledge.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the message and the source signature. Funds are not
// checked, the balance may change before delivery.
func (h SendHandler) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &pledge.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	msg, authority, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, authority, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	res := &pledge.DeliverResult{}
	res.AddTag(BucketName, msg.Destination.String())
	return res, nil
}

func (h SendHandler) validate(ctx pledge.Context, tx pledge.Tx) (*SendMsg, pledge.Condition, error) {
	var msg SendMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	authority := x.FindCondition(ctx, h.auth, msg.Source)
	if authority == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, authority, nil
}
