package escrow

import (
	"strconv"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/gconf"
	"github.com/iov-one/pledge/x"
	"github.com/iov-one/pledge/x/cash"
)

const (
	createEscrowCost int64 = 300
	fulfillCost      int64 = 50
	releaseCost      int64 = 100
	refundCost       int64 = 100
	initListCost     int64 = 500
	listCost         int64 = 10

	// EventKey is the tag naming the notification emitted by a listing.
	EventKey = "event"
	// CountKey is the tag carrying the number of listed entries.
	CountKey = "count"

	eventEscrowsListed  = "escrows_listed"
	eventPaymentsListed = "payments_listed"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r pledge.Registry, auth x.Authenticator, ledger cash.Controller) {
	ctrl := NewController(auth, ledger)
	r.Handle(pathCreateMsg, CreateEscrowHandler{ctrl: ctrl})
	r.Handle(pathFulfillMsg, FulfillHandler{ctrl: ctrl})
	r.Handle(pathReleaseMsg, ReleaseHandler{ctrl: ctrl})
	r.Handle(pathRefundMsg, RefundHandler{ctrl: ctrl})
	r.Handle(pathInitEscrowListMsg, InitEscrowListHandler{ctrl: ctrl})
	r.Handle(pathInitPaymentListMsg, InitPaymentListHandler{ctrl: ctrl})
	r.Handle(pathListEscrowsMsg, ListEscrowsHandler{ctrl: ctrl})
	r.Handle(pathListPaymentsMsg, ListPaymentsHandler{ctrl: ctrl})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(optKey, &Configuration{}, auth))
}

// CreateEscrowHandler locks the depositor funds in a new escrow.
type CreateEscrowHandler struct {
	ctrl *Controller
}

var _ pledge.Handler = CreateEscrowHandler{}

func (h CreateEscrowHandler) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	amount := *msg.Amount
	if _, _, err := h.ctrl.creatable(ctx, db, msg.Depositor, msg.Recipient, amount, msg.Condition, msg.ExpiryTime); err != nil {
		return nil, err
	}
	return &pledge.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver returns the escrow key, which is also its holding account, as
// data.
func (h CreateEscrowHandler) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	escrow, err := h.ctrl.CreateEscrow(ctx, db, msg.Depositor, msg.Recipient, *msg.Amount, msg.Condition, msg.ExpiryTime)
	if err != nil {
		return nil, err
	}
	key, err := HoldingAddress(escrow.Depositor, escrow.Recipient, escrow.Asset)
	if err != nil {
		return nil, err
	}
	return &pledge.DeliverResult{Data: key}, nil
}

// validate returns the message with the depositor defaulting to the main
// signer.
func (h CreateEscrowHandler) validate(ctx pledge.Context, tx pledge.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if len(msg.Depositor) == 0 {
		signer := x.MainSigner(ctx, h.ctrl.auth)
		if signer == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		msg.Depositor = signer.Address()
	}
	return &msg, nil
}

// FulfillHandler marks the escrow condition as met.
type FulfillHandler struct {
	ctrl *Controller
}

var _ pledge.Handler = FulfillHandler{}

func (h FulfillHandler) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	key, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.fulfillable(ctx, db, key); err != nil {
		return nil, err
	}
	return &pledge.CheckResult{GasAllocated: fulfillCost}, nil
}

func (h FulfillHandler) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	key, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.FulfillCondition(ctx, db, key); err != nil {
		return nil, err
	}
	return &pledge.DeliverResult{}, nil
}

func (h FulfillHandler) validate(tx pledge.Tx) (pledge.Address, error) {
	var msg FulfillMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return HoldingAddress(msg.Depositor, msg.Recipient, msg.Asset)
}

// ReleaseHandler pays a fulfilled escrow out to its recipient.
type ReleaseHandler struct {
	ctrl *Controller
}

var _ pledge.Handler = ReleaseHandler{}

func (h ReleaseHandler) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	msg, key, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	if _, _, err := h.ctrl.releasable(ctx, db, key, msg.Holding); err != nil {
		return nil, err
	}
	return &pledge.CheckResult{GasAllocated: releaseCost}, nil
}

// Deliver returns the payment record as data.
func (h ReleaseHandler) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	msg, key, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	payment, err := h.ctrl.ReleasePayment(ctx, db, key, msg.Holding)
	if err != nil {
		return nil, err
	}
	data, err := pledge.Marshal(payment)
	if err != nil {
		return nil, err
	}
	return &pledge.DeliverResult{Data: data}, nil
}

func (h ReleaseHandler) validate(tx pledge.Tx) (*ReleaseMsg, pledge.Address, error) {
	var msg ReleaseMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	key, err := HoldingAddress(msg.Depositor, msg.Recipient, msg.Asset)
	if err != nil {
		return nil, nil, err
	}
	return &msg, key, nil
}

// RefundHandler returns an expired escrow to its depositor.
type RefundHandler struct {
	ctrl *Controller
}

var _ pledge.Handler = RefundHandler{}

func (h RefundHandler) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	key, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	if _, _, err := h.ctrl.refundable(ctx, db, key); err != nil {
		return nil, err
	}
	return &pledge.CheckResult{GasAllocated: refundCost}, nil
}

func (h RefundHandler) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	key, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Refund(ctx, db, key); err != nil {
		return nil, err
	}
	return &pledge.DeliverResult{}, nil
}

func (h RefundHandler) validate(tx pledge.Tx) (pledge.Address, error) {
	var msg RefundMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return HoldingAddress(msg.Depositor, msg.Recipient, msg.Asset)
}

// InitEscrowListHandler creates the escrow registry.
type InitEscrowListHandler struct {
	ctrl *Controller
}

var _ pledge.Handler = InitEscrowListHandler{}

func (h InitEscrowListHandler) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pledge.CheckResult{GasAllocated: initListCost}, nil
}

func (h InitEscrowListHandler) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	var msg InitEscrowListMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.InitializeEscrowList(ctx, db); err != nil {
		return nil, err
	}
	return &pledge.DeliverResult{Data: h.ctrl.list.Address()}, nil
}

func (h InitEscrowListHandler) validate(ctx pledge.Context, db pledge.ReadOnlyKVStore, tx pledge.Tx) error {
	var msg InitEscrowListMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.initCapacity(ctx, db); err != nil {
		return err
	}
	if h.ctrl.list.r.bucket.Has(db, h.ctrl.list.Address()) {
		return errors.Wrap(ErrAlreadyInitialized, "escrow registry")
	}
	return nil
}

// InitPaymentListHandler creates the payment registry.
type InitPaymentListHandler struct {
	ctrl *Controller
}

var _ pledge.Handler = InitPaymentListHandler{}

func (h InitPaymentListHandler) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pledge.CheckResult{GasAllocated: initListCost}, nil
}

func (h InitPaymentListHandler) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	var msg InitPaymentListMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.InitializePaymentList(ctx, db); err != nil {
		return nil, err
	}
	return &pledge.DeliverResult{Data: h.ctrl.payments.Address()}, nil
}

func (h InitPaymentListHandler) validate(ctx pledge.Context, db pledge.ReadOnlyKVStore, tx pledge.Tx) error {
	var msg InitPaymentListMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.initCapacity(ctx, db); err != nil {
		return err
	}
	if h.ctrl.payments.r.bucket.Has(db, h.ctrl.payments.Address()) {
		return errors.Wrap(ErrAlreadyInitialized, "payment registry")
	}
	return nil
}

// ListEscrowsHandler lists the unfulfilled escrow snapshots. The listing
// is logged and announced with the escrows_listed event tag.
type ListEscrowsHandler struct {
	ctrl *Controller
}

var _ pledge.Handler = ListEscrowsHandler{}

func (h ListEscrowsHandler) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	var msg ListEscrowsMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.ctrl.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "listing must be signed")
	}
	return &pledge.CheckResult{GasAllocated: listCost}, nil
}

func (h ListEscrowsHandler) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	var msg ListEscrowsMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	escrows, err := h.ctrl.ListConditionalEscrows(ctx, db)
	if err != nil {
		return nil, err
	}
	data, err := pledge.Marshal(&EscrowsListed{Escrows: escrows})
	if err != nil {
		return nil, err
	}
	res := &pledge.DeliverResult{Data: data}
	res.AddTag(EventKey, eventEscrowsListed)
	res.AddTag(CountKey, strconv.Itoa(len(escrows)))
	return res, nil
}

// ListPaymentsHandler lists the released payments. The listing is logged
// and announced with the payments_listed event tag.
type ListPaymentsHandler struct {
	ctrl *Controller
}

var _ pledge.Handler = ListPaymentsHandler{}

func (h ListPaymentsHandler) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	var msg ListPaymentsMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.ctrl.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "listing must be signed")
	}
	return &pledge.CheckResult{GasAllocated: listCost}, nil
}

func (h ListPaymentsHandler) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	var msg ListPaymentsMsg
	if err := pledge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	payments, err := h.ctrl.ListReleasedPayments(ctx, db)
	if err != nil {
		return nil, err
	}
	data, err := pledge.Marshal(&PaymentsListed{Payments: payments})
	if err != nil {
		return nil, err
	}
	res := &pledge.DeliverResult{Data: data}
	res.AddTag(EventKey, eventPaymentsListed)
	res.AddTag(CountKey, strconv.Itoa(len(payments)))
	return res, nil
}
