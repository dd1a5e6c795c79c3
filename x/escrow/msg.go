package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/coin"
	"github.com/iov-one/pledge/errors"
)

const (
	pathCreateMsg              = "escrow/create"
	pathFulfillMsg             = "escrow/fulfill"
	pathReleaseMsg             = "escrow/release"
	pathRefundMsg              = "escrow/refund"
	pathInitEscrowListMsg      = "escrow/init_escrow_list"
	pathInitPaymentListMsg     = "escrow/init_payment_list"
	pathListEscrowsMsg         = "escrow/list_escrows"
	pathListPaymentsMsg        = "escrow/list_payments"
	pathUpdateConfigurationMsg = "escrow/update_configuration"
)

// CreateMsg locks Amount of the depositor funds for the recipient. The
// depositor defaults to the main signer.
type CreateMsg struct {
	Depositor  pledge.Address  `protobuf:"bytes,1,opt,name=depositor,proto3" json:"depositor,omitempty"`
	Recipient  pledge.Address  `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	Amount     *coin.Coin      `protobuf:"bytes,3,opt,name=amount" json:"amount"`
	Condition  string          `protobuf:"bytes,4,opt,name=condition,proto3" json:"condition"`
	ExpiryTime pledge.UnixTime `protobuf:"varint,5,opt,name=expiry_time,json=expiryTime,proto3,casttype=UnixTime" json:"expiry_time"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

var _ pledge.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Validate() error {
	if len(m.Depositor) != 0 {
		if err := m.Depositor.Validate(); err != nil {
			return errors.Wrap(err, "depositor")
		}
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if m.Amount == nil || !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if m.ExpiryTime == 0 {
		return errors.Wrap(errors.ErrInput, "missing expiry time")
	}
	if err := m.ExpiryTime.Validate(); err != nil {
		return errors.Wrap(err, "expiry time")
	}
	return nil
}

// FulfillMsg is sent by the recipient to attest that the condition of the
// escrow was met.
type FulfillMsg struct {
	Depositor pledge.Address `protobuf:"bytes,1,opt,name=depositor,proto3" json:"depositor"`
	Recipient pledge.Address `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	Asset     string         `protobuf:"bytes,3,opt,name=asset,proto3" json:"asset"`
}

func (m *FulfillMsg) Reset()         { *m = FulfillMsg{} }
func (m *FulfillMsg) String() string { return proto.CompactTextString(m) }
func (*FulfillMsg) ProtoMessage()    {}

var _ pledge.Msg = (*FulfillMsg)(nil)

func (FulfillMsg) Path() string {
	return pathFulfillMsg
}

func (m *FulfillMsg) Validate() error {
	return validateTriple(m.Depositor, m.Recipient, m.Asset)
}

// ReleaseMsg sends the funds of a fulfilled escrow to its recipient.
// Holding is optional, when set it must be the escrow holding account.
type ReleaseMsg struct {
	Depositor pledge.Address `protobuf:"bytes,1,opt,name=depositor,proto3" json:"depositor"`
	Recipient pledge.Address `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	Asset     string         `protobuf:"bytes,3,opt,name=asset,proto3" json:"asset"`
	Holding   pledge.Address `protobuf:"bytes,4,opt,name=holding,proto3" json:"holding,omitempty"`
}

func (m *ReleaseMsg) Reset()         { *m = ReleaseMsg{} }
func (m *ReleaseMsg) String() string { return proto.CompactTextString(m) }
func (*ReleaseMsg) ProtoMessage()    {}

var _ pledge.Msg = (*ReleaseMsg)(nil)

func (ReleaseMsg) Path() string {
	return pathReleaseMsg
}

func (m *ReleaseMsg) Validate() error {
	if len(m.Holding) != 0 {
		if err := m.Holding.Validate(); err != nil {
			return errors.Wrap(err, "holding")
		}
	}
	return validateTriple(m.Depositor, m.Recipient, m.Asset)
}

// RefundMsg returns the funds of an expired escrow to its depositor.
type RefundMsg struct {
	Depositor pledge.Address `protobuf:"bytes,1,opt,name=depositor,proto3" json:"depositor"`
	Recipient pledge.Address `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	Asset     string         `protobuf:"bytes,3,opt,name=asset,proto3" json:"asset"`
}

func (m *RefundMsg) Reset()         { *m = RefundMsg{} }
func (m *RefundMsg) String() string { return proto.CompactTextString(m) }
func (*RefundMsg) ProtoMessage()    {}

var _ pledge.Msg = (*RefundMsg)(nil)

func (RefundMsg) Path() string {
	return pathRefundMsg
}

func (m *RefundMsg) Validate() error {
	return validateTriple(m.Depositor, m.Recipient, m.Asset)
}

func validateTriple(depositor, recipient pledge.Address, asset string) error {
	if err := depositor.Validate(); err != nil {
		return errors.Wrap(err, "depositor")
	}
	if err := recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if !coin.IsCC(asset) {
		return errors.Wrapf(errors.ErrType, "invalid asset %q", asset)
	}
	return nil
}

// InitEscrowListMsg creates the escrow registry.
type InitEscrowListMsg struct{}

func (m *InitEscrowListMsg) Reset()         { *m = InitEscrowListMsg{} }
func (m *InitEscrowListMsg) String() string { return proto.CompactTextString(m) }
func (*InitEscrowListMsg) ProtoMessage()    {}

func (InitEscrowListMsg) Path() string     { return pathInitEscrowListMsg }
func (*InitEscrowListMsg) Validate() error { return nil }

// InitPaymentListMsg creates the payment registry.
type InitPaymentListMsg struct{}

func (m *InitPaymentListMsg) Reset()         { *m = InitPaymentListMsg{} }
func (m *InitPaymentListMsg) String() string { return proto.CompactTextString(m) }
func (*InitPaymentListMsg) ProtoMessage()    {}

func (InitPaymentListMsg) Path() string     { return pathInitPaymentListMsg }
func (*InitPaymentListMsg) Validate() error { return nil }

// ListEscrowsMsg requests the unfulfilled escrow snapshots.
type ListEscrowsMsg struct{}

func (m *ListEscrowsMsg) Reset()         { *m = ListEscrowsMsg{} }
func (m *ListEscrowsMsg) String() string { return proto.CompactTextString(m) }
func (*ListEscrowsMsg) ProtoMessage()    {}

func (ListEscrowsMsg) Path() string     { return pathListEscrowsMsg }
func (*ListEscrowsMsg) Validate() error { return nil }

// ListPaymentsMsg requests the released payments.
type ListPaymentsMsg struct{}

func (m *ListPaymentsMsg) Reset()         { *m = ListPaymentsMsg{} }
func (m *ListPaymentsMsg) String() string { return proto.CompactTextString(m) }
func (*ListPaymentsMsg) ProtoMessage()    {}

func (ListPaymentsMsg) Path() string     { return pathListPaymentsMsg }
func (*ListPaymentsMsg) Validate() error { return nil }

// UpdateConfigurationMsg patches the escrow configuration. Only the
// configuration owner can send it.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch" json:"patch"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

var _ pledge.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if len(m.Patch.Owner) != 0 {
		if err := m.Patch.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	return nil
}

// EscrowsListed is the data returned when listing escrows.
type EscrowsListed struct {
	Escrows []*EscrowSnapshot `protobuf:"bytes,1,rep,name=escrows" json:"escrows"`
}

func (m *EscrowsListed) Reset()         { *m = EscrowsListed{} }
func (m *EscrowsListed) String() string { return proto.CompactTextString(m) }
func (*EscrowsListed) ProtoMessage()    {}

// PaymentsListed is the data returned when listing payments.
type PaymentsListed struct {
	Payments []*PaymentRecord `protobuf:"bytes,1,rep,name=payments" json:"payments"`
}

func (m *PaymentsListed) Reset()         { *m = PaymentsListed{} }
func (m *PaymentsListed) String() string { return proto.CompactTextString(m) }
func (*PaymentsListed) ProtoMessage()    {}
