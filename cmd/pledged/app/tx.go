package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/x/cash"
	"github.com/iov-one/pledge/x/escrow"
	"github.com/iov-one/pledge/x/sigs"
)

// Tx is the transaction envelope of the node. The message travels
// serialized in Payload and is decoded by its Path.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures" json:"signatures,omitempty"`
	Path       string               `protobuf:"bytes,2,opt,name=path,proto3" json:"path"`
	Payload    []byte               `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

var _ pledge.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// messages lists every message the node accepts, by path.
var messages = map[string]func() pledge.Msg{
	(&cash.SendMsg{}).Path():                  func() pledge.Msg { return &cash.SendMsg{} },
	(&escrow.CreateMsg{}).Path():              func() pledge.Msg { return &escrow.CreateMsg{} },
	(&escrow.FulfillMsg{}).Path():             func() pledge.Msg { return &escrow.FulfillMsg{} },
	(&escrow.ReleaseMsg{}).Path():             func() pledge.Msg { return &escrow.ReleaseMsg{} },
	(&escrow.RefundMsg{}).Path():              func() pledge.Msg { return &escrow.RefundMsg{} },
	(&escrow.InitEscrowListMsg{}).Path():      func() pledge.Msg { return &escrow.InitEscrowListMsg{} },
	(&escrow.InitPaymentListMsg{}).Path():     func() pledge.Msg { return &escrow.InitPaymentListMsg{} },
	(&escrow.ListEscrowsMsg{}).Path():         func() pledge.Msg { return &escrow.ListEscrowsMsg{} },
	(&escrow.ListPaymentsMsg{}).Path():        func() pledge.Msg { return &escrow.ListPaymentsMsg{} },
	(&escrow.UpdateConfigurationMsg{}).Path(): func() pledge.Msg { return &escrow.UpdateConfigurationMsg{} },
}

// NewMsg returns an empty message of the type registered for path.
func NewMsg(path string) (pledge.Msg, error) {
	create, ok := messages[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown message path %q", path)
	}
	return create(), nil
}

// NewTx wraps msg in an unsigned transaction.
func NewTx(msg pledge.Msg) (*Tx, error) {
	raw, err := pledge.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "payload")
	}
	return &Tx{Path: msg.Path(), Payload: raw}, nil
}

// GetMsg decodes the payload into the message registered for the path.
func (tx *Tx) GetMsg() (pledge.Msg, error) {
	msg, err := NewMsg(tx.Path)
	if err != nil {
		return nil, err
	}
	if err := pledge.Unmarshal(tx.Payload, msg); err != nil {
		return nil, errors.Wrapf(err, "%s payload", tx.Path)
	}
	return msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Path: tx.Path, Payload: tx.Payload}
	return pledge.Marshal(&unsigned)
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(raw []byte) (pledge.Tx, error) {
	var tx Tx
	if err := pledge.Unmarshal(raw, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
