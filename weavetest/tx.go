package weavetest

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pledge"
)

// Tx is a mock transaction carrying a single message.
type Tx struct {
	Msg pledge.Msg
	// Err, if set, is returned by GetMsg.
	Err error
}

var _ pledge.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (pledge.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return "weavetest.Tx" }
func (*Tx) ProtoMessage()     {}

// Msg is a mock message routed by RoutePath. Only Payload is serialized.
type Msg struct {
	Payload   []byte `protobuf:"bytes,1,opt,name=payload,proto3" json:"payload,omitempty"`
	RoutePath string `json:"-"`
	// Err, if set, is returned by Validate.
	Err error `json:"-"`
}

var _ pledge.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return proto.CompactTextString(m) }
func (*Msg) ProtoMessage()    {}
