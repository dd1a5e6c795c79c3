package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pledge/errors"
)

// counter is a minimal model used by the tests of this package.
type counter struct {
	Count int64  `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
	Owner []byte `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (m *counter) Reset()         { *m = counter{} }
func (m *counter) String() string { return proto.CompactTextString(m) }
func (*counter) ProtoMessage()    {}

func (m *counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func (m *counter) Copy() Model {
	cpy := *m
	return &cpy
}

// other is a model of a different type, stored to provoke type errors.
type other struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *other) Reset()         { *m = other{} }
func (m *other) String() string { return proto.CompactTextString(m) }
func (*other) ProtoMessage()    {}
func (m *other) Validate() error { return nil }
func (m *other) Copy() Model     { cpy := *m; return &cpy }
