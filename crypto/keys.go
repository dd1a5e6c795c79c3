/*
Package crypto holds the key types accepted by the signature authentication.

Only ed25519 is supported. A public key grants the condition
sigs/ed25519/<public key bytes>, whose address is the account address of
the key owner.
*/
package crypto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pledge"
)

// ExtensionName is the condition extension of signature based permissions.
const ExtensionName = "sigs"

// PubKey verifies signatures.
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() pledge.Condition
}

// Signer produces signatures. No serialization is required so that
// hardware wallets can implement it.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PublicKey) Reset()         { *m = PublicKey{} }
func (m *PublicKey) String() string { return proto.CompactTextString(m) }
func (*PublicKey) ProtoMessage()    {}

type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PrivateKey) Reset()         { *m = PrivateKey{} }
func (m *PrivateKey) String() string { return "PrivateKey{...}" }
func (*PrivateKey) ProtoMessage()    {}

type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString(m) }
func (*Signature) ProtoMessage()    {}

// Address returns the account address of the key.
func (p *PublicKey) Address() pledge.Address {
	return p.Condition().Address()
}
