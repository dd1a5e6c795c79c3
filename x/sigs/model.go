package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/crypto"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is the greatest nonce a javascript client can represent.
const maxSequenceValue = (1 << 53) - 1

// UserData is the signer state. It is stored under the address of its
// public key once the key signed its first transaction.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if u.Pubkey == nil {
		return errors.Wrap(ErrMissingPubkey, "user")
	}
	return u.Pubkey.Validate()
}

func (u *UserData) Copy() orm.Model {
	return &UserData{
		Pubkey:   u.Pubkey,
		Sequence: u.Sequence,
	}
}

// CheckAndIncrementSequence increments the sequence if it equals expected.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// AsUser casts a bucket object. Returns nil for a nil object.
func AsUser(obj orm.Object) *UserData {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*UserData)
}

// NewUser returns a fresh account object for the key.
func NewUser(pubkey *crypto.PublicKey) orm.Object {
	var key pledge.Address
	if pubkey != nil {
		key = pubkey.Address()
	}
	return orm.NewSimpleObj(key, &UserData{Pubkey: pubkey})
}

// Bucket extends orm.Bucket with GetOrCreate.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewUser(nil)),
	}
}

// GetOrCreate returns the stored account or a new one at sequence zero.
func (b Bucket) GetOrCreate(db pledge.ReadOnlyKVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err == nil && obj == nil {
		obj = NewUser(pubkey)
	}
	return obj, err
}

// Sequence returns the next sequence expected from the owner of addr.
func (b Bucket) Sequence(db pledge.ReadOnlyKVStore, addr pledge.Address) (int64, error) {
	obj, err := b.Get(db, addr)
	if err != nil || obj == nil {
		return 0, err
	}
	return AsUser(obj).Sequence, nil
}
