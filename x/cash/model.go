package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/coin"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the stored content of a wallet.
type Set struct {
	Coins []*coin.Coin `protobuf:"bytes,1,rep,name=coins" json:"coins"`
}

func (m *Set) Reset()         { *m = Set{} }
func (m *Set) String() string { return proto.CompactTextString(m) }
func (*Set) ProtoMessage()    {}

var _ orm.Model = (*Set)(nil)

// Validate requires a non empty, normalized set. Empty wallets are not
// stored.
func (s *Set) Validate() error {
	if len(s.Coins) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no coins")
	}
	return coin.Coins(s.Coins).Validate()
}

func (s *Set) Copy() orm.Model {
	return &Set{Coins: coin.Coins(s.Coins).Clone()}
}

// Wallet binds a set of coins to the address that owns it.
type Wallet struct {
	key   pledge.Address
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet creates an empty wallet with this address
func NewWallet(key pledge.Address) *Wallet {
	return &Wallet{key: key, value: new(Set)}
}

// WalletWith returns a wallet holding the given coins.
func WalletWith(key pledge.Address, coins ...coin.Coin) (*Wallet, error) {
	cs, err := coin.CombineCoins(coins...)
	if err != nil {
		return nil, err
	}
	return &Wallet{key: key, value: &Set{Coins: cs}}, nil
}

func (w Wallet) Value() orm.Model {
	return w.value
}

func (w Wallet) Key() []byte {
	return w.key
}

func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

func (w Wallet) Validate() error {
	if err := w.key.Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return w.value.Validate()
}

func (w *Wallet) Clone() orm.Object {
	res := &Wallet{value: w.value.Copy().(*Set)}
	if len(w.key) > 0 {
		res.key = append(pledge.Address(nil), w.key...)
	}
	return res
}

// Coins returns the coins stored in the wallet
func (w Wallet) Coins() coin.Coins {
	return coin.Coins(w.value.Coins)
}

func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Coins().Add(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

func (w *Wallet) Subtract(c coin.Coin) error {
	cs, err := w.Coins().Subtract(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// Get returns nil if the address has no wallet.
func (b Bucket) Get(db pledge.ReadOnlyKVStore, key pledge.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil || obj == nil {
		return nil, err
	}
	return obj.(*Wallet), nil
}

func (b Bucket) GetOrCreate(db pledge.ReadOnlyKVStore, key pledge.Address) (*Wallet, error) {
	w, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = NewWallet(key)
	}
	return w, nil
}

// Save stores the wallet, or removes it once it holds no coins.
func (b Bucket) Save(db pledge.KVStore, w *Wallet) error {
	if w.Coins().IsEmpty() {
		b.Bucket.Delete(db, w.key)
		return nil
	}
	return b.Bucket.Save(db, w)
}
