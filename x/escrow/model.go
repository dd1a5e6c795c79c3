package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/coin"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/orm"
)

const (
	// BucketName is where the live escrows are stored.
	BucketName = "escrow"

	escrowListBucket  = "esc_list"
	paymentListBucket = "pay_list"
)

// Escrow is the live state of one escrow. It is stored under the address
// of its holding account.
type Escrow struct {
	Depositor   pledge.Address  `protobuf:"bytes,1,opt,name=depositor,proto3" json:"depositor"`
	Recipient   pledge.Address  `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	Asset       string          `protobuf:"bytes,3,opt,name=asset,proto3" json:"asset"`
	Amount      uint64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount"`
	Condition   string          `protobuf:"bytes,5,opt,name=condition,proto3" json:"condition"`
	IsFulfilled bool            `protobuf:"varint,6,opt,name=is_fulfilled,json=isFulfilled,proto3" json:"is_fulfilled"`
	ExpiryTime  pledge.UnixTime `protobuf:"varint,7,opt,name=expiry_time,json=expiryTime,proto3,casttype=UnixTime" json:"expiry_time"`
	// Nonce is the derivation nonce of the holding account.
	Nonce uint32 `protobuf:"varint,8,opt,name=nonce,proto3" json:"nonce"`
}

func (m *Escrow) Reset()         { *m = Escrow{} }
func (m *Escrow) String() string { return proto.CompactTextString(m) }
func (*Escrow) ProtoMessage()    {}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Validate() error {
	if err := e.Depositor.Validate(); err != nil {
		return errors.Wrap(err, "depositor")
	}
	if err := e.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if !coin.IsCC(e.Asset) {
		return errors.Wrapf(errors.ErrType, "invalid asset %q", e.Asset)
	}
	if e.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if err := e.ExpiryTime.Validate(); err != nil {
		return errors.Wrap(err, "expiry time")
	}
	if e.Nonce > 255 {
		return errors.Wrapf(errors.ErrInput, "nonce %d", e.Nonce)
	}
	return nil
}

func (e *Escrow) Copy() orm.Model {
	cpy := *e
	cpy.Depositor = append(pledge.Address(nil), e.Depositor...)
	cpy.Recipient = append(pledge.Address(nil), e.Recipient...)
	return &cpy
}

// Coin returns the escrowed amount as a coin.
func (e *Escrow) Coin() coin.Coin {
	return coin.NewCoin(e.Amount, e.Asset)
}

// Snapshot returns the registry entry describing the escrow in its current
// state.
func (e *Escrow) Snapshot() *EscrowSnapshot {
	return &EscrowSnapshot{
		Sender:      e.Depositor,
		Recipient:   e.Recipient,
		Asset:       e.Asset,
		Amount:      e.Amount,
		Condition:   e.Condition,
		IsFulfilled: e.IsFulfilled,
		ExpiryTime:  e.ExpiryTime,
	}
}

// EscrowSnapshot is a copy of an escrow taken when it was created.
type EscrowSnapshot struct {
	Sender      pledge.Address  `protobuf:"bytes,1,opt,name=sender,proto3" json:"sender"`
	Recipient   pledge.Address  `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	Asset       string          `protobuf:"bytes,3,opt,name=asset,proto3" json:"asset"`
	Amount      uint64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount"`
	Condition   string          `protobuf:"bytes,5,opt,name=condition,proto3" json:"condition"`
	IsFulfilled bool            `protobuf:"varint,6,opt,name=is_fulfilled,json=isFulfilled,proto3" json:"is_fulfilled"`
	ExpiryTime  pledge.UnixTime `protobuf:"varint,7,opt,name=expiry_time,json=expiryTime,proto3,casttype=UnixTime" json:"expiry_time"`
}

func (m *EscrowSnapshot) Reset()         { *m = EscrowSnapshot{} }
func (m *EscrowSnapshot) String() string { return proto.CompactTextString(m) }
func (*EscrowSnapshot) ProtoMessage()    {}

// PaymentRecord describes one release.
type PaymentRecord struct {
	Amount    uint64          `protobuf:"varint,1,opt,name=amount,proto3" json:"amount"`
	Recipient pledge.Address  `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	Timestamp pledge.UnixTime `protobuf:"varint,3,opt,name=timestamp,proto3,casttype=UnixTime" json:"timestamp"`
}

func (m *PaymentRecord) Reset()         { *m = PaymentRecord{} }
func (m *PaymentRecord) String() string { return proto.CompactTextString(m) }
func (*PaymentRecord) ProtoMessage()    {}

// EscrowList is the stored state of the escrow registry.
type EscrowList struct {
	Escrows  []*EscrowSnapshot `protobuf:"bytes,1,rep,name=escrows" json:"escrows"`
	Capacity uint32            `protobuf:"varint,2,opt,name=capacity,proto3" json:"capacity"`
	Nonce    uint32            `protobuf:"varint,3,opt,name=nonce,proto3" json:"nonce"`
}

func (m *EscrowList) Reset()         { *m = EscrowList{} }
func (m *EscrowList) String() string { return proto.CompactTextString(m) }
func (*EscrowList) ProtoMessage()    {}

var _ orm.Model = (*EscrowList)(nil)

func (l *EscrowList) Validate() error {
	return validateList(len(l.Escrows), l.Capacity)
}

func (l *EscrowList) Copy() orm.Model {
	cpy := *l
	cpy.Escrows = append([]*EscrowSnapshot(nil), l.Escrows...)
	return &cpy
}

// PaymentList is the stored state of the payment registry.
type PaymentList struct {
	Payments []*PaymentRecord `protobuf:"bytes,1,rep,name=payments" json:"payments"`
	Capacity uint32           `protobuf:"varint,2,opt,name=capacity,proto3" json:"capacity"`
	Nonce    uint32           `protobuf:"varint,3,opt,name=nonce,proto3" json:"nonce"`
}

func (m *PaymentList) Reset()         { *m = PaymentList{} }
func (m *PaymentList) String() string { return proto.CompactTextString(m) }
func (*PaymentList) ProtoMessage()    {}

var _ orm.Model = (*PaymentList)(nil)

func (l *PaymentList) Validate() error {
	return validateList(len(l.Payments), l.Capacity)
}

func (l *PaymentList) Copy() orm.Model {
	cpy := *l
	cpy.Payments = append([]*PaymentRecord(nil), l.Payments...)
	return &cpy
}

func validateList(size int, capacity uint32) error {
	if capacity == 0 {
		return errors.Wrap(errors.ErrModel, "zero capacity")
	}
	if size > int(capacity) {
		return errors.Wrapf(ErrRegistryFull, "%d entries, capacity %d", size, capacity)
	}
	return nil
}

// Configuration of the escrow extension. It is read when a registry is
// initialized and on every create.
type Configuration struct {
	Owner pledge.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	// RegistryCapacity is the number of entries a registry can hold. It is
	// fixed when the registry is initialized.
	RegistryCapacity uint32 `protobuf:"varint,2,opt,name=registry_capacity,json=registryCapacity,proto3" json:"registry_capacity"`
	// MaxConditionLength is the maximum condition size in bytes.
	MaxConditionLength uint32 `protobuf:"varint,3,opt,name=max_condition_length,json=maxConditionLength,proto3" json:"max_condition_length"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (c *Configuration) GetOwner() pledge.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if c.RegistryCapacity == 0 {
		return errors.Wrap(errors.ErrState, "registry capacity must be positive")
	}
	if c.MaxConditionLength == 0 {
		return errors.Wrap(errors.ErrState, "max condition length must be positive")
	}
	return nil
}

// DefaultConfiguration is used when genesis carries no escrow
// configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		RegistryCapacity:   10,
		MaxConditionLength: 200,
	}
}

// NewEscrowBucket returns the bucket of live escrows.
func NewEscrowBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{})
}
