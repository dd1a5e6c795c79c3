package escrow

import (
	"sync"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/orm"
)

// registry is the storage shared by both registries: a single list model
// stored under a derived, well known address. Appends are serialized by mu.
type registry struct {
	mu     sync.Mutex
	bucket orm.ModelBucket
	addr   pledge.Address
	nonce  uint8
}

func newRegistry(bucket, seed string, proto orm.Model) *registry {
	addr, nonce := registryAddress(seed)
	return &registry{
		bucket: orm.NewModelBucket(bucket, proto),
		addr:   addr,
		nonce:  nonce,
	}
}

func (r *registry) create(db pledge.KVStore, list orm.Model) error {
	if r.bucket.Has(db, r.addr) {
		return errors.Wrapf(ErrAlreadyInitialized, "registry %s", r.addr)
	}
	return r.bucket.Put(db, r.addr, list)
}

func (r *registry) load(db pledge.ReadOnlyKVStore, dst orm.Model) error {
	if err := r.bucket.One(db, r.addr, dst); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrNotFound, "registry %s not initialized", r.addr)
		}
		return err
	}
	return nil
}

// EscrowRegistry records a snapshot of every created escrow.
type EscrowRegistry struct {
	r *registry
}

func NewEscrowRegistry() *EscrowRegistry {
	return &EscrowRegistry{r: newRegistry(escrowListBucket, escrowListSeed, &EscrowList{})}
}

// Address is the well known address of the registry.
func (er *EscrowRegistry) Address() pledge.Address {
	return er.r.addr
}

// Init creates an empty registry holding up to capacity entries.
func (er *EscrowRegistry) Init(db pledge.KVStore, capacity uint32) error {
	er.r.mu.Lock()
	defer er.r.mu.Unlock()
	return er.r.create(db, &EscrowList{Capacity: capacity, Nonce: uint32(er.r.nonce)})
}

// Append adds s at the end. It fails with ErrRegistryFull once the capacity
// is reached, the stored entries are left as they are.
func (er *EscrowRegistry) Append(db pledge.KVStore, s *EscrowSnapshot) error {
	er.r.mu.Lock()
	defer er.r.mu.Unlock()

	var list EscrowList
	if err := er.r.load(db, &list); err != nil {
		return err
	}
	if len(list.Escrows) >= int(list.Capacity) {
		return errors.Wrapf(ErrRegistryFull, "escrow registry holds %d entries", list.Capacity)
	}
	list.Escrows = append(list.Escrows, s)
	return er.r.bucket.Put(db, er.r.addr, &list)
}

// All returns the entries in insertion order.
func (er *EscrowRegistry) All(db pledge.ReadOnlyKVStore) ([]*EscrowSnapshot, error) {
	var list EscrowList
	if err := er.r.load(db, &list); err != nil {
		return nil, err
	}
	return list.Escrows, nil
}

// PaymentRegistry records every release.
type PaymentRegistry struct {
	r *registry
}

func NewPaymentRegistry() *PaymentRegistry {
	return &PaymentRegistry{r: newRegistry(paymentListBucket, paymentListSeed, &PaymentList{})}
}

// Address is the well known address of the registry.
func (pr *PaymentRegistry) Address() pledge.Address {
	return pr.r.addr
}

// Init creates an empty registry holding up to capacity entries.
func (pr *PaymentRegistry) Init(db pledge.KVStore, capacity uint32) error {
	pr.r.mu.Lock()
	defer pr.r.mu.Unlock()
	return pr.r.create(db, &PaymentList{Capacity: capacity, Nonce: uint32(pr.r.nonce)})
}

// Append adds p at the end. It fails with ErrRegistryFull once the capacity
// is reached.
func (pr *PaymentRegistry) Append(db pledge.KVStore, p *PaymentRecord) error {
	pr.r.mu.Lock()
	defer pr.r.mu.Unlock()

	var list PaymentList
	if err := pr.r.load(db, &list); err != nil {
		return err
	}
	if len(list.Payments) >= int(list.Capacity) {
		return errors.Wrapf(ErrRegistryFull, "payment registry holds %d entries", list.Capacity)
	}
	list.Payments = append(list.Payments, p)
	return pr.r.bucket.Put(db, pr.r.addr, &list)
}

// All returns the entries in insertion order.
func (pr *PaymentRegistry) All(db pledge.ReadOnlyKVStore) ([]*PaymentRecord, error) {
	var list PaymentList
	if err := pr.r.load(db, &list); err != nil {
		return nil, err
	}
	return list.Payments, nil
}
