package store

import "fmt"

type opKind int32

const (
	setKind opKind = iota + 1
	delKind
)

// Op is a single buffered set or delete.
type Op struct {
	kind  opKind
	key   []byte
	value []byte
}

// SetOp returns an operation that sets key to value.
func SetOp(key, value []byte) Op {
	return Op{kind: setKind, key: key, value: value}
}

// DelOp returns an operation that deletes key.
func DelOp(key []byte) Op {
	return Op{kind: delKind, key: key}
}

// Apply runs the operation against out.
func (o Op) Apply(out SetDeleter) {
	switch o.kind {
	case setKind:
		out.Set(o.key, o.value)
	case delKind:
		out.Delete(o.key)
	default:
		panic(fmt.Sprintf("unknown op kind %d", o.kind))
	}
}

// NonAtomicBatch replays the buffered operations one by one on Write. Only
// use it on top of in-memory stores or trees that are committed as a whole
// afterwards.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) {
	b.ops = append(b.ops, SetOp(key, value))
}

func (b *NonAtomicBatch) Delete(key []byte) {
	b.ops = append(b.ops, DelOp(key))
}

// Write applies all operations in order and empties the batch.
func (b *NonAtomicBatch) Write() {
	for _, op := range b.ops {
		op.Apply(b.out)
	}
	b.Reset()
}

// Reset drops all buffered operations.
func (b *NonAtomicBatch) Reset() {
	b.ops = nil
}

// Ops returns the buffered operations.
func (b *NonAtomicBatch) Ops() []Op {
	return b.ops
}

// EmptyKVStore holds nothing. It is the bottom layer of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) []byte { return nil }

func (EmptyKVStore) Has(key []byte) bool { return false }

func (EmptyKVStore) Set(key, value []byte) {}

func (EmptyKVStore) Delete(key []byte) {}
