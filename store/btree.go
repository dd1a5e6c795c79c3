package store

import (
	"bytes"
	"fmt"

	"github.com/google/btree"
)

// DefaultFreeListSize is the number of nodes kept for reuse between cache
// wraps.
const DefaultFreeListSize = btree.DefaultFreeListSize

// MemStore returns an in-memory store. Nothing is persisted, use it in tests
// and for local simulation.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, NewNonAtomicBatch(e), nil)
}

// BTreeCacheWrap buffers writes in a btree over a read only parent. Reads
// hit the btree first and fall back to the parent. Writes are also recorded
// in a batch that is flushed to the parent on Write.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap wraps kv. All writes must go through batch, kv is only
// read. free may be nil, pass an existing list to share nodes between
// nested wraps.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another btree on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, NewNonAtomicBatch(b), b.free)
}

// Write flushes the batch to the parent and clears the cache.
func (b BTreeCacheWrap) Write() {
	b.batch.Write()
	b.clear()
}

// Discard drops every buffered write.
func (b BTreeCacheWrap) Discard() {
	if r, ok := b.batch.(interface{ Reset() }); ok {
		r.Reset()
	}
	b.clear()
}

func (b BTreeCacheWrap) clear() {
	for b.bt.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) {
	if key == nil {
		panic("nil key")
	}
	b.bt.ReplaceOrInsert(setItem{bkey{key}, value})
	b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) {
	if key == nil {
		panic("nil key")
	}
	b.bt.ReplaceOrInsert(deletedItem{bkey{key}})
	b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) []byte {
	switch item := b.bt.Get(bkey{key}).(type) {
	case nil:
		return b.back.Get(key)
	case setItem:
		return item.value
	case deletedItem:
		return nil
	default:
		panic(fmt.Sprintf("unknown btree item %#v", item))
	}
}

func (b BTreeCacheWrap) Has(key []byte) bool {
	switch item := b.bt.Get(bkey{key}).(type) {
	case nil:
		return b.back.Has(key)
	case setItem:
		return true
	case deletedItem:
		return false
	default:
		panic(fmt.Sprintf("unknown btree item %#v", item))
	}
}

type keyer interface {
	Key() []byte
}

// bkey is the btree ordering shared by all items.
type bkey struct {
	key []byte
}

func (k bkey) Key() []byte {
	return k.key
}

func (k bkey) Less(item btree.Item) bool {
	return bytes.Compare(k.key, item.(keyer).Key()) < 0
}

type setItem struct {
	bkey
	value []byte
}

type deletedItem struct {
	bkey
}
