package store

import "github.com/iov-one/pledge"

// Shorter names for the store interfaces declared in the root package.
type (
	ReadOnlyKVStore  = pledge.ReadOnlyKVStore
	SetDeleter       = pledge.SetDeleter
	KVStore          = pledge.KVStore
	CacheableKVStore = pledge.CacheableKVStore
	KVCacheWrap      = pledge.KVCacheWrap
	CommitKVStore    = pledge.CommitKVStore
	CommitID         = pledge.CommitID
)

// Batch collects writes that are applied together by Write.
type Batch interface {
	SetDeleter
	Write()
}

// Model is a key value pair.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair builds a Model.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}
