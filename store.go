package pledge

// ReadOnlyKVStore is the read half of a key value store.
type ReadOnlyKVStore interface {
	// Get returns nil if the key does not exist. Panics on nil key.
	Get(key []byte) []byte
	// Has panics on nil key.
	Has(key []byte) bool
}

// SetDeleter is the write half of a key value store.
type SetDeleter interface {
	// Set panics on nil key.
	Set(key, value []byte)
	// Delete panics on nil key.
	Delete(key []byte)
}

// KVStore is what handlers and controllers operate on. Escrows, balances
// and registries are all addressed by key, there is no range access.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// CacheableKVStore can buffer writes in a cache wrap.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes on top of a parent store. Write flushes them to
// the parent, Discard drops them. A request runs inside one cache wrap, so
// it either lands as a whole or not at all.
//
// A KVCacheWrap must not be used after Write or Discard.
type KVCacheWrap interface {
	CacheableKVStore
	Write()
	Discard()
}

// CommitID identifies a committed version of the state.
type CommitID struct {
	Version int64
	Hash    []byte
}

// CommitKVStore is the persistent root store of the application.
type CommitKVStore interface {
	// Get reads committed state only.
	Get(key []byte) []byte

	// CacheWrap must be used for all writes. Calling Write on it makes
	// the changes part of the next Commit.
	CacheWrap() KVCacheWrap

	// Commit persists all written changes and returns the new version.
	Commit() CommitID

	// LoadLatestVersion loads the last committed version from disk.
	LoadLatestVersion() error

	// LatestVersion returns the last committed version.
	LatestVersion() CommitID
}
