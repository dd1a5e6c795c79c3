package iavl

import (
	"github.com/iov-one/pledge/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore is the persistent, versioned application state. Every
// Commit saves a new iavl version whose root hash is the app hash.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens, or creates, a goleveldb backed store in dir.
func NewCommitStore(dir, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	return NewCommitStoreFromDB(db)
}

// NewCommitStoreFromDB uses an already opened database. Tests pass
// dbm.NewMemDB here.
func NewCommitStoreFromDB(db dbm.DB) CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(db, DefaultCacheSize)}
}

// MemStore returns a commit store kept only in memory.
func MemStore() CommitStore {
	return NewCommitStoreFromDB(dbm.NewMemDB())
}

// Get reads the last committed state.
func (s CommitStore) Get(key []byte) []byte {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val
}

// Commit saves the working tree as a new version.
func (s CommitStore) Commit() store.CommitID {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		panic(err)
	}
	return store.CommitID{Version: version, Hash: hash}
}

// LoadLatestVersion loads the last saved version. After a crash during
// commit the previous version is loaded.
func (s CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return err
}

func (s CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// CacheWrap buffers writes in a btree. Writing the cache moves them into
// the working tree, where they wait for the next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter exposes the working tree without buffering.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return working{s.tree}
}

// working is the uncommitted tree that cache wraps read from and flush to.
type working struct {
	tree *iavl.MutableTree
}

func (w working) Get(key []byte) []byte {
	_, val := w.tree.Get(key)
	return val
}

func (w working) Has(key []byte) bool {
	return w.tree.Has(key)
}

func (w working) Set(key, value []byte) {
	w.tree.Set(key, value)
}

func (w working) Delete(key []byte) {
	w.tree.Remove(key)
}

func (w working) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(w, store.NewNonAtomicBatch(w), nil)
}
