package app

import (
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
type CommitStore struct {
	committed pledge.CommitKVStore
	deliver   pledge.KVCacheWrap
	check     pledge.KVCacheWrap
}

// NewCommitStore loads the latest version of the store. It sets up the
// deliver and check caches.
func NewCommitStore(store pledge.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() pledge.CommitID {
	return cs.committed.LatestVersion()
}

// Commit flushes the deliver cache and persists it. Pending check state is
// dropped, both caches start over from the new version.
func (cs *CommitStore) Commit() pledge.CommitID {
	cs.deliver.Write()
	cs.check.Discard()

	res := cs.committed.Commit()

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() pledge.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() pledge.CacheableKVStore {
	return cs.deliver
}

// Committed gives read access to the last committed state.
func (cs *CommitStore) Committed() pledge.ReadOnlyKVStore {
	return committedView{cs.committed}
}

type committedView struct {
	pledge.CommitKVStore
}

func (v committedView) Has(key []byte) bool {
	return v.Get(key) != nil
}

// _p: is a prefix for internal data
const chainIDKey = "_p:chainID"

func loadChainID(db pledge.ReadOnlyKVStore) string {
	return string(db.Get([]byte(chainIDKey)))
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(db pledge.KVStore, chainID string) error {
	if !pledge.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	if db.Has(k) {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	db.Set(k, []byte(chainID))
	return nil
}
