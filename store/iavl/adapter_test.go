package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/pledge/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func makeCommitStore(t testing.TB) (CommitStore, func()) {
	dir, err := ioutil.TempDir("", "iavl-adapter-")
	require.NoError(t, err)
	return NewCommitStore(dir, "base"), func() { os.RemoveAll(dir) }
}

func suite(t *testing.T) *store.TestSuite {
	return store.NewTestSuite(func() (store.CacheableKVStore, func()) {
		commit, cleanup := makeCommitStore(t)
		return commit.Adapter(), cleanup
	})
}

func TestCacheGetSet(t *testing.T) {
	suite(t).GetSet(t)
}

func TestCacheConflicts(t *testing.T) {
	suite(t).CacheConflicts(t)
}

func TestNestedWraps(t *testing.T) {
	suite(t).NestedWraps(t)
}

func TestCommitVersions(t *testing.T) {
	commit := MemStore()
	require.NoError(t, commit.LoadLatestVersion())
	assert.EqualValues(t, 0, commit.LatestVersion().Version)

	k, v := []byte("escrow"), []byte("open")
	cache := commit.CacheWrap()
	cache.Set(k, v)
	cache.Write()

	assert.Nil(t, commit.Get(k), "uncommitted write must not be visible")

	id := commit.Commit()
	assert.EqualValues(t, 1, id.Version)
	assert.NotEmpty(t, id.Hash)
	assert.Equal(t, v, commit.Get(k))
	assert.Equal(t, id, commit.LatestVersion())

	cache = commit.CacheWrap()
	cache.Delete(k)
	cache.Write()
	id2 := commit.Commit()
	assert.EqualValues(t, 2, id2.Version)
	assert.NotEqual(t, id.Hash, id2.Hash)
	assert.Nil(t, commit.Get(k))
}

func TestCommitReload(t *testing.T) {
	db := dbm.NewMemDB()

	first := NewCommitStoreFromDB(db)
	require.NoError(t, first.LoadLatestVersion())
	cache := first.CacheWrap()
	cache.Set([]byte("balance"), []byte("100"))
	cache.Write()
	want := first.Commit()

	second := NewCommitStoreFromDB(db)
	require.NoError(t, second.LoadLatestVersion())
	assert.Equal(t, want, second.LatestVersion())
	assert.Equal(t, []byte("100"), second.Get([]byte("balance")))
}
