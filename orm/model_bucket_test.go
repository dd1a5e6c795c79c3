package orm

import (
	"testing"

	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	var c counter
	err := b.One(db, []byte("missing"), &c)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, b.Put(db, []byte("a"), &counter{Count: 3}))
	require.NoError(t, b.One(db, []byte("a"), &c))
	assert.EqualValues(t, 3, c.Count)
	assert.True(t, b.Has(db, []byte("a")))

	var o other
	err = b.One(db, []byte("a"), &o)
	assert.True(t, errors.ErrType.Is(err))

	err = b.Put(db, []byte("b"), &counter{Count: -2})
	assert.True(t, errors.ErrModel.Is(err))
	assert.False(t, b.Has(db, []byte("b")))

	require.NoError(t, b.Delete(db, []byte("a")))
	assert.False(t, b.Has(db, []byte("a")))
	assert.True(t, errors.ErrNotFound.Is(b.Delete(db, []byte("a"))))
}
