package store

import (
	"bytes"
	"testing"
)

// TestSuite runs the same KVStore checks against any cacheable store. Both
// the btree cache and the iavl commit store use it.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function releasing it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that writes are visible in the cache only until Write, and
// never after Discard.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("escrow:1"), []byte("open")
	s.AssertGetHas(t, base, k, nil, false)
	base.Set(k, v)
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	k2, v2 := []byte("cash:abc"), []byte("100")
	cache.Set(k2, v2)
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	cache.Write()
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	k3, v3 := []byte("payment:1"), []byte("released")
	discarded := base.CacheWrap()
	discarded.Set(k3, v3)
	discarded.Delete(k)
	s.AssertGetHas(t, discarded, k, nil, false)
	discarded.Discard()
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k3, nil, false)

	deleter := base.CacheWrap()
	deleter.Delete(k)
	deleter.Write()
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// CacheConflicts checks overwrites and deletes of parent values.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := [][]byte{[]byte("k0"), []byte("k1"), []byte("k2"), []byte("k3")}
	vs := [][]byte{[]byte("v0"), []byte("v1"), []byte("v2"), []byte("v3"), []byte("v4")}

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[4]), SetOp(ks[3], vs[3]), DelOp(ks[2])},
			parentQueries: []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			childQueries:  []Model{Pair(ks[1], vs[4]), Pair(ks[2], nil), Pair(ks[3], vs[3])},
		},
		"delete then set again": {
			parentOps:     []Op{SetOp(ks[0], vs[0])},
			childOps:      []Op{DelOp(ks[0]), SetOp(ks[0], vs[1])},
			parentQueries: []Model{Pair(ks[0], vs[0])},
			childQueries:  []Model{Pair(ks[0], vs[1])},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				op.Apply(parent)
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				op.Apply(child)
			}
			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			child.Write()
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// NestedWraps checks that a nested wrap only reaches the base after both
// levels are written.
func (s *TestSuite) NestedWraps(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("nested"), []byte("value")
	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	inner.Set(k, v)

	s.AssertGetHas(t, outer, k, nil, false)
	inner.Write()
	s.AssertGetHas(t, outer, k, v, true)
	s.AssertGetHas(t, base, k, nil, false)
	outer.Write()
	s.AssertGetHas(t, base, k, v, true)
}

// AssertGetHas fails the test if Get or Has of key are not as expected.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	if got := kv.Get(key); !bytes.Equal(got, val) {
		t.Fatalf("get %q: want %q, got %q", key, val, got)
	}
	if got := kv.Has(key); got != has {
		t.Fatalf("has %q: want %v, got %v", key, has, got)
	}
}
