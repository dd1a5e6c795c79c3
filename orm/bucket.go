/*
Package orm splits the key value store into prefixed buckets. Each bucket
holds a single model type, stored under "<bucket name>:<key>".

Escrows, wallets and signer sequences are all keyed by address, so buckets
only support direct key access.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a prefixed subspace of the store holding objects of the same
// type as proto.
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

// NewBucket panics on an invalid name. Buckets are declared at startup.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name %q", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

func (b Bucket) Name() string {
	return b.name
}

// DBKey returns the full store key. It always allocates, so that results of
// consecutive calls never share memory.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, len(b.prefix)+len(key))
	copy(out, b.prefix)
	copy(out[len(b.prefix):], key)
	return out
}

// Get returns nil, nil when the key is not present.
func (b Bucket) Get(db pledge.ReadOnlyKVStore, key []byte) (Object, error) {
	raw := db.Get(b.DBKey(key))
	if raw == nil {
		return nil, nil
	}
	return b.Parse(key, raw)
}

// Has returns true if an object is stored under key.
func (b Bucket) Has(db pledge.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}

// Parse loads a stored value into a new object of the bucket type.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := pledge.Unmarshal(value, obj.Value()); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "%s: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and writes the object.
func (b Bucket) Save(db pledge.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := pledge.Marshal(obj.Value())
	if err != nil {
		return err
	}
	db.Set(b.DBKey(obj.Key()), raw)
	return nil
}

// Delete removes the object stored under key, if any.
func (b Bucket) Delete(db pledge.KVStore, key []byte) {
	db.Delete(b.DBKey(key))
}
