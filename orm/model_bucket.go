package orm

import (
	"reflect"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
)

// ModelBucket works with models directly instead of objects.
type ModelBucket interface {
	// One loads the model stored under key into dest. It returns
	// ErrNotFound if nothing is stored and ErrType if dest cannot hold
	// the stored model.
	One(db pledge.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns true if a model is stored under key.
	Has(db pledge.ReadOnlyKVStore, key []byte) bool

	// Put validates and saves m.
	Put(db pledge.KVStore, key []byte, m Model) error

	// Delete returns ErrNotFound if nothing is stored under key.
	Delete(db pledge.KVStore, key []byte) error
}

// NewModelBucket returns a ModelBucket storing models of the same type as
// proto under the given bucket name.
func NewModelBucket(name string, proto Model) ModelBucket {
	return &modelBucket{b: NewBucket(name, NewSimpleObj(nil, proto))}
}

type modelBucket struct {
	b Bucket
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db pledge.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T %X", dest, key)
	}
	res := obj.Value()
	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be loaded into %T", res, dest)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) Has(db pledge.ReadOnlyKVStore, key []byte) bool {
	return mb.b.Has(db, key)
}

func (mb *modelBucket) Put(db pledge.KVStore, key []byte, m Model) error {
	if err := mb.b.Save(db, NewSimpleObj(key, m)); err != nil {
		return errors.Wrapf(err, "save %s", mb.b.name)
	}
	return nil
}

func (mb *modelBucket) Delete(db pledge.KVStore, key []byte) error {
	if !mb.b.Has(db, key) {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.b.name, key)
	}
	mb.b.Delete(db, key)
	return nil
}
