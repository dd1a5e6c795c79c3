package orm

import (
	"reflect"

	"github.com/iov-one/pledge/errors"
)

// SimpleObj binds a key and a model.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Value() Model {
	return o.value
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Validate requires a key and a value, then delegates to the value.
func (o SimpleObj) Validate() error {
	if len(o.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	if o.value == nil {
		return errors.Wrap(errors.ErrEmpty, "missing value")
	}
	if err := o.value.Validate(); err != nil {
		return errors.Wrapf(err, "%T", o.value)
	}
	return nil
}

// Clone returns an object with an empty value of the same type and a copy
// of the key.
func (o *SimpleObj) Clone() Object {
	res := &SimpleObj{
		value: reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model),
	}
	if len(o.key) > 0 {
		res.key = append([]byte(nil), o.key...)
	}
	return res
}
