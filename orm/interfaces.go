package orm

import "github.com/iov-one/pledge"

// Model is any entity that can be stored in a bucket.
type Model interface {
	pledge.Persistent
	Validate() error
	Copy() Model
}

// Object is a model together with the key it is stored under.
type Object interface {
	Keyed
	Cloneable
	Validate() error
	Value() Model
}

type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable creates an empty object of the same type to load data into.
type Cloneable interface {
	Clone() Object
}
