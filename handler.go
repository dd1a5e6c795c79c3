package pledge

import (
	"encoding/json"

	"github.com/iov-one/pledge/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// Handler processes the messages registered for its path.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction without executing it. Used for mempool
// admission.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a handler to provide functionality shared by all
// messages, such as authentication or panic recovery.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is the setup side of a router.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult is returned by a successful Check.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the maximum gas the delivery may consume.
	GasAllocated int64
}

// DeliverResult is returned by a successful Deliver. Tags are indexed by the
// node and are the notification channel for clients that watch the chain.
type DeliverResult struct {
	Data    []byte
	Log     string
	Tags    []cmn.KVPair
	GasUsed int64
}

// AddTag appends a tag to the result.
func (d *DeliverResult) AddTag(key, value string) {
	d.Tags = append(d.Tags, cmn.KVPair{Key: []byte(key), Value: []byte(value)})
}

// Options is the application state from the genesis file, keyed by
// extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing key
// is not an error and leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw := o[key]
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads an extension state from genesis.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}

// ChainInitializers runs all initializers in order.
func ChainInitializers(inits ...Initializer) Initializer {
	return chainInitializer(inits)
}

type chainInitializer []Initializer

func (c chainInitializer) FromGenesis(opts Options, db KVStore) error {
	for _, in := range c {
		if err := in.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
