package escrow

import (
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/gconf"
)

const optKey = "escrow"

// Genesis is the "escrow" genesis section.
type Genesis struct {
	// InitRegistries creates both registries at genesis, so that no
	// initialization transaction is needed.
	InitRegistries bool `json:"init_registries"`
}

// Initializer stores the escrow configuration and optionally creates the
// registries. Both genesis sections are optional.
type Initializer struct{}

var _ pledge.Initializer = Initializer{}

func (Initializer) FromGenesis(opts pledge.Options, db pledge.KVStore) error {
	// Fields missing from the genesis section keep their default value.
	conf := DefaultConfiguration()
	switch err := gconf.InitConfig(db, opts, optKey, &conf); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		if err := gconf.Save(db, optKey, &conf); err != nil {
			return errors.Wrap(err, "save default escrow configuration")
		}
	default:
		return errors.Wrap(err, "init escrow configuration")
	}

	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	if !gen.InitRegistries {
		return nil
	}
	if err := NewEscrowRegistry().Init(db, conf.RegistryCapacity); err != nil {
		return errors.Wrap(err, "escrow registry")
	}
	if err := NewPaymentRegistry().Init(db, conf.RegistryCapacity); err != nil {
		return errors.Wrap(err, "payment registry")
	}
	return nil
}
