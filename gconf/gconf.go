package gconf

import (
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
)

// Configuration is a validated, serializable configuration model.
type Configuration interface {
	pledge.Persistent
	Validate() error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates src and writes it as the configuration of pkg.
func Save(db pledge.KVStore, pkg string, src Configuration) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: package %q", pkg)
	}
	raw, err := pledge.Marshal(src)
	if err != nil {
		return errors.Wrapf(err, "marshal: package %q", pkg)
	}
	db.Set(key(pkg), raw)
	return nil
}

// Load reads the configuration of pkg into dst. It returns ErrNotFound if
// none was saved.
func Load(db pledge.ReadOnlyKVStore, pkg string, dst Configuration) error {
	raw := db.Get(key(pkg))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "configuration of %q", pkg)
	}
	if err := pledge.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "unmarshal: package %q", pkg)
	}
	return nil
}

// InitConfig takes opts["conf"][pkg], parses it into conf, validates it and
// stores it. A missing section returns ErrNotFound and leaves the database
// untouched.
func InitConfig(db pledge.KVStore, opts pledge.Options, pkg string, conf Configuration) error {
	var confOptions pledge.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
