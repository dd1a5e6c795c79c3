/*
Package app links together the extensions of the pledge node: signature
authentication, the cash ledger and the escrow engine.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/app"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/store/iavl"
	"github.com/iov-one/pledge/x"
	"github.com/iov-one/pledge/x/cash"
	"github.com/iov-one/pledge/x/escrow"
	"github.com/iov-one/pledge/x/sigs"
	"github.com/iov-one/pledge/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by abci Info.
const Name = "pledge"

// Authenticator returns the signature based authentication.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns the decorators every transaction passes through.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failed message still bumps the signer sequence
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router dispatches to the cash and escrow handlers.
func Router(auth x.Authenticator) *app.Router {
	r := app.NewRouter()
	ledger := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, auth, ledger)
	escrow.RegisterRoutes(r, auth, ledger)
	return r
}

// Stack wires the router behind the decorator chain.
func Stack() pledge.Handler {
	auth := Authenticator()
	return Chain().WithHandler(Router(auth))
}

// Initializers loads every extension from genesis.
func Initializers() pledge.Initializer {
	return pledge.ChainInitializers(
		cash.Initializer{},
		escrow.Initializer{},
	)
}

// Application constructs the ABCI application on top of the given store.
func Application(kv pledge.CommitKVStore, logger log.Logger, debug bool) (app.BaseApp, error) {
	store, err := app.NewStoreApp(Name, kv, context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	store.WithInit(Initializers()).WithLogger(logger)
	return app.NewBaseApp(store, TxDecoder, Stack(), debug), nil
}

// GenerateApp opens the database under home and builds the application.
// An empty home keeps everything in memory.
func GenerateApp(home string, logger log.Logger, debug bool) (app.BaseApp, error) {
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "pledge.db")
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	return Application(kv, logger, debug)
}

// CommitKVStore returns a store persisting to dbPath, or an in-memory one
// when dbPath is empty.
func CommitKVStore(dbPath string) (pledge.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MemStore(), nil
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	// goleveldb adds the .db suffix itself
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path)), nil
}
