package cash

import (
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/coin"
	"github.com/iov-one/pledge/errors"
)

const optKey = "cash"

// GenesisAccount is one entry of the "cash" genesis section. Coins may be
// written as "100 IOV".
type GenesisAccount struct {
	Address pledge.Address `json:"address"`
	Coins   []coin.Coin    `json:"coins"`
}

// Initializer loads the initial balances from genesis.
type Initializer struct{}

var _ pledge.Initializer = Initializer{}

func (Initializer) FromGenesis(opts pledge.Options, db pledge.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		for _, c := range acct.Coins {
			if err := ctrl.CoinMint(db, acct.Address, c); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}
