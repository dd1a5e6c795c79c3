package app

import (
	"encoding/json"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/coin"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/x/cash"
	"github.com/iov-one/pledge/x/escrow"
)

// DefaultTicker is the asset given to the genesis account.
const DefaultTicker = "PLG"

// GenesisAppState is the app_state section of the genesis file.
type GenesisAppState struct {
	Cash   []cash.GenesisAccount `json:"cash"`
	Conf   GenesisConf           `json:"conf"`
	Escrow escrow.Genesis        `json:"escrow"`
}

// GenesisConf holds the configuration of every extension that keeps one in
// gconf.
type GenesisConf struct {
	Escrow escrow.Configuration `json:"escrow"`
}

// GenInitOptions builds an app state that funds owner with amount of
// ticker, makes owner the escrow configuration owner and creates both
// registries.
func GenInitOptions(owner pledge.Address, ticker string, amount uint64) (json.RawMessage, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	c := coin.NewCoin(amount, ticker)
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "genesis funds")
	}

	conf := escrow.DefaultConfiguration()
	conf.Owner = owner
	state := GenesisAppState{
		Cash: []cash.GenesisAccount{
			{Address: owner, Coins: []coin.Coin{c}},
		},
		Conf:   GenesisConf{Escrow: conf},
		Escrow: escrow.Genesis{InitRegistries: true},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}
