package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/cmd/pledged/app"
	"github.com/iov-one/pledge/errors"
	"github.com/spf13/cobra"
	cmn "github.com/tendermint/tendermint/libs/common"
	tmtypes "github.com/tendermint/tendermint/types"
)

const (
	genesisFile = "genesis.json"
	ownerKey    = "owner"

	flagChainID = "chain-id"
	flagTicker  = "ticker"
	flagAmount  = "amount"
)

func genesisPath(home string) string {
	return filepath.Join(home, genesisFile)
}

// writeGenesis creates the genesis file with the app state of a fresh chain
// owned by owner.
func writeGenesis(home, chainID string, owner pledge.Address, ticker string, amount uint64) (*tmtypes.GenesisDoc, error) {
	path := genesisPath(home)
	if fileExists(path) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "genesis file %s", path)
	}
	if chainID == "" {
		chainID = fmt.Sprintf("pledge-%s", cmn.RandStr(6))
	}
	if !pledge.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	state, err := app.GenInitOptions(owner, ticker, amount)
	if err != nil {
		return nil, err
	}
	doc := &tmtypes.GenesisDoc{
		GenesisTime: time.Now().UTC(),
		ChainID:     chainID,
		AppState:    state,
	}
	if err := doc.SaveAs(path); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return doc, nil
}

func loadGenesis(home string) (*tmtypes.GenesisDoc, error) {
	doc, err := tmtypes.GenesisDocFromFile(genesisPath(home))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "genesis: %s", err)
	}
	return doc, nil
}

func newInitCmd(conf *Config) *cobra.Command {
	var (
		chainID string
		ticker  string
		amount  uint64
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the owner key and the genesis file",
		Long: `Create the owner key and the genesis file.

The owner receives the initial funds and may update the escrow
configuration. Both escrow registries are created at genesis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(conf)
			if err != nil {
				return err
			}

			k, _, err := loadKey(conf.Home, ownerKey)
			if errors.ErrNotFound.Is(err) {
				k, err = createKey(conf.Home, ownerKey, 0)
				if err == nil {
					logger.Info("Generated owner key", "address", k.Address)
				}
			}
			if err != nil {
				return err
			}

			doc, err := writeGenesis(conf.Home, chainID, k.Address, ticker, amount)
			if err != nil {
				return err
			}
			logger.Info("Generated genesis file",
				"path", genesisPath(conf.Home),
				"chain_id", doc.ChainID)
			return nil
		},
	}
	cmd.Flags().StringVar(&chainID, flagChainID, "", "chain id, random if empty")
	cmd.Flags().StringVar(&ticker, flagTicker, app.DefaultTicker, "ticker of the initial funds")
	cmd.Flags().Uint64Var(&amount, flagAmount, 1000000, "initial funds of the owner")
	return cmd
}
