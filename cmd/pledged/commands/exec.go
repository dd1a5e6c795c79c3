package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iov-one/pledge"
	pledgeapp "github.com/iov-one/pledge/app"
	"github.com/iov-one/pledge/cmd/pledged/app"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/x/sigs"
	"github.com/spf13/cobra"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// openApp opens the node database in home. A node that was never started
// is initialized from the genesis file first.
func openApp(conf *Config, logger log.Logger) (pledgeapp.BaseApp, error) {
	a, err := app.GenerateApp(conf.Home, logger, conf.Debug)
	if err != nil {
		return a, err
	}
	if a.GetChainID() != "" {
		return a, nil
	}
	doc, err := loadGenesis(conf.Home)
	if err != nil {
		return a, err
	}
	a.InitChain(abci.RequestInitChain{
		Time:          doc.GenesisTime,
		ChainId:       doc.ChainID,
		AppStateBytes: doc.AppState,
	})
	a.Commit()
	return a, nil
}

// buildTx decodes the JSON representation of the message registered for
// path and signs it with the next sequence of the key.
func buildTx(a pledgeapp.BaseApp, home, keyName, path string, rawMsg []byte) (*app.Tx, error) {
	_, priv, err := loadKey(home, keyName)
	if err != nil {
		return nil, err
	}
	msg, err := app.NewMsg(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawMsg, msg); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "%s message: %s", path, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	tx, err := app.NewTx(msg)
	if err != nil {
		return nil, err
	}

	signer := priv.PublicKey().Address()
	seq, err := sigs.NewBucket().Sequence(a.DeliverStore(), signer)
	if err != nil {
		return nil, err
	}
	sig, err := sigs.SignTx(priv, tx, a.GetChainID(), seq)
	if err != nil {
		return nil, err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return tx, nil
}

// applyTx runs the transaction in a block of its own and commits it.
func applyTx(a pledgeapp.BaseApp, tx *app.Tx, now time.Time) (abci.ResponseDeliverTx, error) {
	raw, err := pledge.Marshal(tx)
	if err != nil {
		return abci.ResponseDeliverTx{}, err
	}
	height := a.Info(abci.RequestInfo{}).LastBlockHeight + 1
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{
		ChainID: a.GetChainID(),
		Height:  height,
		Time:    now,
	}})
	res := a.DeliverTx(raw)
	a.EndBlock(abci.RequestEndBlock{Height: height})
	a.Commit()
	return res, nil
}

func printDeliver(w io.Writer, res abci.ResponseDeliverTx) {
	fmt.Fprintf(w, "code: %d\n", res.Code)
	if res.Log != "" {
		fmt.Fprintf(w, "log: %s\n", res.Log)
	}
	if len(res.Data) != 0 {
		fmt.Fprintf(w, "data: %s\n", hex.EncodeToString(res.Data))
	}
	for _, t := range res.Tags {
		fmt.Fprintf(w, "tag: %s=%s\n", t.Key, t.Value)
	}
}

func newExecCmd(conf *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "exec KEY PATH MESSAGE",
		Short: "Sign a message and apply it locally in a new block",
		Long: `Sign a message and apply it locally in a new block.

MESSAGE is the JSON form of the message routed by PATH, eg.

  pledged exec owner escrow/create \
    '{"recipient": "bech32:...", "amount": "10 PLG", "condition": "delivered", "expiry_time": 1893456000}'

The node must not be running, the database is opened directly.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(conf)
			if err != nil {
				return err
			}
			a, err := openApp(conf, logger)
			if err != nil {
				return err
			}
			tx, err := buildTx(a, conf.Home, args[0], args[1], []byte(args[2]))
			if err != nil {
				return err
			}
			res, err := applyTx(a, tx, time.Now().UTC())
			if err != nil {
				return err
			}
			printDeliver(cmd.OutOrStdout(), res)
			if res.Code != errors.SuccessABCICode {
				return errors.ABCIError(res.Code, res.Log)
			}
			return nil
		},
	}
}
