package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/x/cash"
	"github.com/iov-one/pledge/x/escrow"
	"github.com/iov-one/pledge/x/sigs"
	"github.com/spf13/cobra"
	abci "github.com/tendermint/tendermint/abci/types"
)

// models decodes the values of the buckets that can be queried by address.
var models = map[string]func() pledge.Persistent{
	cash.BucketName:   func() pledge.Persistent { return &cash.Set{} },
	escrow.BucketName: func() pledge.Persistent { return &escrow.Escrow{} },
	sigs.BucketName:   func() pledge.Persistent { return &sigs.UserData{} },
}

// decodeValue renders a queried value as JSON, or as hex when the bucket
// is not known.
func decodeValue(bucket string, raw []byte) ([]byte, error) {
	create, ok := models[bucket]
	if !ok {
		return []byte(hex.EncodeToString(raw)), nil
	}
	m := create()
	if err := pledge.Unmarshal(raw, m); err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return out, nil
}

func newQueryCmd(conf *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "query BUCKET ADDRESS",
		Short: "Read a value from the last committed state",
		Long: `Read a value from the last committed state.

BUCKET is one of cash, escrow or sigs. ADDRESS is hex encoded or
prefixed with bech32: or cond:.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket := args[0]
			addr, err := pledge.ParseAddress(args[1])
			if err != nil {
				return err
			}
			if err := addr.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(conf)
			if err != nil {
				return err
			}
			a, err := openApp(conf, logger)
			if err != nil {
				return err
			}
			res := a.Query(abci.RequestQuery{Path: "/" + bucket, Data: addr})
			if res.Code != errors.SuccessABCICode {
				return errors.ABCIError(res.Code, res.Log)
			}
			out, err := decodeValue(bucket, res.Value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "height: %d\n%s\n", res.Height, out)
			return nil
		},
	}
}
