package commands

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/crypto"
	"github.com/iov-one/pledge/errors"
	"github.com/spf13/cobra"
)

const (
	keysDir   = "keys"
	seedSize  = 32
	flagIndex = "index"
)

var isKeyName = regexp.MustCompile(`^[a-z0-9_\-]{1,32}$`).MatchString

// keyFile is how a key is kept on disk. The private key is derived from the
// seed on every load.
type keyFile struct {
	Seed    string         `json:"seed"`
	Index   uint32         `json:"index"`
	Address pledge.Address `json:"address"`
}

func (k keyFile) privateKey() (*crypto.PrivateKey, error) {
	seed, err := hex.DecodeString(k.Seed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "seed is not hex")
	}
	return crypto.DeriveForPath(crypto.AccountPath(k.Index), seed)
}

func keyPath(home, name string) string {
	return filepath.Join(home, keysDir, name+".json")
}

// createKey generates a new seed and stores the key derived from it under
// name. Existing keys are never overwritten.
func createKey(home, name string, index uint32) (*keyFile, error) {
	if !isKeyName(name) {
		return nil, errors.Wrapf(errors.ErrInput, "key name %q", name)
	}
	path := keyPath(home, name)
	if fileExists(path) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "key %s", name)
	}

	seed := make([]byte, seedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	k := keyFile{Seed: hex.EncodeToString(seed), Index: index}
	priv, err := k.privateKey()
	if err != nil {
		return nil, err
	}
	k.Address = priv.PublicKey().Address()

	raw, err := json.MarshalIndent(k, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &k, nil
}

func loadKey(home, name string) (*keyFile, *crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(keyPath(home, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrapf(errors.ErrNotFound, "key %s", name)
		}
		return nil, nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	var k keyFile
	if err := json.Unmarshal(raw, &k); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrInput, "key %s: %s", name, err)
	}
	priv, err := k.privateKey()
	if err != nil {
		return nil, nil, err
	}
	if !priv.PublicKey().Address().Equals(k.Address) {
		return nil, nil, errors.Wrapf(errors.ErrState, "key %s: address does not match seed", name)
	}
	return &k, priv, nil
}

func listKeys(home string) ([]string, error) {
	files, err := ioutil.ReadDir(filepath.Join(home, keysDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	var names []string
	for _, f := range files {
		if name := strings.TrimSuffix(f.Name(), ".json"); name != f.Name() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func newKeysCmd(conf *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage local signing keys",
	}

	var index uint32
	create := &cobra.Command{
		Use:   "new NAME",
		Short: "Generate a new key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := createKey(conf.Home, args[0], index)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", args[0], k.Address, k.Address.Bech32())
			return nil
		},
	}
	create.Flags().Uint32Var(&index, flagIndex, 0, "account index in the derivation path")

	show := &cobra.Command{
		Use:   "show NAME",
		Short: "Print the address of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _, err := loadKey(conf.Home, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", args[0], k.Address, k.Address.Bech32())
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := listKeys(conf.Home)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	cmd.AddCommand(create, show, list)
	return cmd
}
