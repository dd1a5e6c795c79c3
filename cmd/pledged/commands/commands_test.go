package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/cmd/pledged/app"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/store/iavl"
	"github.com/iov-one/pledge/x/cash"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestKeys(t *testing.T) {
	home := t.TempDir()

	created, err := createKey(home, "alice", 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), created.Index)

	loaded, priv, err := loadKey(home, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.Address, loaded.Address)
	assert.Equal(t, created.Address, priv.PublicKey().Address())

	_, err = createKey(home, "alice", 0)
	assert.True(t, errors.ErrDuplicate.Is(err))
	_, err = createKey(home, "Not A Name", 0)
	assert.True(t, errors.ErrInput.Is(err))
	_, _, err = loadKey(home, "bob")
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = createKey(home, "bob", 0)
	require.NoError(t, err)
	names, err := listKeys(home)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInitCommand(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, "init", "--home", home, "--chain-id", "pledge-local", "--amount", "500", "--log-level", "none")
	require.NoError(t, err)

	doc, err := loadGenesis(home)
	require.NoError(t, err)
	assert.Equal(t, "pledge-local", doc.ChainID)

	var state app.GenesisAppState
	require.NoError(t, json.Unmarshal(doc.AppState, &state))
	owner, _, err := loadKey(home, ownerKey)
	require.NoError(t, err)
	require.Len(t, state.Cash, 1)
	assert.Equal(t, owner.Address, state.Cash[0].Address)
	assert.Equal(t, uint64(500), state.Cash[0].Coins[0].Amount)
	assert.Equal(t, owner.Address, state.Conf.Escrow.Owner)
	assert.True(t, state.Escrow.InitRegistries)

	out, err := run(t, "keys", "show", ownerKey, "--home", home)
	require.NoError(t, err)
	assert.Contains(t, out, owner.Address.String())

	// a second init keeps the genesis
	_, err = run(t, "init", "--home", home, "--log-level", "none")
	assert.True(t, errors.ErrDuplicate.Is(err))
}

func TestExecAndQuery(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, "init", "--home", home, "--chain-id", "pledge-local", "--log-level", "none")
	require.NoError(t, err)
	bob, err := createKey(home, "bob", 0)
	require.NoError(t, err)
	owner, _, err := loadKey(home, ownerKey)
	require.NoError(t, err)

	a, err := app.Application(iavl.MemStore(), log.NewNopLogger(), false)
	require.NoError(t, err)
	doc, err := loadGenesis(home)
	require.NoError(t, err)
	a.InitChain(abci.RequestInitChain{ChainId: doc.ChainID, AppStateBytes: doc.AppState})
	a.Commit()

	send := fmt.Sprintf(`{"source": "%s", "destination": "bech32:%s", "amount": "25 PLG"}`,
		owner.Address, bob.Address.Bech32())
	for i := 0; i < 2; i++ {
		tx, err := buildTx(a, home, ownerKey, "cash/send", []byte(send))
		require.NoError(t, err)
		res, err := applyTx(a, tx, time.Now().UTC())
		require.NoError(t, err)
		require.Equal(t, uint32(0), res.Code, res.Log)

		var out bytes.Buffer
		printDeliver(&out, res)
		assert.Contains(t, out.String(), "tag: action=cash/send")
	}

	res := a.Query(abci.RequestQuery{Path: "/" + cash.BucketName, Data: bob.Address})
	require.Equal(t, uint32(0), res.Code, res.Log)
	raw, err := decodeValue(cash.BucketName, res.Value)
	require.NoError(t, err)
	var set cash.Set
	require.NoError(t, json.Unmarshal(raw, &set))
	require.Len(t, set.Coins, 1)
	assert.Equal(t, uint64(50), set.Coins[0].Amount)

	_, err = buildTx(a, home, ownerKey, "cash/unknown", []byte(`{}`))
	assert.True(t, errors.ErrType.Is(err))
	_, err = buildTx(a, home, ownerKey, "cash/send", []byte(`{"amount": "0 PLG"}`))
	assert.Error(t, err)
}

func TestConfigSources(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, defaultConfigFile), []byte("log-level: error\ndebug: true\n"), 0600))

	newCmd := func() (*cobra.Command, *Config) {
		conf := &Config{}
		cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
		cmd.Flags().StringVar(&conf.Home, flagHome, "", "")
		cmd.Flags().StringVar(&conf.CfgFile, flagConfig, "", "")
		cmd.Flags().StringVar(&conf.LogLevel, flagLogLevel, "info", "")
		cmd.Flags().BoolVar(&conf.Debug, flagDebug, false, "")
		return cmd, conf
	}

	cmd, conf := newCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--home", home}))
	require.NoError(t, initializeConfig(cmd, conf))
	assert.Equal(t, "error", conf.LogLevel)
	assert.True(t, conf.Debug)

	// the environment wins over the file, flags win over both
	t.Setenv("PLEDGE_LOG_LEVEL", "debug")
	cmd, conf = newCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--home", home}))
	require.NoError(t, initializeConfig(cmd, conf))
	assert.Equal(t, "debug", conf.LogLevel)

	cmd, conf = newCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--home", home, "--log-level", "none"}))
	require.NoError(t, initializeConfig(cmd, conf))
	assert.Equal(t, "none", conf.LogLevel)

	_, err := newLogger(&Config{LogLevel: "loud"})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, pledge.Version(), strings.TrimSpace(out))
}
