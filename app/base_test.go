package app

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/store/iavl"
	"github.com/iov-one/pledge/weavetest"
	"github.com/iov-one/pledge/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
)

type genesisWriter struct{}

func (genesisWriter) FromGenesis(opts pledge.Options, db pledge.KVStore) error {
	var g struct {
		Greeting string `json:"greeting"`
	}
	if err := opts.ReadOptions("test", &g); err != nil {
		return err
	}
	db.Set([]byte("greeting"), []byte(g.Greeting))
	return nil
}

// decodeTx treats the raw bytes as the action of a test/<action> path.
func decodeTx(raw []byte) (pledge.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty tx")
	}
	return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/" + string(raw)}}, nil
}

func newTestApp(t *testing.T, db dbm.DB) (BaseApp, *weavetest.Handler) {
	t.Helper()
	s, err := NewStoreApp("pledge-test", iavl.NewCommitStoreFromDB(db), context.Background())
	require.NoError(t, err)
	s.WithInit(genesisWriter{})

	write := &weavetest.Handler{
		OnDeliver: func(db pledge.KVStore) {
			db.Set([]byte("written"), []byte("yes"))
		},
	}
	write.DeliverResult.AddTag("action", "test/write")

	r := NewRouter()
	r.Handle("test/write", write)
	r.Handle("test/fail", &weavetest.Handler{
		CheckErr:   errors.ErrExpired,
		DeliverErr: errors.ErrExpired,
	})
	stack := ChainDecorators(utils.NewRecovery()).WithHandler(r)
	return NewBaseApp(s, decodeTx, stack, false), write
}

func TestBaseAppLifecycle(t *testing.T) {
	db := dbm.NewMemDB()
	a, write := newTestApp(t, db)

	a.InitChain(abci.RequestInitChain{
		ChainId:       "pledge-chain",
		AppStateBytes: []byte(`{"test": {"greeting": "hello"}}`),
	})
	assert.Equal(t, "pledge-chain", a.GetChainID())

	now := time.Now().UTC()
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: now}})

	chk := a.CheckTx([]byte("write"))
	assert.Equal(t, uint32(0), chk.Code, chk.Log)

	res := a.DeliverTx([]byte("write"))
	require.Equal(t, uint32(0), res.Code, res.Log)
	require.Len(t, res.Tags, 1)
	assert.Equal(t, "test/write", string(res.Tags[0].Value))
	assert.Equal(t, 1, write.DeliverCallCount())

	res = a.DeliverTx([]byte("fail"))
	assert.Equal(t, errors.ErrExpired.ABCICode(), res.Code)

	res = a.DeliverTx([]byte("unknown"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	res = a.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)

	// nothing is visible to queries before the commit
	q := a.Query(abci.RequestQuery{Path: "/key", Data: []byte("written")})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), q.Code)

	commit := a.Commit()
	assert.NotEmpty(t, commit.Data)

	q = a.Query(abci.RequestQuery{Path: "/key", Data: []byte("written")})
	require.Equal(t, uint32(0), q.Code, q.Log)
	assert.Equal(t, "yes", string(q.Value))
	assert.Equal(t, int64(1), q.Height)

	q = a.Query(abci.RequestQuery{Path: "/key", Data: []byte("greeting")})
	assert.Equal(t, "hello", string(q.Value))

	info := a.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
	assert.Equal(t, pledge.Version(), info.Version)

	// restarting on the same database keeps the state and the chain id
	restarted, _ := newTestApp(t, db)
	assert.Equal(t, "pledge-chain", restarted.GetChainID())
	assert.Equal(t, int64(1), restarted.Info(abci.RequestInfo{}).LastBlockHeight)
	assert.Panics(t, func() {
		restarted.InitChain(abci.RequestInitChain{ChainId: "pledge-chain", AppStateBytes: []byte(`{}`)})
	})
}

func TestInitChainRequiresAppState(t *testing.T) {
	a, _ := newTestApp(t, dbm.NewMemDB())
	assert.Panics(t, func() {
		a.InitChain(abci.RequestInitChain{ChainId: "pledge-chain"})
	})
}

func TestQueryKey(t *testing.T) {
	cases := map[string]struct {
		path    string
		data    string
		wantKey string
		wantErr *errors.Error
	}{
		"raw key":     {path: "/key", data: "_c:escrow", wantKey: "_c:escrow"},
		"bucket":      {path: "/escrow", data: "abc", wantKey: "escrow:abc"},
		"no data":     {path: "/escrow", wantErr: errors.ErrEmpty},
		"empty path":  {path: "/", data: "abc", wantErr: errors.ErrInput},
		"nested path": {path: "/escrow/all", data: "abc", wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			key, err := queryKey(tc.path, []byte(tc.data))
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantKey, string(key))
		})
	}
}

func TestParseDeliverOrError(t *testing.T) {
	res, err := ParseDeliverOrError(DeliverTxError(errors.Wrap(errors.ErrExpired, "escrow"), false))
	assert.Nil(t, res)
	assert.True(t, errors.ErrExpired.Is(err))

	want := &pledge.DeliverResult{Data: []byte("data"), Log: "ok"}
	got, err := ParseDeliverOrError(DeliverOrError(want, nil, false))
	require.NoError(t, err)
	assert.Equal(t, want.Data, got.Data)
	assert.Equal(t, want.Log, got.Log)
}
