package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp contains a data store and all info needed to perform queries
// and handshakes.
//
// It should be embedded in another struct for CheckTx and DeliverTx.
// Errors on ABCI steps that do not take user input (InitChain, BeginBlock,
// Commit) cannot be handled gracefully and are raised as panics.
type StoreApp struct {
	// mu serializes every request. State transitions, registry appends
	// included, happen one at a time.
	mu sync.Mutex

	logger log.Logger

	// name is what is returned from abci.Info
	name string

	store *CommitStore

	initializer pledge.Initializer

	// chainID is loaded from the db on start, saved once in InitChain
	chainID string

	// baseContext is valid for the lifetime of the app (eg. chain id)
	baseContext pledge.Context

	// blockContext is valid for the current block, reset on BeginBlock
	blockContext pledge.Context

	debug bool
}

// NewStoreApp loads the latest state from store.
func NewStoreApp(name string, store pledge.CommitKVStore, baseContext pledge.Context) (*StoreApp, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	s := &StoreApp{
		name:        name,
		store:       cs,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	s.chainID = loadChainID(cs.DeliverStore())
	if s.chainID != "" {
		s.baseContext = pledge.WithChainID(s.baseContext, s.chainID)
	}
	s.blockContext = pledge.WithHeight(s.baseContext, cs.CommitInfo().Version)
	return s, nil
}

// GetChainID returns the chain id or an empty string before genesis.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the initializer run on InitChain.
func (s *StoreApp) WithInit(init pledge.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger on the StoreApp and on the base context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = pledge.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

// WithDebug makes query errors carry full details.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() pledge.Context {
	return s.blockContext
}

// DeliverStore returns the current DeliverTx cache.
func (s *StoreApp) DeliverStore() pledge.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the current CheckTx cache.
func (s *StoreApp) CheckStore() pledge.CacheableKVStore {
	return s.store.CheckStore()
}

// parseAppState is called from InitChain, the first time the chain starts,
// and never on restarts.
func (s *StoreApp) parseAppState(data []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state already loaded for chain %s", s.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis")
	}
	var appState pledge.Options
	if err := json.Unmarshal(data, &appState); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = pledge.WithChainID(s.baseContext, chainID)

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(appState, s.DeliverStore())
}

// Info implements abci.Application. It returns the last committed height
// and hash together with the name and version.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := s.store.CommitInfo()
	s.logger.Info("Info synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))

	return abci.ResponseInfo{
		Data:             s.name,
		Version:          pledge.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption is not supported.
func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

/*
Query reads a single value from the last committed state.

Path is either "/key", in which case Data is the raw store key, or
"/<bucket>", in which case Data is the key within that bucket:

  /escrow     holding address of an escrow
  /cash       wallet address
  /esc_list   escrow registry address

The response carries the full store key and the serialized model.
*/
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := queryKey(req.Path, req.Data)
	if err != nil {
		return queryError(err, s.debug)
	}
	value := s.store.Committed().Get(key)
	if value == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "key %X", key), s.debug)
	}
	return abci.ResponseQuery{
		Key:    key,
		Value:  value,
		Height: s.store.CommitInfo().Version,
	}
}

func queryKey(path string, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "query data")
	}
	name := strings.TrimPrefix(path, "/")
	switch {
	case name == "key":
		return data, nil
	case name == "" || strings.Contains(name, "/"):
		return nil, errors.Wrapf(errors.ErrInput, "unknown query path %q", path)
	default:
		return append([]byte(name+":"), data...), nil
	}
}

// Commit implements abci.Application
func (s *StoreApp) Commit() abci.ResponseCommit {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.store.Commit()
	s.logger.Debug("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// InitChain loads the genesis app state. It is called only once, when the
// chain starts.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.parseAppState(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets up the block context. Block time is what every expiry
// check compares against.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := pledge.WithHeight(s.baseContext, req.Header.Height)
	ctx = pledge.WithBlockTime(ctx, req.Header.Time)
	s.blockContext = ctx
	return abci.ResponseBeginBlock{}
}

// EndBlock does nothing, the validator set is static.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
