package sigs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/crypto"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/store"
	"github.com/iov-one/pledge/weavetest"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(SigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := pledge.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	perms := []pledge.Condition{priv.PublicKey().Condition()}

	tx := NewStdTx([]byte("art"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec pledge.Decorator, my pledge.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec pledge.Decorator, my pledge.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(pledge.Decorator, pledge.Tx) error{check, deliver} {
		tx.Signatures = nil
		err := fn(d, tx)
		assert.True(t, errors.ErrUnauthorized.Is(err), "%d", i)

		tx.Signatures = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// replay
		err = fn(d, tx)
		assert.True(t, ErrInvalidSequence.Is(err), "%d", i)

		ad := d.AllowMissingSigs()
		tx.Signatures = nil
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Empty(t, signers.Signers)

		tx.Signatures = []*StdSignature{sig1}
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)
	}
}

func TestDecoratorRejectsUnsignedTx(t *testing.T) {
	ctx := pledge.WithChainID(context.Background(), "deco-rate")
	handler := &weavetest.Handler{}
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/unsigned"}}

	_, err := NewDecorator().Deliver(ctx, store.MemStore(), tx, handler)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 0, handler.DeliverCallCount())

	_, err = NewDecorator().AllowMissingSigs().Deliver(ctx, store.MemStore(), tx, handler)
	assert.NoError(t, err)
	assert.Equal(t, 1, handler.DeliverCallCount())
}

func TestDecoratorChargesGas(t *testing.T) {
	chainID := "gas-chain"
	ctx := pledge.WithChainID(context.Background(), chainID)
	priv := crypto.GenPrivKeyEd25519()
	tx := NewStdTx([]byte("gas"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig}

	handler := &weavetest.Handler{CheckResult: pledge.CheckResult{GasAllocated: 10}}
	res, err := NewDecorator().Check(ctx, store.MemStore(), tx, handler)
	require.NoError(t, err)
	assert.EqualValues(t, 10+signatureVerifyCost, res.GasAllocated)
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []pledge.Condition
}

var _ pledge.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &pledge.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &pledge.DeliverResult{}, nil
}
