package app

import (
	"context"
	"testing"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/store"
	"github.com/iov-one/pledge/weavetest"
	"github.com/iov-one/pledge/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	h := &weavetest.Handler{
		OnDeliver: func(db pledge.KVStore) {
			if db.Has([]byte("boom")) {
				panic("boom")
			}
		},
	}

	var nilDecorator *weavetest.Decorator
	stack := ChainDecorators(
		c1,
		utils.NewRecovery(),
		nil,
		nilDecorator,
	).Chain(c2).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/run"}}

	_, err := stack.Check(ctx, db, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	require.NoError(t, err)

	assert.Equal(t, 1, c1.CheckCallCount())
	assert.Equal(t, 1, c2.DeliverCallCount())
	assert.Equal(t, 2, h.CallCount())

	db.Set([]byte("boom"), []byte("1"))
	_, err = stack.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Equal(t, 2, c1.DeliverCallCount())
	assert.Equal(t, 2, c2.DeliverCallCount())
}

func TestChainStopsOnDecoratorError(t *testing.T) {
	failing := &weavetest.Decorator{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrUnauthorized}
	h := &weavetest.Handler{}
	stack := ChainDecorators(failing).WithHandler(h)

	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/run"}}
	_, err := stack.Check(context.Background(), store.MemStore(), tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = stack.Deliver(context.Background(), store.MemStore(), tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 0, h.CallCount())
}
