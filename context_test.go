package pledge

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	logger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, logger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, logger, GetLogger(ctx))

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	ctx = WithHeight(ctx, 7)
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), h)
	assert.Panics(t, func() { WithHeight(ctx, 9) })

	ctx2 := WithLogInfo(ctx, "escrow", "abc")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))
	h, _ = GetHeight(ctx2)
	assert.Equal(t, int64(7), h)

	assert.Equal(t, "", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "no") })
	ctx = WithChainID(ctx, "pledge-test")
	assert.Equal(t, "pledge-test", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "pledge-other") })
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := WithBlockTime(context.Background(), now)

	cases := map[string]struct {
		expiry UnixTime
		want   bool
	}{
		"in the future": {expiry: AsUnixTime(now).Add(time.Second), want: false},
		"exactly now":   {expiry: AsUnixTime(now), want: false},
		"in the past":   {expiry: AsUnixTime(now).Add(-time.Second), want: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsExpired(ctx, tc.expiry))
		})
	}

	assert.Panics(t, func() { IsExpired(context.Background(), 1) })
}
