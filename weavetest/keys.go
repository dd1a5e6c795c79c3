package weavetest

import (
	"context"
	"time"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/crypto"
)

// NewKey returns a random signing key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a random key.
func NewCondition() pledge.Condition {
	return NewKey().PublicKey().Condition()
}

// BlockCtx returns a context as the application builds it for a block at
// height 1 with the given time.
func BlockCtx(now time.Time) pledge.Context {
	ctx := pledge.WithHeight(context.Background(), 1)
	ctx = pledge.WithChainID(ctx, "pledge-test")
	return pledge.WithBlockTime(ctx, now)
}
