/*
Package sigs verifies the ed25519 signatures on a transaction and keeps a
sequence per key for replay protection. Verified signers are exposed to the
extensions through Authenticate.
*/
package sigs

import (
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
)

const signatureVerifyCost = 500

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ pledge.Decorator = Decorator{}

// NewDecorator returns a decorator requiring at least one signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Checker) (*pledge.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// Signature verification is the expensive part.
	res.GasAllocated += int64(n * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Deliverer) (*pledge.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) authenticate(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (pledge.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		if d.allowMissingSigs {
			return ctx, 0, nil
		}
		return nil, 0, errors.Wrapf(errors.ErrUnauthorized, "%T is not signed", tx)
	}
	signers, err := VerifyTxSignatures(db, stx, pledge.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
