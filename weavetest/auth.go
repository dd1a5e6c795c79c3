package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/pledge"
)

// Auth is a mock x.Authenticator granting a fixed set of conditions. Signer
// and Signers are both considered, Signer is a shortcut for a single one.
type Auth struct {
	Signer  pledge.Condition
	Signers []pledge.Condition
}

func (a *Auth) GetConditions(pledge.Context) []pledge.Condition {
	if a.Signer != nil {
		return append(append([]pledge.Condition{}, a.Signers...), a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx pledge.Context, addr pledge.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock x.Authenticator that reads the conditions from the
// context, so that a single handler instance can serve different signers.
type CtxAuth struct {
	// Key under which the conditions are stored in the context.
	Key string
}

func (a *CtxAuth) SetConditions(ctx pledge.Context, conds ...pledge.Condition) pledge.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx pledge.Context) []pledge.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]pledge.Condition)
	if !ok {
		panic(fmt.Sprintf("want []pledge.Condition, got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx pledge.Context, addr pledge.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
