package sigs

import (
	"context"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/x"
)

type contextKey int

const (
	contextKeySigners contextKey = iota
)

// withSigners is private, only the decorator may grant signatures.
func withSigners(ctx pledge.Context, signers []pledge.Condition) pledge.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate grants the conditions of every verified signer.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context.
// May be empty
func (a Authenticate) GetConditions(ctx pledge.Context) []pledge.Condition {
	val, _ := ctx.Value(contextKeySigners).([]pledge.Condition)
	return val
}

// HasAddress returns true if the owner of addr signed the current Context.
func (a Authenticate) HasAddress(ctx pledge.Context, addr pledge.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
