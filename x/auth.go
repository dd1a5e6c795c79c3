package x

import (
	"github.com/iov-one/pledge"
)

// Authenticator extracts the conditions a request was authorized with. It
// is passed to handler constructors so that the signature scheme can be
// swapped without touching the extensions.
type Authenticator interface {
	// GetConditions returns every condition granted to the request.
	GetConditions(pledge.Context) []pledge.Condition
	// HasAddress returns true if any granted condition has this address.
	HasAddress(pledge.Context, pledge.Address) bool
}

// MultiAuth combines several authenticators.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth returns an authenticator granting the union of all conditions.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls: impls}
}

func (m MultiAuth) GetConditions(ctx pledge.Context) []pledge.Condition {
	var res []pledge.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

func (m MultiAuth) HasAddress(ctx pledge.Context, addr pledge.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all granted conditions.
func GetAddresses(ctx pledge.Context, auth Authenticator) []pledge.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]pledge.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first granted condition or nil.
func MainSigner(ctx pledge.Context, auth Authenticator) pledge.Condition {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil
	}
	return conds[0]
}

// FindCondition returns the granted condition controlling addr, or nil.
// The ledger needs the condition itself to authorize a transfer, the
// address alone is not enough.
func FindCondition(ctx pledge.Context, auth Authenticator, addr pledge.Address) pledge.Condition {
	for _, c := range auth.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return c
		}
	}
	return nil
}

// HasAllAddresses returns true if every required address is authorized.
func HasAllAddresses(ctx pledge.Context, auth Authenticator, required []pledge.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasAllConditions returns true if every required condition was granted.
func HasAllConditions(ctx pledge.Context, auth Authenticator, required []pledge.Condition) bool {
	granted := auth.GetConditions(ctx)
	for _, r := range required {
		if !hasCondition(granted, r) {
			return false
		}
	}
	return true
}

func hasCondition(conds []pledge.Condition, c pledge.Condition) bool {
	for _, g := range conds {
		if g.Equals(c) {
			return true
		}
	}
	return false
}
