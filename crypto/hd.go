package crypto

import (
	"fmt"

	"github.com/iov-one/pledge/errors"
	"github.com/stellar/go/exp/crypto/derivation"
)

// CoinType is the SLIP-44 coin type used in derivation paths.
const CoinType = 234

// AccountPath returns the hardened path of the n-th account,
// m/44'/234'/n'.
func AccountPath(n uint32) string {
	return fmt.Sprintf("m/44'/%d'/%d'", CoinType, n)
}

// DeriveForPath derives an ed25519 key from a master seed following
// SLIP-10. Only hardened paths are supported.
func DeriveForPath(path string, seed []byte) (*PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}
