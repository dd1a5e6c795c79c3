package pledge

import (
	"crypto/sha256"
	"encoding/binary"

	"filippo.io/edwards25519"
	"github.com/iov-one/pledge/errors"
)

// DerivedType is the condition type of every derived account.
const DerivedType = "pda"

const derivedMarker = "ProgramDerivedAddress"

// Derive deterministically computes a condition owned by extension ext from
// the given seeds. No private key exists for the result: starting from 255
// the nonce is decremented until the digest is not a point on the ed25519
// curve. The condition is returned together with the nonce that produced it.
//
// Only the extension named by ext may grant the condition, so it acts as the
// authority of an account that is controlled by code instead of a key.
func Derive(ext string, seeds ...[]byte) (Condition, uint8, error) {
	for nonce := 255; nonce >= 0; nonce-- {
		digest := deriveDigest(ext, uint8(nonce), seeds)
		if !onCurve(digest) {
			return NewCondition(ext, DerivedType, digest), uint8(nonce), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrInput, "no off curve nonce for seeds")
}

// DeriveWithNonce recomputes a derived condition from a nonce returned by an
// earlier Derive call.
func DeriveWithNonce(ext string, nonce uint8, seeds ...[]byte) (Condition, error) {
	digest := deriveDigest(ext, nonce, seeds)
	if onCurve(digest) {
		return nil, errors.Wrapf(errors.ErrInput, "nonce %d derives an on curve point", nonce)
	}
	return NewCondition(ext, DerivedType, digest), nil
}

func deriveDigest(ext string, nonce uint8, seeds [][]byte) []byte {
	h := sha256.New()
	var size [4]byte
	for _, s := range seeds {
		binary.BigEndian.PutUint32(size[:], uint32(len(s)))
		h.Write(size[:])
		h.Write(s)
	}
	h.Write([]byte{nonce})
	h.Write([]byte(ext))
	h.Write([]byte(derivedMarker))
	return h.Sum(nil)
}

func onCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
