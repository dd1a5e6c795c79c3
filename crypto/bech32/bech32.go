// Package bech32 renders account addresses in the human friendly bech32
// format, prefixed with the chain's human readable part.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/pledge/errors"
)

// DefaultHRP is the human readable part used for addresses of this chain.
const DefaultHRP = "pledge"

// Decode returns the human readable part and the raw payload of a bech32
// string.
func Decode(raw string) (string, []byte, error) {
	hrp, data, err := bech32.Decode(raw)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return hrp, payload, nil
}

// Encode returns the bech32 representation of payload.
func Encode(hrp string, payload []byte) (string, error) {
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	raw, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}
