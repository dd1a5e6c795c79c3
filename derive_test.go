package pledge

import (
	"testing"

	"github.com/iov-one/pledge/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveIsDeterministic(t *testing.T) {
	seeds := [][]byte{[]byte("escrow"), []byte("depositor"), []byte("recipient"), []byte("IOV")}

	c1, n1, err := Derive("escrow", seeds...)
	require.NoError(t, err)
	c2, n2, err := Derive("escrow", seeds...)
	require.NoError(t, err)

	assert.Equal(t, c1, c2)
	assert.Equal(t, n1, n2)
	require.NoError(t, c1.Validate())

	ext, typ, data, err := c1.Parse()
	require.NoError(t, err)
	assert.Equal(t, "escrow", ext)
	assert.Equal(t, DerivedType, typ)
	assert.Len(t, data, 32)
	assert.False(t, onCurve(data))
}

func TestDeriveSeparatesSeeds(t *testing.T) {
	a, _, err := Derive("escrow", []byte("ab"), []byte("c"))
	require.NoError(t, err)
	b, _, err := Derive("escrow", []byte("a"), []byte("bc"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "seed boundaries must change the result")

	c, _, err := Derive("other", []byte("ab"), []byte("c"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Address(), c.Address(), "extension must change the result")
}

func TestDeriveWithNonce(t *testing.T) {
	seeds := [][]byte{[]byte("payment_list")}
	cond, nonce, err := Derive("escrow", seeds...)
	require.NoError(t, err)

	got, err := DeriveWithNonce("escrow", nonce, seeds...)
	require.NoError(t, err)
	assert.Equal(t, cond, got)

	if nonce > 0 {
		other, err := DeriveWithNonce("escrow", nonce-1, seeds...)
		if err == nil {
			assert.NotEqual(t, cond, other)
		} else {
			assert.True(t, errors.ErrInput.Is(err))
		}
	}
}

func TestDeriveSkipsCurvePoints(t *testing.T) {
	// Roughly half of all digests decode as a point, so over a number of
	// seeds some of them must need a nonce below 255.
	var lowered int
	for i := 0; i < 64; i++ {
		_, nonce, err := Derive("escrow", []byte{byte(i)})
		require.NoError(t, err)
		if nonce < 255 {
			lowered++
		}
	}
	assert.NotZero(t, lowered)
}
