package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/weavetest/assert"
)

func TestCoinArithmetic(t *testing.T) {
	cases := map[string]struct {
		a, b   Coin
		add    Coin
		addErr *errors.Error
		sub    Coin
		subErr *errors.Error
	}{
		"same ticker": {
			a:   NewCoin(100, "IOV"),
			b:   NewCoin(40, "IOV"),
			add: NewCoin(140, "IOV"),
			sub: NewCoin(60, "IOV"),
		},
		"subtract everything": {
			a:   NewCoin(5, "ETH"),
			b:   NewCoin(5, "ETH"),
			add: NewCoin(10, "ETH"),
			sub: NewCoin(0, "ETH"),
		},
		"insufficient": {
			a:      NewCoin(5, "ETH"),
			b:      NewCoin(6, "ETH"),
			add:    NewCoin(11, "ETH"),
			subErr: errors.ErrInsufficientAmount,
		},
		"different tickers": {
			a:      NewCoin(5, "ETH"),
			b:      NewCoin(5, "BTC"),
			addErr: errors.ErrType,
			subErr: errors.ErrType,
		},
		"overflow": {
			a:      NewCoin(math.MaxUint64, "IOV"),
			b:      NewCoin(1, "IOV"),
			addErr: errors.ErrOverflow,
			sub:    NewCoin(math.MaxUint64-1, "IOV"),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			sum, err := tc.a.Add(tc.b)
			assert.IsErr(t, tc.addErr, err)
			if tc.addErr == nil {
				assert.Equal(t, tc.add, sum)
			}
			diff, err := tc.a.Subtract(tc.b)
			assert.IsErr(t, tc.subErr, err)
			if tc.subErr == nil {
				assert.Equal(t, tc.sub, diff)
			}
		})
	}
}

func TestCoinValidate(t *testing.T) {
	assert.Nil(t, NewCoin(0, "IOV").Validate())
	assert.Nil(t, NewCoin(1, "USDC").Validate())
	assert.IsErr(t, errors.ErrType, NewCoin(1, "io").Validate())
	assert.IsErr(t, errors.ErrType, NewCoin(1, "").Validate())
}

func TestCoinComparison(t *testing.T) {
	a := NewCoin(10, "IOV")
	assert.Equal(t, true, a.IsGTE(NewCoin(10, "IOV")))
	assert.Equal(t, false, a.IsGTE(NewCoin(11, "IOV")))
	assert.Equal(t, false, a.IsGTE(NewCoin(1, "ETH")))
	assert.Equal(t, true, a.IsPositive())
	assert.Equal(t, true, Coin{Ticker: "IOV"}.IsZero())
}

func TestCoinJSON(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr *errors.Error
	}{
		"human format": {
			raw:  `"100 IOV"`,
			want: NewCoin(100, "IOV"),
		},
		"human format without space": {
			raw:  `"7ETH"`,
			want: NewCoin(7, "ETH"),
		},
		"object": {
			raw:  `{"ticker": "BTC", "amount": 3}`,
			want: NewCoin(3, "BTC"),
		},
		"fractions are not supported": {
			raw:     `"1.5 IOV"`,
			wantErr: errors.ErrInput,
		},
		"too large": {
			raw:     `"99999999999999999999 IOV"`,
			wantErr: errors.ErrOverflow,
		},
		"not a coin": {
			raw:     `[1, 2]`,
			wantErr: errors.ErrInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var c Coin
			err := json.Unmarshal([]byte(tc.raw), &c)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, c)
			}
		})
	}
}

func TestCoinString(t *testing.T) {
	assert.Equal(t, "100 IOV", NewCoin(100, "IOV").String())
	assert.Equal(t, "0", Coin{}.String())
}
