package cash

import (
	"testing"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/coin"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/store"
	"github.com/iov-one/pledge/weavetest"
	"github.com/iov-one/pledge/weavetest/assert"
)

func TestTransfer(t *testing.T) {
	owner := weavetest.NewCondition()
	other := weavetest.NewCondition()
	dst := weavetest.NewCondition().Address()

	cases := map[string]struct {
		authority pledge.Condition
		mint      *coin.Coin
		amount    coin.Coin
		wantErr   *errors.Error
		wantSrc   coin.Coins
		wantDst   coin.Coins
	}{
		"move part of the balance": {
			authority: owner,
			mint:      coin.NewCoinp(100, "IOV"),
			amount:    coin.NewCoin(40, "IOV"),
			wantSrc:   coin.Coins{coin.NewCoinp(60, "IOV")},
			wantDst:   coin.Coins{coin.NewCoinp(40, "IOV")},
		},
		"move everything removes the wallet": {
			authority: owner,
			mint:      coin.NewCoinp(100, "IOV"),
			amount:    coin.NewCoin(100, "IOV"),
			wantSrc:   nil,
			wantDst:   coin.Coins{coin.NewCoinp(100, "IOV")},
		},
		"foreign authority": {
			authority: other,
			mint:      coin.NewCoinp(100, "IOV"),
			amount:    coin.NewCoin(10, "IOV"),
			wantErr:   ErrBadAuthority,
			wantSrc:   coin.Coins{coin.NewCoinp(100, "IOV")},
		},
		"missing authority": {
			mint:    coin.NewCoinp(100, "IOV"),
			amount:  coin.NewCoin(10, "IOV"),
			wantErr: ErrBadAuthority,
			wantSrc: coin.Coins{coin.NewCoinp(100, "IOV")},
		},
		"not enough funds": {
			authority: owner,
			mint:      coin.NewCoinp(5, "IOV"),
			amount:    coin.NewCoin(10, "IOV"),
			wantErr:   ErrInsufficientFunds,
			wantSrc:   coin.Coins{coin.NewCoinp(5, "IOV")},
		},
		"other ticker": {
			authority: owner,
			mint:      coin.NewCoinp(100, "IOV"),
			amount:    coin.NewCoin(10, "ETH"),
			wantErr:   ErrInsufficientFunds,
			wantSrc:   coin.Coins{coin.NewCoinp(100, "IOV")},
		},
		"empty account": {
			authority: owner,
			amount:    coin.NewCoin(10, "IOV"),
			wantErr:   ErrInsufficientFunds,
		},
		"zero amount": {
			authority: owner,
			mint:      coin.NewCoinp(100, "IOV"),
			amount:    coin.NewCoin(0, "IOV"),
			wantErr:   errors.ErrAmount,
			wantSrc:   coin.Coins{coin.NewCoinp(100, "IOV")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			src := owner.Address()
			if tc.mint != nil {
				assert.Nil(t, ctrl.CoinMint(db, src, *tc.mint))
			}

			err := ctrl.Transfer(db, tc.authority, src, dst, tc.amount)
			assert.IsErr(t, tc.wantErr, err)

			got, err := ctrl.Balance(db, src)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSrc, got)
			got, err = ctrl.Balance(db, dst)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantDst, got)

			if tc.wantSrc == nil && db.Has(NewBucket().DBKey(src)) {
				t.Fatal("empty wallet must not be stored")
			}
		})
	}
}

func TestTransferToSelf(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	owner := weavetest.NewCondition()
	assert.Nil(t, ctrl.CoinMint(db, owner.Address(), coin.NewCoin(10, "IOV")))

	err := ctrl.Transfer(db, owner, owner.Address(), owner.Address(), coin.NewCoin(1, "IOV"))
	assert.IsErr(t, errors.ErrInput, err)
}

func TestCoinMint(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	addr := weavetest.NewCondition().Address()

	assert.Nil(t, ctrl.CoinMint(db, addr, coin.NewCoin(10, "IOV")))
	assert.Nil(t, ctrl.CoinMint(db, addr, coin.NewCoin(5, "IOV")))
	assert.Nil(t, ctrl.CoinMint(db, addr, coin.NewCoin(1, "ETH")))
	assert.IsErr(t, errors.ErrType, ctrl.CoinMint(db, addr, coin.NewCoin(1, "x")))

	got, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(1, "ETH"), coin.NewCoinp(15, "IOV")}, got)
}
