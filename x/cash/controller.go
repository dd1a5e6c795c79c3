package cash

import (
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/coin"
	"github.com/iov-one/pledge/errors"
)

// Controller is the ledger as other extensions see it.
type Controller interface {
	// Balance returns the coins held by addr. No wallet is an empty
	// balance.
	Balance(db pledge.ReadOnlyKVStore, addr pledge.Address) (coin.Coins, error)

	// Transfer moves amount from src to dst. The authority must be the
	// condition owning src.
	Transfer(db pledge.KVStore, authority pledge.Condition, src, dst pledge.Address, amount coin.Coin) error

	// CoinMint creates coins out of thin air. Only genesis and tests
	// may call it.
	CoinMint(db pledge.KVStore, dst pledge.Address, amount coin.Coin) error
}

// BaseController implements Controller on top of a wallet bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db pledge.ReadOnlyKVStore, addr pledge.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil || w == nil {
		return nil, err
	}
	return w.Coins(), nil
}

func (c BaseController) Transfer(db pledge.KVStore, authority pledge.Condition, src, dst pledge.Address, amount coin.Coin) error {
	if authority == nil || !authority.Address().Equals(src) {
		return errors.Wrapf(ErrBadAuthority, "%s cannot move funds of %s", authority, src)
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	if src.Equals(dst) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(ErrInsufficientFunds, "empty account %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrapf(ErrInsufficientFunds, "%s has %s, wants %s",
			src, sender.Coins().Get(amount.Ticker), amount)
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}

	recipient, err := c.bucket.GetOrCreate(db, dst)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

func (c BaseController) CoinMint(db pledge.KVStore, dst pledge.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	w, err := c.bucket.GetOrCreate(db, dst)
	if err != nil {
		return err
	}
	if err := w.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, w)
}
