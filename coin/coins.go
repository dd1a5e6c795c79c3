package coin

import (
	"github.com/iov-one/pledge/errors"
)

// Coins is a set of coins of distinct tickers, sorted by ticker. Zero
// amounts are never kept.
type Coins []*Coin

// CombineCoins returns the normalized set of all given coins.
func CombineCoins(cs ...Coin) (Coins, error) {
	var (
		res Coins
		err error
	)
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Clone returns a deep copy.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		cpy := *c
		res[i] = &cpy
	}
	return res
}

// Add returns a new set holding c on top of cs.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	res := cs.Clone()
	has, i := res.find(c.Ticker)
	if has != nil {
		sum, err := has.Add(c)
		if err != nil {
			return nil, err
		}
		res[i] = &sum
		return res, nil
	}
	res = append(res, nil)
	copy(res[i+1:], res[i:])
	res[i] = &c
	return res, nil
}

// Subtract returns a new set with c taken away. It fails with
// ErrInsufficientAmount if cs does not contain c.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	res := cs.Clone()
	has, i := res.find(c.Ticker)
	if has == nil {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s", c.Ticker)
	}
	diff, err := has.Subtract(c)
	if err != nil {
		return nil, err
	}
	if diff.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = &diff
	return res, nil
}

// Get returns the amount held of ticker, zero if none.
func (cs Coins) Get(ticker string) Coin {
	if has, _ := cs.find(ticker); has != nil {
		return *has
	}
	return Coin{Ticker: ticker}
}

// Contains returns true if cs holds at least c.
func (cs Coins) Contains(c Coin) bool {
	return cs.Get(c.Ticker).IsGTE(c)
}

// find returns the coin of ticker and its index, or nil and the index it
// should be inserted at.
func (cs Coins) find(ticker string) (*Coin, int) {
	for i, c := range cs {
		switch {
		case c.Ticker == ticker:
			return c, i
		case c.Ticker > ticker:
			return nil, i
		}
	}
	return nil, len(cs)
}

func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires valid, positive coins in strict ticker order.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrapf(errors.ErrState, "zero %s", c.Ticker)
		}
		if c.Ticker <= last {
			return errors.Wrap(errors.ErrState, "coins not sorted")
		}
		last = c.Ticker
	}
	return nil
}
