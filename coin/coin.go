package coin

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pledge/errors"
)

// IsCC returns true for a valid ticker.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

var humanCoinFormat = regexp.MustCompile(`^\s*(\d+)\s*([A-Z]{3,4})\s*$`)

// Coin is an amount of a single fungible asset. Amounts are whole units,
// there is no fractional part.
type Coin struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (m *Coin) Reset()      { *m = Coin{} }
func (*Coin) ProtoMessage() {}

// NewCoin returns a coin of amount units of ticker.
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

// NewCoinp is NewCoin returning a pointer.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

func (c Coin) IsZero() bool {
	return c.Amount == 0
}

func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// IsGTE returns true if c is of the same ticker and at least as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// Add returns the sum of two coins of the same ticker.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrType, "adding %s to %s", o.Ticker, c.Ticker)
	}
	if o.Amount > math.MaxUint64-c.Amount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	return Coin{Ticker: c.Ticker, Amount: c.Amount + o.Amount}, nil
}

// Subtract returns c minus o. Amounts never go below zero.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrType, "subtracting %s from %s", o.Ticker, c.Ticker)
	}
	if o.Amount > c.Amount {
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "%s - %s", c, o)
	}
	return Coin{Ticker: c.Ticker, Amount: c.Amount - o.Amount}, nil
}

// Validate checks the ticker only, a zero amount is valid.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrType, "invalid ticker %q", c.Ticker)
	}
	return nil
}

// String returns the human format, eg. "100 IOV".
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// ParseHumanFormat parses "<amount> <ticker>".
func ParseHumanFormat(s string) (Coin, error) {
	m := humanCoinFormat.FindStringSubmatch(s)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "coin format %q", s)
	}
	amount, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount %q", m[1])
	}
	return Coin{Ticker: m[2], Amount: amount}, nil
}

// UnmarshalJSON accepts the human format string or an object with ticker
// and amount.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	var obj struct {
		Ticker string `json:"ticker"`
		Amount uint64 `json:"amount"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*c = Coin{Ticker: obj.Ticker, Amount: obj.Amount}
	return nil
}

var _ proto.Message = (*Coin)(nil)
