package pledge

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/pledge/crypto/bech32"
	"github.com/iov-one/pledge/errors"
)

// AddressLength is the length of every account address.
const AddressLength = 20

// (?s) lets the data section contain newlines.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition describes who may authorize an action. It is formatted as
//
//   ext/type/data
//
// where ext names the extension that can grant it. A signature grants
// sigs/ed25519/<pubkey>, the escrow extension grants escrow/pda/<digest> for
// the accounts it derives.
type Condition []byte

// NewCondition builds a condition from its sections.
func NewCondition(ext, typ string, data []byte) Condition {
	c := make([]byte, 0, len(ext)+len(typ)+2+len(data))
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse splits the condition into extension, type and data.
func (c Condition) Parse() (string, string, []byte, error) {
	chunks := conditionFormat.FindSubmatch(c)
	if chunks == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address returns the account address controlled by this condition.
func (c Condition) Address() Address {
	return NewAddress(c)
}

func (c Condition) Equals(o Condition) bool {
	return bytes.Equal(c, o)
}

// String keeps extension and type readable and hex encodes the data.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("invalid condition %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) Validate() error {
	if !conditionFormat.Match(c) {
		return errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return nil
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal("")
	}
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return c.parseString(s)
}

func (c *Condition) parseString(s string) error {
	if s == "" {
		*c = nil
		return nil
	}
	chunks := strings.SplitN(s, "/", 3)
	if len(chunks) != 3 {
		return errors.Wrapf(errors.ErrInput, "condition format %q", s)
	}
	data, err := hex.DecodeString(chunks[2])
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "condition data: %s", err)
	}
	cond := NewCondition(chunks[0], chunks[1], data)
	if err := cond.Validate(); err != nil {
		return err
	}
	*c = cond
	return nil
}

// Address is the truncated sha256 digest of a Condition. Account balances,
// escrows and registries are all keyed by an address.
type Address []byte

// NewAddress hashes data into an address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return Address(h[:AddressLength])
}

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 returns the address in bech32 format with the chain prefix.
func (a Address) Bech32() string {
	s, err := bech32.Encode(bech32.DefaultHRP, a)
	if err != nil {
		return a.String()
	}
	return s
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts a hex encoded address, or one of the prefixed forms
// "cond:<condition>" and "bech32:<address>".
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes the textual forms accepted by UnmarshalJSON. An empty
// string decodes to a nil address.
func ParseAddress(s string) (Address, error) {
	format, enc := "hex", s
	if chunks := strings.SplitN(s, ":", 2); len(chunks) == 2 {
		format, enc = chunks[0], chunks[1]
	}
	if enc == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "address hex: %s", err)
		}
		addr = raw
	case "cond":
		var c Condition
		if err := c.parseString(enc); err != nil {
			return nil, err
		}
		addr = c.Address()
	case "bech32":
		_, raw, err := bech32.Decode(enc)
		if err != nil {
			return nil, err
		}
		addr = raw
	default:
		return nil, errors.Wrapf(errors.ErrType, "address format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
