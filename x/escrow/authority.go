package escrow

import (
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
)

const (
	extName = "escrow"

	escrowSeed      = "escrow"
	escrowListSeed  = "escrow_list"
	paymentListSeed = "payment_list"
)

// EscrowAuthority is the derived condition owning the holding account of an
// escrow. It can only be built inside this package and the condition it
// wraps is never handed out, so the ledger accepts it from the controller
// alone.
type EscrowAuthority struct {
	cond  pledge.Condition
	nonce uint8
}

func escrowSeeds(depositor, recipient pledge.Address, asset string) [][]byte {
	return [][]byte{[]byte(escrowSeed), depositor, recipient, []byte(asset)}
}

// newEscrowAuthority derives the authority of the (depositor, recipient,
// asset) escrow together with its nonce.
func newEscrowAuthority(depositor, recipient pledge.Address, asset string) (EscrowAuthority, error) {
	cond, nonce, err := pledge.Derive(extName, escrowSeeds(depositor, recipient, asset)...)
	if err != nil {
		return EscrowAuthority{}, errors.Wrap(err, "derive escrow authority")
	}
	return EscrowAuthority{cond: cond, nonce: nonce}, nil
}

// storedAuthority rebuilds the authority of a stored escrow from its nonce.
func storedAuthority(e *Escrow) (EscrowAuthority, error) {
	if e.Nonce > 255 {
		return EscrowAuthority{}, errors.Wrapf(ErrMismatchedAccount, "nonce %d", e.Nonce)
	}
	nonce := uint8(e.Nonce)
	cond, err := pledge.DeriveWithNonce(extName, nonce, escrowSeeds(e.Depositor, e.Recipient, e.Asset)...)
	if err != nil {
		return EscrowAuthority{}, errors.Wrap(ErrMismatchedAccount, err.Error())
	}
	return EscrowAuthority{cond: cond, nonce: nonce}, nil
}

// Address of the holding account. It is also the key of the escrow.
func (a EscrowAuthority) Address() pledge.Address {
	return a.cond.Address()
}

func (a EscrowAuthority) Nonce() uint8 {
	return a.nonce
}

// String hides the condition, only the account is shown.
func (a EscrowAuthority) String() string {
	return "escrow authority of " + a.Address().String()
}

// HoldingAddress returns the address of the account holding the funds of
// the (depositor, recipient, asset) escrow. The escrow is stored under the
// same key.
func HoldingAddress(depositor, recipient pledge.Address, asset string) (pledge.Address, error) {
	a, err := newEscrowAuthority(depositor, recipient, asset)
	if err != nil {
		return nil, err
	}
	return a.Address(), nil
}

// registryAddress derives the well known address of a registry.
func registryAddress(seed string) (pledge.Address, uint8) {
	cond, nonce, err := pledge.Derive(extName, []byte(seed))
	if err != nil {
		panic(err)
	}
	return cond.Address(), nonce
}
