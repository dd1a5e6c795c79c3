package escrow

import (
	"testing"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/coin"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/weavetest"
	"github.com/iov-one/pledge/weavetest/assert"
)

func TestMsgValidation(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     pledge.Msg
		wantErr *errors.Error
	}{
		"create": {
			msg: &CreateMsg{Recipient: b, Amount: coin.NewCoinp(1, "FOO"), ExpiryTime: 100},
		},
		"create with depositor": {
			msg: &CreateMsg{Depositor: a, Recipient: b, Amount: coin.NewCoinp(1, "FOO"), ExpiryTime: 100},
		},
		"create with bad depositor": {
			msg:     &CreateMsg{Depositor: a[:5], Recipient: b, Amount: coin.NewCoinp(1, "FOO"), ExpiryTime: 100},
			wantErr: errors.ErrInput,
		},
		"create without amount": {
			msg:     &CreateMsg{Recipient: b, ExpiryTime: 100},
			wantErr: errors.ErrAmount,
		},
		"create with bad ticker": {
			msg:     &CreateMsg{Recipient: b, Amount: coin.NewCoinp(1, "foo"), ExpiryTime: 100},
			wantErr: errors.ErrType,
		},
		"create with negative expiry": {
			msg:     &CreateMsg{Recipient: b, Amount: coin.NewCoinp(1, "FOO"), ExpiryTime: -1},
			wantErr: errors.ErrState,
		},
		"fulfill": {
			msg: &FulfillMsg{Depositor: a, Recipient: b, Asset: "FOO"},
		},
		"fulfill without asset": {
			msg:     &FulfillMsg{Depositor: a, Recipient: b},
			wantErr: errors.ErrType,
		},
		"release with holding": {
			msg: &ReleaseMsg{Depositor: a, Recipient: b, Asset: "FOO", Holding: b},
		},
		"release with bad holding": {
			msg:     &ReleaseMsg{Depositor: a, Recipient: b, Asset: "FOO", Holding: pledge.Address("short")},
			wantErr: errors.ErrInput,
		},
		"refund without recipient": {
			msg:     &RefundMsg{Depositor: a, Asset: "FOO"},
			wantErr: errors.ErrInput,
		},
		"update configuration": {
			msg: &UpdateConfigurationMsg{Patch: &Configuration{RegistryCapacity: 5}},
		},
		"update configuration without patch": {
			msg:     &UpdateConfigurationMsg{},
			wantErr: errors.ErrEmpty,
		},
		"list escrows": {
			msg: &ListEscrowsMsg{},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.msg.Validate())
		})
	}
}
