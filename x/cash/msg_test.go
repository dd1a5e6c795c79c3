package cash

import (
	"strings"
	"testing"

	"github.com/iov-one/pledge/coin"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/weavetest"
	"github.com/iov-one/pledge/weavetest/assert"
)

func TestValidateSendMsg(t *testing.T) {
	addr1 := weavetest.NewCondition().Address()
	addr2 := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     *SendMsg
		wantErr *errors.Error
	}{
		"success": {
			msg: &SendMsg{Amount: coin.NewCoinp(10, "FOO"), Destination: addr1, Source: addr2, Memo: "some memo message"},
		},
		"zero amount": {
			msg:     &SendMsg{Amount: coin.NewCoinp(0, "FOO"), Destination: addr1, Source: addr2},
			wantErr: errors.ErrAmount,
		},
		"bad ticker": {
			msg:     &SendMsg{Amount: coin.NewCoinp(1, "F"), Destination: addr1, Source: addr2},
			wantErr: errors.ErrType,
		},
		"missing source": {
			msg:     &SendMsg{Amount: coin.NewCoinp(1, "FOO"), Destination: addr1},
			wantErr: errors.ErrInput,
		},
		"memo too long": {
			msg:     &SendMsg{Amount: coin.NewCoinp(1, "FOO"), Destination: addr1, Source: addr2, Memo: strings.Repeat("x", maxMemoSize+1)},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.msg.Validate())
		})
	}
}
