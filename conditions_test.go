package pledge_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/crypto/bech32"
	"github.com/iov-one/pledge/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParsing(t *testing.T) {
	Convey("a well formed condition", t, func() {
		cond := pledge.NewCondition("escrow", "pda", []byte{0xca, 0xfe})

		So(cond.Validate(), ShouldBeNil)
		ext, typ, data, err := cond.Parse()
		So(err, ShouldBeNil)
		So(ext, ShouldEqual, "escrow")
		So(typ, ShouldEqual, "pda")
		So(data, ShouldResemble, []byte{0xca, 0xfe})
		So(cond.String(), ShouldEqual, "escrow/pda/CAFE")
	})

	Convey("data may contain newlines and slashes", t, func() {
		cond := pledge.NewCondition("sigs", "ed25519", []byte("a/b\nc"))
		So(cond.Validate(), ShouldBeNil)
	})

	Convey("malformed conditions", t, func() {
		for _, c := range []pledge.Condition{
			pledge.Condition("no-sections"),
			pledge.NewCondition("ab", "pda", []byte("x")),
			pledge.NewCondition("escrow", "waytoolongtype", []byte("x")),
			pledge.NewCondition("escrow", "pda", nil),
		} {
			So(errors.ErrInput.Is(c.Validate()), ShouldBeTrue)
			_, _, _, err := c.Parse()
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		}
	})

	Convey("address is a digest of the condition", t, func() {
		a := pledge.NewCondition("escrow", "pda", []byte("one"))
		b := pledge.NewCondition("escrow", "pda", []byte("two"))
		So(a.Address(), ShouldHaveLength, pledge.AddressLength)
		So(a.Address().Equals(a.Address()), ShouldBeTrue)
		So(a.Address().Equals(b.Address()), ShouldBeFalse)
	})
}

func TestConditionJSON(t *testing.T) {
	cond := pledge.NewCondition("sigs", "ed25519", []byte{1, 2, 3})

	raw, err := json.Marshal(cond)
	require.NoError(t, err)
	assert.Equal(t, `"sigs/ed25519/010203"`, string(raw))

	var got pledge.Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, cond, got)

	require.NoError(t, json.Unmarshal([]byte(`""`), &got))
	assert.Nil(t, got)

	err = json.Unmarshal([]byte(`"sigs/ed25519/zz"`), &got)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := pledge.Address(strings.Repeat("a", pledge.AddressLength))
	b32, err := bech32.Encode(bech32.DefaultHRP, addr)
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr pledge.Address
	}{
		"default hex": {
			json:     fmt.Sprintf(`"%X"`, []byte(addr)),
			wantAddr: addr,
		},
		"prefixed hex": {
			json:     fmt.Sprintf(`"hex:%x"`, []byte(addr)),
			wantAddr: addr,
		},
		"condition": {
			json:     `"cond:escrow/pda/636f6e64"`,
			wantAddr: pledge.NewCondition("escrow", "pda", []byte("cond")).Address(),
		},
		"bech32": {
			json:     fmt.Sprintf(`"bech32:%s"`, b32),
			wantAddr: addr,
		},
		"short hex": {
			json:    `"abcd"`,
			wantErr: errors.ErrInput,
		},
		"bad condition": {
			json:    `"cond:escrow/636f6e64"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"base64:xxx"`,
			wantErr: errors.ErrType,
		},
		"empty": {
			json:     `""`,
			wantAddr: nil,
		},
		"empty condition": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var a pledge.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressFormatting(t *testing.T) {
	addr := pledge.Address(strings.Repeat("b", pledge.AddressLength))

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(`"%X"`, []byte(addr)), string(raw))
	assert.Equal(t, fmt.Sprintf("%X", []byte(addr)), addr.String())
	assert.Equal(t, "(nil)", pledge.Address(nil).String())
	assert.True(t, strings.HasPrefix(addr.Bech32(), bech32.DefaultHRP+"1"))
}
