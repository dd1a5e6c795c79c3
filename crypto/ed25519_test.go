package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSignVerify(t *testing.T) {
	Convey("with a random key", t, func() {
		priv := GenPrivKeyEd25519()
		pub := priv.PublicKey()
		msg := []byte("escrow/release")

		sig, err := priv.Sign(msg)
		So(err, ShouldBeNil)

		Convey("the signature verifies", func() {
			So(pub.Verify(msg, sig), ShouldBeTrue)
		})
		Convey("a different message does not verify", func() {
			So(pub.Verify([]byte("escrow/refund"), sig), ShouldBeFalse)
		})
		Convey("another key does not verify", func() {
			other := GenPrivKeyEd25519().PublicKey()
			So(other.Verify(msg, sig), ShouldBeFalse)
		})
		Convey("a missing signature does not verify", func() {
			So(pub.Verify(msg, nil), ShouldBeFalse)
		})
		Convey("the condition carries the key", func() {
			cond := pub.Condition()
			ext, typ, data, err := cond.Parse()
			So(err, ShouldBeNil)
			So(ext, ShouldEqual, ExtensionName)
			So(typ, ShouldEqual, "ed25519")
			So(data, ShouldResemble, pub.Ed25519)
			So(pub.Address(), ShouldResemble, cond.Address())
		})
	})
}

func TestKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	if !bytes.Equal(a.Ed25519, b.Ed25519) {
		t.Fatal("seeded keys differ")
	}
	if err := a.PublicKey().Validate(); err != nil {
		t.Fatalf("invalid public key: %s", err)
	}
	if err := (&PublicKey{Ed25519: []byte{1}}).Validate(); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %v", err)
	}
	if _, err := (&PrivateKey{Ed25519: []byte{1}}).Sign(nil); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %v", err)
	}
}

func TestDeriveForPath(t *testing.T) {
	// SLIP-10 ed25519 test vector 1.
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")

	k, err := DeriveForPath("m/0'", seed)
	if err != nil {
		t.Fatalf("derive: %s", err)
	}
	wantPub := "8c8a13df77a28f3445213a0f432fde644acaa215fc72dcdf300d5efaa85d350c"
	if got := hex.EncodeToString(k.PublicKey().Ed25519); got != wantPub {
		t.Fatalf("want %s, got %s", wantPub, got)
	}

	a, err := DeriveForPath(AccountPath(0), seed)
	if err != nil {
		t.Fatalf("derive account 0: %s", err)
	}
	b, err := DeriveForPath(AccountPath(1), seed)
	if err != nil {
		t.Fatalf("derive account 1: %s", err)
	}
	if pledge.Address(a.PublicKey().Address()).Equals(b.PublicKey().Address()) {
		t.Fatal("accounts share an address")
	}

	if _, err := DeriveForPath("m/0", seed); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error for non hardened path, got %v", err)
	}
}
