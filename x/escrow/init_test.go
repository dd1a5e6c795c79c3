package escrow

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/gconf"
	"github.com/iov-one/pledge/store"
	"github.com/iov-one/pledge/weavetest/assert"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	Convey("Given an escrow genesis section", t, func() {
		db := store.MemStore()

		Convey("an empty genesis stores the defaults and no registry", func() {
			So(Initializer{}.FromGenesis(pledge.Options{}, db), ShouldBeNil)

			var conf Configuration
			So(gconf.Load(db, optKey, &conf), ShouldBeNil)
			So(conf.RegistryCapacity, ShouldEqual, 10)
			So(conf.MaxConditionLength, ShouldEqual, 200)

			_, err := NewEscrowRegistry().All(db)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})

		Convey("a partial configuration keeps the other defaults", func() {
			opts := options(t, `{
				"conf": {"escrow": {"registry_capacity": 3}},
				"escrow": {"init_registries": true}
			}`)
			So(Initializer{}.FromGenesis(opts, db), ShouldBeNil)

			var conf Configuration
			So(gconf.Load(db, optKey, &conf), ShouldBeNil)
			So(conf.RegistryCapacity, ShouldEqual, 3)
			So(conf.MaxConditionLength, ShouldEqual, 200)

			var list PaymentList
			reg := NewPaymentRegistry()
			So(reg.r.bucket.One(db, reg.Address(), &list), ShouldBeNil)
			So(list.Capacity, ShouldEqual, 3)

			escrows, err := NewEscrowRegistry().All(db)
			So(err, ShouldBeNil)
			So(escrows, ShouldBeEmpty)
		})

		Convey("an invalid configuration is rejected", func() {
			opts := options(t, `{"conf": {"escrow": {"registry_capacity": 0}}}`)
			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, errors.ErrState, err)
		})
	})
}

func options(t *testing.T, raw string) pledge.Options {
	t.Helper()
	var opts pledge.Options
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		t.Fatalf("cannot parse genesis: %s", err)
	}
	return opts
}
