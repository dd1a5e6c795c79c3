package app

import (
	"reflect"

	"github.com/iov-one/pledge"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []pledge.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    sigs.NewDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(
    router,
  )
*/
func ChainDecorators(chain ...pledge.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...pledge.Decorator) Decorators {
	newChain := append(append([]pledge.Decorator(nil), d.chain...), cutoffNil(chain)...)
	return Decorators{newChain}
}

// cutoffNil drops nil decorators, including typed nil pointers, so that
// optional decorators can be passed without branching.
func cutoffNil(ds []pledge.Decorator) []pledge.Decorator {
	res := make([]pledge.Decorator, 0, len(ds))
	for _, d := range ds {
		if d == nil {
			continue
		}
		if v := reflect.ValueOf(d); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		res = append(res, d)
	}
	return res
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h pledge.Handler) pledge.Handler {
	// the first decorator of the chain is the outermost
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler.
type step struct {
	d    pledge.Decorator
	next pledge.Handler
}

var _ pledge.Handler = step{}

func (s step) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}
