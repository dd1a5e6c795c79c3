package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path of
// its message.
type Router struct {
	routes map[string]pledge.Handler
}

var _ pledge.Registry = (*Router)(nil)
var _ pledge.Handler = (*Router)(nil)

func NewRouter() *Router {
	return &Router{routes: make(map[string]pledge.Handler)}
}

// Handle registers h for path. It panics on a malformed or already
// registered path, that is a programming error.
func (r *Router) Handle(path string, h pledge.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path %q, want <ext>/<action>", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler for path. Unknown paths get a handler
// that always fails.
func (r *Router) Handler(path string) pledge.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

func (r *Router) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx) (*pledge.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, db, tx)
}

type notFoundHandler string

func (path notFoundHandler) Check(pledge.Context, pledge.KVStore, pledge.Tx) (*pledge.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(path))
}

func (path notFoundHandler) Deliver(pledge.Context, pledge.KVStore, pledge.Tx) (*pledge.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(path))
}
