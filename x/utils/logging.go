package utils

import (
	"time"

	"github.com/iov-one/pledge"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ pledge.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (Logging) Check(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Checker) (*pledge.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx pledge.Context, db pledge.KVStore, tx pledge.Tx, next pledge.Deliverer) (*pledge.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

func logDuration(ctx pledge.Context, tx pledge.Tx, start time.Time, msg string, err error, lowPrio bool) {
	logger := pledge.GetLogger(ctx).With(
		"path", pledge.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	// An empty message is still logged, the fields carry the information.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
