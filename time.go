package pledge

import (
	"encoding/json"
	"time"

	"github.com/iov-one/pledge/errors"
)

// UnixTime is a point in time with seconds precision, as stored in escrow
// expiry times and payment records.
type UnixTime int64

// AsUnixTime drops the sub second part of t.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add shifts the time by d, truncated to seconds.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "time before epoch")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().Format(time.RFC3339)
}

// UnmarshalJSON accepts a number of seconds or an RFC3339 string. The string
// form is handy in genesis files and on the command line.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var secs int64
	if err := json.Unmarshal(raw, &secs); err == nil {
		return t.set(UnixTime(secs))
	}
	var std time.Time
	if err := json.Unmarshal(raw, &std); err == nil {
		return t.set(AsUnixTime(std))
	}
	return errors.Wrap(errors.ErrInput, "time format")
}

func (t *UnixTime) set(v UnixTime) error {
	if err := v.Validate(); err != nil {
		return err
	}
	*t = v
	return nil
}
