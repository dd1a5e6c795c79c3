package pledge

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pledge/errors"
)

// Persistent is anything that can be written to the store or sent over the
// wire. All models and messages are protobuf messages.
type Persistent interface {
	proto.Message
}

// Marshal serializes a persistent value.
func Marshal(p Persistent) ([]byte, error) {
	b, err := proto.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return b, nil
}

// MustMarshal is Marshal that panics. Use it only for values that are known
// to be valid.
func MustMarshal(p Persistent) []byte {
	b, err := Marshal(p)
	if err != nil {
		panic(err)
	}
	return b
}

// Unmarshal resets p and loads raw into it.
func Unmarshal(raw []byte, p Persistent) error {
	if err := proto.Unmarshal(raw, p); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// Msg is a request for a state transition. It carries no authentication,
// that lives in the Tx wrapping it.
type Msg interface {
	Persistent

	// Path routes the message to its handler. Format is ext/action.
	Path() string

	// Validate checks the message contents without any state access.
	Validate() error
}

// Tx is what the client sends: a message plus whatever the decorators need
// to authorize it.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns the message path or "(missing)".
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from tx into dst, which must be a pointer to
// the expected message type. The message is validated.
func LoadMsg(tx Tx, dst Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return err
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}
	dv := reflect.ValueOf(dst)
	mv := reflect.ValueOf(msg)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "destination %T is not a pointer", dst)
	}
	if mv.Type() != dv.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", dst, msg)
	}
	dv.Elem().Set(mv.Elem())
	if err := dst.Validate(); err != nil {
		return errors.Wrapf(err, "%s message", msg.Path())
	}
	return nil
}
