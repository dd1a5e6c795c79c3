package escrow

import (
	"github.com/iov-one/pledge"
	"github.com/iov-one/pledge/coin"
	"github.com/iov-one/pledge/errors"
	"github.com/iov-one/pledge/gconf"
	"github.com/iov-one/pledge/orm"
	"github.com/iov-one/pledge/x"
	"github.com/iov-one/pledge/x/cash"
)

// Controller runs the escrow state machine. Every operation either applies
// all of its changes, including the ledger transfer and the registry
// append, or none of them.
type Controller struct {
	auth     x.Authenticator
	ledger   cash.Controller
	escrows  orm.ModelBucket
	list     *EscrowRegistry
	payments *PaymentRegistry
}

func NewController(auth x.Authenticator, ledger cash.Controller) *Controller {
	return &Controller{
		auth:     auth,
		ledger:   ledger,
		escrows:  NewEscrowBucket(),
		list:     NewEscrowRegistry(),
		payments: NewPaymentRegistry(),
	}
}

// CreateEscrow locks amount of the depositor funds for the recipient until
// expiry. The depositor must have signed the request.
func (c *Controller) CreateEscrow(
	ctx pledge.Context,
	db pledge.KVStore,
	depositor, recipient pledge.Address,
	amount coin.Coin,
	condition string,
	expiry pledge.UnixTime,
) (*Escrow, error) {
	escrow, authority, err := c.creatable(ctx, db, depositor, recipient, amount, condition, expiry)
	if err != nil {
		return nil, err
	}
	key := escrow.holding
	err = atomically(db, func(db pledge.KVStore) error {
		if err := c.escrows.Put(db, key, escrow.Escrow); err != nil {
			return errors.Wrap(err, "cannot save escrow")
		}
		if err := c.list.Append(db, escrow.Snapshot()); err != nil {
			return errors.Wrap(err, "cannot register escrow")
		}
		if err := c.ledger.Transfer(db, authority, depositor, key, amount); err != nil {
			return errors.Wrap(err, "cannot deposit funds")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return escrow.Escrow, nil
}

// keyedEscrow is an escrow together with the address of its holding
// account.
type keyedEscrow struct {
	*Escrow
	holding pledge.Address
}

func (c *Controller) creatable(
	ctx pledge.Context,
	db pledge.ReadOnlyKVStore,
	depositor, recipient pledge.Address,
	amount coin.Coin,
	condition string,
	expiry pledge.UnixTime,
) (*keyedEscrow, pledge.Condition, error) {
	authority := x.FindCondition(ctx, c.auth, depositor)
	if authority == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "depositor signature missing")
	}
	if !amount.IsPositive() {
		return nil, nil, errors.Wrap(errors.ErrAmount, "escrow amount must be positive")
	}
	if err := amount.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "amount")
	}
	if err := recipient.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "recipient")
	}
	if pledge.IsExpired(ctx, expiry) {
		return nil, nil, errors.Wrapf(errors.ErrExpired, "expiry %s is in the past", expiry)
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if len(condition) > int(conf.MaxConditionLength) {
		return nil, nil, errors.Wrapf(errors.ErrInput, "condition longer than %d bytes", conf.MaxConditionLength)
	}

	ea, err := newEscrowAuthority(depositor, recipient, amount.Ticker)
	if err != nil {
		return nil, nil, err
	}
	key := ea.Address()
	if c.escrows.Has(db, key) {
		return nil, nil, errors.Wrapf(ErrEscrowExists, "escrow %s", key)
	}
	escrow := &Escrow{
		Depositor:  depositor,
		Recipient:  recipient,
		Asset:      amount.Ticker,
		Amount:     amount.Amount,
		Condition:  condition,
		ExpiryTime: expiry,
		Nonce:      uint32(ea.Nonce()),
	}
	return &keyedEscrow{Escrow: escrow, holding: key}, authority, nil
}

// FulfillCondition marks the condition of the escrow stored under key as
// met. Only the recipient can do it and only before the escrow expires.
func (c *Controller) FulfillCondition(ctx pledge.Context, db pledge.KVStore, key pledge.Address) (*Escrow, error) {
	escrow, err := c.fulfillable(ctx, db, key)
	if err != nil {
		return nil, err
	}
	escrow.IsFulfilled = true
	if err := c.escrows.Put(db, key, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot save escrow")
	}
	return escrow, nil
}

func (c *Controller) fulfillable(ctx pledge.Context, db pledge.ReadOnlyKVStore, key pledge.Address) (*Escrow, error) {
	escrow, err := c.Escrow(db, key)
	if err != nil {
		return nil, err
	}
	if !c.auth.HasAddress(ctx, escrow.Recipient) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the recipient can fulfill the condition")
	}
	if escrow.IsFulfilled {
		return nil, errors.Wrapf(ErrAlreadyFulfilled, "escrow %s", key)
	}
	if pledge.IsExpired(ctx, escrow.ExpiryTime) {
		return nil, errors.Wrapf(errors.ErrExpired, "escrow expired at %s", escrow.ExpiryTime)
	}
	return escrow, nil
}

// ReleasePayment sends the funds of a fulfilled escrow to the recipient and
// closes it. Any signer can release. If holding is not nil it must be the
// holding account of the escrow.
func (c *Controller) ReleasePayment(ctx pledge.Context, db pledge.KVStore, key, holding pledge.Address) (*PaymentRecord, error) {
	escrow, authority, err := c.releasable(ctx, db, key, holding)
	if err != nil {
		return nil, err
	}
	now, _ := pledge.BlockTime(ctx)
	payment := &PaymentRecord{
		Amount:    escrow.Amount,
		Recipient: escrow.Recipient,
		Timestamp: pledge.AsUnixTime(now),
	}
	err = atomically(db, func(db pledge.KVStore) error {
		if err := c.payments.Append(db, payment); err != nil {
			return errors.Wrap(err, "cannot register payment")
		}
		if err := c.ledger.Transfer(db, authority.cond, key, escrow.Recipient, escrow.Coin()); err != nil {
			return errors.Wrap(err, "cannot release funds")
		}
		return c.escrows.Delete(db, key)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (c *Controller) releasable(ctx pledge.Context, db pledge.ReadOnlyKVStore, key, holding pledge.Address) (*Escrow, EscrowAuthority, error) {
	if x.MainSigner(ctx, c.auth) == nil {
		return nil, EscrowAuthority{}, errors.Wrap(errors.ErrUnauthorized, "release must be signed")
	}
	escrow, err := c.Escrow(db, key)
	if err != nil {
		return nil, EscrowAuthority{}, err
	}
	if !escrow.IsFulfilled {
		return nil, EscrowAuthority{}, errors.Wrapf(ErrConditionNotFulfilled, "escrow %s", key)
	}
	if pledge.IsExpired(ctx, escrow.ExpiryTime) {
		return nil, EscrowAuthority{}, errors.Wrapf(errors.ErrExpired, "escrow expired at %s", escrow.ExpiryTime)
	}
	authority, err := c.authority(escrow, key)
	if err != nil {
		return nil, EscrowAuthority{}, err
	}
	if holding != nil && !holding.Equals(key) {
		return nil, EscrowAuthority{}, errors.Wrapf(ErrMismatchedAccount, "holding account is %s, not %s", key, holding)
	}
	return escrow, authority, nil
}

// Refund returns the funds of an expired, unfulfilled escrow to the
// depositor and closes it. Only the depositor can request it.
func (c *Controller) Refund(ctx pledge.Context, db pledge.KVStore, key pledge.Address) (*Escrow, error) {
	escrow, authority, err := c.refundable(ctx, db, key)
	if err != nil {
		return nil, err
	}
	err = atomically(db, func(db pledge.KVStore) error {
		if err := c.ledger.Transfer(db, authority.cond, key, escrow.Depositor, escrow.Coin()); err != nil {
			return errors.Wrap(err, "cannot refund funds")
		}
		return c.escrows.Delete(db, key)
	})
	if err != nil {
		return nil, err
	}
	return escrow, nil
}

func (c *Controller) refundable(ctx pledge.Context, db pledge.ReadOnlyKVStore, key pledge.Address) (*Escrow, EscrowAuthority, error) {
	escrow, err := c.Escrow(db, key)
	if err != nil {
		return nil, EscrowAuthority{}, err
	}
	if !c.auth.HasAddress(ctx, escrow.Depositor) {
		return nil, EscrowAuthority{}, errors.Wrap(errors.ErrUnauthorized, "only the depositor can refund")
	}
	if escrow.IsFulfilled {
		return nil, EscrowAuthority{}, errors.Wrapf(ErrAlreadyFulfilled, "escrow %s", key)
	}
	if !pledge.IsExpired(ctx, escrow.ExpiryTime) {
		return nil, EscrowAuthority{}, errors.Wrapf(ErrNotExpired, "escrow expires at %s", escrow.ExpiryTime)
	}
	authority, err := c.authority(escrow, key)
	if err != nil {
		return nil, EscrowAuthority{}, err
	}
	return escrow, authority, nil
}

// authority rebuilds the authority of a stored escrow and makes sure it
// owns the account the escrow is stored under.
func (c *Controller) authority(escrow *Escrow, key pledge.Address) (EscrowAuthority, error) {
	a, err := storedAuthority(escrow)
	if err != nil {
		return EscrowAuthority{}, err
	}
	if !a.Address().Equals(key) {
		return EscrowAuthority{}, errors.Wrapf(ErrMismatchedAccount, "escrow stored under %s is owned by %s", key, a.Address())
	}
	return a, nil
}

// Escrow returns the live escrow stored under key.
func (c *Controller) Escrow(db pledge.ReadOnlyKVStore, key pledge.Address) (*Escrow, error) {
	var escrow Escrow
	if err := c.escrows.One(db, key, &escrow); err != nil {
		return nil, errors.Wrap(err, "cannot load escrow from the store")
	}
	return &escrow, nil
}

// GetEscrow returns the live escrow of the (depositor, recipient, asset)
// triple.
func (c *Controller) GetEscrow(db pledge.ReadOnlyKVStore, depositor, recipient pledge.Address, asset string) (*Escrow, error) {
	key, err := HoldingAddress(depositor, recipient, asset)
	if err != nil {
		return nil, err
	}
	return c.Escrow(db, key)
}

// ListConditionalEscrows returns the registered snapshots that were not
// fulfilled, in creation order. Snapshots are taken at creation time, the
// listing is history and may contain closed escrows.
func (c *Controller) ListConditionalEscrows(ctx pledge.Context, db pledge.ReadOnlyKVStore) ([]*EscrowSnapshot, error) {
	if x.MainSigner(ctx, c.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "listing must be signed")
	}
	all, err := c.list.All(db)
	if err != nil {
		return nil, err
	}
	res := make([]*EscrowSnapshot, 0, len(all))
	for _, s := range all {
		if !s.IsFulfilled {
			res = append(res, s)
		}
	}

	logger := pledge.GetLogger(ctx)
	logger.Info("Listing conditional escrows", "count", len(res))
	for _, s := range res {
		logger.Info("Escrow",
			"sender", s.Sender,
			"recipient", s.Recipient,
			"amount", coin.NewCoin(s.Amount, s.Asset),
			"condition", s.Condition,
			"expiry", s.ExpiryTime)
	}
	return res, nil
}

// ListReleasedPayments returns every registered release in order.
func (c *Controller) ListReleasedPayments(ctx pledge.Context, db pledge.ReadOnlyKVStore) ([]*PaymentRecord, error) {
	if x.MainSigner(ctx, c.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "listing must be signed")
	}
	all, err := c.payments.All(db)
	if err != nil {
		return nil, err
	}

	logger := pledge.GetLogger(ctx)
	logger.Info("Listing released payments", "count", len(all))
	for _, p := range all {
		logger.Info("Payment",
			"recipient", p.Recipient,
			"amount", p.Amount,
			"timestamp", p.Timestamp)
	}
	return all, nil
}

// InitializeEscrowList creates the escrow registry. It can be done once.
func (c *Controller) InitializeEscrowList(ctx pledge.Context, db pledge.KVStore) error {
	capacity, err := c.initCapacity(ctx, db)
	if err != nil {
		return err
	}
	return c.list.Init(db, capacity)
}

// InitializePaymentList creates the payment registry. It can be done once.
func (c *Controller) InitializePaymentList(ctx pledge.Context, db pledge.KVStore) error {
	capacity, err := c.initCapacity(ctx, db)
	if err != nil {
		return err
	}
	return c.payments.Init(db, capacity)
}

func (c *Controller) initCapacity(ctx pledge.Context, db pledge.ReadOnlyKVStore) (uint32, error) {
	if x.MainSigner(ctx, c.auth) == nil {
		return 0, errors.Wrap(errors.ErrUnauthorized, "initialization must be signed")
	}
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return conf.RegistryCapacity, nil
}

// loadConf returns the stored configuration or the default one.
func loadConf(db pledge.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	err := gconf.Load(db, optKey, &conf)
	switch {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		conf = DefaultConfiguration()
		return &conf, nil
	default:
		return nil, errors.Wrap(err, "cannot load escrow configuration")
	}
}

// atomically runs fn on a cache wrap of db that is written only if fn
// succeeds. Stores that cannot be cache wrapped are used directly.
func atomically(db pledge.KVStore, fn func(pledge.KVStore) error) error {
	cacheable, ok := db.(pledge.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}
