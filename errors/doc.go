/*
Package errors declares the root errors of the pledge engine and the helpers
used to wrap them.

Every error returned to a client wraps one registered root error, which
determines the ABCI code of the response:

	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "escrow amount")
	}

Callers test for a kind of failure with the root error's Is method:

	if errors.ErrNotFound.Is(err) {
		...
	}
*/
package errors
