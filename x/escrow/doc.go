/*
Package escrow implements a conditional escrow.

A depositor locks an amount of a single asset for a recipient until an
expiry time. The funds are held by an account derived from the
(depositor, recipient, asset) triple, no private key exists for it and only
this extension can move its funds.

The recipient attests, out of band, that the escrow condition was met by
sending a fulfill message. A fulfilled escrow can be released to the
recipient by anyone until it expires. An unfulfilled escrow can be refunded
to the depositor once it expired.

Two bounded registries keep the history: a snapshot of every created escrow
and a record of every release. They are never updated nor trimmed, once
full every further append fails.
*/
package escrow
