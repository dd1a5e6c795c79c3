/*
Package x contains the extensions of the escrow engine.

Each sub-package implements handlers, decorators or controllers that the app
package combines into the application:

	x/sigs    signature verification and replay protection
	x/cash    the token ledger
	x/escrow  conditional escrows and their registries
	x/utils   logging, panic recovery and savepoint decorators

This package holds the Authenticator interface that lets extensions ask
which conditions a request was authorized with.
*/
package x
