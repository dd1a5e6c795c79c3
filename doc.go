/*
Package pledge holds the interfaces shared by every part of the conditional
escrow engine: addresses and conditions, derived accounts, the request
context, store access and the handler chain.

Extensions live under x/. The escrow extension (x/escrow) implements the
escrow lifecycle on top of the cash ledger (x/cash) and the signature
authentication (x/sigs). The app package glues them into an ABCI
application served by cmd/pledged.
*/
package pledge
