/*
Package cash is the token ledger. Every address owns a wallet of coins and
the only rule is that a balance never goes below zero.

Coins leave a wallet only with the authority of the condition that owns
it. That condition is either a signature granted to the request, or a
derived condition that an extension such as escrow computes itself, in
which case no private key exists for the wallet.
*/
package cash
