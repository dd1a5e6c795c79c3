/*
Package gconf stores the configuration of an extension as a singleton in the
database, under the key "_c:<package name>".

A configuration is loaded from the "conf" section of the genesis file and
may later be changed by its owner with an update message.
*/
package gconf
