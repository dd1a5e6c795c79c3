/*
Package utils holds the decorators every application stacks in front of its
router: panic recovery, request logging, action tags and savepoints.
*/
package utils
