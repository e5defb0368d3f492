// Package functions implements the built-in colour and number functions
// that attribute values may call (rgb, lighten, mix, round, ...).
//
// Calls to names the library does not know are returned unchanged so that
// native CSS functions such as url() or translate() survive compilation.
package functions
