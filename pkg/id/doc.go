// Package id generates time-ordered 128-bit tokens.
//
// Tokens sort lexicographically by creation time, which makes them usable
// both as map keys for in-flight bookkeeping and as storage keys where
// iteration order should follow creation order. A Generator is safe for
// concurrent use and stays monotonic even if the wall clock steps backwards.
package id
