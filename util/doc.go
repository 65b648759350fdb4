// Package util provides small generic helpers shared across speechkit:
// size parsing for configuration, zero-value coalescing, and env value
// cleanup.
package util
