//go:build tinygo

package app

// On the board there is nothing to return to.
const haltOnFault = true
