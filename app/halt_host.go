//go:build !tinygo

package app

const haltOnFault = false
