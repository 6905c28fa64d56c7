//go:build tinygo

package main

import (
	"ttypanel/app"
	"ttypanel/hal"
)

func main() {
	app.Run(hal.New())
}
