//go:build !bootdebug

package app

import "ttypanel/hal"

func bootStep(string)         {}
func bootDiagStart(h hal.HAL) {}
