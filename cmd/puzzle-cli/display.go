// FILE: cmd/puzzle-cli/display.go
package main

import (
	"os"

	"golang.org/x/term"
)

// ANSI color codes, blanked out when stdout is not a terminal.
var (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

func init() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		Reset, Red, Green, Yellow, Blue, Magenta, Cyan = "", "", "", "", "", "", ""
	}
}
