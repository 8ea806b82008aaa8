package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/rhythm-detective/terminal"
)

var version = "dev"

func main() {
	// Panic Recovery: restore the terminal before the stack trace is printed
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mRHYTHM DETECTIVE CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
