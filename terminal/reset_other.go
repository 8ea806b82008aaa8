//go:build !linux

package terminal

// resetTerminalMode is a no-op where termios handling is not wired
func resetTerminalMode() {}
