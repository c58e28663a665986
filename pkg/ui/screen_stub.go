//go:build !linux
// +build !linux

package ui

import "fmt"

// EnableSingleView reports the live view as unavailable off Linux.
func EnableSingleView() (cleanup func(), enabled bool) {
	return func() {}, false
}

// ClearScreen homes the cursor and wipes the terminal.
func ClearScreen() {
	fmt.Print("\033[H\033[2J")
}
