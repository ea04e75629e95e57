package cmd

import "os"

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// isStdinPipe reports whether questions arrive on stdin (ask batch mode).
func isStdinPipe() bool {
	return !isTerminal(os.Stdin)
}

// resolveColor enables ANSI captions on a terminal unless --no-color or
// NO_COLOR is set.
func resolveColor(noColorFlag bool) bool {
	if noColorFlag || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(os.Stdout)
}
