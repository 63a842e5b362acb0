package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandleCrash runs the cleanup hook to restore the terminal, prints the
// panic and stack trace to stderr, and exits nonzero. A nil value returns
// immediately so it can sit in a bare deferred recover.
func HandleCrash(r any, cleanup func()) {
	if r == nil {
		return
	}
	if cleanup != nil {
		cleanup()
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()
	os.Exit(1)
}
