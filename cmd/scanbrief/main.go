// File: cmd/scanbrief/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/xkilldash9x/scanbrief/cmd"
	"github.com/xkilldash9x/scanbrief/internal/observability"
)

const panicLogFile = "panic.log"

// Function variables so tests can observe the exit path.
var (
	osWriteFile = os.WriteFile
	osExit      = os.Exit
)

func main() {
	defer handlePanic()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	osExit(exitCode(cmd.Execute(ctx)))
}

// exitCode maps the command result to the process status. Findings never fail
// a run; only an error from the command does.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// handlePanic records an unexpected panic to panic.log and exits with status 1.
func handlePanic() {
	r := recover()
	if r == nil {
		return
	}
	observability.Sync()

	msg := fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())
	if err := osWriteFile(panicLogFile, []byte(msg), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to write panic log: %v\n", err)
		fmt.Fprintf(os.Stderr, "Panic details:\n%s\n", msg)
		osExit(1)
		return
	}
	fmt.Fprintf(os.Stderr, "scanbrief crashed unexpectedly. Details logged to %s\n", panicLogFile)
	osExit(1)
}
