// File: cmd/scanbrief/main_test.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetMocks() {
	osWriteFile = os.WriteFile
	osExit = os.Exit
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(context.Canceled), "an interrupted run without a report is a failure")
	assert.Equal(t, 1, exitCode(fmt.Errorf("run: %w", context.Canceled)))
	assert.Equal(t, 1, exitCode(errors.New("failed to write security report")))
}

func TestHandlePanic(t *testing.T) {
	defer resetMocks()

	t.Run("writes panic log and exits 1", func(t *testing.T) {
		var written string
		var path string
		exitStatus := -1
		osWriteFile = func(name string, data []byte, _ os.FileMode) error {
			path, written = name, string(data)
			return nil
		}
		osExit = func(code int) { exitStatus = code }

		func() {
			defer handlePanic()
			panic("boom")
		}()

		assert.Equal(t, panicLogFile, path)
		assert.Contains(t, written, "panic: boom")
		assert.Contains(t, written, "goroutine")
		assert.Equal(t, 1, exitStatus)
	})

	t.Run("log write failure still exits 1", func(t *testing.T) {
		exitStatus := -1
		osWriteFile = func(string, []byte, os.FileMode) error { return errors.New("read-only") }
		osExit = func(code int) { exitStatus = code }

		func() {
			defer handlePanic()
			panic("boom")
		}()

		assert.Equal(t, 1, exitStatus)
	})

	t.Run("no panic is a no-op", func(t *testing.T) {
		called := false
		osExit = func(int) { called = true }

		func() {
			defer handlePanic()
		}()

		require.False(t, called)
	})
}
