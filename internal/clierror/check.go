// Package clierror maps the engine's error taxonomy onto CLI-facing
// messages and exit codes, grounded on the teacher's own clierror
// package (same fatal-handler/writer override shape), retargeted at
// latcherrors instead of the teacher's vaulterrors/vaultdaemon sentinels.
package clierror

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/latchvault/latch-core/internal/latcherrors"
)

const (
	DefaultErrorExitCode = 1
)

var (
	// errHandler is the function used to handle cli errors.
	errHandler = FatalErrHandler

	// errWriter is used to output cli error messages.
	errWriter io.Writer = os.Stderr

	// fprintf is the function used to format and print errors.
	fprintf = fmt.Fprintf

	// debugMode enables always printing raw error values.
	debugMode bool
)

// SetErrorHandler overrides the default [FatalErrHandler] error handler.
func SetErrorHandler(f func(string, int)) {
	errHandler = f
}

// ResetErrorHandler restores the default error handler.
func ResetErrorHandler() {
	errHandler = FatalErrHandler
}

// SetErrWriter overrides the default error output writer [os.Stderr].
func SetErrWriter(w io.Writer) {
	errWriter = w
}

// ResetErrWriter restores the default error output writer to [os.Stderr].
func ResetErrWriter() {
	errWriter = os.Stderr
}

// SetDefaultFprintf sets the default function used to print errors.
func SetDefaultFprintf(f func(w io.Writer, format string, a ...any) (n int, err error)) {
	fprintf = f
}

// DebugMode sets whether debug logging is enabled.
//
// When enabled, raw error values are printed to stderr.
func DebugMode(enabled bool) {
	debugMode = enabled
}

// FatalErrHandler prints the message provided and then exits with the given code.
func FatalErrHandler(msg string, code int) {
	printError(msg)

	//nolint:revive // Intentional exit after fatal error.
	os.Exit(code)
}

func PrintErrHandler(msg string, _ int) {
	printError(msg)
}

func printError(msg string) {
	if len(msg) == 0 {
		return
	}

	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	_, _ = fprintf(errWriter, msg)
}

func debugPrint(err error) {
	if !debugMode {
		return
	}

	_, _ = fprintf(errWriter, "DEBUG %+v\n", err)
}

// ErrExit may be passed to Check to instruct it to output nothing but exit
// with status code 1.
var ErrExit = errors.New("exit")

// Check prints a user-friendly error message and invokes the configured
// error handler. Per spec §6, any error maps to exit code 1; success maps
// to 0 at the caller.
//
// When the [FatalErrHandler] is used, the program will exit before this
// function returns.
func Check(err error) error {
	check(err, errHandler)
	return err
}

//nolint:revive
func check(err error, handleErr func(string, int)) {
	if err == nil {
		return
	}

	debugPrint(err)

	switch {
	case errors.Is(err, ErrExit):
		handleErr("", DefaultErrorExitCode)
	case errors.Is(err, latcherrors.ErrAlreadyExists):
		handleErr("latch: vault already exists\nDelete the existing vault file first, or choose a different path.", DefaultErrorExitCode)
	case errors.Is(err, latcherrors.ErrNotFound):
		handleErr("latch: "+err.Error()+"\nUse one of the init commands to create a vault first.", DefaultErrorExitCode)
	case errors.Is(err, latcherrors.ErrAuthFailed):
		handleErr("latch: authentication failed\nCheck your credentials and try again.", DefaultErrorExitCode)
	case errors.Is(err, latcherrors.ErrLocked):
		handleErr("latch: vault is locked\nUnlock it first.", DefaultErrorExitCode)
	case errors.Is(err, latcherrors.ErrNetwork):
		handleErr("latch: network error\n"+err.Error(), DefaultErrorExitCode)
	default:
		msg := err.Error()
		if !strings.HasPrefix(msg, "latch: ") {
			msg = "latch: " + msg
		}

		handleErr(msg, DefaultErrorExitCode)
	}
}
