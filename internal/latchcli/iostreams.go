package latchcli

import (
	"fmt"
	"io"
	"os"
)

// FdReader is an input stream that additionally exposes the file
// descriptor prompts need for secure, non-echoing reads.
type FdReader interface {
	io.Reader
	Fd() uintptr
}

// IOStreams bundles the CLI's input/output streams, grounded on the
// teacher's genericclioptions.IOStreams.
type IOStreams struct {
	In     FdReader
	Out    io.Writer
	ErrOut io.Writer

	Verbose bool
}

// NewDefaultIOStreams returns the default IOStreams backed by the process's
// standard streams.
func NewDefaultIOStreams() IOStreams {
	return IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
}

// Printf writes an unprefixed formatted message to the standard output stream.
func (s IOStreams) Printf(format string, args ...any) {
	fmt.Fprintf(s.Out, format, args...)
}

// Debugf writes formatted debug output to the error stream if Verbose is enabled.
func (s IOStreams) Debugf(format string, args ...any) {
	if s.Verbose {
		fmt.Fprintf(s.ErrOut, "DEBUG "+format, args...)
	}
}

// Errorf writes a formatted message to the error stream.
func (s IOStreams) Errorf(format string, args ...any) {
	fmt.Fprintf(s.ErrOut, "ERROR "+format, args...)
}
