package renderer

import (
	"fmt"
	"io"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to an io.Writer.
// The CLI points it at stderr so stdout is left free for image data.
type DefaultLogger struct {
	out io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{out: w}
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() core.Logger {
	return nopLogger{}
}
