package renderer

import (
	"io"
	"log"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger on top of the standard log package
type DefaultLogger struct {
	logger *log.Logger
}

// NewDefaultLogger creates a logger writing to w, normally os.Stderr so
// progress never mixes with image data on stdout
func NewDefaultLogger(w io.Writer) core.Logger {
	return &DefaultLogger{logger: log.New(w, "", 0)}
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.logger.Printf(format, args...)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
