package output

import (
	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// MultiWriter sends every row to each of its writers in order
type MultiWriter struct {
	writers []renderer.RowWriter
}

// NewMultiWriter fans rows out to writers
func NewMultiWriter(writers ...renderer.RowWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (m *MultiWriter) Begin(width, height int) error {
	for i, w := range m.writers {
		if err := w.Begin(width, height); err != nil {
			return errors.Wrapf(err, "writer %d", i)
		}
	}
	return nil
}

func (m *MultiWriter) WriteRow(y int, row []core.RGB) error {
	for i, w := range m.writers {
		if err := w.WriteRow(y, row); err != nil {
			return errors.Wrapf(err, "writer %d", i)
		}
	}
	return nil
}

// Close closes every writer and returns the first error
func (m *MultiWriter) Close() error {
	var first error
	for i, w := range m.writers {
		if err := w.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "writer %d", i)
		}
	}
	return first
}

// RowFunc adapts a function to a RowWriter that only observes rows
type RowFunc func(y int, row []core.RGB) error

func (f RowFunc) Begin(width, height int) error        { return nil }
func (f RowFunc) WriteRow(y int, row []core.RGB) error { return f(y, row) }
func (f RowFunc) Close() error                         { return nil }
