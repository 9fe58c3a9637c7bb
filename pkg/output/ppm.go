package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// PPMWriter streams an ASCII PPM (P3) image, one pixel triplet per line.
// Each row is flushed as soon as it is written.
type PPMWriter struct {
	w             *bufio.Writer
	width, height int
	rows          int
}

// NewPPMWriter creates a PPM writer on top of w
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// Begin writes the header
func (p *PPMWriter) Begin(width, height int) error {
	p.width, p.height = width, height
	if _, err := fmt.Fprintf(p.w, "P3\n%d %d\n255\n", width, height); err != nil {
		return errors.Wrap(err, "write ppm header")
	}
	return errors.Wrap(p.w.Flush(), "flush ppm header")
}

// WriteRow writes the pixels of row y. Rows must arrive top to bottom.
func (p *PPMWriter) WriteRow(y int, row []core.RGB) error {
	if y != p.rows {
		return errors.Errorf("ppm: got row %d, expected %d", y, p.rows)
	}
	if len(row) != p.width {
		return errors.Errorf("ppm: row %d has %d pixels, expected %d", y, len(row), p.width)
	}

	for _, px := range row {
		if _, err := fmt.Fprintf(p.w, "%d %d %d\n", px.R, px.G, px.B); err != nil {
			return errors.Wrapf(err, "write ppm row %d", y)
		}
	}
	p.rows++
	return errors.Wrapf(p.w.Flush(), "flush ppm row %d", y)
}

// Close checks that the image is complete
func (p *PPMWriter) Close() error {
	if p.rows != p.height {
		return errors.Errorf("ppm: wrote %d of %d rows", p.rows, p.height)
	}
	return errors.Wrap(p.w.Flush(), "flush ppm")
}
