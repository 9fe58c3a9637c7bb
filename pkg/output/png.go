package output

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// PNGWriter collects rows into an 8-bit image and encodes it on Close.
// Channels above 255 are clamped since PNG cannot hold them.
type PNGWriter struct {
	w   io.Writer
	img *image.RGBA

	thumbnail      io.Writer
	thumbnailWidth uint
}

// NewPNGWriter creates a PNG writer on top of w
func NewPNGWriter(w io.Writer) *PNGWriter {
	return &PNGWriter{w: w}
}

// WithThumbnail additionally encodes a copy scaled to width pixels into w,
// keeping the aspect ratio
func (p *PNGWriter) WithThumbnail(w io.Writer, width int) *PNGWriter {
	p.thumbnail = w
	p.thumbnailWidth = uint(width)
	return p
}

// Begin allocates the image
func (p *PNGWriter) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf("png: invalid size %dx%d", width, height)
	}
	p.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// WriteRow copies row y into the image
func (p *PNGWriter) WriteRow(y int, row []core.RGB) error {
	bounds := p.img.Bounds()
	if y < 0 || y >= bounds.Dy() {
		return errors.Errorf("png: row %d out of range", y)
	}
	if len(row) != bounds.Dx() {
		return errors.Errorf("png: row %d has %d pixels, expected %d", y, len(row), bounds.Dx())
	}

	for x, px := range row {
		p.img.SetRGBA(x, y, color.RGBA{R: clamp8(px.R), G: clamp8(px.G), B: clamp8(px.B), A: 255})
	}
	return nil
}

// Close encodes the image and the optional thumbnail
func (p *PNGWriter) Close() error {
	if p.img == nil {
		return errors.New("png: Close called before Begin")
	}
	if err := png.Encode(p.w, p.img); err != nil {
		return errors.Wrap(err, "encode png")
	}

	if p.thumbnail != nil && p.thumbnailWidth > 0 {
		thumb := resize.Resize(p.thumbnailWidth, 0, p.img, resize.Lanczos3)
		if err := png.Encode(p.thumbnail, thumb); err != nil {
			return errors.Wrap(err, "encode thumbnail")
		}
	}
	return nil
}

// Image returns the collected image
func (p *PNGWriter) Image() *image.RGBA {
	return p.img
}

func clamp8(v uint16) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
