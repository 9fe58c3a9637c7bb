package output

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ImageData is a decoded image with unclamped channel values
type ImageData struct {
	Width    int
	Height   int
	MaxValue int
	Pixels   []core.RGB // Row-major, top row first
}

// At returns the pixel at (x, y)
func (d *ImageData) At(x, y int) core.RGB {
	return d.Pixels[y*d.Width+x]
}

// ReadPPM decodes an ASCII PPM (P3) image. Values are kept as written even
// when they exceed the declared maximum.
func ReadPPM(r io.Reader) (*ImageData, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	next := func(what string) (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", errors.Wrapf(err, "read %s", what)
			}
			return "", errors.Errorf("ppm: unexpected end of data reading %s", what)
		}
		return scanner.Text(), nil
	}
	nextInt := func(what string) (int, error) {
		token, err := next(what)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(token)
		if err != nil {
			return 0, errors.Wrapf(err, "ppm: bad %s", what)
		}
		return v, nil
	}

	magic, err := next("magic")
	if err != nil {
		return nil, err
	}
	if magic != "P3" {
		return nil, errors.Errorf("ppm: unsupported format %q", magic)
	}

	data := &ImageData{}
	if data.Width, err = nextInt("width"); err != nil {
		return nil, err
	}
	if data.Height, err = nextInt("height"); err != nil {
		return nil, err
	}
	if data.MaxValue, err = nextInt("max value"); err != nil {
		return nil, err
	}
	if data.Width <= 0 || data.Height <= 0 {
		return nil, errors.Errorf("ppm: invalid size %dx%d", data.Width, data.Height)
	}

	data.Pixels = make([]core.RGB, data.Width*data.Height)
	for i := range data.Pixels {
		var channels [3]uint16
		for c := range channels {
			v, err := nextInt("pixel value")
			if err != nil {
				return nil, errors.Wrapf(err, "pixel %d", i)
			}
			if v < 0 || v > 65535 {
				return nil, errors.Errorf("ppm: pixel %d value %d out of range", i, v)
			}
			channels[c] = uint16(v)
		}
		data.Pixels[i] = core.RGB{R: channels[0], G: channels[1], B: channels[2]}
	}

	return data, nil
}
