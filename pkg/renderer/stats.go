package renderer

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	Width            int           // Image width in pixels
	Height           int           // Image height in pixels
	Workers          int           // Number of workers that sampled the image
	SamplesPerWorker int           // Samples each worker took for every pixel
	TotalSamples     int           // Samples averaged into every pixel
	Duration         time.Duration // Wall time from first sample to last row written
	MeanLuminance    float64       // Mean linear luminance over all pixels
	LuminanceStdDev  float64       // Standard deviation of the pixel luminance
}

// luminanceAccumulator collects the averaged luminance of every pixel
type luminanceAccumulator struct {
	values []float64
}

func newLuminanceAccumulator(pixels int) *luminanceAccumulator {
	return &luminanceAccumulator{values: make([]float64, 0, pixels)}
}

// AddRow records one summed row averaged over sampleCount samples
func (la *luminanceAccumulator) AddRow(sums []core.Color, sampleCount int) {
	scale := 1.0 / float64(sampleCount)
	for _, sum := range sums {
		la.values = append(la.values, sum.Multiply(scale).Luminance())
	}
}

// MeanStdDev returns the mean and standard deviation of the recorded values
func (la *luminanceAccumulator) MeanStdDev() (float64, float64) {
	switch len(la.values) {
	case 0:
		return 0, 0
	case 1:
		return la.values[0], 0
	}
	return stat.MeanStdDev(la.values, nil)
}
