package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	// ErrShortSeries indicates too few samples for a spectrum.
	ErrShortSeries = errors.New("analysis: series too short")
	// ErrFlatSeries indicates a series with no variation about its mean.
	ErrFlatSeries = errors.New("analysis: flat series has no dominant frequency")
)

// NextPow2 is the smallest power of two >= n.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PowerSpectrum returns the magnitudes of the non-negative frequency bins of
// data. The mean is removed and the series zero padded to a power of two, so
// bin k sits at k / (2*len(result)*dt).
func PowerSpectrum(data []float64) []float64 {
	var mean float64
	for _, v := range data {
		mean += v
	}
	if len(data) > 0 {
		mean /= float64(len(data))
	}

	padded := make([]float64, NextPow2(len(data)))
	for i, v := range data {
		padded[i] = v - mean
	}

	bins := fft.FFTReal(padded)
	ps := make([]float64, len(bins)/2)
	for k := range ps {
		ps[k] = cmplx.Abs(bins[k])
	}
	return ps
}

// DominantFrequency returns the frequency of the strongest non-constant
// component of a series sampled every dt.
func DominantFrequency(data []float64, dt float64) (float64, error) {
	if len(data) < 4 {
		return 0, ErrShortSeries
	}
	ps := PowerSpectrum(data)

	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, ErrFlatSeries
	}
	return float64(peak) / (float64(2*len(ps)) * dt), nil
}

// DominantPeriod is 1 / DominantFrequency.
func DominantPeriod(data []float64, dt float64) (float64, error) {
	f, err := DominantFrequency(data, dt)
	if err != nil {
		return 0, err
	}
	return 1 / f, nil
}
