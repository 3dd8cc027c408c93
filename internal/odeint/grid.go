package odeint

// Arrange returns tStart+h, tStart+2h, ... built by repeated addition, keeping
// every sample <= tMax. tStart itself is never included. Because the samples
// accumulate rounding, the last one can land one step short of tMax even
// when the span is nominally a multiple of h. If h is too small to change
// the running time the grid ends at the last distinct sample.
func Arrange(tStart, tMax, h float64) []float64 {
	grid, _ := arrange(tStart, tMax, h)
	return grid
}

// arrange also reports whether adding h stopped advancing the time.
func arrange(tStart, tMax, h float64) (grid []float64, stalled bool) {
	if !(h > 0) {
		return nil, false
	}
	prev := tStart
	for current := tStart + h; current <= tMax; prev, current = current, current+h {
		if current == prev {
			return grid, true
		}
		grid = append(grid, current)
	}
	return grid, false
}

// fixedGrid is the full time axis of a fixed-step trajectory. On
// ErrStepTooSmall the axis returned ends at the time where it stalled.
func fixedGrid(tStart, tMax, h float64) ([]float64, error) {
	grid, stalled := arrange(tStart, tMax, h)
	times := append([]float64{tStart}, grid...)
	if stalled {
		return times, ErrStepTooSmall
	}
	return times, nil
}
