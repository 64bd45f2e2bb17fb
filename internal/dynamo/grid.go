package dynamo

// Linspace returns n evenly spaced samples over [start, stop]. Both endpoints
// are exact; n must be at least 2.
func Linspace(start, stop float64, n int) []float64 {
	if n < 2 {
		return nil
	}
	grid := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range grid {
		grid[i] = start + float64(i)*step
	}
	grid[n-1] = stop
	return grid
}

// StrictlyIncreasing reports whether every sample time is later than the one
// before it.
func StrictlyIncreasing(ts []float64) bool {
	for i := 1; i < len(ts); i++ {
		if !(ts[i] > ts[i-1]) {
			return false
		}
	}
	return true
}
