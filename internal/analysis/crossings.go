package analysis

// UpCrossings returns the interpolated times at which series rises through
// level.
func UpCrossings(times, series []float64, level float64) []float64 {
	var out []float64
	for i := 1; i < len(series) && i < len(times); i++ {
		prev, curr := series[i-1], series[i]
		if prev < level && curr >= level {
			frac := (level - prev) / (curr - prev)
			out = append(out, times[i-1]+frac*(times[i]-times[i-1]))
		}
	}
	return out
}

// MeanPeriod is the average spacing of successive crossings. It needs at
// least two crossings.
func MeanPeriod(crossings []float64) (float64, bool) {
	if len(crossings) < 2 {
		return 0, false
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1), true
}
