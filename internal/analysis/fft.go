package analysis

import (
	"math"
	"math/cmplx"
)

// FFT returns the discrete Fourier transform of data, zero-padded to the next
// power of two.
func FFT(data []float64) []complex128 {
	n := nextPow2(len(data))
	padded := make([]float64, n)
	copy(padded, data)
	return fft(padded)
}

func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PowerSpectrum returns the magnitudes of the non-negative frequency bins.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// DominantPeriod estimates the period of the strongest oscillation in a
// series sampled every dt. The mean is removed first, so a constant series
// has no period.
func DominantPeriod(series []float64, dt float64) (float64, bool) {
	if len(series) < 4 || !(dt > 0) {
		return 0, false
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if !(ps[best] > 1e-12) {
		return 0, false
	}

	n := nextPow2(len(series))
	return float64(n) * dt / float64(best), true
}
