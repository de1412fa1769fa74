package analysis

import (
	"math"
	"math/bits"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a real-valued signal with
// an iterative radix-2 butterfly. Signals whose length is not a power of
// two are zero-padded up to the next one, so the returned length is always
// a power of two.
func FFT(values []float64) []complex128 {
	if len(values) == 0 {
		return nil
	}

	n := 1
	for n < len(values) {
		n <<= 1
	}
	logN := bits.TrailingZeros(uint(n))

	// Bit-reversal permutation of the padded input.
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		j := int(bits.Reverse(uint(i)) >> (bits.UintSize - logN))
		if j < len(values) {
			out[i] = complex(values[j], 0)
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		root := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := start; k < start+half; k++ {
				a, b := out[k], w*out[k+half]
				out[k] = a + b
				out[k+half] = a - b
				w *= root
			}
		}
	}

	return out
}

// PowerSpectrum returns the magnitude of each frequency bin below the
// Nyquist rate. Bin k of a length-n transform corresponds to frequency
// k/(n*dt) for sample spacing dt.
func PowerSpectrum(values []float64) []float64 {
	spec := FFT(values)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}
