package common

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PitchClassDFT is the discrete Fourier transform of a 12-bin pitch-class
// distribution. |F5| grows with diatonicity.
type PitchClassDFT struct {
	Coefficients []complex128 `json:"-"`
	Magnitudes   []float64    `json:"magnitudes"` // |Fk| / F0 for k = 0..6
	Total        float64      `json:"total"`      // F0, the weight of the distribution
}

// ComputePitchClassDFT transforms a 12-element weight vector using mjibson/go-dsp
func ComputePitchClassDFT(weights []float64) PitchClassDFT {
	if len(weights) != 12 {
		return PitchClassDFT{Magnitudes: make([]float64, 7)}
	}

	coeffs := fft.FFTReal(weights)
	total := real(coeffs[0])

	mags := make([]float64, 7)
	if total > 0 {
		for k := 0; k <= 6; k++ {
			mags[k] = Clamp(cmplx.Abs(coeffs[k])/total, 0.0, 1.0)
		}
	}

	return PitchClassDFT{
		Coefficients: coeffs,
		Magnitudes:   mags,
		Total:        total,
	}
}

// Diatonicity returns the normalized fifth coefficient |F5| / F0
func (d PitchClassDFT) Diatonicity() float64 {
	if len(d.Magnitudes) < 6 {
		return 0.0
	}
	return d.Magnitudes[5]
}
