package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregates(t *testing.T) {
	t.Parallel()

	data := []float64{1, 4, 2, 4}

	assert.InDelta(t, 2.75, Mean(data), 1e-9)
	assert.InDelta(t, 11.0, Sum(data), 1e-9)
	assert.InDelta(t, 4.0, Max(data), 1e-9)

	assert.Zero(t, Mean(nil))
	assert.Zero(t, Max(nil))
}

func TestClampAndRound(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, Clamp(1.7, 0, 1), 1e-12)
	assert.InDelta(t, 0.0, Clamp(-0.2, 0, 1), 1e-12)
	assert.InDelta(t, 0.57, Round(0.5666, 2), 1e-12)
}

func TestPitchClassDFT(t *testing.T) {
	t.Parallel()

	single := make([]float64, 12)
	single[0] = 1
	dft := ComputePitchClassDFT(single)
	assert.InDelta(t, 1.0, dft.Diatonicity(), 1e-9)
	assert.InDelta(t, 1.0, dft.Total, 1e-9)

	// Diatonic collection: C major scale
	diatonic := make([]float64, 12)
	for _, pc := range []int{0, 2, 4, 5, 7, 9, 11} {
		diatonic[pc] = 1
	}
	// Whole-tone collection has no fifth-cycle content
	wholeTone := make([]float64, 12)
	for _, pc := range []int{0, 2, 4, 6, 8, 10} {
		wholeTone[pc] = 1
	}

	d := ComputePitchClassDFT(diatonic).Diatonicity()
	w := ComputePitchClassDFT(wholeTone).Diatonicity()
	assert.Greater(t, d, 0.5)
	assert.InDelta(t, 0.0, w, 1e-9)

	assert.Len(t, ComputePitchClassDFT([]float64{1, 2}).Magnitudes, 7)
}
