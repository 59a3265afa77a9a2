package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-teoria/errors"
)

func TestCMajor(t *testing.T) {
	t.Parallel()

	info, err := NewGenerator().Get("C", "major")
	require.NoError(t, err)

	assert.Equal(t, "C major", info.Scale)
	assert.Equal(t, []string{"C", "D", "E", "F", "G", "A", "B"}, info.Notes)
	assert.Equal(t, "W-W-H-W-W-W-H", info.Formula)
	assert.Equal(t, []string{"P1", "M2", "M3", "P4", "P5", "M6", "M7"}, info.Intervals)
	assert.Len(t, info.Intervals, len(info.Notes))

	assert.Equal(t, "A", info.RelativeMinor)
	assert.Equal(t, "C", info.ParallelMinor)
	assert.Empty(t, info.RelativeMajor)

	names := make([]string, len(info.Degrees))
	for i, d := range info.Degrees {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"tonic", "supertonic", "mediant", "subdominant", "dominant", "submediant", "leading tone"}, names)
	assert.Equal(t, "major third", info.Degrees[2].Quality)
	assert.Equal(t, "perfect fifth", info.Degrees[4].Quality)

	require.Len(t, info.Modes, 7)
	assert.Equal(t, "C ionian", info.Modes[0].Scale)
	assert.Equal(t, "D dorian", info.Modes[1].Scale)
	assert.Equal(t, "B locrian", info.Modes[6].Scale)
}

func TestLetterAwareSpelling(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	tests := []struct {
		root  string
		typ   string
		notes []string
	}{
		{"F", "major", []string{"F", "G", "A", "Bb", "C", "D", "E"}},
		{"Db", "major", []string{"Db", "Eb", "F", "Gb", "Ab", "Bb", "C"}},
		{"F#", "major", []string{"F#", "G#", "A#", "B", "C#", "D#", "E#"}},
		{"A", "harmonic minor", []string{"A", "B", "C", "D", "E", "F", "G#"}},
		{"G#", "harmonic minor", []string{"G#", "A#", "B", "C#", "D#", "E", "F##"}},
		{"D", "dorian", []string{"D", "E", "F", "G", "A", "B", "C"}},
		{"C", "minor pentatonic", []string{"C", "Eb", "F", "G", "Bb"}},
		{"C", "blues", []string{"C", "Eb", "F", "Gb", "G", "Bb"}},
		{"C", "diminished", []string{"C", "D", "Eb", "F", "Gb", "Ab", "A", "B"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.root+" "+tt.typ, func(t *testing.T) {
			t.Parallel()

			info, err := g.Get(tt.root, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.notes, info.Notes)
			assert.Len(t, info.Intervals, len(info.Notes))
		})
	}
}

func TestMinorScale(t *testing.T) {
	t.Parallel()

	info, err := NewGenerator().Get("A", "natural_minor")
	require.NoError(t, err)

	assert.Equal(t, "minor", info.Type)
	assert.Equal(t, "W-H-W-W-H-W-W", info.Formula)
	assert.Equal(t, []string{"P1", "M2", "m3", "P4", "P5", "m6", "m7"}, info.Intervals)
	assert.Equal(t, "C", info.RelativeMajor)
	assert.Equal(t, "A", info.ParallelMajor)
	assert.Equal(t, "subtonic", info.Degrees[6].Name)
	assert.Equal(t, "A aeolian", info.Modes[0].Scale)
	assert.Equal(t, "C ionian", info.Modes[2].Scale)
}

func TestHarmonicMinorFormulaAndModes(t *testing.T) {
	t.Parallel()

	info, err := NewGenerator().Get("A", "Harmonic Minor")
	require.NoError(t, err)

	assert.Equal(t, "W-H-W-W-H-W+H-H", info.Formula)
	require.Len(t, info.Modes, 7)
	assert.Equal(t, "harmonic minor", info.Modes[0].Name)
	assert.Equal(t, "E phrygian dominant", info.Modes[4].Scale)

	melodic, err := NewGenerator().Get("C", "melodic minor")
	require.NoError(t, err)
	assert.Equal(t, "F lydian dominant", melodic.Modes[3].Scale)
}

func TestNonHeptatonicScalesHaveNoModes(t *testing.T) {
	t.Parallel()

	for _, typ := range []string{"major pentatonic", "blues", "whole tone", "chromatic"} {
		info, err := NewGenerator().Get("C", typ)
		require.NoError(t, err, typ)
		assert.Nil(t, info.Modes, typ)
		assert.Empty(t, info.RelativeMinor, typ)
		assert.Empty(t, info.RelativeMajor, typ)
		assert.Len(t, info.Intervals, len(info.Notes), typ)
	}
}

func TestChromaticScale(t *testing.T) {
	t.Parallel()

	info, err := NewGenerator().Get("C", "chromatic")
	require.NoError(t, err)
	assert.Len(t, info.Notes, 12)
	assert.Equal(t, "H-H-H-H-H-H-H-H-H-H-H-H", info.Formula)
}

func TestGetErrors(t *testing.T) {
	t.Parallel()

	g := NewGenerator()

	_, err := g.Get("H", "major")
	require.Error(t, err)
	assert.Equal(t, errors.KindInvalidRoot, errors.KindOf(err))

	_, err = g.Get("C4", "major")
	require.Error(t, err)
	assert.Equal(t, errors.KindInvalidRoot, errors.KindOf(err))

	_, err = g.Get("C", "klingon")
	require.Error(t, err)
	assert.Equal(t, errors.KindInvalidScaleType, errors.KindOf(err))
}

func TestTypesAreResolvable(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	for _, name := range g.Types() {
		info, err := g.Get("E", name)
		require.NoError(t, err, name)
		assert.Equal(t, name, info.Type)
	}
}
