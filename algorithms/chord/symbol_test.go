package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/errors"
)

func TestParseSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text    string
		root    string
		quality Quality
		bass    string
	}{
		{"C", "C", Major, ""},
		{"Am", "A", Minor, ""},
		{"Dm7", "D", Min7, ""},
		{"G7", "G", Dom7, ""},
		{"Cmaj7", "C", Maj7, ""},
		{"CΔ7", "C", Maj7, ""},
		{"Bbmaj7", "Bb", Maj7, ""},
		{"F#m7b5", "F#", HalfDim7, ""},
		{"Bø", "B", HalfDim7, ""},
		{"Bdim", "B", Diminished, ""},
		{"G#°7", "G#", Dim7, ""},
		{"Eaug", "E", Augmented, ""},
		{"Dsus4", "D", Sus4, ""},
		{"A5", "A", Power, ""},
		{"C6/9", "C", SixNine, ""},
		{"C/E", "C", Major, "E"},
		{"Am7/G", "A", Min7, "G"},
		{" E7 ", "E", Dom7, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			sym, err := ParseSymbol(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.root, sym.Root.Spelling)
			assert.Equal(t, tt.quality, sym.Template.Quality)
			if tt.bass == "" {
				assert.Nil(t, sym.Bass)
			} else {
				require.NotNil(t, sym.Bass)
				assert.Equal(t, tt.bass, sym.Bass.Spelling)
			}
		})
	}
}

func TestParseSymbolRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "H7", "Cxyz", "c", "C/H"} {
		_, err := ParseSymbol(text)
		require.Error(t, err, text)
		assert.Equal(t, errors.KindInvalidChord, errors.KindOf(err), text)
	}
}

func TestParseSymbolsReportsIndex(t *testing.T) {
	t.Parallel()

	_, err := ParseSymbols([]string{"C", "G", "Xm", "F"})
	require.Error(t, err)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 2, e.Context["index"])

	symbols, err := ParseSymbols([]string{"Dm7", "G7", "Cmaj7"})
	require.NoError(t, err)
	assert.Len(t, symbols, 3)
}

func TestSymbolTones(t *testing.T) {
	t.Parallel()

	sym, err := ParseSymbol("G7")
	require.NoError(t, err)
	assert.Equal(t, []pitch.PitchClass{7, 11, 2, 5}, sym.Tones())

	slash, err := ParseSymbol("C/Bb")
	require.NoError(t, err)
	assert.Equal(t, []pitch.PitchClass{0, 4, 7, 10}, slash.Tones())

	inverted, err := ParseSymbol("C/E")
	require.NoError(t, err)
	assert.Equal(t, []pitch.PitchClass{0, 4, 7}, inverted.Tones())
}

func TestSymbolRoundTripsThroughIdentify(t *testing.T) {
	t.Parallel()

	m := NewMatcher()
	for _, text := range []string{"C", "Am", "G7", "Cmaj7", "Bdim", "Fm7"} {
		sym, err := ParseSymbol(text)
		require.NoError(t, err)

		notes := make([]string, 0, len(sym.Template.offsets))
		for _, pc := range sym.Tones() {
			notes = append(notes, pitch.Name(pc, pitch.PrefersFlats(sym.Root)))
		}

		result, err := m.Identify(notes)
		require.NoError(t, err, text)
		assert.Equal(t, sym.Template.Quality, result.Template.Quality, text)
		assert.Equal(t, sym.Root.Class, result.RootClass, text)
	}
}
