package harmony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-teoria/algorithms/chord"
	"github.com/RyanBlaney/sonido-teoria/algorithms/key"
)

var (
	cMajor = key.Key{Tonic: 0, Mode: key.ModeMajor}
	aMinor = key.Key{Tonic: 9, Mode: key.ModeMinor}
)

func classify(t *testing.T, k key.Key, texts ...string) []ChordAnalysis {
	t.Helper()
	syms, err := chord.ParseSymbols(texts)
	require.NoError(t, err)
	return Classify(k, syms)
}

func TestClassifyTwoFiveOne(t *testing.T) {
	t.Parallel()

	analysis := classify(t, cMajor, "Dm7", "G7", "Cmaj7")
	require.Len(t, analysis, 3)

	assert.Equal(t, "ii7", analysis[0].Roman)
	assert.Equal(t, "V7", analysis[1].Roman)
	assert.Equal(t, "Imaj7", analysis[2].Roman)
	assert.Equal(t, []string{"ii", "V", "I"}, Sequence(analysis))

	assert.Equal(t, []int{2, 5, 1}, []int{analysis[0].Degree, analysis[1].Degree, analysis[2].Degree})
	assert.Equal(t, FunctionPassing, analysis[0].Function)
	assert.Equal(t, FunctionDominant, analysis[1].Function)
	assert.Equal(t, FunctionTonic, analysis[2].Function)

	for _, a := range analysis {
		assert.True(t, a.Diatonic, a.Chord)
		assert.False(t, a.Borrowed, a.Chord)
		assert.Empty(t, a.SecondaryDominant, a.Chord)
	}
}

func TestClassifyQualityMarks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		k     key.Key
		chord string
		roman string
		base  string
	}{
		{cMajor, "Bdim", "vii°", "vii°"},
		{cMajor, "Bm7b5", "viiø7", "viiø"},
		{cMajor, "Am", "vi", "vi"},
		{cMajor, "Fmaj7", "IVmaj7", "IV"},
		{cMajor, "G9", "V9", "V"},
		{cMajor, "Gsus4", "Vsus4", "V"},
		{aMinor, "G#dim7", "vii°7", "vii°"},
		{aMinor, "E7", "V7", "V"},
		{aMinor, "Caug", "III+", "III+"},
		{aMinor, "G", "VII", "VII"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.chord, func(t *testing.T) {
			t.Parallel()

			a := classify(t, tt.k, tt.chord)[0]
			assert.Equal(t, tt.roman, a.Roman)
			assert.Equal(t, tt.base, a.Base)
		})
	}
}

func TestClassifyBorrowedChords(t *testing.T) {
	t.Parallel()

	analysis := classify(t, cMajor, "C", "Fm", "Bb", "Ab", "C")

	fm := analysis[1]
	assert.Equal(t, "iv", fm.Roman)
	assert.Equal(t, 4, fm.Degree)
	assert.True(t, fm.Borrowed)
	assert.Equal(t, "C minor", fm.BorrowedFrom)

	bb := analysis[2]
	assert.Equal(t, "bVII", bb.Roman)
	assert.Equal(t, "b", bb.Chromatic)
	assert.Equal(t, 7, bb.Degree)
	assert.True(t, bb.Borrowed)

	ab := analysis[3]
	assert.Equal(t, "bVI", ab.Roman)
	assert.True(t, ab.Borrowed)

	assert.False(t, analysis[0].Borrowed)

	inMinor := classify(t, aMinor, "D")[0]
	assert.Equal(t, "IV", inMinor.Roman)
	assert.True(t, inMinor.Borrowed)
	assert.Equal(t, "A major", inMinor.BorrowedFrom)
}

func TestClassifySecondaryDominants(t *testing.T) {
	t.Parallel()

	analysis := classify(t, cMajor, "D7", "A7", "E7", "C7", "G7", "F7")

	assert.Equal(t, "II7", analysis[0].Roman)
	assert.Equal(t, "V7/V", analysis[0].SecondaryDominant)
	assert.Equal(t, "V7/ii", analysis[1].SecondaryDominant)
	assert.Equal(t, "V7/vi", analysis[2].SecondaryDominant)
	assert.Equal(t, "V7/IV", analysis[3].SecondaryDominant)
	assert.Empty(t, analysis[4].SecondaryDominant, "the primary dominant resolves to the tonic")
	assert.Empty(t, analysis[5].SecondaryDominant, "Bb is not diatonic in C major")

	// E7 in A minor is the primary dominant
	assert.Empty(t, classify(t, aMinor, "E7")[0].SecondaryDominant)
}

func TestDetectCadences(t *testing.T) {
	t.Parallel()

	cadences := DetectCadences(classify(t, cMajor, "C", "G", "Am", "F", "C", "G7", "C"))

	require.Len(t, cadences, 5)
	assert.Equal(t, Cadence{Type: CadenceHalf, Chords: [2]string{"C", "G"}, Strength: StrengthWeak, Position: 0}, cadences[0])
	assert.Equal(t, CadenceDeceptive, cadences[1].Type)
	assert.Equal(t, CadencePlagal, cadences[2].Type)
	assert.Equal(t, StrengthWeak, cadences[2].Strength)
	assert.Equal(t, CadenceHalf, cadences[3].Type)
	assert.Equal(t, CadenceAuthentic, cadences[4].Type)
	assert.Equal(t, StrengthStrong, cadences[4].Strength)
	assert.Equal(t, 5, cadences[4].Position)
}

func TestDetectCadencesIgnoresChromaticRoots(t *testing.T) {
	t.Parallel()

	assert.Empty(t, DetectCadences(classify(t, cMajor, "Bb", "C")))
	assert.Empty(t, DetectCadences(classify(t, cMajor, "C")))
}

func TestLoopable(t *testing.T) {
	t.Parallel()

	assert.True(t, Loopable(classify(t, cMajor, "C", "G", "Am", "F")))
	assert.True(t, Loopable(classify(t, cMajor, "C", "Am", "F", "G")))
	assert.False(t, Loopable(classify(t, cMajor, "C", "F", "Am")))
	assert.False(t, Loopable(classify(t, cMajor, "C")))
}

func TestMatchPatterns(t *testing.T) {
	t.Parallel()

	matches := MatchPatterns(classify(t, cMajor, "C", "G", "Am", "F"))
	require.Len(t, matches, 1)
	assert.Equal(t, "I-V-vi-IV", matches[0].Pattern)
	assert.Equal(t, PopularityVeryCommon, matches[0].Popularity)
	assert.Equal(t, 0, matches[0].Position)

	jazz := MatchPatterns(classify(t, cMajor, "Em7", "Am7", "Dm7", "G7", "Cmaj7"))
	var names []string
	for _, m := range jazz {
		names = append(names, m.Pattern)
	}
	assert.Contains(t, names, "ii-V-I")
	assert.Contains(t, names, "vi-ii-V-I")
	assert.Contains(t, names, "iii-vi-ii-V")

	minor := MatchPatterns(classify(t, aMinor, "Bm7b5", "E7", "Am"))
	require.NotEmpty(t, minor)
	assert.Equal(t, "iiø-V-i", minor[0].Pattern)

	assert.Empty(t, MatchPatterns(classify(t, cMajor, "C", "Em")))
}

func TestIndexOfMatchesWholeNumerals(t *testing.T) {
	t.Parallel()

	seq := []string{"I", "IV", "I"}
	assert.Equal(t, -1, IndexOf(seq, Tokens("V-I")))
	assert.Equal(t, 1, IndexOf(seq, Tokens("IV-I")))
	assert.Equal(t, -1, IndexOf(seq, Tokens("i-IV")))
	assert.Equal(t, -1, IndexOf(seq, nil))
	assert.Equal(t, -1, IndexOf(seq, Tokens("I-IV-I-IV")))
}

func TestPatternTableIsComplete(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, p := range Patterns() {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Type)
		assert.False(t, seen[p.Pattern], p.Pattern)
		seen[p.Pattern] = true
	}
}
