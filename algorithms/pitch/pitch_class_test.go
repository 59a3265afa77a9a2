package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-teoria/errors"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token    string
		class    PitchClass
		spelling string
		octave   string
	}{
		{"C", 0, "C", ""},
		{"C4", 0, "C", "4"},
		{"C#", 1, "C#", ""},
		{"Db", 1, "Db", ""},
		{"E#", 5, "E#", ""},
		{"Fb", 4, "Fb", ""},
		{"B#3", 0, "B#", "3"},
		{"Cb", 11, "Cb", ""},
		{"G##", 9, "G##", ""},
		{"Abb", 7, "Abb", ""},
		{"A10", 9, "A", "10"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()

			n, err := Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.class, n.Class)
			assert.Equal(t, tt.spelling, n.Spelling)
			assert.Equal(t, tt.octave, n.Octave)
			assert.Equal(t, tt.token, n.Token())
		})
	}
}

func TestParseRejectsMalformedTokens(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"", "H", "c", "C#b", "Cx", "4C", "C 4", "C-1"} {
		_, err := Parse(token)
		require.Error(t, err, token)
		assert.Equal(t, errors.KindInvalidNotes, errors.KindOf(err), token)
	}
}

func TestParseAllNamesOffendingToken(t *testing.T) {
	t.Parallel()

	_, err := ParseAll([]string{"C", "E", "J"})
	require.Error(t, err)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "J", e.Context["token"])
	assert.Equal(t, 2, e.Context["index"])
}

func TestSpell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Bb", Spell('B', 10))
	assert.Equal(t, "E#", Spell('E', 5))
	assert.Equal(t, "F##", Spell('F', 7))
	assert.Equal(t, "", Spell('C', 9))
	assert.Equal(t, byte('C'), ShiftLetter('A', 2))
	assert.Equal(t, byte('B'), ShiftLetter('C', -1))
	assert.Equal(t, "major third", LongName("M3"))
	assert.Equal(t, "P11", LongName("P11"))
	assert.Equal(t, 3, IntervalNumber("m3"))
	assert.Equal(t, 13, IntervalNumber("M13"))
}

func TestIntervalHelpers(t *testing.T) {
	t.Parallel()

	s, ok := IntervalSemitones("m7")
	require.True(t, ok)
	assert.Equal(t, 10, s)
	assert.Equal(t, "b7", DegreeName("m7"))
	assert.Equal(t, "M3", IntervalName(16))
	assert.Equal(t, "M9", ExtensionName(2))

	assert.Equal(t, "P4", DiatonicInterval(4, 5))
	assert.Equal(t, "m3", DiatonicInterval(3, 3))
	assert.Equal(t, "A4", DiatonicInterval(4, 6))
	assert.Equal(t, "d5", DiatonicInterval(5, 6))
	assert.Equal(t, "M7", DiatonicInterval(7, 11))
}

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "C#", Name(1, false))
	assert.Equal(t, "Db", Name(1, true))
	assert.Equal(t, "B", Name(-1, false))
}
