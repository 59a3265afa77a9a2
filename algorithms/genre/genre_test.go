package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-teoria/errors"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, []string{"pop", "rock", "jazz", "blues", "classical", "folk"}, c.Names())

	for _, name := range c.Names() {
		patterns := c.Patterns(name)
		assert.GreaterOrEqual(t, len(patterns), 8, name)
		for _, p := range patterns {
			assert.Equal(t, name, p.Genre)
			assert.GreaterOrEqual(t, p.Weight, 1)
			assert.LessOrEqual(t, p.Weight, 10)
			assert.NotEmpty(t, p.Description)
			assert.NotNil(t, p.Examples)
		}
	}

	assert.Nil(t, c.Patterns("polka"))
}

func TestDetectJazz(t *testing.T) {
	t.Parallel()

	results := NewMatcher().Detect([]string{"ii", "V", "I"})
	require.NotEmpty(t, results)

	assert.Equal(t, "jazz", results[0].Genre)
	assert.InDelta(t, 1.0, results[0].Confidence, 1e-9)
	assert.InDelta(t, 18.0, results[0].Score, 1e-9)

	var patterns []string
	for _, p := range results[0].Patterns {
		patterns = append(patterns, p.Pattern)
	}
	assert.Contains(t, patterns, "ii-V-I")
	assert.Contains(t, patterns, "ii-V")

	require.Len(t, results, 2)
	assert.Equal(t, "classical", results[1].Genre)
	assert.InDelta(t, 0.33, results[1].Confidence, 1e-9)
}

func TestDetectPop(t *testing.T) {
	t.Parallel()

	results := NewMatcher().Detect([]string{"I", "V", "vi", "IV"})
	require.NotEmpty(t, results)

	assert.Equal(t, "pop", results[0].Genre)
	assert.Equal(t, "I-V-vi-IV", results[0].Patterns[0].Pattern)
	assert.Equal(t, []string{"Let It Be - The Beatles", "Don't Stop Believin' - Journey", "Someone Like You - Adele"},
		results[0].Patterns[0].Examples)
}

func TestDetectIsCaseSensitive(t *testing.T) {
	t.Parallel()

	// Minor i-iv-v belongs to blues, major I-IV-V to rock
	minor := NewMatcher().Detect([]string{"i", "iv", "v"})
	require.NotEmpty(t, minor)
	assert.Equal(t, "blues", minor[0].Genre)

	major := NewMatcher().Detect([]string{"I", "IV", "V"})
	require.NotEmpty(t, major)
	assert.Equal(t, "rock", major[0].Genre)
}

func TestDetectMatchesWholeNumerals(t *testing.T) {
	t.Parallel()

	// "V-I" is not contained in "IV-I"
	results := NewMatcher().Detect([]string{"IV", "I"})
	require.Len(t, results, 1)
	assert.Equal(t, "classical", results[0].Genre)
	require.Len(t, results[0].Patterns, 1)
	assert.Equal(t, "IV-I", results[0].Patterns[0].Pattern)
}

func TestDetectUnknown(t *testing.T) {
	t.Parallel()

	results := NewMatcher().Detect([]string{"iii", "bII"})
	require.Len(t, results, 1)
	assert.Equal(t, Unknown, results[0].Genre)
	assert.NotNil(t, results[0].Patterns)
	assert.Empty(t, results[0].Patterns)
	assert.Zero(t, results[0].Confidence)
}

func TestDetectLimitsResults(t *testing.T) {
	t.Parallel()

	// Twelve-bar form touches blues, rock, classical and folk patterns
	seq := []string{"I", "I", "I", "I", "IV", "IV", "I", "I", "V", "IV", "I", "V"}
	results := NewMatcher().Detect(seq)

	require.Len(t, results, 3)
	assert.Equal(t, "blues", results[0].Genre)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Confidence, results[i].Confidence)
		assert.Greater(t, results[i].Confidence, 0.0)
		assert.LessOrEqual(t, results[i].Confidence, 1.0)
	}

	all := NewMatcherWithParams(Default(), MatcherParams{MaxResults: 0}).Detect(seq)
	assert.Greater(t, len(all), 3)
}

func TestLoadRejectsInvalidTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "genres: [::"},
		{"empty", "genres: []"},
		{"too few patterns", "genres:\n  - name: pop\n    patterns:\n      - pattern: I-V\n        weight: 3\n"},
		{"reserved name", "genres:\n  - name: unknown\n    patterns: []\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load([]byte(tt.yaml))
			require.Error(t, err)
			assert.Equal(t, errors.KindInternal, errors.KindOf(err))
		})
	}
}

func TestValidateRejectsWeightOutOfRange(t *testing.T) {
	t.Parallel()

	patterns := make([]*GenrePattern, 8)
	for i := range patterns {
		patterns[i] = &GenrePattern{Pattern: "I-V", Weight: 5, tokens: []string{"I", "V"}}
	}
	patterns[3].Weight = 11

	c := &Catalog{Genres: []*Genre{{Name: "test", Patterns: patterns}}}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestMatchesListsEveryGenrePattern(t *testing.T) {
	t.Parallel()

	matches := NewMatcher().Matches([]string{"ii", "V", "I"})
	require.Len(t, matches, 3)

	genres := []string{matches[0].Genre, matches[1].Genre, matches[2].Genre}
	assert.Equal(t, []string{"jazz", "jazz", "classical"}, genres)
	assert.Equal(t, "V-I", matches[2].Pattern)

	assert.Empty(t, NewMatcher().Matches([]string{"bII"}))
}
