package harmony

import "strings"

// Popularity is a fixed usage tag attached to each generic pattern
type Popularity string

const (
	PopularityVeryCommon Popularity = "very common"
	PopularityCommon     Popularity = "common"
	PopularityOccasional Popularity = "occasional"
)

// Pattern is a named, genre-neutral roman-numeral progression
type Pattern struct {
	Name       string     `json:"name"`
	Pattern    string     `json:"pattern"` // Numerals joined by "-"
	Type       string     `json:"type"`    // cadential, loop, circle, modal, descending
	Popularity Popularity `json:"popularity"`

	tokens []string
}

// PatternMatch is a pattern found in a progression
type PatternMatch struct {
	Name       string     `json:"name"`
	Pattern    string     `json:"pattern"`
	Type       string     `json:"type"`
	Popularity Popularity `json:"popularity"`
	Position   int        `json:"position"` // Index of the first matching chord
}

var patterns = compilePatterns([]*Pattern{
	{Name: "Perfect cadence progression", Pattern: "I-IV-V-I", Type: "cadential", Popularity: PopularityVeryCommon},
	{Name: "Two-five-one", Pattern: "ii-V-I", Type: "cadential", Popularity: PopularityVeryCommon},
	{Name: "Axis progression", Pattern: "I-V-vi-IV", Type: "loop", Popularity: PopularityVeryCommon},
	{Name: "Fifties progression", Pattern: "I-vi-IV-V", Type: "loop", Popularity: PopularityCommon},
	{Name: "Minor-start axis", Pattern: "vi-IV-I-V", Type: "loop", Popularity: PopularityCommon},
	{Name: "Three-chord progression", Pattern: "I-IV-V", Type: "cadential", Popularity: PopularityVeryCommon},
	{Name: "Full cadence", Pattern: "IV-V-I", Type: "cadential", Popularity: PopularityCommon},
	{Name: "Circle progression", Pattern: "vi-ii-V-I", Type: "circle", Popularity: PopularityCommon},
	{Name: "Extended circle", Pattern: "iii-vi-ii-V", Type: "circle", Popularity: PopularityOccasional},
	{Name: "Minor axis", Pattern: "i-VI-III-VII", Type: "loop", Popularity: PopularityCommon},
	{Name: "Minor three-chord", Pattern: "i-iv-v", Type: "modal", Popularity: PopularityCommon},
	{Name: "Andalusian cadence", Pattern: "i-VII-VI-V", Type: "descending", Popularity: PopularityCommon},
	{Name: "Mixolydian vamp", Pattern: "I-bVII-IV", Type: "modal", Popularity: PopularityCommon},
	{Name: "Minor two-five-one", Pattern: "iiø-V-i", Type: "cadential", Popularity: PopularityCommon},
	{Name: "Plagal return", Pattern: "I-IV-I", Type: "cadential", Popularity: PopularityCommon},
})

func compilePatterns(table []*Pattern) []*Pattern {
	for _, p := range table {
		p.tokens = Tokens(p.Pattern)
	}
	return table
}

// Patterns returns the generic pattern table
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = *p
	}
	return out
}

// Sequence returns the pattern-matching numerals of an analysis
func Sequence(analysis []ChordAnalysis) []string {
	seq := make([]string, len(analysis))
	for i, a := range analysis {
		seq[i] = a.Base
	}
	return seq
}

// Tokens splits a "-"-joined numeral string
func Tokens(pattern string) []string {
	return strings.Split(pattern, "-")
}

// IndexOf returns the first position where needle occurs as a contiguous run of
// whole numerals in seq, or -1. Matching is case-sensitive.
// Numerals never match partially, so "V-I" does not match inside "bV-IV".
func IndexOf(seq, needle []string) int {
	if len(needle) == 0 || len(needle) > len(seq) {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(seq); i++ {
		for j, tok := range needle {
			if seq[i+j] != tok {
				continue outer
			}
		}
		return i
	}
	return -1
}

// MatchPatterns finds every generic pattern contained in the analysis, in table order
func MatchPatterns(analysis []ChordAnalysis) []PatternMatch {
	seq := Sequence(analysis)
	matches := make([]PatternMatch, 0)
	for _, p := range patterns {
		pos := IndexOf(seq, p.tokens)
		if pos < 0 {
			continue
		}
		matches = append(matches, PatternMatch{
			Name:       p.Name,
			Pattern:    p.Pattern,
			Type:       p.Type,
			Popularity: p.Popularity,
			Position:   pos,
		})
	}
	return matches
}
