package theory

import (
	"github.com/RyanBlaney/sonido-teoria/algorithms/chord"
	"github.com/RyanBlaney/sonido-teoria/algorithms/common"
	"github.com/RyanBlaney/sonido-teoria/algorithms/genre"
	"github.com/RyanBlaney/sonido-teoria/algorithms/harmony"
	"github.com/RyanBlaney/sonido-teoria/algorithms/key"
)

// ProgressionAnalysis is the full harmonic reading of a chord progression
type ProgressionAnalysis struct {
	Chords []string `json:"chords"` // Trimmed input symbols

	// Key
	Key           string          `json:"key"`        // e.g. "C major"
	Confidence    float64         `json:"confidence"` // Key confidence (0-1)
	LowConfidence bool            `json:"low_confidence"`
	Tonality      float64         `json:"tonality"`
	KeyCandidates []key.Candidate `json:"key_candidates"`

	// Per-chord analysis
	Analysis      []harmony.ChordAnalysis `json:"analysis"`
	RomanNumerals []string                `json:"roman_numerals"`
	DiatonicRatio float64                 `json:"diatonic_ratio"` // Share of chords diatonic to the key

	// Patterns
	Patterns        []harmony.PatternMatch `json:"patterns"`
	GenrePatterns   []genre.GenrePattern   `json:"genre_patterns"`
	SuggestedGenres []genre.Detection      `json:"suggested_genres"`

	// Chromaticism
	BorrowedChords     []BorrowedChord     `json:"borrowed_chords"`
	SecondaryDominants []SecondaryDominant `json:"secondary_dominants"`

	Cadences []harmony.Cadence `json:"cadences"`
	Loopable bool              `json:"loopable"`
}

// BorrowedChord is a chord taken from the parallel key
type BorrowedChord struct {
	Chord    string `json:"chord"`
	Roman    string `json:"roman"`
	From     string `json:"from"` // Parallel key name
	Position int    `json:"position"`
}

// SecondaryDominant is a dominant seventh tonicizing a diatonic degree
type SecondaryDominant struct {
	Chord    string `json:"chord"`
	Label    string `json:"label"` // e.g. "V7/V"
	Position int    `json:"position"`
}

func symbolTexts(symbols []chord.Symbol) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = s.Text
	}
	return out
}

func romanNumerals(analysis []harmony.ChordAnalysis) []string {
	out := make([]string, len(analysis))
	for i, a := range analysis {
		out[i] = a.Roman
	}
	return out
}

func diatonicRatio(analysis []harmony.ChordAnalysis) float64 {
	diatonic := make([]float64, len(analysis))
	for i, a := range analysis {
		if a.Diatonic {
			diatonic[i] = 1
		}
	}
	return common.Round(common.Mean(diatonic), 2)
}

func borrowedChords(analysis []harmony.ChordAnalysis) []BorrowedChord {
	out := make([]BorrowedChord, 0)
	for i, a := range analysis {
		if a.Borrowed {
			out = append(out, BorrowedChord{
				Chord:    a.Chord,
				Roman:    a.Roman,
				From:     a.BorrowedFrom,
				Position: i,
			})
		}
	}
	return out
}

func secondaryDominants(analysis []harmony.ChordAnalysis) []SecondaryDominant {
	out := make([]SecondaryDominant, 0)
	for i, a := range analysis {
		if a.SecondaryDominant != "" {
			out = append(out, SecondaryDominant{
				Chord:    a.Chord,
				Label:    a.SecondaryDominant,
				Position: i,
			})
		}
	}
	return out
}
