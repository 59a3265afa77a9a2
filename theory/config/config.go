package config

import (
	"github.com/RyanBlaney/sonido-teoria/errors"
	"github.com/RyanBlaney/sonido-teoria/logging"
)

// EngineConfig configures every analysis stage of the engine
type EngineConfig struct {
	// Chord identification
	MinChordConfidence float64 `json:"min_chord_confidence"` // Match floor, 0.0-1.0
	MaxAlternatives    int     `json:"max_alternatives"`     // 0-5

	// Key detection
	KeyConfidenceFloor float64       `json:"key_confidence_floor"` // Below this the key is flagged low-confidence
	MaxKeyCandidates   int           `json:"max_key_candidates"`
	HarmonicMinor      bool          `json:"harmonic_minor"` // Accept V and vii° built on the raised leading tone
	DegreeWeights      DegreeWeights `json:"degree_weights"`

	// Genre suggestion
	MaxSuggestedGenres int `json:"max_suggested_genres"`

	LogLevel string `json:"log_level,omitempty"` // "debug", "info", "warn", "error"
}

// DegreeWeights is the per-degree contribution of a chord to a key's score
type DegreeWeights struct {
	Tonic       float64 `json:"tonic"`
	Dominant    float64 `json:"dominant"`
	Subdominant float64 `json:"subdominant"`
	Other       float64 `json:"other"`
}

type Profile string

const (
	ProfileStandard Profile = "standard"
	ProfileStrict   Profile = "strict"  // Fewer, surer answers
	ProfileLenient  Profile = "lenient" // Accept sparse voicings and ambiguous keys
)

// DefaultEngineConfig returns the standard analysis settings
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		MinChordConfidence: 0.4,
		MaxAlternatives:    4,
		KeyConfidenceFloor: 0.3,
		MaxKeyCandidates:   5,
		HarmonicMinor:      true,
		DegreeWeights: DegreeWeights{
			Tonic:       1.0,
			Dominant:    1.0,
			Subdominant: 0.85,
			Other:       0.7,
		},
		MaxSuggestedGenres: 3,
		LogLevel:           "info",
	}
}

// EngineConfigForProfile adjusts the defaults for a profile. Unknown profiles get the defaults.
func EngineConfigForProfile(profile Profile) *EngineConfig {
	config := DefaultEngineConfig()

	switch profile {
	case ProfileStrict:
		config.MinChordConfidence = 0.6 // Drops dyads and most incomplete voicings
		config.MaxAlternatives = 2
		config.KeyConfidenceFloor = 0.5

	case ProfileLenient:
		config.MinChordConfidence = 0.3
		config.MaxAlternatives = 5
		config.KeyConfidenceFloor = 0.2
		config.MaxKeyCandidates = 8
	}

	return config
}

// Validate checks every field range
func (c *EngineConfig) Validate() error {
	invalid := func(field string, value any, format string, args ...any) error {
		return errors.New(errors.KindInvalidConfig, format, args...).
			With("field", field).
			With("value", value)
	}

	if c.MinChordConfidence < 0 || c.MinChordConfidence > 1 {
		return invalid("min_chord_confidence", c.MinChordConfidence, "must be within [0, 1]")
	}
	if c.MaxAlternatives < 0 || c.MaxAlternatives > 5 {
		return invalid("max_alternatives", c.MaxAlternatives, "must be within [0, 5]")
	}
	if c.KeyConfidenceFloor < 0 || c.KeyConfidenceFloor > 1 {
		return invalid("key_confidence_floor", c.KeyConfidenceFloor, "must be within [0, 1]")
	}
	if c.MaxKeyCandidates < 1 || c.MaxKeyCandidates > 24 {
		return invalid("max_key_candidates", c.MaxKeyCandidates, "must be within [1, 24]")
	}
	if c.MaxSuggestedGenres < 1 || c.MaxSuggestedGenres > 3 {
		return invalid("max_suggested_genres", c.MaxSuggestedGenres, "must be within [1, 3]")
	}

	weights := map[string]float64{
		"tonic":       c.DegreeWeights.Tonic,
		"dominant":    c.DegreeWeights.Dominant,
		"subdominant": c.DegreeWeights.Subdominant,
		"other":       c.DegreeWeights.Other,
	}
	for _, name := range []string{"tonic", "dominant", "subdominant", "other"} {
		if w := weights[name]; w <= 0 || w > 1 {
			return invalid("degree_weights."+name, w, "must be within (0, 1]")
		}
	}

	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return invalid("log_level", c.LogLevel, "unknown log level")
	}

	return nil
}

// Level returns the configured log level, falling back to info
func (c *EngineConfig) Level() logging.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
