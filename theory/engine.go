// Package theory exposes the analysis entry points: chord identification,
// progression analysis, genre detection and scale generation.
package theory

import (
	"time"

	"github.com/RyanBlaney/sonido-teoria/algorithms/chord"
	"github.com/RyanBlaney/sonido-teoria/algorithms/genre"
	"github.com/RyanBlaney/sonido-teoria/algorithms/harmony"
	"github.com/RyanBlaney/sonido-teoria/algorithms/key"
	"github.com/RyanBlaney/sonido-teoria/algorithms/scale"
	"github.com/RyanBlaney/sonido-teoria/errors"
	"github.com/RyanBlaney/sonido-teoria/logging"
	"github.com/RyanBlaney/sonido-teoria/theory/config"
)

// Engine runs every analysis stage over the built-in tables. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	config *config.EngineConfig
	chords *chord.Matcher
	keys   *key.Detector
	genres *genre.Matcher
	scales *scale.Generator
	logger logging.Logger
}

// New creates an engine; a nil config selects the defaults
func New(cfg *config.EngineConfig) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	chordParams := chord.DefaultMatcherParams()
	chordParams.MinConfidence = cfg.MinChordConfidence
	chordParams.MaxAlternatives = cfg.MaxAlternatives

	keyParams := key.DefaultDetectorParams()
	keyParams.Weights = key.DegreeWeights{
		Tonic:       cfg.DegreeWeights.Tonic,
		Dominant:    cfg.DegreeWeights.Dominant,
		Subdominant: cfg.DegreeWeights.Subdominant,
		Other:       cfg.DegreeWeights.Other,
	}
	keyParams.ConfidenceFloor = cfg.KeyConfidenceFloor
	keyParams.MaxCandidates = cfg.MaxKeyCandidates
	keyParams.HarmonicMinor = cfg.HarmonicMinor

	logger := logging.Component("theory_engine")
	logger.SetLevel(cfg.Level())

	return &Engine{
		config: cfg,
		chords: chord.NewMatcherWithParams(chordParams),
		keys:   key.NewDetectorWithParams(keyParams),
		genres: genre.NewMatcherWithParams(genre.Default(), genre.MatcherParams{MaxResults: cfg.MaxSuggestedGenres}),
		scales: scale.NewGenerator(),
		logger: logger,
	}, nil
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() config.EngineConfig {
	return *e.config
}

// SetLogger replaces the engine logger; nil silences it. Call it before the
// engine is shared between goroutines.
func (e *Engine) SetLogger(logger logging.Logger) {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	e.logger = logger
}

// Identify names the chord formed by two or more note names
func (e *Engine) Identify(notes []string) (*chord.Identification, error) {
	logger := e.logger.WithFields(logging.Fields{
		"function": "Identify",
		"notes":    len(notes),
	})

	result, err := e.chords.Identify(notes)
	if err != nil {
		logger.Debug("Chord identification failed", logging.Fields{"kind": errors.KindOf(err)})
		return nil, err
	}

	logger.Debug("Chord identified", logging.Fields{
		"chord":      result.Symbol,
		"confidence": result.Confidence,
	})
	return result, nil
}

// DetectKey infers the key of a chord progression
func (e *Engine) DetectKey(progression []string) (*key.Result, error) {
	_, result, err := e.keyOf(progression, e.logger.WithFields(logging.Fields{"function": "DetectKey"}))
	return result, err
}

// AnalyzeProgression runs the full harmonic analysis of a chord progression
func (e *Engine) AnalyzeProgression(progression []string) (*ProgressionAnalysis, error) {
	startTime := time.Now()

	logger := e.logger.WithFields(logging.Fields{
		"function": "AnalyzeProgression",
		"chords":   len(progression),
	})
	logger.Debug("Starting progression analysis")

	symbols, keyResult, err := e.keyOf(progression, logger)
	if err != nil {
		return nil, err
	}

	analysis := harmony.Classify(keyResult.Key, symbols)
	seq := harmony.Sequence(analysis)

	result := &ProgressionAnalysis{
		Chords:             symbolTexts(symbols),
		Key:                keyResult.KeyName,
		Confidence:         keyResult.Confidence,
		LowConfidence:      keyResult.LowConfidence,
		Tonality:           keyResult.Tonality,
		KeyCandidates:      keyResult.Candidates,
		Analysis:           analysis,
		RomanNumerals:      romanNumerals(analysis),
		DiatonicRatio:      diatonicRatio(analysis),
		Patterns:           harmony.MatchPatterns(analysis),
		GenrePatterns:      e.genres.Matches(seq),
		SuggestedGenres:    e.genres.Detect(seq),
		BorrowedChords:     borrowedChords(analysis),
		SecondaryDominants: secondaryDominants(analysis),
		Cadences:           harmony.DetectCadences(analysis),
		Loopable:           harmony.Loopable(analysis),
	}

	logger.Debug("Progression analysis completed", logging.Fields{
		"key":             result.Key,
		"patterns":        len(result.Patterns),
		"cadences":        len(result.Cadences),
		"top_genre":       result.SuggestedGenres[0].Genre,
		"processing_time": time.Since(startTime),
	})

	return result, nil
}

// DetectGenre suggests the genres whose characteristic progressions appear in
// the chord progression. With no evidence a single "unknown" result is returned.
func (e *Engine) DetectGenre(progression []string) ([]genre.Detection, error) {
	logger := e.logger.WithFields(logging.Fields{
		"function": "DetectGenre",
		"chords":   len(progression),
	})

	symbols, keyResult, err := e.keyOf(progression, logger)
	if err != nil {
		return nil, err
	}

	seq := harmony.Sequence(harmony.Classify(keyResult.Key, symbols))
	detections := e.genres.Detect(seq)

	logger.Debug("Genre detection completed", logging.Fields{
		"top_genre": detections[0].Genre,
		"results":   len(detections),
	})
	return detections, nil
}

// FindPatterns returns the generic named progressions contained in a chord
// progression, failing with PATTERN_NOT_MATCHED when there are none
func (e *Engine) FindPatterns(progression []string) ([]harmony.PatternMatch, error) {
	logger := e.logger.WithFields(logging.Fields{
		"function": "FindPatterns",
		"chords":   len(progression),
	})

	symbols, keyResult, err := e.keyOf(progression, logger)
	if err != nil {
		return nil, err
	}

	analysis := harmony.Classify(keyResult.Key, symbols)
	matches := harmony.MatchPatterns(analysis)
	if len(matches) == 0 {
		seq := harmony.Sequence(analysis)
		logger.Debug("No pattern matched", logging.Fields{"sequence": seq})
		return nil, errors.New(errors.KindPatternNotMatched, "no known pattern in the progression").
			With("key", keyResult.KeyName).
			With("sequence", seq)
	}

	return matches, nil
}

// GetScale builds a scale of the given type on root
func (e *Engine) GetScale(root, scaleType string) (*scale.Info, error) {
	info, err := e.scales.Get(root, scaleType)
	if err != nil {
		e.logger.Debug("Scale generation failed", logging.Fields{
			"function": "GetScale",
			"root":     root,
			"type":     scaleType,
			"kind":     errors.KindOf(err),
		})
		return nil, err
	}
	return info, nil
}

// ScaleTypes lists the scale types GetScale accepts
func (e *Engine) ScaleTypes() []string {
	return e.scales.Types()
}

// Reset exists for callers that clear engine state between runs. The engine
// keeps none, so it does nothing.
func (e *Engine) Reset() {}

// keyOf parses a progression and detects its key
func (e *Engine) keyOf(progression []string, logger logging.Logger) ([]chord.Symbol, *key.Result, error) {
	if len(progression) < 2 {
		logger.Debug("Progression too short")
		return nil, nil, errors.New(errors.KindInsufficientNotes, "at least 2 chords are required").
			With("count", len(progression))
	}

	symbols, err := chord.ParseSymbols(progression)
	if err != nil {
		logger.Debug("Chord symbol rejected", logging.Fields{"kind": errors.KindOf(err)})
		return nil, nil, err
	}

	result, err := e.keys.Detect(symbols)
	if err != nil {
		return nil, nil, err
	}

	if result.LowConfidence {
		logger.Warn("No key clearly fits the progression, using best effort", logging.Fields{
			"key":        result.KeyName,
			"confidence": result.Confidence,
			"floor":      e.config.KeyConfidenceFloor,
		})
	}

	return symbols, result, nil
}
