package key

import (
	"sort"

	"github.com/RyanBlaney/sonido-teoria/algorithms/chord"
	"github.com/RyanBlaney/sonido-teoria/algorithms/common"
	"github.com/RyanBlaney/sonido-teoria/errors"
)

// DegreeWeights controls how much a matching chord contributes by degree
type DegreeWeights struct {
	Tonic       float64 `json:"tonic"`
	Dominant    float64 `json:"dominant"`
	Subdominant float64 `json:"subdominant"`
	Other       float64 `json:"other"`
}

// For returns the weight of a degree (1-7)
func (w DegreeWeights) For(degree int) float64 {
	switch degree {
	case 1:
		return w.Tonic
	case 5:
		return w.Dominant
	case 4:
		return w.Subdominant
	default:
		return w.Other
	}
}

// Candidate represents a potential key with confidence
type Candidate struct {
	Key        Key     `json:"key"`
	KeyName    string  `json:"key_name"`   // Human-readable key name
	Score      float64 `json:"score"`      // Weighted sum of matching chords
	Matched    int     `json:"matched"`    // Chords that fit the key
	Confidence float64 `json:"confidence"` // Score per chord (0-1)

	opensOnTonic bool
}

// Result contains key detection results
type Result struct {
	// Primary key information
	Key        Key     `json:"key"`
	KeyName    string  `json:"key_name"`   // e.g. "C major"
	Confidence float64 `json:"confidence"` // Best score / chord count (0-1)

	// Best-effort flag: the best key scored under the floor
	LowConfidence bool `json:"low_confidence"`

	// Multiple key candidates
	Candidates []Candidate `json:"candidates"`

	// Quality metrics
	Clarity  float64 `json:"clarity"`  // (best - second best) / best
	Tonality float64 `json:"tonality"` // Diatonicity of the progression's pitch content

	Relative string `json:"relative"` // Relative key name
}

// DetectorParams contains parameters for key detection
type DetectorParams struct {
	Weights         DegreeWeights `json:"weights"`
	ConfidenceFloor float64       `json:"confidence_floor"` // Below this the result is flagged low-confidence
	MaxCandidates   int           `json:"max_candidates"`   // Maximum candidates to return
	HarmonicMinor   bool          `json:"harmonic_minor"`   // Accept raised leading tone in minor keys
}

// DefaultDetectorParams returns the default key detection parameters
func DefaultDetectorParams() DetectorParams {
	return DetectorParams{
		Weights: DegreeWeights{
			Tonic:       1.0,
			Dominant:    1.0,
			Subdominant: 0.85,
			Other:       0.7,
		},
		ConfidenceFloor: 0.3,
		MaxCandidates:   5,
		HarmonicMinor:   true,
	}
}

// Detector infers the key of a chord progression by scoring all 24 keys
type Detector struct {
	params DetectorParams
	keys   []Key
}

// NewDetector creates a detector with default parameters
func NewDetector() *Detector {
	return NewDetectorWithParams(DefaultDetectorParams())
}

// NewDetectorWithParams creates a detector with custom parameters
func NewDetectorWithParams(params DetectorParams) *Detector {
	return &Detector{
		params: params,
		keys:   All(),
	}
}

// Params returns the detector parameters
func (d *Detector) Params() DetectorParams {
	return d.params
}

// Detect returns the best-effort key of a progression. It never fails for lack
// of a clear key; LowConfidence is set instead.
func (d *Detector) Detect(symbols []chord.Symbol) (*Result, error) {
	if len(symbols) < 2 {
		return nil, errors.New(errors.KindInsufficientNotes, "at least 2 chords are required").
			With("count", len(symbols))
	}

	candidates := make([]Candidate, 0, len(d.keys))
	for _, k := range d.keys {
		candidates = append(candidates, d.score(k, symbols))
	}

	// Ranking: score, then opening on the tonic chord, then major before minor, then tonic order
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.opensOnTonic != b.opensOnTonic {
			return a.opensOnTonic
		}
		if a.Key.Mode != b.Key.Mode {
			return a.Key.Mode == ModeMajor
		}
		return a.Key.Tonic < b.Key.Tonic
	})

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = c.Score
	}

	if len(candidates) > d.params.MaxCandidates && d.params.MaxCandidates > 0 {
		candidates = candidates[:d.params.MaxCandidates]
	}
	best := candidates[0]

	return &Result{
		Key:           best.Key,
		KeyName:       best.KeyName,
		Confidence:    best.Confidence,
		LowConfidence: best.Confidence < d.params.ConfidenceFloor,
		Candidates:    candidates,
		Clarity:       calculateClarity(scores),
		Tonality:      Tonality(symbols),
		Relative:      best.Key.Relative().Name(),
	}, nil
}

// score weights every chord that fits the key by its degree
func (d *Detector) score(k Key, symbols []chord.Symbol) Candidate {
	weights := make([]float64, 0, len(symbols))
	for _, s := range symbols {
		degree, ok := d.fits(k, s)
		if !ok {
			continue
		}
		weights = append(weights, d.params.Weights.For(degree))
	}

	// Rounded so equal weight multisets tie regardless of summation order
	score := common.Round(common.Sum(weights), 6)
	first, ok := d.fits(k, symbols[0])

	return Candidate{
		Key:          k,
		KeyName:      k.Name(),
		Score:        score,
		Matched:      len(weights),
		Confidence:   common.Round(common.Clamp(score/float64(len(symbols)), 0.0, 1.0), 2),
		opensOnTonic: ok && first == 1 && symbols[0].Root.Class == k.Tonic,
	}
}

func (d *Detector) fits(k Key, s chord.Symbol) (int, bool) {
	if !d.params.HarmonicMinor {
		degree, ok := k.Degree(s.Root.Class)
		if !ok || s.Template.PitchClassSet(s.Root.Class)&^mask(k.Steps(), k.Tonic) != 0 {
			return 0, false
		}
		return degree, true
	}
	return k.Fits(s.Root.Class, s.Template)
}

// Tonality measures how diatonic the progression's pitch content is, as the
// normalized fifth coefficient of its pitch-class histogram DFT
func Tonality(symbols []chord.Symbol) float64 {
	histogram := make([]float64, 12)
	for _, s := range symbols {
		for _, pc := range s.Tones() {
			histogram[pc]++
		}
	}
	return common.Round(common.ComputePitchClassDFT(histogram).Diatonicity(), 2)
}

func calculateClarity(scores []float64) float64 {
	if len(scores) < 2 {
		return 0.0
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	// Clarity = (best - second_best) / best
	if sorted[0] > 0 {
		return common.Round((sorted[0]-sorted[1])/sorted[0], 2)
	}

	return 0.0
}
