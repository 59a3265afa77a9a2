package genre

import (
	"sort"

	"github.com/RyanBlaney/sonido-teoria/algorithms/common"
	"github.com/RyanBlaney/sonido-teoria/algorithms/harmony"
)

// Detection is the evidence for one genre
type Detection struct {
	Genre      string         `json:"genre"`
	Confidence float64        `json:"confidence"` // Weight sum relative to the best genre (0-1)
	Score      float64        `json:"score"`      // Sum of matched pattern weights
	Patterns   []GenrePattern `json:"patterns"`   // Matched patterns, table order

	order int
}

// MatcherParams contains parameters for genre detection
type MatcherParams struct {
	MaxResults int `json:"max_results"`
}

// DefaultMatcherParams returns the default genre detection parameters
func DefaultMatcherParams() MatcherParams {
	return MatcherParams{
		MaxResults: 3,
	}
}

// Matcher scores a roman-numeral sequence against a pattern catalog
type Matcher struct {
	params  MatcherParams
	catalog *Catalog
}

// NewMatcher creates a matcher over the built-in catalog
func NewMatcher() *Matcher {
	return NewMatcherWithParams(Default(), DefaultMatcherParams())
}

// NewMatcherWithParams creates a matcher over a custom catalog
func NewMatcherWithParams(catalog *Catalog, params MatcherParams) *Matcher {
	return &Matcher{
		params:  params,
		catalog: catalog,
	}
}

// Detect ranks genres by the weight of their patterns found in seq. Patterns
// match as contiguous runs of whole numerals, case-sensitively.
func (m *Matcher) Detect(seq []string) []Detection {
	detections := make([]Detection, 0, len(m.catalog.Genres))

	for gi, g := range m.catalog.Genres {
		var weights []float64
		matched := make([]GenrePattern, 0)

		for _, p := range g.Patterns {
			if harmony.IndexOf(seq, p.tokens) < 0 {
				continue
			}
			weights = append(weights, float64(p.Weight))
			matched = append(matched, *p)
		}

		if len(matched) == 0 {
			continue
		}

		detections = append(detections, Detection{
			Genre:    g.Name,
			Score:    common.Sum(weights),
			Patterns: matched,
			order:    gi,
		})
	}

	if len(detections) == 0 {
		return []Detection{{Genre: Unknown, Patterns: []GenrePattern{}}}
	}

	scores := make([]float64, len(detections))
	for i, d := range detections {
		scores[i] = d.Score
	}
	best := common.Max(scores)
	for i := range detections {
		detections[i].Confidence = common.Round(detections[i].Score/best, 2)
	}

	sort.SliceStable(detections, func(i, j int) bool {
		if detections[i].Score != detections[j].Score {
			return detections[i].Score > detections[j].Score
		}
		return detections[i].order < detections[j].order
	})

	if m.params.MaxResults > 0 && len(detections) > m.params.MaxResults {
		detections = detections[:m.params.MaxResults]
	}

	return detections
}

// Matches returns every catalog pattern found in seq, in catalog order
func (m *Matcher) Matches(seq []string) []GenrePattern {
	matched := make([]GenrePattern, 0)
	for _, g := range m.catalog.Genres {
		for _, p := range g.Patterns {
			if harmony.IndexOf(seq, p.tokens) >= 0 {
				matched = append(matched, *p)
			}
		}
	}
	return matched
}
