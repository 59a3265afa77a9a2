package chord

import (
	"math/bits"
	"sort"

	"github.com/RyanBlaney/sonido-teoria/algorithms/common"
	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/errors"
)

// MatchKind describes how a note set relates to a template
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchSubset
	MatchSuperset
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchSubset:
		return "subset"
	case MatchSuperset:
		return "superset"
	default:
		return "unknown"
	}
}

// Candidate is one (root, template) interpretation of a note set
type Candidate struct {
	Root       pitch.Note `json:"root"`
	Template   *Template  `json:"-"`
	Kind       MatchKind  `json:"kind"`
	Confidence float64    `json:"confidence"`
	Missing    int        `json:"missing"` // Template tones absent from the input
	Extra      int        `json:"extra"`   // Input tones outside the template

	rootIndex     int
	templateIndex int
}

// Symbol returns the chord symbol for the candidate, e.g. "G7"
func (c Candidate) Symbol() string {
	return c.Root.Spelling + c.Template.Symbol
}

// Identification is the result of identifying a chord from a note set
type Identification struct {
	Chord        string           `json:"chord"`   // Root plus quality name, e.g. "C major"
	Symbol       string           `json:"symbol"`  // Chord symbol, e.g. "C"
	Root         string           `json:"root"`    // Root spelling as written in the input
	Quality      string           `json:"quality"` // Quality name, e.g. "dominant7"
	Notes        []string         `json:"notes"`   // Distinct input notes, chord tones first in stacking order
	Intervals    []string         `json:"intervals"`
	Degrees      []string         `json:"degrees"`
	Alternatives []string         `json:"alternatives"` // Other plausible chord symbols
	Confidence   float64          `json:"confidence"`   // Match confidence (0-1)
	Bass         string           `json:"bass"`         // First note of the input
	Inversion    int              `json:"inversion"`    // 0 = root position, 1 = third in bass, ...
	Match        MatchKind        `json:"match"`
	RootClass    pitch.PitchClass `json:"root_class"`
	Template     *Template        `json:"-"`
}

// MatcherParams contains parameters for chord identification
type MatcherParams struct {
	MinConfidence   float64 `json:"min_confidence"`   // Match floor; weaker candidates are discarded
	MaxAlternatives int     `json:"max_alternatives"` // Alternatives reported beside the best match
	SubsetFactor    float64 `json:"subset_factor"`    // Penalty applied to incomplete voicings
	SupersetFactor  float64 `json:"superset_factor"`  // Penalty applied to voicings with extra tones
	MaxSubsetSize   int     `json:"max_subset_size"`  // Largest template eligible for incomplete matching
}

// DefaultMatcherParams returns the default identification parameters
func DefaultMatcherParams() MatcherParams {
	return MatcherParams{
		MinConfidence:   0.4,
		MaxAlternatives: 4,
		SubsetFactor:    0.85,
		SupersetFactor:  0.9,
		MaxSubsetSize:   4,
	}
}

// Matcher identifies chords from note sets by template matching
type Matcher struct {
	params    MatcherParams
	templates []*Template
}

// NewMatcher creates a matcher with default parameters
func NewMatcher() *Matcher {
	return NewMatcherWithParams(DefaultMatcherParams())
}

// NewMatcherWithParams creates a matcher with custom parameters
func NewMatcherWithParams(params MatcherParams) *Matcher {
	return &Matcher{
		params:    params,
		templates: templates,
	}
}

// Params returns the matcher parameters
func (m *Matcher) Params() MatcherParams {
	return m.params
}

// Identify names the chord formed by a set of note-name tokens
func (m *Matcher) Identify(tokens []string) (*Identification, error) {
	if len(tokens) < 2 {
		return nil, errors.New(errors.KindInsufficientNotes, "at least 2 notes are required").
			With("count", len(tokens))
	}

	notes, err := pitch.ParseAll(tokens)
	if err != nil {
		return nil, err
	}

	distinct := dedupe(notes)
	candidates := m.Candidates(distinct)
	if len(candidates) == 0 {
		return nil, errors.New(errors.KindChordNotFound, "no chord template matches the notes").
			With("notes", tokens)
	}

	best := candidates[0]
	tones := orderTones(distinct, best)

	result := &Identification{
		Chord:        best.Root.Spelling + " " + best.Template.Name,
		Symbol:       best.Symbol(),
		Root:         best.Root.Spelling,
		Quality:      best.Template.Name,
		Notes:        make([]string, len(tones)),
		Intervals:    make([]string, len(tones)),
		Degrees:      make([]string, len(tones)),
		Alternatives: m.alternatives(candidates),
		Confidence:   best.Confidence,
		Bass:         notes[0].Spelling,
		Match:        best.Kind,
		Template:     best.Template,
		RootClass:    best.Root.Class,
	}

	for i, tone := range tones {
		result.Notes[i] = tone.note.Spelling
		result.Intervals[i] = tone.interval
		result.Degrees[i] = pitch.DegreeName(tone.interval)
		if tone.note.Class == notes[0].Class && tone.chordTone {
			result.Inversion = tone.position
		}
	}

	return result, nil
}

// Candidates scores every (root, template) pair over a deduplicated note set and
// returns the matches that clear the floor, best first
func (m *Matcher) Candidates(distinct []pitch.Note) []Candidate {
	var candidates []Candidate

	for ri, root := range distinct {
		set := relativeSet(distinct, root.Class)

		for ti, tmpl := range m.templates {
			cand, ok := m.score(set, tmpl)
			if !ok {
				continue
			}

			cand.Root = root
			cand.Template = tmpl
			cand.rootIndex = ri
			cand.templateIndex = ti
			candidates = append(candidates, cand)
		}
	}

	// Ranking: confidence, then specificity, then earliest root in the input, then table order
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Template.Size() != b.Template.Size() {
			return a.Template.Size() > b.Template.Size()
		}
		if a.rootIndex != b.rootIndex {
			return a.rootIndex < b.rootIndex
		}
		return a.templateIndex < b.templateIndex
	})

	return candidates
}

// score compares a relative pitch-class set against one template
func (m *Matcher) score(set uint16, tmpl *Template) (Candidate, bool) {
	present := bits.OnesCount16(set)
	size := tmpl.Size()

	var cand Candidate
	switch {
	case set == tmpl.mask:
		cand = Candidate{Kind: MatchExact, Confidence: tmpl.Weight}

	case set&^tmpl.mask == 0:
		missing := tmpl.mask &^ set
		omittable := tmpl.omittable
		if present == 2 && set&thirds != 0 {
			// A bare third also reads as any sixth, seventh or add9 chord on the root
			omittable |= tmpl.added
		}
		if size > m.params.MaxSubsetSize || missing&^omittable != 0 || set&tmpl.characteristic == 0 {
			return Candidate{}, false
		}
		coverage := float64(present) / float64(size)
		cand = Candidate{
			Kind:       MatchSubset,
			Confidence: tmpl.Weight * coverage * m.params.SubsetFactor,
			Missing:    size - present,
		}

	case tmpl.mask&^set == 0:
		if size < 3 {
			return Candidate{}, false
		}
		cand = Candidate{
			Kind:       MatchSuperset,
			Confidence: tmpl.Weight * float64(size) / float64(present) * m.params.SupersetFactor,
			Extra:      present - size,
		}

	default:
		return Candidate{}, false
	}

	cand.Confidence = common.Round(common.Clamp(cand.Confidence, 0.0, 1.0), 2)
	if cand.Confidence < m.params.MinConfidence {
		return Candidate{}, false
	}
	return cand, true
}

// alternatives collects distinct symbols after the best candidate
func (m *Matcher) alternatives(candidates []Candidate) []string {
	alts := make([]string, 0, m.params.MaxAlternatives)
	seen := map[string]bool{candidates[0].Symbol(): true}

	for _, c := range candidates[1:] {
		if len(alts) >= m.params.MaxAlternatives {
			break
		}
		sym := c.Symbol()
		if seen[sym] {
			continue
		}
		seen[sym] = true
		alts = append(alts, sym)
	}

	return alts
}

// Helper functions

// dedupe keeps the first spelling seen for each pitch class
func dedupe(notes []pitch.Note) []pitch.Note {
	var seen uint16
	distinct := make([]pitch.Note, 0, len(notes))
	for _, n := range notes {
		bit := uint16(1) << n.Class
		if seen&bit != 0 {
			continue
		}
		seen |= bit
		distinct = append(distinct, n)
	}
	return distinct
}

// relativeSet builds the interval set of the notes measured from root
func relativeSet(notes []pitch.Note, root pitch.PitchClass) uint16 {
	var set uint16
	for _, n := range notes {
		set |= 1 << pitch.Mod12(int(n.Class)-int(root))
	}
	return set
}

type orderedTone struct {
	note      pitch.Note
	interval  string
	chordTone bool
	position  int
}

// orderTones lists chord tones in template order followed by extra tones by
// ascending distance from the root
func orderTones(distinct []pitch.Note, c Candidate) []orderedTone {
	byOffset := make(map[int]pitch.Note, len(distinct))
	for _, n := range distinct {
		byOffset[pitch.Mod12(int(n.Class)-int(c.Root.Class))] = n
	}

	tones := make([]orderedTone, 0, len(distinct))
	used := make(map[int]bool, len(distinct))
	for pos, off := range c.Template.offsets {
		n, ok := byOffset[off]
		if !ok {
			continue
		}
		used[off] = true
		tones = append(tones, orderedTone{
			note:      n,
			interval:  c.Template.Intervals[pos],
			chordTone: true,
			position:  pos,
		})
	}

	for off := 0; off < 12; off++ {
		n, ok := byOffset[off]
		if !ok || used[off] {
			continue
		}
		tones = append(tones, orderedTone{
			note:     n,
			interval: pitch.ExtensionName(off),
		})
	}

	return tones
}
