package harmony

// CadenceType names a two-chord closing motion
type CadenceType string

const (
	CadenceAuthentic CadenceType = "authentic"
	CadencePlagal    CadenceType = "plagal"
	CadenceHalf      CadenceType = "half"
	CadenceDeceptive CadenceType = "deceptive"
)

// Strength grades how conclusive a cadence is
type Strength string

const (
	StrengthStrong Strength = "strong"
	StrengthWeak   Strength = "weak"
)

// Cadence is one cadential motion found between adjacent chords
type Cadence struct {
	Type     CadenceType `json:"type"`
	Chords   [2]string   `json:"chords"`
	Strength Strength    `json:"strength"`
	Position int         `json:"position"` // Index of the first chord
}

// DetectCadences scans every adjacent pair of the analysis
func DetectCadences(analysis []ChordAnalysis) []Cadence {
	cadences := make([]Cadence, 0)
	for i := 0; i+1 < len(analysis); i++ {
		if c, ok := cadenceBetween(analysis[i], analysis[i+1]); ok {
			c.Position = i
			cadences = append(cadences, c)
		}
	}
	return cadences
}

// Loopable reports whether the progression closes back onto its first chord:
// the wrap-around pair forms a cadence, or a dominant or subdominant chord
// leads back to an opening tonic
func Loopable(analysis []ChordAnalysis) bool {
	if len(analysis) < 2 {
		return false
	}

	first, last := analysis[0], analysis[len(analysis)-1]
	if _, ok := cadenceBetween(last, first); ok {
		return true
	}

	return first.Function == FunctionTonic &&
		(last.Function == FunctionDominant || last.Function == FunctionSubdominant)
}

// cadenceBetween classifies the motion between two chords with diatonic roots
func cadenceBetween(from, to ChordAnalysis) (Cadence, bool) {
	if from.Chromatic != "" || to.Chromatic != "" {
		return Cadence{}, false
	}

	c := Cadence{
		Chords:   [2]string{from.Chord, to.Chord},
		Strength: StrengthWeak,
	}

	switch {
	case from.Degree == 5 && to.Degree == 1:
		c.Type = CadenceAuthentic
		c.Strength = StrengthStrong
	case from.Degree == 4 && to.Degree == 1:
		c.Type = CadencePlagal
	case from.Degree == 5 && to.Degree == 6:
		c.Type = CadenceDeceptive
	case from.Degree != 5 && to.Degree == 5:
		c.Type = CadenceHalf
	default:
		return Cadence{}, false
	}

	return c, true
}
