package harmony

import (
	"strings"

	"github.com/RyanBlaney/sonido-teoria/algorithms/chord"
	"github.com/RyanBlaney/sonido-teoria/algorithms/key"
	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
)

// Function is the structural role of a chord within a key
type Function string

const (
	FunctionTonic       Function = "tonic"
	FunctionSubdominant Function = "subdominant"
	FunctionDominant    Function = "dominant"
	FunctionDeceptive   Function = "deceptive"
	FunctionPassing     Function = "passing"
)

// degreeFunctions maps scale degree (1-7) to harmonic function
var degreeFunctions = map[int]Function{
	1: FunctionTonic,
	2: FunctionPassing,
	3: FunctionPassing,
	4: FunctionSubdominant,
	5: FunctionDominant,
	6: FunctionDeceptive,
	7: FunctionPassing,
}

var numerals = []string{"I", "II", "III", "IV", "V", "VI", "VII"}

// chromatic roots, by semitones above the tonic, spelled against each mode
var (
	majorChromatic = map[int]chromaticDegree{1: {"b", 2}, 3: {"b", 3}, 6: {"#", 4}, 8: {"b", 6}, 10: {"b", 7}}
	minorChromatic = map[int]chromaticDegree{1: {"b", 2}, 4: {"#", 3}, 6: {"#", 4}, 9: {"#", 6}, 11: {"#", 7}}
)

type chromaticDegree struct {
	prefix string
	degree int
}

// ChordAnalysis is the roman-numeral reading of one chord in a key
type ChordAnalysis struct {
	Chord             string   `json:"chord"`   // Chord symbol as written
	Roman             string   `json:"roman"`   // Full numeral, e.g. "V7", "viiø7", "bVII"
	Base              string   `json:"base"`    // Numeral without extension, e.g. "V", "viiø"
	Quality           string   `json:"quality"` // Template quality name
	Degree            int      `json:"degree"`  // 1-7
	Function          Function `json:"function"`
	Diatonic          bool     `json:"diatonic"`
	Borrowed          bool     `json:"borrowed"`
	BorrowedFrom      string   `json:"borrowed_from,omitempty"`      // Parallel key name
	SecondaryDominant string   `json:"secondary_dominant,omitempty"` // e.g. "V7/V"
	Chromatic         string   `json:"chromatic,omitempty"`          // Accidental prefix for non-diatonic roots
}

// Classify annotates every chord of a progression against a key
func Classify(k key.Key, symbols []chord.Symbol) []ChordAnalysis {
	out := make([]ChordAnalysis, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, Analyze(k, s))
	}
	return out
}

// Analyze reads a single chord in a key
func Analyze(k key.Key, s chord.Symbol) ChordAnalysis {
	tmpl := s.Template
	a := ChordAnalysis{
		Chord:   s.Text,
		Quality: tmpl.Name,
	}

	if degree, ok := k.Fits(s.Root.Class, tmpl); ok {
		a.Degree = degree
		a.Diatonic = true
	} else if degree, ok := k.Degree(s.Root.Class); ok {
		a.Degree = degree
	} else {
		cd := chromaticDegreeOf(k, s.Root.Class)
		a.Degree = cd.degree
		a.Chromatic = cd.prefix
	}

	a.Function = degreeFunctions[a.Degree]
	a.Base = a.Chromatic + numeral(a.Degree, tmpl.Family) + qualityMark(tmpl)
	a.Roman = a.Base + tmpl.Extension()

	if !a.Diatonic {
		if _, ok := k.Parallel().Fits(s.Root.Class, tmpl); ok {
			a.Borrowed = true
			a.BorrowedFrom = k.Parallel().Name()
		}
	}

	a.SecondaryDominant = secondaryDominant(k, s)

	return a
}

// Helper functions

func chromaticDegreeOf(k key.Key, pc pitch.PitchClass) chromaticDegree {
	off := pitch.Mod12(int(pc) - int(k.Tonic))
	table := majorChromatic
	if k.Mode == key.ModeMinor {
		table = minorChromatic
	}
	return table[off]
}

// numeral renders a degree in upper case for major-sounding chords, lower case
// for minor and diminished ones
func numeral(degree int, family chord.Family) string {
	if degree < 1 || degree > 7 {
		return "?"
	}
	n := numerals[degree-1]
	if family == chord.FamilyMinor || family == chord.FamilyDiminished {
		return strings.ToLower(n)
	}
	return n
}

func qualityMark(tmpl *chord.Template) string {
	switch tmpl.Family {
	case chord.FamilyDiminished:
		if tmpl.Seventh == chord.SeventhMinor {
			return "ø"
		}
		return "°"
	case chord.FamilyAugmented:
		return "+"
	}
	return ""
}

// secondaryDominant labels a dominant-seventh chord resolving a fifth down onto
// a diatonic degree other than the tonic
func secondaryDominant(k key.Key, s chord.Symbol) string {
	if !s.Template.IsDominant() {
		return ""
	}

	target := pitch.PitchClass(pitch.Mod12(int(s.Root.Class) - 7))
	degree, ok := k.Degree(target)
	if !ok || degree == 1 {
		return ""
	}

	expected := k.Expected(degree)
	if expected.Family == chord.FamilyDiminished {
		return ""
	}

	return "V7/" + numeral(degree, expected.Family)
}
