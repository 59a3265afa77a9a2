package scale

import (
	"strings"

	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/errors"
)

// Type is a scale formula
type Type struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
	Steps   []int    `json:"steps"` // Semitone steps, summing to an octave
}

// Degree is one named scale step
type Degree struct {
	Number   int    `json:"number"` // 1-based position in the scale
	Note     string `json:"note"`
	Name     string `json:"name"` // tonic, supertonic, ...
	Interval string `json:"interval"`
	Quality  string `json:"quality"` // Long interval name, e.g. "major third"
}

// Mode is a rotation of a heptatonic scale
type Mode struct {
	Name   string `json:"name"`
	Root   string `json:"root"`
	Degree int    `json:"degree"`
	Scale  string `json:"scale"` // e.g. "D dorian"
}

// Info is a generated scale
type Info struct {
	Scale     string   `json:"scale"` // e.g. "C major"
	Root      string   `json:"root"`
	Type      string   `json:"type"`
	Notes     []string `json:"notes"`
	Intervals []string `json:"intervals"`
	Degrees   []Degree `json:"degrees"`
	Formula   string   `json:"formula"` // e.g. "W-W-H-W-W-W-H"

	RelativeMinor string `json:"relative_minor,omitempty"`
	RelativeMajor string `json:"relative_major,omitempty"`
	ParallelMinor string `json:"parallel_minor,omitempty"`
	ParallelMajor string `json:"parallel_major,omitempty"`

	Modes []Mode `json:"modes,omitempty"`
}

var types = []*Type{
	{Name: "major", Aliases: []string{"ionian"}, Steps: []int{2, 2, 1, 2, 2, 2, 1}},
	{Name: "dorian", Steps: []int{2, 1, 2, 2, 2, 1, 2}},
	{Name: "phrygian", Steps: []int{1, 2, 2, 2, 1, 2, 2}},
	{Name: "lydian", Steps: []int{2, 2, 2, 1, 2, 2, 1}},
	{Name: "mixolydian", Steps: []int{2, 2, 1, 2, 2, 1, 2}},
	{Name: "minor", Aliases: []string{"aeolian", "natural minor"}, Steps: []int{2, 1, 2, 2, 1, 2, 2}},
	{Name: "locrian", Steps: []int{1, 2, 2, 1, 2, 2, 2}},
	{Name: "harmonic minor", Steps: []int{2, 1, 2, 2, 1, 3, 1}},
	{Name: "melodic minor", Aliases: []string{"jazz minor"}, Steps: []int{2, 1, 2, 2, 2, 2, 1}},
	{Name: "major pentatonic", Aliases: []string{"pentatonic"}, Steps: []int{2, 2, 3, 2, 3}},
	{Name: "minor pentatonic", Steps: []int{3, 2, 2, 3, 2}},
	{Name: "blues", Steps: []int{3, 2, 1, 1, 3, 2}},
	{Name: "whole tone", Steps: []int{2, 2, 2, 2, 2, 2}},
	{Name: "diminished", Aliases: []string{"whole-half diminished"}, Steps: []int{2, 1, 2, 1, 2, 1, 2, 1}},
	{Name: "half-whole diminished", Aliases: []string{"dominant diminished"}, Steps: []int{1, 2, 1, 2, 1, 2, 1, 2}},
	{Name: "chromatic", Steps: []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
}

// Mode families: every heptatonic type is a rotation of one of these
var modeFamilies = []struct {
	steps []int
	names []string
}{
	{
		steps: []int{2, 2, 1, 2, 2, 2, 1},
		names: []string{"ionian", "dorian", "phrygian", "lydian", "mixolydian", "aeolian", "locrian"},
	},
	{
		steps: []int{2, 1, 2, 2, 1, 3, 1},
		names: []string{"harmonic minor", "locrian #6", "ionian #5", "dorian #4", "phrygian dominant", "lydian #2", "altered diminished"},
	},
	{
		steps: []int{2, 1, 2, 2, 2, 2, 1},
		names: []string{"melodic minor", "dorian b2", "lydian augmented", "lydian dominant", "mixolydian b6", "locrian #2", "altered"},
	},
}

var degreeNames = []string{"tonic", "supertonic", "mediant", "subdominant", "dominant", "submediant", "leading tone"}

// Generator builds scales from the formula table
type Generator struct {
	index map[string]*Type
}

// NewGenerator creates a generator over the built-in formulas
func NewGenerator() *Generator {
	index := make(map[string]*Type, len(types)*2)
	for _, t := range types {
		index[normalize(t.Name)] = t
		for _, a := range t.Aliases {
			index[normalize(a)] = t
		}
	}
	return &Generator{index: index}
}

// Types lists the canonical scale type names
func (g *Generator) Types() []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return names
}

// Get builds the scale of the given type on root
func (g *Generator) Get(root, typeName string) (*Info, error) {
	note, err := pitch.Parse(strings.TrimSpace(root))
	if err != nil || note.Octave != "" {
		return nil, errors.Wrap(errors.KindInvalidRoot, err, "invalid scale root %q", root).With("root", root)
	}

	t, ok := g.index[normalize(typeName)]
	if !ok {
		return nil, errors.New(errors.KindInvalidScaleType, "unknown scale type %q", typeName).
			With("type", typeName)
	}

	offsets := offsetsOf(t.Steps)
	heptatonic := len(offsets) == 7

	info := &Info{
		Scale:     note.Spelling + " " + t.Name,
		Root:      note.Spelling,
		Type:      t.Name,
		Notes:     make([]string, len(offsets)),
		Intervals: make([]string, len(offsets)),
		Degrees:   make([]Degree, len(offsets)),
		Formula:   formula(t.Steps),
	}

	for i, off := range offsets {
		label := pitch.IntervalName(off)
		if heptatonic {
			label = pitch.DiatonicInterval(i+1, off)
		}
		number := pitch.IntervalNumber(label)

		name := spell(note, number, off)
		info.Notes[i] = name
		info.Intervals[i] = label
		info.Degrees[i] = Degree{
			Number:   i + 1,
			Note:     name,
			Name:     degreeName(number, off),
			Interval: label,
			Quality:  pitch.LongName(label),
		}
	}

	if heptatonic {
		g.relate(info, note, offsets)
		info.Modes = modes(info, t.Steps)
	}

	return info, nil
}

// relate fills the relative and parallel roots from the quality of the third
func (g *Generator) relate(info *Info, root pitch.Note, offsets []int) {
	switch offsets[2] {
	case 4:
		info.RelativeMinor = spell(root, 6, 9)
		info.ParallelMinor = root.Spelling
	case 3:
		info.RelativeMajor = spell(root, 3, 3)
		info.ParallelMajor = root.Spelling
	}
}

// Helper functions

func normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("_", " ", "-", " ").Replace(n)
	return strings.Join(strings.Fields(n), " ")
}

func offsetsOf(steps []int) []int {
	offsets := make([]int, len(steps))
	acc := 0
	for i, s := range steps {
		offsets[i] = acc
		acc += s
	}
	return offsets
}

func formula(steps []int) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		switch s {
		case 1:
			parts[i] = "H"
		case 2:
			parts[i] = "W"
		case 3:
			parts[i] = "W+H"
		default:
			parts[i] = strings.Repeat("H", s)
		}
	}
	return strings.Join(parts, "-")
}

// spell writes the note number steps above root (1 = root letter) at the given offset
func spell(root pitch.Note, number, off int) string {
	if off == 0 {
		return root.Spelling
	}
	pc := pitch.PitchClass(pitch.Mod12(int(root.Class) + off))
	if number > 0 {
		if s := pitch.Spell(pitch.ShiftLetter(root.Letter, number-1), pc); s != "" {
			return s
		}
	}
	return pitch.Name(pc, pitch.PrefersFlats(root))
}

func degreeName(number, off int) string {
	if number < 1 || number > 7 {
		return ""
	}
	if number == 7 && off == 10 {
		return "subtonic"
	}
	return degreeNames[number-1]
}

// modes names the seven rotations of a heptatonic scale
func modes(info *Info, steps []int) []Mode {
	family, rotation := findFamily(steps)
	if family < 0 {
		return nil
	}

	names := modeFamilies[family].names
	out := make([]Mode, len(info.Notes))
	for i, root := range info.Notes {
		name := names[(rotation+i)%7]
		out[i] = Mode{
			Name:   name,
			Root:   root,
			Degree: i + 1,
			Scale:  root + " " + name,
		}
	}
	return out
}

func findFamily(steps []int) (int, int) {
	for fi, f := range modeFamilies {
		for r := 0; r < 7; r++ {
			if rotationEquals(f.steps, r, steps) {
				return fi, r
			}
		}
	}
	return -1, 0
}

func rotationEquals(parent []int, r int, steps []int) bool {
	if len(parent) != len(steps) {
		return false
	}
	for i := range steps {
		if parent[(r+i)%len(parent)] != steps[i] {
			return false
		}
	}
	return true
}
