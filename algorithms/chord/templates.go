package chord

import (
	"math/bits"

	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/errors"
)

// Quality represents the quality/type of a chord
type Quality int

const (
	Dom13 Quality = iota
	Maj13
	Min13
	Dom11
	Min11
	Dom9
	Maj9
	Min9
	Dom7Flat9
	Dom7Sharp9
	SixNine
	Dom7
	Maj7
	Min7
	HalfDim7
	Dim7
	MinMaj7
	Aug7
	Dom7Sus4
	Maj6
	Min6
	Add9
	MinAdd9
	Major
	Minor
	Diminished
	Augmented
	Sus4
	Sus2
	Power
)

// Family is the triad a chord is built on
type Family int

const (
	FamilyMajor Family = iota
	FamilyMinor
	FamilyDiminished
	FamilyAugmented
	FamilySuspended
	FamilyPower
)

func (f Family) String() string {
	switch f {
	case FamilyMajor:
		return "major"
	case FamilyMinor:
		return "minor"
	case FamilyDiminished:
		return "diminished"
	case FamilyAugmented:
		return "augmented"
	case FamilySuspended:
		return "suspended"
	case FamilyPower:
		return "power"
	default:
		return "unknown"
	}
}

// Seventh is the kind of seventh stacked on the triad, if any
type Seventh int

const (
	SeventhNone Seventh = iota
	SeventhMinor
	SeventhMajor
	SeventhDiminished
)

// Template is the interval-set definition of a chord quality
type Template struct {
	Quality   Quality  `json:"quality"`
	Name      string   `json:"name"`      // Quality name, e.g. "dominant7"
	Symbol    string   `json:"symbol"`    // Canonical suffix, e.g. "7"
	Aliases   []string `json:"aliases"`   // Other accepted suffixes
	Intervals []string `json:"intervals"` // Interval labels from the root, in stacking order
	Family    Family   `json:"family"`
	Seventh   Seventh  `json:"seventh"`
	Weight    float64  `json:"weight"` // Template importance weight

	offsets        []int  // Intervals reduced to one octave, same order
	mask           uint16 // Pitch-class set relative to the root
	omittable      uint16 // Tones that may be absent in an incomplete voicing
	added          uint16 // Sixth, seventh or ninth stacked on a major or minor triad
	characteristic uint16 // Tones that identify the quality (third, seventh, suspension)
}

// Size is the number of distinct pitch classes in the template
func (t *Template) Size() int {
	return bits.OnesCount16(t.mask)
}

// Offsets returns the template tones in semitones from the root, within one octave
func (t *Template) Offsets() []int {
	out := make([]int, len(t.offsets))
	copy(out, t.offsets)
	return out
}

// PitchClassSet returns the template transposed onto root as an absolute pitch-class mask
func (t *Template) PitchClassSet(root pitch.PitchClass) uint16 {
	var set uint16
	for _, off := range t.offsets {
		set |= 1 << pitch.Mod12(int(root)+off)
	}
	return set
}

// IsDominant reports whether the chord has dominant-seventh quality
func (t *Template) IsDominant() bool {
	return t.Family == FamilyMajor && t.Seventh == SeventhMinor
}

// Extension returns the numeric suffix used in roman numerals ("7", "9", ...)
func (t *Template) Extension() string {
	switch t.Quality {
	case Dom13, Maj13, Min13:
		return "13"
	case Dom11, Min11:
		return "11"
	case Dom9, Maj9, Min9:
		return "9"
	case Maj6, Min6:
		return "6"
	case SixNine:
		return "6/9"
	case Add9, MinAdd9:
		return "add9"
	case Sus2:
		return "sus2"
	case Sus4:
		return "sus4"
	case Dom7Sus4:
		return "7sus4"
	case Power:
		return "5"
	}
	if t.Seventh != SeventhNone {
		switch t.Quality {
		case Maj7, MinMaj7:
			return "maj7"
		case Dom7Flat9:
			return "7b9"
		case Dom7Sharp9:
			return "7#9"
		}
		return "7"
	}
	return ""
}

// thirds holds the minor and major third above the root
const thirds uint16 = 1<<3 | 1<<4

// templates is ordered by specificity: larger interval sets first
var templates = buildTemplates()

// Templates returns the static template table in match order
func Templates() []*Template {
	out := make([]*Template, len(templates))
	copy(out, templates)
	return out
}

func buildTemplates() []*Template {
	table := []*Template{
		{Quality: Dom13, Name: "dominant13", Symbol: "13", Aliases: []string{"dom13"},
			Intervals: []string{"P1", "M3", "P5", "m7", "M9", "M13"}, Family: FamilyMajor, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: Maj13, Name: "major13", Symbol: "maj13", Aliases: []string{"M13", "Δ13", "ma13"},
			Intervals: []string{"P1", "M3", "P5", "M7", "M9", "M13"}, Family: FamilyMajor, Seventh: SeventhMajor, Weight: 1.0},
		{Quality: Min13, Name: "minor13", Symbol: "m13", Aliases: []string{"min13", "-13", "mi13"},
			Intervals: []string{"P1", "m3", "P5", "m7", "M9", "M13"}, Family: FamilyMinor, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: Dom11, Name: "dominant11", Symbol: "11", Aliases: []string{"dom11"},
			Intervals: []string{"P1", "M3", "P5", "m7", "M9", "P11"}, Family: FamilyMajor, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: Min11, Name: "minor11", Symbol: "m11", Aliases: []string{"min11", "-11", "mi11"},
			Intervals: []string{"P1", "m3", "P5", "m7", "M9", "P11"}, Family: FamilyMinor, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: Dom9, Name: "dominant9", Symbol: "9", Aliases: []string{"dom9"},
			Intervals: []string{"P1", "M3", "P5", "m7", "M9"}, Family: FamilyMajor, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: Maj9, Name: "major9", Symbol: "maj9", Aliases: []string{"M9", "Δ9", "ma9"},
			Intervals: []string{"P1", "M3", "P5", "M7", "M9"}, Family: FamilyMajor, Seventh: SeventhMajor, Weight: 1.0},
		{Quality: Min9, Name: "minor9", Symbol: "m9", Aliases: []string{"min9", "-9", "mi9"},
			Intervals: []string{"P1", "m3", "P5", "m7", "M9"}, Family: FamilyMinor, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: Dom7Flat9, Name: "dominant7b9", Symbol: "7b9", Aliases: []string{"7(b9)"},
			Intervals: []string{"P1", "M3", "P5", "m7", "m9"}, Family: FamilyMajor, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: Dom7Sharp9, Name: "dominant7#9", Symbol: "7#9", Aliases: []string{"7(#9)"},
			Intervals: []string{"P1", "M3", "P5", "m7", "A9"}, Family: FamilyMajor, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: SixNine, Name: "6/9", Symbol: "6/9", Aliases: []string{"69", "6add9"},
			Intervals: []string{"P1", "M3", "P5", "M6", "M9"}, Family: FamilyMajor, Seventh: SeventhNone, Weight: 1.0},
		{Quality: Dom7, Name: "dominant7", Symbol: "7", Aliases: []string{"dom7", "dom"},
			Intervals: []string{"P1", "M3", "P5", "m7"}, Family: FamilyMajor, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: Maj7, Name: "major7", Symbol: "maj7", Aliases: []string{"M7", "Δ", "Δ7", "^7", "ma7"},
			Intervals: []string{"P1", "M3", "P5", "M7"}, Family: FamilyMajor, Seventh: SeventhMajor, Weight: 1.0},
		{Quality: Min7, Name: "minor7", Symbol: "m7", Aliases: []string{"min7", "-7", "mi7"},
			Intervals: []string{"P1", "m3", "P5", "m7"}, Family: FamilyMinor, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: HalfDim7, Name: "half-diminished7", Symbol: "m7b5", Aliases: []string{"ø", "ø7", "min7b5", "-7b5", "m7(b5)"},
			Intervals: []string{"P1", "m3", "d5", "m7"}, Family: FamilyDiminished, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: Dim7, Name: "diminished7", Symbol: "dim7", Aliases: []string{"°7", "o7"},
			Intervals: []string{"P1", "m3", "d5", "d7"}, Family: FamilyDiminished, Seventh: SeventhDiminished, Weight: 1.0},
		{Quality: MinMaj7, Name: "minor-major7", Symbol: "mMaj7", Aliases: []string{"mM7", "m(maj7)", "minmaj7", "-Δ7"},
			Intervals: []string{"P1", "m3", "P5", "M7"}, Family: FamilyMinor, Seventh: SeventhMajor, Weight: 1.0},
		{Quality: Aug7, Name: "augmented7", Symbol: "aug7", Aliases: []string{"+7", "7#5", "7+"},
			Intervals: []string{"P1", "M3", "A5", "m7"}, Family: FamilyAugmented, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: Dom7Sus4, Name: "7sus4", Symbol: "7sus4", Aliases: []string{"7sus"},
			Intervals: []string{"P1", "P4", "P5", "m7"}, Family: FamilySuspended, Seventh: SeventhMinor, Weight: 1.0},
		{Quality: Maj6, Name: "major6", Symbol: "6", Aliases: []string{"maj6", "M6"},
			Intervals: []string{"P1", "M3", "P5", "M6"}, Family: FamilyMajor, Seventh: SeventhNone, Weight: 1.0},
		{Quality: Min6, Name: "minor6", Symbol: "m6", Aliases: []string{"min6", "-6", "mi6"},
			Intervals: []string{"P1", "m3", "P5", "M6"}, Family: FamilyMinor, Seventh: SeventhNone, Weight: 1.0},
		{Quality: Add9, Name: "add9", Symbol: "add9", Aliases: []string{"add2", "(add9)"},
			Intervals: []string{"P1", "M3", "P5", "M9"}, Family: FamilyMajor, Seventh: SeventhNone, Weight: 1.0},
		{Quality: MinAdd9, Name: "minor-add9", Symbol: "madd9", Aliases: []string{"m(add9)", "minadd9"},
			Intervals: []string{"P1", "m3", "P5", "M9"}, Family: FamilyMinor, Seventh: SeventhNone, Weight: 1.0},
		{Quality: Major, Name: "major", Symbol: "", Aliases: []string{"maj", "M", "major"},
			Intervals: []string{"P1", "M3", "P5"}, Family: FamilyMajor, Seventh: SeventhNone, Weight: 1.0},
		{Quality: Minor, Name: "minor", Symbol: "m", Aliases: []string{"min", "-", "minor", "mi"},
			Intervals: []string{"P1", "m3", "P5"}, Family: FamilyMinor, Seventh: SeventhNone, Weight: 1.0},
		{Quality: Diminished, Name: "diminished", Symbol: "dim", Aliases: []string{"°", "o"},
			Intervals: []string{"P1", "m3", "d5"}, Family: FamilyDiminished, Seventh: SeventhNone, Weight: 1.0},
		{Quality: Augmented, Name: "augmented", Symbol: "aug", Aliases: []string{"+"},
			Intervals: []string{"P1", "M3", "A5"}, Family: FamilyAugmented, Seventh: SeventhNone, Weight: 1.0},
		{Quality: Sus4, Name: "sus4", Symbol: "sus4", Aliases: []string{"sus"},
			Intervals: []string{"P1", "P4", "P5"}, Family: FamilySuspended, Seventh: SeventhNone, Weight: 1.0},
		{Quality: Sus2, Name: "sus2", Symbol: "sus2", Aliases: []string{},
			Intervals: []string{"P1", "M2", "P5"}, Family: FamilySuspended, Seventh: SeventhNone, Weight: 1.0},
		{Quality: Power, Name: "power", Symbol: "5", Aliases: []string{},
			Intervals: []string{"P1", "P5"}, Family: FamilyPower, Seventh: SeventhNone, Weight: 0.6},
	}

	for _, t := range table {
		if err := t.compile(); err != nil {
			panic(err)
		}
	}

	return table
}

// compile derives the pitch-class masks from the interval labels
func (t *Template) compile() error {
	t.offsets = make([]int, 0, len(t.Intervals))
	for _, label := range t.Intervals {
		semis, ok := pitch.IntervalSemitones(label)
		if !ok {
			return errors.New(errors.KindInternal, "chord template %s: unknown interval %q", t.Name, label)
		}

		off := pitch.Mod12(semis)
		bit := uint16(1) << off
		if t.mask&bit != 0 {
			return errors.New(errors.KindInternal, "chord template %s: duplicate pitch class for %q", t.Name, label)
		}
		t.mask |= bit
		t.offsets = append(t.offsets, off)

		switch label {
		case "m3", "M3", "m7", "M7", "d7":
			t.characteristic |= bit
		case "P4", "M2":
			if t.Family == FamilySuspended {
				t.characteristic |= bit
			}
		}
	}

	// An incomplete voicing may drop a perfect fifth, and a seventh chord may drop its third
	if t.Family != FamilyPower && t.Family != FamilyAugmented && t.Family != FamilyDiminished {
		t.omittable |= 1 << 7
	}
	if t.Seventh != SeventhNone && (t.Family == FamilyMajor || t.Family == FamilyMinor) {
		t.omittable |= t.mask & (1<<3 | 1<<4)
	}
	if t.Family == FamilyMajor || t.Family == FamilyMinor {
		t.added = t.mask &^ (1 | thirds | 1<<7)
	}

	return nil
}
