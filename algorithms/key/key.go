package key

import (
	"github.com/RyanBlaney/sonido-teoria/algorithms/chord"
	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
)

// Mode represents major or minor mode
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

var (
	majorSteps         = []int{0, 2, 4, 5, 7, 9, 11}
	naturalMinorSteps  = []int{0, 2, 3, 5, 7, 8, 10}
	harmonicMinorSteps = []int{0, 2, 3, 5, 7, 8, 11}
)

// Conventional tonic spellings, following the key signature each tonic implies
var (
	majorTonicNames = []string{"C", "Db", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}
	minorTonicNames = []string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "G#", "A", "Bb", "B"}
)

// Key is a tonic plus mode
type Key struct {
	Tonic pitch.PitchClass `json:"tonic"`
	Mode  Mode             `json:"mode"`
}

// DiatonicChord is the chord a key builds on one of its degrees by stacking thirds
type DiatonicChord struct {
	Degree  int              `json:"degree"`
	Root    pitch.PitchClass `json:"root"`
	Family  chord.Family     `json:"family"`
	Seventh chord.Seventh    `json:"seventh"`
}

// All returns the 24 keys in tonic order, major before minor
func All() []Key {
	keys := make([]Key, 0, 24)
	for tonic := 0; tonic < 12; tonic++ {
		keys = append(keys,
			Key{Tonic: pitch.PitchClass(tonic), Mode: ModeMajor},
			Key{Tonic: pitch.PitchClass(tonic), Mode: ModeMinor})
	}
	return keys
}

// TonicName returns the conventional spelling of the tonic
func (k Key) TonicName() string {
	if k.Mode == ModeMinor {
		return minorTonicNames[pitch.Mod12(int(k.Tonic))]
	}
	return majorTonicNames[pitch.Mod12(int(k.Tonic))]
}

// Name returns human-readable key name, e.g. "C major"
func (k Key) Name() string {
	return k.TonicName() + " " + k.Mode.String()
}

// Steps returns the semitone offsets of the key's natural scale
func (k Key) Steps() []int {
	if k.Mode == ModeMinor {
		return naturalMinorSteps
	}
	return majorSteps
}

// Degree returns the 1-based scale degree of pc, if it is diatonic
func (k Key) Degree(pc pitch.PitchClass) (int, bool) {
	return degreeIn(k.Steps(), k.Tonic, pc)
}

// Expected builds the diatonic seventh chord on a degree (1-7) from the step pattern
func (k Key) Expected(degree int) DiatonicChord {
	return stack(k.Steps(), k.Tonic, degree)
}

// Parallel returns the key with the same tonic and the other mode
func (k Key) Parallel() Key {
	if k.Mode == ModeMajor {
		return Key{Tonic: k.Tonic, Mode: ModeMinor}
	}
	return Key{Tonic: k.Tonic, Mode: ModeMajor}
}

// Relative returns the key sharing this key's signature
func (k Key) Relative() Key {
	if k.Mode == ModeMajor {
		// Relative minor is 3 semitones down
		return Key{Tonic: pitch.PitchClass(pitch.Mod12(int(k.Tonic) - 3)), Mode: ModeMinor}
	}
	return Key{Tonic: pitch.PitchClass(pitch.Mod12(int(k.Tonic) + 3)), Mode: ModeMajor}
}

// HarmonicExpected builds the chord on a degree of the harmonic minor scale
// sharing this key's tonic
func (k Key) HarmonicExpected(degree int) DiatonicChord {
	return stack(harmonicMinorSteps, k.Tonic, degree)
}

// Fits reports whether a chord belongs to the key and on which degree. Minor
// keys also accept the harmonic-minor dominant and leading-tone chords, with
// their diatonic quality.
func (k Key) Fits(root pitch.PitchClass, tmpl *chord.Template) (int, bool) {
	set := tmpl.PitchClassSet(root)

	if degree, ok := degreeIn(k.Steps(), k.Tonic, root); ok && set&^mask(k.Steps(), k.Tonic) == 0 {
		return degree, true
	}

	if k.Mode == ModeMinor {
		degree, ok := degreeIn(harmonicMinorSteps, k.Tonic, root)
		if ok && (degree == 5 || degree == 7) && set&^mask(harmonicMinorSteps, k.Tonic) == 0 &&
			tmpl.Family == k.HarmonicExpected(degree).Family {
			return degree, true
		}
	}

	return 0, false
}

// Helper functions

func degreeIn(steps []int, tonic, pc pitch.PitchClass) (int, bool) {
	off := pitch.Mod12(int(pc) - int(tonic))
	for i, s := range steps {
		if s == off {
			return i + 1, true
		}
	}
	return 0, false
}

func mask(steps []int, tonic pitch.PitchClass) uint16 {
	var m uint16
	for _, s := range steps {
		m |= 1 << pitch.Mod12(int(tonic)+s)
	}
	return m
}

// stack builds a chord on a degree from scale thirds
func stack(steps []int, tonic pitch.PitchClass, degree int) DiatonicChord {
	i := ((degree-1)%7 + 7) % 7
	root := steps[i]
	above := func(n int) int {
		return pitch.Mod12(steps[(i+n)%7] - root)
	}

	third, fifth, seventh := above(2), above(4), above(6)

	dc := DiatonicChord{
		Degree: i + 1,
		Root:   pitch.PitchClass(pitch.Mod12(int(tonic) + root)),
	}

	switch {
	case third == 4 && fifth == 8:
		dc.Family = chord.FamilyAugmented
	case third == 4:
		dc.Family = chord.FamilyMajor
	case third == 3 && fifth == 6:
		dc.Family = chord.FamilyDiminished
	default:
		dc.Family = chord.FamilyMinor
	}

	switch seventh {
	case 11:
		dc.Seventh = chord.SeventhMajor
	case 10:
		dc.Seventh = chord.SeventhMinor
	default:
		dc.Seventh = chord.SeventhDiminished
	}

	return dc
}
