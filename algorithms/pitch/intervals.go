package pitch

// Interval labels follow the quality+number convention (P1, m3, M3, P5, m7, ...)

var intervalSemitones = map[string]int{
	"P1": 0, "m2": 1, "M2": 2, "A2": 3, "m3": 3, "M3": 4, "P4": 5, "A4": 6,
	"d5": 6, "P5": 7, "A5": 8, "m6": 8, "M6": 9, "d7": 9, "m7": 10, "M7": 11,
	"P8": 12, "m9": 13, "M9": 14, "A9": 15, "P11": 17, "A11": 18, "m13": 20, "M13": 21,
}

var intervalDegrees = map[string]string{
	"P1": "1", "m2": "b2", "M2": "2", "A2": "#2", "m3": "b3", "M3": "3", "P4": "4", "A4": "#4",
	"d5": "b5", "P5": "5", "A5": "#5", "m6": "b6", "M6": "6", "d7": "bb7", "m7": "b7", "M7": "7",
	"P8": "8", "m9": "b9", "M9": "9", "A9": "#9", "P11": "11", "A11": "#11", "m13": "b13", "M13": "13",
}

// genericIntervals names each semitone distance inside one octave
var genericIntervals = []string{"P1", "m2", "M2", "m3", "M3", "P4", "d5", "P5", "m6", "M6", "m7", "M7"}

// extensionIntervals names non-chord tones above a chord root
var extensionIntervals = []string{"P1", "m9", "M9", "A9", "M3", "P11", "A11", "P5", "m13", "M13", "m7", "M7"}

var intervalLongNames = map[string]string{
	"P1": "unison", "m2": "minor second", "M2": "major second", "A2": "augmented second",
	"m3": "minor third", "M3": "major third", "P4": "perfect fourth", "A4": "augmented fourth",
	"d5": "diminished fifth", "P5": "perfect fifth", "A5": "augmented fifth", "m6": "minor sixth",
	"M6": "major sixth", "d7": "diminished seventh", "m7": "minor seventh", "M7": "major seventh",
}

// IntervalSemitones returns the size of a labelled interval
func IntervalSemitones(label string) (int, bool) {
	s, ok := intervalSemitones[label]
	return s, ok
}

// IntervalName returns the plain interval label for a distance within an octave
func IntervalName(semitones int) string {
	return genericIntervals[Mod12(semitones)]
}

// ExtensionName labels a tone added on top of a chord (9ths, 11ths, 13ths)
func ExtensionName(semitones int) string {
	return extensionIntervals[Mod12(semitones)]
}

// DegreeName returns the chord/scale degree for an interval label ("m7" -> "b7")
func DegreeName(label string) string {
	if d, ok := intervalDegrees[label]; ok {
		return d
	}
	return label
}

// IntervalNumber returns the generic size of a label ("m3" -> 3), or 0
func IntervalNumber(label string) int {
	n := 0
	for i := 1; i < len(label); i++ {
		c := label[i]
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// LongName returns a readable name for an interval label
func LongName(label string) string {
	if n, ok := intervalLongNames[label]; ok {
		return n
	}
	return label
}

// DiatonicInterval labels a scale step by its degree number (1-7) and size,
// relative to the major scale
func DiatonicInterval(degree, semitones int) string {
	majorSteps := []int{0, 2, 4, 5, 7, 9, 11}
	if degree < 1 || degree > 7 {
		return IntervalName(semitones)
	}

	perfect := degree == 1 || degree == 4 || degree == 5
	diff := semitones - majorSteps[degree-1]
	if diff > 6 {
		diff -= 12
	} else if diff < -6 {
		diff += 12
	}

	var quality string
	switch {
	case diff == 0 && perfect:
		quality = "P"
	case diff == 0:
		quality = "M"
	case diff == -1 && perfect:
		quality = "d"
	case diff == -1:
		quality = "m"
	case diff == -2 && !perfect:
		quality = "d"
	case diff == 1:
		quality = "A"
	default:
		return IntervalName(semitones)
	}

	return quality + string(rune('0'+degree))
}
