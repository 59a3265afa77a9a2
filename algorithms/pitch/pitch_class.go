package pitch

import (
	"regexp"
	"strings"

	"github.com/RyanBlaney/sonido-teoria/errors"
)

// PitchClass is an octave- and enharmonic-independent note identity (0=C, 1=C#, ..., 11=B)
type PitchClass int

// Note is a parsed note-name token
type Note struct {
	Spelling    string     `json:"spelling"`    // Letter plus accidentals, e.g. "Eb"
	Letter      byte       `json:"letter"`      // 'A'..'G'
	Accidentals int        `json:"accidentals"` // +1 per sharp, -1 per flat
	Octave      string     `json:"octave"`      // Trailing digits, echoed verbatim
	Class       PitchClass `json:"class"`       // Normalized pitch class
}

// Token returns the note exactly as it was written
func (n Note) Token() string {
	return n.Spelling + n.Octave
}

var noteGrammar = regexp.MustCompile(`^([A-G])(#+|b+)?(\d*)$`)

// letterSemitones maps natural note letters to their pitch class
var letterSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// letterOrder is the letter cycle used for diatonic spelling
const letterOrder = "CDEFGAB"

var (
	sharpNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

// Mod12 folds any integer into [0,11]
func Mod12(v int) int {
	return ((v % 12) + 12) % 12
}

// Parse converts a note-name token into a Note
func Parse(token string) (Note, error) {
	m := noteGrammar.FindStringSubmatch(token)
	if m == nil {
		return Note{}, errors.New(errors.KindInvalidNotes, "invalid note %q", token).With("token", token)
	}

	letter := m[1][0]
	accidentals := strings.Count(m[2], "#") - strings.Count(m[2], "b")

	return Note{
		Spelling:    m[1] + m[2],
		Letter:      letter,
		Accidentals: accidentals,
		Octave:      m[3],
		Class:       PitchClass(Mod12(letterSemitones[letter] + accidentals)),
	}, nil
}

// ParseAll parses every token, failing on the first malformed one
func ParseAll(tokens []string) ([]Note, error) {
	notes := make([]Note, 0, len(tokens))
	for i, token := range tokens {
		n, err := Parse(token)
		if err != nil {
			return nil, err.(*errors.Error).With("index", i)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// Name returns a display name for a pitch class
func Name(pc PitchClass, preferFlats bool) string {
	if preferFlats {
		return flatNames[Mod12(int(pc))]
	}
	return sharpNames[Mod12(int(pc))]
}

// PrefersFlats reports whether names derived from this note should use flats
func PrefersFlats(n Note) bool {
	if n.Accidentals != 0 {
		return n.Accidentals < 0
	}
	return n.Letter == 'F'
}

// Spell returns the spelling of pc written on the given letter, or "" when
// more than two accidentals would be needed
func Spell(letter byte, pc PitchClass) string {
	natural, ok := letterSemitones[letter]
	if !ok {
		return ""
	}

	diff := Mod12(int(pc) - natural)
	if diff > 6 {
		diff -= 12
	}

	switch {
	case diff == 0:
		return string(letter)
	case diff > 0 && diff <= 2:
		return string(letter) + strings.Repeat("#", diff)
	case diff < 0 && diff >= -2:
		return string(letter) + strings.Repeat("b", -diff)
	default:
		return ""
	}
}

// ShiftLetter moves a note letter by steps along C D E F G A B
func ShiftLetter(letter byte, steps int) byte {
	idx := strings.IndexByte(letterOrder, letter)
	if idx < 0 {
		return letter
	}
	return letterOrder[((idx+steps)%7+7)%7]
}
