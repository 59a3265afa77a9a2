package chord

import (
	"regexp"
	"strings"

	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/errors"
)

// Symbol is a parsed chord symbol such as "Dm7", "Bbmaj7" or "C/E"
type Symbol struct {
	Text     string      `json:"text"`
	Root     pitch.Note  `json:"root"`
	Template *Template   `json:"-"`
	Bass     *pitch.Note `json:"bass,omitempty"`
}

// Tones returns the pitch classes of the chord, root first, bass note included
func (s Symbol) Tones() []pitch.PitchClass {
	tones := make([]pitch.PitchClass, 0, len(s.Template.offsets)+1)
	for _, off := range s.Template.offsets {
		tones = append(tones, pitch.PitchClass(pitch.Mod12(int(s.Root.Class)+off)))
	}
	if s.Bass != nil {
		found := false
		for _, t := range tones {
			if t == s.Bass.Class {
				found = true
				break
			}
		}
		if !found {
			tones = append(tones, s.Bass.Class)
		}
	}
	return tones
}

var symbolGrammar = regexp.MustCompile(`^([A-G](?:#+|b+)?)(.*?)(?:/([A-G](?:#+|b+)?))?$`)

// suffixes maps every accepted suffix to its template
var suffixes = buildSuffixIndex()

func buildSuffixIndex() map[string]*Template {
	index := make(map[string]*Template)
	for _, t := range templates {
		index[t.Symbol] = t
		for _, alias := range t.Aliases {
			index[alias] = t
		}
	}
	return index
}

// ParseSymbol parses a chord symbol into root, template and optional bass
func ParseSymbol(text string) (Symbol, error) {
	trimmed := strings.TrimSpace(text)
	m := symbolGrammar.FindStringSubmatch(trimmed)
	if m == nil {
		return Symbol{}, errors.New(errors.KindInvalidChord, "invalid chord symbol %q", text).With("symbol", text)
	}

	root, err := pitch.Parse(m[1])
	if err != nil {
		return Symbol{}, errors.Wrap(errors.KindInvalidChord, err, "invalid chord root in %q", text).With("symbol", text)
	}

	tmpl, ok := suffixes[m[2]]
	if !ok {
		return Symbol{}, errors.New(errors.KindInvalidChord, "unknown chord quality %q in %q", m[2], text).
			With("symbol", text)
	}

	sym := Symbol{
		Text:     trimmed,
		Root:     root,
		Template: tmpl,
	}

	if m[3] != "" {
		bass, err := pitch.Parse(m[3])
		if err != nil {
			return Symbol{}, errors.Wrap(errors.KindInvalidChord, err, "invalid bass note in %q", text).With("symbol", text)
		}
		sym.Bass = &bass
	}

	return sym, nil
}

// ParseSymbols parses a progression, failing on the first invalid symbol
func ParseSymbols(texts []string) ([]Symbol, error) {
	symbols := make([]Symbol, 0, len(texts))
	for i, text := range texts {
		sym, err := ParseSymbol(text)
		if err != nil {
			return nil, err.(*errors.Error).With("index", i)
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}
