package genre

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-teoria/algorithms/harmony"
	"github.com/RyanBlaney/sonido-teoria/errors"
)

// Unknown is reported when no pattern of any genre matches
const Unknown = "unknown"

const (
	minWeight          = 1
	maxWeight          = 10
	minPatternsByGenre = 8
)

//go:embed patterns.yaml
var defaultTable []byte

// GenrePattern is a weighted roman-numeral sequence characteristic of a genre
type GenrePattern struct {
	Pattern     string   `yaml:"pattern" json:"pattern"`
	Genre       string   `yaml:"-" json:"genre"`
	Weight      int      `yaml:"weight" json:"weight"` // 1-10
	Description string   `yaml:"description" json:"description"`
	Examples    []string `yaml:"examples" json:"examples"`
	Era         string   `yaml:"era,omitempty" json:"era,omitempty"`

	tokens []string
}

// Genre groups the patterns of one genre
type Genre struct {
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description" json:"description"`
	Patterns    []*GenrePattern `yaml:"patterns" json:"patterns"`
}

// Catalog is an immutable genre pattern table
type Catalog struct {
	Genres []*Genre `yaml:"genres" json:"genres"`
}

var defaultCatalog = mustLoad(defaultTable)

func mustLoad(data []byte) *Catalog {
	c, err := Load(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in catalog
func Default() *Catalog {
	return defaultCatalog
}

// Load parses and validates a YAML pattern table
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.KindInternal, err, "failed to parse genre pattern table")
	}

	for _, g := range c.Genres {
		for _, p := range g.Patterns {
			p.Genre = g.Name
			p.tokens = harmony.Tokens(p.Pattern)
			if p.Examples == nil {
				p.Examples = []string{}
			}
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the table's range and size constraints
func (c *Catalog) Validate() error {
	if len(c.Genres) == 0 {
		return errors.New(errors.KindInternal, "genre pattern table is empty")
	}

	seen := make(map[string]bool, len(c.Genres))
	for _, g := range c.Genres {
		if g.Name == "" || g.Name == Unknown {
			return errors.New(errors.KindInternal, "invalid genre name %q", g.Name)
		}
		if seen[g.Name] {
			return errors.New(errors.KindInternal, "duplicate genre %q", g.Name)
		}
		seen[g.Name] = true

		if len(g.Patterns) < minPatternsByGenre {
			return errors.New(errors.KindInternal, "genre %q has %d patterns, need at least %d",
				g.Name, len(g.Patterns), minPatternsByGenre).With("genre", g.Name)
		}

		for _, p := range g.Patterns {
			if p.Pattern == "" {
				return errors.New(errors.KindInternal, "empty pattern in genre %q", g.Name).With("genre", g.Name)
			}
			for _, tok := range p.tokens {
				if tok == "" {
					return errors.New(errors.KindInternal, "malformed pattern %q", p.Pattern).
						With("genre", g.Name)
				}
			}
			if p.Weight < minWeight || p.Weight > maxWeight {
				return errors.New(errors.KindInternal, "pattern %q weight %d out of range [%d,%d]",
					p.Pattern, p.Weight, minWeight, maxWeight).With("genre", g.Name)
			}
		}
	}

	return nil
}

// Names returns the genre names in table order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Genres))
	for i, g := range c.Genres {
		names[i] = g.Name
	}
	return names
}

// Patterns returns a copy of one genre's patterns, or nil for an unknown genre
func (c *Catalog) Patterns(genre string) []GenrePattern {
	for _, g := range c.Genres {
		if g.Name != genre {
			continue
		}
		out := make([]GenrePattern, len(g.Patterns))
		for i, p := range g.Patterns {
			out[i] = *p
		}
		return out
	}
	return nil
}
