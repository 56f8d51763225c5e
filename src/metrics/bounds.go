package metrics

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Range is a half-open integer interval [Min, Max).
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r Range) validate(field string) error {
	if r.Min < 0 {
		return goerr.New("range minimum must not be negative", goerr.V("field", field), goerr.V("min", r.Min))
	}
	if r.Max <= r.Min {
		return goerr.New("range maximum must exceed minimum",
			goerr.V("field", field), goerr.V("min", r.Min), goerr.V("max", r.Max))
	}
	return nil
}

// Bounds is the generation table for synthetic data.
type Bounds struct {
	Categories map[Category]Range `yaml:"categories"`
	Region     Range              `yaml:"region"`
	Segment    Range              `yaml:"segment"`
}

// DefaultBounds returns the stock generation table.
func DefaultBounds() Bounds {
	return Bounds{
		Categories: map[Category]Range{
			Electronics: {Min: 20000, Max: 50000},
			Clothing:    {Min: 15000, Max: 40000},
			Furniture:   {Min: 10000, Max: 30000},
		},
		Region:  Range{Min: 60000, Max: 120000},
		Segment: Range{Min: 40000, Max: 90000},
	}
}

// Validate checks that every category has a usable range and no unknown keys are present.
func (b Bounds) Validate() error {
	for c := range b.Categories {
		if !c.Valid() {
			return goerr.New("unknown category in bounds", goerr.V("category", c), goerr.T(ErrTagUnknownKey))
		}
	}
	for _, c := range Categories {
		r, ok := b.Categories[c]
		if !ok {
			return goerr.New("missing category bounds", goerr.V("category", c))
		}
		if err := r.validate(string(c)); err != nil {
			return err
		}
	}
	if err := b.Region.validate("region"); err != nil {
		return err
	}
	return b.Segment.validate("segment")
}

// LoadBounds reads a YAML bounds file. Entries it omits keep their default ranges.
func LoadBounds(path string) (Bounds, error) {
	b := DefaultBounds()
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Bounds{}, goerr.Wrap(err, "failed to read bounds file", goerr.V("path", path))
	}

	var raw Bounds
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Bounds{}, goerr.Wrap(err, "failed to parse bounds file", goerr.V("path", path))
	}
	for c, r := range raw.Categories {
		b.Categories[c] = r
	}
	if raw.Region != (Range{}) {
		b.Region = raw.Region
	}
	if raw.Segment != (Range{}) {
		b.Segment = raw.Segment
	}
	if err := b.Validate(); err != nil {
		return Bounds{}, goerr.Wrap(err, "invalid bounds file", goerr.V("path", path))
	}
	return b, nil
}
