package metrics

import (
	"math/rand/v2"
	"time"
)

// Source produces the raw records a Store is built from.
type Source interface {
	Generate(b Bounds) Snapshot
}

// Snapshot is a plain copy of the raw records. It doubles as a Source that
// ignores the bounds, which is how real data is plugged into a Store.
type Snapshot struct {
	Series   map[Category][]float64 `yaml:"series" json:"series"`
	Regions  map[Region]float64     `yaml:"regions" json:"regions"`
	Segments map[Segment]float64    `yaml:"segments" json:"segments"`
}

// Generate returns a deep copy of s.
func (s Snapshot) Generate(Bounds) Snapshot { return s.clone() }

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Series:   make(map[Category][]float64, len(s.Series)),
		Regions:  make(map[Region]float64, len(s.Regions)),
		Segments: make(map[Segment]float64, len(s.Segments)),
	}
	for k, v := range s.Series {
		out.Series[k] = append([]float64(nil), v...)
	}
	for k, v := range s.Regions {
		out.Regions[k] = v
	}
	for k, v := range s.Segments {
		out.Segments[k] = v
	}
	return out
}

// RandomSource draws uniform integers from each bound. Seed 0 picks a time based seed,
// so two runs only repeat their data when a seed is given.
type RandomSource struct {
	Seed uint64
}

func (r RandomSource) Generate(b Bounds) Snapshot {
	seed := r.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	draw := func(rg Range) float64 {
		return float64(rg.Min + rng.IntN(rg.Max-rg.Min))
	}

	s := Snapshot{
		Series:   make(map[Category][]float64, len(Categories)),
		Regions:  make(map[Region]float64, len(Regions)),
		Segments: make(map[Segment]float64, len(Segments)),
	}
	for _, c := range Categories {
		vals := make([]float64, PeriodCount)
		for i := range vals {
			vals[i] = draw(b.Categories[c])
		}
		s.Series[c] = vals
	}
	for _, r := range Regions {
		s.Regions[r] = draw(b.Region)
	}
	for _, g := range Segments {
		s.Segments[g] = draw(b.Segment)
	}
	return s
}
