package metrics

import (
	"github.com/m-mizutani/goerr/v2"
)

// Store holds the once-generated sales records. Nothing mutates it after construction,
// so it is safe to share between goroutines without locking.
type Store struct {
	data Snapshot
}

// NewStore validates b and builds a store from whatever src generates for it.
func NewStore(src Source, b Bounds) (*Store, error) {
	if src == nil {
		return nil, goerr.New("metrics source is required")
	}
	if err := b.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid generation bounds")
	}
	return &Store{data: src.Generate(b).clone()}, nil
}

// FromSnapshot wraps existing records without checking them; lookups report
// malformed data when it is read.
func FromSnapshot(s Snapshot) *Store {
	return &Store{data: s.clone()}
}

// Snapshot returns a deep copy of the raw records.
func (s *Store) Snapshot() Snapshot { return s.data.clone() }

// SeriesFor returns a copy of the 12 period values for c.
func (s *Store) SeriesFor(c Category) ([]float64, error) {
	if !c.Valid() {
		return nil, goerr.New("unknown category", goerr.V("category", c), goerr.T(ErrTagUnknownKey))
	}
	vals, ok := s.data.Series[c]
	if !ok {
		return nil, goerr.New("category has no series", goerr.V("category", c), goerr.T(ErrTagMalformedSeries))
	}
	return append([]float64(nil), vals...), nil
}

// SumOf is the arithmetic sum of the series for c.
func (s *Store) SumOf(c Category) (float64, error) {
	vals, err := s.SeriesFor(c)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum, nil
}

// MeanOf is the arithmetic mean of the series for c. An empty series has no mean.
func (s *Store) MeanOf(c Category) (float64, error) {
	vals, err := s.SeriesFor(c)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, goerr.New("cannot average an empty series", goerr.V("category", c), goerr.T(ErrTagMalformedSeries))
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals)), nil
}

func (s *Store) RegionTotal(r Region) (float64, error) {
	if !r.Valid() {
		return 0, goerr.New("unknown region", goerr.V("region", r), goerr.T(ErrTagUnknownKey))
	}
	v, ok := s.data.Regions[r]
	if !ok {
		return 0, goerr.New("region has no total", goerr.V("region", r), goerr.T(ErrTagMalformedSeries))
	}
	return v, nil
}

func (s *Store) SegmentTotal(g Segment) (float64, error) {
	if !g.Valid() {
		return 0, goerr.New("unknown segment", goerr.V("segment", g), goerr.T(ErrTagUnknownKey))
	}
	v, ok := s.data.Segments[g]
	if !ok {
		return 0, goerr.New("segment has no total", goerr.V("segment", g), goerr.T(ErrTagMalformedSeries))
	}
	return v, nil
}

// PeriodTotals sums the categories period by period. Every series must carry exactly
// PeriodCount values; a short or long one is reported instead of truncated.
func (s *Store) PeriodTotals() ([]float64, error) {
	out := make([]float64, PeriodCount)
	for _, c := range Categories {
		vals, err := s.SeriesFor(c)
		if err != nil {
			return nil, err
		}
		if len(vals) != PeriodCount {
			return nil, goerr.New("series is not aligned with periods",
				goerr.V("category", c), goerr.V("points", len(vals)), goerr.T(ErrTagMalformedSeries))
		}
		for i, v := range vals {
			out[i] += v
		}
	}
	return out, nil
}
