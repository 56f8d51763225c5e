package charts

import (
	"reflect"

	"github.com/google/uuid"
)

// Kind selects how a Description is drawn.
type Kind int

const (
	KindLine Kind = iota
	KindBar
	KindDonut
)

// Series is one named run of values aligned with Description.Labels.
// Fill marks the band drawn under the line instead of a marked line.
type Series struct {
	Name   string
	Values []float64
	Color  string
	Fill   bool
}

// Description is a render-ready chart for one view. Every Build returns a new
// instance with its own ID; the presenter owns it from then on.
type Description struct {
	ID     uuid.UUID
	View   View
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	// Labels are the category, region or segment names, or the period names for KindLine.
	Labels []string
	Series []Series
	// Shares holds the percentages of a KindDonut chart, aligned with Labels. They sum to 100.
	Shares []float64
	// Colors are per-label colours for bar and donut charts.
	Colors []string
}

// Equivalent reports whether d and o describe the same chart, ignoring instance identity.
func (d *Description) Equivalent(o *Description) bool {
	if d == nil || o == nil {
		return d == o
	}
	a, b := *d, *o
	a.ID, b.ID = uuid.Nil, uuid.Nil
	return reflect.DeepEqual(a, b)
}
