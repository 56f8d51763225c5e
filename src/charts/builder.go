package charts

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/iafilius/SalesDashboard/src/metrics"
)

// Error kinds surfaced by Build. UnknownKey and MalformedSeries are shared with the store.
var (
	ErrTagUnknownKey        = metrics.ErrTagUnknownKey
	ErrTagMalformedSeries   = metrics.ErrTagMalformedSeries
	ErrTagEmptyDistribution = goerr.NewTag("empty_distribution")
)

// Reader is the read-only view of the metrics store that chart building needs.
type Reader interface {
	SeriesFor(c metrics.Category) ([]float64, error)
	MeanOf(c metrics.Category) (float64, error)
	SumOf(c metrics.Category) (float64, error)
	RegionTotal(r metrics.Region) (float64, error)
	SegmentTotal(s metrics.Segment) (float64, error)
	PeriodTotals() ([]float64, error)
}

var _ Reader = (*metrics.Store)(nil)

type buildFunc func(Reader) (*Description, error)

var builders = map[View]buildFunc{
	Trend:           buildTrend,
	CategoryAverage: buildCategoryAverage,
	RegionTotal:     buildRegionTotal,
	ProductShare:    buildProductShare,
	SegmentShare:    buildSegmentShare,
}

// Palettes, in declared key order.
var (
	categoryColors = []string{"#3498db", "#2ecc71", "#e67e22"}
	regionColors   = []string{"#e74c3c", "#3498db", "#2ecc71", "#f1c40f"}
	segmentColors  = []string{"#5DADE2", "#F1948A", "#A9CCE3"}
	bandColor      = "#add8e6"
)

// Build produces the chart for v from the store's current data. It never mutates r.
func Build(v View, r Reader) (*Description, error) {
	fn, ok := builders[v]
	if !ok {
		return nil, goerr.New("no chart builder for view", goerr.V("view", int(v)), goerr.T(ErrTagUnknownKey))
	}
	if r == nil {
		return nil, goerr.New("metrics reader is required", goerr.V("view", v.String()))
	}
	d, err := fn(r)
	if err != nil {
		return nil, err
	}
	d.ID = uuid.New()
	d.View = v
	return d, nil
}

func buildTrend(r Reader) (*Description, error) {
	d := &Description{
		Kind:   KindLine,
		Title:  "Monthly Sales Trend",
		XLabel: "Month",
		YLabel: "Sales ($)",
		Labels: append([]string(nil), metrics.Periods[:]...),
	}
	// PeriodTotals rejects any series not aligned with the periods, so the lines below are too
	band, err := r.PeriodTotals()
	if err != nil {
		return nil, err
	}
	for i, c := range metrics.Categories {
		vals, err := r.SeriesFor(c)
		if err != nil {
			return nil, err
		}
		d.Series = append(d.Series, Series{Name: string(c), Values: vals, Color: categoryColors[i]})
	}
	d.Series = append(d.Series, Series{Name: "Total", Values: band, Color: bandColor, Fill: true})
	return d, nil
}

func buildCategoryAverage(r Reader) (*Description, error) {
	d := &Description{
		Kind:   KindBar,
		Title:  "Average Sales by Product Category",
		YLabel: "Average Sales ($)",
		Colors: append([]string(nil), categoryColors...),
	}
	vals := make([]float64, 0, len(metrics.Categories))
	for _, c := range metrics.Categories {
		m, err := r.MeanOf(c)
		if err != nil {
			return nil, err
		}
		d.Labels = append(d.Labels, string(c))
		vals = append(vals, m)
	}
	d.Series = []Series{{Name: "Average", Values: vals}}
	return d, nil
}

func buildRegionTotal(r Reader) (*Description, error) {
	d := &Description{
		Kind:   KindBar,
		Title:  "Sales by Region",
		YLabel: "Total Sales ($)",
		Colors: append([]string(nil), regionColors...),
	}
	vals := make([]float64, 0, len(metrics.Regions))
	for _, g := range metrics.Regions {
		t, err := r.RegionTotal(g)
		if err != nil {
			return nil, err
		}
		d.Labels = append(d.Labels, string(g))
		vals = append(vals, t)
	}
	d.Series = []Series{{Name: "Total", Values: vals}}
	return d, nil
}

func buildProductShare(r Reader) (*Description, error) {
	labels := make([]string, 0, len(metrics.Categories))
	vals := make([]float64, 0, len(metrics.Categories))
	for _, c := range metrics.Categories {
		s, err := r.SumOf(c)
		if err != nil {
			return nil, err
		}
		labels = append(labels, string(c))
		vals = append(vals, s)
	}
	return share("Sales Distribution by Product Type", labels, vals, categoryColors)
}

func buildSegmentShare(r Reader) (*Description, error) {
	labels := make([]string, 0, len(metrics.Segments))
	vals := make([]float64, 0, len(metrics.Segments))
	for _, g := range metrics.Segments {
		t, err := r.SegmentTotal(g)
		if err != nil {
			return nil, err
		}
		labels = append(labels, string(g))
		vals = append(vals, t)
	}
	return share("Sales by Gender", labels, vals, segmentColors)
}

// share turns raw totals into percentages. Negative totals make proportions meaningless.
func share(title string, labels []string, vals []float64, colors []string) (*Description, error) {
	var total float64
	for i, v := range vals {
		if v < 0 {
			return nil, goerr.New("negative total in proportional chart",
				goerr.V("key", labels[i]), goerr.V("value", v), goerr.T(ErrTagMalformedSeries))
		}
		total += v
	}
	if total == 0 {
		return nil, goerr.New("all totals are zero", goerr.V("chart", title), goerr.T(ErrTagEmptyDistribution))
	}
	shares := make([]float64, len(vals))
	for i, v := range vals {
		shares[i] = v / total * 100
	}
	return &Description{
		Kind:   KindDonut,
		Title:  title,
		Labels: labels,
		Series: []Series{{Name: "Total", Values: vals}},
		Shares: shares,
		Colors: append([]string(nil), colors...),
	}, nil
}
