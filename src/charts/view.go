package charts

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/iafilius/SalesDashboard/src/metrics"
)

// View identifies one selectable chart.
type View int

const (
	Trend View = iota
	CategoryAverage
	RegionTotal
	ProductShare
	SegmentShare
)

// Views lists every view in sidebar order.
var Views = []View{Trend, CategoryAverage, RegionTotal, ProductShare, SegmentShare}

var viewNames = map[View]string{
	Trend:           "trend",
	CategoryAverage: "category_average",
	RegionTotal:     "region_total",
	ProductShare:    "product_share",
	SegmentShare:    "segment_share",
}

// sidebar captions
var viewLabels = map[View]string{
	Trend:           "Sales Trend",
	CategoryAverage: "Category Sales",
	RegionTotal:     "Region Sales",
	ProductShare:    "Product Pie",
	SegmentShare:    "Gender Pie",
}

func (v View) String() string {
	if n, ok := viewNames[v]; ok {
		return n
	}
	return "unknown"
}

// Label is the caption of the sidebar button that selects v.
func (v View) Label() string { return viewLabels[v] }

// Valid reports whether v is one of Views.
func (v View) Valid() bool {
	_, ok := viewNames[v]
	return ok
}

// ParseView accepts the String() form, case-insensitive, with '-' or ' ' for '_'.
func ParseView(s string) (View, error) {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	for v, n := range viewNames {
		if n == key {
			return v, nil
		}
	}
	return 0, goerr.New("unknown view", goerr.V("view", s), goerr.T(metrics.ErrTagUnknownKey))
}
