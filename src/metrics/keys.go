package metrics

import (
	"github.com/m-mizutani/goerr/v2"
)

// Error kinds raised by store lookups. Chart building propagates them untouched.
var (
	ErrTagUnknownKey      = goerr.NewTag("unknown_key")
	ErrTagMalformedSeries = goerr.NewTag("malformed_series")
)

// Periods is the x-axis domain of every time-series view.
var Periods = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// PeriodCount is the number of points every category series must carry.
const PeriodCount = len(Periods)

// Category is a product category.
type Category string

const (
	Electronics Category = "Electronics"
	Clothing    Category = "Clothing"
	Furniture   Category = "Furniture"
)

// Categories in declared order. Charts never re-sort by value.
var Categories = []Category{Electronics, Clothing, Furniture}

// Region is a sales region.
type Region string

const (
	North Region = "North"
	South Region = "South"
	East  Region = "East"
	West  Region = "West"
)

var Regions = []Region{North, South, East, West}

// Segment is a customer segment.
type Segment string

const (
	Male   Segment = "Male"
	Female Segment = "Female"
	Other  Segment = "Other"
)

var Segments = []Segment{Male, Female, Other}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

func (r Region) Valid() bool {
	for _, k := range Regions {
		if k == r {
			return true
		}
	}
	return false
}

func (s Segment) Valid() bool {
	for _, k := range Segments {
		if k == s {
			return true
		}
	}
	return false
}
