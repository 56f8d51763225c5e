package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/m-mizutani/goerr/v2"

	"github.com/iafilius/SalesDashboard/src/metrics"
)

// WriteSummary prints the aggregates each chart is built from. With raw set the
// underlying records are dumped first.
func WriteSummary(w io.Writer, s *metrics.Store, raw bool) error {
	if s == nil {
		return goerr.New("metrics store is required")
	}
	if raw {
		cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
		cfg.Fdump(w, s.Snapshot())
	}
	totals, err := s.PeriodTotals()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Categories:\n")
	for _, c := range metrics.Categories {
		sum, err := s.SumOf(c)
		if err != nil {
			return err
		}
		mean, err := s.MeanOf(c)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-12s sum=%10.0f mean=%9.1f\n", c, sum, mean)
	}

	fmt.Fprintf(w, "Monthly total:\n")
	for i, p := range metrics.Periods {
		fmt.Fprintf(w, "  %s %10.0f\n", p, totals[i])
	}

	fmt.Fprintf(w, "Regions:\n")
	for _, r := range metrics.Regions {
		v, err := s.RegionTotal(r)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-12s %10.0f\n", r, v)
	}

	fmt.Fprintf(w, "Segments:\n")
	for _, g := range metrics.Segments {
		v, err := s.SegmentTotal(g)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-12s %10.0f\n", g, v)
	}
	return nil
}
