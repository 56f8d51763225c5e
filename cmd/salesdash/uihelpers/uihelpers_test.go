package uihelpers

import (
	"math"
	"testing"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		inW, inH     int
		wantW, wantH int
	}{
		{100, 100, 480, 320},
		{1100, 700, 1100, 700},
		{800, 900, 800, 600},
		{479, 2000, 480, 360},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.inW, c.inH)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("input %dx%d => %dx%d want %dx%d", c.inW, c.inH, w, h, c.wantW, c.wantH)
		}
	}
}

func TestComputeSidebarWidth(t *testing.T) {
	if got := ComputeSidebarWidth(1300); got != 200 {
		t.Fatalf("full width sidebar %v", got)
	}
	if got := ComputeSidebarWidth(899); got != 160 {
		t.Fatalf("compact sidebar %v", got)
	}
}

func TestRevealTranslucency(t *testing.T) {
	if RevealTranslucency(0) != 1 || RevealTranslucency(math.NaN()) != 1 {
		t.Fatalf("progress 0 must be invisible")
	}
	if RevealTranslucency(1) != 0 || RevealTranslucency(1.5) != 0 {
		t.Fatalf("progress 1 must be opaque")
	}
	if got := RevealTranslucency(0.3); math.Abs(got-0.7) > 1e-9 {
		t.Fatalf("progress 0.3 => %v", got)
	}
}
