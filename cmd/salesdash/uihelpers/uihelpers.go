package uihelpers

import "math"

// ComputeChartDimensions clamps the chart pane size to something go-chart can lay out.
// Input: the pane size in pixels. Height never exceeds 3/4 of the width.
func ComputeChartDimensions(rawW, rawH int) (int, int) {
	w := rawW
	if w < 480 {
		w = 480
	}
	h := rawH
	if h < 320 {
		h = 320
	}
	if max := int(float32(w) * 0.75); h > max {
		h = max
	}
	return w, h
}

// ComputeSidebarWidth returns the sidebar width for a window width.
func ComputeSidebarWidth(winW float32) float32 {
	const compactBreakpoint = 900
	if winW < compactBreakpoint {
		return 160
	}
	return 200
}

// RevealTranslucency maps reveal progress in [0,1] to canvas translucency,
// fully transparent at 0 and opaque at 1.
func RevealTranslucency(progress float64) float64 {
	if math.IsNaN(progress) || progress <= 0 {
		return 1
	}
	if progress >= 1 {
		return 0
	}
	return 1 - progress
}
