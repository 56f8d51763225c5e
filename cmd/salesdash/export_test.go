package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/SalesDashboard/src/charts"
	"github.com/iafilius/SalesDashboard/src/metrics"
	"github.com/iafilius/SalesDashboard/src/present"
)

func seeded(t *testing.T) *metrics.Store {
	t.Helper()
	s, err := metrics.NewStore(metrics.RandomSource{Seed: 3}, metrics.DefaultBounds())
	require.NoError(t, err)
	return s
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	return img
}

func TestRunExport_WritesEveryView(t *testing.T) {
	out := t.TempDir()
	written, err := RunExport(context.Background(), seeded(t), ExportOptions{
		OutDir:  out,
		Width:   640,
		Height:  400,
		Reveal:  present.Reveal{Steps: 2},
		First:   charts.RegionTotal,
		Caption: seedCaption(3),
	})
	require.NoError(t, err)
	require.Len(t, written, len(charts.Views))
	assert.Equal(t, filepath.Join(out, "region_total.png"), written[0])

	for _, v := range charts.Views {
		img := decodePNG(t, filepath.Join(out, v.String()+".png"))
		assert.Equal(t, 640, img.Bounds().Dx())
		assert.Equal(t, 400, img.Bounds().Dy())
	}
}

func TestRunExport_SkipsFailingView(t *testing.T) {
	snap := seeded(t).Snapshot()
	for g := range snap.Segments {
		snap.Segments[g] = 0
	}
	out := t.TempDir()
	written, err := RunExport(context.Background(), metrics.FromSnapshot(snap), ExportOptions{
		OutDir: out, Width: 320, Height: 240, Reveal: present.Reveal{Steps: 1}, First: charts.Trend,
	})
	require.NoError(t, err)
	assert.Len(t, written, len(charts.Views)-1)
	_, err = os.Stat(filepath.Join(out, "segment_share.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunExport_BadSize(t *testing.T) {
	_, err := RunExport(context.Background(), seeded(t), ExportOptions{OutDir: t.TempDir()})
	require.Error(t, err)
}

func TestDrawCaption(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 200; x++ {
			src.Set(x, y, color.White)
		}
	}
	out := drawCaption(src, "seed=3 view=trend")
	require.NotNil(t, out)
	// backing strip darkens the bottom-left corner
	r, g, b, _ := out.At(3, 40).RGBA()
	assert.Less(t, r+g+b, uint32(3*0xffff))
	// untouched elsewhere
	r, _, _, _ = out.At(190, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)

	assert.Equal(t, image.Image(src), drawCaption(src, "  "))
}

func TestSeedCaption(t *testing.T) {
	assert.Equal(t, "seed=random", seedCaption(0))
	assert.Equal(t, "seed=12", seedCaption(12))
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, seeded(t), false))
	out := buf.String()
	for _, want := range []string{"Categories:", "Electronics", "Furniture", "Jan", "Dec", "Regions:", "West", "Segments:", "Other"} {
		assert.Contains(t, out, want)
	}
	// declared order, never sorted
	assert.Less(t, strings.Index(out, "North"), strings.Index(out, "South"))
	assert.Less(t, strings.Index(out, "South"), strings.Index(out, "East"))

	require.Error(t, WriteSummary(&buf, nil, false))
}

func TestWriteSummary_Raw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, seeded(t), true))
	out := buf.String()
	assert.Contains(t, out, "metrics.Snapshot")
	assert.Contains(t, out, "Series")
	assert.Less(t, strings.Index(out, "Series"), strings.Index(out, "Categories:"))
}
