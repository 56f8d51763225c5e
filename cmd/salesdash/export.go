package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/SalesDashboard/src/charts"
	"github.com/iafilius/SalesDashboard/src/dashboard"
	"github.com/iafilius/SalesDashboard/src/logging"
	"github.com/iafilius/SalesDashboard/src/present"
)

// ExportOptions controls a headless export run.
type ExportOptions struct {
	OutDir string
	Width  int
	Height int
	Reveal present.Reveal
	// First is selected before the rest so a failing view does not leave the slot empty.
	First   charts.View
	Caption string
}

// RunExport drives every view through the controller against an in-memory surface and
// writes the mounted chart of each selection as <view>.png under OutDir.
// Views that fail to build are logged and skipped; write errors abort.
func RunExport(ctx context.Context, store charts.Reader, opts ExportOptions) ([]string, error) {
	defer logging.TimeTrack(time.Now(), "export")
	logger := ctxlog.From(ctx)

	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, goerr.New("export size must be positive", goerr.V("width", opts.Width), goerr.V("height", opts.Height))
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory", goerr.V("dir", opts.OutDir))
	}

	surface := present.NewMemorySurface(opts.Width, opts.Height)
	ctrl := dashboard.New(store, present.New(surface, present.ImmediateScheduler{}, opts.Reveal))

	order := []charts.View{opts.First}
	for _, v := range charts.Views {
		if v != opts.First {
			order = append(order, v)
		}
	}

	var written []string
	for _, v := range order {
		if err := ctrl.SelectView(ctx, v); err != nil {
			logger.Warn("skipping view", slog.String("view", v.String()), slog.Any("error", err))
			continue
		}
		img := surface.Image()
		if img == nil {
			continue
		}
		caption := strings.TrimSpace(opts.Caption + " view=" + v.String())
		img = drawCaption(img, caption)

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return written, goerr.Wrap(err, "failed to encode chart", goerr.V("view", v.String()))
		}
		outPath := filepath.Join(opts.OutDir, v.String()+".png")
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return written, goerr.Wrap(err, "failed to write chart", goerr.V("path", outPath))
		}
		written = append(written, outPath)
	}
	if len(written) == 0 {
		return nil, goerr.New("no chart could be rendered", goerr.V("dir", opts.OutDir))
	}
	return written, nil
}

// drawCaption stamps text near the bottom-left corner on a dark backing strip.
func drawCaption(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6

	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)

	shadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
	shadow.DrawString(text)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}

func seedCaption(seed int) string {
	if seed == 0 {
		return "seed=random"
	}
	return fmt.Sprintf("seed=%d", seed)
}
