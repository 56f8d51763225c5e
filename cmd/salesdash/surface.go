package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/iafilius/SalesDashboard/cmd/salesdash/uihelpers"
	"github.com/iafilius/SalesDashboard/src/charts"
)

// fyneSurface is the chart slot inside the window: a stack container that holds the
// canvas image of the attached chart. All methods run on the Fyne UI thread.
type fyneSurface struct {
	slot   *fyne.Container
	size   func() (int, int)
	images map[uuid.UUID]*canvas.Image
	shown  *canvas.Image
}

func newFyneSurface(slot *fyne.Container, size func() (int, int)) *fyneSurface {
	return &fyneSurface{slot: slot, size: size, images: map[uuid.UUID]*canvas.Image{}}
}

func (s *fyneSurface) Attach(d *charts.Description) error {
	if _, ok := s.images[d.ID]; ok {
		return goerr.New("chart already attached", goerr.V("id", d.ID.String()))
	}
	w, h := s.size()
	img, err := d.Image(w, h)
	if err != nil {
		return err
	}
	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillContain
	ci.Translucency = uihelpers.RevealTranslucency(0)
	s.slot.Add(ci)
	s.images[d.ID] = ci
	s.shown = ci
	return nil
}

func (s *fyneSurface) Detach(d *charts.Description) {
	ci, ok := s.images[d.ID]
	if !ok {
		return
	}
	s.slot.Remove(ci)
	delete(s.images, d.ID)
	if s.shown == ci {
		s.shown = nil
	}
}

func (s *fyneSurface) Refresh(progress float64) {
	if s.shown == nil {
		return
	}
	s.shown.Translucency = uihelpers.RevealTranslucency(progress)
	s.shown.Refresh()
}

// Redraw re-renders the attached chart at the current pane size without a swap.
func (s *fyneSurface) Redraw(d *charts.Description) {
	if d == nil {
		return
	}
	ci, ok := s.images[d.ID]
	if !ok {
		return
	}
	w, h := s.size()
	img, err := d.Image(w, h)
	if err != nil {
		return
	}
	ci.Image = img
	ci.Refresh()
}
