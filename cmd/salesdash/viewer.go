package main

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"log/slog"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/m-mizutani/ctxlog"

	"github.com/iafilius/SalesDashboard/cmd/salesdash/uihelpers"
	"github.com/iafilius/SalesDashboard/src/charts"
	"github.com/iafilius/SalesDashboard/src/config"
	"github.com/iafilius/SalesDashboard/src/dashboard"
	"github.com/iafilius/SalesDashboard/src/present"
)

var themeOptions = []string{"Light", "Dark"}

type uiState struct {
	ctx    context.Context
	app    fyne.App
	window fyne.Window

	ctrl      *dashboard.Controller
	presenter *present.Presenter
	surface   *fyneSurface

	themeName string

	// widgets
	slot    *fyne.Container
	status  *widget.Label
	sidebar *fyne.Container
}

// variantTheme pins the default theme to one variant.
type variantTheme struct {
	variant fyne.ThemeVariant
}

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, t.variant)
}

func (t *variantTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *variantTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *variantTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

func themeFor(name string) fyne.Theme {
	if name == "light" || name == "Light" {
		return &variantTheme{variant: theme.VariantLight}
	}
	return &variantTheme{variant: theme.VariantDark}
}

func runViewer(ctx context.Context, data *config.Data, display *config.Display) error {
	logger := ctxlog.From(ctx)
	store, err := data.Store()
	if err != nil {
		return err
	}

	a := app.NewWithID("com.salesdash.viewer")
	w := a.NewWindow("Sales Dashboard")
	w.Resize(fyne.NewSize(1300, 780))

	state := &uiState{
		ctx:       ctx,
		app:       a,
		window:    w,
		themeName: display.PreferredTheme(a.Preferences().String("theme")),
	}
	a.Settings().SetTheme(themeFor(state.themeName))

	state.slot = container.NewStack()
	state.surface = newFyneSurface(state.slot, func() (int, int) { return chartSize(state, display) })
	state.presenter = present.New(state.surface, present.TickerScheduler{Dispatch: fyne.Do}, display.Reveal())
	state.ctrl = dashboard.New(store, state.presenter)
	state.status = widget.NewLabel("")
	state.presenter.OnRevealed(func(d *charts.Description) {
		state.status.SetText(fmt.Sprintf("%s (%d selections)", d.View.Label(), state.ctrl.Selections()))
	})

	state.sidebar = buildSidebar(state)
	content := container.NewBorder(nil, state.status, state.sidebar, nil, state.slot)
	w.SetContent(content)
	buildMenus(state)

	// Redraw the mounted chart when the window is resized so it scales with the pane
	done := make(chan struct{})
	w.SetOnClosed(func() { close(done) })
	go watchResize(state, done)

	if err := state.ctrl.Start(ctx); err != nil {
		logger.Error("initial view failed", slog.String("view", dashboard.DefaultView.String()), slog.Any("error", err))
		return err
	}

	w.ShowAndRun()
	return nil
}

func buildSidebar(state *uiState) *fyne.Container {
	header := widget.NewLabelWithStyle("Sales Charts", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	items := []fyne.CanvasObject{header, widget.NewSeparator()}
	for _, v := range charts.Views {
		v := v
		items = append(items, widget.NewButton(v.Label(), func() { selectView(state, v) }))
	}

	themeSel := widget.NewSelect(themeOptions, nil)
	if state.themeName == "light" || state.themeName == "Light" {
		themeSel.Selected = "Light"
	} else {
		themeSel.Selected = "Dark"
	}
	themeSel.OnChanged = func(s string) {
		state.themeName = map[string]string{"Light": "light", "Dark": "dark"}[s]
		state.app.Settings().SetTheme(themeFor(state.themeName))
		state.app.Preferences().SetString("theme", state.themeName)
	}

	footer := widget.NewLabelWithStyle("© 2025 Sales Analytics", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	top := container.NewVBox(items...)
	bottom := container.NewVBox(widget.NewLabel("Theme:"), themeSel, widget.NewSeparator(), footer)
	return container.NewBorder(top, bottom, nil, nil)
}

// selectView runs on the UI thread. A rejected selection leaves the current chart up
// and explains why in the status line.
func selectView(state *uiState, v charts.View) {
	if err := state.ctrl.SelectView(state.ctx, v); err != nil {
		state.status.SetText(fmt.Sprintf("Could not show %s: %v", v.Label(), err))
	}
}

func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var viewItems []*fyne.MenuItem
	for _, v := range charts.Views {
		v := v
		viewItems = append(viewItems, fyne.NewMenuItem(v.Label(), func() { selectView(state, v) }))
	}
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export Chart…", func() { exportChartPNG(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, fyne.NewMenu("View", viewItems...)))

	canv := state.window.Canvas()
	if canv == nil {
		return
	}
	keys := []fyne.KeyName{fyne.Key1, fyne.Key2, fyne.Key3, fyne.Key4, fyne.Key5}
	for i, v := range charts.Views {
		v := v
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: keys[i], Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { selectView(state, v) })
	}
	canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyE, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { exportChartPNG(state) })
	canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { state.window.Close() })
}

// chartSize is the pane size left of the sidebar, or the configured size before layout.
func chartSize(state *uiState, display *config.Display) (int, int) {
	if state.window == nil || state.window.Canvas() == nil {
		return display.Width, display.Height
	}
	sz := state.window.Canvas().Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		return display.Width, display.Height
	}
	w := sz.Width - uihelpers.ComputeSidebarWidth(sz.Width)
	h := sz.Height - 60
	return uihelpers.ComputeChartDimensions(int(w), int(h))
}

func watchResize(state *uiState, done <-chan struct{}) {
	prev := fyne.NewSize(0, 0)
	t := time.NewTicker(300 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			c := state.window.Canvas()
			if c == nil {
				continue
			}
			sz := c.Size()
			if sz == prev {
				continue
			}
			first := prev.Width == 0
			prev = sz
			if first {
				continue
			}
			fyne.Do(func() {
				if !state.presenter.Busy() {
					state.surface.Redraw(state.presenter.Mounted())
				}
			})
		}
	}
}

func exportChartPNG(state *uiState) {
	d := state.presenter.Mounted()
	if d == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		w, h := chartSize(state, &config.Display{Width: 1000, Height: 600})
		img, err := d.Image(w, h)
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		if err := png.Encode(wc, img); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(d.View.String() + ".png")
	fs.Show()
}
