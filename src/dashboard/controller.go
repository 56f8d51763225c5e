package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/iafilius/SalesDashboard/src/charts"
	"github.com/iafilius/SalesDashboard/src/present"
)

// Swapper mounts a chart into the display slot.
type Swapper interface {
	Swap(d *charts.Description) error
}

var _ Swapper = (*present.Presenter)(nil)

// DefaultView is shown at startup.
const DefaultView = charts.Trend

// Controller tracks the selected view and drives build then swap for each selection.
type Controller struct {
	store charts.Reader
	slot  Swapper

	// sel serializes selections; mu guards the fields below and is never held
	// across Swap, so reveal callbacks may read them.
	sel        sync.Mutex
	mu         sync.Mutex
	current    charts.View
	selections int
}

func New(store charts.Reader, slot Swapper) *Controller {
	return &Controller{store: store, slot: slot, current: DefaultView}
}

// Start mounts the default view.
func (c *Controller) Start(ctx context.Context) error {
	return c.SelectView(ctx, DefaultView)
}

// SelectView builds v and hands it to the presenter. The current view only changes
// once the swap is accepted; on any error the previous view stays up.
// Reselecting the current view rebuilds it.
func (c *Controller) SelectView(ctx context.Context, v charts.View) error {
	logger := ctxlog.From(ctx).With(slog.String("view", v.String()))
	if c.slot == nil {
		return goerr.New("no presenter to mount into", goerr.V("view", v.String()))
	}

	c.sel.Lock()
	defer c.sel.Unlock()

	d, err := charts.Build(v, c.store)
	if err != nil {
		logger.Warn("chart build failed", slog.Any("error", err))
		return err
	}
	if err := c.slot.Swap(d); err != nil {
		logger.Warn("chart swap failed", slog.Any("error", err))
		return err
	}

	c.mu.Lock()
	c.current = v
	c.selections++
	c.mu.Unlock()
	logger.Debug("view selected", slog.String("chart_id", d.ID.String()))
	return nil
}

// Current returns the selected view, DefaultView before the first selection.
func (c *Controller) Current() charts.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Selections counts accepted selections.
func (c *Controller) Selections() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selections
}
