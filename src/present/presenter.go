package present

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/iafilius/SalesDashboard/src/charts"
	"github.com/iafilius/SalesDashboard/src/logging"
)

// ErrTagSwapInProgress marks a swap rejected because a reveal is still running.
var ErrTagSwapInProgress = goerr.NewTag("swap_in_progress")

// Surface is the host display slot. Attach and Detach are only ever called in
// detach-then-attach pairs by the presenter, so the slot holds at most one chart.
// Refresh redraws with the reveal progress in (0, 1].
type Surface interface {
	Attach(d *charts.Description) error
	Detach(d *charts.Description)
	Refresh(progress float64)
}

// Presenter owns the single rendering slot.
type Presenter struct {
	surface Surface
	sched   Scheduler
	reveal  Reveal

	mu       sync.Mutex
	attached *charts.Description
	mounted  *charts.Description
	busy     bool
	revealed func(*charts.Description)
}

func New(surface Surface, sched Scheduler, reveal Reveal) *Presenter {
	if sched == nil {
		sched = ImmediateScheduler{}
	}
	if reveal.Steps < 0 {
		reveal.Steps = 0
	}
	return &Presenter{surface: surface, sched: sched, reveal: reveal}
}

// OnRevealed registers fn to run after each reveal finishes.
func (p *Presenter) OnRevealed(fn func(*charts.Description)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revealed = fn
}

// Mounted is the chart of the last completed swap, nil before the first one.
func (p *Presenter) Mounted() *charts.Description {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mounted
}

// Busy reports whether a reveal is still running.
func (p *Presenter) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// Swap retires the current chart, mounts next and starts the reveal. The swap stays
// open until the reveal is done; a Swap arriving before that is rejected, so two swaps
// never interleave. If next cannot be attached the previous chart goes back up.
func (p *Presenter) Swap(next *charts.Description) error {
	if next == nil {
		return goerr.New("cannot mount an empty chart")
	}

	p.mu.Lock()
	if p.busy {
		cur := p.attached
		p.mu.Unlock()
		return goerr.New("a chart swap is still running",
			goerr.V("requested", next.View.String()), goerr.V("revealing", viewName(cur)), goerr.T(ErrTagSwapInProgress))
	}
	p.busy = true
	prev := p.attached
	if prev != nil {
		p.surface.Detach(prev)
	}
	if err := p.surface.Attach(next); err != nil {
		if prev != nil {
			if rerr := p.surface.Attach(prev); rerr != nil {
				logging.Errorf("re-attach of %s failed: %v", prev.View, rerr)
				p.attached = nil
				p.mounted = nil
			}
		}
		p.busy = false
		p.mu.Unlock()
		return goerr.Wrap(err, "failed to attach chart", goerr.V("view", next.View.String()))
	}
	p.attached = next
	steps := p.reveal.Steps
	p.mu.Unlock()

	logging.Debugf("mounted %s (%s), revealing in %d steps over %s", next.View, next.ID, steps, p.reveal.Duration())
	p.sched.Schedule(steps, p.reveal.Delay,
		func(step int) { p.surface.Refresh(float64(step) / float64(steps)) },
		func() { p.finish(next) },
	)
	return nil
}

func (p *Presenter) finish(d *charts.Description) {
	p.mu.Lock()
	p.mounted = d
	p.busy = false
	cb := p.revealed
	p.mu.Unlock()
	if cb != nil {
		cb(d)
	}
}

func viewName(d *charts.Description) string {
	if d == nil {
		return ""
	}
	return d.View.String()
}
