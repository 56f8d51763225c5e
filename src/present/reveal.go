package present

import "time"

// Reveal is the bounded fade-in run after every mount: Steps refreshes, Delay apart.
type Reveal struct {
	Steps int
	Delay time.Duration
}

// DefaultReveal is ten refreshes 30ms apart.
func DefaultReveal() Reveal {
	return Reveal{Steps: 10, Delay: 30 * time.Millisecond}
}

// Duration is the total time the reveal keeps a swap open.
func (r Reveal) Duration() time.Duration {
	if r.Steps <= 0 {
		return 0
	}
	return time.Duration(r.Steps) * r.Delay
}

// Scheduler runs tick(1..steps) spaced by every, then done. Implementations must
// call tick and done in order and never concurrently with each other.
type Scheduler interface {
	Schedule(steps int, every time.Duration, tick func(step int), done func())
}

// ImmediateScheduler runs every step inline. Used headless, where nothing is watching.
type ImmediateScheduler struct{}

func (ImmediateScheduler) Schedule(steps int, _ time.Duration, tick func(int), done func()) {
	for i := 1; i <= steps; i++ {
		tick(i)
	}
	done()
}

// TickerScheduler paces steps with a time.Ticker on its own goroutine and hands each
// callback to Dispatch, which must run it on the UI thread (fyne.Do in the viewer).
// The calling goroutine returns immediately, so the event loop keeps running.
type TickerScheduler struct {
	Dispatch func(func())
}

func (s TickerScheduler) Schedule(steps int, every time.Duration, tick func(int), done func()) {
	dispatch := s.Dispatch
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	go func() {
		var c <-chan time.Time
		if every > 0 {
			t := time.NewTicker(every)
			defer t.Stop()
			c = t.C
		}
		for i := 1; i <= steps; i++ {
			if c != nil {
				<-c
			}
			step := i
			dispatch(func() { tick(step) })
		}
		dispatch(done)
	}()
}
