package present

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/SalesDashboard/src/charts"
	"github.com/iafilius/SalesDashboard/src/metrics"
)

// recordingSurface logs every primitive and fails the test if the slot ever holds two charts.
type recordingSurface struct {
	t      *testing.T
	mu     sync.Mutex
	events []string
	slot   map[string]bool
	fail   []error // returned by the next attaches, in order
}

func newRecordingSurface(t *testing.T) *recordingSurface {
	return &recordingSurface{t: t, slot: map[string]bool{}}
}

func (r *recordingSurface) Attach(d *charts.Description) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.fail) > 0 {
		err := r.fail[0]
		r.fail = r.fail[1:]
		r.events = append(r.events, "attach-failed:"+d.View.String())
		return err
	}
	r.slot[d.ID.String()] = true
	if len(r.slot) > 1 {
		r.t.Errorf("surface holds %d charts", len(r.slot))
	}
	r.events = append(r.events, "attach:"+d.View.String())
	return nil
}

func (r *recordingSurface) Detach(d *charts.Description) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slot, d.ID.String())
	r.events = append(r.events, "detach:"+d.View.String())
}

func (r *recordingSurface) Refresh(progress float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf("refresh:%.1f", progress))
}

func (r *recordingSurface) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recordingSurface) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slot)
}

// manualScheduler holds the reveal until the test releases it.
type manualScheduler struct {
	steps int
	tick  func(int)
	done  func()
}

func (m *manualScheduler) Schedule(steps int, _ time.Duration, tick func(int), done func()) {
	m.steps, m.tick, m.done = steps, tick, done
}

func (m *manualScheduler) finish() {
	for i := 1; i <= m.steps; i++ {
		m.tick(i)
	}
	m.done()
}

func build(t *testing.T, v charts.View) *charts.Description {
	t.Helper()
	s, err := metrics.NewStore(metrics.RandomSource{Seed: 8}, metrics.DefaultBounds())
	require.NoError(t, err)
	d, err := charts.Build(v, s)
	require.NoError(t, err)
	return d
}

func TestSwap_OrderRetireMountReveal(t *testing.T) {
	surf := newRecordingSurface(t)
	p := New(surf, ImmediateScheduler{}, Reveal{Steps: 2, Delay: time.Millisecond})

	require.NoError(t, p.Swap(build(t, charts.Trend)))
	require.NoError(t, p.Swap(build(t, charts.RegionTotal)))

	assert.Equal(t, []string{
		"attach:trend", "refresh:0.5", "refresh:1.0",
		"detach:trend", "attach:region_total", "refresh:0.5", "refresh:1.0",
	}, surf.Events())
	assert.Equal(t, 1, surf.Size())
	assert.Equal(t, charts.RegionTotal, p.Mounted().View)
	assert.False(t, p.Busy())
}

func TestSwap_MountedSetAfterReveal(t *testing.T) {
	surf := newRecordingSurface(t)
	sched := &manualScheduler{}
	p := New(surf, sched, DefaultReveal())

	first := build(t, charts.Trend)
	require.NoError(t, p.Swap(first))
	assert.Nil(t, p.Mounted())
	assert.True(t, p.Busy())
	assert.Equal(t, 1, surf.Size())

	var revealed *charts.Description
	p.OnRevealed(func(d *charts.Description) { revealed = d })
	sched.finish()
	assert.Equal(t, first, p.Mounted())
	assert.Equal(t, first, revealed)
	assert.False(t, p.Busy())
}

func TestSwap_RejectsWhileRevealing(t *testing.T) {
	surf := newRecordingSurface(t)
	sched := &manualScheduler{}
	p := New(surf, sched, DefaultReveal())

	require.NoError(t, p.Swap(build(t, charts.Trend)))
	err := p.Swap(build(t, charts.ProductShare))
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, ErrTagSwapInProgress))
	// the rejected swap touched nothing
	assert.Equal(t, []string{"attach:trend"}, surf.Events())

	sched.finish()
	require.NoError(t, p.Swap(build(t, charts.ProductShare)))
	sched.finish()
	assert.Equal(t, charts.ProductShare, p.Mounted().View)
}

func TestSwap_AttachFailureRestoresPrevious(t *testing.T) {
	surf := newRecordingSurface(t)
	p := New(surf, ImmediateScheduler{}, Reveal{Steps: 1})

	first := build(t, charts.Trend)
	require.NoError(t, p.Swap(first))

	surf.fail = []error{fmt.Errorf("canvas gone")}
	err := p.Swap(build(t, charts.SegmentShare))
	require.Error(t, err)

	assert.Equal(t, first, p.Mounted())
	assert.False(t, p.Busy())
	assert.Equal(t, 1, surf.Size())
	events := surf.Events()
	assert.Equal(t, []string{"detach:trend", "attach-failed:segment_share", "attach:trend"}, events[len(events)-3:])
}

func TestSwap_FailedRestoreLeavesNothingMounted(t *testing.T) {
	surf := newRecordingSurface(t)
	p := New(surf, ImmediateScheduler{}, Reveal{Steps: 1})

	require.NoError(t, p.Swap(build(t, charts.Trend)))
	require.NotNil(t, p.Mounted())

	surf.fail = []error{fmt.Errorf("canvas gone"), fmt.Errorf("still gone")}
	require.Error(t, p.Swap(build(t, charts.RegionTotal)))

	assert.Nil(t, p.Mounted())
	assert.False(t, p.Busy())
	assert.Equal(t, 0, surf.Size())
	events := surf.Events()
	assert.Equal(t, []string{"detach:trend", "attach-failed:region_total", "attach-failed:trend"}, events[len(events)-3:])

	// the slot is empty, so the next swap mounts without a detach
	require.NoError(t, p.Swap(build(t, charts.ProductShare)))
	assert.Equal(t, charts.ProductShare, p.Mounted().View)
	assert.Equal(t, 1, surf.Size())
}

func TestSwap_Nil(t *testing.T) {
	p := New(newRecordingSurface(t), nil, DefaultReveal())
	require.Error(t, p.Swap(nil))
	assert.Nil(t, p.Mounted())
}

func TestTickerScheduler_RunsStepsInOrderThenDone(t *testing.T) {
	var mu sync.Mutex
	var got []int
	finished := make(chan struct{})
	dispatched := 0
	s := TickerScheduler{Dispatch: func(f func()) {
		mu.Lock()
		dispatched++
		mu.Unlock()
		f()
	}}
	start := time.Now()
	s.Schedule(3, 5*time.Millisecond,
		func(step int) { mu.Lock(); got = append(got, step); mu.Unlock() },
		func() { close(finished) },
	)
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("reveal never finished")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 4, dispatched)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestTickerScheduler_ZeroDelay(t *testing.T) {
	finished := make(chan int, 1)
	n := 0
	TickerScheduler{}.Schedule(4, 0, func(int) { n++ }, func() { finished <- n })
	select {
	case got := <-finished:
		assert.Equal(t, 4, got)
	case <-time.After(2 * time.Second):
		t.Fatal("reveal never finished")
	}
}

func TestReveal_Duration(t *testing.T) {
	assert.Equal(t, 300*time.Millisecond, DefaultReveal().Duration())
	assert.Equal(t, time.Duration(0), Reveal{Steps: -1, Delay: time.Second}.Duration())
}

func TestMemorySurface(t *testing.T) {
	m := NewMemorySurface(320, 200)
	p := New(m, ImmediateScheduler{}, Reveal{Steps: 3})
	for _, v := range charts.Views {
		require.NoError(t, p.Swap(build(t, v)))
		require.Len(t, m.Attached(), 1)
		assert.Equal(t, v, m.Attached()[0].View)
		require.NotNil(t, m.Image())
		assert.Equal(t, 320, m.Image().Bounds().Dx())
		assert.Equal(t, 1.0, m.Progress())
	}
	assert.Equal(t, 1, m.MaxAttached())
	assert.Equal(t, 3*len(charts.Views), m.Refreshes())

	d := build(t, charts.Trend)
	require.NoError(t, m.Attach(d))
	require.Error(t, m.Attach(d))
	m.Detach(d)
	m.Detach(m.Attached()[0])
	assert.Nil(t, m.Image())
}
