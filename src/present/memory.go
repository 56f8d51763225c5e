package present

import (
	"image"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/iafilius/SalesDashboard/src/charts"
)

// MemorySurface renders attached charts into an in-memory image. It backs the
// headless export and keeps enough bookkeeping for tests to check slot occupancy.
type MemorySurface struct {
	Width  int
	Height int

	mu        sync.Mutex
	attached  []*charts.Description
	img       image.Image
	refreshes int
	progress  float64
	// maxAttached is the highest occupancy ever observed.
	maxAttached int
}

func NewMemorySurface(width, height int) *MemorySurface {
	return &MemorySurface{Width: width, Height: height}
}

func (m *MemorySurface) Attach(d *charts.Description) error {
	img, err := d.Image(m.Width, m.Height)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.attached {
		if a.ID == d.ID {
			return goerr.New("chart already attached", goerr.V("id", d.ID.String()))
		}
	}
	m.attached = append(m.attached, d)
	if len(m.attached) > m.maxAttached {
		m.maxAttached = len(m.attached)
	}
	m.img = img
	m.progress = 0
	return nil
}

func (m *MemorySurface) Detach(d *charts.Description) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.attached[:0]
	for _, a := range m.attached {
		if a.ID != d.ID {
			out = append(out, a)
		}
	}
	m.attached = out
	if len(m.attached) == 0 {
		m.img = nil
	}
}

func (m *MemorySurface) Refresh(progress float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
	m.progress = progress
}

// Image is the rendering of the attached chart, nil when the slot is empty.
func (m *MemorySurface) Image() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.img
}

// Attached returns the charts currently in the slot.
func (m *MemorySurface) Attached() []*charts.Description {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*charts.Description(nil), m.attached...)
}

// Progress is the reveal progress passed to the last Refresh.
func (m *MemorySurface) Progress() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress
}

func (m *MemorySurface) Refreshes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshes
}

// MaxAttached is the peak number of charts held at once.
func (m *MemorySurface) MaxAttached() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxAttached
}
