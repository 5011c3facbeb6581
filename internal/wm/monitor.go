package wm

import (
	"slices"

	"github.com/jezek/xgb/xproto"
)

// Monitor is one screen region with its own tag view, layout and bar. It owns
// its clients through two orderings over the same set: the client list in
// insertion order (newest first) and the focus stack in most-recently-focused
// order (head is the focus fallback).
type Monitor struct {
	Num      int
	LtSymbol string
	MFact    float64
	NMaster  int

	BY             int // bar y
	MX, MY, MW, MH int // screen area
	WX, WY, WW, WH int // window area

	ShowBar bool
	TopBar  bool
	BarWin  xproto.Window

	Sel *Client

	selTags int
	selLt   int
	tagSet  [2]uint32
	lt      [2]Layout

	clients []*Client
	stack   []*Client
}

func newMonitor(cfg *Config) *Monitor {
	m := &Monitor{
		MFact:   cfg.MFact,
		NMaster: cfg.NMaster,
		ShowBar: cfg.ShowBar,
		TopBar:  cfg.TopBar,
		tagSet:  [2]uint32{1, 1},
	}
	m.lt[0] = cfg.Layouts[0]
	m.lt[1] = cfg.Layouts[1%len(cfg.Layouts)]
	m.LtSymbol = m.lt[0].Symbol()
	return m
}

// TagSet returns the active tag view mask.
func (m *Monitor) TagSet() uint32 { return m.tagSet[m.selTags] }

func (m *Monitor) SetTagSet(mask uint32) { m.tagSet[m.selTags] = mask }

// FlipTags switches between the two tag view slots.
func (m *Monitor) FlipTags() { m.selTags ^= 1 }

func (m *Monitor) Layout() Layout { return m.lt[m.selLt] }

func (m *Monitor) SetLayout(lt Layout) { m.lt[m.selLt] = lt }

// FlipLayout switches between the two layout slots.
func (m *Monitor) FlipLayout() { m.selLt ^= 1 }

// Arranged reports whether the current layout actively tiles; the floating
// layout does not.
func (m *Monitor) Arranged() bool {
	_, ok := m.lt[m.selLt].(Arranger)
	return ok
}

// Clients returns the client list in insertion order. Callers must not
// mutate it.
func (m *Monitor) Clients() []*Client { return m.clients }

// Stack returns the focus history, most recently focused first. Callers must
// not mutate it.
func (m *Monitor) Stack() []*Client { return m.stack }

// Attach inserts c at the head of the client list. Attaching a client that is
// already present is a no-op.
func (m *Monitor) Attach(c *Client) {
	if slices.Contains(m.clients, c) {
		return
	}
	m.clients = append([]*Client{c}, m.clients...)
}

// Detach removes c from the client list; absent clients are ignored.
func (m *Monitor) Detach(c *Client) {
	if i := slices.Index(m.clients, c); i >= 0 {
		m.clients = slices.Delete(m.clients, i, i+1)
	}
}

// AttachStack inserts c at the head of the focus stack. Attaching a client
// that is already present is a no-op.
func (m *Monitor) AttachStack(c *Client) {
	if slices.Contains(m.stack, c) {
		return
	}
	m.stack = append([]*Client{c}, m.stack...)
}

// DetachStack removes c from the focus stack. If c was the selected client,
// selection falls back to the first remaining visible stack entry, or none.
func (m *Monitor) DetachStack(c *Client) {
	if i := slices.Index(m.stack, c); i >= 0 {
		m.stack = slices.Delete(m.stack, i, i+1)
	}
	if c == m.Sel {
		m.Sel = nil
		for _, t := range m.stack {
			if t.Visible() {
				m.Sel = t
				break
			}
		}
	}
}

// TiledClients returns the visible, non-floating clients in insertion order;
// these are the clients the layout engine places.
func (m *Monitor) TiledClients() []*Client {
	var tiled []*Client
	for _, c := range m.clients {
		if !c.IsFloating && c.Visible() {
			tiled = append(tiled, c)
		}
	}
	return tiled
}

// FirstVisibleStack returns the focus fallback: the first visible entry in
// the focus stack, or nil.
func (m *Monitor) FirstVisibleStack() *Client {
	for _, c := range m.stack {
		if c.Visible() {
			return c
		}
	}
	return nil
}

// updateBarPos derives the window area from the screen area and bar state.
func (m *Monitor) updateBarPos(bh int) {
	m.WY = m.MY
	m.WH = m.MH
	if m.ShowBar {
		m.WH -= bh
		if m.TopBar {
			m.BY = m.WY
			m.WY += bh
		} else {
			m.BY = m.WY + m.WH
		}
	} else {
		m.BY = -bh
	}
}

func (m *Monitor) contains(x, y int) bool {
	return x >= m.MX && x < m.MX+m.MW && y >= m.MY && y < m.MY+m.MH
}

// intersectArea returns the area of the intersection between the rectangle
// and the monitor's window area.
func (m *Monitor) intersectArea(x, y, w, h int) int {
	iw := min(x+w, m.WX+m.WW) - max(x, m.WX)
	ih := min(y+h, m.WY+m.WH) - max(y, m.WY)
	return max(0, iw) * max(0, ih)
}
