package wm

import (
	"github.com/jezek/xgb/xproto"
)

// Client is one managed window. It belongs to exactly one monitor and
// appears exactly once in that monitor's client list and focus stack.
type Client struct {
	Name string
	Win  xproto.Window

	X, Y, W, H             int
	OldX, OldY, OldW, OldH int
	BW, OldBW              int

	BaseW, BaseH int
	IncW, IncH   int
	MaxW, MaxH   int
	MinW, MinH   int
	MinA, MaxA   float64

	// Tags is a bit set over the configured tags; never zero while managed.
	Tags uint32

	IsFixed      bool
	IsFloating   bool
	IsUrgent     bool
	NeverFocus   bool
	OldState     bool
	IsFullscreen bool

	Mon *Monitor
}

func (c *Client) FullWidth() int  { return c.W + 2*c.BW }
func (c *Client) FullHeight() int { return c.H + 2*c.BW }

// Visible reports whether the client intersects its monitor's active tag view.
func (c *Client) Visible() bool {
	return c.Tags&c.Mon.TagSet() != 0
}

func (c *Client) setGeom(x, y, w, h int) {
	c.OldX, c.X = c.X, x
	c.OldY, c.Y = c.Y, y
	c.OldW, c.W = c.W, w
	c.OldH, c.H = c.H, h
}

// applySizeHints clamps the candidate geometry against the monitor bounds
// and, when hints apply, the client's ICCCM size constraints. It reports
// whether the result differs from the client's current geometry.
func (c *Client) applySizeHints(wm *WM, x, y, w, h *int, interact bool) bool {
	if *w < 1 {
		*w = 1
	}
	if *h < 1 {
		*h = 1
	}
	if interact {
		if *x > wm.sw {
			*x = wm.sw - c.FullWidth()
		}
		if *y > wm.sh {
			*y = wm.sh - c.FullHeight()
		}
		if *x+*w+2*c.BW < 0 {
			*x = 0
		}
		if *y+*h+2*c.BW < 0 {
			*y = 0
		}
	} else {
		m := c.Mon
		if *x >= m.WX+m.WW {
			*x = m.WX + m.WW - c.FullWidth()
		}
		if *y >= m.WY+m.WH {
			*y = m.WY + m.WH - c.FullHeight()
		}
		if *x+*w+2*c.BW <= m.WX {
			*x = m.WX
		}
		if *y+*h+2*c.BW <= m.WY {
			*y = m.WY
		}
	}
	if *h < wm.bh {
		*h = wm.bh
	}
	if *w < wm.bh {
		*w = wm.bh
	}
	if wm.cfg.ResizeHints || c.IsFloating || !c.Mon.Arranged() {
		// See the last two sentences in ICCCM 4.1.2.3.
		baseIsMin := c.BaseW == c.MinW && c.BaseH == c.MinH
		if !baseIsMin {
			*w -= c.BaseW
			*h -= c.BaseH
		}
		if c.MinA > 0 && c.MaxA > 0 {
			switch {
			case c.MaxA < float64(*w)/float64(*h):
				*w = int(float64(*h)*c.MaxA + 0.5)
			case c.MinA < float64(*h)/float64(*w):
				*h = int(float64(*w)*c.MinA + 0.5)
			}
		}
		if baseIsMin {
			// Increment calculation requires the base removed.
			*w -= c.BaseW
			*h -= c.BaseH
		}
		if c.IncW > 0 {
			*w -= *w % c.IncW
		}
		if c.IncH > 0 {
			*h -= *h % c.IncH
		}
		*w = max(*w+c.BaseW, c.MinW)
		*h = max(*h+c.BaseH, c.MinH)
		if c.MaxW > 0 {
			*w = min(*w, c.MaxW)
		}
		if c.MaxH > 0 {
			*h = min(*h, c.MaxH)
		}
	}
	return *x != c.X || *y != c.Y || *w != c.W || *h != c.H
}
