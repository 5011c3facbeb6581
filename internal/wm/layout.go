package wm

import "fmt"

// Layout identifies one layout choice on a monitor's layout slots.
type Layout interface {
	Symbol() string
}

// Arranger is the tiling capability: layouts that place windows implement it,
// the floating layout implements only Layout and leaves geometry alone.
type Arranger interface {
	Layout
	Arrange(wm *WM, m *Monitor)
}

// Tiled is the master/stack layout: the first NMaster clients form the master
// column, the rest a stack column of the remaining width.
type Tiled struct{}

func (Tiled) Symbol() string { return "[]=" }

func (Tiled) Arrange(wm *WM, m *Monitor) {
	tiled := m.TiledClients()
	n := len(tiled)
	if n == 0 {
		return
	}

	var mw int
	if n > m.NMaster {
		if m.NMaster > 0 {
			mw = int(float64(m.WW) * m.MFact)
		}
	} else {
		mw = m.WW
	}

	// Heights divide the remaining space by the remaining count so rounding
	// is absorbed by later clients instead of accumulating.
	my, ty := 0, 0
	for i, c := range tiled {
		if i < m.NMaster {
			h := (m.WH - my) / (min(n, m.NMaster) - i)
			wm.resize(c, m.WX, m.WY+my, mw-2*c.BW, h-2*c.BW, false)
			if my+c.FullHeight() < m.WH {
				my += c.FullHeight()
			}
		} else {
			h := (m.WH - ty) / (n - i)
			wm.resize(c, m.WX+mw, m.WY+ty, m.WW-mw-2*c.BW, h-2*c.BW, false)
			if ty+c.FullHeight() < m.WH {
				ty += c.FullHeight()
			}
		}
	}
}

// Monocle gives every visible tiled client the full window area and reports
// the visible count in the layout symbol.
type Monocle struct{}

func (Monocle) Symbol() string { return "[M]" }

func (Monocle) Arrange(wm *WM, m *Monitor) {
	n := 0
	for _, c := range m.clients {
		if c.Visible() {
			n++
		}
	}
	if n > 0 {
		m.LtSymbol = fmt.Sprintf("[%d]", n)
	}
	for _, c := range m.TiledClients() {
		wm.resize(c, m.WX, m.WY, m.WW-2*c.BW, m.WH-2*c.BW, false)
	}
}

// Floating leaves every client where it is.
type Floating struct{}

func (Floating) Symbol() string { return "><>" }

// LayoutByName resolves a config layout name; used when constructing
// bindings and monitor defaults.
func LayoutByName(name string) (Layout, error) {
	switch name {
	case "tiled":
		return Tiled{}, nil
	case "floating":
		return Floating{}, nil
	case "monocle":
		return Monocle{}, nil
	}
	return nil, fmt.Errorf("unknown layout %q", name)
}
