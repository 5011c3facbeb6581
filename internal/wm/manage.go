package wm

import (
	"github.com/jezek/xgb/xproto"
)

// resize applies size hints and issues the geometry change only if the
// result differs from the current geometry.
func (wm *WM) resize(c *Client, x, y, w, h int, interact bool) {
	if c.applySizeHints(wm, &x, &y, &w, &h, interact) {
		wm.resizeClient(c, x, y, w, h)
	}
}

func (wm *WM) resizeClient(c *Client, x, y, w, h int) {
	c.setGeom(x, y, w, h)
	wm.display.ConfigureClient(c.Win, Geom{X: x, Y: y, W: w, H: h}, c.BW)
	wm.display.SendConfigureNotify(c.Win, Geom{X: c.X, Y: c.Y, W: c.W, H: c.H}, c.BW)
	wm.display.Sync()
}

// arrange re-applies visibility and layout on one monitor, or on all when
// m is nil.
func (wm *WM) arrange(m *Monitor) {
	if m != nil {
		wm.showHide(m.stack)
		wm.arrangeMon(m)
		wm.restack(m)
		return
	}
	for _, o := range wm.mons {
		wm.showHide(o.stack)
	}
	for _, o := range wm.mons {
		wm.arrangeMon(o)
	}
}

func (wm *WM) arrangeMon(m *Monitor) {
	m.LtSymbol = m.Layout().Symbol()
	if lt, ok := m.Layout().(Arranger); ok {
		lt.Arrange(wm, m)
	}
}

// showHide moves visible clients on screen top-down and hides the rest
// bottom-up by parking them at a negative x offset.
func (wm *WM) showHide(stack []*Client) {
	if len(stack) == 0 {
		return
	}
	c := stack[0]
	if c.Visible() {
		wm.display.MoveWindow(c.Win, c.X, c.Y)
		if (!c.Mon.Arranged() || c.IsFloating) && !c.IsFullscreen {
			wm.resize(c, c.X, c.Y, c.W, c.H, false)
		}
		wm.showHide(stack[1:])
	} else {
		wm.showHide(stack[1:])
		wm.display.MoveWindow(c.Win, c.FullWidth()*-2, c.Y)
	}
}

// manage starts managing a window: builds the client, applies rules, clamps
// geometry to the owning monitor, attaches, arranges and maps.
func (wm *WM) manage(w xproto.Window, wa WindowAttributes) {
	c := &Client{
		Win: w,
		X:   wa.Geom.X, OldX: wa.Geom.X,
		Y: wa.Geom.Y, OldY: wa.Geom.Y,
		W: wa.Geom.W, OldW: wa.Geom.W,
		H: wa.Geom.H, OldH: wa.Geom.H,
		OldBW: wa.BorderWidth,
	}

	wm.updateTitle(c)
	if trans, ok := wm.display.TransientFor(w); ok {
		if t := wm.winToClient(trans); t != nil {
			c.Mon = t.Mon
			c.Tags = t.Tags
		}
	}
	if c.Mon == nil {
		c.Mon = wm.selmon
		wm.applyRules(c)
	}

	m := c.Mon
	if c.X+c.FullWidth() > m.MX+m.MW {
		c.X = m.MX + m.MW - c.FullWidth()
	}
	if c.Y+c.FullHeight() > m.MY+m.MH {
		c.Y = m.MY + m.MH - c.FullHeight()
	}
	c.X = max(c.X, m.MX)
	// Only fix the y offset when the client center might cover the bar.
	if m.BY == m.MY && c.X+c.W/2 >= m.WX && c.X+c.W/2 < m.WX+m.WW {
		c.Y = max(c.Y, wm.bh)
	} else {
		c.Y = max(c.Y, m.MY)
	}
	c.BW = wm.cfg.BorderPx

	wm.display.SetBorderWidth(c.Win, c.BW)
	wm.display.SetBorderColor(c.Win, SchemeNorm)
	// Propagates the border width even when the size does not change.
	wm.display.SendConfigureNotify(c.Win, Geom{X: c.X, Y: c.Y, W: c.W, H: c.H}, c.BW)
	wm.updateWindowType(c)
	wm.updateSizeHints(c)
	wm.updateWMHints(c)
	wm.display.SelectClientInput(c.Win)
	wm.display.GrabButtons(c.Win, false, wm.clientButtons())
	if !c.IsFloating {
		trans, transient := wm.display.TransientFor(w)
		c.IsFloating = (transient && trans != 0) || c.IsFixed
		c.OldState = c.IsFloating
	}
	if c.IsFloating {
		wm.display.RaiseWindow(c.Win)
	}
	c.Mon.Attach(c)
	c.Mon.AttachStack(c)
	wm.display.AppendClientList(c.Win)
	// Some clients require an off-screen move before the first map.
	wm.display.MoveResizeWindow(c.Win, c.X+2*wm.sw, c.Y, c.W, c.H)
	wm.display.SetClientState(c.Win, StateNormal)
	if c.Mon == wm.selmon {
		wm.unfocus(wm.selmon.Sel, false)
	}
	c.Mon.Sel = c
	wm.arrange(c.Mon)
	wm.display.MapWindow(c.Win)
	wm.focus(nil)
}

// unmanage forgets a client. When the window still exists the border and
// state are restored under a server grab to avoid racing its destruction.
func (wm *WM) unmanage(c *Client, destroyed bool) {
	m := c.Mon
	m.Detach(c)
	m.DetachStack(c)
	if !destroyed {
		wm.display.GrabServer()
		wm.display.SetBorderWidth(c.Win, c.OldBW)
		wm.display.GrabButtons(c.Win, false, nil)
		wm.display.SetClientState(c.Win, StateWithdrawn)
		wm.display.Sync()
		wm.display.UngrabServer()
	}
	wm.focus(nil)
	wm.updateClientList()
	wm.arrange(m)
}

// sendMon moves a client to another monitor, re-tagging it with the target's
// active tag view.
func (wm *WM) sendMon(c *Client, m *Monitor) {
	if c.Mon == m {
		return
	}
	wm.unfocus(c, true)
	c.Mon.Detach(c)
	c.Mon.DetachStack(c)
	c.Mon = m
	c.Tags = m.TagSet()
	m.Attach(c)
	m.AttachStack(c)
	wm.focus(nil)
	wm.arrange(nil)
}

// setFullscreen drives the per-client fullscreen state machine; re-entering
// the current state is a no-op.
func (wm *WM) setFullscreen(c *Client, fullscreen bool) {
	if fullscreen && !c.IsFullscreen {
		wm.display.SetNetWMState(c.Win, wm.atoms.NetWMFullscreen)
		c.IsFullscreen = true
		c.OldState = c.IsFloating
		c.OldBW = c.BW
		c.BW = 0
		c.IsFloating = true
		wm.resizeClient(c, c.Mon.MX, c.Mon.MY, c.Mon.MW, c.Mon.MH)
		wm.display.RaiseWindow(c.Win)
	} else if !fullscreen && c.IsFullscreen {
		wm.display.SetNetWMState(c.Win, 0)
		c.IsFullscreen = false
		c.IsFloating = c.OldState
		c.BW = c.OldBW
		c.X, c.Y, c.W, c.H = c.OldX, c.OldY, c.OldW, c.OldH
		wm.resizeClient(c, c.X, c.Y, c.W, c.H)
		wm.arrange(c.Mon)
	}
}

func (wm *WM) updateClientList() {
	var wins []xproto.Window
	for _, m := range wm.mons {
		for _, c := range m.clients {
			wins = append(wins, c.Win)
		}
	}
	wm.display.SetClientList(wins)
}

func (wm *WM) updateTitle(c *Client) {
	c.Name = wm.display.TextProp(c.Win, wm.atoms.NetWMName)
	if c.Name == "" {
		c.Name = wm.display.TextProp(c.Win, xproto.AtomWmName)
	}
	if c.Name == "" {
		c.Name = broken
	}
}

func (wm *WM) updateWindowType(c *Client) {
	if wm.display.AtomProp(c.Win, wm.atoms.NetWMState) == wm.atoms.NetWMFullscreen {
		wm.setFullscreen(c, true)
	}
	if wm.display.AtomProp(c.Win, wm.atoms.NetWMWindowType) == wm.atoms.NetWMWindowTypeDialog {
		c.IsFloating = true
	}
}

func (wm *WM) updateWMHints(c *Client) {
	h, ok := wm.display.WMHints(c.Win)
	if !ok {
		return
	}
	if c == wm.selmon.Sel && h.Urgent {
		// The selected client does not get to stay urgent.
		wm.display.SetUrgency(c.Win, false)
	} else {
		c.IsUrgent = h.Urgent
	}
	if h.InputSpecified {
		c.NeverFocus = !h.Input
	} else {
		c.NeverFocus = false
	}
}

func (wm *WM) setUrgent(c *Client, urgent bool) {
	c.IsUrgent = urgent
	wm.display.SetUrgency(c.Win, urgent)
}

// pop moves a client to the head of the client list and focuses it; used by
// the zoom action to swap a stack client into the master area.
func (wm *WM) pop(c *Client) {
	c.Mon.Detach(c)
	c.Mon.Attach(c)
	wm.focus(c)
	wm.arrange(c.Mon)
}

func (wm *WM) killClient(c *Client) {
	if wm.display.SupportsProtocol(c.Win, wm.atoms.WMDelete) {
		wm.display.SendProtocol(c.Win, wm.atoms.WMDelete)
		return
	}
	wm.display.GrabServer()
	wm.display.KillClient(c.Win)
	wm.display.Sync()
	wm.display.UngrabServer()
}
