package wm

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// dispatch routes one X event to its handler. Unknown event kinds are
// ignored.
func (wm *WM) dispatch(ev xgb.Event) {
	switch ev := ev.(type) {
	case xproto.ButtonPressEvent:
		wm.onButtonPress(ev)
	case xproto.ClientMessageEvent:
		wm.onClientMessage(ev)
	case xproto.ConfigureRequestEvent:
		wm.onConfigureRequest(ev)
	case xproto.ConfigureNotifyEvent:
		wm.onConfigureNotify(ev)
	case xproto.DestroyNotifyEvent:
		if c := wm.winToClient(ev.Window); c != nil {
			wm.unmanage(c, true)
		}
	case xproto.EnterNotifyEvent:
		wm.onEnterNotify(ev)
	case xproto.ExposeEvent:
		if ev.Count == 0 {
			wm.drawBar(wm.winToMon(ev.Window))
		}
	case xproto.FocusInEvent:
		// Re-assert focus against clients that steal it.
		if wm.selmon.Sel != nil && ev.Event != wm.selmon.Sel.Win {
			wm.setfocus(wm.selmon.Sel)
		}
	case xproto.KeyPressEvent:
		wm.onKeyPress(ev)
	case xproto.MappingNotifyEvent:
		wm.display.RefreshKeymap()
		if ev.Request == xproto.MappingKeyboard {
			wm.grabKeys()
		}
	case xproto.MapRequestEvent:
		wm.onMapRequest(ev)
	case xproto.MotionNotifyEvent:
		wm.onMotionNotify(ev)
	case xproto.PropertyNotifyEvent:
		wm.onPropertyNotify(ev)
	case xproto.UnmapNotifyEvent:
		if c := wm.winToClient(ev.Window); c != nil {
			wm.unmanage(c, false)
		}
	}
}

// onButtonPress classifies the press into a screen region and runs every
// matching button binding.
func (wm *WM) onButtonPress(ev xproto.ButtonPressEvent) {
	click := Click{Kind: ClkRootWin}

	if m := wm.winToMon(ev.Event); m != nil && m != wm.selmon {
		wm.unfocus(wm.selmon.Sel, true)
		wm.selmon = m
		wm.focus(nil)
	}
	if ev.Event == wm.selmon.BarWin {
		x := 0
		i := 0
		for i < len(wm.cfg.Tags) {
			x += wm.textWidth(wm.cfg.Tags[i])
			if int(ev.EventX) < x {
				break
			}
			i++
		}
		switch {
		case i < len(wm.cfg.Tags):
			click.Kind = ClkTagBar
			click.TagMask = 1 << i
		case int(ev.EventX) < x+wm.blw:
			click.Kind = ClkLtSymbol
		case int(ev.EventX) > wm.selmon.WW-wm.textWidth(wm.stext):
			click.Kind = ClkStatusText
		default:
			click.Kind = ClkWinTitle
		}
	} else if c := wm.winToClient(ev.Event); c != nil {
		wm.focus(c)
		wm.restack(wm.selmon)
		wm.display.AllowPointerEvents()
		click.Kind = ClkClientWin
	}

	for _, b := range wm.cfg.Buttons {
		if b.Kind == click.Kind && b.Button == xproto.Button(ev.Detail) &&
			wm.display.CleanMask(b.Mod) == wm.display.CleanMask(ev.State) {
			b.Do(wm, click)
		}
	}
}

// _NET_WM_STATE client message actions.
const (
	netWMStateRemove = 0
	netWMStateAdd    = 1
	netWMStateToggle = 2
)

func (wm *WM) onClientMessage(ev xproto.ClientMessageEvent) {
	c := wm.winToClient(ev.Window)
	if c == nil {
		return
	}
	switch xproto.Atom(ev.Type) {
	case wm.atoms.NetWMState:
		data := ev.Data.Data32
		if len(data) < 3 {
			return
		}
		if xproto.Atom(data[1]) == wm.atoms.NetWMFullscreen ||
			xproto.Atom(data[2]) == wm.atoms.NetWMFullscreen {
			wm.setFullscreen(c, data[0] == netWMStateAdd ||
				(data[0] == netWMStateToggle && !c.IsFullscreen))
		}
	case wm.atoms.NetActiveWindow:
		if c != wm.selmon.Sel && !c.IsUrgent {
			wm.setUrgent(c, true)
		}
	}
}

// onConfigureRequest honors requests from floating clients, acknowledges
// tiled ones with a synthetic notify, and forwards requests from unmanaged
// windows verbatim.
func (wm *WM) onConfigureRequest(ev xproto.ConfigureRequestEvent) {
	c := wm.winToClient(ev.Window)
	if c == nil {
		wm.display.ConfigureVerbatim(ev)
		wm.display.Sync()
		return
	}
	switch {
	case ev.ValueMask&xproto.ConfigWindowBorderWidth != 0:
		c.BW = int(ev.BorderWidth)
	case c.IsFloating || !wm.selmon.Arranged():
		m := c.Mon
		if ev.ValueMask&xproto.ConfigWindowX != 0 {
			c.OldX = c.X
			c.X = m.MX + int(ev.X)
		}
		if ev.ValueMask&xproto.ConfigWindowY != 0 {
			c.OldY = c.Y
			c.Y = m.MY + int(ev.Y)
		}
		if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
			c.OldW = c.W
			c.W = int(ev.Width)
		}
		if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
			c.OldH = c.H
			c.H = int(ev.Height)
		}
		if c.X+c.W > m.MX+m.MW && c.IsFloating {
			c.X = m.MX + (m.MW/2 - c.FullWidth()/2)
		}
		if c.Y+c.H > m.MY+m.MH && c.IsFloating {
			c.Y = m.MY + (m.MH/2 - c.FullHeight()/2)
		}
		moveOnly := ev.ValueMask&(xproto.ConfigWindowX|xproto.ConfigWindowY) != 0 &&
			ev.ValueMask&(xproto.ConfigWindowWidth|xproto.ConfigWindowHeight) == 0
		if moveOnly {
			wm.display.SendConfigureNotify(c.Win, Geom{X: c.X, Y: c.Y, W: c.W, H: c.H}, c.BW)
		}
		if c.Visible() {
			wm.display.MoveResizeWindow(c.Win, c.X, c.Y, c.W, c.H)
		}
	default:
		wm.display.SendConfigureNotify(c.Win, Geom{X: c.X, Y: c.Y, W: c.W, H: c.H}, c.BW)
	}
	wm.display.Sync()
}

// onConfigureNotify reacts to root geometry changes, refitting monitors,
// bars and fullscreen clients.
func (wm *WM) onConfigureNotify(ev xproto.ConfigureNotifyEvent) {
	if ev.Window != wm.display.Root() {
		return
	}
	dirty := wm.sw != int(ev.Width) || wm.sh != int(ev.Height)
	wm.sw, wm.sh = int(ev.Width), int(ev.Height)
	if wm.updateGeometry() || dirty {
		wm.surface.Resize(wm.sw, wm.bh)
		wm.updateBars()
		for _, m := range wm.mons {
			for _, c := range m.clients {
				if c.IsFullscreen {
					wm.resizeClient(c, m.MX, m.MY, m.MW, m.MH)
				}
			}
			wm.display.MoveResizeWindow(m.BarWin, m.WX, m.BY, m.WW, wm.bh)
		}
		wm.focus(nil)
		wm.arrange(nil)
	}
}

func (wm *WM) onEnterNotify(ev xproto.EnterNotifyEvent) {
	if (ev.Mode != xproto.NotifyModeNormal || ev.Detail == xproto.NotifyDetailInferior) &&
		ev.Event != wm.display.Root() {
		return
	}
	c := wm.winToClient(ev.Event)
	var m *Monitor
	if c != nil {
		m = c.Mon
	} else {
		m = wm.winToMon(ev.Event)
	}
	if m != wm.selmon {
		wm.unfocus(wm.selmon.Sel, true)
		wm.selmon = m
	} else if c == nil || c == wm.selmon.Sel {
		return
	}
	wm.focus(c)
}

func (wm *WM) onKeyPress(ev xproto.KeyPressEvent) {
	keysym := wm.display.KeysymFor(ev.Detail)
	for _, k := range wm.cfg.Keys {
		if k.Keysym == keysym &&
			wm.display.CleanMask(k.Mod) == wm.display.CleanMask(ev.State) {
			k.Do(wm)
		}
	}
}

func (wm *WM) onMapRequest(ev xproto.MapRequestEvent) {
	wa, ok := wm.display.WindowAttributes(ev.Window)
	if !ok || wa.OverrideRedirect {
		return
	}
	if wm.winToClient(ev.Window) == nil {
		wm.manage(ev.Window, wa)
	}
}

// onMotionNotify tracks which monitor the pointer is over and moves the
// selection when it crosses a boundary.
func (wm *WM) onMotionNotify(ev xproto.MotionNotifyEvent) {
	if ev.Event != wm.display.Root() {
		return
	}
	m := wm.rectToMon(int(ev.RootX), int(ev.RootY), 1, 1)
	if m != wm.motionMon && wm.motionMon != nil {
		wm.unfocus(wm.selmon.Sel, true)
		wm.selmon = m
		wm.focus(nil)
	}
	wm.motionMon = m
}

func (wm *WM) onPropertyNotify(ev xproto.PropertyNotifyEvent) {
	if ev.Window == wm.display.Root() && ev.Atom == xproto.AtomWmName {
		wm.updateStatus()
		return
	}
	if ev.State == xproto.PropertyDelete {
		return
	}
	c := wm.winToClient(ev.Window)
	if c == nil {
		return
	}
	switch ev.Atom {
	case xproto.AtomWmTransientFor:
		if !c.IsFloating {
			if trans, ok := wm.display.TransientFor(c.Win); ok {
				if wm.winToClient(trans) != nil {
					c.IsFloating = true
					wm.arrange(c.Mon)
				}
			}
		}
	case xproto.AtomWmNormalHints:
		wm.updateSizeHints(c)
	case xproto.AtomWmHints:
		wm.updateWMHints(c)
		wm.drawBars()
	}
	if ev.Atom == xproto.AtomWmName || ev.Atom == wm.atoms.NetWMName {
		wm.updateTitle(c)
		if c == c.Mon.Sel {
			wm.drawBar(c.Mon)
		}
	}
	if ev.Atom == wm.atoms.NetWMWindowType {
		wm.updateWindowType(c)
	}
}
