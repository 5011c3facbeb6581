package wm

import (
	"github.com/jezek/xgb/xproto"
)

// Pointer motion during drags is throttled to roughly 60 updates per second.
const motionInterval = 1000 / 60

// MoveMouse drags the selected client with the pointer until the button is
// released. A tiled client snaps free of the layout once it moves further
// than the snap distance.
func (wm *WM) MoveMouse() {
	c := wm.selmon.Sel
	if c == nil || c.IsFullscreen {
		return
	}
	wm.restack(wm.selmon)
	ocx, ocy := c.X, c.Y
	if !wm.display.GrabPointer(CurMove) {
		return
	}
	defer wm.display.UngrabPointer()
	px, py, ok := wm.display.QueryPointer()
	if !ok {
		return
	}

	var lasttime xproto.Timestamp
	for ev := range wm.events {
		switch ev := ev.(type) {
		case xproto.ConfigureRequestEvent, xproto.ExposeEvent, xproto.MapRequestEvent:
			wm.dispatch(ev)
		case xproto.MotionNotifyEvent:
			if ev.Time-lasttime <= motionInterval {
				continue
			}
			lasttime = ev.Time

			nx := ocx + int(ev.RootX) - px
			ny := ocy + int(ev.RootY) - py
			m := wm.selmon
			if abs(m.WX-nx) < wm.cfg.Snap {
				nx = m.WX
			} else if abs(m.WX+m.WW-(nx+c.FullWidth())) < wm.cfg.Snap {
				nx = m.WX + m.WW - c.FullWidth()
			}
			if abs(m.WY-ny) < wm.cfg.Snap {
				ny = m.WY
			} else if abs(m.WY+m.WH-(ny+c.FullHeight())) < wm.cfg.Snap {
				ny = m.WY + m.WH - c.FullHeight()
			}
			if !c.IsFloating && m.Arranged() &&
				(abs(nx-c.X) > wm.cfg.Snap || abs(ny-c.Y) > wm.cfg.Snap) {
				wm.ToggleFloating()
			}
			if !m.Arranged() || c.IsFloating {
				wm.resize(c, nx, ny, c.W, c.H, true)
			}
		case xproto.ButtonReleaseEvent:
			wm.dropOnMonitor(c)
			return
		}
	}
}

// ResizeMouse drags the selected client's bottom-right corner.
func (wm *WM) ResizeMouse() {
	c := wm.selmon.Sel
	if c == nil || c.IsFullscreen {
		return
	}
	wm.restack(wm.selmon)
	ocx, ocy := c.X, c.Y
	if !wm.display.GrabPointer(CurResize) {
		return
	}
	defer wm.display.UngrabPointer()
	wm.display.WarpPointer(c.Win, c.W+c.BW-1, c.H+c.BW-1)

	var lasttime xproto.Timestamp
	for ev := range wm.events {
		switch ev := ev.(type) {
		case xproto.ConfigureRequestEvent, xproto.ExposeEvent, xproto.MapRequestEvent:
			wm.dispatch(ev)
		case xproto.MotionNotifyEvent:
			if ev.Time-lasttime <= motionInterval {
				continue
			}
			lasttime = ev.Time

			nw := max(int(ev.RootX)-ocx-2*c.BW+1, 1)
			nh := max(int(ev.RootY)-ocy-2*c.BW+1, 1)
			m := wm.selmon
			if c.Mon.WX+nw >= m.WX && c.Mon.WX+nw <= m.WX+m.WW &&
				c.Mon.WY+nh >= m.WY && c.Mon.WY+nh <= m.WY+m.WH {
				if !c.IsFloating && m.Arranged() &&
					(abs(nw-c.W) > wm.cfg.Snap || abs(nh-c.H) > wm.cfg.Snap) {
					wm.ToggleFloating()
				}
			}
			if !m.Arranged() || c.IsFloating {
				wm.resize(c, c.X, c.Y, nw, nh, true)
			}
		case xproto.ButtonReleaseEvent:
			wm.display.WarpPointer(c.Win, c.W+c.BW-1, c.H+c.BW-1)
			wm.dropOnMonitor(c)
			return
		}
	}
}

// dropOnMonitor hands the dragged client over when it ended up on another
// monitor.
func (wm *WM) dropOnMonitor(c *Client) {
	m := wm.rectToMon(c.X, c.Y, c.W, c.H)
	if m != wm.selmon {
		wm.sendMon(c, m)
		wm.selmon = m
		wm.focus(nil)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
