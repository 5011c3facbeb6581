package wm

// updateGeometry reconciles the monitor list against the screens the display
// reports. Surplus monitors are torn down and their clients reattached to
// the first monitor with their tags intact. It reports whether anything
// changed.
func (wm *WM) updateGeometry() bool {
	screens := dedupScreens(wm.display.Screens())
	if len(screens) == 0 {
		screens = []Geom{{X: 0, Y: 0, W: wm.sw, H: wm.sh}}
	}

	dirty := false
	n := len(wm.mons)
	for len(wm.mons) < len(screens) {
		wm.mons = append(wm.mons, newMonitor(wm.cfg))
	}
	for i, s := range screens {
		m := wm.mons[i]
		if i >= n || s.X != m.MX || s.Y != m.MY || s.W != m.MW || s.H != m.MH {
			dirty = true
			m.Num = i
			m.MX, m.MY, m.MW, m.MH = s.X, s.Y, s.W, s.H
			m.WX, m.WY, m.WW, m.WH = s.X, s.Y, s.W, s.H
			m.updateBarPos(wm.bh)
		}
	}
	for len(wm.mons) > len(screens) {
		dirty = true
		m := wm.mons[len(wm.mons)-1]
		for len(m.clients) > 0 {
			c := m.clients[0]
			m.Detach(c)
			m.DetachStack(c)
			c.Mon = wm.mons[0]
			c.Mon.Attach(c)
			c.Mon.AttachStack(c)
		}
		if m == wm.selmon {
			wm.selmon = wm.mons[0]
		}
		wm.removeMonitor(m)
	}

	if wm.selmon == nil {
		wm.selmon = wm.mons[0]
	}
	if dirty {
		wm.selmon = wm.mons[0]
		wm.selmon = wm.winToMon(wm.display.Root())
	}
	return dirty
}

// dedupScreens drops screens whose rectangle duplicates an earlier one;
// mirrored outputs report the same geometry twice.
func dedupScreens(screens []Geom) []Geom {
	out := screens[:0:0]
	for _, s := range screens {
		dup := false
		for _, u := range out {
			if s == u {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}
