package wm

// updateBars creates a bar window for every monitor that lacks one.
func (wm *WM) updateBars() {
	for _, m := range wm.mons {
		if m.BarWin != 0 {
			continue
		}
		m.BarWin = wm.display.CreateBarWindow(Geom{X: m.WX, Y: m.BY, W: m.WW, H: wm.bh})
	}
}

// drawBar renders one monitor's bar: tag cells with occupancy and urgency
// marks, the layout symbol, the focused title and, on the selected monitor,
// the status text.
func (wm *WM) drawBar(m *Monitor) {
	if m == nil || m.BarWin == 0 {
		return
	}
	boxs := wm.surface.FontHeight() / 9
	boxw := wm.surface.FontHeight()/6 + 2

	tw := 0
	if m == wm.selmon {
		wm.surface.SetScheme(SchemeNorm)
		tw = wm.surface.TextWidth(wm.stext) + 2
		wm.surface.Text(m.WW-tw, 0, tw, wm.bh, 0, wm.stext, false)
	}

	var occ, urg uint32
	for _, c := range m.clients {
		occ |= c.Tags
		if c.IsUrgent {
			urg |= c.Tags
		}
	}

	x := 0
	for i, tag := range wm.cfg.Tags {
		w := wm.textWidth(tag)
		if m.TagSet()&(1<<i) != 0 {
			wm.surface.SetScheme(SchemeSel)
		} else {
			wm.surface.SetScheme(SchemeNorm)
		}
		wm.surface.Text(x, 0, w, wm.bh, wm.lrpad/2, tag, urg&(1<<i) != 0)
		if occ&(1<<i) != 0 {
			filled := m == wm.selmon && m.Sel != nil && m.Sel.Tags&(1<<i) != 0
			wm.surface.Rect(x+boxs, boxs, boxw, boxw, filled, urg&(1<<i) != 0)
		}
		x += w
	}

	wm.blw = wm.textWidth(m.LtSymbol)
	wm.surface.SetScheme(SchemeNorm)
	x = wm.surface.Text(x, 0, wm.blw, wm.bh, wm.lrpad/2, m.LtSymbol, false)

	if w := m.WW - tw - x; w > wm.bh {
		if m.Sel != nil {
			if m == wm.selmon {
				wm.surface.SetScheme(SchemeSel)
			} else {
				wm.surface.SetScheme(SchemeNorm)
			}
			wm.surface.Text(x, 0, w, wm.bh, wm.lrpad/2, m.Sel.Name, false)
			if m.Sel.IsFloating {
				wm.surface.Rect(x+boxs, boxs, boxw, boxw, m.Sel.IsFixed, false)
			}
		} else {
			wm.surface.SetScheme(SchemeNorm)
			wm.surface.Rect(x, 0, w, wm.bh, true, true)
		}
	}
	wm.surface.Map(m.BarWin, 0, 0, m.WW, wm.bh)
}

func (wm *WM) drawBars() {
	for _, m := range wm.mons {
		wm.drawBar(m)
	}
	wm.publishSnapshot()
}
