package wm

// focus moves input focus to c, or to the first visible client on the
// selected monitor when c is nil or not visible.
func (wm *WM) focus(c *Client) {
	if c == nil || !c.Visible() {
		c = wm.selmon.FirstVisibleStack()
	}
	if wm.selmon.Sel != nil && wm.selmon.Sel != c {
		wm.unfocus(wm.selmon.Sel, false)
	}
	if c != nil {
		if c.Mon != wm.selmon {
			wm.selmon = c.Mon
		}
		if c.IsUrgent {
			wm.setUrgent(c, false)
		}
		c.Mon.DetachStack(c)
		c.Mon.AttachStack(c)
		wm.display.GrabButtons(c.Win, true, wm.clientButtons())
		wm.display.SetBorderColor(c.Win, SchemeSel)
		wm.setfocus(c)
	} else {
		wm.display.FocusRoot()
		wm.display.SetActiveWindow(0)
	}
	wm.selmon.Sel = c
	wm.drawBars()
}

// unfocus drops c's focus decorations; setfocus additionally hands input
// focus back to the root.
func (wm *WM) unfocus(c *Client, setfocus bool) {
	if c == nil {
		return
	}
	wm.display.GrabButtons(c.Win, false, wm.clientButtons())
	wm.display.SetBorderColor(c.Win, SchemeNorm)
	if setfocus {
		wm.display.FocusRoot()
		wm.display.SetActiveWindow(0)
	}
}

func (wm *WM) setfocus(c *Client) {
	if !c.NeverFocus {
		wm.display.SetInputFocus(c.Win)
		wm.display.SetActiveWindow(c.Win)
	}
	if wm.display.SupportsProtocol(c.Win, wm.atoms.WMTakeFocus) {
		wm.display.SendProtocol(c.Win, wm.atoms.WMTakeFocus)
	}
}

// restack raises a floating selection and pushes tiled clients below the bar
// window in stacking order.
func (wm *WM) restack(m *Monitor) {
	wm.drawBar(m)
	if m.Sel == nil {
		return
	}
	if m.Sel.IsFloating || !m.Arranged() {
		wm.display.RaiseWindow(m.Sel.Win)
	}
	if m.Arranged() {
		sibling := m.BarWin
		for _, c := range m.stack {
			if !c.IsFloating && c.Visible() {
				wm.display.StackBelow(c.Win, sibling)
				sibling = c.Win
			}
		}
	}
	wm.display.Sync()
}
