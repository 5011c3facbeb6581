package wm

import (
	"log/slog"
	"os"
	"os/exec"
)

// Actions are the operations bindings invoke. They are exported so the
// config layer can close over them when it resolves action names, and so the
// control server can describe them. All of them must run on the event loop
// goroutine.

// View switches the selected monitor to the given tag set. A zero mask flips
// back to the previously viewed set.
func (wm *WM) View(mask uint32) {
	m := wm.selmon
	if mask&wm.cfg.TagMask() == m.TagSet() {
		return
	}
	m.FlipTags()
	if mask&wm.cfg.TagMask() != 0 {
		m.SetTagSet(mask & wm.cfg.TagMask())
	}
	wm.focus(nil)
	wm.arrange(m)
}

// internal alias used by cleanup.
func (wm *WM) view(mask uint32) { wm.View(mask) }

// ToggleView xors a tag into the view; the result is never allowed to be
// empty.
func (wm *WM) ToggleView(mask uint32) {
	m := wm.selmon
	newset := m.TagSet() ^ (mask & wm.cfg.TagMask())
	if newset == 0 {
		return
	}
	m.SetTagSet(newset)
	wm.focus(nil)
	wm.arrange(m)
}

// Tag moves the selected client to the given tag set.
func (wm *WM) Tag(mask uint32) {
	c := wm.selmon.Sel
	if c == nil || mask&wm.cfg.TagMask() == 0 {
		return
	}
	c.Tags = mask & wm.cfg.TagMask()
	wm.focus(nil)
	wm.arrange(wm.selmon)
}

// ToggleTag xors a tag on the selected client; a client always keeps at
// least one tag.
func (wm *WM) ToggleTag(mask uint32) {
	c := wm.selmon.Sel
	if c == nil {
		return
	}
	newtags := c.Tags ^ (mask & wm.cfg.TagMask())
	if newtags == 0 {
		return
	}
	c.Tags = newtags
	wm.focus(nil)
	wm.arrange(wm.selmon)
}

// FocusStack cycles focus through visible clients, forward when dir > 0.
func (wm *WM) FocusStack(dir int) {
	m := wm.selmon
	if m.Sel == nil || (m.Sel.IsFullscreen && wm.cfg.LockFullscreen) {
		return
	}
	vis := make([]*Client, 0, len(m.clients))
	sel := -1
	for _, c := range m.clients {
		if !c.Visible() {
			continue
		}
		if c == m.Sel {
			sel = len(vis)
		}
		vis = append(vis, c)
	}
	if len(vis) < 2 || sel < 0 {
		return
	}
	var next *Client
	if dir > 0 {
		next = vis[(sel+1)%len(vis)]
	} else {
		next = vis[(sel+len(vis)-1)%len(vis)]
	}
	wm.focus(next)
	wm.restack(m)
}

// IncNMaster adjusts the master area client count, never below zero.
func (wm *WM) IncNMaster(delta int) {
	wm.selmon.NMaster = max(wm.selmon.NMaster+delta, 0)
	wm.arrange(wm.selmon)
}

// SetMFact sets the master area ratio. Values below 1.0 adjust relatively;
// values of 1.0 and above set the absolute ratio minus one. Results outside
// [0.05, 0.95] are rejected.
func (wm *WM) SetMFact(f float64) {
	m := wm.selmon
	if !m.Arranged() {
		return
	}
	if f < 1.0 {
		f += m.MFact
	} else {
		f -= 1.0
	}
	if f < 0.05 || f > 0.95 {
		return
	}
	m.MFact = f
	wm.arrange(m)
}

// Zoom swaps the selected client with the master, or promotes the next tiled
// client when the selection already is the master.
func (wm *WM) Zoom() {
	c := wm.selmon.Sel
	if c == nil || !wm.selmon.Arranged() || c.IsFloating {
		return
	}
	tiled := wm.selmon.TiledClients()
	if len(tiled) > 0 && c == tiled[0] {
		if len(tiled) < 2 {
			return
		}
		c = tiled[1]
	}
	wm.pop(c)
}

// KillSelected asks the selected client to close, or kills its connection
// when it does not speak WM_DELETE_WINDOW.
func (wm *WM) KillSelected() {
	if wm.selmon.Sel == nil {
		return
	}
	wm.killClient(wm.selmon.Sel)
}

// SetLayout switches the selected monitor's layout. A nil layout or one
// already active toggles between the two layout slots instead.
func (wm *WM) SetLayout(lt Layout) {
	m := wm.selmon
	if lt == nil || lt != m.Layout() {
		m.FlipLayout()
	}
	if lt != nil {
		m.SetLayout(lt)
	}
	m.LtSymbol = m.Layout().Symbol()
	if m.Sel != nil {
		wm.arrange(m)
	} else {
		wm.drawBar(m)
	}
}

// ToggleFloating floats or re-tiles the selected client. Fullscreen clients
// are left alone.
func (wm *WM) ToggleFloating() {
	c := wm.selmon.Sel
	if c == nil || c.IsFullscreen {
		return
	}
	c.IsFloating = !c.IsFloating || c.IsFixed
	if c.IsFloating {
		wm.resize(c, c.X, c.Y, c.W, c.H, false)
	}
	wm.arrange(wm.selmon)
}

// ToggleBar shows or hides the selected monitor's bar.
func (wm *WM) ToggleBar() {
	m := wm.selmon
	m.ShowBar = !m.ShowBar
	m.updateBarPos(wm.bh)
	wm.display.MoveResizeWindow(m.BarWin, m.WX, m.BY, m.WW, wm.bh)
	wm.arrange(m)
}

// FocusMon moves selection to the next monitor in the given direction.
func (wm *WM) FocusMon(dir int) {
	if len(wm.mons) < 2 {
		return
	}
	m := wm.dirToMon(dir)
	if m == wm.selmon {
		return
	}
	wm.unfocus(wm.selmon.Sel, false)
	wm.selmon = m
	wm.focus(nil)
}

// TagMon sends the selected client to the next monitor in the given
// direction.
func (wm *WM) TagMon(dir int) {
	if wm.selmon.Sel == nil || len(wm.mons) < 2 {
		return
	}
	wm.sendMon(wm.selmon.Sel, wm.dirToMon(dir))
}

// Spawn runs a command detached from the manager.
func (wm *WM) Spawn(argv []string) {
	if len(argv) == 0 {
		return
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		slog.Error("Failed to spawn command", "argv", argv, "error", err)
		return
	}
	go func() { _ = cmd.Wait() }()
}

// Quit stops the event loop; with restart the process re-execs itself after
// cleanup.
func (wm *WM) Quit(restart bool) {
	wm.restart = restart
	wm.running = false
}
