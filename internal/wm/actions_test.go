package wm

import "testing"

func TestViewSwitchesAndFlipsBack(t *testing.T) {
	w, _ := newTestWM(t)
	m := w.selmon

	w.View(1 << 2)
	if m.TagSet() != 1<<2 {
		t.Fatalf("view = %b", m.TagSet())
	}

	// Viewing the current set again is a no-op, not a flip.
	w.View(1 << 2)
	if m.TagSet() != 1<<2 {
		t.Fatalf("re-view changed the set to %b", m.TagSet())
	}

	// A zero mask flips to the previously viewed set.
	w.View(0)
	if m.TagSet() != 1 {
		t.Fatalf("flip returned %b, want the initial view", m.TagSet())
	}
	w.View(0)
	if m.TagSet() != 1<<2 {
		t.Fatalf("second flip returned %b", m.TagSet())
	}
}

func TestViewMasksOutOfRangeTags(t *testing.T) {
	w, _ := newTestWM(t)
	w.View(^uint32(0))
	if w.selmon.TagSet() != w.cfg.TagMask() {
		t.Fatalf("view-all = %b, want %b", w.selmon.TagSet(), w.cfg.TagMask())
	}
}

func TestToggleViewNeverEmpty(t *testing.T) {
	w, _ := newTestWM(t)
	m := w.selmon

	w.ToggleView(1 << 1)
	if m.TagSet() != 1|1<<1 {
		t.Fatalf("toggle on = %b", m.TagSet())
	}
	w.ToggleView(1 << 1)
	if m.TagSet() != 1 {
		t.Fatalf("toggle off = %b", m.TagSet())
	}
	// Removing the last viewed tag is refused.
	w.ToggleView(1)
	if m.TagSet() != 1 {
		t.Fatalf("view emptied to %b", m.TagSet())
	}
}

func TestTagGuards(t *testing.T) {
	w, d := newTestWM(t)

	// No selection: must not panic, must not change anything.
	w.Tag(1 << 2)

	c := addClient(t, w, d, Geom{W: 300, H: 200})
	w.Tag(0)
	if c.Tags != 1 {
		t.Fatalf("zero-mask tag changed tags to %b", c.Tags)
	}
	w.Tag(1 << 2)
	if c.Tags != 1<<2 {
		t.Fatalf("tags = %b", c.Tags)
	}
}

func TestToggleTagKeepsAtLeastOne(t *testing.T) {
	w, d := newTestWM(t)
	c := addClient(t, w, d, Geom{W: 300, H: 200})

	w.ToggleTag(1 << 1)
	if c.Tags != 1|1<<1 {
		t.Fatalf("tags = %b", c.Tags)
	}
	w.ToggleTag(1 << 1)
	if c.Tags != 1 {
		t.Fatalf("tags = %b", c.Tags)
	}
	w.ToggleTag(1)
	if c.Tags != 1 {
		t.Fatalf("client left tagless: %b", c.Tags)
	}
}

func TestFocusStackCyclesVisibleOnly(t *testing.T) {
	w, d := newTestWM(t)
	a := addClient(t, w, d, Geom{W: 300, H: 200})
	b := addClient(t, w, d, Geom{W: 300, H: 200})
	hidden := addClient(t, w, d, Geom{W: 300, H: 200})
	w.Tag(1 << 7) // moves hidden (the selected client) off the view

	if w.selmon.Sel == hidden {
		t.Fatal("setup: hidden client still selected")
	}

	start := w.selmon.Sel
	w.FocusStack(1)
	second := w.selmon.Sel
	if second == start || second == hidden {
		t.Fatalf("focus moved to %v", second)
	}
	w.FocusStack(1)
	if w.selmon.Sel != start {
		t.Fatal("two visible clients should cycle in two steps")
	}
	w.FocusStack(-1)
	if w.selmon.Sel != second {
		t.Fatal("backward cycle broken")
	}
	_, _ = a, b
}

func TestFocusStackLockedWhenFullscreen(t *testing.T) {
	w, d := newTestWM(t)
	addClient(t, w, d, Geom{W: 300, H: 200})
	c := addClient(t, w, d, Geom{W: 300, H: 200})
	w.setFullscreen(c, true)

	w.FocusStack(1)
	if w.selmon.Sel != c {
		t.Fatal("focus left a fullscreen client despite the lock")
	}
}

func TestToggleFloatingRespectsFullscreen(t *testing.T) {
	w, d := newTestWM(t)
	c := addClient(t, w, d, Geom{W: 300, H: 200})
	w.setFullscreen(c, true)

	w.ToggleFloating()
	if !c.IsFloating {
		t.Fatal("fullscreen client's floating state must not change")
	}
}

func TestToggleBarResizesWindowArea(t *testing.T) {
	w, _ := newTestWM(t)
	m := w.selmon
	wh := m.WH

	w.ToggleBar()
	if m.ShowBar {
		t.Fatal("bar still shown")
	}
	if m.WH != wh+w.bh {
		t.Fatalf("window height %d after hiding bar, want %d", m.WH, wh+w.bh)
	}
	w.ToggleBar()
	if m.WH != wh {
		t.Fatalf("window height %d after showing bar, want %d", m.WH, wh)
	}
}

func TestFocusMonAndTagMon(t *testing.T) {
	w, d := newTestWM(t,
		Geom{X: 0, Y: 0, W: 1920, H: 1080},
		Geom{X: 1920, Y: 0, W: 1280, H: 1024})
	c := addClient(t, w, d, Geom{W: 300, H: 200})

	w.FocusMon(1)
	if w.selmon != w.mons[1] {
		t.Fatal("selection did not move to the next monitor")
	}
	w.FocusMon(-1)
	if w.selmon != w.mons[0] {
		t.Fatal("selection did not move back")
	}

	w.TagMon(1)
	if c.Mon != w.mons[1] {
		t.Fatal("client did not follow tag-mon")
	}
}

func TestQuitStopsLoop(t *testing.T) {
	w, _ := newTestWM(t)
	w.running = true
	w.Quit(true)
	if w.running || !w.restart {
		t.Fatalf("running=%v restart=%v", w.running, w.restart)
	}
}
