package wm

import "testing"

func TestUpdateGeometryCreatesMonitors(t *testing.T) {
	w, d := newTestWM(t)
	if len(w.mons) != 1 {
		t.Fatalf("monitors = %d, want 1", len(w.mons))
	}

	d.screens = append(d.screens, Geom{X: 1920, Y: 0, W: 1280, H: 1024})
	if !w.updateGeometry() {
		t.Fatal("adding a screen did not report dirty")
	}
	if len(w.mons) != 2 {
		t.Fatalf("monitors = %d, want 2", len(w.mons))
	}
	m := w.mons[1]
	if m.Num != 1 || m.MX != 1920 || m.MW != 1280 {
		t.Fatalf("second monitor num=%d mx=%d mw=%d", m.Num, m.MX, m.MW)
	}
	if m.WH != 1024-w.bh {
		t.Fatalf("second monitor window height %d, want bar subtracted", m.WH)
	}
}

func TestUpdateGeometryDedupsMirroredScreens(t *testing.T) {
	w, d := newTestWM(t)
	d.screens = []Geom{
		{X: 0, Y: 0, W: 1920, H: 1080},
		{X: 0, Y: 0, W: 1920, H: 1080},
	}
	w.updateGeometry()
	if len(w.mons) != 1 {
		t.Fatalf("mirrored outputs produced %d monitors, want 1", len(w.mons))
	}
}

func TestUpdateGeometryTeardownReattachesClients(t *testing.T) {
	w, d := newTestWM(t,
		Geom{X: 0, Y: 0, W: 1920, H: 1080},
		Geom{X: 1920, Y: 0, W: 1280, H: 1024})

	c := addClient(t, w, d, Geom{W: 300, H: 200})
	w.sendMon(c, w.mons[1])
	w.mons[1].SetTagSet(1 << 3)
	c.Tags = 1 << 3
	w.selmon = w.mons[1]

	d.screens = d.screens[:1]
	if !w.updateGeometry() {
		t.Fatal("removing a screen did not report dirty")
	}
	if len(w.mons) != 1 {
		t.Fatalf("monitors = %d, want 1", len(w.mons))
	}
	if c.Mon != w.mons[0] {
		t.Fatal("client not reattached to the surviving monitor")
	}
	// The tag assignment survives the move even if it is not in view there.
	if c.Tags != 1<<3 {
		t.Fatalf("client tags rewritten to %b during teardown", c.Tags)
	}
	if w.selmon != w.mons[0] {
		t.Fatal("selection still points at the removed monitor")
	}
	if w.winToClient(c.Win) != c {
		t.Fatal("client lost from registry during teardown")
	}
}

func TestRectToMonPicksLargestOverlap(t *testing.T) {
	w, _ := newTestWM(t,
		Geom{X: 0, Y: 0, W: 1920, H: 1080},
		Geom{X: 1920, Y: 0, W: 1280, H: 1024})

	if m := w.rectToMon(100, 100, 10, 10); m != w.mons[0] {
		t.Fatalf("rect on first screen mapped to monitor %d", m.Num)
	}
	if m := w.rectToMon(2000, 100, 10, 10); m != w.mons[1] {
		t.Fatalf("rect on second screen mapped to monitor %d", m.Num)
	}
	// A rectangle straddling the boundary goes to the larger overlap.
	if m := w.rectToMon(1920-4, 100, 10, 10); m != w.mons[1] {
		t.Fatalf("straddling rect mapped to monitor %d", m.Num)
	}
}

func TestDirToMonWraps(t *testing.T) {
	w, _ := newTestWM(t,
		Geom{X: 0, Y: 0, W: 1920, H: 1080},
		Geom{X: 1920, Y: 0, W: 1280, H: 1024})

	w.selmon = w.mons[1]
	if m := w.dirToMon(1); m != w.mons[0] {
		t.Fatalf("forward from last wrapped to monitor %d", m.Num)
	}
	w.selmon = w.mons[0]
	if m := w.dirToMon(-1); m != w.mons[1] {
		t.Fatalf("backward from first wrapped to monitor %d", m.Num)
	}
}
