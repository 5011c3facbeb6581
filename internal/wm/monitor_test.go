package wm

import "testing"

func testMonitor() *Monitor {
	m := newMonitor(testConfig())
	m.MW, m.MH = 1920, 1080
	m.WW, m.WH = 1920, 1080
	return m
}

func TestAttachDetach(t *testing.T) {
	m := testMonitor()
	a := &Client{Tags: 1, Mon: m}
	b := &Client{Tags: 1, Mon: m}

	m.Attach(a)
	m.Attach(b)
	if got := m.Clients(); len(got) != 2 || got[0] != b || got[1] != a {
		t.Fatalf("expected newest-first order [b a], got %v", got)
	}

	// Attaching an already attached client must not duplicate it.
	m.Attach(a)
	if len(m.Clients()) != 2 {
		t.Fatalf("double attach duplicated client: %d entries", len(m.Clients()))
	}

	m.Detach(a)
	if got := m.Clients(); len(got) != 1 || got[0] != b {
		t.Fatalf("detach left %v", got)
	}
	m.Detach(a) // absent, must be a no-op
	if len(m.Clients()) != 1 {
		t.Fatal("detach of absent client changed the list")
	}
}

func TestDetachStackReselectsVisible(t *testing.T) {
	m := testMonitor()
	hidden := &Client{Tags: 2, Mon: m} // tag 2 not in view
	vis := &Client{Tags: 1, Mon: m}
	sel := &Client{Tags: 1, Mon: m}

	m.AttachStack(vis)
	m.AttachStack(hidden)
	m.AttachStack(sel)
	m.Sel = sel

	m.DetachStack(sel)
	if m.Sel != vis {
		t.Fatalf("selection fell back to %v, want first visible stack entry", m.Sel)
	}

	m.Sel = vis
	m.DetachStack(vis)
	if m.Sel != nil {
		t.Fatalf("selection should be empty with only hidden clients, got %v", m.Sel)
	}
}

func TestDetachStackOfUnselected(t *testing.T) {
	m := testMonitor()
	a := &Client{Tags: 1, Mon: m}
	b := &Client{Tags: 1, Mon: m}
	m.AttachStack(a)
	m.AttachStack(b)
	m.Sel = b

	m.DetachStack(a)
	if m.Sel != b {
		t.Fatalf("removing an unselected client changed selection to %v", m.Sel)
	}
}

func TestTiledClientsFiltersFloatingAndHidden(t *testing.T) {
	m := testMonitor()
	tiled := &Client{Tags: 1, Mon: m}
	floating := &Client{Tags: 1, Mon: m, IsFloating: true}
	hidden := &Client{Tags: 2, Mon: m}
	for _, c := range []*Client{tiled, floating, hidden} {
		m.Attach(c)
	}

	got := m.TiledClients()
	if len(got) != 1 || got[0] != tiled {
		t.Fatalf("TiledClients = %v, want only the visible tiled client", got)
	}
}

func TestUpdateBarPos(t *testing.T) {
	const bh = 12
	tests := []struct {
		name    string
		showBar bool
		topBar  bool
		wantWY  int
		wantWH  int
		wantBY  int
	}{
		{"top", true, true, 12, 1068, 0},
		{"bottom", true, false, 0, 1068, 1068},
		{"hidden", false, true, 0, 1080, -12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMonitor()
			m.ShowBar = tt.showBar
			m.TopBar = tt.topBar
			m.updateBarPos(bh)
			if m.WY != tt.wantWY || m.WH != tt.wantWH || m.BY != tt.wantBY {
				t.Fatalf("got wy=%d wh=%d by=%d, want wy=%d wh=%d by=%d",
					m.WY, m.WH, m.BY, tt.wantWY, tt.wantWH, tt.wantBY)
			}
		})
	}
}

func TestTagSetSlots(t *testing.T) {
	m := testMonitor()
	m.SetTagSet(1 << 2)
	m.FlipTags()
	m.SetTagSet(1 << 4)
	if m.TagSet() != 1<<4 {
		t.Fatalf("active tag set = %b", m.TagSet())
	}
	m.FlipTags()
	if m.TagSet() != 1<<2 {
		t.Fatalf("previous tag set = %b, want %b", m.TagSet(), 1<<2)
	}
}
