package wm

import (
	"fmt"
	"math"
	"testing"
)

func tiledSetup(t *testing.T, n int) (*WM, *Monitor, []*Client) {
	t.Helper()
	w, d := newTestWM(t)
	m := w.selmon
	clients := make([]*Client, n)
	for i := range clients {
		clients[i] = addClient(t, w, d, Geom{X: 10, Y: 10, W: 100, H: 100})
	}
	// manage prepends, so reverse into list order: clients[0] is the head of
	// the client list and therefore the master.
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		clients[i], clients[j] = clients[j], clients[i]
	}
	return w, m, clients
}

func TestTileSingleClientFillsWindowArea(t *testing.T) {
	_, m, cs := tiledSetup(t, 1)
	c := cs[0]
	if c.X != m.WX || c.Y != m.WY {
		t.Fatalf("client at %d,%d, want %d,%d", c.X, c.Y, m.WX, m.WY)
	}
	if c.FullWidth() != m.WW || c.FullHeight() != m.WH {
		t.Fatalf("client %dx%d (with border), want %dx%d",
			c.FullWidth(), c.FullHeight(), m.WW, m.WH)
	}
}

func TestTileMasterAndStackColumns(t *testing.T) {
	_, m, cs := tiledSetup(t, 3)
	master, s1, s2 := cs[0], cs[1], cs[2]

	wantMW := int(float64(m.WW) * m.MFact)
	if master.X != m.WX || master.FullWidth() != wantMW {
		t.Fatalf("master x=%d w=%d, want x=%d w=%d",
			master.X, master.FullWidth(), m.WX, wantMW)
	}
	if master.FullHeight() != m.WH {
		t.Fatalf("single master height %d, want %d", master.FullHeight(), m.WH)
	}

	for _, c := range []*Client{s1, s2} {
		if c.X != m.WX+wantMW {
			t.Fatalf("stack client x=%d, want %d", c.X, m.WX+wantMW)
		}
		if c.FullWidth() != m.WW-wantMW {
			t.Fatalf("stack client w=%d, want %d", c.FullWidth(), m.WW-wantMW)
		}
	}

	// Stack heights tile the column exactly, top to bottom.
	if s1.Y != m.WY {
		t.Fatalf("first stack client y=%d, want %d", s1.Y, m.WY)
	}
	if s2.Y != m.WY+s1.FullHeight() {
		t.Fatalf("second stack client y=%d, want %d", s2.Y, m.WY+s1.FullHeight())
	}
	if s1.FullHeight()+s2.FullHeight() != m.WH {
		t.Fatalf("stack heights %d+%d do not cover %d",
			s1.FullHeight(), s2.FullHeight(), m.WH)
	}
}

func TestTileHeightsAbsorbRounding(t *testing.T) {
	for _, n := range []int{3, 5, 7} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			_, m, cs := tiledSetup(t, n)
			total := 0
			for _, c := range cs[1:] { // stack clients
				total += c.FullHeight()
			}
			if total != m.WH {
				t.Fatalf("%d stack clients cover %d of %d", n-1, total, m.WH)
			}
		})
	}
}

func TestTileZeroNMasterPutsAllInStack(t *testing.T) {
	w, m, cs := tiledSetup(t, 2)
	m.NMaster = 0
	w.arrange(m)
	for _, c := range cs {
		if c.X != m.WX || c.FullWidth() != m.WW {
			t.Fatalf("with nmaster=0 client at x=%d w=%d, want full width column",
				c.X, c.FullWidth())
		}
	}
}

func TestMonocleSymbolCountsVisible(t *testing.T) {
	w, m, cs := tiledSetup(t, 3)
	w.SetLayout(Monocle{})
	if m.LtSymbol != "[3]" {
		t.Fatalf("monocle symbol %q, want [3]", m.LtSymbol)
	}
	for _, c := range cs {
		if c.FullWidth() != m.WW || c.FullHeight() != m.WH {
			t.Fatalf("monocle client %dx%d, want %dx%d",
				c.FullWidth(), c.FullHeight(), m.WW, m.WH)
		}
	}
}

func TestSetMFact(t *testing.T) {
	w, m, _ := tiledSetup(t, 1)

	w.SetMFact(0.05) // relative
	if got := m.MFact; math.Abs(got-0.60) > 1e-9 {
		t.Fatalf("relative adjust: mfact=%v, want 0.60", got)
	}

	w.SetMFact(1.25) // absolute: 1.25 - 1.0
	if got := m.MFact; got != 0.25 {
		t.Fatalf("absolute set: mfact=%v, want 0.25", got)
	}

	// Out of range results are rejected, not clamped.
	w.SetMFact(-0.25)
	if got := m.MFact; got != 0.25 {
		t.Fatalf("out-of-range adjust changed mfact to %v", got)
	}
	w.SetMFact(1.99)
	if got := m.MFact; got != 0.25 {
		t.Fatalf("out-of-range absolute changed mfact to %v", got)
	}
}

func TestSetMFactIgnoredWhenFloatingLayout(t *testing.T) {
	w, m, _ := tiledSetup(t, 1)
	w.SetLayout(Floating{})
	w.SetMFact(0.05)
	if m.MFact != 0.55 {
		t.Fatalf("mfact changed under floating layout: %v", m.MFact)
	}
}

func TestIncNMasterFloorsAtZero(t *testing.T) {
	w, m, _ := tiledSetup(t, 1)
	w.IncNMaster(-5)
	if m.NMaster != 0 {
		t.Fatalf("nmaster=%d, want 0", m.NMaster)
	}
	w.IncNMaster(2)
	if m.NMaster != 2 {
		t.Fatalf("nmaster=%d, want 2", m.NMaster)
	}
}

func TestSetLayoutTogglesSlot(t *testing.T) {
	w, m, _ := tiledSetup(t, 1)
	if m.Layout().Symbol() != "[]=" {
		t.Fatalf("initial layout %q", m.Layout().Symbol())
	}
	w.SetLayout(Monocle{})
	if _, ok := m.Layout().(Monocle); !ok {
		t.Fatalf("layout after set = %T", m.Layout())
	}
	// nil toggles back to the other slot.
	w.SetLayout(nil)
	if _, ok := m.Layout().(Monocle); ok {
		t.Fatal("toggle did not switch layout slots")
	}
	w.SetLayout(nil)
	if _, ok := m.Layout().(Monocle); !ok {
		t.Fatal("second toggle did not restore monocle")
	}
}
