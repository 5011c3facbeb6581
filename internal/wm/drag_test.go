package wm

import (
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// feedEvents primes the drag sub-loop's event source.
func feedEvents(w *WM, events ...xgb.Event) {
	c := make(chan xgb.Event, len(events))
	for _, ev := range events {
		c <- ev
	}
	close(c)
	w.events = c
}

func TestMoveMouseDragsFloatingClient(t *testing.T) {
	w, d := newTestWM(t)
	c := addClient(t, w, d, Geom{X: 100, Y: 100, W: 300, H: 200})
	w.ToggleFloating()
	w.resize(c, 100, 100, 300, 200, false)

	d.pointerX, d.pointerY = 110, 110
	feedEvents(w,
		xproto.MotionNotifyEvent{Time: 100, RootX: 160, RootY: 170},
		xproto.ButtonReleaseEvent{},
	)
	w.MoveMouse()

	if c.X != 150 || c.Y != 160 {
		t.Fatalf("client at %d,%d after drag, want 150,160", c.X, c.Y)
	}
}

func TestMoveMouseSnapsToEdge(t *testing.T) {
	w, d := newTestWM(t)
	c := addClient(t, w, d, Geom{X: 100, Y: 100, W: 300, H: 200})
	w.ToggleFloating()
	w.resize(c, 100, 100, 300, 200, false)

	// Drag to within snap distance of the left window-area edge.
	d.pointerX, d.pointerY = 110, 110
	feedEvents(w,
		xproto.MotionNotifyEvent{Time: 100, RootX: 30, RootY: 110},
		xproto.ButtonReleaseEvent{},
	)
	w.MoveMouse()

	if c.X != w.selmon.WX {
		t.Fatalf("client x=%d, want snapped to %d", c.X, w.selmon.WX)
	}
}

func TestMoveMousePullsTiledClientFloating(t *testing.T) {
	w, d := newTestWM(t)
	c := addClient(t, w, d, Geom{X: 100, Y: 100, W: 300, H: 200})
	if c.IsFloating {
		t.Fatal("setup: client should be tiled")
	}

	d.pointerX, d.pointerY = 110, 110
	feedEvents(w,
		xproto.MotionNotifyEvent{Time: 100, RootX: 300, RootY: 300},
		xproto.ButtonReleaseEvent{},
	)
	w.MoveMouse()

	if !c.IsFloating {
		t.Fatal("large drag did not pull the client out of the layout")
	}
}

func TestMoveMouseThrottlesMotion(t *testing.T) {
	w, d := newTestWM(t)
	c := addClient(t, w, d, Geom{X: 100, Y: 100, W: 300, H: 200})
	w.ToggleFloating()
	w.resize(c, 100, 100, 300, 200, false)

	d.pointerX, d.pointerY = 110, 110
	feedEvents(w,
		xproto.MotionNotifyEvent{Time: 100, RootX: 160, RootY: 110},
		// Within the 60Hz window of the previous event: dropped.
		xproto.MotionNotifyEvent{Time: 105, RootX: 400, RootY: 110},
		xproto.ButtonReleaseEvent{},
	)
	w.MoveMouse()

	if c.X != 150 {
		t.Fatalf("client x=%d, throttled motion should have been dropped", c.X)
	}
}

func TestResizeMouseGrowsClient(t *testing.T) {
	w, d := newTestWM(t)
	c := addClient(t, w, d, Geom{X: 0, Y: 0, W: 300, H: 200})
	w.ToggleFloating()
	w.resize(c, 100, 100, 300, 200, false)

	feedEvents(w,
		xproto.MotionNotifyEvent{Time: 100, RootX: 500, RootY: 400},
		xproto.ButtonReleaseEvent{},
	)
	w.ResizeMouse()

	wantW := 500 - c.X - 2*c.BW + 1
	wantH := 400 - c.Y - 2*c.BW + 1
	if c.W != wantW || c.H != wantH {
		t.Fatalf("client %dx%d after resize, want %dx%d", c.W, c.H, wantW, wantH)
	}
}

func TestMoveMouseIgnoredWhenFullscreen(t *testing.T) {
	w, d := newTestWM(t)
	c := addClient(t, w, d, Geom{X: 100, Y: 100, W: 300, H: 200})
	w.setFullscreen(c, true)
	x, y := c.X, c.Y

	feedEvents(w,
		xproto.MotionNotifyEvent{Time: 100, RootX: 300, RootY: 300},
		xproto.ButtonReleaseEvent{},
	)
	w.MoveMouse()
	if c.X != x || c.Y != y {
		t.Fatal("fullscreen client moved by drag")
	}
}
