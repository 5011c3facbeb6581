package wm

import (
	"fmt"
	"testing"

	"github.com/jezek/xgb/xproto"
)

// fakeDisplay records the calls the core makes so tests can assert on the
// protocol traffic without an X server.
type fakeDisplay struct {
	screens []Geom
	rootW   int
	rootH   int

	titles     map[xproto.Window]string
	classes    map[xproto.Window][2]string // class, instance
	transients map[xproto.Window]xproto.Window
	attrs      map[xproto.Window]WindowAttributes
	hints      map[xproto.Window]NormalHints
	protocols  map[xproto.Window][]xproto.Atom

	pointerX, pointerY int

	calls   []string
	nextWin xproto.Window
	focused xproto.Window
}

func newFakeDisplay(screens ...Geom) *fakeDisplay {
	if len(screens) == 0 {
		screens = []Geom{{X: 0, Y: 0, W: 1920, H: 1080}}
	}
	return &fakeDisplay{
		screens:    screens,
		rootW:      1920,
		rootH:      1080,
		titles:     map[xproto.Window]string{},
		classes:    map[xproto.Window][2]string{},
		transients: map[xproto.Window]xproto.Window{},
		attrs:      map[xproto.Window]WindowAttributes{},
		hints:      map[xproto.Window]NormalHints{},
		protocols:  map[xproto.Window][]xproto.Atom{},
		nextWin:    1000,
	}
}

func (d *fakeDisplay) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

// calledWith reports whether any recorded call starts with prefix.
func (d *fakeDisplay) calledWith(prefix string) bool {
	for _, c := range d.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

func (d *fakeDisplay) reset() { d.calls = nil }

func (d *fakeDisplay) addWindow(g Geom) xproto.Window {
	d.nextWin++
	w := d.nextWin
	d.attrs[w] = WindowAttributes{Geom: g, Viewable: true}
	return w
}

func (d *fakeDisplay) Atoms() Atoms {
	return Atoms{
		UTF8String:            301,
		WMProtocols:           302,
		WMDelete:              303,
		WMState:               304,
		WMTakeFocus:           305,
		NetSupported:          306,
		NetWMName:             307,
		NetWMState:            308,
		NetWMCheck:            309,
		NetWMFullscreen:       310,
		NetActiveWindow:       311,
		NetWMWindowType:       312,
		NetWMWindowTypeDialog: 313,
		NetClientList:         314,
	}
}

func (d *fakeDisplay) Root() xproto.Window { return 1 }

func (d *fakeDisplay) Screens() []Geom      { return d.screens }
func (d *fakeDisplay) RootSize() (int, int) { return d.rootW, d.rootH }

func (d *fakeDisplay) WindowAttributes(w xproto.Window) (WindowAttributes, bool) {
	wa, ok := d.attrs[w]
	return wa, ok
}

func (d *fakeDisplay) TransientFor(w xproto.Window) (xproto.Window, bool) {
	t, ok := d.transients[w]
	return t, ok
}

func (d *fakeDisplay) NormalHints(w xproto.Window) (NormalHints, bool) {
	h, ok := d.hints[w]
	return h, ok
}

func (d *fakeDisplay) WMHints(xproto.Window) (Hints, bool) { return Hints{}, false }

func (d *fakeDisplay) ClassHint(w xproto.Window) (string, string) {
	ch := d.classes[w]
	return ch[0], ch[1]
}

func (d *fakeDisplay) TextProp(w xproto.Window, atom xproto.Atom) string {
	if atom == 307 {
		return d.titles[w]
	}
	if w == d.Root() {
		return d.titles[w]
	}
	return ""
}

func (d *fakeDisplay) AtomProp(xproto.Window, xproto.Atom) xproto.Atom { return 0 }

func (d *fakeDisplay) WindowState(xproto.Window) int32 { return StateNormal }

func (d *fakeDisplay) SupportsProtocol(w xproto.Window, proto xproto.Atom) bool {
	for _, p := range d.protocols[w] {
		if p == proto {
			return true
		}
	}
	return false
}

func (d *fakeDisplay) QueryTree() []xproto.Window {
	var wins []xproto.Window
	for w := range d.attrs {
		wins = append(wins, w)
	}
	return wins
}

func (d *fakeDisplay) QueryPointer() (int, int, bool) {
	return d.pointerX, d.pointerY, true
}

func (d *fakeDisplay) MoveWindow(w xproto.Window, x, y int) {
	d.record("move %d %d,%d", w, x, y)
}

func (d *fakeDisplay) MoveResizeWindow(w xproto.Window, x, y, width, height int) {
	d.record("moveresize %d %d,%d %dx%d", w, x, y, width, height)
}

func (d *fakeDisplay) ConfigureClient(w xproto.Window, g Geom, bw int) {
	d.record("configure %d %d,%d %dx%d bw=%d", w, g.X, g.Y, g.W, g.H, bw)
}

func (d *fakeDisplay) ConfigureVerbatim(ev xproto.ConfigureRequestEvent) {
	d.record("verbatim %d", ev.Window)
}

func (d *fakeDisplay) SetBorderWidth(w xproto.Window, bw int) {
	d.record("borderwidth %d %d", w, bw)
}

func (d *fakeDisplay) RaiseWindow(w xproto.Window) { d.record("raise %d", w) }

func (d *fakeDisplay) StackBelow(w, sibling xproto.Window) {
	d.record("stackbelow %d %d", w, sibling)
}

func (d *fakeDisplay) MapWindow(w xproto.Window) { d.record("map %d", w) }

func (d *fakeDisplay) CreateBarWindow(Geom) xproto.Window {
	d.nextWin++
	d.record("createbar %d", d.nextWin)
	return d.nextWin
}

func (d *fakeDisplay) DestroyWindow(w xproto.Window) { d.record("destroy %d", w) }
func (d *fakeDisplay) UnmapWindow(w xproto.Window)   { d.record("unmap %d", w) }

func (d *fakeDisplay) SendConfigureNotify(w xproto.Window, g Geom, bw int) {
	d.record("confignotify %d %d,%d %dx%d", w, g.X, g.Y, g.W, g.H)
}

func (d *fakeDisplay) SendProtocol(w xproto.Window, proto xproto.Atom) {
	d.record("protocol %d %d", w, proto)
}

func (d *fakeDisplay) SetNetWMState(w xproto.Window, state xproto.Atom) {
	d.record("netwmstate %d %d", w, state)
}

func (d *fakeDisplay) SetClientState(w xproto.Window, state uint32) {
	d.record("clientstate %d %d", w, state)
}

func (d *fakeDisplay) SetInputFocus(w xproto.Window) {
	d.focused = w
	d.record("focus %d", w)
}

func (d *fakeDisplay) FocusRoot() {
	d.focused = d.Root()
	d.record("focusroot")
}

func (d *fakeDisplay) SetActiveWindow(w xproto.Window) { d.record("active %d", w) }

func (d *fakeDisplay) SetClientList(wins []xproto.Window) {
	d.record("clientlist %d", len(wins))
}

func (d *fakeDisplay) AppendClientList(w xproto.Window) {
	d.record("clientlist+ %d", w)
}

func (d *fakeDisplay) SetBorderColor(w xproto.Window, scheme Scheme) {
	d.record("bordercolor %d %d", w, scheme)
}

func (d *fakeDisplay) SetUrgency(w xproto.Window, urgent bool) {
	d.record("urgency %d %v", w, urgent)
}

func (d *fakeDisplay) SelectClientInput(w xproto.Window) {}

func (d *fakeDisplay) GrabKeys([]GrabKey) {}

func (d *fakeDisplay) GrabButtons(xproto.Window, bool, []GrabButton) {}

func (d *fakeDisplay) KeysymFor(code xproto.Keycode) Keysym { return Keysym(code) }

func (d *fakeDisplay) CleanMask(state uint16) uint16 { return state & 0xff }

func (d *fakeDisplay) RefreshKeymap() {}

func (d *fakeDisplay) GrabPointer(Cursor) bool { return true }
func (d *fakeDisplay) UngrabPointer()          {}

func (d *fakeDisplay) WarpPointer(xproto.Window, int, int) {}
func (d *fakeDisplay) AllowPointerEvents()                 {}
func (d *fakeDisplay) GrabServer()                         { d.record("grabserver") }
func (d *fakeDisplay) UngrabServer()                       { d.record("ungrabserver") }

func (d *fakeDisplay) KillClient(w xproto.Window) { d.record("kill %d", w) }
func (d *fakeDisplay) Sync()                      {}

// fakeSurface sizes text by character count with a fixed-width pretend font.
type fakeSurface struct{}

func (fakeSurface) FontHeight() int                       { return 10 }
func (fakeSurface) TextWidth(s string) int                { return 7 * len(s) }
func (fakeSurface) SetScheme(Scheme)                      {}
func (fakeSurface) Rect(int, int, int, int, bool, bool)   {}
func (fakeSurface) Map(xproto.Window, int, int, int, int) {}
func (fakeSurface) Resize(int, int)                       {}

func (fakeSurface) Text(x, y, w, h, lpad int, s string, invert bool) int {
	return x + w
}

func testConfig() *Config {
	return &Config{
		Tags:           []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		Layouts:        []Layout{Tiled{}, Floating{}, Monocle{}},
		BorderPx:       1,
		Snap:           32,
		ShowBar:        true,
		TopBar:         true,
		MFact:          0.55,
		NMaster:        1,
		LockFullscreen: true,
		StatusFallback: "zwm",
	}
}

func newTestWM(t *testing.T, screens ...Geom) (*WM, *fakeDisplay) {
	t.Helper()
	d := newFakeDisplay(screens...)
	w := New(d, fakeSurface{}, testConfig(), nil)
	if err := w.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	d.reset()
	return w, d
}

// addClient manages a fresh window and returns its client.
func addClient(t *testing.T, w *WM, d *fakeDisplay, g Geom) *Client {
	t.Helper()
	win := d.addWindow(g)
	d.titles[win] = fmt.Sprintf("win%d", win)
	w.manage(win, d.attrs[win])
	c := w.winToClient(win)
	if c == nil {
		t.Fatalf("manage did not register window %d", win)
	}
	return c
}
