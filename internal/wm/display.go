package wm

import (
	"github.com/jezek/xgb/xproto"
)

// Geom is a screen rectangle.
type Geom struct {
	X, Y, W, H int
}

// Cursor selects one of the cursors the manager defines at startup.
type Cursor int

const (
	CurNormal Cursor = iota
	CurResize
	CurMove
)

// Scheme selects a color scheme for border and bar drawing.
type Scheme int

const (
	SchemeNorm Scheme = iota
	SchemeSel
)

// Atoms holds the interned atoms the manager compares and writes.
type Atoms struct {
	UTF8String xproto.Atom

	WMProtocols xproto.Atom
	WMDelete    xproto.Atom
	WMState     xproto.Atom
	WMTakeFocus xproto.Atom

	NetSupported          xproto.Atom
	NetWMName             xproto.Atom
	NetWMState            xproto.Atom
	NetWMCheck            xproto.Atom
	NetWMFullscreen       xproto.Atom
	NetActiveWindow       xproto.Atom
	NetWMWindowType       xproto.Atom
	NetWMWindowTypeDialog xproto.Atom
	NetClientList         xproto.Atom
}

// WindowAttributes is the subset of window attributes the manager inspects.
type WindowAttributes struct {
	Geom             Geom
	BorderWidth      int
	OverrideRedirect bool
	Viewable         bool
}

// NormalHints carries raw WM_NORMAL_HINTS values; interpretation of the flag
// bits happens in the core (see WM.updateSizeHints).
type NormalHints struct {
	Flags                      uint32
	MinW, MinH, MaxW, MaxH     int
	IncW, IncH                 int
	BaseW, BaseH               int
	MinAspectNum, MinAspectDen int
	MaxAspectNum, MaxAspectDen int
}

// WM_NORMAL_HINTS flag bits (ICCCM).
const (
	HintPMinSize   = 1 << 4
	HintPMaxSize   = 1 << 5
	HintPResizeInc = 1 << 6
	HintPAspect    = 1 << 7
	HintPBaseSize  = 1 << 8
)

// Hints is the parsed WM_HINTS subset the manager reacts to.
type Hints struct {
	Urgent         bool
	InputSpecified bool
	Input          bool
}

// Keysym is an X key symbol.
type Keysym uint32

// GrabKey and GrabButton describe one grab the display should hold.
type GrabKey struct {
	Mod    uint16
	Keysym Keysym
}

type GrabButton struct {
	Mod    uint16
	Button xproto.Button
}

// ICCCM WM_STATE values.
const (
	StateWithdrawn = 0
	StateNormal    = 1
	StateIconic    = 3
)

// Display is the window-server transport the core drives. The production
// implementation wraps an xgb connection; tests substitute a recording fake.
type Display interface {
	Atoms() Atoms
	Root() xproto.Window

	// Screens returns the hardware screen rectangles, falling back to the
	// root geometry when no multi-head extension is active. May contain
	// duplicates; reconciliation dedups.
	Screens() []Geom
	RootSize() (w, h int)

	WindowAttributes(w xproto.Window) (WindowAttributes, bool)
	TransientFor(w xproto.Window) (xproto.Window, bool)
	NormalHints(w xproto.Window) (NormalHints, bool)
	WMHints(w xproto.Window) (Hints, bool)
	ClassHint(w xproto.Window) (class, instance string)
	TextProp(w xproto.Window, atom xproto.Atom) string
	AtomProp(w xproto.Window, prop xproto.Atom) xproto.Atom
	WindowState(w xproto.Window) int32
	SupportsProtocol(w xproto.Window, proto xproto.Atom) bool
	QueryTree() []xproto.Window
	QueryPointer() (x, y int, ok bool)

	MoveWindow(w xproto.Window, x, y int)
	MoveResizeWindow(w xproto.Window, x, y, width, height int)
	ConfigureClient(w xproto.Window, g Geom, bw int)
	ConfigureVerbatim(ev xproto.ConfigureRequestEvent)
	SetBorderWidth(w xproto.Window, bw int)
	RaiseWindow(w xproto.Window)
	StackBelow(w, sibling xproto.Window)
	MapWindow(w xproto.Window)

	CreateBarWindow(g Geom) xproto.Window
	DestroyWindow(w xproto.Window)
	UnmapWindow(w xproto.Window)

	SendConfigureNotify(w xproto.Window, g Geom, bw int)
	SendProtocol(w xproto.Window, proto xproto.Atom)
	// SetNetWMState replaces _NET_WM_STATE with the single atom given, or
	// clears the property when the atom is zero.
	SetNetWMState(w xproto.Window, state xproto.Atom)
	SetClientState(w xproto.Window, state uint32)
	SetInputFocus(w xproto.Window)
	FocusRoot()
	SetActiveWindow(w xproto.Window)
	SetClientList(wins []xproto.Window)
	AppendClientList(w xproto.Window)
	SetBorderColor(w xproto.Window, scheme Scheme)
	SetUrgency(w xproto.Window, urgent bool)
	SelectClientInput(w xproto.Window)

	GrabKeys(keys []GrabKey)
	GrabButtons(w xproto.Window, focused bool, buttons []GrabButton)
	KeysymFor(code xproto.Keycode) Keysym
	CleanMask(state uint16) uint16
	RefreshKeymap()
	GrabPointer(cur Cursor) bool
	UngrabPointer()
	WarpPointer(w xproto.Window, x, y int)
	AllowPointerEvents()
	GrabServer()
	UngrabServer()

	KillClient(w xproto.Window)
	Sync()
}

// Surface is the drawing collaborator for the status bar.
type Surface interface {
	FontHeight() int
	TextWidth(s string) int
	SetScheme(s Scheme)
	// Text fills the background and draws s left-padded by lpad, returning
	// the x coordinate just past the drawn segment.
	Text(x, y, w, h, lpad int, s string, invert bool) int
	Rect(x, y, w, h int, filled, invert bool)
	Map(win xproto.Window, x, y, w, h int)
	Resize(w, h int)
}
