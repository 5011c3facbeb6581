package wm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"
	"github.com/zlateski/zwm/internal/xcursor"
)

// ErrOtherWM is returned when another window manager already owns the root
// window's substructure redirect.
var ErrOtherWM = errors.New("wm: another window manager is already running")

const (
	rootEventMask = xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskButtonPress |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskLeaveWindow |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskPropertyChange

	clientEventMask = xproto.EventMaskEnterWindow |
		xproto.EventMaskFocusChange |
		xproto.EventMaskPropertyChange |
		xproto.EventMaskStructureNotify

	buttonMask = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease
	mouseMask  = buttonMask | xproto.EventMaskPointerMotion

	keysymNumLock = 0xff7f
)

// XDisplay implements Display on a live xgb connection.
type XDisplay struct {
	conn    *xgb.Conn
	screen  *xproto.ScreenInfo
	root    xproto.Window
	atoms   Atoms
	wmcheck xproto.Window

	cursors  [3]xproto.Cursor
	borderPx [2]uint32

	xinerama bool

	// keyboard mapping cache
	minKeycode  xproto.Keycode
	keysyms     []xproto.Keysym
	perKeycode  int
	numlockMask uint16
}

// NewXDisplay connects to the X server and registers as the window manager.
// borders holds the SchemeNorm and SchemeSel border colors as "#rrggbb".
func NewXDisplay(borders [2]string) (*XDisplay, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	d := &XDisplay{conn: conn}
	d.screen = xproto.Setup(conn).DefaultScreen(conn)
	d.root = d.screen.Root

	if err := d.setup(borders); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *XDisplay) setup(borders [2]string) error {
	for i, name := range borders {
		px, err := d.allocColor(name)
		if err != nil {
			return fmt.Errorf("border color %q: %w", name, err)
		}
		d.borderPx[i] = px
	}

	for i, shape := range []uint16{xcursor.LeftPtr, xcursor.Sizing, xcursor.Fleur} {
		cur, err := xcursor.CreateCursor(d.conn, shape)
		if err != nil {
			return fmt.Errorf("cursor: %w", err)
		}
		d.cursors[i] = cur
	}

	if err := d.internAtoms(); err != nil {
		return err
	}

	// Taking the substructure redirect fails when a manager already runs.
	err := xproto.ChangeWindowAttributesChecked(d.conn, d.root,
		xproto.CwEventMask|xproto.CwCursor,
		[]uint32{uint32(rootEventMask), uint32(d.cursors[CurNormal])}).Check()
	if err != nil {
		return ErrOtherWM
	}

	if err := d.setupEWMH(); err != nil {
		return err
	}
	if err := xinerama.Init(d.conn); err == nil {
		d.xinerama = true
	}
	d.RefreshKeymap()
	return nil
}

func (d *XDisplay) internAtoms() error {
	intern := func(name string) (xproto.Atom, error) {
		r, err := xproto.InternAtom(d.conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return 0, fmt.Errorf("intern %s: %w", name, err)
		}
		return r.Atom, nil
	}

	var err error
	set := func(dst *xproto.Atom, name string) {
		if err != nil {
			return
		}
		*dst, err = intern(name)
	}

	set(&d.atoms.UTF8String, "UTF8_STRING")
	set(&d.atoms.WMProtocols, "WM_PROTOCOLS")
	set(&d.atoms.WMDelete, "WM_DELETE_WINDOW")
	set(&d.atoms.WMState, "WM_STATE")
	set(&d.atoms.WMTakeFocus, "WM_TAKE_FOCUS")
	set(&d.atoms.NetSupported, "_NET_SUPPORTED")
	set(&d.atoms.NetWMName, "_NET_WM_NAME")
	set(&d.atoms.NetWMState, "_NET_WM_STATE")
	set(&d.atoms.NetWMCheck, "_NET_SUPPORTING_WM_CHECK")
	set(&d.atoms.NetWMFullscreen, "_NET_WM_STATE_FULLSCREEN")
	set(&d.atoms.NetActiveWindow, "_NET_ACTIVE_WINDOW")
	set(&d.atoms.NetWMWindowType, "_NET_WM_WINDOW_TYPE")
	set(&d.atoms.NetWMWindowTypeDialog, "_NET_WM_WINDOW_TYPE_DIALOG")
	set(&d.atoms.NetClientList, "_NET_CLIENT_LIST")
	return err
}

func (d *XDisplay) setupEWMH() error {
	wid, err := xproto.NewWindowId(d.conn)
	if err != nil {
		return err
	}
	d.wmcheck = wid
	if err := xproto.CreateWindowChecked(d.conn, 0, wid, d.root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOnly, d.screen.RootVisual,
		0, nil).Check(); err != nil {
		return err
	}

	check := make([]byte, 4)
	xgb.Put32(check, uint32(wid))
	xproto.ChangeProperty(d.conn, xproto.PropModeReplace, wid,
		d.atoms.NetWMCheck, xproto.AtomWindow, 32, 1, check)
	name := "zwm"
	xproto.ChangeProperty(d.conn, xproto.PropModeReplace, wid,
		d.atoms.NetWMName, d.atoms.UTF8String, 8, uint32(len(name)), []byte(name))
	xproto.ChangeProperty(d.conn, xproto.PropModeReplace, d.root,
		d.atoms.NetWMCheck, xproto.AtomWindow, 32, 1, check)

	supported := []xproto.Atom{
		d.atoms.NetSupported, d.atoms.NetWMName, d.atoms.NetWMState,
		d.atoms.NetWMCheck, d.atoms.NetWMFullscreen, d.atoms.NetActiveWindow,
		d.atoms.NetWMWindowType, d.atoms.NetWMWindowTypeDialog,
		d.atoms.NetClientList,
	}
	buf := make([]byte, 4*len(supported))
	for i, a := range supported {
		xgb.Put32(buf[4*i:], uint32(a))
	}
	xproto.ChangeProperty(d.conn, xproto.PropModeReplace, d.root,
		d.atoms.NetSupported, xproto.AtomAtom, 32, uint32(len(supported)), buf)
	xproto.DeleteProperty(d.conn, d.root, d.atoms.NetClientList)
	return nil
}

func (d *XDisplay) allocColor(name string) (uint32, error) {
	if len(name) != 7 || name[0] != '#' {
		return 0, fmt.Errorf("bad color %q", name)
	}
	rgb, err := strconv.ParseUint(name[1:], 16, 32)
	if err != nil {
		return 0, err
	}
	r := uint16(rgb >> 16 & 0xff)
	g := uint16(rgb >> 8 & 0xff)
	b := uint16(rgb & 0xff)
	reply, err := xproto.AllocColor(d.conn, d.screen.DefaultColormap,
		r*0x101, g*0x101, b*0x101).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Pixel, nil
}

// Conn exposes the underlying connection for the drawing surface.
func (d *XDisplay) Conn() *xgb.Conn             { return d.conn }
func (d *XDisplay) Screen() *xproto.ScreenInfo  { return d.screen }
func (d *XDisplay) Close()                      { d.conn.Close() }
func (d *XDisplay) NormalCursor() xproto.Cursor { return d.cursors[CurNormal] }

// Events pumps X events into a channel until the connection closes. Protocol
// errors are filtered here; the ones dwm-style managers expect during normal
// operation are only logged at debug level.
func (d *XDisplay) Events(ctx context.Context) <-chan xgb.Event {
	out := make(chan xgb.Event, 64)
	go func() {
		defer close(out)
		for {
			ev, err := d.conn.WaitForEvent()
			if ev == nil && err == nil {
				return
			}
			if err != nil {
				if d.logXError(err) {
					return
				}
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// logXError reports whether the error is fatal. The errors racing clients
// routinely provoke, such as configuring a window that has already been
// destroyed, are logged at debug level and dropped.
func (d *XDisplay) logXError(err xgb.Error) bool {
	switch err.(type) {
	case xproto.WindowError, xproto.MatchError, xproto.AccessError, xproto.DrawableError:
		slog.Debug("Ignored X error", "error", err)
		return false
	default:
		slog.Error("Fatal X error", "error", err)
		return true
	}
}

func (d *XDisplay) Atoms() Atoms        { return d.atoms }
func (d *XDisplay) Root() xproto.Window { return d.root }

func (d *XDisplay) RootSize() (int, int) {
	return int(d.screen.WidthInPixels), int(d.screen.HeightInPixels)
}

func (d *XDisplay) Screens() []Geom {
	if !d.xinerama {
		return nil
	}
	reply, err := xinerama.QueryScreens(d.conn).Reply()
	if err != nil {
		return nil
	}
	out := make([]Geom, 0, len(reply.ScreenInfo))
	for _, s := range reply.ScreenInfo {
		if s.Width == 0 || s.Height == 0 {
			continue
		}
		out = append(out, Geom{
			X: int(s.XOrg), Y: int(s.YOrg),
			W: int(s.Width), H: int(s.Height),
		})
	}
	return out
}

func (d *XDisplay) WindowAttributes(w xproto.Window) (WindowAttributes, bool) {
	attr, err := xproto.GetWindowAttributes(d.conn, w).Reply()
	if err != nil {
		return WindowAttributes{}, false
	}
	geom, err := xproto.GetGeometry(d.conn, xproto.Drawable(w)).Reply()
	if err != nil {
		return WindowAttributes{}, false
	}
	return WindowAttributes{
		Geom: Geom{
			X: int(geom.X), Y: int(geom.Y),
			W: int(geom.Width), H: int(geom.Height),
		},
		BorderWidth:      int(geom.BorderWidth),
		OverrideRedirect: attr.OverrideRedirect,
		Viewable:         attr.MapState == xproto.MapStateViewable,
	}, true
}

func (d *XDisplay) prop(w xproto.Window, atom xproto.Atom, typ xproto.Atom, length uint32) []byte {
	reply, err := xproto.GetProperty(d.conn, false, w, atom, typ, 0, length).Reply()
	if err != nil || reply.ValueLen == 0 {
		return nil
	}
	return reply.Value
}

func (d *XDisplay) TransientFor(w xproto.Window) (xproto.Window, bool) {
	v := d.prop(w, xproto.AtomWmTransientFor, xproto.AtomWindow, 1)
	if len(v) < 4 {
		return 0, false
	}
	return xproto.Window(xgb.Get32(v)), true
}

func (d *XDisplay) NormalHints(w xproto.Window) (NormalHints, bool) {
	// WM_SIZE_HINTS is 18 CARD32s: flags, legacy geometry (4), min, max,
	// increments, aspect ratios, base size and gravity.
	v := d.prop(w, xproto.AtomWmNormalHints, xproto.AtomWmSizeHints, 18)
	if len(v) < 18*4 {
		return NormalHints{}, false
	}
	u := func(i int) uint32 { return xgb.Get32(v[4*i:]) }
	return NormalHints{
		Flags: u(0),
		MinW:  int(u(5)), MinH: int(u(6)),
		MaxW: int(u(7)), MaxH: int(u(8)),
		IncW: int(u(9)), IncH: int(u(10)),
		MinAspectNum: int(u(11)), MinAspectDen: int(u(12)),
		MaxAspectNum: int(u(13)), MaxAspectDen: int(u(14)),
		BaseW: int(u(15)), BaseH: int(u(16)),
	}, true
}

// WM_HINTS flag bits (ICCCM).
const (
	hintInput   = 1 << 0
	hintUrgency = 1 << 8
)

func (d *XDisplay) WMHints(w xproto.Window) (Hints, bool) {
	v := d.prop(w, xproto.AtomWmHints, xproto.AtomWmHints, 9)
	if len(v) < 2*4 {
		return Hints{}, false
	}
	flags := xgb.Get32(v)
	return Hints{
		Urgent:         flags&hintUrgency != 0,
		InputSpecified: flags&hintInput != 0,
		Input:          xgb.Get32(v[4:]) != 0,
	}, true
}

func (d *XDisplay) ClassHint(w xproto.Window) (class, instance string) {
	v := d.prop(w, xproto.AtomWmClass, xproto.AtomString, 256)
	parts := splitNul(v)
	if len(parts) > 0 {
		instance = parts[0]
	}
	if len(parts) > 1 {
		class = parts[1]
	}
	return class, instance
}

func splitNul(v []byte) []string {
	var out []string
	start := 0
	for i, b := range v {
		if b == 0 {
			out = append(out, string(v[start:i]))
			start = i + 1
		}
	}
	if start < len(v) {
		out = append(out, string(v[start:]))
	}
	return out
}

func (d *XDisplay) TextProp(w xproto.Window, atom xproto.Atom) string {
	v := d.prop(w, atom, xproto.GetPropertyTypeAny, 256)
	for i, b := range v {
		if b == 0 {
			return string(v[:i])
		}
	}
	return string(v)
}

func (d *XDisplay) AtomProp(w xproto.Window, prop xproto.Atom) xproto.Atom {
	v := d.prop(w, prop, xproto.AtomAtom, 1)
	if len(v) < 4 {
		return 0
	}
	return xproto.Atom(xgb.Get32(v))
}

func (d *XDisplay) WindowState(w xproto.Window) int32 {
	v := d.prop(w, d.atoms.WMState, d.atoms.WMState, 2)
	if len(v) < 4 {
		return -1
	}
	return int32(xgb.Get32(v))
}

func (d *XDisplay) SupportsProtocol(w xproto.Window, proto xproto.Atom) bool {
	v := d.prop(w, d.atoms.WMProtocols, xproto.AtomAtom, 32)
	for i := 0; i+4 <= len(v); i += 4 {
		if xproto.Atom(xgb.Get32(v[i:])) == proto {
			return true
		}
	}
	return false
}

func (d *XDisplay) QueryTree() []xproto.Window {
	reply, err := xproto.QueryTree(d.conn, d.root).Reply()
	if err != nil {
		return nil
	}
	return reply.Children
}

func (d *XDisplay) QueryPointer() (int, int, bool) {
	reply, err := xproto.QueryPointer(d.conn, d.root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(reply.RootX), int(reply.RootY), true
}

func (d *XDisplay) MoveWindow(w xproto.Window, x, y int) {
	xproto.ConfigureWindow(d.conn, w,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(x)), uint32(int32(y))})
}

func (d *XDisplay) MoveResizeWindow(w xproto.Window, x, y, width, height int) {
	xproto.ConfigureWindow(d.conn, w,
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(x)), uint32(int32(y)), uint32(width), uint32(height)})
}

func (d *XDisplay) ConfigureClient(w xproto.Window, g Geom, bw int) {
	xproto.ConfigureWindow(d.conn, w,
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|
			xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(int32(g.X)), uint32(int32(g.Y)), uint32(g.W), uint32(g.H), uint32(bw)})
}

// ConfigureVerbatim forwards a configure request from an unmanaged window
// unchanged; value order follows the mask's bit order.
func (d *XDisplay) ConfigureVerbatim(ev xproto.ConfigureRequestEvent) {
	var values []uint32
	if ev.ValueMask&xproto.ConfigWindowX != 0 {
		values = append(values, uint32(int32(ev.X)))
	}
	if ev.ValueMask&xproto.ConfigWindowY != 0 {
		values = append(values, uint32(int32(ev.Y)))
	}
	if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
		values = append(values, uint32(ev.Width))
	}
	if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
		values = append(values, uint32(ev.Height))
	}
	if ev.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(ev.BorderWidth))
	}
	if ev.ValueMask&xproto.ConfigWindowSibling != 0 {
		values = append(values, uint32(ev.Sibling))
	}
	if ev.ValueMask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(ev.StackMode))
	}
	xproto.ConfigureWindow(d.conn, ev.Window, ev.ValueMask, values)
}

func (d *XDisplay) SetBorderWidth(w xproto.Window, bw int) {
	xproto.ConfigureWindow(d.conn, w, xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(bw)})
}

func (d *XDisplay) RaiseWindow(w xproto.Window) {
	xproto.ConfigureWindow(d.conn, w, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove})
}

func (d *XDisplay) StackBelow(w, sibling xproto.Window) {
	xproto.ConfigureWindow(d.conn, w,
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(sibling), xproto.StackModeBelow})
}

func (d *XDisplay) MapWindow(w xproto.Window) {
	xproto.MapWindow(d.conn, w)
}

func (d *XDisplay) CreateBarWindow(g Geom) xproto.Window {
	wid, err := xproto.NewWindowId(d.conn)
	if err != nil {
		return 0
	}
	err = xproto.CreateWindowChecked(d.conn, d.screen.RootDepth, wid, d.root,
		int16(g.X), int16(g.Y), uint16(g.W), uint16(g.H), 0,
		xproto.WindowClassInputOutput, d.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask|xproto.CwCursor,
		[]uint32{
			d.screen.BlackPixel,
			1,
			uint32(xproto.EventMaskButtonPress | xproto.EventMaskExposure),
			uint32(d.cursors[CurNormal]),
		}).Check()
	if err != nil {
		slog.Error("Failed to create bar window", "error", err)
		return 0
	}
	xproto.MapWindow(d.conn, wid)
	d.RaiseWindow(wid)
	return wid
}

func (d *XDisplay) DestroyWindow(w xproto.Window) {
	if w != 0 {
		xproto.DestroyWindow(d.conn, w)
	}
}

func (d *XDisplay) UnmapWindow(w xproto.Window) {
	if w != 0 {
		xproto.UnmapWindow(d.conn, w)
	}
}

func (d *XDisplay) SendConfigureNotify(w xproto.Window, g Geom, bw int) {
	ev := xproto.ConfigureNotifyEvent{
		Event:       w,
		Window:      w,
		X:           int16(g.X),
		Y:           int16(g.Y),
		Width:       uint16(g.W),
		Height:      uint16(g.H),
		BorderWidth: uint16(bw),
	}
	xproto.SendEvent(d.conn, false, w,
		xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

func (d *XDisplay) SendProtocol(w xproto.Window, proto xproto.Atom) {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   d.atoms.WMProtocols,
		Data: xproto.ClientMessageDataUnionData32New(
			[]uint32{uint32(proto), uint32(xproto.TimeCurrentTime), 0, 0, 0}),
	}
	xproto.SendEvent(d.conn, false, w,
		xproto.EventMaskNoEvent, string(ev.Bytes()))
}

func (d *XDisplay) SetNetWMState(w xproto.Window, state xproto.Atom) {
	if state == 0 {
		xproto.ChangeProperty(d.conn, xproto.PropModeReplace, w,
			d.atoms.NetWMState, xproto.AtomAtom, 32, 0, nil)
		return
	}
	buf := make([]byte, 4)
	xgb.Put32(buf, uint32(state))
	xproto.ChangeProperty(d.conn, xproto.PropModeReplace, w,
		d.atoms.NetWMState, xproto.AtomAtom, 32, 1, buf)
}

func (d *XDisplay) SetClientState(w xproto.Window, state uint32) {
	buf := make([]byte, 8)
	xgb.Put32(buf, state)
	xproto.ChangeProperty(d.conn, xproto.PropModeReplace, w,
		d.atoms.WMState, d.atoms.WMState, 32, 2, buf)
}

func (d *XDisplay) SetInputFocus(w xproto.Window) {
	xproto.SetInputFocus(d.conn, xproto.InputFocusPointerRoot, w,
		xproto.TimeCurrentTime)
}

func (d *XDisplay) FocusRoot() {
	xproto.SetInputFocus(d.conn, xproto.InputFocusPointerRoot, d.root,
		xproto.TimeCurrentTime)
}

func (d *XDisplay) SetActiveWindow(w xproto.Window) {
	if w == 0 {
		xproto.DeleteProperty(d.conn, d.root, d.atoms.NetActiveWindow)
		return
	}
	buf := make([]byte, 4)
	xgb.Put32(buf, uint32(w))
	xproto.ChangeProperty(d.conn, xproto.PropModeReplace, d.root,
		d.atoms.NetActiveWindow, xproto.AtomWindow, 32, 1, buf)
}

func (d *XDisplay) SetClientList(wins []xproto.Window) {
	buf := make([]byte, 4*len(wins))
	for i, w := range wins {
		xgb.Put32(buf[4*i:], uint32(w))
	}
	xproto.ChangeProperty(d.conn, xproto.PropModeReplace, d.root,
		d.atoms.NetClientList, xproto.AtomWindow, 32, uint32(len(wins)), buf)
}

func (d *XDisplay) AppendClientList(w xproto.Window) {
	buf := make([]byte, 4)
	xgb.Put32(buf, uint32(w))
	xproto.ChangeProperty(d.conn, xproto.PropModeAppend, d.root,
		d.atoms.NetClientList, xproto.AtomWindow, 32, 1, buf)
}

func (d *XDisplay) SetBorderColor(w xproto.Window, scheme Scheme) {
	xproto.ChangeWindowAttributes(d.conn, w, xproto.CwBorderPixel,
		[]uint32{d.borderPx[scheme]})
}

func (d *XDisplay) SetUrgency(w xproto.Window, urgent bool) {
	v := d.prop(w, xproto.AtomWmHints, xproto.AtomWmHints, 9)
	if len(v) < 4 {
		return
	}
	flags := xgb.Get32(v)
	if urgent {
		flags |= hintUrgency
	} else {
		flags &^= hintUrgency
	}
	xgb.Put32(v, flags)
	xproto.ChangeProperty(d.conn, xproto.PropModeReplace, w,
		xproto.AtomWmHints, xproto.AtomWmHints, 32, uint32(len(v)/4), v)
}

func (d *XDisplay) SelectClientInput(w xproto.Window) {
	xproto.ChangeWindowAttributes(d.conn, w, xproto.CwEventMask,
		[]uint32{uint32(clientEventMask)})
}

// RefreshKeymap refetches the keyboard mapping and recomputes which modifier
// carries Num_Lock.
func (d *XDisplay) RefreshKeymap() {
	setup := xproto.Setup(d.conn)
	d.minKeycode = setup.MinKeycode
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	if reply, err := xproto.GetKeyboardMapping(d.conn, setup.MinKeycode, count).Reply(); err == nil {
		d.keysyms = reply.Keysyms
		d.perKeycode = int(reply.KeysymsPerKeycode)
	}

	d.numlockMask = 0
	reply, err := xproto.GetModifierMapping(d.conn).Reply()
	if err != nil {
		return
	}
	per := int(reply.KeycodesPerModifier)
	for mod := 0; mod < 8; mod++ {
		for i := 0; i < per; i++ {
			code := reply.Keycodes[mod*per+i]
			if code != 0 && d.KeysymFor(code) == keysymNumLock {
				d.numlockMask = 1 << mod
			}
		}
	}
}

// KeysymFor returns the unshifted keysym for a keycode.
func (d *XDisplay) KeysymFor(code xproto.Keycode) Keysym {
	i := (int(code) - int(d.minKeycode)) * d.perKeycode
	if i < 0 || i >= len(d.keysyms) {
		return 0
	}
	return Keysym(d.keysyms[i])
}

// CleanMask strips lock modifiers and anything outside the modifier range so
// chords match regardless of Num Lock and Caps Lock.
func (d *XDisplay) CleanMask(state uint16) uint16 {
	mask := uint16(xproto.ModMaskShift | xproto.ModMaskControl |
		xproto.ModMask1 | xproto.ModMask2 | xproto.ModMask3 |
		xproto.ModMask4 | xproto.ModMask5)
	return state &^ (d.numlockMask | xproto.ModMaskLock) & mask
}

func (d *XDisplay) keycodesFor(sym Keysym) []xproto.Keycode {
	var codes []xproto.Keycode
	for i := 0; i*d.perKeycode < len(d.keysyms); i++ {
		if Keysym(d.keysyms[i*d.perKeycode]) == sym {
			codes = append(codes, xproto.Keycode(i+int(d.minKeycode)))
		}
	}
	return codes
}

var lockVariants = [4]uint16{0, xproto.ModMaskLock, 0, 0}

// grabVariants lists the modifier combinations a grab must cover so lock
// modifiers do not break bindings.
func (d *XDisplay) grabVariants() [4]uint16 {
	v := lockVariants
	v[2] = d.numlockMask
	v[3] = d.numlockMask | xproto.ModMaskLock
	return v
}

func (d *XDisplay) GrabKeys(keys []GrabKey) {
	xproto.UngrabKey(d.conn, xproto.GrabAny, d.root, xproto.ModMaskAny)
	variants := d.grabVariants()
	for _, k := range keys {
		for _, code := range d.keycodesFor(k.Keysym) {
			for _, extra := range variants {
				xproto.GrabKey(d.conn, true, d.root, k.Mod|extra, code,
					xproto.GrabModeAsync, xproto.GrabModeAsync)
			}
		}
	}
}

func (d *XDisplay) GrabButtons(w xproto.Window, focused bool, buttons []GrabButton) {
	xproto.UngrabButton(d.conn, xproto.ButtonIndexAny, w, xproto.ModMaskAny)
	if !focused {
		// Unfocused clients get a catch-all sync grab so the press both
		// focuses them and replays to the client.
		xproto.GrabButton(d.conn, false, w, uint16(buttonMask),
			xproto.GrabModeSync, xproto.GrabModeSync, xproto.WindowNone,
			xproto.CursorNone, xproto.ButtonIndexAny, xproto.ModMaskAny)
	}
	variants := d.grabVariants()
	for _, b := range buttons {
		for _, extra := range variants {
			xproto.GrabButton(d.conn, false, w, uint16(buttonMask),
				xproto.GrabModeAsync, xproto.GrabModeSync, xproto.WindowNone,
				xproto.CursorNone, byte(b.Button), b.Mod|extra)
		}
	}
}

func (d *XDisplay) GrabPointer(cur Cursor) bool {
	reply, err := xproto.GrabPointer(d.conn, false, d.root, uint16(mouseMask),
		xproto.GrabModeAsync, xproto.GrabModeAsync, xproto.WindowNone,
		d.cursors[cur], xproto.TimeCurrentTime).Reply()
	return err == nil && reply.Status == xproto.GrabStatusSuccess
}

func (d *XDisplay) UngrabPointer() {
	xproto.UngrabPointer(d.conn, xproto.TimeCurrentTime)
}

func (d *XDisplay) WarpPointer(w xproto.Window, x, y int) {
	xproto.WarpPointer(d.conn, xproto.WindowNone, w, 0, 0, 0, 0,
		int16(x), int16(y))
}

func (d *XDisplay) AllowPointerEvents() {
	xproto.AllowEvents(d.conn, xproto.AllowReplayPointer, xproto.TimeCurrentTime)
}

func (d *XDisplay) GrabServer()   { xproto.GrabServer(d.conn) }
func (d *XDisplay) UngrabServer() { xproto.UngrabServer(d.conn) }

func (d *XDisplay) KillClient(w xproto.Window) {
	xproto.SetCloseDownMode(d.conn, xproto.CloseDownDestroyAll)
	xproto.KillClient(d.conn, uint32(w))
}

func (d *XDisplay) Sync() {
	d.conn.Sync()
}
