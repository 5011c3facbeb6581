package wm

import (
	"context"
	"errors"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/zlateski/zwm/internal/bus"
)

// Placeholder title for clients with no usable name property.
const broken = "broken"

// ErrRestart is returned by Run when the quit action requested an in-place
// re-exec of the process.
var ErrRestart = errors.New("wm: restart requested")

// Config is the resolved static configuration surface the manager consumes.
// The config package builds it from the on-disk file.
type Config struct {
	Tags    []string
	Rules   []Rule
	Keys    []KeyBinding
	Buttons []ButtonBinding
	Layouts []Layout

	BorderPx       int
	Snap           int
	ShowBar        bool
	TopBar         bool
	MFact          float64
	NMaster        int
	ResizeHints    bool
	LockFullscreen bool

	// StatusFallback is shown when the root window carries no name.
	StatusFallback string
}

// TagMask covers every configured tag.
func (c *Config) TagMask() uint32 { return 1<<len(c.Tags) - 1 }

// WM owns all window manager state. Every field is mutated only from the
// event loop goroutine; collaborators outside it see state through snapshot
// broadcasts on the hub.
type WM struct {
	display Display
	surface Surface
	cfg     *Config
	hub     *bus.Hub[Snapshot]

	atoms  Atoms
	sw, sh int // screen geometry
	bh     int // bar height
	blw    int // layout symbol width on the bar
	lrpad  int // sum of left and right text padding
	stext  string

	mons   []*Monitor
	selmon *Monitor

	// motionMon is the monitor the pointer was last seen over.
	motionMon *Monitor

	ctx     context.Context
	events  <-chan xgb.Event
	running bool
	restart bool
}

func New(d Display, s Surface, cfg *Config, hub *bus.Hub[Snapshot]) *WM {
	return &WM{
		display: d,
		surface: s,
		cfg:     cfg,
		hub:     hub,
		ctx:     context.Background(),
	}
}

// Setup initializes geometry, bars, grabs and the initial focus state. The
// display must already own the root window's redirect mask.
func (wm *WM) Setup() error {
	wm.atoms = wm.display.Atoms()
	wm.sw, wm.sh = wm.display.RootSize()
	wm.lrpad = wm.surface.FontHeight()
	wm.bh = wm.surface.FontHeight() + 2

	wm.updateGeometry()
	wm.updateBars()
	wm.updateStatus()
	wm.grabKeys()
	wm.focus(nil)
	return nil
}

// Scan adopts windows that existed before the manager started: viewable or
// iconic ones first, their transients after.
func (wm *WM) Scan() {
	wins := wm.display.QueryTree()
	for _, w := range wins {
		wa, ok := wm.display.WindowAttributes(w)
		if !ok || wa.OverrideRedirect {
			continue
		}
		if _, transient := wm.display.TransientFor(w); transient {
			continue
		}
		if wa.Viewable || wm.display.WindowState(w) == StateIconic {
			wm.manage(w, wa)
		}
	}
	for _, w := range wins {
		wa, ok := wm.display.WindowAttributes(w)
		if !ok {
			continue
		}
		if _, transient := wm.display.TransientFor(w); !transient {
			continue
		}
		if wa.Viewable || wm.display.WindowState(w) == StateIconic {
			wm.manage(w, wa)
		}
	}
}

// Run processes events until the context is cancelled or a quit action is
// invoked. It returns ErrRestart when the quit requested an in-place restart.
func (wm *WM) Run(ctx context.Context, events <-chan xgb.Event) error {
	wm.ctx = ctx
	wm.events = events
	wm.running = true
	wm.display.Sync()

	for wm.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return errors.New("wm: display connection closed")
			}
			wm.dispatch(ev)
		}
	}

	wm.cleanup()
	if wm.restart {
		return ErrRestart
	}
	return nil
}

// cleanup hands every client back to the server in a sane state and drops
// the manager's windows and grabs.
func (wm *WM) cleanup() {
	wm.view(^uint32(0))
	for _, m := range wm.mons {
		m.lt[m.selLt] = Floating{}
		for len(m.stack) > 0 {
			wm.unmanage(m.stack[0], false)
		}
	}
	for len(wm.mons) > 0 {
		wm.removeMonitor(wm.mons[len(wm.mons)-1])
	}
	wm.display.Sync()
	wm.display.FocusRoot()
}

func (wm *WM) removeMonitor(m *Monitor) {
	wm.display.UnmapWindow(m.BarWin)
	wm.display.DestroyWindow(m.BarWin)
	for i, o := range wm.mons {
		if o == m {
			wm.mons = append(wm.mons[:i], wm.mons[i+1:]...)
			break
		}
	}
}

func (wm *WM) grabKeys() {
	grabs := make([]GrabKey, 0, len(wm.cfg.Keys))
	for _, k := range wm.cfg.Keys {
		grabs = append(grabs, GrabKey{Mod: k.Mod, Keysym: k.Keysym})
	}
	wm.display.GrabKeys(grabs)
}

func (wm *WM) clientButtons() []GrabButton {
	var grabs []GrabButton
	for _, b := range wm.cfg.Buttons {
		if b.Kind == ClkClientWin {
			grabs = append(grabs, GrabButton{Mod: b.Mod, Button: b.Button})
		}
	}
	return grabs
}

// winToClient scans all monitors for the client owning w.
func (wm *WM) winToClient(w xproto.Window) *Client {
	for _, m := range wm.mons {
		for _, c := range m.clients {
			if c.Win == w {
				return c
			}
		}
	}
	return nil
}

// winToMon maps a window to the monitor it is associated with: the pointer
// monitor for the root, the owner for bar and client windows, the selected
// monitor otherwise.
func (wm *WM) winToMon(w xproto.Window) *Monitor {
	if w == wm.display.Root() {
		if x, y, ok := wm.display.QueryPointer(); ok {
			return wm.rectToMon(x, y, 1, 1)
		}
	}
	for _, m := range wm.mons {
		if w == m.BarWin {
			return m
		}
	}
	if c := wm.winToClient(w); c != nil {
		return c.Mon
	}
	return wm.selmon
}

// rectToMon returns the monitor with the largest intersection with the given
// rectangle, defaulting to the selected monitor.
func (wm *WM) rectToMon(x, y, w, h int) *Monitor {
	r := wm.selmon
	area := 0
	for _, m := range wm.mons {
		if a := m.intersectArea(x, y, w, h); a > area {
			area = a
			r = m
		}
	}
	return r
}

// dirToMon walks the monitor list forward (dir > 0) or backward.
func (wm *WM) dirToMon(dir int) *Monitor {
	n := len(wm.mons)
	for i, m := range wm.mons {
		if m == wm.selmon {
			if dir > 0 {
				return wm.mons[(i+1)%n]
			}
			return wm.mons[(i+n-1)%n]
		}
	}
	return wm.selmon
}

// textWidth is the rendered width of s plus the bar's text padding.
func (wm *WM) textWidth(s string) int {
	return wm.surface.TextWidth(s) + wm.lrpad
}

func (wm *WM) updateStatus() {
	wm.stext = wm.display.TextProp(wm.display.Root(), xproto.AtomWmName)
	if wm.stext == "" {
		wm.stext = wm.cfg.StatusFallback
	}
	wm.drawBar(wm.selmon)
}
