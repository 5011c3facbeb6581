// Package drw renders the status bar with core X fonts onto an off-screen
// pixmap that is copied to bar windows on demand.
package drw

import (
	"fmt"
	"strconv"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/zlateski/zwm/internal/wm"
)

// ColorScheme is a foreground and background pair given as "#rrggbb".
type ColorScheme struct {
	FG string
	BG string
}

type scheme struct {
	fg uint32
	bg uint32
}

// Drw implements wm.Surface.
type Drw struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo

	pixmap xproto.Pixmap
	gc     xproto.Gcontext
	w, h   int

	font    xproto.Font
	ascent  int
	descent int

	schemes [2]scheme
	cur     scheme
}

// New opens the bar font and allocates a drawing pixmap of the given size.
func New(conn *xgb.Conn, screen *xproto.ScreenInfo, fontName string, schemes [2]ColorScheme) (*Drw, error) {
	d := &Drw{conn: conn, screen: screen}

	for i, cs := range schemes {
		fg, err := d.allocColor(cs.FG)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", cs.FG, err)
		}
		bg, err := d.allocColor(cs.BG)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", cs.BG, err)
		}
		d.schemes[i] = scheme{fg: fg, bg: bg}
	}
	d.cur = d.schemes[0]

	fid, err := xproto.NewFontId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.OpenFontChecked(conn, fid, uint16(len(fontName)), fontName).Check(); err != nil {
		return nil, fmt.Errorf("font %q: %w", fontName, err)
	}
	d.font = fid

	info, err := xproto.QueryFont(conn, xproto.Fontable(fid)).Reply()
	if err != nil {
		return nil, err
	}
	d.ascent = int(info.FontAscent)
	d.descent = int(info.FontDescent)

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(screen.Root),
		xproto.GcFont, []uint32{uint32(fid)}).Check(); err != nil {
		return nil, err
	}
	d.gc = gc

	d.Resize(int(screen.WidthInPixels), d.FontHeight()+2)
	return d, nil
}

func (d *Drw) allocColor(name string) (uint32, error) {
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

func (d *Drw) FontHeight() int { return d.ascent + d.descent }

// TextWidth measures s with the bar font.
func (d *Drw) TextWidth(s string) int {
	if s == "" {
		return 0
	}
	chars := make([]xproto.Char2b, len(s))
	for i := 0; i < len(s); i++ {
		chars[i] = xproto.Char2b{Byte2: s[i]}
	}
	reply, err := xproto.QueryTextExtents(d.conn, xproto.Fontable(d.font),
		chars, uint16(len(chars))).Reply()
	if err != nil {
		return 0
	}
	return int(reply.OverallWidth)
}

func (d *Drw) SetScheme(s wm.Scheme) {
	d.cur = d.schemes[s]
}

// Text fills the cell with the scheme background and draws s left-padded by
// lpad, vertically centered. It returns the x coordinate past the cell.
func (d *Drw) Text(x, y, w, h, lpad int, s string, invert bool) int {
	fg, bg := d.cur.fg, d.cur.bg
	if invert {
		fg, bg = bg, fg
	}

	d.fill(x, y, w, h, bg)
	if s != "" {
		// Truncate instead of bleeding into the neighbor cell.
		avail := w - lpad
		for len(s) > 0 && d.TextWidth(s) > avail {
			s = s[:len(s)-1]
		}
		if len(s) > 0 {
			xproto.ChangeGC(d.conn, d.gc,
				xproto.GcForeground|xproto.GcBackground,
				[]uint32{fg, bg})
			ty := y + (h-d.FontHeight())/2 + d.ascent
			xproto.ImageText8(d.conn, byte(len(s)), xproto.Drawable(d.pixmap),
				d.gc, int16(x+lpad), int16(ty), s)
		}
	}
	return x + w
}

func (d *Drw) Rect(x, y, w, h int, filled, invert bool) {
	px := d.cur.fg
	if invert {
		px = d.cur.bg
	}
	xproto.ChangeGC(d.conn, d.gc, xproto.GcForeground, []uint32{px})
	rect := []xproto.Rectangle{{
		X: int16(x), Y: int16(y), Width: uint16(w), Height: uint16(h),
	}}
	if filled {
		xproto.PolyFillRectangle(d.conn, xproto.Drawable(d.pixmap), d.gc, rect)
	} else {
		rect[0].Width--
		rect[0].Height--
		xproto.PolyRectangle(d.conn, xproto.Drawable(d.pixmap), d.gc, rect)
	}
}

func (d *Drw) fill(x, y, w, h int, px uint32) {
	xproto.ChangeGC(d.conn, d.gc, xproto.GcForeground, []uint32{px})
	xproto.PolyFillRectangle(d.conn, xproto.Drawable(d.pixmap), d.gc,
		[]xproto.Rectangle{{
			X: int16(x), Y: int16(y), Width: uint16(w), Height: uint16(h),
		}})
}

// Map copies the drawn region onto a bar window.
func (d *Drw) Map(win xproto.Window, x, y, w, h int) {
	xproto.CopyArea(d.conn, xproto.Drawable(d.pixmap), xproto.Drawable(win),
		d.gc, int16(x), int16(y), int16(x), int16(y), uint16(w), uint16(h))
	d.conn.Sync()
}

// Resize replaces the backing pixmap; previous contents are lost.
func (d *Drw) Resize(w, h int) {
	if w == d.w && h == d.h && d.pixmap != 0 {
		return
	}
	if d.pixmap != 0 {
		xproto.FreePixmap(d.conn, d.pixmap)
	}
	pid, err := xproto.NewPixmapId(d.conn)
	if err != nil {
		return
	}
	xproto.CreatePixmap(d.conn, d.screen.RootDepth, pid,
		xproto.Drawable(d.screen.Root), uint16(w), uint16(h))
	d.pixmap = pid
	d.w, d.h = w, h
}
