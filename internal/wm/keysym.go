package wm

import "fmt"

// Key symbols the binding parser understands. Letters and digits map to
// their ASCII code; the rest are the usual X11 keysym values.
const (
	XKReturn    Keysym = 0xff0d
	XKTab       Keysym = 0xff09
	XKEscape    Keysym = 0xff1b
	XKSpace     Keysym = 0x0020
	XKComma     Keysym = 0x002c
	XKPeriod    Keysym = 0x002e
	XKLeft      Keysym = 0xff51
	XKUp        Keysym = 0xff52
	XKRight     Keysym = 0xff53
	XKDown      Keysym = 0xff54
	XKBackspace Keysym = 0xff08
)

var namedKeysyms = map[string]Keysym{
	"Return":    XKReturn,
	"Tab":       XKTab,
	"Escape":    XKEscape,
	"space":     XKSpace,
	"comma":     XKComma,
	"period":    XKPeriod,
	"Left":      XKLeft,
	"Up":        XKUp,
	"Right":     XKRight,
	"Down":      XKDown,
	"BackSpace": XKBackspace,
}

// ParseKeysym resolves a config key name: a single printable ASCII character
// or one of the named symbols above.
func ParseKeysym(name string) (Keysym, error) {
	if len(name) == 1 {
		ch := name[0]
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		if ch >= 0x20 && ch < 0x7f {
			return Keysym(ch), nil
		}
	}
	if ks, ok := namedKeysyms[name]; ok {
		return ks, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
