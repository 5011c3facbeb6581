package wm

import "github.com/jezek/xgb/xproto"

// ClickKind classifies where on screen a button press landed.
type ClickKind int

const (
	ClkTagBar ClickKind = iota
	ClkLtSymbol
	ClkStatusText
	ClkWinTitle
	ClkClientWin
	ClkRootWin
)

// Click carries the press context to a button action. TagMask is the tag bit
// under the pointer for ClkTagBar presses and zero otherwise.
type Click struct {
	Kind    ClickKind
	TagMask uint32
}

// KeyBinding runs Do when the key chord is pressed. Mod is compared after
// lock modifiers are stripped.
type KeyBinding struct {
	Mod    uint16
	Keysym Keysym
	Do     func(*WM)
}

// ButtonBinding runs Do when the button chord is pressed in a matching
// screen region.
type ButtonBinding struct {
	Kind   ClickKind
	Mod    uint16
	Button xproto.Button
	Do     func(*WM, Click)
}
