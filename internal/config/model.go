package config

// Config is the on-disk configuration. A missing file is replaced by
// defaultConfig, which mirrors the traditional dwm defaults.
type Config struct {
	Tags []string `json:"tags" yaml:"tags"`

	Font   string `json:"font" yaml:"font"`
	Colors Colors `json:"colors" yaml:"colors"`

	BorderPx       int     `json:"border_px" yaml:"border_px"`
	Snap           int     `json:"snap" yaml:"snap"`
	ShowBar        bool    `json:"show_bar" yaml:"show_bar"`
	TopBar         bool    `json:"top_bar" yaml:"top_bar"`
	MFact          float64 `json:"mfact" yaml:"mfact"`
	NMaster        int     `json:"nmaster" yaml:"nmaster"`
	ResizeHints    bool    `json:"resize_hints" yaml:"resize_hints"`
	LockFullscreen bool    `json:"lock_fullscreen" yaml:"lock_fullscreen"`

	// ModKey is what "Mod" expands to in bindings.
	ModKey string `json:"mod_key" yaml:"mod_key"`

	Rules   []Rule   `json:"rules" yaml:"rules"`
	Keys    []Key    `json:"keys" yaml:"keys"`
	Buttons []Button `json:"buttons" yaml:"buttons"`
}

type Colors struct {
	Normal   ColorScheme `json:"normal" yaml:"normal"`
	Selected ColorScheme `json:"selected" yaml:"selected"`
}

type ColorScheme struct {
	FG     string `json:"fg" yaml:"fg"`
	BG     string `json:"bg" yaml:"bg"`
	Border string `json:"border" yaml:"border"`
}

type Rule struct {
	Class    string `json:"class" yaml:"class"`
	Instance string `json:"instance" yaml:"instance"`
	Title    string `json:"title" yaml:"title"`
	Tags     []int  `json:"tags" yaml:"tags"`
	Floating bool   `json:"floating" yaml:"floating"`
	Monitor  int    `json:"monitor" yaml:"monitor"`
}

// Key binds a chord to an action. Tag is 1-based; Dir, Delta, Command and
// Layout parameterize the actions that need them.
type Key struct {
	Mod    []string `json:"mod" yaml:"mod"`
	Key    string   `json:"key" yaml:"key"`
	Action string   `json:"action" yaml:"action"`

	Tag     int      `json:"tag,omitempty" yaml:"tag,omitempty"`
	Dir     int      `json:"dir,omitempty" yaml:"dir,omitempty"`
	Delta   float64  `json:"delta,omitempty" yaml:"delta,omitempty"`
	Command []string `json:"command,omitempty" yaml:"command,omitempty"`
	Layout  string   `json:"layout,omitempty" yaml:"layout,omitempty"`
}

// Button binds a pointer chord in a bar or window region to an action.
// Click is one of: tags, layout, status, title, client, root.
type Button struct {
	Click  string   `json:"click" yaml:"click"`
	Mod    []string `json:"mod" yaml:"mod"`
	Button int      `json:"button" yaml:"button"`
	Action string   `json:"action" yaml:"action"`

	Tag     int      `json:"tag,omitempty" yaml:"tag,omitempty"`
	Dir     int      `json:"dir,omitempty" yaml:"dir,omitempty"`
	Delta   float64  `json:"delta,omitempty" yaml:"delta,omitempty"`
	Command []string `json:"command,omitempty" yaml:"command,omitempty"`
	Layout  string   `json:"layout,omitempty" yaml:"layout,omitempty"`
}

var defaultTerminal = []string{"st"}
var defaultLauncher = []string{"dmenu_run"}

var defaultConfig = Config{
	Tags: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
	Font: "fixed",
	Colors: Colors{
		Normal:   ColorScheme{FG: "#bbbbbb", BG: "#222222", Border: "#444444"},
		Selected: ColorScheme{FG: "#eeeeee", BG: "#005577", Border: "#005577"},
	},
	BorderPx:       1,
	Snap:           32,
	ShowBar:        true,
	TopBar:         true,
	MFact:          0.55,
	NMaster:        1,
	ResizeHints:    false,
	LockFullscreen: true,
	ModKey:         "Mod1",
	Rules: []Rule{
		{Class: "Gimp", Floating: true, Monitor: -1},
		{Class: "Firefox", Tags: []int{9}, Monitor: -1},
	},
	Keys:    defaultKeys(),
	Buttons: defaultButtons(),
}

func defaultKeys() []Key {
	mod := []string{"Mod"}
	modShift := []string{"Mod", "Shift"}
	modCtrl := []string{"Mod", "Control"}
	modCtrlShift := []string{"Mod", "Control", "Shift"}

	keys := []Key{
		{Mod: mod, Key: "p", Action: "spawn", Command: defaultLauncher},
		{Mod: modShift, Key: "Return", Action: "spawn", Command: defaultTerminal},
		{Mod: mod, Key: "b", Action: "toggle-bar"},
		{Mod: mod, Key: "j", Action: "focus-stack", Dir: 1},
		{Mod: mod, Key: "k", Action: "focus-stack", Dir: -1},
		{Mod: mod, Key: "i", Action: "inc-nmaster", Dir: 1},
		{Mod: mod, Key: "d", Action: "inc-nmaster", Dir: -1},
		{Mod: mod, Key: "h", Action: "set-mfact", Delta: -0.05},
		{Mod: mod, Key: "l", Action: "set-mfact", Delta: 0.05},
		{Mod: mod, Key: "Return", Action: "zoom"},
		{Mod: mod, Key: "Tab", Action: "view-previous"},
		{Mod: modShift, Key: "c", Action: "kill"},
		{Mod: mod, Key: "t", Action: "set-layout", Layout: "tiled"},
		{Mod: mod, Key: "f", Action: "set-layout", Layout: "floating"},
		{Mod: mod, Key: "m", Action: "set-layout", Layout: "monocle"},
		{Mod: mod, Key: "space", Action: "toggle-layout"},
		{Mod: modShift, Key: "space", Action: "toggle-floating"},
		{Mod: mod, Key: "0", Action: "view-all"},
		{Mod: modShift, Key: "0", Action: "tag-all"},
		{Mod: mod, Key: "comma", Action: "focus-mon", Dir: -1},
		{Mod: mod, Key: "period", Action: "focus-mon", Dir: 1},
		{Mod: modShift, Key: "comma", Action: "tag-mon", Dir: -1},
		{Mod: modShift, Key: "period", Action: "tag-mon", Dir: 1},
		{Mod: modShift, Key: "q", Action: "quit"},
		{Mod: modCtrlShift, Key: "q", Action: "restart"},
	}
	for i := 1; i <= 9; i++ {
		k := string(rune('0' + i))
		keys = append(keys,
			Key{Mod: mod, Key: k, Action: "view", Tag: i},
			Key{Mod: modCtrl, Key: k, Action: "toggle-view", Tag: i},
			Key{Mod: modShift, Key: k, Action: "tag", Tag: i},
			Key{Mod: modCtrlShift, Key: k, Action: "toggle-tag", Tag: i},
		)
	}
	return keys
}

func defaultButtons() []Button {
	mod := []string{"Mod"}
	return []Button{
		{Click: "layout", Button: 1, Action: "toggle-layout"},
		{Click: "layout", Button: 3, Action: "set-layout", Layout: "monocle"},
		{Click: "title", Button: 2, Action: "zoom"},
		{Click: "status", Button: 2, Action: "spawn", Command: defaultTerminal},
		{Click: "client", Mod: mod, Button: 1, Action: "move-mouse"},
		{Click: "client", Mod: mod, Button: 2, Action: "toggle-floating"},
		{Click: "client", Mod: mod, Button: 3, Action: "resize-mouse"},
		{Click: "tags", Button: 1, Action: "view"},
		{Click: "tags", Button: 3, Action: "toggle-view"},
		{Click: "tags", Mod: mod, Button: 1, Action: "tag"},
		{Click: "tags", Mod: mod, Button: 3, Action: "toggle-tag"},
	}
}
