package config

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
	"github.com/zlateski/zwm/internal/build"
	"github.com/zlateski/zwm/internal/wm"
)

// Resolve turns the on-disk configuration into the manager's runtime
// configuration. Action names become closures here so a bad binding fails at
// load time instead of on first use.
func Resolve(cfg Config) (*wm.Config, error) {
	// The tag mask is a uint32 with one bit spare for shifting, so 31 is
	// the ceiling.
	if len(cfg.Tags) == 0 || len(cfg.Tags) > 31 {
		return nil, fmt.Errorf("config: need between 1 and 31 tags, got %d", len(cfg.Tags))
	}

	out := &wm.Config{
		Tags:           cfg.Tags,
		Layouts:        []wm.Layout{wm.Tiled{}, wm.Floating{}, wm.Monocle{}},
		BorderPx:       cfg.BorderPx,
		Snap:           cfg.Snap,
		ShowBar:        cfg.ShowBar,
		TopBar:         cfg.TopBar,
		MFact:          cfg.MFact,
		NMaster:        cfg.NMaster,
		ResizeHints:    cfg.ResizeHints,
		LockFullscreen: cfg.LockFullscreen,
		StatusFallback: "zwm-" + build.Current.Version,
	}

	for i, r := range cfg.Rules {
		mask, err := tagMask(r.Tags, len(cfg.Tags))
		if err != nil {
			return nil, fmt.Errorf("config: rule %d: %w", i, err)
		}
		out.Rules = append(out.Rules, wm.Rule{
			Class:    r.Class,
			Instance: r.Instance,
			Title:    r.Title,
			Tags:     mask,
			Floating: r.Floating,
			Monitor:  r.Monitor,
		})
	}

	for i, k := range cfg.Keys {
		mod, err := parseMods(k.Mod, cfg.ModKey)
		if err != nil {
			return nil, fmt.Errorf("config: key %d: %w", i, err)
		}
		sym, err := wm.ParseKeysym(k.Key)
		if err != nil {
			return nil, fmt.Errorf("config: key %d: %w", i, err)
		}
		do, err := keyAction(k, len(cfg.Tags))
		if err != nil {
			return nil, fmt.Errorf("config: key %d (%s): %w", i, k.Key, err)
		}
		out.Keys = append(out.Keys, wm.KeyBinding{Mod: mod, Keysym: sym, Do: do})
	}

	for i, b := range cfg.Buttons {
		mod, err := parseMods(b.Mod, cfg.ModKey)
		if err != nil {
			return nil, fmt.Errorf("config: button %d: %w", i, err)
		}
		kind, err := parseClick(b.Click)
		if err != nil {
			return nil, fmt.Errorf("config: button %d: %w", i, err)
		}
		if b.Button < 1 || b.Button > 5 {
			return nil, fmt.Errorf("config: button %d: bad button %d", i, b.Button)
		}
		do, err := buttonAction(b, len(cfg.Tags))
		if err != nil {
			return nil, fmt.Errorf("config: button %d: %w", i, err)
		}
		out.Buttons = append(out.Buttons, wm.ButtonBinding{
			Kind:   kind,
			Mod:    mod,
			Button: xproto.Button(b.Button),
			Do:     do,
		})
	}

	return out, nil
}

func tagMask(tags []int, n int) (uint32, error) {
	var mask uint32
	for _, t := range tags {
		if t < 1 || t > n {
			return 0, fmt.Errorf("tag %d out of range", t)
		}
		mask |= 1 << (t - 1)
	}
	return mask, nil
}

func parseMods(names []string, modkey string) (uint16, error) {
	var mod uint16
	for _, name := range names {
		switch name {
		case "Mod":
			if modkey == "Mod" || modkey == "" {
				return 0, fmt.Errorf("mod_key cannot be %q", modkey)
			}
			m, err := parseMods([]string{modkey}, "")
			if err != nil {
				return 0, err
			}
			mod |= m
		case "Shift":
			mod |= xproto.ModMaskShift
		case "Control", "Ctrl":
			mod |= xproto.ModMaskControl
		case "Mod1":
			mod |= xproto.ModMask1
		case "Mod2":
			mod |= xproto.ModMask2
		case "Mod3":
			mod |= xproto.ModMask3
		case "Mod4":
			mod |= xproto.ModMask4
		case "Mod5":
			mod |= xproto.ModMask5
		default:
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
	}
	return mod, nil
}

func parseClick(name string) (wm.ClickKind, error) {
	switch name {
	case "tags":
		return wm.ClkTagBar, nil
	case "layout":
		return wm.ClkLtSymbol, nil
	case "status":
		return wm.ClkStatusText, nil
	case "title":
		return wm.ClkWinTitle, nil
	case "client":
		return wm.ClkClientWin, nil
	case "root":
		return wm.ClkRootWin, nil
	}
	return 0, fmt.Errorf("unknown click region %q", name)
}

// singleTag resolves the 1-based tag field of a binding into a mask.
func singleTag(tag, n int) (uint32, error) {
	if tag < 1 || tag > n {
		return 0, fmt.Errorf("tag %d out of range", tag)
	}
	return 1 << (tag - 1), nil
}

func keyAction(k Key, ntags int) (func(*wm.WM), error) {
	switch k.Action {
	case "view", "toggle-view", "tag", "toggle-tag":
		mask, err := singleTag(k.Tag, ntags)
		if err != nil {
			return nil, err
		}
		return tagged(k.Action, mask), nil
	case "view-previous":
		return func(w *wm.WM) { w.View(0) }, nil
	case "view-all":
		return func(w *wm.WM) { w.View(^uint32(0)) }, nil
	case "tag-all":
		return func(w *wm.WM) { w.Tag(^uint32(0)) }, nil
	case "focus-stack":
		dir := k.Dir
		return func(w *wm.WM) { w.FocusStack(dir) }, nil
	case "inc-nmaster":
		dir := k.Dir
		return func(w *wm.WM) { w.IncNMaster(dir) }, nil
	case "set-mfact":
		delta := k.Delta
		return func(w *wm.WM) { w.SetMFact(delta) }, nil
	case "zoom":
		return (*wm.WM).Zoom, nil
	case "kill":
		return (*wm.WM).KillSelected, nil
	case "set-layout":
		lt, err := wm.LayoutByName(k.Layout)
		if err != nil {
			return nil, err
		}
		return func(w *wm.WM) { w.SetLayout(lt) }, nil
	case "toggle-layout":
		return func(w *wm.WM) { w.SetLayout(nil) }, nil
	case "toggle-floating":
		return (*wm.WM).ToggleFloating, nil
	case "toggle-bar":
		return (*wm.WM).ToggleBar, nil
	case "focus-mon":
		dir := k.Dir
		return func(w *wm.WM) { w.FocusMon(dir) }, nil
	case "tag-mon":
		dir := k.Dir
		return func(w *wm.WM) { w.TagMon(dir) }, nil
	case "spawn":
		if len(k.Command) == 0 {
			return nil, fmt.Errorf("spawn needs a command")
		}
		argv := k.Command
		return func(w *wm.WM) { w.Spawn(argv) }, nil
	case "quit":
		return func(w *wm.WM) { w.Quit(false) }, nil
	case "restart":
		return func(w *wm.WM) { w.Quit(true) }, nil
	}
	return nil, fmt.Errorf("unknown action %q", k.Action)
}

// tagged builds the closure for the four per-tag actions.
func tagged(action string, mask uint32) func(*wm.WM) {
	switch action {
	case "view":
		return func(w *wm.WM) { w.View(mask) }
	case "toggle-view":
		return func(w *wm.WM) { w.ToggleView(mask) }
	case "tag":
		return func(w *wm.WM) { w.Tag(mask) }
	default:
		return func(w *wm.WM) { w.ToggleTag(mask) }
	}
}

func buttonAction(b Button, ntags int) (func(*wm.WM, wm.Click), error) {
	switch b.Action {
	case "view", "toggle-view", "tag", "toggle-tag":
		// On the tag bar an unset tag field means the clicked tag.
		if b.Tag == 0 && b.Click == "tags" {
			action := b.Action
			return func(w *wm.WM, c wm.Click) {
				if c.TagMask != 0 {
					tagged(action, c.TagMask)(w)
				}
			}, nil
		}
		mask, err := singleTag(b.Tag, ntags)
		if err != nil {
			return nil, err
		}
		do := tagged(b.Action, mask)
		return func(w *wm.WM, _ wm.Click) { do(w) }, nil
	case "move-mouse":
		return func(w *wm.WM, _ wm.Click) { w.MoveMouse() }, nil
	case "resize-mouse":
		return func(w *wm.WM, _ wm.Click) { w.ResizeMouse() }, nil
	}

	do, err := keyAction(Key{
		Action:  b.Action,
		Tag:     b.Tag,
		Dir:     b.Dir,
		Delta:   b.Delta,
		Command: b.Command,
		Layout:  b.Layout,
	}, ntags)
	if err != nil {
		return nil, err
	}
	return func(w *wm.WM, _ wm.Click) { do(w) }, nil
}
