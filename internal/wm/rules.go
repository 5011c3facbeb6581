package wm

import "strings"

// Rule maps a new window's class/instance/title to an initial tag set,
// floating flag and target monitor. Empty fields always match; matching is
// substring containment. Rules apply first to last: tag bits accumulate,
// floating and monitor assignment take the last match.
type Rule struct {
	Class    string
	Instance string
	Title    string
	Tags     uint32
	Floating bool
	Monitor  int
}

func (r *Rule) matches(class, instance, title string) bool {
	return (r.Title == "" || strings.Contains(title, r.Title)) &&
		(r.Class == "" || strings.Contains(class, r.Class)) &&
		(r.Instance == "" || strings.Contains(instance, r.Instance))
}

// applyRules resets the client's tags and floating flag and applies the
// configured rules. A zero tag result falls back to the owning monitor's
// active tag view.
func (wm *WM) applyRules(c *Client) {
	c.IsFloating = false
	c.Tags = 0

	class, instance := wm.display.ClassHint(c.Win)
	if class == "" {
		class = broken
	}
	if instance == "" {
		instance = broken
	}

	for i := range wm.cfg.Rules {
		r := &wm.cfg.Rules[i]
		if !r.matches(class, instance, c.Name) {
			continue
		}
		c.IsFloating = r.Floating
		c.Tags |= r.Tags
		for _, m := range wm.mons {
			if m.Num == r.Monitor {
				c.Mon = m
				break
			}
		}
	}

	if masked := c.Tags & wm.cfg.TagMask(); masked != 0 {
		c.Tags = masked
	} else {
		c.Tags = c.Mon.TagSet()
	}
}
