package wm

// updateSizeHints refreshes the client's cached WM_NORMAL_HINTS. Base size
// falls back to the minimum size and vice versa, per ICCCM.
func (wm *WM) updateSizeHints(c *Client) {
	h, ok := wm.display.NormalHints(c.Win)
	if !ok {
		h = NormalHints{Flags: HintPMinSize}
	}

	if h.Flags&HintPBaseSize != 0 {
		c.BaseW, c.BaseH = h.BaseW, h.BaseH
	} else if h.Flags&HintPMinSize != 0 {
		c.BaseW, c.BaseH = h.MinW, h.MinH
	} else {
		c.BaseW, c.BaseH = 0, 0
	}

	if h.Flags&HintPResizeInc != 0 {
		c.IncW, c.IncH = h.IncW, h.IncH
	} else {
		c.IncW, c.IncH = 0, 0
	}

	if h.Flags&HintPMaxSize != 0 {
		c.MaxW, c.MaxH = h.MaxW, h.MaxH
	} else {
		c.MaxW, c.MaxH = 0, 0
	}

	if h.Flags&HintPMinSize != 0 {
		c.MinW, c.MinH = h.MinW, h.MinH
	} else if h.Flags&HintPBaseSize != 0 {
		c.MinW, c.MinH = h.BaseW, h.BaseH
	} else {
		c.MinW, c.MinH = 0, 0
	}

	// MinA is stored inverted (height over width) so both bounds compare
	// against a simple ratio in applySizeHints.
	if h.Flags&HintPAspect != 0 && h.MinAspectNum > 0 && h.MaxAspectDen > 0 {
		c.MinA = float64(h.MinAspectDen) / float64(h.MinAspectNum)
		c.MaxA = float64(h.MaxAspectNum) / float64(h.MaxAspectDen)
	} else {
		c.MinA, c.MaxA = 0, 0
	}

	c.IsFixed = c.MaxW != 0 && c.MaxH != 0 && c.MaxW == c.MinW && c.MaxH == c.MinH
}
