package wm

// Snapshot is an immutable view of manager state, broadcast on the hub after
// every bar redraw for out-of-loop consumers like the control server.
type Snapshot struct {
	Status     string        `json:"status"`
	SelMonitor int           `json:"sel_monitor"`
	Monitors   []MonitorInfo `json:"monitors"`
}

type MonitorInfo struct {
	Num          int          `json:"num"`
	X            int          `json:"x"`
	Y            int          `json:"y"`
	W            int          `json:"w"`
	H            int          `json:"h"`
	TagSet       uint32       `json:"tag_set"`
	LayoutSymbol string       `json:"layout_symbol"`
	MFact        float64      `json:"mfact"`
	NMaster      int          `json:"nmaster"`
	ShowBar      bool         `json:"show_bar"`
	Selected     string       `json:"selected,omitempty"`
	Clients      []ClientInfo `json:"clients"`
}

type ClientInfo struct {
	Window     uint32 `json:"window"`
	Name       string `json:"name"`
	Tags       uint32 `json:"tags"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	W          int    `json:"w"`
	H          int    `json:"h"`
	Floating   bool   `json:"floating"`
	Fullscreen bool   `json:"fullscreen"`
	Urgent     bool   `json:"urgent"`
}

func (wm *WM) buildSnapshot() Snapshot {
	snap := Snapshot{
		Status:   wm.stext,
		Monitors: make([]MonitorInfo, 0, len(wm.mons)),
	}
	for _, m := range wm.mons {
		if m == wm.selmon {
			snap.SelMonitor = m.Num
		}
		mi := MonitorInfo{
			Num:          m.Num,
			X:            m.MX,
			Y:            m.MY,
			W:            m.MW,
			H:            m.MH,
			TagSet:       m.TagSet(),
			LayoutSymbol: m.LtSymbol,
			MFact:        m.MFact,
			NMaster:      m.NMaster,
			ShowBar:      m.ShowBar,
			Clients:      make([]ClientInfo, 0, len(m.clients)),
		}
		if m.Sel != nil {
			mi.Selected = m.Sel.Name
		}
		for _, c := range m.clients {
			mi.Clients = append(mi.Clients, ClientInfo{
				Window:     uint32(c.Win),
				Name:       c.Name,
				Tags:       c.Tags,
				X:          c.X,
				Y:          c.Y,
				W:          c.W,
				H:          c.H,
				Floating:   c.IsFloating,
				Fullscreen: c.IsFullscreen,
				Urgent:     c.IsUrgent,
			})
		}
		snap.Monitors = append(snap.Monitors, mi)
	}
	return snap
}

func (wm *WM) publishSnapshot() {
	if wm.hub == nil {
		return
	}
	_ = wm.hub.Broadcast(wm.ctx, wm.buildSnapshot())
}
