package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/pixelplane/renderwin/internal/display"
	"github.com/pixelplane/renderwin/internal/geometry"
)

// Monitors retrieves all active monitors using XRandR. CRTC enumeration order
// is the adapter order exposed to the device layer. Geometry is re-queried on
// every call; monitors can be reconfigured at any time.
func (c *Connection) Monitors() ([]display.MonitorInfo, error) {
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if primary, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primaryOutput = primary.Output
	}

	// Refresh rate per mode: dot clock over total raster size.
	rates := make(map[randr.Mode]int, len(resources.Modes))
	for _, mi := range resources.Modes {
		total := int(mi.Htotal) * int(mi.Vtotal)
		if total > 0 {
			rates[randr.Mode(mi.Id)] = (int(mi.DotClock) + total/2) / total
		}
	}

	var monitors []display.MonitorInfo
	for _, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs.
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		primary := false
		for _, out := range crtcInfo.Outputs {
			if out == primaryOutput {
				primary = true
				break
			}
		}

		full := geometry.Rect{
			Left:   int(crtcInfo.X),
			Top:    int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}

		monitors = append(monitors, display.MonitorInfo{
			Handle:      display.Handle(crtc),
			Full:        full,
			Work:        c.workAreaFor(full),
			RefreshRate: rates[crtcInfo.Mode],
			Primary:     primary,
		})
	}

	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}
	return monitors, nil
}

// AdapterCount reports the number of active monitors in adapter order.
func (c *Connection) AdapterCount() int {
	monitors, err := c.Monitors()
	if err != nil {
		return 0
	}
	return len(monitors)
}

// AdapterMonitor returns the monitor for an adapter index.
func (c *Connection) AdapterMonitor(index int) (display.MonitorInfo, bool) {
	monitors, err := c.Monitors()
	if err != nil || index < 0 || index >= len(monitors) {
		return display.MonitorInfo{}, false
	}
	return monitors[index], true
}

// MonitorFromPoint returns the monitor containing p, falling back to the
// primary monitor and finally the first one. Lookup is total.
func (c *Connection) MonitorFromPoint(p geometry.Point) display.MonitorInfo {
	monitors, err := c.Monitors()
	if err != nil || len(monitors) == 0 {
		return display.MonitorInfo{}
	}
	for _, mon := range monitors {
		if mon.Full.Contains(p) {
			return mon
		}
	}
	for _, mon := range monitors {
		if mon.Primary {
			return mon
		}
	}
	return monitors[0]
}

// monitorFromXWindow returns the monitor containing the window's center.
func (c *Connection) monitorFromXWindow(win xproto.Window) display.MonitorInfo {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return c.MonitorFromPoint(geometry.Point{})
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), win, c.Root, 0, 0).Reply()
	if err != nil {
		return c.MonitorFromPoint(geometry.Point{})
	}
	return c.MonitorFromPoint(geometry.Point{
		X: int(translate.DstX) + int(geom.Width)/2,
		Y: int(translate.DstY) + int(geom.Height)/2,
	})
}

// workAreaFor shrinks a monitor rectangle by the struts of any dock windows
// overlapping it. When no struts apply, the EWMH work area of the current
// desktop is intersected instead.
func (c *Connection) workAreaFor(full geometry.Rect) geometry.Rect {
	if work, ok := c.applyDockStruts(full); ok {
		return work
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return full
	}
	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}
	wa := workArea[desktopIndex]

	// Only adjust by the part of the work area on this monitor.
	x1 := max(full.Left, int(wa.X))
	y1 := max(full.Top, int(wa.Y))
	x2 := min(full.Right(), int(wa.X)+int(wa.Width))
	y2 := min(full.Bottom(), int(wa.Y)+int(wa.Height))
	if x2 <= x1 || y2 <= y1 {
		return full
	}
	return geometry.Rect{Left: x1, Top: y1, Width: x2 - x1, Height: y2 - y1}
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

func (c *Connection) applyDockStruts(full geometry.Rect) (geometry.Rect, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return geometry.Rect{}, false
	}
	rootWidth := int(rootGeom.Width)
	rootHeight := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return geometry.Rect{}, false
	}

	var struts dockStruts
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}

		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			accumulateStruts(full, rootWidth, rootHeight, sp, &struts)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			sp := &ewmh.WmStrutPartial{
				Left:         s.Left,
				Right:        s.Right,
				Top:          s.Top,
				Bottom:       s.Bottom,
				LeftStartY:   0,
				LeftEndY:     uint(rootHeight - 1),
				RightStartY:  0,
				RightEndY:    uint(rootHeight - 1),
				TopStartX:    0,
				TopEndX:      uint(rootWidth - 1),
				BottomStartX: 0,
				BottomEndX:   uint(rootWidth - 1),
			}
			accumulateStruts(full, rootWidth, rootHeight, sp, &struts)
		}
	}

	if struts.left == 0 && struts.right == 0 && struts.top == 0 && struts.bottom == 0 {
		return geometry.Rect{}, false
	}

	work := geometry.Rect{
		Left:   full.Left + struts.left,
		Top:    full.Top + struts.top,
		Width:  full.Width - struts.left - struts.right,
		Height: full.Height - struts.top - struts.bottom,
	}
	if work.Width < 1 {
		work.Width = 1
	}
	if work.Height < 1 {
		work.Height = 1
	}
	return work, true
}

func accumulateStruts(mon geometry.Rect, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		r := geometry.Rect{
			Left:   int(sp.TopStartX),
			Top:    0,
			Width:  int(sp.TopEndX) - int(sp.TopStartX) + 1,
			Height: int(sp.Top),
		}
		if h := intersectionRect(mon, r).Height; h > 0 {
			acc.top = max(acc.top, h)
		}
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		r := geometry.Rect{
			Left:   int(sp.BottomStartX),
			Top:    rootHeight - int(sp.Bottom),
			Width:  int(sp.BottomEndX) - int(sp.BottomStartX) + 1,
			Height: int(sp.Bottom),
		}
		if h := intersectionRect(mon, r).Height; h > 0 {
			acc.bottom = max(acc.bottom, h)
		}
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		r := geometry.Rect{
			Left:   0,
			Top:    int(sp.LeftStartY),
			Width:  int(sp.Left),
			Height: int(sp.LeftEndY) - int(sp.LeftStartY) + 1,
		}
		if w := intersectionRect(mon, r).Width; w > 0 {
			acc.left = max(acc.left, w)
		}
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		r := geometry.Rect{
			Left:   rootWidth - int(sp.Right),
			Top:    int(sp.RightStartY),
			Width:  int(sp.Right),
			Height: int(sp.RightEndY) - int(sp.RightStartY) + 1,
		}
		if w := intersectionRect(mon, r).Width; w > 0 {
			acc.right = max(acc.right, w)
		}
	}
}

func intersectionRect(a, b geometry.Rect) geometry.Rect {
	x1 := max(a.Left, b.Left)
	y1 := max(a.Top, b.Top)
	x2 := min(a.Right(), b.Right())
	y2 := min(a.Bottom(), b.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return geometry.Rect{}
	}
	return geometry.Rect{Left: x1, Top: y1, Width: x2 - x1, Height: y2 - y1}
}
