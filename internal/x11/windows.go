package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/pixelplane/renderwin/internal/display"
	"github.com/pixelplane/renderwin/internal/geometry"
	"github.com/pixelplane/renderwin/internal/surface"
)

type styleRecord struct {
	style surface.Style
}

type frameExtents struct {
	left, right, top, bottom int
}

// Motif WM hints, the de-facto protocol for asking the WM not to decorate.
const (
	motifHintsProp       = "_MOTIF_WM_HINTS"
	motifHintDecorations = 1 << 1

	motifDecorAll      = 1 << 0
	motifDecorBorder   = 1 << 1
	motifDecorResize   = 1 << 2
	motifDecorTitle    = 1 << 3
	motifDecorMenu     = 1 << 4
	motifDecorMinimize = 1 << 5
)

// _NET_WM_MOVERESIZE direction codes.
const (
	netMoveResizeSizeTopLeft     = 0
	netMoveResizeSizeTop         = 1
	netMoveResizeSizeTopRight    = 2
	netMoveResizeSizeRight       = 3
	netMoveResizeSizeBottomRight = 4
	netMoveResizeSizeBottom      = 5
	netMoveResizeSizeBottomLeft  = 6
	netMoveResizeSizeLeft        = 7
	netMoveResizeMove            = 8
)

// CreateWindow creates and maps a top-level window with the requested style.
func (c *Connection) CreateWindow(spec surface.CreateWindowSpec) (surface.Handle, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}

	parent := c.Root
	if spec.Parent != 0 {
		parent = xproto.Window(spec.Parent)
	}

	err = win.CreateChecked(parent,
		spec.Rect.Left, spec.Rect.Top, spec.Rect.Width, spec.Rect.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		0x000000,
		xproto.EventMaskStructureNotify|xproto.EventMaskExposure|
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|
			xproto.EventMaskKeyPress|xproto.EventMaskKeyRelease|
			xproto.EventMaskFocusChange)
	if err != nil {
		return 0, fmt.Errorf("failed to create window: %w", err)
	}

	if spec.Title != "" {
		_ = ewmh.WmNameSet(c.XUtil, win.Id, spec.Title)
	}
	if err := c.applyMotifHints(win.Id, spec.Style); err != nil {
		win.Destroy()
		return 0, err
	}
	if spec.Style.ToolWindow {
		_ = ewmh.WmWindowTypeSet(c.XUtil, win.Id, []string{"_NET_WM_WINDOW_TYPE_UTILITY"})
	}

	win.Map()

	if spec.Style.TopMost || spec.Fullscreen {
		if err := c.setTopMost(win.Id, true); err != nil {
			win.Destroy()
			return 0, err
		}
	}
	// Position again after mapping: many WMs reposition on map.
	win.Move(spec.Rect.Left, spec.Rect.Top)

	c.styles[win.Id] = styleRecord{style: spec.Style}
	return surface.Handle(win.Id), nil
}

func (c *Connection) DestroyWindow(h surface.Handle) error {
	win := xproto.Window(h)
	delete(c.styles, win)
	return xproto.DestroyWindowChecked(c.XUtil.Conn(), win).Check()
}

// WindowRect returns the outer rectangle including WM decorations, in desktop
// coordinates. Frame extents are also cached for DecorationInsets.
func (c *Connection) WindowRect(h surface.Handle) (geometry.Rect, error) {
	win := xproto.Window(h)
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("failed to get window geometry: %w", err)
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), win, c.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("failed to translate window origin: %w", err)
	}

	ext := c.queryFrameExtents(win)
	return geometry.Rect{
		Left:   int(translate.DstX) - ext.left,
		Top:    int(translate.DstY) - ext.top,
		Width:  int(geom.Width) + ext.left + ext.right,
		Height: int(geom.Height) + ext.top + ext.bottom,
	}, nil
}

// ClientRect returns the drawable client-area rectangle.
func (c *Connection) ClientRect(h surface.Handle) (geometry.Rect, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(xproto.Window(h))).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("failed to get window geometry: %w", err)
	}
	return geometry.Rect{Width: int(geom.Width), Height: int(geom.Height)}, nil
}

// MoveResize applies the outer rectangle in one step. EWMH MoveresizeWindow is
// preferred for WM compatibility with a direct configure as fallback.
func (c *Connection) MoveResize(h surface.Handle, r geometry.Rect, topMost bool) error {
	win := xproto.Window(h)
	// Best effort: some windows do not expose maximize states.
	_ = c.unmaximize(win)

	ext := c.insetsForWindow(win)
	x := r.Left + ext.left
	y := r.Top + ext.top
	w := r.Width - ext.left - ext.right
	hgt := r.Height - ext.top - ext.bottom

	if err := ewmh.MoveresizeWindow(c.XUtil, win, x, y, w, hgt); err != nil {
		xwindow.New(c.XUtil, win).MoveResize(x, y, w, hgt)
	}
	return c.setTopMost(win, topMost)
}

// Resize changes the outer size in place and forces a redraw.
func (c *Connection) Resize(h surface.Handle, width, height int) error {
	win := xproto.Window(h)
	ext := c.insetsForWindow(win)
	xwindow.New(c.XUtil, win).Resize(width-ext.left-ext.right, height-ext.top-ext.bottom)
	return c.NotifyStyleChanged(h)
}

// Move changes the position, preserving size and z-order.
func (c *Connection) Move(h surface.Handle, x, y int) error {
	win := xproto.Window(h)
	ext := c.insetsForWindow(win)
	xwindow.New(c.XUtil, win).Move(x+ext.left, y+ext.top)
	return nil
}

// ApplyStyle replaces the window's decoration/behavior style.
func (c *Connection) ApplyStyle(h surface.Handle, s surface.Style) error {
	win := xproto.Window(h)
	if err := c.applyMotifHints(win, s); err != nil {
		return err
	}
	if s.ToolWindow {
		_ = ewmh.WmWindowTypeSet(c.XUtil, win, []string{"_NET_WM_WINDOW_TYPE_UTILITY"})
	}
	prev, ok := c.styles[win]
	if !ok || prev.style.TopMost != s.TopMost {
		if err := c.setTopMost(win, s.TopMost); err != nil {
			return err
		}
	}
	c.styles[win] = styleRecord{style: s}
	return nil
}

// NotifyStyleChanged forces a full expose so stale decoration remnants are
// repainted.
func (c *Connection) NotifyStyleChanged(h surface.Handle) error {
	return xproto.ClearAreaChecked(c.XUtil.Conn(), true, xproto.Window(h), 0, 0, 0, 0).Check()
}

// DecorationInsets reports the decoration sizes the style implies. X frame
// extents are only known once the WM has framed a window, so this returns the
// last observed extents; zero before any decorated window was queried.
func (c *Connection) DecorationInsets(s surface.Style) geometry.Insets {
	if s.Border == surface.BorderNone {
		return geometry.Insets{}
	}
	return geometry.Insets{
		Left:   c.frameInsets.left,
		Right:  c.frameInsets.right,
		Top:    c.frameInsets.top,
		Bottom: c.frameInsets.bottom,
	}
}

// SetClipRegion constrains drawing to a width x height rectangle at the
// window origin using the shape extension.
func (c *Connection) SetClipRegion(h surface.Handle, width, height int) error {
	rect := xproto.Rectangle{X: 0, Y: 0, Width: uint16(width), Height: uint16(height)}
	return shape.RectanglesChecked(c.XUtil.Conn(),
		shape.SoSet, shape.SkBounding, 0,
		xproto.Window(h), 0, 0, []xproto.Rectangle{rect}).Check()
}

// Iconified reports whether the window is minimized.
func (c *Connection) Iconified(h surface.Handle) (bool, error) {
	states, err := ewmh.WmStateGet(c.XUtil, xproto.Window(h))
	if err != nil {
		return false, fmt.Errorf("failed to get window state: %w", err)
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true, nil
		}
	}
	return false, nil
}

// MonitorFromWindow returns the monitor containing the window's center.
func (c *Connection) MonitorFromWindow(h surface.Handle) display.MonitorInfo {
	return c.monitorFromXWindow(xproto.Window(h))
}

// ScreenToWindow translates a desktop point into window-local coordinates.
func (c *Connection) ScreenToWindow(h surface.Handle, p geometry.Point) (geometry.Point, error) {
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(),
		c.Root, xproto.Window(h), int16(p.X), int16(p.Y)).Reply()
	if err != nil {
		return geometry.Point{}, fmt.Errorf("failed to translate coordinates: %w", err)
	}
	return geometry.Point{X: int(translate.DstX), Y: int(translate.DstY)}, nil
}

// WindowToScreen translates a window-local point into desktop coordinates.
func (c *Connection) WindowToScreen(h surface.Handle, p geometry.Point) (geometry.Point, error) {
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(),
		xproto.Window(h), c.Root, int16(p.X), int16(p.Y)).Reply()
	if err != nil {
		return geometry.Point{}, fmt.Errorf("failed to translate coordinates: %w", err)
	}
	return geometry.Point{X: int(translate.DstX), Y: int(translate.DstY)}, nil
}

// BeginUserMove hands the window to the WM's interactive move loop.
func (c *Connection) BeginUserMove(h surface.Handle) error {
	return c.sendMoveResize(xproto.Window(h), netMoveResizeMove)
}

// BeginUserResize hands the window to the WM's interactive resize loop.
func (c *Connection) BeginUserResize(h surface.Handle, dir surface.ResizeDirection) error {
	code := netMoveResizeSizeBottomRight
	switch dir {
	case surface.ResizeLeft:
		code = netMoveResizeSizeLeft
	case surface.ResizeTopLeft:
		code = netMoveResizeSizeTopLeft
	case surface.ResizeTop:
		code = netMoveResizeSizeTop
	case surface.ResizeTopRight:
		code = netMoveResizeSizeTopRight
	case surface.ResizeRight:
		code = netMoveResizeSizeRight
	case surface.ResizeBottomRight:
		code = netMoveResizeSizeBottomRight
	case surface.ResizeBottom:
		code = netMoveResizeSizeBottom
	case surface.ResizeBottomLeft:
		code = netMoveResizeSizeBottomLeft
	}
	return c.sendMoveResize(xproto.Window(h), code)
}

// sendMoveResize sends _NET_WM_MOVERESIZE with the current pointer position.
// The message is built manually because the xgbutil ewmh helpers panic on
// this library version (uint vs int type assertion).
func (c *Connection) sendMoveResize(win xproto.Window, direction int) error {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return fmt.Errorf("failed to query pointer: %w", err)
	}

	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_WM_MOVERESIZE")), "_NET_WM_MOVERESIZE").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_WM_MOVERESIZE: %w", err)
	}

	const leftButton = 1
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atomReply.Atom,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(pointer.RootX), uint32(pointer.RootY),
			uint32(direction), leftButton, 0,
		}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// setTopMost adds or removes _NET_WM_STATE_ABOVE via a root client message.
func (c *Connection) setTopMost(win xproto.Window, topMost bool) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_WM_STATE")), "_NET_WM_STATE").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_WM_STATE: %w", err)
	}
	aboveReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_WM_STATE_ABOVE")), "_NET_WM_STATE_ABOVE").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_WM_STATE_ABOVE: %w", err)
	}

	action := uint32(0) // remove
	if topMost {
		action = 1 // add
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{action, uint32(aboveReply.Atom), 0, 2, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

func (c *Connection) unmaximize(win xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return err
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			_ = ewmh.WmStateReq(c.XUtil, win, 0, state)
		}
	}
	return nil
}

func (c *Connection) applyMotifHints(win xproto.Window, s surface.Style) error {
	decorations := uint(motifDecorAll)
	switch s.Border {
	case surface.BorderNone:
		decorations = 0
	case surface.BorderFixed:
		decorations = motifDecorBorder | motifDecorTitle | motifDecorMenu | motifDecorMinimize
	}
	hints := []uint{motifHintDecorations, 0, decorations, 0, 0}
	if err := xprop.ChangeProp32(c.XUtil, win, motifHintsProp, motifHintsProp, hints...); err != nil {
		return fmt.Errorf("failed to set motif hints: %w", err)
	}
	return nil
}

// insetsForWindow returns the decoration extents for outer/client geometry
// conversion on a specific window.
func (c *Connection) insetsForWindow(win xproto.Window) frameExtents {
	if rec, ok := c.styles[win]; ok && rec.style.Border == surface.BorderNone {
		return frameExtents{}
	}
	extents, err := ewmh.FrameExtentsGet(c.XUtil, win)
	if err != nil {
		return c.frameInsets
	}
	return frameExtents{
		left:   int(extents.Left),
		right:  int(extents.Right),
		top:    int(extents.Top),
		bottom: int(extents.Bottom),
	}
}

// queryFrameExtents reads _NET_FRAME_EXTENTS and refreshes the cached
// decoration insets for decorated windows.
func (c *Connection) queryFrameExtents(win xproto.Window) frameExtents {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, win)
	if err != nil {
		return frameExtents{}
	}
	ext := frameExtents{
		left:   int(extents.Left),
		right:  int(extents.Right),
		top:    int(extents.Top),
		bottom: int(extents.Bottom),
	}
	if rec, ok := c.styles[win]; !ok || rec.style.Border != surface.BorderNone {
		if ext != (frameExtents{}) {
			c.frameInsets = ext
		}
	}
	return ext
}
