package surface

import (
	"github.com/pixelplane/renderwin/internal/display"
	"github.com/pixelplane/renderwin/internal/geometry"
)

// Handle is the native identity of a window within the window system.
type Handle uint64

// BorderStyle selects the window decoration style.
type BorderStyle int

const (
	BorderResizable BorderStyle = iota
	BorderFixed
	BorderNone
)

func (b BorderStyle) String() string {
	switch b {
	case BorderResizable:
		return "resizable"
	case BorderFixed:
		return "fixed"
	case BorderNone:
		return "none"
	default:
		return "unknown"
	}
}

// Style is the full decoration/behavior state applied to a window.
type Style struct {
	Border     BorderStyle
	ToolWindow bool
	Child      bool
	TopMost    bool
}

// ResizeDirection names the window edge or corner a user resize starts from.
type ResizeDirection int

const (
	ResizeLeft ResizeDirection = iota
	ResizeTopLeft
	ResizeTop
	ResizeTopRight
	ResizeRight
	ResizeBottomRight
	ResizeBottom
	ResizeBottomLeft
)

// CreateWindowSpec describes a window to create.
type CreateWindowSpec struct {
	Title      string
	Rect       geometry.Rect
	Style      Style
	Parent     Handle
	Fullscreen bool
}

// WindowSystem is the collaborator contract toward the native windowing
// layer. Implementations must satisfy display.PointLocator through
// MonitorFromPoint.
type WindowSystem interface {
	CreateWindow(spec CreateWindowSpec) (Handle, error)
	DestroyWindow(h Handle) error

	// WindowRect returns the outer window rectangle in desktop coordinates.
	WindowRect(h Handle) (geometry.Rect, error)
	// ClientRect returns the drawable client-area rectangle.
	ClientRect(h Handle) (geometry.Rect, error)

	// MoveResize sets the outer rectangle in one step without activating the
	// window. topMost raises the window above normal windows, otherwise any
	// top-most state is cleared.
	MoveResize(h Handle, r geometry.Rect, topMost bool) error
	// Resize changes the outer size, preserving position and z-order, and
	// forces a frame redraw.
	Resize(h Handle, width, height int) error
	// Move changes the position, preserving size and z-order.
	Move(h Handle, x, y int) error

	// ApplyStyle replaces the window's decoration/behavior style.
	ApplyStyle(h Handle, s Style) error
	// NotifyStyleChanged forces a non-geometric redraw after a style change,
	// so stale decoration remnants are cleared.
	NotifyStyleChanged(h Handle) error
	// DecorationInsets returns the decoration sizes the style implies.
	DecorationInsets(s Style) geometry.Insets
	// SetClipRegion constrains drawing to a width x height rectangle at the
	// window origin.
	SetClipRegion(h Handle, width, height int) error

	// Iconified reports whether the window is minimized.
	Iconified(h Handle) (bool, error)

	MonitorFromPoint(p geometry.Point) display.MonitorInfo
	MonitorFromWindow(h Handle) display.MonitorInfo

	ScreenToWindow(h Handle, p geometry.Point) (geometry.Point, error)
	WindowToScreen(h Handle, p geometry.Point) (geometry.Point, error)

	// BeginUserMove starts an interactive move gesture. Blocks in an
	// OS-internal modal loop until the gesture ends.
	BeginUserMove(h Handle) error
	// BeginUserResize starts an interactive resize gesture from the given
	// edge or corner.
	BeginUserResize(h Handle, dir ResizeDirection) error
}
