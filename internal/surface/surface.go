// Package surface owns the lifecycle of an on-screen render surface: the
// canonical geometry and display-mode state of a window bound to a graphics
// device, and the windowed/fullscreen transition protocol that exclusive-mode
// presentation imposes.
package surface

import (
	"fmt"
	"log/slog"

	"github.com/pixelplane/renderwin/internal/device"
	"github.com/pixelplane/renderwin/internal/display"
	"github.com/pixelplane/renderwin/internal/geometry"
	"github.com/pixelplane/renderwin/internal/input"
	"github.com/pixelplane/renderwin/internal/present"
)

// state is the canonical surface state, owned exclusively by the surface's
// mode controller. Desired width/height track the last explicitly requested
// logical size; they only change on an explicit resize or mode request, never
// from incidental window-system notifications during a switch.
type state struct {
	width, height   int
	left, top       int
	desiredWidth    int
	desiredHeight   int
	fullscreen      bool
	colorDepth      int
	vsync           bool
	vsyncInterval   int
	multisample     uint32
	multisampleHint string
	depthBuffer     bool
	displayFreq     int
	switching       bool
}

// Options configures surface creation.
type Options struct {
	Title  string
	Width  int
	Height int

	Fullscreen bool
	ColorDepth int

	VSync         bool
	VSyncInterval int

	Multisample     uint32
	MultisampleHint string

	DepthBuffer bool

	// Left/Top position the window explicitly; nil centers on that axis.
	Left *int
	Top  *int

	// Monitor selects the target display by adapter index. Negative means
	// automatic selection by anchor point.
	Monitor int

	Border     BorderStyle
	ToolWindow bool
	Parent     Handle

	// External adopts a pre-existing native window instead of creating one.
	// Adopted windows are never destroyed or restyled by the surface.
	External Handle

	// OuterDimensions treats Width/Height as the outer window size, skipping
	// the decoration-inset pass.
	OuterDimensions bool

	Logger   *slog.Logger
	Input    input.Reconciler
	Registry *Registry
}

// Surface is an on-screen drawable area bound to a native window and, once
// assigned by the device manager, a graphics device. All mutating calls must
// come from the goroutine that created the surface.
type Surface struct {
	ws       WindowSystem
	adapters display.AdapterEnumerator
	in       input.Reconciler
	log      *slog.Logger
	registry *Registry
	guard    affinityGuard

	win      Handle
	style    Style
	external bool
	active   bool
	closed   bool

	state   state
	binding device.Binding
}

// New creates (or adopts) a native window and returns the surface owning it.
// The calling goroutine becomes the surface's owner.
func New(ws WindowSystem, adapters display.AdapterEnumerator, opts Options) (*Surface, error) {
	s := &Surface{
		ws:       ws,
		adapters: adapters,
		in:       opts.Input,
		log:      opts.Logger,
		registry: opts.Registry,
	}
	if s.in == nil {
		s.in = input.Noop{}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.guard.pin()

	s.state.colorDepth = opts.ColorDepth
	if s.state.colorDepth == 0 {
		s.state.colorDepth = 32
	}
	s.state.vsync = opts.VSync
	s.state.vsyncInterval = opts.VSyncInterval
	s.state.multisample = opts.Multisample
	s.state.multisampleHint = opts.MultisampleHint
	s.state.depthBuffer = opts.DepthBuffer
	s.state.fullscreen = opts.Fullscreen
	s.state.desiredWidth = opts.Width
	s.state.desiredHeight = opts.Height

	if opts.External != 0 {
		s.win = opts.External
		s.external = true
	} else {
		if err := s.createWindow(opts); err != nil {
			return nil, err
		}
	}

	// The window system is authoritative for the actual geometry: the
	// manager may have constrained the window during creation.
	if err := s.updateWindowRect(); err != nil {
		if !s.external {
			_ = s.ws.DestroyWindow(s.win)
		}
		return nil, err
	}

	s.active = true
	if s.registry != nil {
		s.registry.add(s.win, s)
	}

	s.log.Debug("surface created",
		"window", uint64(s.win),
		"client", fmt.Sprintf("%dx%d", s.state.width, s.state.height),
		"fullscreen", s.state.fullscreen,
		"external", s.external)
	return s, nil
}

func (s *Surface) createWindow(opts Options) error {
	loc := display.NewLocator(s.ws, s.adapters)

	var (
		mon       display.MonitorInfo
		byAdapter bool
	)
	if opts.Monitor >= 0 {
		mon, byAdapter = loc.LocateByAdapter(opts.Monitor)
	}
	if !byAdapter {
		anchor := geometry.Point{}
		if opts.Left != nil {
			anchor.X = *opts.Left
		}
		if opts.Top != nil {
			anchor.Y = *opts.Top
		}
		mon = loc.Locate(anchor)
	}
	s.state.displayFreq = mon.RefreshRate

	style := Style{
		Border:     opts.Border,
		ToolWindow: opts.ToolWindow,
		Child:      opts.Parent != 0 && !opts.ToolWindow,
	}

	var rect geometry.Rect
	if opts.Fullscreen {
		style = Style{Border: BorderNone, TopMost: true}
		rect = geometry.Rect{
			Left:   mon.Full.Left,
			Top:    mon.Full.Top,
			Width:  opts.Width,
			Height: opts.Height,
		}
	} else {
		insets := geometry.Insets{}
		if !opts.OuterDimensions {
			insets = s.ws.DecorationInsets(style)
		}
		adapterRelative := byAdapter && (opts.Left != nil || opts.Top != nil)
		rect = geometry.Place(opts.Width, opts.Height, insets, mon.Work, opts.Left, opts.Top, adapterRelative)
		rect = geometry.ClampToWork(rect, mon.Work)
	}

	h, err := s.ws.CreateWindow(CreateWindowSpec{
		Title:      opts.Title,
		Rect:       rect,
		Style:      style,
		Parent:     opts.Parent,
		Fullscreen: opts.Fullscreen,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	s.win = h
	s.style = style
	return nil
}

// Close tears the surface down: the device binding is cleared independent of
// window destruction, and adopted windows are left alive.
func (s *Surface) Close() error {
	s.guard.check("Close")
	if s.closed {
		return nil
	}
	s.binding.Unbind()
	if s.registry != nil {
		s.registry.remove(s.win)
	}
	var err error
	if s.win != 0 && !s.external {
		err = s.ws.DestroyWindow(s.win)
	}
	s.win = 0
	s.active = false
	s.closed = true
	return err
}

// Window returns the native window handle.
func (s *Surface) Window() Handle { return s.win }

// Width returns the current client-area width.
func (s *Surface) Width() int { return s.state.width }

// Height returns the current client-area height.
func (s *Surface) Height() int { return s.state.height }

// Left returns the outer window left edge in desktop coordinates.
func (s *Surface) Left() int { return s.state.left }

// Top returns the outer window top edge in desktop coordinates.
func (s *Surface) Top() int { return s.state.top }

// Fullscreen reports whether the surface is in exclusive fullscreen mode.
func (s *Surface) Fullscreen() bool { return s.state.fullscreen }

// SwitchingMode reports whether a windowed/fullscreen switch is between
// request and finalize. Window-system geometry notifications must be
// suppressed while this is set.
func (s *Surface) SwitchingMode() bool { return s.state.switching }

// Visible reports whether the window exists and is not minimized.
func (s *Surface) Visible() bool {
	if s.win == 0 {
		return false
	}
	iconified, err := s.ws.Iconified(s.win)
	if err != nil {
		return false
	}
	return !iconified
}

// Active reports whether the surface should be rendered to. Fullscreen
// surfaces track visibility only.
func (s *Surface) Active() bool {
	if s.state.fullscreen {
		return s.Visible()
	}
	return s.active && s.Visible()
}

// Move repositions a windowed surface. No-op while fullscreen.
func (s *Surface) Move(left, top int) error {
	s.guard.check("Move")
	if s.win == 0 || s.state.fullscreen {
		return nil
	}
	s.state.left = left
	s.state.top = top
	return s.ws.Move(s.win, left, top)
}

// Resize changes the client-area size of a windowed surface. The requested
// size becomes the desired size; the outer size is clamped to the current
// monitor's work area. No-op while fullscreen.
func (s *Surface) Resize(width, height int) error {
	s.guard.check("Resize")
	if s.win == 0 || s.state.fullscreen {
		return nil
	}
	s.state.width = width
	s.state.height = height
	s.state.desiredWidth = width
	s.state.desiredHeight = height

	insets := s.ws.DecorationInsets(s.style)
	mon := s.ws.MonitorFromWindow(s.win)
	outerW, outerH := geometry.OuterSize(width, height, insets, mon.Work)
	return s.ws.Resize(s.win, outerW, outerH)
}

// SetDevice is called by the device manager to assign the device this
// surface presents through. The binding starts invalid and must be validated
// before presentation resumes.
func (s *Surface) SetDevice(d device.Device) {
	s.guard.check("SetDevice")
	s.binding.Bind(d)
}

// Device returns the bound device, or nil.
func (s *Surface) Device() device.Device { return s.binding.Device() }

// DeviceValid reports the binding's validity flag.
func (s *Surface) DeviceValid() bool { return s.binding.Valid() }

// ValidateDevice asks the bound device whether the surface is usable and
// records the answer. Returns the resulting validity flag.
func (s *Surface) ValidateDevice() bool {
	s.guard.check("ValidateDevice")
	return s.binding.Validate(uint64(s.win))
}

// NotifyDeviceLost records an external device-loss signal. Device loss is
// normal operating behavior in exclusive fullscreen, handled by invalidation
// and renegotiation, never by aborting.
func (s *Surface) NotifyDeviceLost() {
	s.guard.check("NotifyDeviceLost")
	s.log.Debug("device lost", "window", uint64(s.win))
	s.binding.Invalidate(uint64(s.win))
}

// Present swaps the surface's backbuffer. It panics if no device was ever
// bound, and silently skips while the binding is invalid, since invalidity is
// an expected transient state during mode switches.
func (s *Surface) Present() error {
	s.guard.check("Present")
	if !s.binding.Bound() {
		panic("renderwin: Present called on surface with no bound device")
	}
	if !s.binding.Valid() {
		return nil
	}
	return s.binding.Device().Present(uint64(s.win))
}

// CopyContents copies the current backbuffer into dst. Same binding
// preconditions as Present.
func (s *Surface) CopyContents(dst []byte) error {
	s.guard.check("CopyContents")
	if !s.binding.Bound() {
		panic("renderwin: CopyContents called on surface with no bound device")
	}
	if !s.binding.Valid() {
		return nil
	}
	return s.binding.Device().CopyBackBuffer(uint64(s.win), dst)
}

// PresentParameters negotiates a fresh parameter set for the surface's
// current state against the given capability probe.
func (s *Surface) PresentParameters(probe present.CapabilityProbe) (present.Parameters, error) {
	return present.Negotiate(present.Request{
		Width:           s.state.width,
		Height:          s.state.height,
		Fullscreen:      s.state.fullscreen,
		ColorDepth:      s.state.colorDepth,
		VSync:           s.state.vsync,
		VSyncInterval:   s.state.vsyncInterval,
		Multisample:     s.state.multisample,
		MultisampleHint: s.state.multisampleHint,
		DepthBuffer:     s.state.depthBuffer,
		RefreshRate:     s.state.displayFreq,
		TargetWindow:    uint64(s.win),
	}, probe)
}

// ScreenToWindow translates a desktop point into window-local coordinates.
func (s *Surface) ScreenToWindow(p geometry.Point) (geometry.Point, error) {
	return s.ws.ScreenToWindow(s.win, p)
}

// WindowToScreen translates a window-local point into desktop coordinates.
func (s *Surface) WindowToScreen(p geometry.Point) (geometry.Point, error) {
	return s.ws.WindowToScreen(s.win, p)
}

// StartUserMove begins an interactive move gesture. The window system blocks
// in a modal loop for the whole gesture; the button release that ends it is
// never delivered, so it is synthesized here to keep input state consistent.
func (s *Surface) StartUserMove() error {
	s.guard.check("StartUserMove")
	err := s.ws.BeginUserMove(s.win)
	s.in.SimulateButtonUp(input.ButtonLeft)
	return err
}

// StartUserResize begins an interactive resize gesture from the given edge.
// See StartUserMove for the synthetic button release.
func (s *Surface) StartUserResize(dir ResizeDirection) error {
	s.guard.check("StartUserResize")
	err := s.ws.BeginUserResize(s.win, dir)
	s.in.SimulateButtonUp(input.ButtonLeft)
	return err
}

// updateWindowRect re-reads authoritative geometry from the window system.
// On query failure the geometry is zeroed rather than left stale and the
// surface is reported unusable.
func (s *Surface) updateWindowRect() error {
	outer, err := s.ws.WindowRect(s.win)
	if err != nil {
		s.zeroGeometry()
		return fmt.Errorf("%w: window rect query failed: %v", ErrSurfaceUnusable, err)
	}
	client, err := s.ws.ClientRect(s.win)
	if err != nil {
		s.zeroGeometry()
		return fmt.Errorf("%w: client rect query failed: %v", ErrSurfaceUnusable, err)
	}

	s.state.left = outer.Left
	s.state.top = outer.Top
	s.state.width = client.Width
	s.state.height = client.Height
	return nil
}

func (s *Surface) zeroGeometry() {
	s.state.left = 0
	s.state.top = 0
	s.state.width = 0
	s.state.height = 0
}
