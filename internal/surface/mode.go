package surface

import (
	"errors"

	"github.com/pixelplane/renderwin/internal/geometry"
)

// RequestMode switches the surface between windowed and fullscreen and/or
// changes its size. The call is idempotent for the current (fullscreen,
// width, height) triple. Canonical geometry is updated before the window
// system or device has caught up, so subsequent negotiation sees the target
// size. The bound device is always invalidated: a mode or size change forces
// parameter renegotiation, and once geometry starts being applied the call
// runs through to invalidation even if a window-system call fails.
func (s *Surface) RequestMode(fullscreen bool, width, height int) error {
	s.guard.check("RequestMode")
	if s.win == 0 {
		return ErrWindowClosed
	}
	if fullscreen == s.state.fullscreen && width == s.state.width && height == s.state.height {
		return nil
	}

	// A pure resize within the same mode does not enter a transitional state.
	if fullscreen != s.state.fullscreen {
		s.state.switching = true
	}

	wasFullscreen := s.state.fullscreen
	s.state.fullscreen = fullscreen
	s.state.width = width
	s.state.height = height
	s.state.desiredWidth = width
	s.state.desiredHeight = height

	var errs []error
	if fullscreen {
		errs = s.enterFullscreen(width, height, wasFullscreen)
	} else {
		errs = s.enterWindowed(width, height)
	}

	s.log.Debug("mode change applied",
		"window", uint64(s.win),
		"fullscreen", fullscreen,
		"width", width,
		"height", height,
		"switching", s.state.switching)

	s.binding.Invalidate(uint64(s.win))
	return errors.Join(errs...)
}

func (s *Surface) enterFullscreen(width, height int, wasFullscreen bool) []error {
	mon := s.ws.MonitorFromWindow(s.win)
	s.state.left = mon.Full.Left
	s.state.top = mon.Full.Top
	s.state.displayFreq = mon.RefreshRate
	s.style = Style{Border: BorderNone, TopMost: true}

	rect := geometry.Rect{
		Left:   s.state.left,
		Top:    s.state.top,
		Width:  width,
		Height: height,
	}

	var errs []error
	if wasFullscreen {
		// Already fullscreen: a pure resolution change, geometry only.
		if err := s.ws.MoveResize(s.win, rect, true); err != nil {
			errs = append(errs, err)
		}
		return errs
	}

	// Geometry first, then strip decorations, then force the redraw. The
	// decorations must be gone before the final repaint or frame remnants
	// persist on screen. Adopted windows keep their style untouched.
	if err := s.ws.MoveResize(s.win, rect, true); err != nil {
		errs = append(errs, err)
	}
	if !s.external {
		if err := s.ws.ApplyStyle(s.win, s.style); err != nil {
			errs = append(errs, err)
		}
		if err := s.ws.NotifyStyleChanged(s.win); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (s *Surface) enterWindowed(width, height int) []error {
	s.style = Style{Border: BorderResizable}

	insets := s.ws.DecorationInsets(s.style)
	mon := s.ws.MonitorFromWindow(s.win)
	outerW, outerH := geometry.OuterSize(width, height, insets, mon.Work)

	var errs []error
	if !s.external {
		if err := s.ws.ApplyStyle(s.win, s.style); err != nil {
			errs = append(errs, err)
		}
	}
	// Reapply decorations and resize/redraw in one step; final position is
	// settled by FinishModeSwitch once the device has been restored.
	if err := s.ws.Resize(s.win, outerW, outerH); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// FinishModeSwitch finalizes geometry once the device layer reports the
// reset has completed. This is the sole exit from the transitional state.
func (s *Surface) FinishModeSwitch() error {
	s.guard.check("FinishModeSwitch")
	if s.win == 0 {
		return ErrWindowClosed
	}

	var err error
	if s.state.fullscreen {
		// A window region left over from a windowed-mode desktop constraint
		// would clip the fullscreen surface; reset it to the full size.
		err = s.ws.SetClipRegion(s.win, s.state.width, s.state.height)
	} else {
		err = s.restoreWindowedGeometry()
	}

	s.state.switching = false
	s.log.Debug("mode switch finalized",
		"window", uint64(s.win),
		"fullscreen", s.state.fullscreen)
	return err
}

// restoreWindowedGeometry recomputes the outer rectangle from the desired
// size. The current size may have been polluted by resize notifications
// during the switch, so the desired size is authoritative here. The window is
// re-centered within the current monitor's work area without altering
// z-order beyond clearing the fullscreen top-most state.
func (s *Surface) restoreWindowedGeometry() error {
	insets := s.ws.DecorationInsets(s.style)
	mon := s.ws.MonitorFromWindow(s.win)

	outerW, outerH := geometry.OuterSize(s.state.desiredWidth, s.state.desiredHeight, insets, mon.Work)
	pos := geometry.Center(outerW, outerH, mon.Work)

	rect := geometry.Rect{Left: pos.X, Top: pos.Y, Width: outerW, Height: outerH}
	err := s.ws.MoveResize(s.win, rect, false)

	s.state.left = rect.Left
	s.state.top = rect.Top
	if s.state.width != s.state.desiredWidth || s.state.height != s.state.desiredHeight {
		s.state.width = s.state.desiredWidth
		s.state.height = s.state.desiredHeight
	}
	return err
}

// NotifyGeometryChanged handles a move/resize performed by the window system
// rather than this surface. Ignored while minimized; otherwise the window
// system's geometry overwrites the canonical state. Callers must suppress
// this during an in-progress mode switch (see SwitchingMode), since the
// window system has not committed final geometry yet.
func (s *Surface) NotifyGeometryChanged() error {
	s.guard.check("NotifyGeometryChanged")
	if s.win == 0 {
		return ErrWindowClosed
	}
	iconified, err := s.ws.Iconified(s.win)
	if err == nil && iconified {
		return nil
	}
	return s.updateWindowRect()
}
