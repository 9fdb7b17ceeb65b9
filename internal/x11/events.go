package x11

import (
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/pixelplane/renderwin/internal/surface"
)

// WatchGeometry routes ConfigureNotify events for the window to its surface
// through the registry. Events arriving mid mode-switch are suppressed; the
// window system has not committed final geometry yet.
func (c *Connection) WatchGeometry(h surface.Handle, reg *surface.Registry, log *slog.Logger) {
	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		s, ok := reg.Lookup(surface.Handle(ev.Window))
		if !ok {
			return
		}
		if s.SwitchingMode() {
			return
		}
		if err := s.NotifyGeometryChanged(); err != nil {
			log.Warn("geometry update failed", "window", uint64(ev.Window), "error", err)
		}
	}).Connect(c.XUtil, xproto.Window(h))
}

// EventLoop runs the X event loop on the calling goroutine (blocking).
// Surfaces are single-owner, so this must be the goroutine that created the
// watched surfaces.
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// StopEventLoop terminates a running event loop. Safe from any goroutine.
func (c *Connection) StopEventLoop() {
	xevent.Quit(c.XUtil)
}
