// Package x11 implements the native windowing layer over X11, using RandR for
// monitor enumeration, EWMH for window management and the shape extension for
// drawing clip regions.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection and core X resources.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// styles remembers the style applied to each window we manage, since X
	// has no query for motif hints we set ourselves.
	styles map[xproto.Window]styleRecord

	// frameInsets is the last decoration geometry reported by the window
	// manager for a decorated window. Zero until the WM has framed one.
	frameInsets frameExtents
}

// NewConnection establishes a connection to the X11 server and initializes
// the required extensions.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	if err := shape.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("shape init failed: %w", err)
	}

	return &Connection{
		XUtil:  xu,
		Root:   xu.RootWin(),
		styles: make(map[xproto.Window]styleRecord),
	}, nil
}

// Close cleanly disconnects from the X11 server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
