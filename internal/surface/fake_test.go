package surface

import (
	"errors"
	"fmt"

	"github.com/pixelplane/renderwin/internal/display"
	"github.com/pixelplane/renderwin/internal/geometry"
	"github.com/pixelplane/renderwin/internal/input"
	"github.com/pixelplane/renderwin/internal/present"
)

// fakeWindowSystem is an in-memory WindowSystem for tests. Decoration insets
// are fixed per border style; client rects derive from outer rects.
type fakeWindowSystem struct {
	nextHandle Handle
	windows    map[Handle]*fakeWindow
	monitors   []display.MonitorInfo

	// call records
	moveResizes    []fakeMoveResize
	resizes        []geometry.Rect
	styleChanges   []Style
	styleNotifies  int
	clipRegions    []geometry.Rect
	destroyed      []Handle
	userMoves      int
	userResizes    []ResizeDirection
	geometryBroken bool
}

type fakeWindow struct {
	rect      geometry.Rect
	style     Style
	iconified bool
	topMost   bool
}

type fakeMoveResize struct {
	handle  Handle
	rect    geometry.Rect
	topMost bool
}

func newFakeWindowSystem(monitors ...display.MonitorInfo) *fakeWindowSystem {
	if len(monitors) == 0 {
		monitors = []display.MonitorInfo{{
			Handle:      1,
			Full:        geometry.Rect{Left: 0, Top: 0, Width: 1920, Height: 1080},
			Work:        geometry.Rect{Left: 0, Top: 0, Width: 1920, Height: 1040},
			RefreshRate: 60,
			Primary:     true,
		}}
	}
	return &fakeWindowSystem{
		nextHandle: 100,
		windows:    make(map[Handle]*fakeWindow),
		monitors:   monitors,
	}
}

func (f *fakeWindowSystem) insetsFor(s Style) geometry.Insets {
	if s.Border == BorderNone {
		return geometry.Insets{}
	}
	return geometry.Insets{Left: 4, Right: 4, Top: 28, Bottom: 4}
}

func (f *fakeWindowSystem) CreateWindow(spec CreateWindowSpec) (Handle, error) {
	f.nextHandle++
	h := f.nextHandle
	f.windows[h] = &fakeWindow{rect: spec.Rect, style: spec.Style, topMost: spec.Style.TopMost}
	return h, nil
}

func (f *fakeWindowSystem) DestroyWindow(h Handle) error {
	f.destroyed = append(f.destroyed, h)
	delete(f.windows, h)
	return nil
}

func (f *fakeWindowSystem) WindowRect(h Handle) (geometry.Rect, error) {
	if f.geometryBroken {
		return geometry.Rect{}, errors.New("window gone")
	}
	w, ok := f.windows[h]
	if !ok {
		return geometry.Rect{}, fmt.Errorf("no window %d", h)
	}
	return w.rect, nil
}

func (f *fakeWindowSystem) ClientRect(h Handle) (geometry.Rect, error) {
	if f.geometryBroken {
		return geometry.Rect{}, errors.New("window gone")
	}
	w, ok := f.windows[h]
	if !ok {
		return geometry.Rect{}, fmt.Errorf("no window %d", h)
	}
	in := f.insetsFor(w.style)
	return geometry.Rect{
		Left:   0,
		Top:    0,
		Width:  w.rect.Width - in.Horizontal(),
		Height: w.rect.Height - in.Vertical(),
	}, nil
}

func (f *fakeWindowSystem) MoveResize(h Handle, r geometry.Rect, topMost bool) error {
	f.moveResizes = append(f.moveResizes, fakeMoveResize{handle: h, rect: r, topMost: topMost})
	if w, ok := f.windows[h]; ok {
		w.rect = r
		w.topMost = topMost
	}
	return nil
}

func (f *fakeWindowSystem) Resize(h Handle, width, height int) error {
	if w, ok := f.windows[h]; ok {
		w.rect.Width = width
		w.rect.Height = height
		f.resizes = append(f.resizes, w.rect)
	}
	return nil
}

func (f *fakeWindowSystem) Move(h Handle, x, y int) error {
	if w, ok := f.windows[h]; ok {
		w.rect.Left = x
		w.rect.Top = y
	}
	return nil
}

func (f *fakeWindowSystem) ApplyStyle(h Handle, s Style) error {
	f.styleChanges = append(f.styleChanges, s)
	if w, ok := f.windows[h]; ok {
		w.style = s
	}
	return nil
}

func (f *fakeWindowSystem) NotifyStyleChanged(h Handle) error {
	f.styleNotifies++
	return nil
}

func (f *fakeWindowSystem) DecorationInsets(s Style) geometry.Insets {
	return f.insetsFor(s)
}

func (f *fakeWindowSystem) SetClipRegion(h Handle, width, height int) error {
	f.clipRegions = append(f.clipRegions, geometry.Rect{Width: width, Height: height})
	return nil
}

func (f *fakeWindowSystem) Iconified(h Handle) (bool, error) {
	w, ok := f.windows[h]
	if !ok {
		return false, fmt.Errorf("no window %d", h)
	}
	return w.iconified, nil
}

func (f *fakeWindowSystem) MonitorFromPoint(p geometry.Point) display.MonitorInfo {
	for _, m := range f.monitors {
		if m.Full.Contains(p) {
			return m
		}
	}
	for _, m := range f.monitors {
		if m.Primary {
			return m
		}
	}
	return f.monitors[0]
}

func (f *fakeWindowSystem) MonitorFromWindow(h Handle) display.MonitorInfo {
	w, ok := f.windows[h]
	if !ok {
		return f.monitors[0]
	}
	center := geometry.Point{
		X: w.rect.Left + w.rect.Width/2,
		Y: w.rect.Top + w.rect.Height/2,
	}
	return f.MonitorFromPoint(center)
}

func (f *fakeWindowSystem) ScreenToWindow(h Handle, p geometry.Point) (geometry.Point, error) {
	w, ok := f.windows[h]
	if !ok {
		return geometry.Point{}, fmt.Errorf("no window %d", h)
	}
	return geometry.Point{X: p.X - w.rect.Left, Y: p.Y - w.rect.Top}, nil
}

func (f *fakeWindowSystem) WindowToScreen(h Handle, p geometry.Point) (geometry.Point, error) {
	w, ok := f.windows[h]
	if !ok {
		return geometry.Point{}, fmt.Errorf("no window %d", h)
	}
	return geometry.Point{X: p.X + w.rect.Left, Y: p.Y + w.rect.Top}, nil
}

func (f *fakeWindowSystem) BeginUserMove(h Handle) error {
	f.userMoves++
	return nil
}

func (f *fakeWindowSystem) BeginUserResize(h Handle, dir ResizeDirection) error {
	f.userResizes = append(f.userResizes, dir)
	return nil
}

// fakeDevice records invalidations and presents.
type fakeDevice struct {
	adapter     int
	invalidated []uint64
	validateOK  bool
	presented   []uint64
	copied      []uint64
	resets      []present.Parameters
}

func (d *fakeDevice) AdapterIndex() int { return d.adapter }

func (d *fakeDevice) Invalidate(window uint64) {
	d.invalidated = append(d.invalidated, window)
}

func (d *fakeDevice) Reset(params present.Parameters) error {
	d.resets = append(d.resets, params)
	return nil
}

func (d *fakeDevice) Validate(window uint64) (bool, error) {
	return d.validateOK, nil
}

func (d *fakeDevice) Present(window uint64) error {
	d.presented = append(d.presented, window)
	return nil
}

func (d *fakeDevice) CopyBackBuffer(window uint64, dst []byte) error {
	d.copied = append(d.copied, window)
	return nil
}

// fakeInput records synthetic button releases.
type fakeInput struct {
	buttonUps []input.Button
}

func (f *fakeInput) SimulateButtonUp(b input.Button) {
	f.buttonUps = append(f.buttonUps, b)
}
