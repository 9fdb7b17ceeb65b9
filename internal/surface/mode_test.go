package surface

import "testing"

func TestRequestMode_IdempotentForCurrentTriple(t *testing.T) {
	ws := newFakeWindowSystem()
	s := newTestSurface(t, ws, Options{Width: 800, Height: 600, Monitor: -1})
	dev := &fakeDevice{validateOK: true}
	s.SetDevice(dev)
	s.ValidateDevice()

	if err := s.RequestMode(false, s.Width(), s.Height()); err != nil {
		t.Fatalf("RequestMode: %v", err)
	}
	if s.SwitchingMode() {
		t.Fatalf("no-op request must not enter a transitional state")
	}
	if len(dev.invalidated) != 0 {
		t.Fatalf("no-op request must not invalidate the device")
	}
	if !s.DeviceValid() {
		t.Fatalf("no-op request must not touch the binding")
	}
}

func TestRequestMode_WindowedToFullscreen(t *testing.T) {
	ws := newFakeWindowSystem()
	s := newTestSurface(t, ws, Options{Width: 800, Height: 600, Monitor: -1})
	dev := &fakeDevice{validateOK: true}
	s.SetDevice(dev)
	s.ValidateDevice()

	if err := s.RequestMode(true, 1920, 1080); err != nil {
		t.Fatalf("RequestMode: %v", err)
	}

	if !s.Fullscreen() {
		t.Fatalf("expected fullscreen state")
	}
	if s.Width() != 1920 || s.Height() != 1080 {
		t.Fatalf("expected 1920x1080, got %dx%d", s.Width(), s.Height())
	}
	if !s.SwitchingMode() {
		t.Fatalf("transitional flag must be set after a mode change")
	}
	if len(dev.invalidated) != 1 {
		t.Fatalf("expected device invalidated exactly once, got %d", len(dev.invalidated))
	}
	if s.DeviceValid() {
		t.Fatalf("binding must be invalid during the switch")
	}

	// Geometry was applied before the style change, then the style-change
	// notification forced as a separate non-geometric step.
	if len(ws.moveResizes) != 1 {
		t.Fatalf("expected one geometry application, got %d", len(ws.moveResizes))
	}
	mr := ws.moveResizes[0]
	if mr.rect.Left != 0 || mr.rect.Top != 0 || mr.rect.Width != 1920 || mr.rect.Height != 1080 {
		t.Fatalf("expected window at monitor origin 1920x1080, got %+v", mr.rect)
	}
	if !mr.topMost {
		t.Fatalf("fullscreen window must be top-most")
	}
	if len(ws.styleChanges) != 1 || ws.styleChanges[0].Border != BorderNone {
		t.Fatalf("expected decorations stripped, got %+v", ws.styleChanges)
	}
	if ws.styleNotifies != 1 {
		t.Fatalf("expected one forced style-change notification, got %d", ws.styleNotifies)
	}
}

func TestRequestMode_PureResizeDoesNotEnterTransitionalState(t *testing.T) {
	ws := newFakeWindowSystem()
	s := newTestSurface(t, ws, Options{Width: 1920, Height: 1080, Fullscreen: true, Monitor: -1})
	dev := &fakeDevice{validateOK: true}
	s.SetDevice(dev)

	if err := s.RequestMode(true, 1280, 720); err != nil {
		t.Fatalf("RequestMode: %v", err)
	}
	if s.SwitchingMode() {
		t.Fatalf("a resolution change within fullscreen must not set the transitional flag")
	}
	if s.Width() != 1280 || s.Height() != 720 {
		t.Fatalf("expected 1280x720, got %dx%d", s.Width(), s.Height())
	}
	if len(dev.invalidated) != 1 {
		t.Fatalf("a size change still invalidates the device")
	}
	// Resolution change applies geometry only; decorations were already gone.
	if len(ws.styleChanges) != 0 || ws.styleNotifies != 0 {
		t.Fatalf("pure resolution change must not touch window style")
	}
}

func TestRequestMode_WindowedResizeInvalidatesWithoutSwitching(t *testing.T) {
	ws := newFakeWindowSystem()
	s := newTestSurface(t, ws, Options{Width: 800, Height: 600, Monitor: -1})
	dev := &fakeDevice{validateOK: true}
	s.SetDevice(dev)

	if err := s.RequestMode(false, 1024, 768); err != nil {
		t.Fatalf("RequestMode: %v", err)
	}
	if s.SwitchingMode() {
		t.Fatalf("same-mode resize must not set the transitional flag")
	}
	if len(dev.invalidated) != 1 {
		t.Fatalf("expected device invalidated once, got %d", len(dev.invalidated))
	}
	if s.state.desiredWidth != 1024 || s.state.desiredHeight != 768 {
		t.Fatalf("explicit request must update desired size")
	}
}

func TestFinishModeSwitch_FullscreenReappliesClipRegion(t *testing.T) {
	ws := newFakeWindowSystem()
	s := newTestSurface(t, ws, Options{Width: 800, Height: 600, Monitor: -1})
	s.SetDevice(&fakeDevice{validateOK: true})

	if err := s.RequestMode(true, 1920, 1080); err != nil {
		t.Fatalf("RequestMode: %v", err)
	}
	if err := s.FinishModeSwitch(); err != nil {
		t.Fatalf("FinishModeSwitch: %v", err)
	}

	if s.SwitchingMode() {
		t.Fatalf("finalize is the sole exit from the transitional state")
	}
	if len(ws.clipRegions) != 1 {
		t.Fatalf("expected clip region reapplied, got %d", len(ws.clipRegions))
	}
	if ws.clipRegions[0].Width != 1920 || ws.clipRegions[0].Height != 1080 {
		t.Fatalf("expected 1920x1080 region, got %+v", ws.clipRegions[0])
	}
}

func TestFinishModeSwitch_WindowedRestoresDesiredSizeCentered(t *testing.T) {
	ws := newFakeWindowSystem()
	s := newTestSurface(t, ws, Options{Width: 1920, Height: 1080, Fullscreen: true, Monitor: -1})
	s.SetDevice(&fakeDevice{validateOK: true})

	if err := s.RequestMode(false, 800, 600); err != nil {
		t.Fatalf("RequestMode: %v", err)
	}
	if !s.SwitchingMode() {
		t.Fatalf("expected transitional state before finalize")
	}

	// A stray resize notification during the switch pollutes the current
	// size; the desired size stays authoritative.
	s.state.width = 1912
	s.state.height = 1012

	if err := s.FinishModeSwitch(); err != nil {
		t.Fatalf("FinishModeSwitch: %v", err)
	}
	if s.SwitchingMode() {
		t.Fatalf("transitional flag must be cleared")
	}
	if s.Width() != 800 || s.Height() != 600 {
		t.Fatalf("expected desired size adopted, got %dx%d", s.Width(), s.Height())
	}

	// Final placement: outer 808x632 centered in the 1920x1040 work area,
	// top-most state cleared.
	last := ws.moveResizes[len(ws.moveResizes)-1]
	if last.topMost {
		t.Fatalf("windowed restore must clear top-most state")
	}
	if last.rect.Width != 808 || last.rect.Height != 632 {
		t.Fatalf("expected outer 808x632, got %dx%d", last.rect.Width, last.rect.Height)
	}
	if last.rect.Left != (1920-808)/2 || last.rect.Top != (1040-632)/2 {
		t.Fatalf("expected centered placement, got (%d,%d)", last.rect.Left, last.rect.Top)
	}
}

func TestTransitionalFlagLifecycle(t *testing.T) {
	ws := newFakeWindowSystem()
	s := newTestSurface(t, ws, Options{Width: 800, Height: 600, Monitor: -1})
	s.SetDevice(&fakeDevice{validateOK: true})

	if s.SwitchingMode() {
		t.Fatalf("flag must start clear")
	}
	_ = s.RequestMode(true, 1920, 1080)
	if !s.SwitchingMode() {
		t.Fatalf("flag must be set immediately after RequestMode returns")
	}
	_ = s.FinishModeSwitch()
	if s.SwitchingMode() {
		t.Fatalf("flag must be clear only after FinishModeSwitch")
	}

	// A pure resize while already fullscreen never sets the flag.
	_ = s.RequestMode(true, 1280, 720)
	if s.SwitchingMode() {
		t.Fatalf("pure resize must not set the flag")
	}
}

func TestRequestMode_RoundTripRecenters(t *testing.T) {
	ws := newFakeWindowSystem()
	s := newTestSurface(t, ws, Options{Width: 800, Height: 600, Monitor: -1})
	dev := &fakeDevice{validateOK: true}
	s.SetDevice(dev)

	_ = s.RequestMode(true, 1920, 1080)
	_ = s.FinishModeSwitch()
	_ = s.RequestMode(false, 800, 600)
	_ = s.FinishModeSwitch()

	if s.Fullscreen() {
		t.Fatalf("expected windowed after round trip")
	}
	if s.Width() != 800 || s.Height() != 600 {
		t.Fatalf("expected 800x600 restored, got %dx%d", s.Width(), s.Height())
	}
	if len(dev.invalidated) != 2 {
		t.Fatalf("expected one invalidation per mode change, got %d", len(dev.invalidated))
	}
}
