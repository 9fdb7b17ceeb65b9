package present

import (
	"errors"
	"strings"
	"testing"
)

// fakeProbe is a configurable capability probe.
type fakeProbe struct {
	depthFormats map[DepthStencilFormat]bool
	depthErr     error
	match        bool
	matchErr     error
	intervals    IntervalMask
	msType       MultisampleType
	msQuality    uint32
	msErr        error
}

func (f *fakeProbe) SupportsDepthFormat(bb BackBufferFormat, d DepthStencilFormat) (bool, error) {
	if f.depthErr != nil {
		return false, f.depthErr
	}
	return f.depthFormats[d], nil
}

func (f *fakeProbe) DepthStencilMatch(bb BackBufferFormat, d DepthStencilFormat) (bool, error) {
	return f.match, f.matchErr
}

func (f *fakeProbe) PresentIntervals() IntervalMask {
	return f.intervals
}

func (f *fakeProbe) MultisampleSettings(samples uint32, hint string, format BackBufferFormat, fullscreen bool) (MultisampleType, uint32, error) {
	return f.msType, f.msQuality, f.msErr
}

func allIntervals() IntervalMask {
	return IntervalMask(IntervalImmediate | IntervalOne | IntervalTwo | IntervalThree | IntervalFour)
}

func permissiveProbe() *fakeProbe {
	return &fakeProbe{
		depthFormats: map[DepthStencilFormat]bool{
			DepthD16: true, DepthD24S8: true, DepthD24X8: true, DepthD32: true,
		},
		match:     true,
		intervals: allIntervals(),
	}
}

func TestNegotiate_BackBufferFloorOfOne(t *testing.T) {
	p, err := Negotiate(Request{Width: 0, Height: 0, ColorDepth: 16}, permissiveProbe())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BackBufferWidth != 1 || p.BackBufferHeight != 1 {
		t.Fatalf("expected 1x1 floor, got %dx%d", p.BackBufferWidth, p.BackBufferHeight)
	}
}

func TestNegotiate_FormatByColorDepth(t *testing.T) {
	tests := []struct {
		depth int
		want  BackBufferFormat
	}{
		{16, FormatR5G6B5},
		{15, FormatR5G6B5},
		{24, FormatX8R8G8B8},
		{32, FormatX8R8G8B8},
	}
	for _, tt := range tests {
		p, err := Negotiate(Request{Width: 640, Height: 480, ColorDepth: tt.depth}, permissiveProbe())
		if err != nil {
			t.Fatalf("depth %d: unexpected error: %v", tt.depth, err)
		}
		if p.BackBufferFormat != tt.want {
			t.Fatalf("depth %d: expected %v, got %v", tt.depth, tt.want, p.BackBufferFormat)
		}
	}
}

func TestNegotiate_BufferCountFollowsVSync(t *testing.T) {
	p, _ := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, VSync: true}, permissiveProbe())
	if p.BackBufferCount != 2 {
		t.Fatalf("expected 2 backbuffers with vsync, got %d", p.BackBufferCount)
	}
	p, _ = Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32}, permissiveProbe())
	if p.BackBufferCount != 1 {
		t.Fatalf("expected 1 backbuffer without vsync, got %d", p.BackBufferCount)
	}
}

func TestNegotiate_DepthChainPrefersStencilBearingFormat(t *testing.T) {
	probe := permissiveProbe()
	p, err := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, DepthBuffer: true}, probe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DepthStencil != DepthD24S8 {
		t.Fatalf("expected D24S8, got %v", p.DepthStencil)
	}
}

func TestNegotiate_DepthChainIncompatibleMatchFallsToDepthOnlySibling(t *testing.T) {
	probe := permissiveProbe()
	probe.match = false
	p, err := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, DepthBuffer: true}, probe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DepthStencil != DepthD24X8 {
		t.Fatalf("expected D24X8, got %v", p.DepthStencil)
	}
}

func TestNegotiate_DepthChainFallsBackToD32(t *testing.T) {
	probe := permissiveProbe()
	probe.depthFormats[DepthD24S8] = false
	p, err := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, DepthBuffer: true}, probe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DepthStencil != DepthD32 {
		t.Fatalf("expected D32, got %v", p.DepthStencil)
	}
}

func TestNegotiate_DepthChainFallsBackToD16(t *testing.T) {
	probe := permissiveProbe()
	probe.depthFormats = map[DepthStencilFormat]bool{DepthD16: true}
	p, err := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, DepthBuffer: true}, probe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DepthStencil != DepthD16 {
		t.Fatalf("expected D16, got %v", p.DepthStencil)
	}
}

func TestNegotiate_DepthChainExhaustedIsConfigurationError(t *testing.T) {
	probe := permissiveProbe()
	probe.depthFormats = map[DepthStencilFormat]bool{}
	_, err := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, DepthBuffer: true}, probe)
	if err == nil {
		t.Fatalf("expected error when every depth format is rejected")
	}
	for _, name := range []string{"D24S8", "D32", "D16"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("expected error to name %s, got: %v", name, err)
		}
	}
}

func TestNegotiate_ProbeFailureTreatedAsRejection(t *testing.T) {
	probe := permissiveProbe()
	probe.depthErr = errors.New("device gone")
	_, err := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, DepthBuffer: true}, probe)
	if err == nil {
		t.Fatalf("expected configuration error when probing always fails")
	}
}

func TestNegotiate_LowColorDepthSelectsD16Directly(t *testing.T) {
	probe := permissiveProbe()
	// Probe rejecting everything must not matter below the threshold.
	probe.depthFormats = map[DepthStencilFormat]bool{}
	p, err := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 16, DepthBuffer: true}, probe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DepthStencil != DepthD16 {
		t.Fatalf("expected D16, got %v", p.DepthStencil)
	}
}

func TestNegotiate_IntervalImmediateWithoutVSync(t *testing.T) {
	p, _ := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, Fullscreen: true, VSyncInterval: 4}, permissiveProbe())
	if p.Interval != IntervalImmediate {
		t.Fatalf("expected immediate interval, got %v", p.Interval)
	}
}

func TestNegotiate_WindowedVSyncAlwaysSingleInterval(t *testing.T) {
	p, _ := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, VSync: true, VSyncInterval: 3}, permissiveProbe())
	if p.Interval != IntervalOne {
		t.Fatalf("expected single interval in windowed mode, got %v", p.Interval)
	}
}

func TestNegotiate_FullscreenIntervalMapping(t *testing.T) {
	tests := []struct {
		request int
		want    PresentInterval
	}{
		{1, IntervalOne},
		{2, IntervalTwo},
		{3, IntervalThree},
		{4, IntervalFour},
		{0, IntervalOne},
		{9, IntervalOne},
	}
	for _, tt := range tests {
		p, _ := Negotiate(Request{
			Width: 640, Height: 480, ColorDepth: 32,
			Fullscreen: true, VSync: true, VSyncInterval: tt.request,
		}, permissiveProbe())
		if p.Interval != tt.want {
			t.Fatalf("interval %d: expected %v, got %v", tt.request, tt.want, p.Interval)
		}
	}
}

func TestNegotiate_IntervalDowngradeWhenUnsupported(t *testing.T) {
	probe := permissiveProbe()
	probe.intervals = IntervalMask(IntervalImmediate | IntervalOne)
	p, _ := Negotiate(Request{
		Width: 640, Height: 480, ColorDepth: 32,
		Fullscreen: true, VSync: true, VSyncInterval: 4,
	}, probe)
	if p.Interval != IntervalOne {
		t.Fatalf("expected downgrade to single interval, got %v", p.Interval)
	}
}

func TestNegotiate_RefreshRateOnlyInFullscreen(t *testing.T) {
	p, _ := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, Fullscreen: true, RefreshRate: 144}, permissiveProbe())
	if p.RefreshRate != 144 {
		t.Fatalf("expected refresh rate 144, got %d", p.RefreshRate)
	}
	p, _ = Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, RefreshRate: 144}, permissiveProbe())
	if p.RefreshRate != 0 {
		t.Fatalf("expected refresh rate 0 in windowed mode, got %d", p.RefreshRate)
	}
}

func TestNegotiate_MultisampleFailureDegradesToNone(t *testing.T) {
	probe := permissiveProbe()
	probe.msErr = errors.New("not supported")
	p, err := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, Multisample: 8}, probe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Multisample != 0 || p.MultisampleQuality != 0 {
		t.Fatalf("expected no multisampling, got type=%d quality=%d", p.Multisample, p.MultisampleQuality)
	}
}

func TestNegotiate_MultisampleSettingsPassThrough(t *testing.T) {
	probe := permissiveProbe()
	probe.msType = 4
	probe.msQuality = 2
	p, _ := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, Multisample: 4}, probe)
	if p.Multisample != 4 || p.MultisampleQuality != 2 {
		t.Fatalf("expected type=4 quality=2, got type=%d quality=%d", p.Multisample, p.MultisampleQuality)
	}
}

func TestNegotiate_WindowedFlagAndTarget(t *testing.T) {
	p, _ := Negotiate(Request{Width: 640, Height: 480, ColorDepth: 32, TargetWindow: 99}, permissiveProbe())
	if !p.Windowed {
		t.Fatalf("expected windowed parameters")
	}
	if p.TargetWindow != 99 {
		t.Fatalf("expected target window 99, got %d", p.TargetWindow)
	}
}
