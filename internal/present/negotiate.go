package present

import "fmt"

// CapabilityProbe answers whether a given format/feature combination is
// supported by the current adapter/device. Implementations are supplied by
// the device layer.
type CapabilityProbe interface {
	// SupportsDepthFormat reports whether the depth/stencil format can back a
	// surface using the given backbuffer format.
	SupportsDepthFormat(backBuffer BackBufferFormat, depth DepthStencilFormat) (bool, error)

	// DepthStencilMatch reports whether the depth/stencil format is
	// surface-compatible with the backbuffer format.
	DepthStencilMatch(backBuffer BackBufferFormat, depth DepthStencilFormat) (bool, error)

	// PresentIntervals returns the intervals the adapter advertises.
	PresentIntervals() IntervalMask

	// MultisampleSettings resolves a requested sample count and quality hint
	// into a supported type/quality pair for the given format.
	MultisampleSettings(samples uint32, hint string, format BackBufferFormat, fullscreen bool) (MultisampleType, uint32, error)
}

// Negotiate builds presentation parameters for the requested surface state,
// applying capability-based fallback chains for the depth/stencil format,
// multisample level and present interval. It is deterministic and
// side-effect-free given a probe.
//
// A probe rejection or probe failure continues the fallback chain; only the
// final fallback step failing surfaces as an error.
func Negotiate(req Request, probe CapabilityProbe) (Parameters, error) {
	p := Parameters{
		BackBufferWidth:  req.Width,
		BackBufferHeight: req.Height,
		DepthBuffer:      req.DepthBuffer,
		Windowed:         !req.Fullscreen,
		TargetWindow:     req.TargetWindow,
	}

	// A zero-sized backbuffer is invalid for any device.
	if p.BackBufferWidth <= 0 {
		p.BackBufferWidth = 1
	}
	if p.BackBufferHeight <= 0 {
		p.BackBufferHeight = 1
	}

	// Extra buffering avoids stalling on the vertical sync wait.
	if req.VSync {
		p.BackBufferCount = 2
	} else {
		p.BackBufferCount = 1
	}

	p.BackBufferFormat = FormatR5G6B5
	if req.ColorDepth > colorDepthThreshold {
		p.BackBufferFormat = FormatX8R8G8B8
	}

	depth, err := negotiateDepthStencil(req.ColorDepth, p.BackBufferFormat, probe)
	if err != nil {
		return Parameters{}, err
	}
	p.DepthStencil = depth

	p.Interval = negotiateInterval(req, probe)

	if req.Fullscreen {
		p.RefreshRate = req.RefreshRate
	}

	msType, msQuality, err := probe.MultisampleSettings(req.Multisample, req.MultisampleHint, p.BackBufferFormat, req.Fullscreen)
	if err != nil {
		// A failed multisample query degrades to no multisampling rather
		// than failing the whole negotiation.
		msType, msQuality = 0, 0
	}
	p.Multisample = msType
	if msQuality == 0 {
		p.MultisampleQuality = 0
	} else {
		p.MultisampleQuality = msQuality
	}

	return p, nil
}

// negotiateDepthStencil walks the depth/stencil fallback chain. Above the
// color-depth threshold: D24S8, then D32, then D16. When the combined format
// is accepted, surface compatibility decides between the stencil-bearing
// D24S8 and its depth-only sibling D24X8. Below the threshold D16 is selected
// directly without probing.
func negotiateDepthStencil(colorDepth int, backBuffer BackBufferFormat, probe CapabilityProbe) (DepthStencilFormat, error) {
	if colorDepth <= colorDepthThreshold {
		return DepthD16, nil
	}

	if supported(probe, backBuffer, DepthD24S8) {
		if match, err := probe.DepthStencilMatch(backBuffer, DepthD24S8); err == nil && match {
			return DepthD24S8, nil
		}
		return DepthD24X8, nil
	}

	if supported(probe, backBuffer, DepthD32) {
		return DepthD32, nil
	}

	if supported(probe, backBuffer, DepthD16) {
		return DepthD16, nil
	}

	return 0, fmt.Errorf("no usable depth/stencil format for %v (tried %v, %v, %v)",
		backBuffer, DepthD24S8, DepthD32, DepthD16)
}

// supported treats a probe failure the same as a rejection.
func supported(probe CapabilityProbe, backBuffer BackBufferFormat, depth DepthStencilFormat) bool {
	ok, err := probe.SupportsDepthFormat(backBuffer, depth)
	return err == nil && ok
}

func negotiateInterval(req Request, probe CapabilityProbe) PresentInterval {
	if !req.VSync {
		return IntervalImmediate
	}

	// Windowed presentation only supports the single-interval mode.
	if !req.Fullscreen {
		return IntervalOne
	}

	var interval PresentInterval
	switch req.VSyncInterval {
	case 2:
		interval = IntervalTwo
	case 3:
		interval = IntervalThree
	case 4:
		interval = IntervalFour
	default:
		interval = IntervalOne
	}

	// Re-validate against the advertised mask, downgrading to the safe
	// single-interval mode when unsupported.
	if !probe.PresentIntervals().Supports(interval) {
		interval = IntervalOne
	}
	return interval
}
