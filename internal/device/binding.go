package device

// Binding is the non-owning association between a surface and a device
// instance, plus a validity flag. It is replaced wholesale on device swap and
// never partially updated. All access happens on the core thread; the binding
// itself carries no locking.
type Binding struct {
	dev   Device
	valid bool
}

// Bind replaces any existing binding with the given device and marks it
// invalid: a newly bound device must be explicitly validated before use.
func (b *Binding) Bind(d Device) {
	b.dev = d
	b.valid = false
}

// Unbind detaches from the device. No-op if already unbound.
func (b *Binding) Unbind() {
	b.dev = nil
	b.valid = false
}

// Bound reports whether a device is currently bound.
func (b *Binding) Bound() bool {
	return b.dev != nil
}

// Device returns the bound device, or nil.
func (b *Binding) Device() Device {
	return b.dev
}

// Valid reports the current validity flag. Invalidity is an expected
// transient state during mode switches, not an error.
func (b *Binding) Valid() bool {
	return b.valid
}

// Invalidate marks the binding invalid without unbinding and notifies the
// device that the window's swap chain needs a reset.
func (b *Binding) Invalidate(window uint64) {
	b.valid = false
	if b.dev != nil {
		b.dev.Invalidate(window)
	}
}

// Validate asks the bound device to confirm the surface is still usable and
// updates the validity flag accordingly. Returns the resulting flag; false if
// no device is bound.
func (b *Binding) Validate(window uint64) bool {
	if b.dev == nil {
		b.valid = false
		return false
	}
	ok, err := b.dev.Validate(window)
	b.valid = ok && err == nil
	return b.valid
}
