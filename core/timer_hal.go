package core

// TickTimer is the periodic refresh interrupt source driving the display
type TickTimer interface {
	// SetHandler registers the per-tick callback. Call before Enable.
	SetHandler(fn func())

	// Enable starts periodic ticks. Enabling a running timer is a no-op.
	Enable()

	// Disable stops periodic ticks. It may be called from the tick handler.
	Disable()

	// Enabled reports whether ticks are being delivered
	Enabled() bool
}
