// platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"device/arm"
	"machine"

	"inputbridge-go/hw"
)

// -----------------------------------------------------------------------------
// Defaults on Raspberry Pi Pico / Pico 2 (RP2 family)
// -----------------------------------------------------------------------------

// Default maps logical numbers directly to machine.Pin(n), matching
// Pico/Pico 2 GP numbering, and masks interrupts via PRIMASK.
func Default() (hw.PinFactory, hw.IRQController) {
	return rp2PinFactory{}, &armIRQController{}
}

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (hw.GPIOPin, bool) {
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull hw.Pull) error {
	var mode machine.PinMode
	switch pull {
	case hw.PullUp:
		mode = machine.PinInputPullup
	case hw.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }

func (r *rp2Pin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}

func (r *rp2Pin) Number() int { return r.n }

// IRQ support. The RP2 port provides SetInterrupt with PinChange flags.
func (r *rp2Pin) SetIRQ(edge hw.Edge, handler func()) error {
	change := toPinChange(edge)
	return r.p.SetInterrupt(change, func(machine.Pin) { handler() })
}

func (r *rp2Pin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

func toPinChange(e hw.Edge) machine.PinChange {
	switch e {
	case hw.EdgeRising:
		return machine.PinRising
	case hw.EdgeFalling:
		return machine.PinFalling
	case hw.EdgeBoth:
		return machine.PinToggle
	default:
		// Zero value is a no-op/disabled.
		var zero machine.PinChange
		return zero
	}
}

// armIRQController masks interrupts globally via PRIMASK. Suspend/Resume
// pairs are used non-reentrantly from the cooperative loop, so a single
// saved state is enough.
type armIRQController struct {
	saved uintptr
}

func (c *armIRQController) Suspend() { c.saved = arm.DisableInterrupts() }
func (c *armIRQController) Resume()  { arm.EnableInterrupts(c.saved) }
