// Package input watches a GPIO line configured as a pull-up input and
// reports every logical transition through a user handler, one callback
// per toggle, in the order the toggles occurred.
//
// When the platform can raise an interrupt for the pin, edges are counted
// asynchronously by an interrupt routine and replayed on the next Step.
// Otherwise Step re-reads the level itself; bursts faster than the step
// cadence then coalesce (at most one toggle is detected per Step).
package input

import (
	"inputbridge-go/errcode"
	"inputbridge-go/hw"
	"inputbridge-go/trampoline"
)

// Func is invoked once per transition with the new logical state.
type Func func(in *Input, state bool)

// DataFunc is the token-carrying handler variant. The data value given at
// construction is passed back verbatim on every invocation.
type DataFunc func(in *Input, state bool, data any)

// handler is the active callback variant; exactly one per Input.
type handler interface {
	emit(in *Input, state bool)
}

type stateHandler Func

func (f stateHandler) emit(in *Input, state bool) { f(in, state) }

type dataHandler struct {
	fn   DataFunc
	data any
}

func (h dataHandler) emit(in *Input, state bool) { h.fn(in, state, h.data) }

// Resources bundles the platform collaborators inputs are built against.
// One Resources value is typically shared by every input in the program;
// Slots must have capacity for all interrupt-capable pins that will be
// constructed.
type Resources struct {
	Pins  hw.PinFactory
	IRQ   hw.IRQController
	Slots *trampoline.Table
}

// Input monitors one pin. Construct with New or NewWithData, then call
// Step from the cooperative loop. All methods other than the interrupt
// routine itself must run on the cooperative context.
type Input struct {
	pinN   int
	gpio   hw.GPIOPin
	irqPin hw.IRQPin // nil when the pin has no interrupt line
	ctl    hw.IRQController

	handler handler

	// Written by the interrupt routine, read by Step under the mask.
	asyncCount uint32
	asyncState bool

	// Owned by the cooperative context.
	syncCount uint32
	syncState bool
}

// New builds an Input reporting transitions on pin to fn.
func New(res Resources, pin int, fn Func) (*Input, error) {
	if fn == nil {
		return nil, errcode.InvalidParams
	}
	return build(res, pin, stateHandler(fn))
}

// NewWithData builds an Input whose handler also receives data.
func NewWithData(res Resources, pin int, fn DataFunc, data any) (*Input, error) {
	if fn == nil {
		return nil, errcode.InvalidParams
	}
	return build(res, pin, dataHandler{fn: fn, data: data})
}

func build(res Resources, pinN int, h handler) (*Input, error) {
	if res.Pins == nil {
		return nil, errcode.InvalidParams
	}
	p, ok := res.Pins.ByNumber(pinN)
	if !ok {
		return nil, errcode.UnknownPin
	}
	// A pull-up keeps a disconnected line at a stable high level.
	if err := p.ConfigureInput(hw.PullUp); err != nil {
		return nil, err
	}

	in := &Input{pinN: pinN, gpio: p, ctl: res.IRQ, handler: h}

	irqPin, capable := p.(hw.IRQPin)
	if !capable {
		// No interrupt line: Step re-reads the level itself. Seed the
		// synchronized state inverted so the first Step reports the true
		// initial level as a forced transition.
		in.syncState = !p.Get()
		return in, nil
	}
	if res.IRQ == nil || res.Slots == nil {
		return nil, errcode.InvalidParams
	}

	// Interrupt path. One synthetic pending toggle makes the first Step
	// report the initial level without waiting for a physical edge.
	in.irqPin = irqPin
	in.asyncCount = 1
	in.asyncState = p.Get()
	in.syncState = !in.asyncState

	// The platform only accepts zero-argument interrupt routines, so route
	// back to this instance through a trampoline slot.
	entry, err := res.Slots.Register(onChange, in)
	if err != nil {
		return nil, err
	}
	if err := irqPin.SetIRQ(hw.EdgeBoth, entry); err != nil {
		return nil, err
	}
	return in, nil
}

// onChange forwards the static trampoline call to the instance.
func onChange(token any) {
	token.(*Input).onChange()
}

// onChange runs in interrupt context: capture the raw level and count one
// more toggle. An edge interrupt fires once per genuine transition, so
// every call is one toggle even if the captured level happens to match a
// previous snapshot.
func (in *Input) onChange() {
	in.asyncState = in.gpio.Get()
	in.asyncCount++
}

// Step reconciles pending toggles and reports each one, oldest first. It
// never blocks and is a no-op when nothing changed.
func (in *Input) Step() {
	var state bool
	var count, change uint32
	if in.irqPin != nil {
		// asyncState/asyncCount span more than one machine word, so copy
		// them with interrupt delivery suspended. Nothing else may run
		// under the mask.
		hw.Critical(in.ctl, func() {
			state = in.asyncState
			count = in.asyncCount
		})
		change = count - in.syncCount
	} else {
		state = in.gpio.Get()
		if state == in.syncState {
			return
		}
		// A polled line can only ever surface one pending toggle; faster
		// bursts coalesce.
		change = 1
		count = in.syncCount + 1
	}
	if change == 0 {
		return
	}
	// Replay each toggle by pure negation rather than jumping to the
	// captured level: paired edges that cancel out in net state still get
	// their own callbacks.
	for c := uint32(0); c < change; c++ {
		in.syncState = !in.syncState
		in.handler.emit(in, in.syncState)
	}
	in.syncCount = count
}

// State returns the last reported logical state.
func (in *Input) State() bool { return in.syncState }

// Pin returns the pin number.
func (in *Input) Pin() int { return in.pinN }

// Close detaches the interrupt routine, if one was attached. The caller
// must guarantee no interrupt for this pin can fire concurrently with
// Close, e.g. by masking interrupts around it. The trampoline slot is not
// reclaimed.
func (in *Input) Close() error {
	if in.irqPin != nil {
		return in.irqPin.ClearIRQ()
	}
	return nil
}
