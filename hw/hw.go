// hw/hw.go
package hw

// Pull selects the passive resistor applied to an input pin.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOPin is the minimal pin contract the input bridge consumes.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// IRQPin extends GPIOPin with edge interrupts. The handler is a plain
// zero-argument routine; the platform does not thread the pin identity
// through it. A pin's interrupt capability is discovered by asserting a
// GPIOPin to this interface.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies GPIO pins by the configured number scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// IRQController masks and unmasks interrupt delivery. Masking is global,
// not per pin, matching the reference hardware model. Suspend/Resume pairs
// must not nest.
type IRQController interface {
	Suspend()
	Resume()
}

// Critical runs fn with interrupt delivery suspended. Resume happens on
// every exit path, including a panic inside fn. Keep fn to the bare
// multi-field copy; user callbacks must never run under the mask.
func Critical(ctl IRQController, fn func()) {
	ctl.Suspend()
	defer ctl.Resume()
	fn()
}
