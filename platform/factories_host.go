// platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"sync"

	"inputbridge-go/hw"
)

// ----------------------------- IRQ mask (host) -------------------------------

// HostIRQController emulates the global interrupt mask. FakePin edge
// delivery runs under the same mutex, so Suspend genuinely holds off
// delivery the way masking does on hardware, and deliveries never overlap
// each other.
type HostIRQController struct {
	mu sync.Mutex
}

func (c *HostIRQController) Suspend() { c.mu.Lock() }
func (c *HostIRQController) Resume()  { c.mu.Unlock() }

func (c *HostIRQController) deliver(handler func()) {
	c.mu.Lock()
	handler()
	c.mu.Unlock()
}

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements hw.IRQPin for host-side builds and tests. Setting its
// level fires the attached interrupt routine synchronously, ISR-style,
// through the factory's interrupt controller.
type FakePin struct {
	mu      sync.RWMutex
	irq     *HostIRQController
	number  int
	level   bool
	pull    hw.Pull
	modeOut bool
	irqEdge hw.Edge
	irqFunc func()
}

func (p *FakePin) ConfigureInput(pull hw.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

// Set drives the simulated level. A level change that matches the
// configured IRQ edge invokes the interrupt routine before Set returns,
// exactly once, with the pin mutex released.
func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	irqFn := p.irqFunc
	want := irqWanted(p.irqEdge, edgeFrom(old, level))
	irq := p.irq
	p.mu.Unlock()

	if irqFn == nil || !want {
		return
	}
	if irq != nil {
		irq.deliver(irqFn)
	} else {
		irqFn()
	}
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Toggle() { p.Set(!p.Get()) }

func (p *FakePin) Number() int { return p.number }

func (p *FakePin) SetIRQ(edge hw.Edge, handler func()) error {
	p.mu.Lock()
	p.irqEdge = edge
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = hw.EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

func edgeFrom(old, new bool) hw.Edge {
	switch {
	case !old && new:
		return hw.EdgeRising
	case old && !new:
		return hw.EdgeFalling
	default:
		return hw.EdgeNone
	}
}

func irqWanted(cfg, seen hw.Edge) bool {
	switch cfg {
	case hw.EdgeBoth:
		return seen == hw.EdgeRising || seen == hw.EdgeFalling
	default:
		return cfg != hw.EdgeNone && cfg == seen
	}
}

// pollOnlyPin narrows a FakePin to the plain GPIOPin surface so capability
// probes see a pin without an interrupt line.
type pollOnlyPin struct {
	p *FakePin
}

func (p pollOnlyPin) ConfigureInput(pull hw.Pull) error   { return p.p.ConfigureInput(pull) }
func (p pollOnlyPin) ConfigureOutput(initial bool) error  { return p.p.ConfigureOutput(initial) }
func (p pollOnlyPin) Set(level bool)                      { p.p.Set(level) }
func (p pollOnlyPin) Get() bool                           { return p.p.Get() }
func (p pollOnlyPin) Toggle()                             { p.p.Toggle() }
func (p pollOnlyPin) Number() int                         { return p.p.Number() }

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu       sync.Mutex
	irq      *HostIRQController
	pins     map[int]*FakePin
	pollOnly map[int]bool
}

func NewHostPinFactory() *HostPinFactory {
	return &HostPinFactory{
		irq:      &HostIRQController{},
		pins:     make(map[int]*FakePin),
		pollOnly: make(map[int]bool),
	}
}

// IRQ returns the controller host pins deliver interrupts through.
func (f *HostPinFactory) IRQ() hw.IRQController { return f.irq }

// MarkPollOnly makes pin n present itself without interrupt capability.
// Call before the pin is handed out.
func (f *HostPinFactory) MarkPollOnly(n int) {
	f.mu.Lock()
	f.pollOnly[n] = true
	f.mu.Unlock()
}

func (f *HostPinFactory) ByNumber(n int) (hw.GPIOPin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n, irq: f.irq}
		f.pins[n] = p
	}
	if f.pollOnly[n] {
		return pollOnlyPin{p: p}, true
	}
	return p, true
}

// Get exposes the underlying *FakePin for tests (e.g. to drive levels).
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	return p, ok
}

// Default provides the host pin factory and its interrupt controller.
func Default() (hw.PinFactory, hw.IRQController) {
	f := NewHostPinFactory()
	return f, f.IRQ()
}
