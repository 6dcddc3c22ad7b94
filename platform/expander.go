// platform/expander.go
package platform

import (
	"sync"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/pcf8574"

	"inputbridge-go/errcode"
	"inputbridge-go/hw"
)

// ExpanderPinFactory serves the eight quasi-bidirectional lines of a
// PCF8574 I/O expander as input pins. The part has no per-pin MCU
// interrupt line (only a shared INT output at best), so these pins present
// the plain GPIOPin surface and inputs built on them take the polling
// path.
type ExpanderPinFactory struct {
	mu   sync.Mutex
	dev  *pcf8574.Device
	last [8]bool
}

// NewExpanderPinFactory attaches to a PCF8574 on bus at the default
// address. All eight lines float high through the part's internal
// current sources, matching the pull-up input contract.
func NewExpanderPinFactory(bus drivers.I2C) *ExpanderPinFactory {
	dev := pcf8574.New(bus)
	dev.Configure(pcf8574.Config{})
	f := &ExpanderPinFactory{dev: dev}
	for i := range f.last {
		f.last[i] = true
	}
	return f
}

func (f *ExpanderPinFactory) ByNumber(n int) (hw.GPIOPin, bool) {
	if n < 0 || n > 7 {
		return nil, false
	}
	return expanderPin{f: f, n: n}, true
}

// read refreshes all eight lines in one bus transaction and returns line
// n. A failed transaction keeps the last known levels rather than
// fabricating a toggle.
func (f *ExpanderPinFactory) read(n int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.dev.Read()
	if err == nil {
		for i := range f.last {
			f.last[i] = s.Pin(uint8(i))
		}
	}
	return f.last[n]
}

// expanderPin is a read-only adapter for one expander line.
type expanderPin struct {
	f *ExpanderPinFactory
	n int
}

// ConfigureInput is a no-op: PCF8574 lines are inputs whenever they are
// written high, which is the part's power-on state.
func (p expanderPin) ConfigureInput(_ hw.Pull) error { return nil }

func (p expanderPin) ConfigureOutput(bool) error { return errcode.Unsupported }

func (p expanderPin) Set(bool) {}
func (p expanderPin) Toggle()  {}

func (p expanderPin) Get() bool { return p.f.read(p.n) }

func (p expanderPin) Number() int { return p.n }
