//go:build !rp2040 && !rp2350

package platform

import (
	"testing"
	"time"

	"inputbridge-go/hw"
)

func TestFakePinDeliversEdgeIRQ(t *testing.T) {
	f := NewHostPinFactory()
	p, ok := f.ByNumber(3)
	if !ok {
		t.Fatal("ByNumber(3) failed")
	}
	irqPin, ok := p.(hw.IRQPin)
	if !ok {
		t.Fatal("host pin should be IRQ-capable by default")
	}

	var fired int
	if err := irqPin.SetIRQ(hw.EdgeBoth, func() { fired++ }); err != nil {
		t.Fatalf("SetIRQ: %v", err)
	}

	p.Set(true)
	p.Set(true) // no edge
	p.Set(false)
	if fired != 2 {
		t.Fatalf("fired = %d, want 2", fired)
	}

	if err := irqPin.ClearIRQ(); err != nil {
		t.Fatalf("ClearIRQ: %v", err)
	}
	p.Set(true)
	if fired != 2 {
		t.Fatalf("fired after ClearIRQ = %d, want 2", fired)
	}
}

func TestFakePinRisingOnly(t *testing.T) {
	f := NewHostPinFactory()
	p, _ := f.ByNumber(0)
	irqPin := p.(hw.IRQPin)

	var fired int
	_ = irqPin.SetIRQ(hw.EdgeRising, func() { fired++ })

	p.Set(true)
	p.Set(false)
	p.Set(true)
	if fired != 2 {
		t.Fatalf("fired = %d, want 2 rising edges", fired)
	}
}

func TestPollOnlyPinHidesIRQCapability(t *testing.T) {
	f := NewHostPinFactory()
	f.MarkPollOnly(5)
	p, ok := f.ByNumber(5)
	if !ok {
		t.Fatal("ByNumber(5) failed")
	}
	if _, capable := p.(hw.IRQPin); capable {
		t.Fatal("poll-only pin must not expose IRQ capability")
	}
	// The underlying level is still shared with the factory's FakePin.
	raw, _ := f.Get(5)
	raw.Set(true)
	if !p.Get() {
		t.Fatal("poll-only pin did not observe level change")
	}
}

func TestSuspendHoldsOffDelivery(t *testing.T) {
	f := NewHostPinFactory()
	ctl := f.IRQ()
	p, _ := f.ByNumber(1)
	irqPin := p.(hw.IRQPin)

	fired := make(chan struct{})
	_ = irqPin.SetIRQ(hw.EdgeBoth, func() { close(fired) })

	ctl.Suspend()
	go p.Set(true) // delivery must block on the mask

	select {
	case <-fired:
		ctl.Resume()
		t.Fatal("IRQ delivered while suspended")
	case <-time.After(10 * time.Millisecond):
	}

	ctl.Resume()
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("IRQ never delivered after resume")
	}
}

func TestFactoryReturnsStablePins(t *testing.T) {
	f := NewHostPinFactory()
	a, _ := f.ByNumber(2)
	b, _ := f.ByNumber(2)
	a.Set(true)
	if !b.Get() {
		t.Fatal("pins for the same number do not share state")
	}
}
