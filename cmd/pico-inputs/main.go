// cmd/pico-inputs/main.go
package main

import (
	"context"
	"time"

	"inputbridge-go/input"
	"inputbridge-go/platform"
	"inputbridge-go/sched"
	"inputbridge-go/trampoline"
)

const (
	buttonPin = 14
	lidPin    = 15

	stepEvery  = 5 * time.Millisecond
	stepJitter = 0
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	pins, irq := platform.Default()
	res := input.Resources{
		Pins:  pins,
		IRQ:   irq,
		Slots: trampoline.New(trampoline.DefaultCapacity),
	}

	button, err := input.New(res, buttonPin, func(in *input.Input, state bool) {
		println("pin", in.Pin(), "->", levelName(state))
	})
	if err != nil {
		println("button setup failed:", err.Error())
		return
	}

	lid, err := input.NewWithData(res, lidPin, func(in *input.Input, state bool, data any) {
		println(data.(string), "->", levelName(state))
	}, "lid")
	if err != nil {
		println("lid setup failed:", err.Error())
		return
	}

	r := sched.NewRunner(stepEvery, stepJitter)
	r.Add(button, lid)
	r.Run(context.Background())
}

func levelName(state bool) string {
	if state {
		return "high"
	}
	return "low"
}
