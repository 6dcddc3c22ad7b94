// Package sched drives periodically-polled components. Anything that
// needs regular time integration implements Stepper; a Runner owns a
// collection of steppables and walks them on a fixed cadence.
package sched

import (
	"context"
	"math/rand"
	"time"

	"inputbridge-go/x/mathx"
)

// Stepper is implemented by components that must be stepped regularly.
// Step must not block.
type Stepper interface {
	Step()
}

// Runner steps a fixed set of steppables. Add everything before calling
// Run; the runner is not safe for concurrent mutation.
type Runner struct {
	steppers []Stepper
	interval time.Duration
	jitter   time.Duration
	rand     *rand.Rand
}

// NewRunner makes a runner firing every interval plus a uniform jitter in
// [0..jitter]. Jitter is clamped to the interval.
func NewRunner(interval, jitter time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Millisecond
	}
	jitter = mathx.Clamp(jitter, 0, interval)
	return &Runner{
		interval: interval,
		jitter:   jitter,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Add appends steppables. Call order within a pass follows add order; no
// ordering guarantee holds across distinct steppables beyond that.
func (r *Runner) Add(s ...Stepper) {
	r.steppers = append(r.steppers, s...)
}

// StepAll performs one cooperative pass over every steppable.
func (r *Runner) StepAll() {
	for _, s := range r.steppers {
		s.Step()
	}
}

// Run steps everything on the configured cadence until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	t := time.NewTimer(r.next())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.StepAll()
			t.Reset(r.next())
		}
	}
}

func (r *Runner) next() time.Duration {
	d := r.interval
	if r.jitter > 0 {
		d += time.Duration(r.rand.Int63n(int64(r.jitter) + 1)) // [0..jitter]
	}
	return d
}
