package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/status"
)

// Stepper advances the simulation by dt; called only from the loop goroutine
type Stepper interface {
	Step(dt time.Duration)
}

// Loop drives a Stepper on a fixed tick with drift correction
// dt handed to the stepper is measured wall-clock time, capped at parameter.MaxTickDelta
type Loop struct {
	clock    Clock
	stepper  Stepper
	interval time.Duration

	lastTick         time.Time
	nextTickDeadline time.Time
	tickCount        atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	statTicks *atomic.Int64
}

// NewLoop creates a loop ticking stepper every interval; reg may be nil
func NewLoop(clock Clock, stepper Stepper, interval time.Duration, reg *status.Registry) *Loop {
	if interval <= 0 {
		interval = parameter.TickInterval
	}
	l := &Loop{
		clock:    clock,
		stepper:  stepper,
		interval: interval,
		stopChan: make(chan struct{}),
	}
	if reg != nil {
		l.statTicks = reg.Ints.Get("engine.ticks")
	}
	return l
}

// Start runs the loop on its own goroutine
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		go l.run()
	}
}

// Stop halts the loop and waits for the in-flight tick to finish
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		if l.running.CompareAndSwap(true, false) {
			close(l.stopChan)
			l.wg.Wait()
		}
	})
}

// Ticks returns the number of completed ticks
func (l *Loop) Ticks() uint64 {
	return l.tickCount.Load()
}

// Tick performs one step at the current clock reading, used directly by tests and the terminal driver
func (l *Loop) Tick() {
	now := l.clock.Now()
	dt := l.interval
	if !l.lastTick.IsZero() {
		dt = now.Sub(l.lastTick)
	}
	if dt > parameter.MaxTickDelta {
		dt = parameter.MaxTickDelta
	}
	if dt < 0 {
		dt = 0
	}
	l.lastTick = now

	l.stepper.Step(dt)

	n := l.tickCount.Add(1)
	if l.statTicks != nil {
		l.statTicks.Store(int64(n))
	}
}

func (l *Loop) run() {
	defer l.wg.Done()

	l.nextTickDeadline = l.clock.Now().Add(l.interval)

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-timer.C:
		}

		l.Tick()

		now := l.clock.Now()
		l.nextTickDeadline = l.nextTickDeadline.Add(l.interval)

		// Drop missed ticks instead of bursting to catch up
		if now.Sub(l.nextTickDeadline) > l.interval*2 {
			l.nextTickDeadline = now.Add(l.interval)
		}

		sleep := l.nextTickDeadline.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}
