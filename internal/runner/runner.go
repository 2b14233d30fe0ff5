// Package runner drives a machine at a fixed instruction rate and decrements its
// timers at 60 Hz of wall clock time.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// TimerInterval is the period of the delay and sound timer decrement.
const TimerInterval = time.Second / 60

// Clock abstracts wall clock time.
type Clock interface {
	Now() time.Time
	// Sleep blocks for the duration or until the context is done.
	Sleep(ctx context.Context, d time.Duration)
}

// KeyFeed supplies the keypad snapshot before every step.
type KeyFeed interface {
	Keys() keypad.State
}

// Recorder receives the machine state after every step.
type Recorder interface {
	Record(snapshot vm.Snapshot)
}

// Options of a run.
type Options struct {
	// Speed is the number of instructions per second, 0 runs unthrottled.
	Speed int
	// Steps stops the run after the given number of instructions, 0 runs until cancelled or halted.
	Steps uint64

	KeyFeed  KeyFeed
	Recorder Recorder
	Clock    Clock // defaults to the system clock
}

// Run executes the machine until the context is cancelled, the step budget is
// used up, the machine pauses itself or a fatal error occurs. It returns the
// engine error or the context error. Unthrottled runs stalled on a key wait
// sleep until the next timer tick.
func Run(ctx context.Context, logger *log.Logger, machine *vm.VM, opts Options) error {
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}

	var interval time.Duration
	if opts.Speed > 0 {
		interval = time.Second / time.Duration(opts.Speed)
	}

	start := clock.Now()
	lastTick := start
	var executed uint64
	var waiting bool

	for opts.Steps == 0 || executed < opts.Steps {
		if err := ctx.Err(); err != nil {
			logger.Debug("Run cancelled", log.Int("instructions", int(executed)))
			return err
		}
		if machine.Paused() {
			break
		}

		if opts.KeyFeed != nil {
			machine.SetKeys(opts.KeyFeed.Keys())
		}
		if err := machine.Step(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
		executed++

		if opts.Recorder != nil {
			opts.Recorder.Record(machine.Snapshot())
		}

		now := clock.Now()
		for now.Sub(lastTick) >= TimerInterval {
			machine.TickTimers()
			lastTick = lastTick.Add(TimerInterval)
		}

		if machine.WaitingForKey() {
			if !waiting {
				logger.Debug("Waiting for key press", log.Hex("pc", machine.PC))
				waiting = true
			}
			// an unthrottled key wait only needs to spin as fast as the timers tick
			if interval == 0 {
				clock.Sleep(ctx, lastTick.Add(TimerInterval).Sub(now))
			}
		} else {
			waiting = false
		}

		if interval > 0 {
			due := start.Add(time.Duration(executed) * interval)
			if wait := due.Sub(now); wait > 0 {
				clock.Sleep(ctx, wait)
			}
		}
	}

	logger.Debug("Run finished",
		log.Int("instructions", int(executed)),
		log.Hex("pc", machine.PC))
	return nil
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
