package realtime

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/comalice/stopwatch"
)

// DefaultTickRate is one stopwatch second.
const DefaultTickRate = time.Second

// Config configures the tick runtime.
type Config struct {
	TickRate time.Duration // wait between ticks (default: 1s)
	Clock    Clock         // default: SystemClock
	Logger   *zap.Logger   // default: no-op
}

// Runtime paces a stopwatch at a fixed tick rate.
type Runtime struct {
	sw       *stopwatch.Stopwatch
	tickRate time.Duration
	clock    Clock
	log      *zap.Logger
	tickNum  uint64
}

// NewRuntime creates a runtime for sw, filling in defaults for zero fields.
func NewRuntime(sw *stopwatch.Stopwatch, cfg Config) *Runtime {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Runtime{
		sw:       sw,
		tickRate: cfg.TickRate,
		clock:    cfg.Clock,
		log:      cfg.Logger,
	}
}

// Step waits one tick interval and then ticks the stopwatch. It returns the
// display value and whether the stopwatch was running when the tick landed.
// A cancelled wait returns the context error and does not tick.
func (rt *Runtime) Step(ctx context.Context) (string, bool, error) {
	if err := rt.clock.Sleep(ctx, rt.tickRate); err != nil {
		return "", false, errors.Wrap(err, "wait for tick")
	}

	rt.tickNum++
	line, ok := rt.sw.Tick()
	rt.log.Debug("tick", zap.Uint64("tick", rt.tickNum), zap.Bool("running", ok))
	return line, ok, nil
}

// TickNumber returns how many tick intervals have elapsed.
func (rt *Runtime) TickNumber() uint64 {
	return rt.tickNum
}

// TickRate returns the configured interval.
func (rt *Runtime) TickRate() time.Duration {
	return rt.tickRate
}

// Stopwatch returns the driven stopwatch.
func (rt *Runtime) Stopwatch() *stopwatch.Stopwatch {
	return rt.sw
}
