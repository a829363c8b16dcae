// Package stopwatch implements a second-resolution stopwatch engine.
//
// The running flag is a two-state chart (stopped, running) driven by a small
// event-driven state machine. Start and Stop are external transitions
// between the two states; Reset and Tick are internal transitions that only
// touch the elapsed counter. Observers subscribe to the Started, Stopped and
// Reset topics and are called synchronously in subscription order.
//
// Example:
//
//	sw := stopwatch.New()
//	sw.Subscribe(stopwatch.Started, func(msg string) { fmt.Println(msg) })
//	sw.Start()
//	line, ok := sw.Tick() // "00:00:01", true
package stopwatch

import (
	"context"

	"go.uber.org/zap"
)

// Chart states.
const (
	StateStopped StateID = 1
	StateRunning StateID = 2
)

// Chart events.
const (
	EventStart EventID = 10
	EventStop  EventID = 11
	EventReset EventID = 12
	EventTick  EventID = 13
)

var eventNames = map[EventID]string{
	EventStart: "START",
	EventStop:  "STOP",
	EventReset: "RESET",
	EventTick:  "TICK",
}

// EventName returns the display name of a chart event.
func EventName(id EventID) string {
	if name, ok := eventNames[id]; ok {
		return name
	}
	return "UNKNOWN"
}

// Option configures a Stopwatch.
type Option func(*Stopwatch)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *zap.Logger) Option {
	return func(sw *Stopwatch) {
		if l != nil {
			sw.log = l
		}
	}
}

// Stopwatch is the engine. It is not safe for concurrent use; the shell
// drives it from a single goroutine.
type Stopwatch struct {
	elapsed int
	chart   *Machine
	notify  notifier
	log     *zap.Logger
}

// New returns a stopped stopwatch at 00:00:00.
func New(opts ...Option) *Stopwatch {
	sw := &Stopwatch{log: zap.NewNop()}
	for _, opt := range opts {
		opt(sw)
	}

	sw.chart = sw.buildChart()
	if err := sw.chart.Start(context.Background()); err != nil {
		// Entry of the stopped state has no action.
		panic(err)
	}
	return sw
}

func (sw *Stopwatch) buildChart() *Machine {
	stopped := &State{ID: StateStopped, Name: "stopped", Initial: true}
	running := &State{ID: StateRunning, Name: "running"}

	running.OnEntry(func(ctx context.Context, evt *Event, from, to StateID) error {
		sw.notify.emit(Started)
		return nil
	})

	reset := func(ctx context.Context, evt *Event, from, to StateID) error {
		sw.elapsed = 0
		sw.notify.emit(Reset)
		return nil
	}
	tick := func(ctx context.Context, evt *Event, from, to StateID) error {
		sw.elapsed++
		return nil
	}

	stopped.On(EventStart, "start", running, nil, nil)
	stopped.On(EventReset, "reset", nil, nil, reset)

	// Stop is silent: no action and the stopped state has no entry action.
	running.On(EventStop, "stop", stopped, nil, nil)
	running.On(EventReset, "reset", nil, nil, reset)
	running.On(EventTick, "tick", nil, nil, tick)

	m, err := NewMachine(stopped, running)
	if err != nil {
		panic(err)
	}
	return m
}

func (sw *Stopwatch) send(id EventID) {
	from := sw.chart.Current().Name
	if err := sw.chart.Send(context.Background(), Event{ID: id}); err != nil {
		sw.log.Error("transition failed", zap.String("event", EventName(id)), zap.Error(err))
		return
	}
	if ce := sw.log.Check(zap.DebugLevel, "event"); ce != nil {
		ce.Write(
			zap.String("event", EventName(id)),
			zap.String("from", from),
			zap.String("to", sw.chart.Current().Name),
			zap.Int("elapsed", sw.elapsed),
		)
	}
}

// Subscribe registers h on topic. Handlers run synchronously in the order
// they were registered.
func (sw *Stopwatch) Subscribe(topic Topic, h Handler) {
	sw.notify.subscribe(topic, h)
}

// Start begins timing. Starting a running stopwatch does nothing.
func (sw *Stopwatch) Start() {
	sw.send(EventStart)
}

// Stop halts timing without notifying. Stopping a stopped stopwatch does
// nothing.
func (sw *Stopwatch) Stop() {
	sw.send(EventStop)
}

// Reset zeroes the elapsed time and leaves the running flag alone.
func (sw *Stopwatch) Reset() {
	sw.send(EventReset)
}

// Tick advances a running stopwatch by one second and returns the new
// display value. A stopped stopwatch returns "", false.
func (sw *Stopwatch) Tick() (string, bool) {
	if !sw.Running() {
		return "", false
	}
	sw.send(EventTick)
	return FormatTime(sw.elapsed), true
}

// Elapsed returns the accumulated seconds.
func (sw *Stopwatch) Elapsed() int {
	return sw.elapsed
}

// Running reports whether the stopwatch is timing.
func (sw *Stopwatch) Running() bool {
	return sw.chart.IsInState(StateRunning)
}

// Chart exposes the state chart for export.
func (sw *Stopwatch) Chart() *Machine {
	return sw.chart
}
