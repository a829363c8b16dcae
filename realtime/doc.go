// Package realtime drives a stopwatch on a fixed tick interval.
//
// The runtime is single-threaded and cooperative: each Step blocks for one
// tick interval on a Clock and then ticks the stopwatch once. The caller
// polls for input between steps, so input is observed at tick boundaries
// and never during the wait.
//
// # Example Usage
//
//	sw := stopwatch.New()
//	rt := realtime.NewRuntime(sw, realtime.Config{TickRate: time.Second})
//	sw.Start()
//	for sw.Running() {
//		line, ok, err := rt.Step(ctx)
//		...
//	}
//
// # Clocks
//
// SystemClock waits on a real timer and honours context cancellation.
// Tests substitute a clock that returns immediately and records the
// requested durations (see testutil.ManualClock).
package realtime
