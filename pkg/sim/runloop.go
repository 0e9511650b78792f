package sim

import "time"

// Pacer paces a run loop at a steps-per-second rate, adapted from the
// teacher's FixedStep ticks-per-second helper. The simulation engine
// itself never sleeps; only a run loop built on top of Step uses this to
// honor the minimum inter-step delay of max(16ms, 1000/speed) described by
// the real-time pacing contract.
type Pacer struct {
	interval time.Duration
	last     time.Time
}

// NewPacer builds a Pacer for the given steps-per-second rate. Rates below
// 1 are clamped to 1; the resulting interval is floored at 16ms.
func NewPacer(stepsPerSecond int) *Pacer {
	if stepsPerSecond < 1 {
		stepsPerSecond = 1
	}
	interval := time.Second / time.Duration(stepsPerSecond)
	if interval < 16*time.Millisecond {
		interval = 16 * time.Millisecond
	}
	return &Pacer{interval: interval}
}

// SetRate changes the pacing rate; safe to call between steps.
func (p *Pacer) SetRate(stepsPerSecond int) {
	if stepsPerSecond < 1 {
		stepsPerSecond = 1
	}
	interval := time.Second / time.Duration(stepsPerSecond)
	if interval < 16*time.Millisecond {
		interval = 16 * time.Millisecond
	}
	p.interval = interval
}

// Wait blocks until the next step is due, honoring the configured interval.
func (p *Pacer) Wait() {
	now := time.Now()
	if p.last.IsZero() {
		p.last = now
		return
	}
	elapsed := now.Sub(p.last)
	if elapsed < p.interval {
		time.Sleep(p.interval - elapsed)
	}
	p.last = time.Now()
}

// Benchmark steps state as fast as possible for duration and reports the
// achieved generations-per-second. It ignores Pacer entirely — this is the
// engine's flat-out throughput, not its paced run-loop rate — mirroring
// the teacher's FixedStep accounting but run in reverse: counting steps
// completed in a fixed wall-clock window instead of sleeping between them.
func Benchmark(state *State, duration time.Duration) float64 {
	start := time.Now()
	steps := 0
	for time.Since(start) < duration {
		state.Step()
		steps++
		if state.Terminated() {
			break
		}
	}
	elapsed := time.Since(start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(steps) / elapsed
}
