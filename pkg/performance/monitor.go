package performance

import (
	"fmt"
	"time"
)

// Monitor keeps a rolling window of render-pass durations so the player can
// log pacing health periodically without unbounded accumulation.
type Monitor struct {
	samples []time.Duration
	next    int
	filled  bool
}

// NewMonitor tracks the most recent windowSize passes.
func NewMonitor(windowSize int) *Monitor {
	if windowSize < 1 {
		windowSize = 1
	}
	return &Monitor{samples: make([]time.Duration, windowSize)}
}

// Record adds one pass duration to the window.
func (m *Monitor) Record(d time.Duration) {
	m.samples[m.next] = d
	m.next++
	if m.next == len(m.samples) {
		m.next = 0
		m.filled = true
	}
}

// Count reports how many samples the window currently holds.
func (m *Monitor) Count() int {
	if m.filled {
		return len(m.samples)
	}
	return m.next
}

// Mean returns the average pass duration over the window.
func (m *Monitor) Mean() time.Duration {
	n := m.Count()
	if n == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range m.samples[:n] {
		sum += d
	}
	return sum / time.Duration(n)
}

// Max returns the worst pass duration in the window.
func (m *Monitor) Max() time.Duration {
	var max time.Duration
	for _, d := range m.samples[:m.Count()] {
		if d > max {
			max = d
		}
	}
	return max
}

// Report summarizes the window for logging.
func (m *Monitor) Report() string {
	n := m.Count()
	if n == 0 {
		return "no samples"
	}
	return fmt.Sprintf("avg=%.2fms max=%.2fms over %d passes",
		float64(m.Mean().Microseconds())/1000,
		float64(m.Max().Microseconds())/1000,
		n)
}
