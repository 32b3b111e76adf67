package input

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks gesture recognition counters and event latency.
type Metrics struct {
	// Event counters
	touchEventsTotal atomic.Uint64
	ignoredEvents    atomic.Uint64
	cancellations    atomic.Uint64
	staleTimerFires  atomic.Uint64
	droppedEffects   atomic.Uint64

	// Classification counters
	taps       atomic.Uint64
	longPress  atomic.Uint64
	swipes     atomic.Uint64
	noGestures atomic.Uint64

	// Latency tracking
	mu                sync.RWMutex
	latencies         []time.Duration
	maxLatencySamples int
	latencyIdx        int

	peakLatency atomic.Int64

	startTime time.Time

	enabled atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		latencies:         make([]time.Duration, 256),
		maxLatencySamples: 256,
		startTime:         time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordTouchEvent records a host touch event with its handling time.
func (m *Metrics) RecordTouchEvent(latency time.Duration) {
	if !m.enabled.Load() {
		return
	}

	m.touchEventsTotal.Add(1)

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	m.mu.Lock()
	m.latencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// RecordGesture records one classification.
func (m *Metrics) RecordGesture(g Gesture) {
	if !m.enabled.Load() {
		return
	}
	switch g {
	case GestureTap:
		m.taps.Add(1)
	case GestureLongPress:
		m.longPress.Add(1)
	case GestureSwipe:
		m.swipes.Add(1)
	default:
		m.noGestures.Add(1)
	}
}

// RecordIgnored records an event dropped by the tracker (stray move/end,
// second pointer).
func (m *Metrics) RecordIgnored() {
	if !m.enabled.Load() {
		return
	}
	m.ignoredEvents.Add(1)
}

// RecordCancel records a silent touch cancellation.
func (m *Metrics) RecordCancel() {
	if !m.enabled.Load() {
		return
	}
	m.cancellations.Add(1)
}

// RecordStaleTimer records a long-press timer that fired after its
// trajectory was gone or disqualified.
func (m *Metrics) RecordStaleTimer() {
	if !m.enabled.Load() {
		return
	}
	m.staleTimerFires.Add(1)
}

// RecordDroppedEffect records a side effect dropped because its queue was full.
func (m *Metrics) RecordDroppedEffect() {
	if !m.enabled.Load() {
		return
	}
	m.droppedEffects.Add(1)
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	TouchEventsTotal uint64
	IgnoredEvents    uint64
	Cancellations    uint64
	StaleTimerFires  uint64
	DroppedEffects   uint64

	Taps       uint64
	LongPress  uint64
	Swipes     uint64
	NoGestures uint64

	AvgLatency  time.Duration
	MaxLatency  time.Duration
	P99Latency  time.Duration
	PeakLatency time.Duration

	Uptime time.Duration
}

// Gestures returns the number of completed classifications.
func (s MetricsSnapshot) Gestures() uint64 {
	return s.Taps + s.LongPress + s.Swipes + s.NoGestures
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	latencies := make([]time.Duration, len(m.latencies))
	copy(latencies, m.latencies)
	start := m.startTime
	m.mu.RUnlock()

	snap := MetricsSnapshot{
		TouchEventsTotal: m.touchEventsTotal.Load(),
		IgnoredEvents:    m.ignoredEvents.Load(),
		Cancellations:    m.cancellations.Load(),
		StaleTimerFires:  m.staleTimerFires.Load(),
		DroppedEffects:   m.droppedEffects.Load(),
		Taps:             m.taps.Load(),
		LongPress:        m.longPress.Load(),
		Swipes:           m.swipes.Load(),
		NoGestures:       m.noGestures.Load(),
		PeakLatency:      time.Duration(m.peakLatency.Load()),
		Uptime:           time.Since(start),
	}

	snap.AvgLatency, snap.MaxLatency, snap.P99Latency = calculateLatencyStats(latencies)

	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of latencies.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}

	if len(valid) == 0 {
		return 0, 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
		if l > maxLat {
			maxLat = l
		}
	}
	avg = sum / time.Duration(len(valid))

	sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })

	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	p99 = valid[idx]

	return avg, maxLat, p99
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.touchEventsTotal.Store(0)
	m.ignoredEvents.Store(0)
	m.cancellations.Store(0)
	m.staleTimerFires.Store(0)
	m.droppedEffects.Store(0)
	m.taps.Store(0)
	m.longPress.Store(0)
	m.swipes.Store(0)
	m.noGestures.Store(0)
	m.peakLatency.Store(0)

	m.mu.Lock()
	m.latencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}
