package app

import (
	"sync/atomic"
	"time"
)

// LoopMetrics tracks event loop throughput.
type LoopMetrics struct {
	events    atomic.Uint64
	totalNs   atomic.Int64
	maxNs     atomic.Int64
	dropped   atomic.Uint64
	panics    atomic.Uint64
	startTime time.Time
}

// NewLoopMetrics creates a new metrics tracker.
func NewLoopMetrics() *LoopMetrics {
	return &LoopMetrics{startTime: time.Now()}
}

// RecordEvent records the time one posted closure took.
func (m *LoopMetrics) RecordEvent(d time.Duration) {
	ns := d.Nanoseconds()
	m.events.Add(1)
	m.totalNs.Add(ns)

	for {
		old := m.maxNs.Load()
		if ns <= old {
			break
		}
		if m.maxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordDropped records a closure posted after the loop stopped.
func (m *LoopMetrics) RecordDropped() {
	m.dropped.Add(1)
}

// RecordPanic records a recovered panic.
func (m *LoopMetrics) RecordPanic() {
	m.panics.Add(1)
}

// LoopSnapshot is a point-in-time copy of LoopMetrics.
type LoopSnapshot struct {
	Events  uint64
	Dropped uint64
	Panics  uint64
	AvgTime time.Duration
	MaxTime time.Duration
	Uptime  time.Duration
}

// Snapshot returns the current values.
func (m *LoopMetrics) Snapshot() LoopSnapshot {
	s := LoopSnapshot{
		Events:  m.events.Load(),
		Dropped: m.dropped.Load(),
		Panics:  m.panics.Load(),
		MaxTime: time.Duration(m.maxNs.Load()),
		Uptime:  time.Since(m.startTime),
	}
	if s.Events > 0 {
		s.AvgTime = time.Duration(m.totalNs.Load() / int64(s.Events))
	}
	return s
}
