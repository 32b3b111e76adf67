package input

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordTouchEvent(2 * time.Millisecond)
	m.RecordTouchEvent(4 * time.Millisecond)
	m.RecordGesture(GestureTap)
	m.RecordGesture(GestureSwipe)
	m.RecordGesture(GestureSwipe)
	m.RecordGesture(GestureLongPress)
	m.RecordGesture(GestureNone)
	m.RecordIgnored()
	m.RecordCancel()
	m.RecordStaleTimer()
	m.RecordDroppedEffect()

	snap := m.Snapshot()

	if snap.TouchEventsTotal != 2 {
		t.Errorf("TouchEventsTotal = %d, want 2", snap.TouchEventsTotal)
	}
	if snap.Taps != 1 || snap.Swipes != 2 || snap.LongPress != 1 || snap.NoGestures != 1 {
		t.Errorf("unexpected gesture counters: %+v", snap)
	}
	if snap.Gestures() != 5 {
		t.Errorf("Gestures() = %d, want 5", snap.Gestures())
	}
	if snap.IgnoredEvents != 1 || snap.Cancellations != 1 || snap.StaleTimerFires != 1 || snap.DroppedEffects != 1 {
		t.Errorf("unexpected defensive counters: %+v", snap)
	}
	if snap.PeakLatency != 4*time.Millisecond {
		t.Errorf("PeakLatency = %v, want 4ms", snap.PeakLatency)
	}
	if snap.AvgLatency != 3*time.Millisecond {
		t.Errorf("AvgLatency = %v, want 3ms", snap.AvgLatency)
	}
	if snap.MaxLatency != 4*time.Millisecond {
		t.Errorf("MaxLatency = %v, want 4ms", snap.MaxLatency)
	}
}

func TestMetricsDisabled(t *testing.T) {
	m := NewMetrics()
	m.SetEnabled(false)

	if m.IsEnabled() {
		t.Fatal("metrics should be disabled")
	}

	m.RecordTouchEvent(time.Millisecond)
	m.RecordGesture(GestureTap)
	m.RecordIgnored()

	snap := m.Snapshot()
	if snap.TouchEventsTotal != 0 || snap.Taps != 0 || snap.IgnoredEvents != 0 {
		t.Errorf("disabled metrics recorded values: %+v", snap)
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.RecordTouchEvent(time.Millisecond)
	m.RecordGesture(GestureLongPress)

	m.Reset()

	snap := m.Snapshot()
	if snap.TouchEventsTotal != 0 || snap.LongPress != 0 || snap.PeakLatency != 0 || snap.AvgLatency != 0 {
		t.Errorf("Reset left values behind: %+v", snap)
	}
}

func TestCalculateLatencyStatsEmpty(t *testing.T) {
	avg, maxLat, p99 := calculateLatencyStats(make([]time.Duration, 10))
	if avg != 0 || maxLat != 0 || p99 != 0 {
		t.Errorf("expected zero stats, got %v %v %v", avg, maxLat, p99)
	}
}
