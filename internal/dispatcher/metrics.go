package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects per-binding dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	actions map[string]*ActionMetrics

	totalDispatches uint64
	totalDropped    uint64
}

// ActionMetrics holds metrics for one binding.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	DropCount     uint64
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		actions: make(map[string]*ActionMetrics),
	}
}

func (m *Metrics) action(name string) *ActionMetrics {
	am := m.actions[name]
	if am == nil {
		am = &ActionMetrics{Name: name}
		m.actions[name] = am
	}
	return am
}

// RecordDispatch records a dispatched action.
func (m *Metrics) RecordDispatch(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	am := m.action(name)
	am.DispatchCount++
	am.LastDispatch = time.Now()
}

// RecordDrop records an action the runner refused.
func (m *Metrics) RecordDrop(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDropped++
	m.action(name).DropCount++
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalDropped returns the total number of dropped actions.
func (m *Metrics) TotalDropped() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDropped
}

// ActionStats returns a copy of the metrics for one binding, or nil.
func (m *Metrics) ActionStats(name string) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am := m.actions[name]
	if am == nil {
		return nil
	}
	c := *am
	return &c
}

// TopActions returns the n most dispatched bindings.
func (m *Metrics) TopActions(n int) []ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ActionMetrics, 0, len(m.actions))
	for _, am := range m.actions {
		out = append(out, *am)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DispatchCount != out[j].DispatchCount {
			return out[i].DispatchCount > out[j].DispatchCount
		}
		return out[i].Name < out[j].Name
	})

	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = make(map[string]*ActionMetrics)
	m.totalDispatches = 0
	m.totalDropped = 0
}
