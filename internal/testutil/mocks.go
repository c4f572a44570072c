package testutil

import (
	"context"
	"os"
	"powerevents/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface with plain counters.
type MockMetrics struct {
	mu           sync.Mutex
	Requests     int
	Rotations    int
	AppendErrors int
	Ticks        int
	TickErrors   int
	Persists     int
	LastAlive    int64
	LastBoot     int64
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncRotations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rotations++
}
func (m *MockMetrics) IncAppendErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendErrors++
}
func (m *MockMetrics) IncTicks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ticks++
}
func (m *MockMetrics) IncTickErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TickErrors++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}
func (m *MockMetrics) SetLastAlive(ms int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastAlive = ms
}
func (m *MockMetrics) SetLastBoot(ms int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastBoot = ms
}

// MockMedium implements persistence.MediumInterface in memory with injectable failures.
type MockMedium struct {
	mu       sync.Mutex
	Data     []byte
	Present  bool
	LoadErr  error
	StoreErr error
	Stores   int
}

func (m *MockMedium) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if !m.Present {
		return nil, &os.PathError{Op: "open", Path: m.Path(), Err: os.ErrNotExist}
	}
	out := make([]byte, len(m.Data))
	copy(out, m.Data)
	return out, nil
}

func (m *MockMedium) Store(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stores++
	if m.StoreErr != nil {
		return m.StoreErr
	}
	m.Data = make([]byte, len(data))
	copy(m.Data, data)
	m.Present = true
	return nil
}

func (m *MockMedium) Path() string {
	return "mock://StartandLast.rec"
}

// MockClock implements providers.ClockProviderInterface. Each Now call
// advances the clock by Step.
type MockClock struct {
	mu      sync.Mutex
	Current time.Time
	Step    time.Duration
	Boot    time.Time
	BootErr error
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.Current
	c.Current = c.Current.Add(c.Step)
	return now
}

func (c *MockClock) BootInstant(_ context.Context) (time.Time, error) {
	if c.BootErr != nil {
		return c.Current, c.BootErr
	}
	return c.Boot, nil
}
