package testutil

import (
	"context"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"mpsd/internal/models"
	"mpsd/internal/providers"
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

// CountByLevel returns how many entries were recorded at the level.
func (m *MockLogger) CountByLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, e := range m.Logs {
		if e.Level == level {
			count++
		}
	}
	return count
}

// MockRepository keeps documents in memory as marshaled JSON.
type MockRepository struct {
	mu      sync.Mutex
	Docs    map[string][]byte
	SaveErr error
	LoadErr error
	Saves   int
	Closed  bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{Docs: make(map[string][]byte)}
}

func (m *MockRepository) Save(name string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.Docs[name] = data
	return nil
}

func (m *MockRepository) Load(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	data, ok := m.Docs[name]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (m *MockRepository) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// MockCompressor passes data through unchanged.
type MockCompressor struct {
	CompressErr   error
	DecompressErr error
	Closed        bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressErr != nil {
		return nil, m.CompressErr
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressErr != nil {
		return nil, m.DecompressErr
	}
	return val, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	Hits int
	Sets int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Data[key]
	if ok {
		m.Hits++
	}
	return data, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	m.Data[key] = value
}

// MockGameSource serves a fixed status or error.
type MockGameSource struct {
	GameID string
	Status *models.GameStatus
	Err    error
	Calls  int
}

func (m *MockGameSource) ID() string { return m.GameID }

func (m *MockGameSource) Fetch(_ context.Context) (*models.GameStatus, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Status, nil
}

// MockSink records delivered lobby events.
type MockSink struct {
	mu     sync.Mutex
	Events []*models.LobbyEvent
	Err    error
}

func (m *MockSink) Deliver(event *models.LobbyEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockSink) Delivered() []*models.LobbyEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.LobbyEvent, len(m.Events))
	copy(out, m.Events)
	return out
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// the calls tests care about.
type MockMetrics struct {
	mu            sync.Mutex
	CacheHits     int
	CacheMisses   int
	Cycles        int
	Persists      int
	Sessions      int
	Notifications map[string]int
	Requests      int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Notifications: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObserveCycleDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cycles++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}
func (m *MockMetrics) SetPlayersOnline(_ string, _ int) {}
func (m *MockMetrics) SetUniquePlayers(_ int)           {}
func (m *MockMetrics) AddSessionsCommitted(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sessions += count
}
func (m *MockMetrics) IncNotification(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications[kind]++
}
