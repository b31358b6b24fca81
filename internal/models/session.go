package models

import (
	"sync"
	"time"
)

// SessionRecord is one committed play session. Immutable once created.
type SessionRecord struct {
	Player          string    `json:"player"`
	Game            string    `json:"game"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
}

// ActiveSession marks a player currently observed online. Held only in
// memory by the collector; a crash simply loses the open interval.
type ActiveSession struct {
	Game  string
	Start time.Time
}

// SessionStore is a FIFO ring of committed session records.
type SessionStore struct {
	mu   sync.RWMutex
	data []SessionRecord
	cap  int
}

func NewSessionStore(capacity int) *SessionStore {
	if capacity <= 0 {
		capacity = 10000
	}
	return &SessionStore{cap: capacity}
}

func (st *SessionStore) Append(rec SessionRecord) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.data = append(st.data, rec)
	if len(st.data) > st.cap {
		st.data = st.data[len(st.data)-st.cap:]
	}
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.data)
}

func (st *SessionStore) All() []SessionRecord {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]SessionRecord, len(st.data))
	copy(out, st.data)
	return out
}

// ByPlayer returns the player's committed sessions in append order.
func (st *SessionStore) ByPlayer(player string) []SessionRecord {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]SessionRecord, 0)
	for _, rec := range st.data {
		if rec.Player == player {
			out = append(out, rec)
		}
	}
	return out
}

// Since returns sessions whose start is at or after cutoff.
func (st *SessionStore) Since(cutoff time.Time) []SessionRecord {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]SessionRecord, 0)
	for _, rec := range st.data {
		if !rec.Start.Before(cutoff) {
			out = append(out, rec)
		}
	}
	return out
}

func (st *SessionStore) Put(data []SessionRecord) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if len(data) > st.cap {
		data = data[len(data)-st.cap:]
	}
	st.data = data
}

// ActivityRecord logs one session opening, kept as a bounded audit trail.
type ActivityRecord struct {
	Player    string    `json:"player"`
	Game      string    `json:"game"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityLog is a FIFO ring of activity records.
type ActivityLog struct {
	mu   sync.RWMutex
	data []ActivityRecord
	cap  int
}

func NewActivityLog(capacity int) *ActivityLog {
	if capacity <= 0 {
		capacity = 10000
	}
	return &ActivityLog{cap: capacity}
}

func (l *ActivityLog) Append(rec ActivityRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = append(l.data, rec)
	if len(l.data) > l.cap {
		l.data = l.data[len(l.data)-l.cap:]
	}
}

func (l *ActivityLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.data)
}

func (l *ActivityLog) All() []ActivityRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ActivityRecord, len(l.data))
	copy(out, l.data)
	return out
}

func (l *ActivityLog) Put(data []ActivityRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(data) > l.cap {
		data = data[len(data)-l.cap:]
	}
	l.data = data
}
