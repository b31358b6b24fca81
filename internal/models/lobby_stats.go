package models

import (
	"sync"
	"time"
)

// maxLobbyGapMinutes caps the sighting gap that still counts as
// continuous occupancy. A larger gap is a restart of the same named
// lobby and stays out of the duration average.
const maxLobbyGapMinutes = 60

// LobbyAnalytics holds running averages for one named lobby of one game.
type LobbyAnalytics struct {
	LobbyName       string    `json:"lobby_name"`
	Game            string    `json:"game"`
	Appearances     int       `json:"appearances"`
	AverageDuration float64   `json:"average_duration"`
	AveragePlayers  float64   `json:"average_players"`
	FirstSeen       time.Time `json:"first_seen"`
	LastSeen        time.Time `json:"last_seen"`
}

// LobbyStatStore tracks lobby analytics keyed by "game:lobbyName".
type LobbyStatStore struct {
	mu   sync.RWMutex
	data map[string]*LobbyAnalytics
}

func NewLobbyStatStore() *LobbyStatStore {
	return &LobbyStatStore{data: make(map[string]*LobbyAnalytics)}
}

func LobbyKey(game, lobbyName string) string {
	return game + ":" + lobbyName
}

// Observe folds one active sighting into the lobby's running averages.
func (st *LobbyStatStore) Observe(game, lobbyName string, playerCount int, now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()

	key := LobbyKey(game, lobbyName)
	analytics, ok := st.data[key]
	if !ok {
		analytics = &LobbyAnalytics{
			LobbyName: lobbyName,
			Game:      game,
			FirstSeen: now,
			LastSeen:  now,
		}
		st.data[key] = analytics
	}

	analytics.Appearances++
	gap := int(now.Sub(analytics.LastSeen).Minutes())
	if gap > 0 && gap < maxLobbyGapMinutes {
		analytics.AverageDuration += (float64(gap) - analytics.AverageDuration) / float64(analytics.Appearances)
	}
	analytics.LastSeen = now
	analytics.AveragePlayers += (float64(playerCount) - analytics.AveragePlayers) / float64(analytics.Appearances)
}

// Get returns a copy so readers never share a record Observe is
// still updating.
func (st *LobbyStatStore) Get(game, lobbyName string) (*LobbyAnalytics, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	a, ok := st.data[LobbyKey(game, lobbyName)]
	if !ok {
		return nil, false
	}
	out := *a
	return &out, true
}

func (st *LobbyStatStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.data)
}

// GetData returns a copy of every record for queries and persistence.
func (st *LobbyStatStore) GetData() map[string]*LobbyAnalytics {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make(map[string]*LobbyAnalytics, len(st.data))
	for k, v := range st.data {
		record := *v
		out[k] = &record
	}
	return out
}

func (st *LobbyStatStore) PutData(data map[string]*LobbyAnalytics) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if data == nil {
		data = make(map[string]*LobbyAnalytics)
	}
	st.data = data
}
