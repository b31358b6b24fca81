package models

import (
	"sync"
	"time"
)

// LobbyState is the detector's memory of one lobby: who was in it the
// last time it was observed and when.
type LobbyState struct {
	Name      string    `json:"name"`
	Players   []string  `json:"players"`
	Timestamp time.Time `json:"timestamp"`
}

// LobbyEvent is a fired "new" or "reopened" lobby alert, handed to the
// presentation layer as-is.
type LobbyEvent struct {
	Kind        string       `json:"kind"` // "new" or "reopened"
	Game        string       `json:"game"`
	LobbyName   string       `json:"lobby_name"`
	Players     []string     `json:"players"`
	PlayerCount int          `json:"player_count"`
	MaxPlayers  int          `json:"max_players"`
	Config      *LobbyConfig `json:"config,omitempty"`
}

const (
	EventNewLobby      = "new"
	EventReopenedLobby = "reopened"
)

// LobbyStateStore holds the detector's per-lobby state keyed by
// "game:lobbyName". Tracked separately from lobby analytics.
type LobbyStateStore struct {
	mu   sync.RWMutex
	data map[string]*LobbyState
}

func NewLobbyStateStore() *LobbyStateStore {
	return &LobbyStateStore{data: make(map[string]*LobbyState)}
}

func (st *LobbyStateStore) Get(game, lobbyName string) (*LobbyState, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.data[LobbyKey(game, lobbyName)]
	return s, ok
}

func (st *LobbyStateStore) Set(game string, state *LobbyState) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.data[LobbyKey(game, state.Name)] = state
}

func (st *LobbyStateStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.data)
}

func (st *LobbyStateStore) GetData() map[string]*LobbyState {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make(map[string]*LobbyState, len(st.data))
	for k, v := range st.data {
		out[k] = v
	}
	return out
}

func (st *LobbyStateStore) PutData(data map[string]*LobbyState) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if data == nil {
		data = make(map[string]*LobbyState)
	}
	for _, v := range data {
		if v.Players == nil {
			v.Players = []string{}
		}
	}
	st.data = data
}
