package models

import (
	"sync"
	"time"
)

const UnnamedLobby = "Unnamed Lobby"

// LobbyConfig carries the optional match settings a lobby advertises.
type LobbyConfig struct {
	GameMode  string `json:"game_mode,omitempty"`
	Track     string `json:"track,omitempty"`
	LapCount  string `json:"lap_count,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// Lobby is one named sub-room of a game server as reported by an adapter.
type Lobby struct {
	Name        string       `json:"name"`
	PlayerCount int          `json:"player_count"`
	MaxPlayers  int          `json:"max_players"`
	Players     []string     `json:"players"`
	IsActive    bool         `json:"is_active"`
	Config      *LobbyConfig `json:"config,omitempty"`
}

// GameStatus is the normalized per-game output of an external adapter.
type GameStatus struct {
	Players []string `json:"players"`
	Lobbies []Lobby  `json:"lobbies"`
}

// Normalize replaces missing fields with empty values so no tracker ever
// sees a nil list or an unnamed lobby. Returns a usable status even for
// a nil receiver.
func (gs *GameStatus) Normalize() *GameStatus {
	if gs == nil {
		return &GameStatus{Players: []string{}, Lobbies: []Lobby{}}
	}
	out := &GameStatus{
		Players: gs.Players,
		Lobbies: gs.Lobbies,
	}
	if out.Players == nil {
		out.Players = []string{}
	}
	if out.Lobbies == nil {
		out.Lobbies = []Lobby{}
	}
	for i := range out.Lobbies {
		if out.Lobbies[i].Name == "" {
			out.Lobbies[i].Name = UnnamedLobby
		}
		if out.Lobbies[i].Players == nil {
			out.Lobbies[i].Players = []string{}
		}
	}
	return out
}

// GamePresence is the snapshot view of one game: who was online and how
// many lobbies the server reported.
type GamePresence struct {
	Players    []string `json:"players"`
	LobbyCount int      `json:"lobbies"`
}

// Snapshot is the canonical record of one poll cycle. Immutable once
// built.
type Snapshot struct {
	Timestamp    time.Time               `json:"timestamp"`
	PerGame      map[string]GamePresence `json:"per_game"`
	TotalPlayers int                     `json:"total_players"`
}

// NewSnapshot builds a snapshot from normalized per-game statuses.
// TotalPlayers counts the set union of all player lists, so a player
// seen in several games is counted once.
func NewSnapshot(now time.Time, statuses map[string]*GameStatus) *Snapshot {
	perGame := make(map[string]GamePresence, len(statuses))
	unique := make(map[string]struct{})

	for game, status := range statuses {
		status = status.Normalize()
		perGame[game] = GamePresence{
			Players:    status.Players,
			LobbyCount: len(status.Lobbies),
		}
		for _, p := range status.Players {
			unique[p] = struct{}{}
		}
	}

	return &Snapshot{
		Timestamp:    now,
		PerGame:      perGame,
		TotalPlayers: len(unique),
	}
}

// UnionPlayers returns the deduplicated set of players online anywhere
// in this snapshot.
func (s *Snapshot) UnionPlayers() map[string]struct{} {
	union := make(map[string]struct{})
	for _, presence := range s.PerGame {
		for _, p := range presence.Players {
			union[p] = struct{}{}
		}
	}
	return union
}

// SnapshotStore keeps a bounded, oldest-first-evicted snapshot history.
type SnapshotStore struct {
	mu   sync.RWMutex
	data []*Snapshot
	cap  int
}

func NewSnapshotStore(capacity int) *SnapshotStore {
	if capacity <= 0 {
		capacity = 10000
	}
	return &SnapshotStore{cap: capacity}
}

func (st *SnapshotStore) Append(s *Snapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.data = append(st.data, s)
	if len(st.data) > st.cap {
		st.data = st.data[len(st.data)-st.cap:]
	}
}

func (st *SnapshotStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.data)
}

// All returns a copy of the history slice. Snapshots themselves are
// immutable and shared.
func (st *SnapshotStore) All() []*Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Snapshot, len(st.data))
	copy(out, st.data)
	return out
}

// Since returns all snapshots taken at or after cutoff.
func (st *SnapshotStore) Since(cutoff time.Time) []*Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Snapshot, 0)
	for _, s := range st.data {
		if !s.Timestamp.Before(cutoff) {
			out = append(out, s)
		}
	}
	return out
}

// Put replaces the whole history, trimming to capacity. Used on restore.
func (st *SnapshotStore) Put(data []*Snapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if len(data) > st.cap {
		data = data[len(data)-st.cap:]
	}
	st.data = data
}
