package models

import (
	"sync"
	"time"
)

// PlayerStatistics accumulates everything known about one player. A
// record is created on first sighting and never deleted. Presence
// counters move on every cycle the player is observed; playtime fields
// move only when a session commits.
type PlayerStatistics struct {
	TotalSessions        int            `json:"total_sessions"`
	TotalMinutes         int            `json:"total_minutes"`
	FirstSeen            time.Time      `json:"first_seen"`
	LastSeen             time.Time      `json:"last_seen"`
	Games                map[string]int `json:"games"`
	PeakHours            map[int]int    `json:"peak_hours"`
	PeakDays             map[int]int    `json:"peak_days"`
	PlaytimeByGame       map[string]int `json:"playtime_by_game"`
	AverageSessionLength float64        `json:"average_session_length"`
	LongestSession       int            `json:"longest_session"`
}

func newPlayerStatistics(now time.Time) *PlayerStatistics {
	return &PlayerStatistics{
		FirstSeen:      now,
		LastSeen:       now,
		Games:          make(map[string]int),
		PeakHours:      make(map[int]int),
		PeakDays:       make(map[int]int),
		PlaytimeByGame: make(map[string]int),
	}
}

// GamesPlayed counts the games this player has appeared in at least once.
func (ps *PlayerStatistics) GamesPlayed() int {
	n := 0
	for _, c := range ps.Games {
		if c > 0 {
			n++
		}
	}
	return n
}

// TotalAppearances sums the per-game presence counters.
func (ps *PlayerStatistics) TotalAppearances() int {
	n := 0
	for _, c := range ps.Games {
		n += c
	}
	return n
}

// Clone deep-copies the record so callers can read it outside the
// store's lock while cycles keep mutating the original.
func (ps *PlayerStatistics) Clone() *PlayerStatistics {
	out := *ps
	out.Games = copyIntMap(ps.Games)
	out.PeakHours = copyHistogram(ps.PeakHours)
	out.PeakDays = copyHistogram(ps.PeakDays)
	out.PlaytimeByGame = copyIntMap(ps.PlaytimeByGame)
	return &out
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyHistogram(m map[int]int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// PlayerStatStore is the per-player statistics map, keyed by player name.
type PlayerStatStore struct {
	mu   sync.RWMutex
	data map[string]*PlayerStatistics
}

func NewPlayerStatStore() *PlayerStatStore {
	return &PlayerStatStore{data: make(map[string]*PlayerStatistics)}
}

func (st *PlayerStatStore) get(player string, now time.Time) *PlayerStatistics {
	stats, ok := st.data[player]
	if !ok {
		stats = newPlayerStatistics(now)
		st.data[player] = stats
	}
	return stats
}

// Touch updates the presence counters for one observed cycle.
func (st *PlayerStatStore) Touch(player, game string, now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	stats := st.get(player, now)
	stats.LastSeen = now
	stats.Games[game]++
	stats.PeakHours[now.Hour()]++
	stats.PeakDays[int(now.Weekday())]++
}

// CommitSession folds one committed session into the playtime fields and
// keeps AverageSessionLength and LongestSession consistent.
func (st *PlayerStatStore) CommitSession(player, game string, minutes int, now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	stats := st.get(player, now)
	stats.TotalMinutes += minutes
	stats.PlaytimeByGame[game] += minutes
	stats.TotalSessions++
	stats.AverageSessionLength = float64(stats.TotalMinutes) / float64(stats.TotalSessions)
	if minutes > stats.LongestSession {
		stats.LongestSession = minutes
	}
}

// Get returns a deep copy. Handing out the live record would let
// queries iterate its maps while Touch writes them.
func (st *PlayerStatStore) Get(player string) (*PlayerStatistics, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	stats, ok := st.data[player]
	if !ok {
		return nil, false
	}
	return stats.Clone(), true
}

func (st *PlayerStatStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.data)
}

// GetData returns a deep copy of the map for queries and persistence.
func (st *PlayerStatStore) GetData() map[string]*PlayerStatistics {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make(map[string]*PlayerStatistics, len(st.data))
	for k, v := range st.data {
		out[k] = v.Clone()
	}
	return out
}

func (st *PlayerStatStore) PutData(data map[string]*PlayerStatistics) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if data == nil {
		data = make(map[string]*PlayerStatistics)
	}
	for _, v := range data {
		if v.Games == nil {
			v.Games = make(map[string]int)
		}
		if v.PeakHours == nil {
			v.PeakHours = make(map[int]int)
		}
		if v.PeakDays == nil {
			v.PeakDays = make(map[int]int)
		}
		if v.PlaytimeByGame == nil {
			v.PlaytimeByGame = make(map[string]int)
		}
	}
	st.data = data
}
