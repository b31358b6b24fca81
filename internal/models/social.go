package models

import "sync"

// SocialStats counts how often a player was seen online together with
// each co-player. Co-presence anywhere within the same game counts; the
// pair does not have to share a lobby.
type SocialStats struct {
	CoPlayers           map[string]int `json:"co_players"`
	MostFrequentPartner string         `json:"most_frequent_partner"`
}

// Clone deep-copies the record, including the co-player counters.
func (ss *SocialStats) Clone() *SocialStats {
	out := &SocialStats{
		CoPlayers:           make(map[string]int, len(ss.CoPlayers)),
		MostFrequentPartner: ss.MostFrequentPartner,
	}
	for k, v := range ss.CoPlayers {
		out.CoPlayers[k] = v
	}
	return out
}

// SocialStore is the co-occurrence map keyed by player name.
type SocialStore struct {
	mu   sync.RWMutex
	data map[string]*SocialStats
}

func NewSocialStore() *SocialStore {
	return &SocialStore{data: make(map[string]*SocialStats)}
}

// ObserveGame increments mutual counters for every ordered pair of
// distinct players in one game's player list and refreshes each
// player's most frequent partner.
func (st *SocialStore) ObserveGame(players []string) {
	if len(players) < 2 {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	for i, player := range players {
		social, ok := st.data[player]
		if !ok {
			social = &SocialStats{CoPlayers: make(map[string]int)}
			st.data[player] = social
		}

		for j, coPlayer := range players {
			if i == j {
				continue
			}
			social.CoPlayers[coPlayer]++
			// Strictly greater only: a tie never displaces the
			// current partner.
			if social.CoPlayers[coPlayer] > social.CoPlayers[social.MostFrequentPartner] {
				social.MostFrequentPartner = coPlayer
			}
		}
	}
}

// Get returns a deep copy so query reads never touch the live
// counters mid-cycle.
func (st *SocialStore) Get(player string) (*SocialStats, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.data[player]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

func (st *SocialStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.data)
}

// GetData returns a deep copy of the map for queries and persistence.
func (st *SocialStore) GetData() map[string]*SocialStats {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make(map[string]*SocialStats, len(st.data))
	for k, v := range st.data {
		out[k] = v.Clone()
	}
	return out
}

func (st *SocialStore) PutData(data map[string]*SocialStats) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if data == nil {
		data = make(map[string]*SocialStats)
	}
	for _, v := range data {
		if v.CoPlayers == nil {
			v.CoPlayers = make(map[string]int)
		}
	}
	st.data = data
}
