package services

import (
	"time"

	"mpsd/internal/models"
)

// trackLobbies folds every populated lobby of one game into the
// running lobby analytics. Inactive or empty lobbies carry no
// occupancy signal and are skipped.
func (cs *CollectorService) trackLobbies(game string, lobbies []models.Lobby, now time.Time) {
	for _, lobby := range lobbies {
		if !lobby.IsActive || lobby.PlayerCount == 0 {
			continue
		}
		cs.lobbyStats.Observe(game, lobby.Name, lobby.PlayerCount, now)
	}
}
