package services

import (
	"time"

	"mpsd/internal/models"
)

// MainMenuLobby is the permanent idle room every game server reports.
// It never represents a joinable match, so it is excluded from all
// notification logic.
const MainMenuLobby = "Main Menu"

// NotificationDetector decides, per cycle, whether a lobby deserves a
// "new" or "reopened" alert. It keeps its own state store, separate
// from lobby analytics, because alerting needs last-known player lists
// rather than running averages.
type NotificationDetector struct {
	states   *models.LobbyStateStore
	cooldown time.Duration
}

func NewNotificationDetector(cooldown time.Duration) *NotificationDetector {
	return &NotificationDetector{
		states:   models.NewLobbyStateStore(),
		cooldown: cooldown,
	}
}

// Observe diffs one game's lobby list against the previous cycle and
// returns the events that fired. Regardless of firing, the state of
// every observed lobby is overwritten afterwards, so a lobby that goes
// empty is remembered as empty and can later trigger "reopened".
func (d *NotificationDetector) Observe(game string, lobbies []models.Lobby, now time.Time) []*models.LobbyEvent {
	var events []*models.LobbyEvent

	for _, lobby := range lobbies {
		if !lobby.IsActive || lobby.PlayerCount == 0 || lobby.Name == MainMenuLobby {
			continue
		}

		previous, known := d.states.Get(game, lobby.Name)
		switch {
		case !known:
			events = append(events, newLobbyEvent(models.EventNewLobby, game, lobby))
		case len(previous.Players) == 0 && len(lobby.Players) > 0 && now.Sub(previous.Timestamp) > d.cooldown:
			events = append(events, newLobbyEvent(models.EventReopenedLobby, game, lobby))
		}
	}

	for _, lobby := range lobbies {
		if lobby.Name == MainMenuLobby {
			continue
		}
		players := make([]string, len(lobby.Players))
		copy(players, lobby.Players)
		d.states.Set(game, &models.LobbyState{
			Name:      lobby.Name,
			Players:   players,
			Timestamp: now,
		})
	}

	return events
}

func newLobbyEvent(kind, game string, lobby models.Lobby) *models.LobbyEvent {
	return &models.LobbyEvent{
		Kind:        kind,
		Game:        game,
		LobbyName:   lobby.Name,
		Players:     lobby.Players,
		PlayerCount: lobby.PlayerCount,
		MaxPlayers:  lobby.MaxPlayers,
		Config:      lobby.Config,
	}
}
