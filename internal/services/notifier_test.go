package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpsd/internal/models"
)

func activeLobby(name string, players ...string) models.Lobby {
	return models.Lobby{
		Name:        name,
		PlayerCount: len(players),
		MaxPlayers:  12,
		Players:     players,
		IsActive:    true,
	}
}

func TestDetector_NewLobbyFiresOnce(t *testing.T) {
	d := NewNotificationDetector(2 * time.Minute)
	now := time.Now()

	events := d.Observe("game1", []models.Lobby{activeLobby("Bob's Race", "Bob")}, now)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventNewLobby, events[0].Kind)
	assert.Equal(t, "Bob's Race", events[0].LobbyName)
	assert.Equal(t, 1, events[0].PlayerCount)

	events = d.Observe("game1", []models.Lobby{activeLobby("Bob's Race", "Bob")}, now.Add(time.Minute))
	assert.Empty(t, events)
}

func TestDetector_MainMenuNeverFires(t *testing.T) {
	d := NewNotificationDetector(2 * time.Minute)

	events := d.Observe("game1", []models.Lobby{activeLobby(MainMenuLobby, "Idler")}, time.Now())
	assert.Empty(t, events)
	assert.Equal(t, 0, d.states.Len())
}

func TestDetector_InactiveOrEmptySkipped(t *testing.T) {
	d := NewNotificationDetector(2 * time.Minute)
	lobbies := []models.Lobby{
		{Name: "Closed", PlayerCount: 3, Players: []string{"a", "b", "c"}, IsActive: false},
		{Name: "Empty", PlayerCount: 0, Players: []string{}, IsActive: true},
	}

	events := d.Observe("game1", lobbies, time.Now())
	assert.Empty(t, events)
	// State is still recorded for both
	assert.Equal(t, 2, d.states.Len())
}

func TestDetector_ReopenedAfterCooldown(t *testing.T) {
	d := NewNotificationDetector(2 * time.Minute)
	base := time.Now()

	// Lobby appears, then goes empty
	d.Observe("game1", []models.Lobby{activeLobby("Lobby", "Alice")}, base)
	d.Observe("game1", []models.Lobby{activeLobby("Lobby")}, base.Add(time.Minute))

	// 130s after the empty observation: past the cooldown
	events := d.Observe("game1", []models.Lobby{activeLobby("Lobby", "Bob")}, base.Add(time.Minute).Add(130*time.Second))
	require.Len(t, events, 1)
	assert.Equal(t, models.EventReopenedLobby, events[0].Kind)
}

func TestDetector_ReopenedWithinCooldownSuppressed(t *testing.T) {
	d := NewNotificationDetector(2 * time.Minute)
	base := time.Now()

	d.Observe("game1", []models.Lobby{activeLobby("Lobby", "Alice")}, base)
	d.Observe("game1", []models.Lobby{activeLobby("Lobby")}, base.Add(time.Minute))

	// Only 60s since it went empty: churn, not a reopening
	events := d.Observe("game1", []models.Lobby{activeLobby("Lobby", "Bob")}, base.Add(time.Minute).Add(60*time.Second))
	assert.Empty(t, events)
}

func TestDetector_SameNameDifferentGamesIndependent(t *testing.T) {
	d := NewNotificationDetector(2 * time.Minute)
	now := time.Now()

	d.Observe("game1", []models.Lobby{activeLobby("Lobby", "Alice")}, now)
	events := d.Observe("game2", []models.Lobby{activeLobby("Lobby", "Bob")}, now)

	require.Len(t, events, 1)
	assert.Equal(t, models.EventNewLobby, events[0].Kind)
	assert.Equal(t, "game2", events[0].Game)
}

func TestDetector_EventCarriesLobbyDetails(t *testing.T) {
	d := NewNotificationDetector(2 * time.Minute)
	lobby := activeLobby("Bob's Race", "Bob", "Alice")
	lobby.Config = &models.LobbyConfig{GameMode: "race", Track: "Raingod Mesa"}

	events := d.Observe("game1", []models.Lobby{lobby}, time.Now())
	require.Len(t, events, 1)
	assert.Equal(t, []string{"Bob", "Alice"}, events[0].Players)
	assert.Equal(t, 12, events[0].MaxPlayers)
	require.NotNil(t, events[0].Config)
	assert.Equal(t, "Raingod Mesa", events[0].Config.Track)
}

func TestDetector_StateOverwrittenEveryCycle(t *testing.T) {
	d := NewNotificationDetector(2 * time.Minute)
	base := time.Now()

	d.Observe("game1", []models.Lobby{activeLobby("Lobby", "Alice")}, base)
	d.Observe("game1", []models.Lobby{activeLobby("Lobby")}, base.Add(time.Minute))

	state, ok := d.states.Get("game1", "Lobby")
	require.True(t, ok)
	assert.Empty(t, state.Players)
	assert.Equal(t, base.Add(time.Minute), state.Timestamp)
}
