package services

import (
	"time"

	"mpsd/internal/models"
)

// trackSessions runs the per-player Idle -> Active -> Idle state
// machine against one snapshot. A player present anywhere opens a
// session tagged with the first game, in priority order, whose list
// contains the name. A player gone from the union closes theirs.
func (cs *CollectorService) trackSessions(snapshot *models.Snapshot, statuses map[string]*models.GameStatus, now time.Time, summary *CycleSummary) {
	current := snapshot.UnionPlayers()

	cs.activesMu.Lock()
	defer cs.activesMu.Unlock()

	for player := range current {
		if _, active := cs.actives[player]; active {
			continue
		}
		game := cs.firstGameWith(player, statuses)
		cs.actives[player] = models.ActiveSession{Game: game, Start: now}
		cs.activity.Append(models.ActivityRecord{Player: player, Game: game, Timestamp: now})
		summary.OpenedSessions = append(summary.OpenedSessions, player)
	}

	for player, session := range cs.actives {
		if _, online := current[player]; online {
			continue
		}
		delete(cs.actives, player)

		duration := int(now.Sub(session.Start).Minutes())
		if duration < int(cs.noiseFloor.Minutes()) {
			// One-cycle blips are API noise, not play time.
			summary.DiscardedBlips++
			continue
		}

		record := models.SessionRecord{
			Player:          player,
			Game:            session.Game,
			Start:           session.Start,
			End:             now,
			DurationMinutes: duration,
		}
		cs.sessions.Append(record)
		cs.playerStats.CommitSession(player, session.Game, duration, now)
		summary.ClosedSessions = append(summary.ClosedSessions, record)
	}
}

// firstGameWith resolves the game tag for a freshly opened session.
// A name listed in several games at once gets the first match in the
// configured priority order; the last configured game is the fallback.
func (cs *CollectorService) firstGameWith(player string, statuses map[string]*models.GameStatus) string {
	last := ""
	for _, game := range cs.gameOrder {
		last = game
		for _, p := range statuses[game].Players {
			if p == player {
				return game
			}
		}
	}
	return last
}

// recordPresence updates the per-cycle presence counters for every
// player currently listed in one game, independent of session state.
func (cs *CollectorService) recordPresence(game string, players []string, now time.Time) {
	for _, player := range players {
		cs.playerStats.Touch(player, game, now)
	}
}
