package models

// Persistence document names. One compressed JSON document per
// collection, rewritten wholesale after each cycle.
const (
	DocActivity       = "activity"
	DocPlayerStats    = "player-stats"
	DocSnapshots      = "snapshots"
	DocLobbyAnalytics = "lobby-analytics"
	DocSessions       = "sessions"
	DocSocial         = "social"
	DocLobbyState     = "lobby-state"
)

// DocumentVersion is the current envelope version. Version 1 files were
// bare collections without an envelope; loaders fall back to that shape.
const DocumentVersion = 2

type SnapshotDocument struct {
	Version   int         `json:"version"`
	Snapshots []*Snapshot `json:"snapshots"`
}

type PlayerStatsDocument struct {
	Version int                          `json:"version"`
	Players map[string]*PlayerStatistics `json:"players"`
}

type SessionDocument struct {
	Version  int             `json:"version"`
	Sessions []SessionRecord `json:"sessions"`
}

type LobbyAnalyticsDocument struct {
	Version int                        `json:"version"`
	Lobbies map[string]*LobbyAnalytics `json:"lobbies"`
}

type SocialDocument struct {
	Version int                     `json:"version"`
	Players map[string]*SocialStats `json:"players"`
}

type LobbyStateDocument struct {
	Version int                    `json:"version"`
	Lobbies map[string]*LobbyState `json:"lobbies"`
}

type ActivityDocument struct {
	Version int              `json:"version"`
	Records []ActivityRecord `json:"records"`
}

func (d *SnapshotDocument) DocVersion() int       { return d.Version }
func (d *PlayerStatsDocument) DocVersion() int    { return d.Version }
func (d *SessionDocument) DocVersion() int        { return d.Version }
func (d *LobbyAnalyticsDocument) DocVersion() int { return d.Version }
func (d *SocialDocument) DocVersion() int         { return d.Version }
func (d *LobbyStateDocument) DocVersion() int     { return d.Version }
func (d *ActivityDocument) DocVersion() int       { return d.Version }
