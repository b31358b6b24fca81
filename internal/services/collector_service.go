package services

import (
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"mpsd/internal/collector/interfaces"
	"mpsd/internal/models"
	"mpsd/internal/structures"
)

// CycleSummary reports what one collection cycle did, so the scheduler
// can log and meter it without reaching into the stores.
type CycleSummary struct {
	Snapshot       *models.Snapshot
	OpenedSessions []string
	ClosedSessions []models.SessionRecord
	DiscardedBlips int
	Events         []*models.LobbyEvent
}

type CollectorServiceInterface interface {
	RecordSnapshot(now time.Time, statuses map[string]*models.GameStatus) *CycleSummary
	LoadFrom(repo interfaces.RepositoryInterface) error
	SaveTo(repo interfaces.RepositoryInterface) error
	Teardown()

	SnapshotCount() int
	TrackedPlayers() int
	ActiveSessionCount() int

	Snapshots() *models.SnapshotStore
	Sessions() *models.SessionStore
	PlayerStats() *models.PlayerStatStore
	LobbyStats() *models.LobbyStatStore
	Social() *models.SocialStore
	Activity() *models.ActivityLog
	GameOrder() []string
}

// CollectorService owns every mutable collection of the analytics
// engine. All trackers run sequentially inside RecordSnapshot, so the
// cycle itself needs no locking beyond what the stores do for
// concurrent readers.
type CollectorService struct {
	gameOrder  []string
	noiseFloor time.Duration

	snapshots   *models.SnapshotStore
	playerStats *models.PlayerStatStore
	sessions    *models.SessionStore
	activity    *models.ActivityLog
	lobbyStats  *models.LobbyStatStore
	social      *models.SocialStore
	detector    *NotificationDetector

	// activesMu guards actives: the cycle mutates it while the
	// health endpoint and the session gauge read its size.
	activesMu sync.RWMutex
	actives   map[string]models.ActiveSession
}

func NewCollectorService(conf *structures.Config) CollectorServiceInterface {
	c := &conf.Collector
	return &CollectorService{
		gameOrder:   conf.GameOrder(),
		noiseFloor:  c.NoiseFloor,
		snapshots:   models.NewSnapshotStore(c.SnapshotCap),
		playerStats: models.NewPlayerStatStore(),
		sessions:    models.NewSessionStore(c.SessionCap),
		activity:    models.NewActivityLog(c.ActivityCap),
		lobbyStats:  models.NewLobbyStatStore(),
		social:      models.NewSocialStore(),
		actives:     make(map[string]models.ActiveSession),
		detector:    NewNotificationDetector(c.Cooldown),
	}
}

// RecordSnapshot ingests one cycle of normalized per-game statuses and
// fans out to all trackers. The fan-out steps are independent and
// order-insensitive for each other's state.
func (cs *CollectorService) RecordSnapshot(now time.Time, statuses map[string]*models.GameStatus) *CycleSummary {
	normalized := make(map[string]*models.GameStatus, len(cs.gameOrder))
	for _, game := range cs.gameOrder {
		normalized[game] = statuses[game].Normalize()
	}

	snapshot := models.NewSnapshot(now, normalized)
	cs.snapshots.Append(snapshot)

	summary := &CycleSummary{Snapshot: snapshot}
	cs.trackSessions(snapshot, normalized, now, summary)

	for _, game := range cs.gameOrder {
		cs.trackLobbies(game, normalized[game].Lobbies, now)
	}

	for _, game := range cs.gameOrder {
		cs.social.ObserveGame(normalized[game].Players)
	}

	for _, game := range cs.gameOrder {
		cs.recordPresence(game, normalized[game].Players, now)
	}

	for _, game := range cs.gameOrder {
		summary.Events = append(summary.Events, cs.detector.Observe(game, normalized[game].Lobbies, now)...)
	}

	return summary
}

func (cs *CollectorService) Teardown() {
	cs.activesMu.Lock()
	defer cs.activesMu.Unlock()
	cs.actives = make(map[string]models.ActiveSession)
}

func (cs *CollectorService) SnapshotCount() int {
	return cs.snapshots.Len()
}

func (cs *CollectorService) TrackedPlayers() int {
	return cs.playerStats.Len()
}

func (cs *CollectorService) ActiveSessionCount() int {
	cs.activesMu.RLock()
	defer cs.activesMu.RUnlock()
	return len(cs.actives)
}

func (cs *CollectorService) Snapshots() *models.SnapshotStore     { return cs.snapshots }
func (cs *CollectorService) Sessions() *models.SessionStore       { return cs.sessions }
func (cs *CollectorService) PlayerStats() *models.PlayerStatStore { return cs.playerStats }
func (cs *CollectorService) LobbyStats() *models.LobbyStatStore   { return cs.lobbyStats }
func (cs *CollectorService) Social() *models.SocialStore          { return cs.social }
func (cs *CollectorService) Activity() *models.ActivityLog        { return cs.activity }
func (cs *CollectorService) GameOrder() []string                  { return cs.gameOrder }

// LoadFrom restores every collection from the repository. A missing
// document leaves its collection empty; a corrupt one is an error the
// caller may choose to treat as a cold start.
func (cs *CollectorService) LoadFrom(repo interfaces.RepositoryInterface) error {
	var snapDoc models.SnapshotDocument
	ok, err := loadDocument(repo, models.DocSnapshots, &snapDoc, &snapDoc.Snapshots)
	if err != nil {
		return err
	}
	if ok {
		cs.snapshots.Put(snapDoc.Snapshots)
	}

	var statsDoc models.PlayerStatsDocument
	ok, err = loadDocument(repo, models.DocPlayerStats, &statsDoc, &statsDoc.Players)
	if err != nil {
		return err
	}
	if ok {
		cs.playerStats.PutData(statsDoc.Players)
	}

	var sessDoc models.SessionDocument
	ok, err = loadDocument(repo, models.DocSessions, &sessDoc, &sessDoc.Sessions)
	if err != nil {
		return err
	}
	if ok {
		cs.sessions.Put(sessDoc.Sessions)
	}

	var lobbyDoc models.LobbyAnalyticsDocument
	ok, err = loadDocument(repo, models.DocLobbyAnalytics, &lobbyDoc, &lobbyDoc.Lobbies)
	if err != nil {
		return err
	}
	if ok {
		cs.lobbyStats.PutData(lobbyDoc.Lobbies)
	}

	var socialDoc models.SocialDocument
	ok, err = loadDocument(repo, models.DocSocial, &socialDoc, &socialDoc.Players)
	if err != nil {
		return err
	}
	if ok {
		cs.social.PutData(socialDoc.Players)
	}

	var stateDoc models.LobbyStateDocument
	ok, err = loadDocument(repo, models.DocLobbyState, &stateDoc, &stateDoc.Lobbies)
	if err != nil {
		return err
	}
	if ok {
		cs.detector.states.PutData(stateDoc.Lobbies)
	}

	var actDoc models.ActivityDocument
	ok, err = loadDocument(repo, models.DocActivity, &actDoc, &actDoc.Records)
	if err != nil {
		return err
	}
	if ok {
		cs.activity.Put(actDoc.Records)
	}

	return nil
}

// SaveTo rewrites every collection wholesale.
func (cs *CollectorService) SaveTo(repo interfaces.RepositoryInterface) error {
	docs := []struct {
		name string
		v    any
	}{
		{models.DocSnapshots, &models.SnapshotDocument{Version: models.DocumentVersion, Snapshots: cs.snapshots.All()}},
		{models.DocPlayerStats, &models.PlayerStatsDocument{Version: models.DocumentVersion, Players: cs.playerStats.GetData()}},
		{models.DocSessions, &models.SessionDocument{Version: models.DocumentVersion, Sessions: cs.sessions.All()}},
		{models.DocLobbyAnalytics, &models.LobbyAnalyticsDocument{Version: models.DocumentVersion, Lobbies: cs.lobbyStats.GetData()}},
		{models.DocSocial, &models.SocialDocument{Version: models.DocumentVersion, Players: cs.social.GetData()}},
		{models.DocLobbyState, &models.LobbyStateDocument{Version: models.DocumentVersion, Lobbies: cs.detector.states.GetData()}},
		{models.DocActivity, &models.ActivityDocument{Version: models.DocumentVersion, Records: cs.activity.All()}},
	}
	for _, doc := range docs {
		if err := repo.Save(doc.name, doc.v); err != nil {
			return fmt.Errorf("save %s: %w", doc.name, err)
		}
	}
	return nil
}

// versioned lets loadDocument detect pre-envelope files without
// reflection: a legacy document either fails to parse as the envelope
// or parses with a zero version.
type versioned interface {
	DocVersion() int
}

// loadDocument reads one named document into the versioned envelope,
// falling back to the bare pre-envelope shape for version 1 files.
// Returns false when the document does not exist.
func loadDocument(repo interfaces.RepositoryInterface, name string, envelope versioned, legacy any) (bool, error) {
	data, err := repo.Load(name)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", name, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, envelope); err == nil && envelope.DocVersion() > 0 {
		return true, nil
	}
	if err := json.Unmarshal(data, legacy); err != nil {
		return false, fmt.Errorf("load %s: unrecognized document format: %w", name, err)
	}
	return true, nil
}
