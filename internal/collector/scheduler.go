package collector

import (
	"context"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"mpsd/internal/collector/interfaces"
	"mpsd/internal/models"
	"mpsd/internal/providers"
	"mpsd/internal/services"
	"mpsd/internal/structures"
)

// Scheduler drives the collection cycle: fetch every configured game,
// feed the collector service, deliver fired lobby events and persist
// the stores. opsMu serializes cycles with shutdown persistence.
type Scheduler struct {
	config     *structures.Config
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	service    services.CollectorServiceInterface
	repository interfaces.RepositoryInterface
	sources    []interfaces.GameSource
	sink       interfaces.NotificationSink
	cron       *gron.Cron
	opsMu      sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Collector.Interval), func() {
		s.runCycle()
	})

	s.cron.Start()
}

func (s *Scheduler) runCycle() {
	started := time.Now()
	statuses := s.fetchAll()

	s.opsMu.Lock()
	summary := s.service.RecordSnapshot(time.Now(), statuses)
	s.opsMu.Unlock()

	s.meter(summary, time.Since(started))
	s.logger.Infof(providers.TypeCycle,
		"Cycle done: %d players online, %d sessions opened, %d closed, %d blips discarded",
		summary.Snapshot.TotalPlayers, len(summary.OpenedSessions), len(summary.ClosedSessions), summary.DiscardedBlips)

	for _, event := range summary.Events {
		s.metrics.IncNotification(event.Kind)
		if err := s.sink.Deliver(event); err != nil {
			s.logger.Errorf(providers.TypeCycle, "Failed to deliver %s event for lobby %s: %s", event.Kind, event.LobbyName, err)
		}
	}

	if err := s.Persist(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
	}
}

// fetchAll queries every source under its own timeout. A failed game
// reports as nil, which normalizes to an empty status downstream; one
// dead endpoint must not blank the other games' data.
func (s *Scheduler) fetchAll() map[string]*models.GameStatus {
	timeout := s.config.Collector.FetchTimeout
	statuses := make(map[string]*models.GameStatus, len(s.sources))
	for _, source := range s.sources {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		status, err := source.Fetch(ctx)
		cancel()
		if err != nil {
			s.logger.Warnf(providers.TypeCycle, "Fetch failed for game %s: %s", source.ID(), err)
			status = nil
		}
		statuses[source.ID()] = status
	}
	return statuses
}

func (s *Scheduler) meter(summary *services.CycleSummary, elapsed time.Duration) {
	s.metrics.ObserveCycleDuration(elapsed)
	s.metrics.SetUniquePlayers(summary.Snapshot.TotalPlayers)
	s.metrics.AddSessionsCommitted(len(summary.ClosedSessions))
	for game, presence := range summary.Snapshot.PerGame {
		s.metrics.SetPlayersOnline(game, len(presence.Players))
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.service.LoadFrom(s.repository)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	started := time.Now()
	if err := s.service.SaveTo(s.repository); err != nil {
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(started))
	return nil
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	service services.CollectorServiceInterface,
	repository interfaces.RepositoryInterface,
	sources []interfaces.GameSource,
	sink interfaces.NotificationSink,
) interfaces.SchedulerInterface {
	return &Scheduler{
		config:     config,
		logger:     logger,
		metrics:    metrics,
		service:    service,
		repository: repository,
		sources:    sources,
		sink:       sink,
	}
}
