package providers

import (
	"strings"

	"mpsd/internal/collector/interfaces"
	"mpsd/internal/models"
)

// LogNotificationSink writes fired lobby events to the cycle log. The
// chat-platform presentation layer is external; this sink is the
// default delivery so events are never silently dropped.
type LogNotificationSink struct {
	logger Logger
}

func NewNotificationSink(logger Logger) interfaces.NotificationSink {
	return &LogNotificationSink{logger: logger}
}

func (s *LogNotificationSink) Deliver(event *models.LobbyEvent) error {
	s.logger.Infof(TypeCycle, "[%s] %s lobby %q (%d/%d): %s",
		event.Game, event.Kind, event.LobbyName,
		event.PlayerCount, event.MaxPlayers,
		strings.Join(event.Players, ", "))
	return nil
}
