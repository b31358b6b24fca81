package interfaces

import "mpsd/internal/models"

// NotificationSink receives fired lobby events. Delivery failure is the
// sink's problem: the detector state is already updated when Deliver
// runs, and no retry happens here.
type NotificationSink interface {
	Deliver(event *models.LobbyEvent) error
}
