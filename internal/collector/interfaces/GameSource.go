package interfaces

import (
	"context"

	"mpsd/internal/models"
)

// GameSource delivers one game's normalized presence data. The per-game
// HTTP/XML adapters with their own retry policies live outside the
// core; a source only hands over the already-normalized shape.
type GameSource interface {
	ID() string
	Fetch(ctx context.Context) (*models.GameStatus, error)
}
