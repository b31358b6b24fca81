package providers

import (
	"context"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"mpsd/internal/collector/interfaces"
	"mpsd/internal/models"
	"mpsd/internal/structures"
)

// HTTPGameSource pulls one game's already-normalized presence JSON from
// a configured endpoint. Retry and backoff belong to the adapter behind
// the endpoint; this side only bounds each fetch with the client
// timeout.
type HTTPGameSource struct {
	id     string
	url    string
	client *http.Client
}

func (s *HTTPGameSource) ID() string {
	return s.id
}

func (s *HTTPGameSource) Fetch(ctx context.Context) (*models.GameStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source %s: unexpected status %d", s.id, resp.StatusCode)
	}

	var status models.GameStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("source %s: decode: %w", s.id, err)
	}
	return status.Normalize(), nil
}

// NewSourceProvider builds one source per configured game, preserving
// the configured priority order. Games without a URL get a static empty
// source so the collector still tracks them across cycles.
func NewSourceProvider(conf *structures.Config, logger Logger) []interfaces.GameSource {
	client := &http.Client{Timeout: conf.Collector.FetchTimeout}

	sources := make([]interfaces.GameSource, 0, len(conf.Collector.Games))
	for _, game := range conf.Collector.Games {
		if game.URL == "" {
			logger.Warnf(TypeApp, "Game %s has no endpoint, presence will read empty", game.ID)
			sources = append(sources, &EmptyGameSource{id: game.ID})
			continue
		}
		sources = append(sources, &HTTPGameSource{id: game.ID, url: game.URL, client: client})
	}
	return sources
}

// EmptyGameSource always reports nobody online.
type EmptyGameSource struct {
	id string
}

func (s *EmptyGameSource) ID() string {
	return s.id
}

func (s *EmptyGameSource) Fetch(_ context.Context) (*models.GameStatus, error) {
	return (*models.GameStatus)(nil).Normalize(), nil
}
