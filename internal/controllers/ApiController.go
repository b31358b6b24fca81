package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"mpsd/internal/providers"
	"mpsd/internal/services"
)

const (
	defaultLeaderboardLimit = 10
	defaultRetentionDays    = 7
	defaultGrowthDays       = 30
	defaultActivityDays     = 7
	defaultSnapshotHours    = 24
)

type ApiController struct {
	logger  providers.Logger
	query   services.QueryServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, query services.QueryServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		query:   query,
		cache:   cache,
		metrics: metrics,
	}
}

// intParam reads a positive integer query parameter, returning the
// fallback for anything absent or unparsable.
func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value := cast.ToInt(raw)
	if value <= 0 {
		return fallback
	}
	return value
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		ac.metrics.IncCacheHits()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	ac.metrics.IncCacheMisses()

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetTopPlayers(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", defaultLeaderboardLimit)
	ac.serveFromCacheOrCompute(w, "top:"+cast.ToString(limit), func() (any, error) {
		return ac.query.TopPlayers(limit), nil
	})
}

func (ac *ApiController) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	stats, ok := ac.query.PlayerStats(name)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	ac.logger.Debugf(providers.TypeQuery, "Player lookup: %s", name)

	social, _ := ac.query.SocialStats(name)
	response := map[string]any{
		"name":     name,
		"stats":    stats,
		"sessions": ac.query.PlayerSessionStats(name),
		"social":   social,
	}

	gson, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "active"
	}
	limit := intParam(r, "limit", defaultLeaderboardLimit)

	var compute func() (any, error)
	switch kind {
	case "active":
		compute = func() (any, error) { return ac.query.MostActiveLeaderboard(limit), nil }
	case "streak":
		compute = func() (any, error) { return ac.query.StreakLeaderboard(limit), nil }
	case "diverse":
		compute = func() (any, error) { return ac.query.DiversityLeaderboard(limit), nil }
	case "social":
		compute = func() (any, error) { return ac.query.SocialLeaderboard(limit), nil }
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, "lb:"+kind+":"+cast.ToString(limit), compute)
}

func (ac *ApiController) GetCrossGamePlayers(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "crossgame", func() (any, error) {
		return ac.query.CrossGamePlayers(), nil
	})
}

func (ac *ApiController) GetRetention(w http.ResponseWriter, r *http.Request) {
	days := intParam(r, "days", defaultRetentionDays)
	ac.serveFromCacheOrCompute(w, "retention:"+cast.ToString(days), func() (any, error) {
		return ac.query.Retention(days), nil
	})
}

func (ac *ApiController) GetGrowth(w http.ResponseWriter, r *http.Request) {
	days := intParam(r, "days", defaultGrowthDays)
	ac.serveFromCacheOrCompute(w, "growth:"+cast.ToString(days), func() (any, error) {
		return ac.query.GrowthTrends(days), nil
	})
}

func (ac *ApiController) GetPrediction(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "prediction", func() (any, error) {
		prediction := ac.query.PredictPeakTime()
		if prediction == nil {
			return map[string]any{"available": false}, nil
		}
		return prediction, nil
	})
}

func (ac *ApiController) GetAverages(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "averages", func() (any, error) {
		return ac.query.AverageStatistics(), nil
	})
}

func (ac *ApiController) GetPopularLobbies(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", defaultLeaderboardLimit)
	ac.serveFromCacheOrCompute(w, "lobbies:"+cast.ToString(limit), func() (any, error) {
		return ac.query.PopularLobbies(limit), nil
	})
}

func (ac *ApiController) GetLobbySummary(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "lobbysummary", func() (any, error) {
		return ac.query.LobbySummary(), nil
	})
}

func (ac *ApiController) GetSessionSummary(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "sessionsummary", func() (any, error) {
		return ac.query.SessionSummary(), nil
	})
}

func (ac *ApiController) GetPeakTimes(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "peaks", func() (any, error) {
		return ac.query.PeakTimes(), nil
	})
}

func (ac *ApiController) GetDailyActivity(w http.ResponseWriter, r *http.Request) {
	days := intParam(r, "days", defaultActivityDays)
	ac.serveFromCacheOrCompute(w, "daily:"+cast.ToString(days), func() (any, error) {
		return ac.query.DailyActivity(days), nil
	})
}

func (ac *ApiController) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "heatmap", func() (any, error) {
		return ac.query.ActivityHeatmap(), nil
	})
}

func (ac *ApiController) GetWeekdayPatterns(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "weekdays", func() (any, error) {
		return ac.query.WeekdayPatterns(), nil
	})
}

func (ac *ApiController) GetMonthlyActives(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "monthly", func() (any, error) {
		return map[string]int{"monthly_active_players": ac.query.MonthlyActivePlayers()}, nil
	})
}

func (ac *ApiController) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	hours := intParam(r, "hours", defaultSnapshotHours)
	ac.serveFromCacheOrCompute(w, "snapshots:"+cast.ToString(hours), func() (any, error) {
		return ac.query.SnapshotsSince(hours), nil
	})
}
