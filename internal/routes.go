package internal

import (
	"net/http"

	"mpsd/internal/controllers"
	"mpsd/internal/providers"
	"mpsd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/players/top", http.HandlerFunc(apiController.GetTopPlayers))
	routers.Get("/players/cross-game", http.HandlerFunc(apiController.GetCrossGamePlayers))
	routers.Get("/players/monthly", http.HandlerFunc(apiController.GetMonthlyActives))
	routers.Get("/player", http.HandlerFunc(apiController.GetPlayer))
	routers.Get("/leaderboard", http.HandlerFunc(apiController.GetLeaderboard))
	routers.Get("/retention", http.HandlerFunc(apiController.GetRetention))
	routers.Get("/growth", http.HandlerFunc(apiController.GetGrowth))
	routers.Get("/prediction", http.HandlerFunc(apiController.GetPrediction))
	routers.Get("/averages", http.HandlerFunc(apiController.GetAverages))
	routers.Get("/lobbies/popular", http.HandlerFunc(apiController.GetPopularLobbies))
	routers.Get("/lobbies/summary", http.HandlerFunc(apiController.GetLobbySummary))
	routers.Get("/sessions/summary", http.HandlerFunc(apiController.GetSessionSummary))
	routers.Get("/activity/peaks", http.HandlerFunc(apiController.GetPeakTimes))
	routers.Get("/activity/daily", http.HandlerFunc(apiController.GetDailyActivity))
	routers.Get("/activity/heatmap", http.HandlerFunc(apiController.GetHeatmap))
	routers.Get("/activity/weekdays", http.HandlerFunc(apiController.GetWeekdayPatterns))
	routers.Get("/snapshots", http.HandlerFunc(apiController.GetSnapshots))
	return routers
}
