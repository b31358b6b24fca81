package services

import (
	"math"
	"regexp"
	"sort"
	"time"

	"mpsd/internal/models"
)

const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

type PlayerRank struct {
	Name  string                   `json:"name"`
	Stats *models.PlayerStatistics `json:"stats"`
}

type ActivityRank struct {
	Name            string `json:"name"`
	TotalActivity   int    `json:"total_activity"`
	PlaytimeMinutes int    `json:"playtime_minutes"`
}

type StreakRank struct {
	Name       string `json:"name"`
	StreakDays int    `json:"streak_days"`
}

type DiversityRank struct {
	Name        string `json:"name"`
	GamesPlayed int    `json:"games_played"`
}

type SocialRank struct {
	Name           string `json:"name"`
	UniquePartners int    `json:"unique_partners"`
}

type PlayerSessionStats struct {
	TotalSessions        int       `json:"total_sessions"`
	AverageSessionLength float64   `json:"average_session_length"`
	LongestSession       int       `json:"longest_session"`
	ShortestSession      int       `json:"shortest_session"`
	StreakDays           int       `json:"streak_days"`
	LastSessionEnd       time.Time `json:"last_session_end"`
}

type RetentionMetrics struct {
	NewPlayers       int     `json:"new_players"`
	ReturningPlayers int     `json:"returning_players"`
	RetentionRate    float64 `json:"retention_rate"`
	ChurnRate        float64 `json:"churn_rate"`
}

type GrowthTrends struct {
	DailyPlayers       map[string]int `json:"daily_players"`
	WeekOverWeekGrowth float64        `json:"week_over_week_growth"`
	Trend              string         `json:"trend"`
}

type PredictiveData struct {
	ExpectedPeakHour    int     `json:"expected_peak_hour"`
	ExpectedPlayerCount int     `json:"expected_player_count"`
	Confidence          float64 `json:"confidence"`
	Trend               string  `json:"trend"`
}

type HourActivity struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type HostCount struct {
	Host  string `json:"host"`
	Count int    `json:"count"`
}

type LobbyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type LobbySummary struct {
	TotalLobbies    int                    `json:"total_lobbies"`
	AverageDuration float64                `json:"average_duration"`
	LongestActive   *models.LobbyAnalytics `json:"longest_active,omitempty"`
	TopHosts        []HostCount            `json:"top_hosts"`
	PopularLobbies  []LobbyCount           `json:"popular_lobbies"`
}

type LongestSession struct {
	Player          string `json:"player"`
	DurationMinutes int    `json:"duration_minutes"`
}

type SessionSummary struct {
	TotalSessions  int             `json:"total_sessions"`
	AverageLength  float64         `json:"average_length"`
	LongestSession *LongestSession `json:"longest_session"`
}

type WeekdayPattern struct {
	Day            int     `json:"day"`
	Name           string  `json:"name"`
	AveragePlayers float64 `json:"average_players"`
}

type AverageStatistics struct {
	Lobbies struct {
		AverageSize     float64 `json:"average_size"`
		AverageDuration float64 `json:"average_duration"`
		MostPopularHour int     `json:"most_popular_hour"`
		MostPopularDay  int     `json:"most_popular_day"`
	} `json:"lobbies"`
	Sessions struct {
		AverageLength            float64 `json:"average_length"`
		AveragePlayersPerSession float64 `json:"average_players_per_session"`
		AverageSessionsPerPlayer float64 `json:"average_sessions_per_player"`
	} `json:"sessions"`
	Playtime struct {
		AverageDailyMinutes  float64 `json:"average_daily_minutes"`
		AverageWeeklyMinutes float64 `json:"average_weekly_minutes"`
		MostActiveHour       int     `json:"most_active_hour"`
		MostActiveDay        int     `json:"most_active_day"`
	} `json:"playtime"`
	Players struct {
		AverageSessionsPerPlayer float64 `json:"average_sessions_per_player"`
		AveragePlaytimePerPlayer float64 `json:"average_playtime_per_player"`
		AverageGamesPerPlayer    float64 `json:"average_games_per_player"`
	} `json:"players"`
}

type QueryServiceInterface interface {
	TopPlayers(limit int) []PlayerRank
	MostActiveLeaderboard(limit int) []ActivityRank
	StreakLeaderboard(limit int) []StreakRank
	DiversityLeaderboard(limit int) []DiversityRank
	SocialLeaderboard(limit int) []SocialRank
	PlayerStats(name string) (*models.PlayerStatistics, bool)
	PlayerSessionStats(name string) *PlayerSessionStats
	SocialStats(name string) (*models.SocialStats, bool)
	CrossGamePlayers() []string
	Retention(days int) RetentionMetrics
	GrowthTrends(days int) GrowthTrends
	PredictPeakTime() *PredictiveData
	AverageStatistics() AverageStatistics
	PeakTimes() []HourActivity
	DailyActivity(days int) map[string]int
	PopularLobbies(limit int) []*models.LobbyAnalytics
	LobbySummary() LobbySummary
	SessionSummary() SessionSummary
	MonthlyActivePlayers() int
	ActivityHeatmap() map[string]int
	WeekdayPatterns() []WeekdayPattern
	SnapshotsSince(hours int) []*models.Snapshot
}

// QueryService computes derived statistics on demand. It never mutates
// collector state; every answer is built from store copies, and thin
// history yields an explicit empty result instead of an error.
type QueryService struct {
	collector CollectorServiceInterface
}

func NewQueryService(collector CollectorServiceInterface) QueryServiceInterface {
	return &QueryService{collector: collector}
}

func (qs *QueryService) TopPlayers(limit int) []PlayerRank {
	ranks := make([]PlayerRank, 0)
	for name, stats := range qs.collector.PlayerStats().GetData() {
		ranks = append(ranks, PlayerRank{Name: name, Stats: stats})
	}
	sort.Slice(ranks, func(i, j int) bool {
		a, b := ranks[i].Stats.TotalAppearances(), ranks[j].Stats.TotalAppearances()
		if a != b {
			return a > b
		}
		return ranks[i].Name < ranks[j].Name
	})
	return truncate(ranks, limit)
}

func (qs *QueryService) MostActiveLeaderboard(limit int) []ActivityRank {
	ranks := make([]ActivityRank, 0)
	for name, stats := range qs.collector.PlayerStats().GetData() {
		ranks = append(ranks, ActivityRank{
			Name:            name,
			TotalActivity:   stats.TotalAppearances(),
			PlaytimeMinutes: stats.TotalMinutes,
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].TotalActivity != ranks[j].TotalActivity {
			return ranks[i].TotalActivity > ranks[j].TotalActivity
		}
		return ranks[i].Name < ranks[j].Name
	})
	return truncate(ranks, limit)
}

func (qs *QueryService) StreakLeaderboard(limit int) []StreakRank {
	ranks := make([]StreakRank, 0)
	for name := range qs.collector.PlayerStats().GetData() {
		sessions := qs.collector.Sessions().ByPlayer(name)
		if len(sessions) == 0 {
			continue
		}
		ranks = append(ranks, StreakRank{Name: name, StreakDays: maxStreakDays(sessions)})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].StreakDays != ranks[j].StreakDays {
			return ranks[i].StreakDays > ranks[j].StreakDays
		}
		return ranks[i].Name < ranks[j].Name
	})
	return truncate(ranks, limit)
}

func (qs *QueryService) DiversityLeaderboard(limit int) []DiversityRank {
	ranks := make([]DiversityRank, 0)
	for name, stats := range qs.collector.PlayerStats().GetData() {
		ranks = append(ranks, DiversityRank{Name: name, GamesPlayed: stats.GamesPlayed()})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].GamesPlayed != ranks[j].GamesPlayed {
			return ranks[i].GamesPlayed > ranks[j].GamesPlayed
		}
		return ranks[i].Name < ranks[j].Name
	})
	return truncate(ranks, limit)
}

func (qs *QueryService) SocialLeaderboard(limit int) []SocialRank {
	ranks := make([]SocialRank, 0)
	for name, social := range qs.collector.Social().GetData() {
		ranks = append(ranks, SocialRank{Name: name, UniquePartners: len(social.CoPlayers)})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].UniquePartners != ranks[j].UniquePartners {
			return ranks[i].UniquePartners > ranks[j].UniquePartners
		}
		return ranks[i].Name < ranks[j].Name
	})
	return truncate(ranks, limit)
}

func (qs *QueryService) PlayerStats(name string) (*models.PlayerStatistics, bool) {
	return qs.collector.PlayerStats().Get(name)
}

func (qs *QueryService) PlayerSessionStats(name string) *PlayerSessionStats {
	sessions := qs.collector.Sessions().ByPlayer(name)
	if len(sessions) == 0 {
		return nil
	}

	total := 0
	longest := sessions[0].DurationMinutes
	shortest := sessions[0].DurationMinutes
	last := sessions[0].End
	for _, s := range sessions {
		total += s.DurationMinutes
		if s.DurationMinutes > longest {
			longest = s.DurationMinutes
		}
		if s.DurationMinutes < shortest {
			shortest = s.DurationMinutes
		}
		if s.End.After(last) {
			last = s.End
		}
	}

	return &PlayerSessionStats{
		TotalSessions:        len(sessions),
		AverageSessionLength: float64(total) / float64(len(sessions)),
		LongestSession:       longest,
		ShortestSession:      shortest,
		StreakDays:           maxStreakDays(sessions),
		LastSessionEnd:       last,
	}
}

func (qs *QueryService) SocialStats(name string) (*models.SocialStats, bool) {
	return qs.collector.Social().Get(name)
}

// CrossGamePlayers lists players who have appeared in every monitored
// game at least once.
func (qs *QueryService) CrossGamePlayers() []string {
	want := len(qs.collector.GameOrder())
	players := make([]string, 0)
	for name, stats := range qs.collector.PlayerStats().GetData() {
		if stats.GamesPlayed() >= want {
			players = append(players, name)
		}
	}
	sort.Strings(players)
	return players
}

// Retention classifies every player with a session inside the trailing
// window: "new" when their earliest recorded session also falls inside
// it, "returning" otherwise. An empty window yields the zero metric.
func (qs *QueryService) Retention(days int) RetentionMetrics {
	if days <= 0 {
		days = 7
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	firstStarts := make(map[string]time.Time)
	for _, s := range qs.collector.Sessions().All() {
		if prev, ok := firstStarts[s.Player]; !ok || s.Start.Before(prev) {
			firstStarts[s.Player] = s.Start
		}
	}

	newPlayers := 0
	returning := 0
	for _, s := range qs.collector.Sessions().Since(cutoff) {
		first, seen := firstStarts[s.Player]
		if !seen {
			continue
		}
		delete(firstStarts, s.Player) // count each player once
		if !first.Before(cutoff) {
			newPlayers++
		} else {
			returning++
		}
	}

	total := newPlayers + returning
	if total == 0 {
		return RetentionMetrics{}
	}
	rate := float64(returning) / float64(total) * 100
	return RetentionMetrics{
		NewPlayers:       newPlayers,
		ReturningPlayers: returning,
		RetentionRate:    rate,
		ChurnRate:        100 - rate,
	}
}

func (qs *QueryService) GrowthTrends(days int) GrowthTrends {
	if days <= 0 {
		days = 30
	}
	daily := qs.dailyUniquePlayers(days)

	percent := qs.weekOverWeekPercent()
	trend := TrendStable
	if percent > 5 {
		trend = TrendIncreasing
	} else if percent < -5 {
		trend = TrendDecreasing
	}

	return GrowthTrends{
		DailyPlayers:       daily,
		WeekOverWeekGrowth: percent,
		Trend:              trend,
	}
}

func (qs *QueryService) weekOverWeekPercent() float64 {
	now := time.Now()
	oneWeekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	thisWeek := 0
	lastWeek := 0
	for _, s := range qs.collector.Snapshots().All() {
		switch {
		case !s.Timestamp.Before(oneWeekAgo):
			thisWeek += s.TotalPlayers
		case !s.Timestamp.Before(twoWeeksAgo):
			lastWeek += s.TotalPlayers
		}
	}
	if lastWeek == 0 {
		return 0
	}
	return float64(thisWeek-lastWeek) / float64(lastWeek) * 100
}

func (qs *QueryService) dailyUniquePlayers(days int) map[string]int {
	cutoff := time.Now().AddDate(0, 0, -days)
	perDay := make(map[string]map[string]struct{})
	for _, s := range qs.collector.Snapshots().Since(cutoff) {
		date := s.Timestamp.Format("2006-01-02")
		daySet, ok := perDay[date]
		if !ok {
			daySet = make(map[string]struct{})
			perDay[date] = daySet
		}
		for p := range s.UnionPlayers() {
			daySet[p] = struct{}{}
		}
	}

	out := make(map[string]int, len(perDay))
	for date, set := range perDay {
		out[date] = len(set)
	}
	return out
}

// PredictPeakTime needs at least 24 snapshots; below that it returns
// nil rather than a guess.
func (qs *QueryService) PredictPeakTime() *PredictiveData {
	snapshots := qs.collector.Snapshots().All()
	if len(snapshots) < 24 {
		return nil
	}

	var hourCounts, hourTotals [24]int
	for _, s := range snapshots {
		h := s.Timestamp.Hour()
		hourCounts[h]++
		hourTotals[h] += s.TotalPlayers
	}

	peakHour := 0
	peakAvg := 0.0
	for h := 0; h < 24; h++ {
		if hourCounts[h] == 0 {
			continue
		}
		avg := float64(hourTotals[h]) / float64(hourCounts[h])
		if avg > peakAvg {
			peakAvg = avg
			peakHour = h
		}
	}

	recent := meanTotalPlayers(snapshots[len(snapshots)-12:])
	older := meanTotalPlayers(snapshots[len(snapshots)-24 : len(snapshots)-12])
	trend := TrendStable
	if recent > older*1.1 {
		trend = TrendIncreasing
	} else if recent < older*0.9 {
		trend = TrendDecreasing
	}

	return &PredictiveData{
		ExpectedPeakHour:    peakHour,
		ExpectedPlayerCount: int(math.Round(peakAvg)),
		Confidence:          math.Min(95, float64(len(snapshots))),
		Trend:               trend,
	}
}

func meanTotalPlayers(snapshots []*models.Snapshot) float64 {
	if len(snapshots) == 0 {
		return 0
	}
	sum := 0
	for _, s := range snapshots {
		sum += s.TotalPlayers
	}
	return float64(sum) / float64(len(snapshots))
}

func (qs *QueryService) AverageStatistics() AverageStatistics {
	var out AverageStatistics

	lobbies := qs.collector.LobbyStats().GetData()
	if len(lobbies) > 0 {
		sizeSum := 0.0
		durSum := 0.0
		for _, l := range lobbies {
			sizeSum += l.AveragePlayers
			durSum += l.AverageDuration
		}
		out.Lobbies.AverageSize = sizeSum / float64(len(lobbies))
		out.Lobbies.AverageDuration = durSum / float64(len(lobbies))
	}

	snapshots := qs.collector.Snapshots().All()
	hourWeights := make(map[int]int)
	dayWeights := make(map[int]int)
	for _, s := range snapshots {
		hourWeights[s.Timestamp.Hour()] += s.TotalPlayers
		dayWeights[int(s.Timestamp.Weekday())] += s.TotalPlayers
	}
	out.Lobbies.MostPopularHour = argmaxInt(hourWeights)
	out.Lobbies.MostPopularDay = argmaxInt(dayWeights)
	out.Playtime.MostActiveHour = out.Lobbies.MostPopularHour
	out.Playtime.MostActiveDay = out.Lobbies.MostPopularDay

	sessions := qs.collector.Sessions().All()
	if len(sessions) > 0 {
		total := 0
		for _, s := range sessions {
			total += s.DurationMinutes
		}
		out.Sessions.AverageLength = float64(total) / float64(len(sessions))
	}
	out.Sessions.AveragePlayersPerSession = out.Lobbies.AverageSize

	players := qs.collector.PlayerStats().GetData()
	if len(players) > 0 {
		sessionSum := 0
		minuteSum := 0
		gamesSum := 0
		for _, p := range players {
			sessionSum += p.TotalSessions
			minuteSum += p.TotalMinutes
			gamesSum += p.GamesPlayed()
		}
		out.Sessions.AverageSessionsPerPlayer = float64(sessionSum) / float64(len(players))
		out.Players.AverageSessionsPerPlayer = out.Sessions.AverageSessionsPerPlayer
		out.Players.AveragePlaytimePerPlayer = float64(minuteSum) / float64(len(players))
		out.Players.AverageGamesPerPlayer = float64(gamesSum) / float64(len(players))

		days := 1.0
		if len(snapshots) > 0 {
			elapsed := time.Since(snapshots[0].Timestamp).Hours() / 24
			days = math.Max(1, math.Floor(elapsed))
		}
		out.Playtime.AverageDailyMinutes = float64(minuteSum) / days
		out.Playtime.AverageWeeklyMinutes = out.Playtime.AverageDailyMinutes * 7
	}

	return out
}

// PeakTimes reports unique players seen per hour of day across the
// whole snapshot history.
func (qs *QueryService) PeakTimes() []HourActivity {
	perHour := make(map[int]map[string]struct{})
	for _, s := range qs.collector.Snapshots().All() {
		h := s.Timestamp.Hour()
		hourSet, ok := perHour[h]
		if !ok {
			hourSet = make(map[string]struct{})
			perHour[h] = hourSet
		}
		for p := range s.UnionPlayers() {
			hourSet[p] = struct{}{}
		}
	}

	out := make([]HourActivity, 0, len(perHour))
	for h, set := range perHour {
		out = append(out, HourActivity{Hour: h, Count: len(set)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

func (qs *QueryService) DailyActivity(days int) map[string]int {
	if days <= 0 {
		days = 7
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	out := make(map[string]int)
	for _, s := range qs.collector.Snapshots().Since(cutoff) {
		out[s.Timestamp.Format("2006-01-02")] += s.TotalPlayers
	}
	return out
}

func (qs *QueryService) PopularLobbies(limit int) []*models.LobbyAnalytics {
	lobbies := make([]*models.LobbyAnalytics, 0)
	for _, l := range qs.collector.LobbyStats().GetData() {
		lobbies = append(lobbies, l)
	}
	sort.Slice(lobbies, func(i, j int) bool {
		if lobbies[i].Appearances != lobbies[j].Appearances {
			return lobbies[i].Appearances > lobbies[j].Appearances
		}
		return models.LobbyKey(lobbies[i].Game, lobbies[i].LobbyName) < models.LobbyKey(lobbies[j].Game, lobbies[j].LobbyName)
	})
	return truncate(lobbies, limit)
}

// hostPattern extracts the host name from possessive lobby names such
// as "Bob's Race".
var hostPattern = regexp.MustCompile(`^([^']+)'s`)

func (qs *QueryService) LobbySummary() LobbySummary {
	lobbies := qs.collector.LobbyStats().GetData()
	summary := LobbySummary{
		TotalLobbies:   len(lobbies),
		TopHosts:       []HostCount{},
		PopularLobbies: []LobbyCount{},
	}
	if len(lobbies) == 0 {
		return summary
	}

	durSum := 0.0
	hostCounts := make(map[string]int)
	lobbyCounts := make(map[string]int)
	for _, l := range lobbies {
		durSum += l.AverageDuration
		lobbyCounts[l.LobbyName] += l.Appearances
		if m := hostPattern.FindStringSubmatch(l.LobbyName); m != nil {
			hostCounts[m[1]]++
		}
		if summary.LongestActive == nil ||
			l.AverageDuration > summary.LongestActive.AverageDuration ||
			(l.AverageDuration == summary.LongestActive.AverageDuration &&
				models.LobbyKey(l.Game, l.LobbyName) < models.LobbyKey(summary.LongestActive.Game, summary.LongestActive.LobbyName)) {
			summary.LongestActive = l
		}
	}
	summary.AverageDuration = durSum / float64(len(lobbies))

	for host, count := range hostCounts {
		summary.TopHosts = append(summary.TopHosts, HostCount{Host: host, Count: count})
	}
	sort.Slice(summary.TopHosts, func(i, j int) bool {
		if summary.TopHosts[i].Count != summary.TopHosts[j].Count {
			return summary.TopHosts[i].Count > summary.TopHosts[j].Count
		}
		return summary.TopHosts[i].Host < summary.TopHosts[j].Host
	})
	summary.TopHosts = truncate(summary.TopHosts, 5)

	for name, count := range lobbyCounts {
		summary.PopularLobbies = append(summary.PopularLobbies, LobbyCount{Name: name, Count: count})
	}
	sort.Slice(summary.PopularLobbies, func(i, j int) bool {
		if summary.PopularLobbies[i].Count != summary.PopularLobbies[j].Count {
			return summary.PopularLobbies[i].Count > summary.PopularLobbies[j].Count
		}
		return summary.PopularLobbies[i].Name < summary.PopularLobbies[j].Name
	})
	summary.PopularLobbies = truncate(summary.PopularLobbies, 5)

	return summary
}

func (qs *QueryService) SessionSummary() SessionSummary {
	sessions := qs.collector.Sessions().All()
	if len(sessions) == 0 {
		return SessionSummary{}
	}

	total := 0
	longest := sessions[0]
	for _, s := range sessions {
		total += s.DurationMinutes
		if s.DurationMinutes > longest.DurationMinutes {
			longest = s
		}
	}
	return SessionSummary{
		TotalSessions: len(sessions),
		AverageLength: float64(total) / float64(len(sessions)),
		LongestSession: &LongestSession{
			Player:          longest.Player,
			DurationMinutes: longest.DurationMinutes,
		},
	}
}

func (qs *QueryService) MonthlyActivePlayers() int {
	cutoff := time.Now().AddDate(0, 0, -30)
	active := make(map[string]struct{})
	for _, s := range qs.collector.Snapshots().Since(cutoff) {
		for p := range s.UnionPlayers() {
			active[p] = struct{}{}
		}
	}
	return len(active)
}

// ActivityHeatmap sums snapshot player counts into "day-hour" buckets.
func (qs *QueryService) ActivityHeatmap() map[string]int {
	heatmap := make(map[string]int)
	for _, s := range qs.collector.Snapshots().All() {
		key := weekdayHourKey(int(s.Timestamp.Weekday()), s.Timestamp.Hour())
		heatmap[key] += s.TotalPlayers
	}
	return heatmap
}

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (qs *QueryService) WeekdayPatterns() []WeekdayPattern {
	perDay := make(map[int]map[string]struct{})
	counts := make(map[int]int)
	for _, s := range qs.collector.Snapshots().All() {
		day := int(s.Timestamp.Weekday())
		daySet, ok := perDay[day]
		if !ok {
			daySet = make(map[string]struct{})
			perDay[day] = daySet
		}
		for p := range s.UnionPlayers() {
			daySet[p] = struct{}{}
		}
		counts[day]++
	}

	out := make([]WeekdayPattern, 7)
	for day := 0; day < 7; day++ {
		pattern := WeekdayPattern{Day: day, Name: weekdayNames[day]}
		if counts[day] > 0 {
			pattern.AveragePlayers = float64(len(perDay[day])) / float64(counts[day])
		}
		out[day] = pattern
	}
	return out
}

func (qs *QueryService) SnapshotsSince(hours int) []*models.Snapshot {
	if hours <= 0 {
		hours = 24
	}
	return qs.collector.Snapshots().Since(time.Now().Add(-time.Duration(hours) * time.Hour))
}

// maxStreakDays walks a player's sessions in start order and returns
// the longest run of starts at most one day apart.
func maxStreakDays(sessions []models.SessionRecord) int {
	sorted := make([]models.SessionRecord, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	current := 1
	longest := 1
	for i := 1; i < len(sorted); i++ {
		gapDays := int(sorted[i].Start.Sub(sorted[i-1].Start).Hours() / 24)
		if gapDays <= 1 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

// argmaxInt returns the key carrying the largest weight, preferring
// the smaller key on ties. Empty input yields 0.
func argmaxInt(weights map[int]int) int {
	best := 0
	bestWeight := -1
	for k, w := range weights {
		if w > bestWeight || (w == bestWeight && k < best) {
			best = k
			bestWeight = w
		}
	}
	return best
}

func weekdayHourKey(day, hour int) string {
	return weekdayNames[day][:3] + "-" + itoa2(hour)
}

func itoa2(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
