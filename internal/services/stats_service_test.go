package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpsd/internal/models"
)

func seededService() CollectorServiceInterface {
	return NewCollectorService(testConfig())
}

func snap(ts time.Time, players ...string) *models.Snapshot {
	return models.NewSnapshot(ts, map[string]*models.GameStatus{
		"game1": {Players: players},
	})
}

func TestTopPlayers_OrderAndTieBreak(t *testing.T) {
	svc := seededService()
	now := time.Now()
	svc.PlayerStats().Touch("Zed", "game1", now)
	svc.PlayerStats().Touch("Amy", "game1", now)
	svc.PlayerStats().Touch("Bob", "game1", now)
	svc.PlayerStats().Touch("Bob", "game1", now)

	qs := NewQueryService(svc)
	ranks := qs.TopPlayers(10)

	require.Len(t, ranks, 3)
	assert.Equal(t, "Bob", ranks[0].Name)
	// Amy and Zed tie at one appearance; name order decides
	assert.Equal(t, "Amy", ranks[1].Name)
	assert.Equal(t, "Zed", ranks[2].Name)
}

func TestTopPlayers_LimitApplied(t *testing.T) {
	svc := seededService()
	now := time.Now()
	for _, name := range []string{"a", "b", "c", "d"} {
		svc.PlayerStats().Touch(name, "game1", now)
	}

	assert.Len(t, NewQueryService(svc).TopPlayers(2), 2)
}

func TestMostActiveLeaderboard(t *testing.T) {
	svc := seededService()
	now := time.Now()
	svc.PlayerStats().Touch("Alice", "game1", now)
	svc.PlayerStats().CommitSession("Alice", "game1", 120, now)
	svc.PlayerStats().Touch("Bob", "game1", now)

	ranks := NewQueryService(svc).MostActiveLeaderboard(10)
	require.Len(t, ranks, 2)
	assert.Equal(t, 120, ranks[0].PlaytimeMinutes)
}

func TestStreakLeaderboard(t *testing.T) {
	svc := seededService()
	base := time.Now().Add(-10 * 24 * time.Hour)
	svc.PlayerStats().Touch("Alice", "game1", base)

	// Three consecutive days, then a gap, then one more
	for _, offset := range []int{0, 1, 2, 6} {
		start := base.Add(time.Duration(offset) * 24 * time.Hour)
		svc.Sessions().Append(models.SessionRecord{
			Player: "Alice", Game: "game1",
			Start: start, End: start.Add(30 * time.Minute), DurationMinutes: 30,
		})
	}

	ranks := NewQueryService(svc).StreakLeaderboard(10)
	require.Len(t, ranks, 1)
	assert.Equal(t, 3, ranks[0].StreakDays)
}

func TestDiversityAndSocialLeaderboards(t *testing.T) {
	svc := seededService()
	now := time.Now()
	svc.PlayerStats().Touch("Alice", "game1", now)
	svc.PlayerStats().Touch("Alice", "game2", now)
	svc.PlayerStats().Touch("Bob", "game1", now)
	svc.Social().ObserveGame([]string{"Alice", "Bob", "Carol"})

	qs := NewQueryService(svc)

	diverse := qs.DiversityLeaderboard(10)
	require.NotEmpty(t, diverse)
	assert.Equal(t, "Alice", diverse[0].Name)
	assert.Equal(t, 2, diverse[0].GamesPlayed)

	social := qs.SocialLeaderboard(10)
	require.Len(t, social, 3)
	assert.Equal(t, 2, social[0].UniquePartners)
}

func TestPlayerSessionStats(t *testing.T) {
	svc := seededService()
	base := time.Now().Add(-2 * time.Hour)
	svc.Sessions().Append(models.SessionRecord{Player: "Alice", Start: base, End: base.Add(10 * time.Minute), DurationMinutes: 10})
	svc.Sessions().Append(models.SessionRecord{Player: "Alice", Start: base.Add(time.Hour), End: base.Add(90 * time.Minute), DurationMinutes: 30})

	qs := NewQueryService(svc)
	stats := qs.PlayerSessionStats("Alice")
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 30, stats.LongestSession)
	assert.Equal(t, 10, stats.ShortestSession)
	assert.InDelta(t, 20.0, stats.AverageSessionLength, 0.001)
	assert.Equal(t, base.Add(90*time.Minute), stats.LastSessionEnd)

	assert.Nil(t, qs.PlayerSessionStats("Nobody"))
}

func TestRetention_RatesSumToHundred(t *testing.T) {
	svc := seededService()
	now := time.Now()

	// Bob is returning: first session a month ago, another this week
	svc.Sessions().Append(models.SessionRecord{Player: "Bob", Start: now.AddDate(0, 0, -30), DurationMinutes: 20})
	svc.Sessions().Append(models.SessionRecord{Player: "Bob", Start: now.AddDate(0, 0, -2), DurationMinutes: 20})
	// Alice is new: first ever session inside the window
	svc.Sessions().Append(models.SessionRecord{Player: "Alice", Start: now.AddDate(0, 0, -1), DurationMinutes: 20})

	m := NewQueryService(svc).Retention(7)
	assert.Equal(t, 1, m.NewPlayers)
	assert.Equal(t, 1, m.ReturningPlayers)
	assert.InDelta(t, 50.0, m.RetentionRate, 0.001)
	assert.InDelta(t, 100.0, m.RetentionRate+m.ChurnRate, 0.001)
}

func TestRetention_NoSessions(t *testing.T) {
	m := NewQueryService(seededService()).Retention(7)
	assert.Equal(t, RetentionMetrics{}, m)
}

func TestGrowthTrends_StableAtExactlyFivePercent(t *testing.T) {
	svc := seededService()
	now := time.Now()

	last := snap(now.AddDate(0, 0, -10))
	last.TotalPlayers = 100
	svc.Snapshots().Append(last)

	this := snap(now.AddDate(0, 0, -2))
	this.TotalPlayers = 105
	svc.Snapshots().Append(this)

	g := NewQueryService(svc).GrowthTrends(30)
	assert.InDelta(t, 5.0, g.WeekOverWeekGrowth, 0.001)
	// Strictly greater than 5 is required for "increasing"
	assert.Equal(t, TrendStable, g.Trend)
}

func TestGrowthTrends_Increasing(t *testing.T) {
	svc := seededService()
	now := time.Now()

	last := snap(now.AddDate(0, 0, -10))
	last.TotalPlayers = 100
	svc.Snapshots().Append(last)

	this := snap(now.AddDate(0, 0, -2))
	this.TotalPlayers = 120
	svc.Snapshots().Append(this)

	g := NewQueryService(svc).GrowthTrends(30)
	assert.Equal(t, TrendIncreasing, g.Trend)
}

func TestGrowthTrends_NoBaselineWeek(t *testing.T) {
	svc := seededService()
	s := snap(time.Now().AddDate(0, 0, -1), "Alice")
	svc.Snapshots().Append(s)

	g := NewQueryService(svc).GrowthTrends(30)
	assert.Equal(t, 0.0, g.WeekOverWeekGrowth)
	assert.Equal(t, TrendStable, g.Trend)
	assert.Len(t, g.DailyPlayers, 1)
}

func TestPredictPeakTime_NeedsHistory(t *testing.T) {
	svc := seededService()
	base := time.Now().Add(-23 * time.Hour)
	for i := 0; i < 23; i++ {
		svc.Snapshots().Append(snap(base.Add(time.Duration(i) * time.Hour)))
	}

	assert.Nil(t, NewQueryService(svc).PredictPeakTime())
}

func TestPredictPeakTime_FindsPeakHour(t *testing.T) {
	svc := seededService()
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)
	for h := 0; h < 24; h++ {
		s := snap(day.Add(time.Duration(h) * time.Hour))
		s.TotalPlayers = 10
		if h == 3 {
			s.TotalPlayers = 20
		}
		svc.Snapshots().Append(s)
	}

	p := NewQueryService(svc).PredictPeakTime()
	require.NotNil(t, p)
	assert.Equal(t, 3, p.ExpectedPeakHour)
	assert.Equal(t, 20, p.ExpectedPlayerCount)
	assert.Equal(t, TrendStable, p.Trend)
	assert.InDelta(t, 24.0, p.Confidence, 0.001)
}

func TestAverageStatistics_EmptyHistory(t *testing.T) {
	out := NewQueryService(seededService()).AverageStatistics()
	assert.Equal(t, 0.0, out.Lobbies.AverageSize)
	assert.Equal(t, 0.0, out.Sessions.AverageLength)
	assert.Equal(t, 0.0, out.Players.AveragePlaytimePerPlayer)
}

func TestAverageStatistics_Populated(t *testing.T) {
	svc := seededService()
	now := time.Now()
	svc.LobbyStats().Observe("game1", "A", 4, now)
	svc.LobbyStats().Observe("game1", "B", 8, now)
	svc.Sessions().Append(models.SessionRecord{Player: "Alice", DurationMinutes: 30, Start: now, End: now})
	svc.PlayerStats().CommitSession("Alice", "game1", 30, now)
	svc.Snapshots().Append(snap(now, "Alice"))

	out := NewQueryService(svc).AverageStatistics()
	assert.InDelta(t, 6.0, out.Lobbies.AverageSize, 0.001)
	assert.InDelta(t, 30.0, out.Sessions.AverageLength, 0.001)
	assert.InDelta(t, 30.0, out.Players.AveragePlaytimePerPlayer, 0.001)
	assert.InDelta(t, 1.0, out.Players.AverageSessionsPerPlayer, 0.001)
}

func TestPeakTimes_UniquePerHour(t *testing.T) {
	svc := seededService()
	ts := time.Date(2026, 3, 4, 5, 0, 0, 0, time.Local)
	svc.Snapshots().Append(snap(ts, "Alice", "Bob"))
	svc.Snapshots().Append(snap(ts.Add(10*time.Minute), "Alice"))

	peaks := NewQueryService(svc).PeakTimes()
	require.Len(t, peaks, 1)
	assert.Equal(t, 5, peaks[0].Hour)
	// Alice counted once despite two snapshots in the hour
	assert.Equal(t, 2, peaks[0].Count)
}

func TestDailyActivity(t *testing.T) {
	svc := seededService()
	now := time.Now()
	s1 := snap(now.Add(-2*time.Hour), "Alice", "Bob")
	s2 := snap(now.Add(-time.Hour), "Alice")
	svc.Snapshots().Append(s1)
	svc.Snapshots().Append(s2)

	daily := NewQueryService(svc).DailyActivity(7)
	total := 0
	for _, v := range daily {
		total += v
	}
	assert.Equal(t, 3, total)
}

func TestPopularLobbies_OrderedByAppearances(t *testing.T) {
	svc := seededService()
	now := time.Now()
	svc.LobbyStats().Observe("game1", "Quiet", 2, now)
	svc.LobbyStats().Observe("game1", "Busy", 4, now)
	svc.LobbyStats().Observe("game1", "Busy", 4, now.Add(5*time.Minute))

	lobbies := NewQueryService(svc).PopularLobbies(10)
	require.Len(t, lobbies, 2)
	assert.Equal(t, "Busy", lobbies[0].LobbyName)
}

func TestLobbySummary_ExtractsHosts(t *testing.T) {
	svc := seededService()
	now := time.Now()
	svc.LobbyStats().Observe("game1", "Bob's Race", 4, now)
	svc.LobbyStats().Observe("game1", "Bob's Rematch", 4, now)
	svc.LobbyStats().Observe("game1", "Open Lobby", 4, now)

	summary := NewQueryService(svc).LobbySummary()
	assert.Equal(t, 3, summary.TotalLobbies)
	require.NotEmpty(t, summary.TopHosts)
	assert.Equal(t, "Bob", summary.TopHosts[0].Host)
	assert.Equal(t, 2, summary.TopHosts[0].Count)
}

func TestLobbySummary_LongestActive(t *testing.T) {
	svc := seededService()
	now := time.Now()
	svc.LobbyStats().Observe("game1", "Short Run", 4, now.Add(-time.Hour))
	svc.LobbyStats().Observe("game1", "Short Run", 4, now.Add(-55*time.Minute))
	svc.LobbyStats().Observe("game1", "Marathon", 4, now.Add(-time.Hour))
	svc.LobbyStats().Observe("game1", "Marathon", 4, now.Add(-20*time.Minute))

	summary := NewQueryService(svc).LobbySummary()
	require.NotNil(t, summary.LongestActive)
	assert.Equal(t, "Marathon", summary.LongestActive.LobbyName)
	assert.Greater(t, summary.LongestActive.AverageDuration, 0.0)

	empty := NewQueryService(seededService()).LobbySummary()
	assert.Nil(t, empty.LongestActive)
}

func TestSessionSummary(t *testing.T) {
	svc := seededService()
	now := time.Now()
	svc.Sessions().Append(models.SessionRecord{Player: "Alice", DurationMinutes: 10, Start: now, End: now})
	svc.Sessions().Append(models.SessionRecord{Player: "Bob", DurationMinutes: 50, Start: now, End: now})

	summary := NewQueryService(svc).SessionSummary()
	assert.Equal(t, 2, summary.TotalSessions)
	assert.InDelta(t, 30.0, summary.AverageLength, 0.001)
	require.NotNil(t, summary.LongestSession)
	assert.Equal(t, "Bob", summary.LongestSession.Player)

	empty := NewQueryService(seededService()).SessionSummary()
	assert.Nil(t, empty.LongestSession)
}

func TestMonthlyActivePlayers(t *testing.T) {
	svc := seededService()
	now := time.Now()
	svc.Snapshots().Append(snap(now.AddDate(0, 0, -40), "Old"))
	svc.Snapshots().Append(snap(now.AddDate(0, 0, -5), "Alice", "Bob"))
	svc.Snapshots().Append(snap(now.AddDate(0, 0, -1), "Alice"))

	assert.Equal(t, 2, NewQueryService(svc).MonthlyActivePlayers())
}

func TestActivityHeatmap_KeyFormat(t *testing.T) {
	svc := seededService()
	// Wednesday 05:00
	ts := time.Date(2026, 3, 4, 5, 0, 0, 0, time.Local)
	s := snap(ts, "Alice", "Bob")
	svc.Snapshots().Append(s)

	heatmap := NewQueryService(svc).ActivityHeatmap()
	assert.Equal(t, 2, heatmap["Wed-05"])
}

func TestWeekdayPatterns(t *testing.T) {
	svc := seededService()
	ts := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local) // Wednesday
	svc.Snapshots().Append(snap(ts, "Alice", "Bob"))
	svc.Snapshots().Append(snap(ts.Add(time.Hour), "Alice", "Bob"))

	patterns := NewQueryService(svc).WeekdayPatterns()
	require.Len(t, patterns, 7)
	assert.Equal(t, "Wednesday", patterns[3].Name)
	assert.InDelta(t, 1.0, patterns[3].AveragePlayers, 0.001)
	assert.Equal(t, 0.0, patterns[0].AveragePlayers)
}

func TestCrossGamePlayers(t *testing.T) {
	svc := seededService()
	now := time.Now()
	svc.PlayerStats().Touch("Alice", "game1", now)
	svc.PlayerStats().Touch("Alice", "game2", now)
	svc.PlayerStats().Touch("Bob", "game1", now)

	players := NewQueryService(svc).CrossGamePlayers()
	assert.Equal(t, []string{"Alice"}, players)
}

func TestSnapshotsSince(t *testing.T) {
	svc := seededService()
	now := time.Now()
	svc.Snapshots().Append(snap(now.Add(-48 * time.Hour)))
	svc.Snapshots().Append(snap(now.Add(-2 * time.Hour)))

	assert.Len(t, NewQueryService(svc).SnapshotsSince(24), 1)
}

func TestQueries_SafeDuringConcurrentCycles(t *testing.T) {
	svc := NewCollectorService(testConfig())
	qs := NewQueryService(svc)

	rosters := [][]string{
		{"Alice", "Bob", "Cara"},
		{"Alice", "Dave"},
		{},
	}
	lobby := models.Lobby{
		Name: "Alice's Race", PlayerCount: 2, MaxPlayers: 12,
		Players: []string{"Alice", "Bob"}, IsActive: true,
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		now := time.Now()
		for i := 0; i < 200; i++ {
			roster := rosters[i%len(rosters)]
			svc.RecordSnapshot(now.Add(time.Duration(i)*time.Minute), map[string]*models.GameStatus{
				"game1": {Players: roster, Lobbies: []models.Lobby{lobby}},
				"game2": {Players: roster},
			})
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			qs.TopPlayers(10)
			qs.PlayerStats("Alice")
			qs.SocialStats("Alice")
			qs.PopularLobbies(5)
			qs.AverageStatistics()
			svc.ActiveSessionCount()
			svc.TrackedPlayers()
		}
	}()

	wg.Wait()
	assert.Equal(t, 100, svc.SnapshotCount())
}
