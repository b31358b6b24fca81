package main

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numPlayers   = 200
)

var leaderboardKinds = []string{"active", "streak", "diverse", "social"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== MPSD Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Players: %d\n\n", numWorkers, testDuration, numPlayers)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: cheap lookups, mostly cache hits
	fmt.Println("\n--- Phase 1: Lookup-heavy load ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doGetTopPlayers(rng)
		case r < 0.70:
			return doGetLeaderboard(rng)
		case r < 0.90:
			return doGetPlayer(rng)
		default:
			return doGetPopularLobbies(rng)
		}
	})

	// Phase 2: analytics queries that walk the full snapshot history
	fmt.Println("\n--- Phase 2: Analytics-heavy load ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.20:
			return doGet("/retention?days=7", "GET /retention")
		case r < 0.40:
			return doGet("/growth?days=30", "GET /growth")
		case r < 0.55:
			return doGet("/prediction", "GET /prediction")
		case r < 0.70:
			return doGet("/averages", "GET /averages")
		case r < 0.85:
			return doGet("/activity/heatmap", "GET /activity/heatmap")
		default:
			return doGet("/activity/weekdays", "GET /activity/weekdays")
		}
	})

	// Phase 3: everything mixed
	fmt.Println("\n--- Phase 3: Mixed load ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.25:
			return doGetTopPlayers(rng)
		case r < 0.45:
			return doGetLeaderboard(rng)
		case r < 0.60:
			return doGetPlayer(rng)
		case r < 0.70:
			return doGet("/sessions/summary", "GET /sessions/summary")
		case r < 0.80:
			return doGet("/lobbies/summary", "GET /lobbies/summary")
		case r < 0.90:
			return doGet("/activity/daily?days=7", "GET /activity/daily")
		default:
			return doGet("/snapshots?hours=24", "GET /snapshots")
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 92))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-26s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 92))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

// doGet treats 404 as success: player lookups against a fresh daemon
// legitimately miss.
func doGet(path, label string) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{label, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	ok := resp.StatusCode == 200 || resp.StatusCode == 404
	return result{label, resp.StatusCode, lat, !ok}
}

func doGetTopPlayers(rng *rand.Rand) result {
	limit := rng.Intn(20) + 1
	return doGet(fmt.Sprintf("/players/top?limit=%d", limit), "GET /players/top")
}

func doGetLeaderboard(rng *rand.Rand) result {
	kind := leaderboardKinds[rng.Intn(len(leaderboardKinds))]
	return doGet("/leaderboard?kind="+kind, "GET /leaderboard")
}

func doGetPlayer(rng *rand.Rand) result {
	name := fmt.Sprintf("Player%d", rng.Intn(numPlayers))
	return doGet("/player?name="+name, "GET /player")
}

func doGetPopularLobbies(rng *rand.Rand) result {
	limit := rng.Intn(10) + 1
	return doGet(fmt.Sprintf("/lobbies/popular?limit=%d", limit), "GET /lobbies/popular")
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
