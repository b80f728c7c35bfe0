package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goDigest "github.com/MrEthical07/goDigest"
	"github.com/MrEthical07/goDigest/credstore"
)

const benchPassword = "correct horse battery staple"

func main() {
	var (
		users       = flag.Int("users", 1000, "number of credentials to seed")
		concurrency = flag.Int("concurrency", runtime.NumCPU()*2, "number of concurrent workers")
		ops         = flag.Int("ops", 20000, "operations per phase (hash + verify + authenticate)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", credstore.DefaultPrefix, "credential key prefix")
		legacy      = flag.String("legacy", "5", "identifier of the algorithm seeded credentials use")
		roundsMin   = flag.Int("rounds-min", 0, "override the minimum round count")
		roundsMax   = flag.Int("rounds-max", 0, "override the maximum round count")
	)
	flag.Parse()

	if *users <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "users, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg := goDigest.DefaultConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true
	if *roundsMin > 0 {
		cfg.Rounds.Min = *roundsMin
	}
	if *roundsMax > 0 {
		cfg.Rounds.Max = *roundsMax
	}
	digester, err := goDigest.New().WithConfig(cfg).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build digester: %v\n", err)
		os.Exit(1)
	}
	defer digester.Close()

	seedAlg, ok := digester.Registry().Resolve(*legacy)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown legacy algorithm %q\n", *legacy)
		os.Exit(2)
	}

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	store := credstore.NewRedisStore(client, *prefix)

	hashes := make([]string, *users)
	fmt.Printf("seeding %d $%s$ credentials...\n", *users, seedAlg.Identifier)
	startSeed := time.Now()
	for i := range hashes {
		h, err := seedAlg.Engine.Generate([]byte(benchPassword))
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed hash failed: %v\n", err)
			os.Exit(1)
		}
		hashes[i] = h
		if err := store.Set(ctx, userID(i), h); err != nil {
			fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	plain := []byte(benchPassword)

	hashStats := runPhase(*ops, *concurrency, 7919, func(_ *rand.Rand) bool {
		_, err := digester.HashPassword(plain)
		return err == nil
	})
	verifyStats := runPhase(*ops, *concurrency, 6151, func(r *rand.Rand) bool {
		return digester.MatchesPassword(plain, hashes[r.Intn(len(hashes))]).Matches
	})
	authStats := runPhase(*ops, *concurrency, 4099, func(r *rand.Rand) bool {
		res, err := digester.Authenticate(ctx, store, userID(r.Intn(len(hashes))), plain)
		return err == nil && res.Matches
	})

	fmt.Println("---- results ----")
	printStats("hash", hashStats)
	printStats("verify", verifyStats)
	printStats("authenticate", authStats)

	snap := digester.MetricsSnapshot()
	fmt.Printf("upgrades: issued=%d persisted=%d failed=%d\n",
		snap.Counters[goDigest.MetricUpgradeIssued],
		snap.Counters[goDigest.MetricUpgradePersisted],
		snap.Counters[goDigest.MetricUpgradeFailed],
	)
}

func userID(i int) string {
	return fmt.Sprintf("user-%d", i)
}

// runPhase runs op ops times across concurrency workers; op reports success.
func runPhase(ops, concurrency int, seed int64, op func(r *rand.Rand) bool) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*seed))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				ok := op(r)
				d := time.Since(t0)
				if !ok {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
