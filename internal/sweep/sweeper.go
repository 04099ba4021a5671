// Package sweep drives the recurring full-registry scan. Each sweep fans
// out over a bounded worker pool, waits for every location to resolve, and
// only then publishes the complete result set: readers always see one
// sweep's results whole, never a mix of two.
package sweep

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/can-bmu/restaurant-monitor/internal/models"
	"github.com/can-bmu/restaurant-monitor/internal/resolve"
	"github.com/can-bmu/restaurant-monitor/internal/storage"
)

// Sweeper owns the published snapshot and the schedule that refreshes it.
type Sweeper struct {
	resolver  *resolve.Resolver
	locations []models.Location
	interval  time.Duration
	workers   int
	limiter   *rate.Limiter
	store     storage.Storer // may be nil when persistence is disabled

	mu       sync.RWMutex // guards snapshot
	snapshot *models.Snapshot

	sweepMu  sync.Mutex // at most one sweep mutates shared state at a time
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a Sweeper. requestRate caps outbound requests per second
// across all workers; this is politeness toward the probed platforms, not
// a correctness control. store may be nil.
func New(resolver *resolve.Resolver, locations []models.Location, interval time.Duration, workers int, requestRate float64, store storage.Storer) *Sweeper {
	if workers < 1 {
		workers = 1
	}
	limit := rate.Limit(requestRate)
	if limit <= 0 {
		// A zero limiter never admits anything past its burst; treat a
		// non-positive rate as "no pacing" instead of hanging the sweep.
		limit = rate.Inf
	}
	return &Sweeper{
		resolver:  resolver,
		locations: locations,
		interval:  interval,
		workers:   workers,
		limiter:   rate.NewLimiter(limit, workers),
		store:     store,
		stopChan:  make(chan struct{}),
	}
}

// Seed installs a previously persisted snapshot as the starting state.
// Called once before Start.
func (s *Sweeper) Seed(snap *models.Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

// Start begins the periodic sweeping process, with an immediate first sweep.
func (s *Sweeper) Start(ctx context.Context) {
	log.Printf("starting sweeper: %d locations, interval %s, %d workers", len(s.locations), s.interval, s.workers)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.safeSweep(ctx)

		for {
			select {
			case <-ticker.C:
				s.safeSweep(ctx)
			case <-s.stopChan:
				log.Println("stopping sweeper...")
				return
			}
		}
	}()
}

// Stop shuts the schedule down and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	close(s.stopChan)
	s.wg.Wait()
	log.Println("sweeper stopped")
}

// safeSweep keeps a failing sweep from killing the recurring schedule; the
// next tick is the retry mechanism.
func (s *Sweeper) safeSweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sweep panicked, schedule continues: %v", r)
		}
	}()
	s.Sweep(ctx)
}

// Sweep runs one complete pass over every registered location and publishes
// the result set atomically. Sweeps are serialized: an on-demand call that
// overlaps the timer simply waits its turn. Returns the published snapshot;
// if ctx is canceled the pass is discarded and the previous one is returned.
func (s *Sweeper) Sweep(ctx context.Context) *models.Snapshot {
	s.sweepMu.Lock()
	defer s.sweepMu.Unlock()

	records := make(map[string]models.StatusRecord, len(s.locations))
	var recMu sync.Mutex

	workers := s.workers
	if workers > len(s.locations) && len(s.locations) > 0 {
		workers = len(s.locations)
	}

	jobs := make(chan models.Location)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for loc := range jobs {
				rec := s.check(ctx, loc)
				recMu.Lock()
				records[loc.URL] = rec
				recMu.Unlock()
			}
		}()
	}

	for _, loc := range s.locations {
		jobs <- loc
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		// A canceled sweep marks every still-pending location as an
		// interruption error, which says nothing about the venues.
		// Keep the last complete result set instead of replacing it.
		log.Printf("sweep abandoned, keeping previous snapshot: %v", ctx.Err())
		return s.Snapshot()
	}

	snap := &models.Snapshot{Records: records, CompletedAt: time.Now()}
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	if s.store != nil {
		// Detached from the caller so a request abort or shutdown signal
		// arriving after the sweep finished cannot lose the write.
		if err := s.store.SaveSnapshot(context.WithoutCancel(ctx), snap); err != nil {
			log.Printf("error persisting snapshot: %v", err)
		}
	}
	return snap
}

// check resolves a single location, pacing through the shared limiter.
func (s *Sweeper) check(ctx context.Context, loc models.Location) models.StatusRecord {
	if err := s.limiter.Wait(ctx); err != nil {
		return models.StatusRecord{
			Location: loc,
			Verdict: models.Verdict{
				Status: models.StatusError,
				Reason: "sweep interrupted: " + err.Error(),
				Source: models.SourceNetwork,
			},
			CheckedAt: time.Now(),
		}
	}
	return models.StatusRecord{
		Location:  loc,
		Verdict:   s.resolver.Resolve(ctx, loc),
		CheckedAt: time.Now(),
	}
}

// Snapshot returns the most recently published result set, or nil when no
// sweep has completed and nothing was persisted. The returned snapshot is
// immutable; callers must not modify it.
func (s *Sweeper) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Interval reports the configured sweep interval.
func (s *Sweeper) Interval() time.Duration {
	return s.interval
}
