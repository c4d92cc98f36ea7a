// Package service provides the core business service that implements the
// dependencies required by the HTTP API: it owns the live roster, accepts
// run requests and executes them through the run queue and worker pool.
package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	runqueue "github.com/okian/laddersim/internal/adapters/mq/queue"
	workerpool "github.com/okian/laddersim/internal/adapters/mq/worker"
	repository "github.com/okian/laddersim/internal/adapters/repository"
	"github.com/okian/laddersim/internal/domain/dedupe"
	"github.com/okian/laddersim/internal/domain/model"
	"github.com/okian/laddersim/internal/sim"
	"github.com/okian/laddersim/pkg/logger"
	"github.com/okian/laddersim/pkg/metrics"
)

// Service wires the roster, run store, dedupe cache, queue and workers.
type Service struct {
	mu sync.RWMutex

	// Core components.
	roster     *repository.Roster
	runs       *repository.RunStore
	deduper    dedupe.Deduper
	runQueue   runqueue.Queue
	workerPool *workerpool.Pool

	// Configuration.
	workerCount int
	queueSize   int
	dedupeSize  int
	seedRoster  int
	baseRating  float64
	minRating   float64

	// Default rating-update knobs for requests that omit them.
	kFactor             float64
	arcadeMode          bool
	streakBonusFraction float64
	drawProbability     float64
	decayPerDay         float64

	// State.
	started bool

	// Logging.
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of run workers. More than one allows
// concurrent experiments, each executed against its own roster clone.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the run request queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the run-id idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithSeedRoster pre-populates the roster with count sample participants.
func WithSeedRoster(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.seedRoster = count
		}
	}
}

// WithBaseRating sets the initial rating for new participants.
func WithBaseRating(rating float64) Option {
	return func(s *Service) {
		if rating > 0 {
			s.baseRating = rating
		}
	}
}

// WithMinRating sets the decay floor.
func WithMinRating(rating float64) Option {
	return func(s *Service) {
		if rating >= 0 {
			s.minRating = rating
		}
	}
}

// WithRatingDefaults sets the default rating-update knobs applied to run
// requests that omit them.
func WithRatingDefaults(kFactor float64, arcadeMode bool, streakBonusFraction, drawProbability, decayPerDay float64) Option {
	return func(s *Service) {
		s.kFactor = kFactor
		s.arcadeMode = arcadeMode
		s.streakBonusFraction = streakBonusFraction
		s.drawProbability = drawProbability
		s.decayPerDay = decayPerDay
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Service with the provided options.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: 1,
		queueSize:   1024,
		dedupeSize:  50000,
		baseRating:  1000.0,
		minRating:   0.0,
		kFactor:     sim.DefaultKFactor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting simulation service...")

	s.roster = repository.NewRoster(repository.WithBaseRating(s.baseRating))
	for i := 0; i < s.seedRoster; i++ {
		id := "player-" + strconv.Itoa(i+1)
		if err := s.roster.Add(ctx, id, s.baseRating); err != nil {
			return fmt.Errorf("seed roster: %w", err)
		}
	}

	s.runs = repository.NewRunStore()
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.runQueue = runqueue.NewInMemoryQueue(
		runqueue.WithCapacity(s.queueSize),
	)
	s.workerPool = workerpool.NewPool(s.workerCount, s.runQueue, s)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "simulation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("rosterSize", s.seedRoster),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping simulation service...")

	if s.runQueue != nil {
		_ = s.runQueue.Close()
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	s.started = false
	s.logger.Info(context.Background(), "simulation service stopped")
}

// DefaultRun returns a run request template populated with the service's
// configured defaults. Callers override the fields a client supplied.
func (s *Service) DefaultRun() model.RunRequest {
	return model.RunRequest{
		KFactor:             s.kFactor,
		ArcadeMode:          s.arcadeMode,
		StreakBonusFraction: s.streakBonusFraction,
		DrawProbability:     s.drawProbability,
		DecayPerDay:         s.decayPerDay,
	}
}

// SeenAndRecord atomically checks if a run id was seen and records it if
// not. Returns true if the id was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	return s.deduper.SeenAndRecord(ctx, id)
}

// Unrecord removes a run id from the seen set, allowing a resubmission.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the number of tracked run ids.
func (s *Service) Size(ctx context.Context) int {
	return s.deduper.Size(ctx)
}

// SubmitRun validates and enqueues a run request for asynchronous
// execution. Returns false on queue backpressure.
func (s *Service) SubmitRun(ctx context.Context, req model.RunRequest) bool {
	s.runs.Create(ctx, req.RunID)
	if ok := s.runQueue.Enqueue(ctx, req); !ok {
		s.runs.Delete(ctx, req.RunID)
		return false
	}
	metrics.RecordRunSubmitted()
	return true
}

// ExecuteRun runs one queued batch against a clone of the live roster and,
// on success, commits the final participant states back. Implements the
// worker pool's Executor interface.
func (s *Service) ExecuteRun(ctx context.Context, req model.RunRequest) error {
	s.runs.MarkRunning(ctx, req.RunID)

	clone := s.roster.Clone(ctx)
	simulator := sim.New(sim.FromRequest(req, s.minRating))
	summary, err := simulator.Run(ctx, clone)
	s.runs.Complete(ctx, req.RunID, summary, err)
	if err != nil {
		return fmt.Errorf("run %s: %w", req.RunID, err)
	}

	s.roster.ApplyState(ctx, summary.Final)
	s.logger.Info(ctx, "run completed",
		logger.String("runID", req.RunID),
		logger.Int("contests", summary.Stats.Contests),
		logger.Float64("meanRating", summary.Stats.MeanRating),
	)
	return nil
}

// Run returns the record for a submitted run.
func (s *Service) Run(ctx context.Context, runID string) (repository.RunRecord, error) {
	return s.runs.Get(ctx, runID)
}

// AddParticipant registers a new participant on the live roster.
func (s *Service) AddParticipant(ctx context.Context, id string, initialRating float64) error {
	return s.roster.Add(ctx, id, initialRating)
}

// TopN returns the top-n leaderboard entries.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	return s.roster.TopN(ctx, n)
}

// Rank returns the leaderboard entry for one participant.
func (s *Service) Rank(ctx context.Context, id string) (repository.Entry, error) {
	return s.roster.Rank(ctx, id)
}

// Snapshot returns deep copies of all participants.
func (s *Service) Snapshot(ctx context.Context) []model.Participant {
	return s.roster.Snapshot(ctx)
}

// GetStats returns service statistics for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"worker_count": s.workerCount,
	}
	if s.roster != nil {
		stats["roster_size"] = s.roster.Len(ctx)
	}
	if s.runs != nil {
		stats["runs_tracked"] = s.runs.Count(ctx)
	}
	if s.runQueue != nil {
		stats["queue_size"] = s.runQueue.Len(ctx)
	}
	if s.deduper != nil {
		stats["dedupe_size"] = s.deduper.Size(ctx)
	}
	return stats
}
