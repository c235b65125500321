// Package service provides the core assessment engine that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	eventqueue "github.com/zentro/shadowscout/internal/adapters/mq/queue"
	workerpool "github.com/zentro/shadowscout/internal/adapters/mq/worker"
	repository "github.com/zentro/shadowscout/internal/adapters/repository"
	"github.com/zentro/shadowscout/internal/domain/career"
	"github.com/zentro/shadowscout/internal/domain/dedupe"
	"github.com/zentro/shadowscout/internal/domain/matching"
	"github.com/zentro/shadowscout/internal/domain/model"
	"github.com/zentro/shadowscout/internal/domain/profile"
	"github.com/zentro/shadowscout/internal/domain/skills"
	"github.com/zentro/shadowscout/pkg/logger"
	"github.com/zentro/shadowscout/pkg/metrics"
)

// ErrNotStarted is returned when an operation is invoked before Start.
var ErrNotStarted = errors.New("service not started")

// ErrMalformedEvent is returned for activity events that carry no record
// matching their kind.
var ErrMalformedEvent = errors.New("malformed activity event")

// Service implements the API dependencies for the assessment engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	deduper    dedupe.Deduper
	eventQueue eventqueue.Queue
	workerPool *workerpool.Pool
	aggregator *skills.Aggregator
	predictor  *career.Predictor
	matcher    *matching.Matcher

	// Per-identity activity journals. Each identity's bundle grows as
	// events arrive and is re-assessed as a whole after every fold.
	journalMu sync.Mutex
	journal   map[string]model.ActivityBundle

	// Configuration
	workerCount        int
	queueSize          int
	dedupeSize         int
	snapshotInterval   time.Duration
	overallWeights     map[string]float64
	defaultSkillWeight float64
	baseMarketValue    int
	matchThreshold     float64
	catalog            []career.Template

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithSnapshotInterval sets how often the default store refreshes its
// metrics snapshot.
func WithSnapshotInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.snapshotInterval = interval
		}
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

// WithStore sets a pre-built assessment store, replacing the default.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithOverallWeights sets the per-skill weights used for the overall score.
func WithOverallWeights(weights map[string]float64) Option {
	return func(s *Service) {
		if len(weights) > 0 {
			s.overallWeights = weights
		}
	}
}

// WithDefaultSkillWeight sets the weight applied to skills absent from the
// overall weight table.
func WithDefaultSkillWeight(weight float64) Option {
	return func(s *Service) {
		if weight > 0 {
			s.defaultSkillWeight = weight
		}
	}
}

// WithBaseMarketValue sets the market-value baseline in whole currency units.
func WithBaseMarketValue(value int) Option {
	return func(s *Service) {
		if value > 0 {
			s.baseMarketValue = value
		}
	}
}

// WithMatchThreshold sets the minimum compatibility score for team matches.
func WithMatchThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold >= 0 && threshold <= 100 {
			s.matchThreshold = threshold
		}
	}
}

// WithCareerCatalog replaces the built-in career path catalog.
func WithCareerCatalog(catalog []career.Template) Option {
	return func(s *Service) {
		if len(catalog) > 0 {
			s.catalog = catalog
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:        runtime.NumCPU() * 4,
		queueSize:          100000,
		dedupeSize:         50000,
		defaultSkillWeight: 0.1,
		baseMarketValue:    career.DefaultBaseValue,
		matchThreshold:     matching.DefaultThreshold,
		journal:            make(map[string]model.ActivityBundle),
		logger:             nil, // Will be replaced when service starts
	}

	// Apply all options
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

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting assessment service...")

	// Initialize components
	if s.store == nil {
		s.store = repository.NewTreapStore(ctx,
			repository.WithMetricsUpdateInterval(s.snapshotInterval),
		)
		s.logger.Info(ctx, "using treap store")
	}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)
	s.aggregator = skills.NewAggregator(
		skills.WithOverallWeights(s.overallWeights, s.defaultSkillWeight),
	)
	s.predictor = career.NewPredictor(
		career.WithCatalog(s.catalog),
	)
	s.matcher = matching.NewMatcher(
		matching.WithThreshold(s.matchThreshold),
	)

	// The service itself folds events into journals, so it is the
	// assessor the pool drains the queue into.
	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "assessment service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
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

	s.logger.Info(context.Background(), "stopping assessment service...")

	// Shut down the worker pool; this closes the queue first so workers
	// drain what is already buffered.
	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(context.Background())
	}

	// Close assessment store
	if s.store != nil {
		if closer, ok := s.store.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "assessment service stopped")
}

// AnalyzePerformance assesses a full activity bundle for an identity,
// persists the resulting assessment and replaces the identity's journal with
// the given bundle.
func (s *Service) AnalyzePerformance(ctx context.Context, shadowID string, bundle model.ActivityBundle) (model.Assessment, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return model.Assessment{}, ErrNotStarted
	}

	start := time.Now()

	s.journalMu.Lock()
	s.journal[shadowID] = bundle
	s.journalMu.Unlock()

	assessment := s.compute(shadowID, bundle)
	if err := s.store.Put(ctx, assessment); err != nil {
		return model.Assessment{}, err
	}

	metrics.RecordAssessmentComputed()
	metrics.RecordAssessmentLatency(float64(time.Since(start).Milliseconds()))

	s.logger.Debug(ctx, "assessment computed",
		logger.String("shadowID", shadowID),
		logger.Float64("overall", assessment.OverallScore),
	)

	return assessment, nil
}

// Assess folds a single activity event into its identity's journal and
// re-assesses the grown bundle. It implements the worker pool's assessor
// port.
func (s *Service) Assess(ctx context.Context, e workerpool.Event) error {
	if e.Record() == nil {
		return ErrMalformedEvent
	}

	s.journalMu.Lock()
	bundle := s.journal[e.ShadowID].Apply(e)
	s.journal[e.ShadowID] = bundle
	s.journalMu.Unlock()

	assessment := s.compute(e.ShadowID, bundle)
	if err := s.store.Put(ctx, assessment); err != nil {
		return err
	}

	metrics.RecordAssessmentComputed()
	return nil
}

// compute runs the full scoring pipeline over a bundle.
func (s *Service) compute(shadowID string, bundle model.ActivityBundle) model.Assessment {
	breakdown := skills.Breakdown(bundle)
	overall := s.aggregator.Overall(breakdown)
	strengths := profile.Strengths(breakdown)
	weaknesses := profile.Weaknesses(breakdown)
	path := s.predictor.Predict(breakdown)
	value := career.MarketValue(overall, breakdown, s.baseMarketValue)

	return model.Assessment{
		ShadowID:        shadowID,
		Timestamp:       time.Now().UTC(),
		OverallScore:    overall,
		SkillBreakdown:  breakdown,
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		Recommendations: profile.Recommendations(weaknesses, path),
		CareerPath:      path,
		MarketValue:     value,
	}
}

// UserInsights returns the stored assessment for an identity enriched with
// derived insights. Unknown identities yield repository.ErrNotFound.
func (s *Service) UserInsights(ctx context.Context, shadowID string) (model.InsightReport, error) {
	assessment, err := s.store.Get(ctx, shadowID)
	if err != nil {
		return model.InsightReport{}, err
	}

	topStrengths := assessment.Strengths
	if len(topStrengths) > 3 {
		topStrengths = topStrengths[:3]
	}
	improvementAreas := assessment.Weaknesses
	if len(improvementAreas) > 2 {
		improvementAreas = improvementAreas[:2]
	}

	return model.InsightReport{
		Assessment: assessment,
		Insights: model.Insights{
			TopStrengths:     topStrengths,
			ImprovementAreas: improvementAreas,
			CareerTrajectory: assessment.CareerPath,
			MarketPosition:   career.MarketPosition(assessment.MarketValue),
			NextMilestones:   career.NextMilestones(assessment),
		},
	}, nil
}

// TeamMatches ranks every other stored identity by compatibility with the
// given one. Unknown identities yield an empty result, not an error.
func (s *Service) TeamMatches(ctx context.Context, shadowID string, req model.ProjectRequirements) ([]model.TeamMatch, error) {
	start := time.Now()

	self, err := s.store.Get(ctx, shadowID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordMatchQuery(float64(time.Since(start).Milliseconds()), 0)
			return []model.TeamMatch{}, nil
		}
		return nil, err
	}

	peers := s.store.Snapshot(ctx)
	matches := s.matcher.FindMatches(self, peers, req)

	metrics.RecordMatchQuery(float64(time.Since(start).Milliseconds()), len(matches))

	return matches, nil
}

// SeenAndRecord atomically checks if an event id was seen and records it if
// not. Returns true if the event was already seen, false if it was newly
// recorded. This is the ONLY method for deduplication - thread-safe and
// atomic.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordActivityDuplicate()
	}
	return seen
}

// Unrecord removes an event ID from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits an activity event for asynchronous processing.
func (s *Service) Enqueue(ctx context.Context, e model.ActivityEvent) bool {
	s.logger.Debug(ctx, "enqueueing activity event",
		logger.String("eventID", e.EventID),
		logger.String("shadowID", e.ShadowID),
		logger.String("kind", e.Kind),
	)

	success := s.eventQueue.Enqueue(ctx, e)
	if success {
		metrics.UpdateQueueSize(s.eventQueue.Len(ctx))
	}
	return success
}

// TopTalents returns the top N talents by overall score.
func (s *Service) TopTalents(ctx context.Context, n int) ([]model.TalentEntry, error) {
	return s.store.TopN(ctx, n)
}

// TalentRank returns the rank and score for a given identity.
func (s *Service) TalentRank(ctx context.Context, shadowID string) (model.TalentEntry, error) {
	return s.store.Rank(ctx, shadowID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.eventQueue.Len(ctx)
		totalTalents := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalTalents"] = totalTalents

		// Update metrics
		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreAssessments(totalTalents)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
