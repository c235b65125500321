// Package repository defines the assessment store interface and errors.
package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/zentro/shadowscout/internal/domain/model"
	"github.com/zentro/shadowscout/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: overall score DESC, then shadowID ASC (deterministic).
// "Less" means ranks earlier, so in-order traversal produces the talent
// ranking from best to worst.

// scoreScale controls fixed-point scaling from float64. Overall scores are
// bounded to [0, 100], so this cannot overflow int64.
const scoreScale = 1_000_000_000_000

type scoreFP int64

func toFixedPoint(x float64) scoreFP {
	return scoreFP(x * scoreScale)
}

// treap node
type node struct {
	id    string
	score scoreFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aScore, aID) ranks earlier than (bScore, bID).
func less(aScore scoreFP, aID string, bScore scoreFP, bID string) bool {
	if aScore != bScore {
		return aScore > bScore // higher score ranks earlier
	}
	return aID < bID // tie-breaker by id asc
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// scoreToPriority keeps higher scores higher in the treap.
func scoreToPriority(score scoreFP) uint64 {
	const offset = uint64(1) << 63 // shift negatives into positive range
	return uint64(score) + offset
}

func insert(n *node, id string, score scoreFP) *node {
	if n == nil {
		return &node{id: id, score: score, prio: scoreToPriority(score), size: 1}
	}
	if less(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, score scoreFP) *node {
	if n == nil {
		return nil
	}
	if score == n.score && id == n.id {
		// Merge children by rotating highest priority up until leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, score)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, score)
		}
	} else if less(score, id, n.score, n.id) {
		n.left = deleteNode(n.left, id, score)
	} else {
		n.right = deleteNode(n.right, id, score)
	}
	fix(n)
	return n
}

// collectIDs appends up to limit shadow IDs in rank order.
func collectIDs(n *node, limit int, out *[]string) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectIDs(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, n.id)
	}
	if len(*out) < limit {
		collectIDs(n.right, limit, out)
	}
}

// TreapStore is the in-memory assessment store.
type TreapStore struct {
	mu   sync.RWMutex
	root *node
	byID map[string]model.Assessment

	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		metricsUpdateInterval: 5 * time.Second,
		byID:                  make(map[string]model.Assessment),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	s.startMetricsUpdater(ctx)

	return s
}

// Close gracefully shuts down the background metrics goroutine.
func (s *TreapStore) Close() error {
	select {
	case <-s.stopChan:
		// Channel already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// Put implements Store.Put with O(log n) expected time. The write is an
// unconditional replace: assessments supersede earlier ones.
func (s *TreapStore) Put(ctx context.Context, a model.Assessment) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	ns := toFixedPoint(a.OverallScore)

	s.mu.Lock()
	if old, ok := s.byID[a.ShadowID]; ok {
		s.root = deleteNode(s.root, a.ShadowID, toFixedPoint(old.OverallScore))
	}
	s.byID[a.ShadowID] = a
	s.root = insert(s.root, a.ShadowID, ns)
	count := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateStoreAssessments(count)
	return nil
}

// Get returns the latest assessment for an identity.
func (s *TreapStore) Get(ctx context.Context, shadowID string) (model.Assessment, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[shadowID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Assessment{}, ErrNotFound
	}
	return a, nil
}

// Snapshot returns a consistent copy of every stored assessment in ranking
// order. The copy is taken under one read lock so a concurrent Put cannot
// mix old and new state into the result.
func (s *TreapStore) Snapshot(ctx context.Context) []model.Assessment {
	start := time.Now()

	s.mu.RLock()
	ids := make([]string, 0, len(s.byID))
	collectIDs(s.root, len(s.byID), &ids)
	out := make([]model.Assessment, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.byID[id]; ok {
			out = append(out, a)
		}
	}
	s.mu.RUnlock()

	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordStoreSnapshotDuration(ms)
	metrics.UpdateStoreSnapshotLastUnix(float64(time.Now().Unix()))
	metrics.IncrementStoreSnapshotCount()

	return out
}

// Rank returns the current rank and overall score for an identity.
func (s *TreapStore) Rank(ctx context.Context, shadowID string) (model.TalentEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.byID[shadowID]; !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.TalentEntry{}, ErrNotFound
	}

	entries := s.allEntriesLocked()
	sortEntries(entries)
	assignRanksWithTies(entries)

	for _, entry := range entries {
		if entry.ShadowID == shadowID {
			return entry, nil
		}
	}

	return model.TalentEntry{}, ErrNotFound
}

// TopN returns the top N entries ordered by overall score desc.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]model.TalentEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, n)
	collectIDs(s.root, n, &ids)

	out := make([]model.TalentEntry, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.byID[id]; ok {
			out = append(out, model.TalentEntry{ShadowID: id, Score: a.OverallScore})
		}
	}

	assignRanksWithTies(out)
	return out, nil
}

// Count returns the total number of identities with a stored assessment.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// allEntriesLocked builds unranked entries for every identity. Must hold at
// least a read lock.
func (s *TreapStore) allEntriesLocked() []model.TalentEntry {
	entries := make([]model.TalentEntry, 0, len(s.byID))
	for id, a := range s.byID {
		entries = append(entries, model.TalentEntry{ShadowID: id, Score: a.OverallScore})
	}
	return entries
}

// startMetricsUpdater starts a background goroutine that refreshes store metrics.
func (s *TreapStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateStoreAssessments(s.Count(ctx))
			}
		}
	}()
}

// sortEntries sorts entries by score (descending) and shadowID (ascending)
// to match TopN ordering.
func sortEntries(entries []model.TalentEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ShadowID < entries[j].ShadowID
	})
}

// assignRanksWithTies assigns ranks with proper tie handling. Identities
// with the same score share a rank; ranking is consecutive.
func assignRanksWithTies(entries []model.TalentEntry) {
	if len(entries) == 0 {
		return
	}

	currentRank := 1
	for i := 0; i < len(entries); i++ {
		entries[i].Rank = currentRank

		sameScoreCount := 1
		for j := i + 1; j < len(entries) && entries[j].Score == entries[i].Score; j++ {
			entries[j].Rank = currentRank
			sameScoreCount++
		}

		currentRank++
		i += sameScoreCount - 1
	}
}
