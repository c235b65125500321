// Package repository defines the assessment store interface and errors.
package repository

import (
	"context"

	"github.com/zentro/shadowscout/internal/domain/model"
)

// Store owns the canonical latest Assessment per identity. Writes are full
// replaces: a later assessment supersedes, never mutates, an earlier one.
//
// A persistence collaborator can sit behind this interface; the in-memory
// TreapStore acts as the cache seat in front of it.
type Store interface {
	// Put stores the assessment, replacing any previous one for the identity.
	Put(ctx context.Context, a model.Assessment) error

	// Get returns the latest assessment for an identity.
	// Returns ErrNotFound if the identity is unknown.
	Get(ctx context.Context, shadowID string) (model.Assessment, error)

	// Snapshot returns a consistent copy of every stored assessment, in
	// ranking order. Concurrent writes never mix into an in-flight copy.
	Snapshot(ctx context.Context) []model.Assessment

	// Rank returns the current overall-score rank for an identity.
	// Returns ErrNotFound if the identity is unknown.
	Rank(ctx context.Context, shadowID string) (model.TalentEntry, error)

	// TopN returns the top-N identities ordered by overall score desc.
	TopN(ctx context.Context, n int) ([]model.TalentEntry, error)

	// Count returns the number of identities with a stored assessment.
	Count(ctx context.Context) int
}
