// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/zentro/shadowscout/internal/adapters/repository"
	"github.com/zentro/shadowscout/internal/domain/dedupe"
	"github.com/zentro/shadowscout/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes an activity event for async processing. Returns false
	// on backpressure.
	Enqueue(ctx context.Context, e model.ActivityEvent) bool

	// AnalyzePerformance assesses a full bundle synchronously.
	AnalyzePerformance(ctx context.Context, shadowID string, bundle model.ActivityBundle) (model.Assessment, error)

	// Read operations expose assessment and ranking data.
	UserInsights(ctx context.Context, shadowID string) (model.InsightReport, error)
	TeamMatches(ctx context.Context, shadowID string, req model.ProjectRequirements) ([]model.TeamMatch, error)
	TopTalents(ctx context.Context, n int) ([]model.TalentEntry, error)
	TalentRank(ctx context.Context, shadowID string) (model.TalentEntry, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	activitiesHandler  *ActivitiesHandler
	assessmentsHandler *AssessmentsHandler
	insightsHandler    *InsightsHandler
	matchesHandler     *MatchesHandler
	talentsHandler     *TalentsHandler
	rankHandler        *RankHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxTalentLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		activitiesHandler:  NewActivitiesHandler(deps),
		assessmentsHandler: NewAssessmentsHandler(deps),
		insightsHandler:    NewInsightsHandler(deps),
		matchesHandler:     NewMatchesHandler(deps),
		talentsHandler:     NewTalentsHandler(deps, maxTalentLimit),
		rankHandler:        NewRankHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/activities", MetricsMiddleware(s.activitiesHandler.HandlePostActivity, "activities"))
	mux.HandleFunc("/assessments", MetricsMiddleware(s.assessmentsHandler.HandlePostAssessment, "assessments"))
	mux.HandleFunc("/insights/", MetricsMiddleware(s.insightsHandler.HandleGetInsights, "insights"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandlePostMatches, "matches"))
	mux.HandleFunc("/talents", MetricsMiddleware(s.talentsHandler.HandleGetTalents, "talents"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}

// activityRequest mirrors the wire schema for POST /activities.
type activityRequest struct {
	model.ActivityEvent
	TS string `json:"ts"`
}

func (a activityRequest) validate() error {
	switch {
	case strings.TrimSpace(a.EventID) == "":
		return errors.New("missing event_id")
	case strings.TrimSpace(a.ShadowID) == "":
		return errors.New("missing shadow_id")
	case strings.TrimSpace(a.Kind) == "":
		return errors.New("missing kind")
	case strings.TrimSpace(a.TS) == "":
		return errors.New("missing ts")
	}
	if _, err := time.Parse(time.RFC3339, a.TS); err != nil {
		return errors.New("invalid ts; must be RFC3339")
	}
	if a.Record() == nil {
		return errors.New("missing record payload for kind " + a.Kind)
	}
	return nil
}

// assessmentRequest mirrors the wire schema for POST /assessments.
type assessmentRequest struct {
	ShadowID   string               `json:"shadow_id"`
	Activities model.ActivityBundle `json:"activities"`
}

func (a assessmentRequest) validate() error {
	if strings.TrimSpace(a.ShadowID) == "" {
		return errors.New("missing shadow_id")
	}
	return nil
}

// matchRequest mirrors the wire schema for POST /matches.
type matchRequest struct {
	ShadowID     string                    `json:"shadow_id"`
	Requirements model.ProjectRequirements `json:"requirements"`
}

func (m matchRequest) validate() error {
	if strings.TrimSpace(m.ShadowID) == "" {
		return errors.New("missing shadow_id")
	}
	if m.Requirements.MinScore != nil {
		if min := *m.Requirements.MinScore; min < 0 || min > 100 {
			return errors.New("min_score must be in [0, 100]")
		}
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
