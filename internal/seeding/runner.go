// Package seeding generates randomized activity traffic against a running
// service and spot-checks the resulting rankings and insights.
package seeding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zentro/shadowscout/internal/domain/model"
	"github.com/zentro/shadowscout/pkg/logger"
)

// processingDelay gives workers time to drain the queue before reads.
const processingDelay = 5 * time.Second

// Run executes a complete seeding pass.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting seeding run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("shadows", config.NumShadows),
		logger.Int("eventsPerShadow", config.EventsPerShadow),
		logger.Int("workers", config.Workers),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	events, err := GenerateEvents(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("event generation failed: %w", err)
	}

	if err := SubmitEvents(ctx, config, events, stats); err != nil {
		return fmt.Errorf("event submission failed: %w", err)
	}

	logger.Get().Info(ctx, "waiting for events to be processed")
	time.Sleep(processingDelay)

	talents, err := fetchTopTalents(ctx, config)
	if err != nil {
		return fmt.Errorf("talent retrieval failed: %w", err)
	}
	stats.TalentsRanked = len(talents)

	if len(talents) > 0 {
		if err := spotCheckInsights(ctx, config, talents[0].ShadowID); err != nil {
			return fmt.Errorf("insight spot check failed: %w", err)
		}
		if err := spotCheckMatches(ctx, config, talents[0].ShadowID); err != nil {
			return fmt.Errorf("match spot check failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding run completed")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// fetchTopTalents fetches the current talent ranking.
func fetchTopTalents(ctx context.Context, config *Config) ([]model.TalentEntry, error) {
	client := newHTTPClient(config.Timeout)

	url := fmt.Sprintf("%s/talents?limit=%d", config.BaseURL, config.TopN)
	resp, err := client.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch talents: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("talents request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read talents response: %w", err)
	}

	var entries []model.TalentEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode talents response: %w", err)
	}

	logger.Get().Info(ctx, "fetched top talents", logger.Int("count", len(entries)))
	return entries, nil
}

// spotCheckInsights fetches insights for one identity and validates shape.
func spotCheckInsights(ctx context.Context, config *Config, shadowID string) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.get(ctx, config.BaseURL+"/insights/"+shadowID)
	if err != nil {
		return fmt.Errorf("failed to fetch insights: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("insights request failed with status: %d", resp.StatusCode)
	}

	var report model.InsightReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return fmt.Errorf("failed to decode insights response: %w", err)
	}
	if report.ShadowID != shadowID {
		return fmt.Errorf("insights returned wrong identity: %s", report.ShadowID)
	}

	logger.Get().Info(ctx, "insight spot check passed",
		logger.String("shadowID", shadowID),
		logger.Float64("overall", report.OverallScore),
		logger.String("marketPosition", report.Insights.MarketPosition),
	)
	return nil
}

// spotCheckMatches runs one match query for an identity.
func spotCheckMatches(ctx context.Context, config *Config, shadowID string) error {
	client := newHTTPClient(config.Timeout)

	payload := map[string]any{"shadow_id": shadowID}
	resp, err := client.post(ctx, config.BaseURL+"/matches", payload)
	if err != nil {
		return fmt.Errorf("failed to fetch matches: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("matches request failed with status: %d", resp.StatusCode)
	}

	var matches []model.TeamMatch
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return fmt.Errorf("failed to decode matches response: %w", err)
	}

	logger.Get().Info(ctx, "match spot check passed",
		logger.String("shadowID", shadowID),
		logger.Int("matches", len(matches)),
	)
	return nil
}

// displayFinalStats prints the final seeding statistics.
func displayFinalStats(stats *Stats) {
	var eventsPerSecond float64
	if stats.Duration > 0 {
		eventsPerSecond = float64(stats.EventsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("eventsGenerated", stats.EventsGenerated),
		logger.Int("eventsSubmitted", stats.EventsSubmitted),
		logger.Int("eventsSuccessful", stats.EventsSuccessful),
		logger.Int("eventsDuplicate", stats.EventsDuplicate),
		logger.Int("eventsFailed", stats.EventsFailed),
		logger.Int("talentsRanked", stats.TalentsRanked),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("eventsPerSecond", eventsPerSecond),
	)
}
