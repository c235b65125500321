package seeding

import (
	"time"

	"github.com/zentro/shadowscout/internal/domain/model"
)

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL         string        // Base URL of the service
	NumShadows      int           // Number of distinct identities to seed
	EventsPerShadow int           // Activity events generated per identity
	TopN            int           // Number of top entries to fetch afterwards
	Workers         int           // Number of concurrent submitters
	Timeout         time.Duration // HTTP request timeout
	Verbose         bool          // Enable verbose logging
}

// Submission is the wire shape for POST /activities.
type Submission struct {
	model.ActivityEvent
	TS string `json:"ts"`
}

// AckResponse represents the response from activity submission.
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds seeding statistics.
type Stats struct {
	EventsGenerated  int
	EventsSubmitted  int
	EventsSuccessful int
	EventsDuplicate  int
	EventsFailed     int
	TalentsRanked    int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
