package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/zentro/shadowscout/internal/seeding"
	"github.com/zentro/shadowscout/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumShadows      = 200
	defaultEventsPerShadow = 25
	defaultTopN            = 50
	defaultWorkerMult      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout         = 30 * time.Second
	defaultRunTimeout      = 10 * time.Minute
)

func main() {
	var (
		baseURL         = flag.String("url", "http://localhost:9090", "Base URL of the service")
		numShadows      = flag.Int("shadows", defaultNumShadows, "Number of identities to seed")
		eventsPerShadow = flag.Int("events", defaultEventsPerShadow, "Activity events per identity")
		topN            = flag.Int("top", defaultTopN, "Number of top entries to fetch from the ranking")
		workers         = flag.Int("workers", runtime.NumCPU()*defaultWorkerMult, "Number of concurrent submitters")
		timeout         = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose         = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seeding.Config{
		BaseURL:         *baseURL,
		NumShadows:      *numShadows,
		EventsPerShadow: *eventsPerShadow,
		TopN:            *topN,
		Workers:         *workers,
		Timeout:         *timeout,
		Verbose:         *verbose,
	}

	if err := seeding.Run(ctx, config); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
