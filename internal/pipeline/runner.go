// Package pipeline orchestrates one ingestion run:
// fetch → normalize → publish.
//
// A run either completes in full or produces no observable change to the
// destination tables: fetch and transform failures happen before the
// publish transaction opens, and publish failures roll back atomically.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fredgido/triathlon-dashboard/internal/config"
	"github.com/fredgido/triathlon-dashboard/internal/logging"
	"github.com/fredgido/triathlon-dashboard/internal/model"
	"github.com/fredgido/triathlon-dashboard/internal/normalize"
	"github.com/fredgido/triathlon-dashboard/internal/raceresult"
	"github.com/fredgido/triathlon-dashboard/internal/store"
)

// Fetcher retrieves the upstream data for one run.
type Fetcher interface {
	FetchAll(ctx context.Context) (*raceresult.Snapshot, error)
}

// Publisher writes one run's output transactionally.
type Publisher interface {
	Publish(ctx context.Context, pub store.Publication) error
}

// Runner executes complete pipeline runs.
type Runner struct {
	fetcher    Fetcher
	publisher  Publisher
	normalizer *normalize.Normalizer
	startList  string
	waitList   string
	now        func() time.Time
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(fetcher Fetcher, publisher Publisher, normalizer *normalize.Normalizer, cfg config.RaceResultConfig) *Runner {
	return &Runner{
		fetcher:    fetcher,
		publisher:  publisher,
		normalizer: normalizer,
		startList:  cfg.StartListName,
		waitList:   cfg.WaitListName,
		now:        time.Now,
	}
}

// Summary reports what one run produced.
type Summary struct {
	RunID       uuid.UUID     `json:"run_id"`
	Categories  int           `json:"categories"`
	Splits      int           `json:"splits"`
	Athletes    int           `json:"athletes"`
	Waitlist    int           `json:"waitlist"`
	HasWaitlist bool          `json:"has_waitlist"`
	Duration    time.Duration `json:"duration_ns"`
}

// Run performs one complete fetch → normalize → publish cycle.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.New()
	logger := logging.WithRun(ctx, runID.String())
	started := r.now()

	logger.Info("run started")

	snap, err := r.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	logger.Info("fetch complete", "lists", len(snap.Lists), "duration_ms", r.now().Sub(started).Milliseconds())

	startRows, ok := snap.List(r.startList)
	if !ok {
		return nil, fmt.Errorf("run %s: starting list %q missing from fetch result", runID, r.startList)
	}

	categories := r.normalizer.ContestCategories(&snap.Config)
	splits := r.normalizer.Splits(&snap.Config)
	athletes := r.normalizer.Athletes(startRows, r.now())

	var waitlist []model.WaitlistAthlete
	waitRows, hasWaitlist := snap.List(r.waitList)
	if hasWaitlist {
		waitlist = r.normalizer.Waitlist(waitRows)
	}

	usedData, err := json.Marshal(map[string]any{
		"config_data":       snap.ConfigRaw,
		"participant_lists": snap.ListsRaw,
	})
	if err != nil {
		return nil, fmt.Errorf("run %s: serialize audit snapshot: %w", runID, err)
	}

	pub := store.Publication{
		Categories:  categories,
		Splits:      splits,
		Athletes:    athletes,
		Waitlist:    waitlist,
		HasWaitlist: hasWaitlist,
		Audit: model.AuditEvent{
			CreatedAt:     r.now().UTC(),
			RunID:         runID,
			UsedData:      usedData,
			AthletesCount: len(athletes),
			WaitlistCount: len(waitlist),
		},
	}

	if err := r.publisher.Publish(ctx, pub); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	summary := &Summary{
		RunID:       runID,
		Categories:  len(categories),
		Splits:      len(splits),
		Athletes:    len(athletes),
		Waitlist:    len(waitlist),
		HasWaitlist: hasWaitlist,
		Duration:    r.now().Sub(started),
	}
	logger.Info("run complete",
		"categories", summary.Categories,
		"splits", summary.Splits,
		"athletes", summary.Athletes,
		"waitlist", summary.Waitlist,
		"has_waitlist", summary.HasWaitlist,
		"duration_ms", summary.Duration.Milliseconds(),
	)
	return summary, nil
}
