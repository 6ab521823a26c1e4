package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/metadata"
)

// EnrichAllBooksTask is a cover sweep: it fills in a cover for every book in
// the collection that has none. The set of books is read when it runs.
type EnrichAllBooksTask struct{}

// maxLoggedSweepErrors bounds how many per-book failures a sweep logs.
const maxLoggedSweepErrors = 5

// Config keeps failed sweeps and their payload for a day. A sweep is never
// retried: the next one picks up whatever this one missed.
func (t EnrichAllBooksTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_all_books",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichAllBooksProcessor runs a cover sweep. The task fails when the sweep
// is interrupted or when every attempted lookup failed.
func EnrichAllBooksProcessor(enricher CoverEnricher) backlite.QueueProcessor[EnrichAllBooksTask] {
	return func(ctx context.Context, _ EnrichAllBooksTask) error {
		if enricher == nil {
			return errors.New("cover enrichment is disabled")
		}

		started := time.Now()
		result, err := enricher.EnrichAllMissing(ctx)
		if err != nil {
			return fmt.Errorf("cover sweep: %w", err)
		}
		logSweep(result, time.Since(started))

		if attempted := result.Enriched + result.Failed; attempted > 0 && result.Enriched == 0 {
			return fmt.Errorf("cover sweep: all %d lookups failed", attempted)
		}
		return nil
	}
}

func logSweep(result *metadata.BulkEnrichmentResult, took time.Duration) {
	log.Printf("[TASK] Cover sweep finished in %s: %d without cover, %d covered, %d skipped, %d failed",
		took.Round(time.Millisecond), result.TotalBooks, result.Enriched, result.Skipped, result.Failed)

	for i, msg := range result.Errors {
		if i == maxLoggedSweepErrors {
			log.Printf("[TASK] ... and %d more cover errors", len(result.Errors)-i)
			break
		}
		log.Printf("[TASK] Cover error: %s", msg)
	}
}

// NewEnrichAllBooksQueue registers the cover sweep processor.
func NewEnrichAllBooksQueue(enricher CoverEnricher) backlite.Queue {
	return backlite.NewQueue(EnrichAllBooksProcessor(enricher))
}
