package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// MembershipPruner deletes list memberships that point at a missing list or
// book.
type MembershipPruner interface {
	PruneOrphanMemberships(ctx context.Context) (int, error)
}

// PruneMembershipsTask removes orphaned reading list memberships.
type PruneMembershipsTask struct{}

// Config returns the queue configuration for membership pruning.
func (t PruneMembershipsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prune_memberships",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PruneMembershipsProcessor creates a processor function for PruneMembershipsTask.
func PruneMembershipsProcessor(pruner MembershipPruner) backlite.QueueProcessor[PruneMembershipsTask] {
	return func(ctx context.Context, task PruneMembershipsTask) error {
		if pruner == nil {
			return fmt.Errorf("membership pruner not configured")
		}

		deleted, err := pruner.PruneOrphanMemberships(ctx)
		if err != nil {
			return fmt.Errorf("prune memberships: %w", err)
		}

		log.Printf("[TASK] Pruned %d orphan memberships", deleted)
		return nil
	}
}

// NewPruneMembershipsQueue creates a backlite queue for pruning tasks.
func NewPruneMembershipsQueue(pruner MembershipPruner) backlite.Queue {
	return backlite.NewQueue(PruneMembershipsProcessor(pruner))
}
