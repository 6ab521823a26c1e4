package http

import "github.com/mrlokans/bookshelf/internal/config"

// RouterConfig holds all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Collection Collection
	Database   HealthChecker // nil disables the database check in /health

	// Optional
	TaskQueue TaskQueue     // nil disables async enrichment and task status
	Enricher  CoverEnricher // used when TaskQueue is nil
	Refresher Refresher     // nil makes reload call Collection.Load directly
	Pruner    MembershipPruner

	RateLimit config.RateLimit
	Version   string
}
