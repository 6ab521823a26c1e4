package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/collection"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/metadata"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Persistence Gateway
// =============================================================================

var _ collection.Gateway = (*database.Gateway)(nil)
var _ http.HealthChecker = (*database.Database)(nil)
var _ http.MembershipPruner = (*database.Gateway)(nil)
var _ tasks.MembershipPruner = (*database.Gateway)(nil)
var _ scheduler.Pruner = (*database.Gateway)(nil)

// =============================================================================
// Collection Synchronizer
// =============================================================================

var _ http.Collection = (*collection.Synchronizer)(nil)
var _ metadata.BookStore = (*collection.Synchronizer)(nil)
var _ scheduler.Loader = (*collection.Synchronizer)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ metadata.MetadataProvider = (*metadata.OpenLibraryClient)(nil)
var _ tasks.CoverEnricher = (*metadata.Enricher)(nil)
var _ http.CoverEnricher = (*metadata.Enricher)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ http.Refresher = (*scheduler.RefreshScheduler)(nil)
