// Package interfaces holds compile-time checks that the concrete types wired
// together in entrypoint satisfy the interfaces their consumers declare.
//
// Consumers own their interfaces: the synchronizer declares the Gateway it
// needs, the HTTP controllers declare Collection and TaskQueue, the scheduler
// declares Loader and Pruner. A concrete type never names the interfaces it
// implements, so a renamed method only fails where it is wired. Keeping the
// assertions here makes that failure show up in one build target:
//
//	var _ collection.Gateway = (*database.Gateway)(nil)
//
// # Adding a New Metadata Provider
//
// Implement metadata.MetadataProvider (SearchByISBN and SearchByTitle), add a
// check to checks.go and pass the provider to metadata.NewEnricher in
// entrypoint.go.
//
// # Adding a New Storage Driver
//
// Add a gorm dialector case to openDialector in internal/database. The
// repositories only use portable gorm calls, so no other change is needed.
package interfaces
