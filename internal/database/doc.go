// Package database provides the storage gateway for the book catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations
//	├── gateway.go       # Gateway: the combined surface used by the collection
//	├── books/           # Book CRUD and application <-> storage translation
//	└── readinglists/    # Reading lists and memberships
//
// # Usage
//
//	db, err := database.NewDatabase(cfg.Database)
//	gw := db.Gateway()
//	books, err := gw.FetchAllBooks(ctx)
//
// Every operation takes a context and is additionally bounded by
// config.Database.Timeout. Every failure, including unknown IDs, is returned
// as a *library.StorageError.
package database
