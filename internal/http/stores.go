package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/collection"
	"github.com/mrlokans/bookshelf/internal/library"
	"github.com/mrlokans/bookshelf/internal/metadata"
)

// CollectionReader serves snapshots of the in-memory collection.
type CollectionReader interface {
	Loaded() bool
	Books() []library.Book
	Book(id string) (library.Book, bool)
	Lists() []library.ReadingList
	List(id string) (library.ReadingList, bool)
}

// BookWriter mutates books.
type BookWriter interface {
	AddBook(ctx context.Context, form library.BookFormData, listIDs []string) (collection.AddBookResult, error)
	UpdateBook(ctx context.Context, id string, update library.BookUpdate) (library.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// ListWriter mutates reading lists and their memberships.
type ListWriter interface {
	CreateReadingList(ctx context.Context, name string) (library.ReadingList, error)
	DeleteReadingList(ctx context.Context, id string) error
	AddBookToList(ctx context.Context, listID, bookID string) error
	RemoveBookFromList(ctx context.Context, listID, bookID string) error
}

// Collection is everything the API needs from the synchronizer.
type Collection interface {
	CollectionReader
	BookWriter
	ListWriter
	Load(ctx context.Context) error
}

// HealthChecker probes the storage connection.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// TaskQueue enqueues background jobs and reports their status.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// CoverEnricher looks up covers synchronously when no task queue is running.
type CoverEnricher interface {
	EnrichBook(ctx context.Context, bookID, isbn string) (*metadata.EnrichmentResult, error)
}

// Refresher reloads the collection and prunes stale memberships.
type Refresher interface {
	RunNow(ctx context.Context) error
}

// MembershipPruner deletes memberships pointing at a missing list or book.
type MembershipPruner interface {
	PruneOrphanMemberships(ctx context.Context) (int, error)
}
