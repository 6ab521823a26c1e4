package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/readinglists"
	"github.com/mrlokans/bookshelf/internal/library"
)

// Gateway is the full storage surface used by the collection: books and
// reading lists behind one value.
type Gateway struct {
	Books *books.Repository
	Lists *readinglists.Repository
}

func NewGateway(db *gorm.DB, timeout time.Duration) *Gateway {
	return &Gateway{
		Books: books.NewRepository(db, timeout),
		Lists: readinglists.NewRepository(db, timeout),
	}
}

func (g *Gateway) FetchAllBooks(ctx context.Context) ([]library.Book, error) {
	return g.Books.FetchAllBooks(ctx)
}

func (g *Gateway) CreateBook(ctx context.Context, form library.BookFormData) (library.Book, error) {
	return g.Books.CreateBook(ctx, form)
}

func (g *Gateway) UpdateBook(ctx context.Context, id string, update library.BookUpdate) (library.Book, error) {
	return g.Books.UpdateBook(ctx, id, update)
}

func (g *Gateway) DeleteBook(ctx context.Context, id string) error {
	return g.Books.DeleteBook(ctx, id)
}

func (g *Gateway) CountBooks(ctx context.Context) (int, error) {
	return g.Books.CountBooks(ctx)
}

func (g *Gateway) FetchAllReadingLists(ctx context.Context) ([]library.ReadingList, error) {
	return g.Lists.FetchAllReadingLists(ctx)
}

func (g *Gateway) CreateReadingList(ctx context.Context, name string) (library.ReadingList, error) {
	return g.Lists.CreateReadingList(ctx, name)
}

func (g *Gateway) DeleteReadingList(ctx context.Context, id string) error {
	return g.Lists.DeleteReadingList(ctx, id)
}

func (g *Gateway) AddBookToList(ctx context.Context, listID, bookID string) error {
	return g.Lists.AddBookToList(ctx, listID, bookID)
}

func (g *Gateway) RemoveBookFromList(ctx context.Context, listID, bookID string) error {
	return g.Lists.RemoveBookFromList(ctx, listID, bookID)
}

func (g *Gateway) PruneOrphanMemberships(ctx context.Context) (int, error) {
	return g.Lists.PruneOrphanMemberships(ctx)
}
