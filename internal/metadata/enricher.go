package metadata

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/bookshelf/internal/library"
)

// MetadataProvider defines the interface for fetching book metadata.
type MetadataProvider interface {
	SearchByISBN(ctx context.Context, isbn string) (*BookMetadata, error)
	SearchByTitle(ctx context.Context, title, author string) (*BookMetadata, error)
}

// BookStore is the part of the collection the enricher reads and writes.
// Updates go through it so every reading list sees the new cover.
type BookStore interface {
	Book(id string) (library.Book, bool)
	Books() []library.Book
	UpdateBook(ctx context.Context, id string, update library.BookUpdate) (library.Book, error)
}

// EnrichmentResult contains the result of an enrichment operation.
type EnrichmentResult struct {
	Book          library.Book `json:"book"`
	FieldsUpdated []string     `json:"fields_updated"`
	Source        string       `json:"source"`
	SearchMethod  string       `json:"search_method"` // "isbn" or "title"
}

// Enricher fills in missing covers from an external metadata source.
type Enricher struct {
	provider MetadataProvider
	books    BookStore
}

func NewEnricher(provider MetadataProvider, books BookStore) *Enricher {
	return &Enricher{
		provider: provider,
		books:    books,
	}
}

// EnrichBook looks the book up and stores a cover if it has none. When isbn
// is non-empty it is tried before the title+author search. A book that
// already has a cover is returned untouched.
func (e *Enricher) EnrichBook(ctx context.Context, bookID, isbn string) (*EnrichmentResult, error) {
	book, ok := e.books.Book(bookID)
	if !ok {
		return nil, &library.NotFoundError{Kind: "book", ID: bookID}
	}

	result := &EnrichmentResult{Book: book, FieldsUpdated: []string{}, Source: "openlibrary"}
	if strings.TrimSpace(book.CoverURL) != "" {
		return result, nil
	}

	var (
		meta *BookMetadata
		err  error
	)
	if isbn != "" {
		meta, err = e.provider.SearchByISBN(ctx, isbn)
		if err == nil {
			result.SearchMethod = "isbn"
		}
	}
	if meta == nil {
		meta, err = e.provider.SearchByTitle(ctx, book.Title, book.Author)
		if err != nil {
			return nil, fmt.Errorf("metadata search failed: %w", err)
		}
		result.SearchMethod = "title"
	}

	if meta.CoverURL == "" {
		return result, nil
	}

	cover := meta.CoverURL
	updated, err := e.books.UpdateBook(ctx, bookID, library.BookUpdate{CoverURL: &cover})
	if err != nil {
		return nil, fmt.Errorf("update book cover: %w", err)
	}
	result.Book = updated
	result.FieldsUpdated = append(result.FieldsUpdated, "cover_url")
	return result, nil
}

// BooksMissingCovers returns collection books without a cover.
func (e *Enricher) BooksMissingCovers() []library.Book {
	var missing []library.Book
	for _, b := range e.books.Books() {
		if strings.TrimSpace(b.CoverURL) == "" {
			missing = append(missing, b)
		}
	}
	return missing
}

// BulkEnrichmentResult contains the summary of a bulk enrichment operation.
type BulkEnrichmentResult struct {
	TotalBooks int      `json:"total_books"`
	Enriched   int      `json:"enriched"`
	Failed     int      `json:"failed"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

// EnrichAllMissing runs EnrichBook for every book missing a cover. A failed
// book is counted and skipped; cancellation stops the run.
func (e *Enricher) EnrichAllMissing(ctx context.Context) (*BulkEnrichmentResult, error) {
	books := e.BooksMissingCovers()
	result := &BulkEnrichmentResult{TotalBooks: len(books)}

	for _, book := range books {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, "operation cancelled")
			return result, err
		}

		enriched, err := e.EnrichBook(ctx, book.ID, "")
		switch {
		case err != nil && errors.Is(err, ErrNoMatch):
			result.Skipped++
		case err != nil:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", book.Title, err))
			log.Printf("Failed to enrich book %s (%s): %v", book.ID, book.Title, err)
		case len(enriched.FieldsUpdated) == 0:
			result.Skipped++
		default:
			result.Enriched++
		}
	}

	return result, nil
}
