// Package books stores the book catalog.
//
// Repository translates between library.Book (application form) and
// entities.Book (storage form) and wraps every failure in a
// library.StorageError.
//
// # Usage
//
//	repo := books.NewRepository(db, 5*time.Second)
//	book, err := repo.CreateBook(ctx, form)
package books

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/library"
)

// ErrNotFound is wrapped into the StorageError returned for unknown IDs.
var ErrNotFound = errors.New("book not found")

// Repository handles all book database operations.
type Repository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewRepository creates a new books repository. A zero timeout leaves calls
// bounded only by the caller's context.
func NewRepository(db *gorm.DB, timeout time.Duration) *Repository {
	return &Repository{db: db, timeout: timeout}
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// FetchAllBooks returns every book, newest first.
func (r *Repository) FetchAllBooks(ctx context.Context) ([]library.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []entities.Book
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, library.NewStorageError("fetch books", err)
	}

	books := make([]library.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, ToBook(row))
	}
	return books, nil
}

// CreateBook inserts a book and returns the row as stored. The form is
// stored as given; callers validate and normalize it first.
func (r *Repository) CreateBook(ctx context.Context, form library.BookFormData) (library.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	db := r.db.WithContext(ctx)
	row := toRow(form)
	if err := db.Create(&row).Error; err != nil {
		return library.Book{}, library.NewStorageError("create book", err)
	}

	// Timestamps come back with the database's precision.
	var stored entities.Book
	if err := db.Where("id = ?", row.ID).First(&stored).Error; err != nil {
		return library.Book{}, library.NewStorageError("create book", err)
	}
	return ToBook(stored), nil
}

// UpdateBook applies the present fields of update and returns the full row
// as stored afterwards.
func (r *Repository) UpdateBook(ctx context.Context, id string, update library.BookUpdate) (library.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	db := r.db.WithContext(ctx)
	cols := updateColumns(update, time.Now())
	if len(cols) > 0 {
		result := db.Model(&entities.Book{}).Where("id = ?", id).Updates(cols)
		if result.Error != nil {
			return library.Book{}, library.NewStorageError("update book", result.Error)
		}
		if result.RowsAffected == 0 {
			return library.Book{}, library.NewStorageError("update book", fmt.Errorf("%w: %s", ErrNotFound, id))
		}
	}

	var row entities.Book
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return library.Book{}, library.NewStorageError("update book", err)
	}
	return ToBook(row), nil
}

// DeleteBook removes a book and its list memberships.
func (r *Repository) DeleteBook(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&entities.ReadingListBook{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.Book{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil
	})
	return library.NewStorageError("delete book", err)
}

// CountBooks returns the number of stored books. It doubles as a
// connectivity probe.
func (r *Repository) CountBooks(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, library.NewStorageError("count books", err)
	}
	return int(count), nil
}
