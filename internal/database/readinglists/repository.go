// Package readinglists stores reading lists and their book memberships.
package readinglists

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/library"
)

var (
	ErrListNotFound  = errors.New("reading list not found")
	ErrBookNotFound  = errors.New("book not found")
	ErrAlreadyMember = errors.New("book is already in the list")
	ErrNotMember     = errors.New("book is not in the list")
)

// Repository handles reading list and membership database operations.
type Repository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewRepository creates a new reading lists repository.
func NewRepository(db *gorm.DB, timeout time.Duration) *Repository {
	return &Repository{db: db, timeout: timeout}
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// FetchAllReadingLists returns every list, newest first, with member books in
// the order they were added. Memberships pointing at a vanished book are
// skipped.
func (r *Repository) FetchAllReadingLists(ctx context.Context) ([]library.ReadingList, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []entities.ReadingList
	err := r.db.WithContext(ctx).
		Preload("Memberships", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Memberships.Book").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, library.NewStorageError("fetch reading lists", err)
	}

	lists := make([]library.ReadingList, 0, len(rows))
	for _, row := range rows {
		lists = append(lists, toReadingList(row))
	}
	return lists, nil
}

// CreateReadingList inserts an empty list.
func (r *Repository) CreateReadingList(ctx context.Context, name string) (library.ReadingList, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := entities.ReadingList{Name: name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return library.ReadingList{}, library.NewStorageError("create reading list", err)
	}
	return toReadingList(row), nil
}

// DeleteReadingList removes a list and its membership rows. Books are kept.
func (r *Repository) DeleteReadingList(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&entities.ReadingListBook{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.ReadingList{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrListNotFound, id)
		}
		return nil
	})
	return library.NewStorageError("delete reading list", err)
}

// AddBookToList records a membership. Unknown IDs and duplicate pairs are
// errors.
func (r *Repository) AddBookToList(ctx context.Context, listID, bookID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &entities.ReadingList{}, listID, ErrListNotFound); err != nil {
			return err
		}
		if err := exists(tx, &entities.Book{}, bookID, ErrBookNotFound); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&entities.ReadingListBook{}).
			Where("list_id = ? AND book_id = ?", listID, bookID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyMember
		}

		return tx.Create(&entities.ReadingListBook{ListID: listID, BookID: bookID}).Error
	})
	return library.NewStorageError("add book to list", err)
}

// RemoveBookFromList deletes a membership. A missing pair is an error.
func (r *Repository) RemoveBookFromList(ctx context.Context, listID, bookID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).
		Where("list_id = ? AND book_id = ?", listID, bookID).
		Delete(&entities.ReadingListBook{})
	if result.Error != nil {
		return library.NewStorageError("remove book from list", result.Error)
	}
	if result.RowsAffected == 0 {
		return library.NewStorageError("remove book from list", ErrNotMember)
	}
	return nil
}

// PruneOrphanMemberships deletes membership rows whose list or book no
// longer exists and returns how many were removed.
func (r *Repository) PruneOrphanMemberships(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	db := r.db.WithContext(ctx)
	result := db.
		Where("list_id NOT IN (?) OR book_id NOT IN (?)",
			db.Model(&entities.ReadingList{}).Select("id"),
			db.Model(&entities.Book{}).Select("id")).
		Delete(&entities.ReadingListBook{})
	if result.Error != nil {
		return 0, library.NewStorageError("prune memberships", result.Error)
	}
	return int(result.RowsAffected), nil
}

func exists(tx *gorm.DB, model interface{}, id string, notFound error) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}

func toReadingList(row entities.ReadingList) library.ReadingList {
	list := library.ReadingList{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		Books:     make([]library.Book, 0, len(row.Memberships)),
	}
	for _, m := range row.Memberships {
		if m.Book == nil {
			continue
		}
		list.Books = append(list.Books, books.ToBook(*m.Book))
	}
	return list
}
