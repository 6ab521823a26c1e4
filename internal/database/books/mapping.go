package books

import (
	"strings"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/library"
)

// ToStorageStatus maps a display status to its stored form. Anything
// unrecognized is stored as wish-list.
func ToStorageStatus(s library.Status) entities.BookStatus {
	switch s {
	case library.StatusReading:
		return entities.BookStatusReading
	case library.StatusRead:
		return entities.BookStatusRead
	default:
		return entities.BookStatusWishList
	}
}

// FromStorageStatus maps a stored status to its display form. Unknown or
// empty values surface as Wish List.
func FromStorageStatus(s entities.BookStatus) library.Status {
	switch s {
	case entities.BookStatusReading:
		return library.StatusReading
	case entities.BookStatusRead:
		return library.StatusRead
	default:
		return library.StatusWishList
	}
}

// ToBook converts a books row into its application form.
func ToBook(row entities.Book) library.Book {
	book := library.Book{
		ID:        row.ID,
		Title:     row.Title,
		Author:    row.Author,
		Status:    FromStorageStatus(row.Status),
		DateAdded: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Cover != nil {
		book.CoverURL = *row.Cover
	}
	if row.Notes != nil {
		book.Notes = *row.Notes
	}
	if row.Rating != nil {
		book.Rating = *row.Rating
	}
	if row.Progress != nil {
		book.Progress = *row.Progress
	}
	return book
}

func toRow(form library.BookFormData) entities.Book {
	rating := form.Rating
	progress := form.Progress
	return entities.Book{
		Title:    form.Title,
		Author:   form.Author,
		Cover:    coverValue(form.CoverURL),
		Notes:    notesValue(form.Notes),
		Rating:   &rating,
		Status:   ToStorageStatus(form.Status),
		Progress: &progress,
	}
}

// updateColumns translates the present fields of u into a column map.
func updateColumns(u library.BookUpdate, now time.Time) map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Author != nil {
		cols["author"] = *u.Author
	}
	if u.CoverURL != nil {
		cols["cover"] = coverValue(*u.CoverURL)
	}
	if u.Notes != nil {
		cols["notes"] = notesValue(*u.Notes)
	}
	if u.Rating != nil {
		cols["rating"] = *u.Rating
	}
	if u.Status != nil {
		cols["status"] = ToStorageStatus(*u.Status)
	}
	if u.Progress != nil {
		cols["progress"] = *u.Progress
	}
	if len(cols) > 0 {
		cols["updated_at"] = now
	}
	return cols
}

// coverValue stores the trimmed URL, or NULL when nothing is left.
func coverValue(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// notesValue keeps notes verbatim unless they are blank.
func notesValue(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
