// Package filter derives the views shown over a book collection: search by
// title or author, status tabs, the currently-reading strip and tab counts.
// All functions are pure and return new slices.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mrlokans/bookshelf/internal/library"
)

// Apply keeps books matching query (case-insensitive substring of title or
// author) and, unless f is FilterAll, whose status equals f. Order is kept.
func Apply(books []library.Book, query string, f library.Filter) []library.Book {
	folder := newFolder(query)

	out := make([]library.Book, 0, len(books))
	for _, b := range books {
		if f != library.FilterAll && f != "" && b.Status != library.Status(f) {
			continue
		}
		if !folder.matches(b) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// MatchesQuery reports whether book's title or author contains query,
// ignoring case. An empty query matches everything.
func MatchesQuery(book library.Book, query string) bool {
	return newFolder(query).matches(book)
}

// CurrentlyReading returns the books with status Reading.
func CurrentlyReading(books []library.Book) []library.Book {
	out := make([]library.Book, 0)
	for _, b := range books {
		if b.Status == library.StatusReading {
			out = append(out, b)
		}
	}
	return out
}

// Counts returns the number of books under each tab.
func Counts(books []library.Book) map[library.Filter]int {
	counts := make(map[library.Filter]int, len(library.Filters))
	for _, f := range library.Filters {
		counts[f] = 0
	}
	for _, b := range books {
		counts[library.FilterAll]++
		if b.Status.Valid() {
			counts[library.Filter(b.Status)]++
		}
	}
	return counts
}

// folder holds a case-folded query.
type folder struct {
	caser cases.Caser
	query string
}

func newFolder(query string) folder {
	c := cases.Fold()
	return folder{caser: c, query: c.String(query)}
}

func (f folder) matches(b library.Book) bool {
	if f.query == "" {
		return true
	}
	return strings.Contains(f.caser.String(b.Title), f.query) ||
		strings.Contains(f.caser.String(b.Author), f.query)
}
