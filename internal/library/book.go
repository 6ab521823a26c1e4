package library

import (
	"fmt"
	"time"
)

// Status is the reading status of a book as shown to the user.
type Status string

const (
	StatusReading  Status = "Reading"
	StatusRead     Status = "Read"
	StatusWishList Status = "Wish List"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusReading, StatusRead, StatusWishList}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusReading, StatusRead, StatusWishList:
		return true
	}
	return false
}

// ParseStatus converts user input into a Status. An empty string yields
// StatusWishList, the default for new books.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return StatusWishList, nil
	}
	status := Status(s)
	if !status.Valid() {
		return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", s)}
	}
	return status, nil
}

// Filter selects which books are shown in the main grid.
type Filter string

// FilterAll is the sentinel filter that keeps every status.
const FilterAll Filter = "All Books"

// Filters lists every tab in display order.
var Filters = []Filter{FilterAll, Filter(StatusReading), Filter(StatusRead), Filter(StatusWishList)}

// ParseFilter converts user input into a Filter. An empty string yields FilterAll.
func ParseFilter(s string) (Filter, error) {
	if s == "" || Filter(s) == FilterAll {
		return FilterAll, nil
	}
	if !Status(s).Valid() {
		return "", &ValidationError{Field: "filter", Message: fmt.Sprintf("unknown filter %q", s)}
	}
	return Filter(s), nil
}

const (
	MaxRating   = 5
	MaxProgress = 100
)

// Book is one catalog item.
type Book struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	CoverURL  string     `json:"cover_url"`
	Notes     string     `json:"notes"`
	Rating    int        `json:"rating"`
	Status    Status     `json:"status"`
	Progress  int        `json:"progress"`
	DateAdded time.Time  `json:"date_added"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ReadingList is a named, user-created grouping of books. Books holds copies
// of the canonical books, in membership order, each at most once.
type ReadingList struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Books     []Book    `json:"books"`
}

// Contains reports whether the list has a member with the given book ID.
func (l ReadingList) Contains(bookID string) bool {
	for _, b := range l.Books {
		if b.ID == bookID {
			return true
		}
	}
	return false
}

// Clone returns a copy of the list that does not share its Books slice.
func (l ReadingList) Clone() ReadingList {
	c := l
	c.Books = make([]Book, len(l.Books))
	copy(c.Books, l.Books)
	return c
}
