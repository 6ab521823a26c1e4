package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookStatus is the storage form of a book's reading status.
type BookStatus string

const (
	BookStatusReading  BookStatus = "reading"
	BookStatusRead     BookStatus = "read"
	BookStatusWishList BookStatus = "wish-list"
)

// Book is a row of the books table. Nullable columns are pointers so that
// "no cover" and "no notes" are stored as NULL rather than empty strings.
type Book struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Title     string     `gorm:"index;size:512;not null" json:"title"`
	Author    string     `gorm:"index;size:256;not null" json:"author"`
	Cover     *string    `gorm:"size:2048" json:"cover"`
	Notes     *string    `gorm:"type:text" json:"notes"`
	Rating    *int       `json:"rating"`
	Status    BookStatus `gorm:"size:20;default:'wish-list'" json:"status"`
	Progress  *int       `json:"progress"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// ReadingList is a row of the reading_lists table.
type ReadingList struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	Name        string            `gorm:"size:256;not null" json:"name"`
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`
	Memberships []ReadingListBook `gorm:"foreignKey:ListID" json:"reading_list_books,omitempty"`
}

// ReadingListBook is a membership row joining a list to a book. The pair
// (list_id, book_id) is unique.
type ReadingListBook struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ListID    string    `gorm:"size:36;not null;uniqueIndex:idx_reading_list_books_pair" json:"list_id"`
	BookID    string    `gorm:"size:36;not null;uniqueIndex:idx_reading_list_books_pair;index" json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
	Book      *Book     `gorm:"foreignKey:BookID" json:"books,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

func (ReadingList) TableName() string {
	return "reading_lists"
}

func (ReadingListBook) TableName() string {
	return "reading_list_books"
}

// BeforeCreate assigns a UUID when the caller did not provide an ID.
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (l *ReadingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

func (m *ReadingListBook) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
