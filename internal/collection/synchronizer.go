package collection

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/bookshelf/internal/library"
)

// Gateway is the storage surface the synchronizer depends on.
type Gateway interface {
	FetchAllBooks(ctx context.Context) ([]library.Book, error)
	CreateBook(ctx context.Context, form library.BookFormData) (library.Book, error)
	UpdateBook(ctx context.Context, id string, update library.BookUpdate) (library.Book, error)
	DeleteBook(ctx context.Context, id string) error

	FetchAllReadingLists(ctx context.Context) ([]library.ReadingList, error)
	CreateReadingList(ctx context.Context, name string) (library.ReadingList, error)
	DeleteReadingList(ctx context.Context, id string) error
	AddBookToList(ctx context.Context, listID, bookID string) error
	RemoveBookFromList(ctx context.Context, listID, bookID string) error
}

type Synchronizer struct {
	gateway Gateway

	// loadMu is held for reading by mutations across their storage call and
	// for writing by Load, so a snapshot never overwrites a newer mutation.
	loadMu sync.RWMutex

	mu     sync.RWMutex
	books  []library.Book
	lists  []library.ReadingList
	loaded bool
}

func NewSynchronizer(gateway Gateway) *Synchronizer {
	return &Synchronizer{
		gateway: gateway,
		books:   []library.Book{},
		lists:   []library.ReadingList{},
	}
}

// Load fetches books and lists concurrently and replaces the in-memory state.
// On failure the previous state is kept. Mutations wait for a running Load.
func (s *Synchronizer) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	var (
		books []library.Book
		lists []library.ReadingList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = s.gateway.FetchAllBooks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		lists, err = s.gateway.FetchAllReadingLists(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("[SYNC] Failed to load collection: %v", err)
		return err
	}

	if books == nil {
		books = []library.Book{}
	}
	if lists == nil {
		lists = []library.ReadingList{}
	}

	s.mu.Lock()
	s.books = books
	s.lists = lists
	s.loaded = true
	s.mu.Unlock()

	log.Printf("[SYNC] Loaded %d books and %d reading lists", len(books), len(lists))
	return nil
}

// Loaded reports whether at least one Load has succeeded.
func (s *Synchronizer) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Books returns a snapshot of the canonical books in collection order.
func (s *Synchronizer) Books() []library.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]library.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Lists returns a snapshot of every reading list.
func (s *Synchronizer) Lists() []library.ReadingList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]library.ReadingList, len(s.lists))
	for i, l := range s.lists {
		out[i] = l.Clone()
	}
	return out
}

func (s *Synchronizer) Book(id string) (library.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.bookIndex(id); i >= 0 {
		return s.books[i], true
	}
	return library.Book{}, false
}

func (s *Synchronizer) List(id string) (library.ReadingList, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.listIndex(id); i >= 0 {
		return s.lists[i].Clone(), true
	}
	return library.ReadingList{}, false
}

// ListOutcome is the result of adding a newly created book to one list.
type ListOutcome struct {
	ListID string
	Err    error
}

func (o ListOutcome) Added() bool {
	return o.Err == nil
}

// AddBookResult describes a book creation together with its per-list
// membership steps. Membership failures never undo the creation.
type AddBookResult struct {
	Book  library.Book
	Lists []ListOutcome
}

// Failed returns the outcomes whose membership step did not succeed.
func (r AddBookResult) Failed() []ListOutcome {
	var failed []ListOutcome
	for _, o := range r.Lists {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

func (r AddBookResult) Complete() bool {
	return len(r.Failed()) == 0
}

// Err joins every membership failure, or returns nil.
func (r AddBookResult) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, fmt.Errorf("list %s: %w", o.ListID, o.Err))
	}
	return errors.Join(errs...)
}

// AddBook validates and normalizes form, creates the book and then adds it
// to each of listIDs in order. The returned error is non-nil only when the
// book itself could not be created; per-list failures are in the result.
func (s *Synchronizer) AddBook(ctx context.Context, form library.BookFormData, listIDs []string) (AddBookResult, error) {
	if err := form.Validate(); err != nil {
		return AddBookResult{}, err
	}
	form = form.Normalize()

	book, err := s.createBook(ctx, form)
	if err != nil {
		return AddBookResult{}, err
	}

	result := AddBookResult{Book: book, Lists: make([]ListOutcome, 0, len(listIDs))}
	for _, listID := range listIDs {
		err := s.AddBookToList(ctx, listID, book.ID)
		if err != nil {
			log.Printf("[SYNC] Book %s created but not added to list %s: %v", book.ID, listID, err)
		}
		result.Lists = append(result.Lists, ListOutcome{ListID: listID, Err: err})
	}
	return result, nil
}

func (s *Synchronizer) createBook(ctx context.Context, form library.BookFormData) (library.Book, error) {
	s.loadMu.RLock()
	defer s.loadMu.RUnlock()

	book, err := s.gateway.CreateBook(ctx, form)
	if err != nil {
		log.Printf("[SYNC] Failed to create book %q: %v", form.Title, err)
		return library.Book{}, err
	}

	s.mu.Lock()
	s.books = append([]library.Book{book}, s.books...)
	s.replaceInLists(book)
	s.mu.Unlock()
	return book, nil
}

// UpdateBook applies a partial update and replaces the canonical book and
// every embedded copy with the stored result. Books unknown to the
// collection yield a NotFoundError without touching storage.
func (s *Synchronizer) UpdateBook(ctx context.Context, id string, update library.BookUpdate) (library.Book, error) {
	if err := update.Validate(); err != nil {
		return library.Book{}, err
	}

	s.loadMu.RLock()
	defer s.loadMu.RUnlock()

	current, ok := s.Book(id)
	if !ok {
		return library.Book{}, &library.NotFoundError{Kind: "book", ID: id}
	}
	update = update.Normalize(&current)

	book, err := s.gateway.UpdateBook(ctx, id, update)
	if err != nil {
		log.Printf("[SYNC] Failed to update book %s: %v", id, err)
		return library.Book{}, err
	}

	s.mu.Lock()
	if i := s.bookIndex(book.ID); i >= 0 {
		s.books[i] = book
	}
	s.replaceInLists(book)
	s.mu.Unlock()

	return book, nil
}

// DeleteBook removes a book from storage, the collection and every list.
func (s *Synchronizer) DeleteBook(ctx context.Context, id string) error {
	s.loadMu.RLock()
	defer s.loadMu.RUnlock()

	if err := s.gateway.DeleteBook(ctx, id); err != nil {
		log.Printf("[SYNC] Failed to delete book %s: %v", id, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.bookIndex(id); i >= 0 {
		s.books = append(s.books[:i:i], s.books[i+1:]...)
	}
	for i := range s.lists {
		s.lists[i].Books = withoutBook(s.lists[i].Books, id)
	}
	return nil
}

// CreateReadingList creates an empty list named name (trimmed).
func (s *Synchronizer) CreateReadingList(ctx context.Context, name string) (library.ReadingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return library.ReadingList{}, &library.ValidationError{Field: "name", Message: "list name is required"}
	}

	s.loadMu.RLock()
	defer s.loadMu.RUnlock()

	list, err := s.gateway.CreateReadingList(ctx, name)
	if err != nil {
		log.Printf("[SYNC] Failed to create reading list %q: %v", name, err)
		return library.ReadingList{}, err
	}
	if list.Books == nil {
		list.Books = []library.Book{}
	}

	s.mu.Lock()
	s.lists = append([]library.ReadingList{list.Clone()}, s.lists...)
	s.mu.Unlock()

	return list, nil
}

// DeleteReadingList removes a list. Its books stay in the collection.
func (s *Synchronizer) DeleteReadingList(ctx context.Context, id string) error {
	s.loadMu.RLock()
	defer s.loadMu.RUnlock()

	if err := s.gateway.DeleteReadingList(ctx, id); err != nil {
		log.Printf("[SYNC] Failed to delete reading list %s: %v", id, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.listIndex(id); i >= 0 {
		s.lists = append(s.lists[:i:i], s.lists[i+1:]...)
	}
	return nil
}

// AddBookToList adds a collection book to a list. Books or lists unknown to
// the collection yield a NotFoundError without touching storage.
func (s *Synchronizer) AddBookToList(ctx context.Context, listID, bookID string) error {
	s.loadMu.RLock()
	defer s.loadMu.RUnlock()

	s.mu.RLock()
	bookKnown := s.bookIndex(bookID) >= 0
	listKnown := s.listIndex(listID) >= 0
	s.mu.RUnlock()

	if !bookKnown {
		return &library.NotFoundError{Kind: "book", ID: bookID}
	}
	if !listKnown {
		return &library.NotFoundError{Kind: "reading list", ID: listID}
	}

	if err := s.gateway.AddBookToList(ctx, listID, bookID); err != nil {
		log.Printf("[SYNC] Failed to add book %s to list %s: %v", bookID, listID, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bi := s.bookIndex(bookID)
	li := s.listIndex(listID)
	if bi < 0 || li < 0 {
		// Removed by a concurrent request while storage was being updated.
		return nil
	}
	if !s.lists[li].Contains(bookID) {
		s.lists[li].Books = append(s.lists[li].Books, s.books[bi])
	}
	return nil
}

// RemoveBookFromList removes a membership; the book stays in the collection.
func (s *Synchronizer) RemoveBookFromList(ctx context.Context, listID, bookID string) error {
	s.loadMu.RLock()
	defer s.loadMu.RUnlock()

	if err := s.gateway.RemoveBookFromList(ctx, listID, bookID); err != nil {
		log.Printf("[SYNC] Failed to remove book %s from list %s: %v", bookID, listID, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.listIndex(listID); i >= 0 {
		s.lists[i].Books = withoutBook(s.lists[i].Books, bookID)
	}
	return nil
}

// callers must hold s.mu
func (s *Synchronizer) bookIndex(id string) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

// callers must hold s.mu
func (s *Synchronizer) listIndex(id string) int {
	for i := range s.lists {
		if s.lists[i].ID == id {
			return i
		}
	}
	return -1
}

// replaceInLists overwrites every embedded copy of book. Callers must hold
// the write lock.
func (s *Synchronizer) replaceInLists(book library.Book) {
	for i := range s.lists {
		for j := range s.lists[i].Books {
			if s.lists[i].Books[j].ID == book.ID {
				s.lists[i].Books[j] = book
			}
		}
	}
}

func withoutBook(books []library.Book, id string) []library.Book {
	out := make([]library.Book, 0, len(books))
	for _, b := range books {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
