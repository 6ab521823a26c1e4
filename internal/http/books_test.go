package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/collection"
	"github.com/mrlokans/bookshelf/internal/library"
)

func TestBooksController_GetAllBooks(t *testing.T) {
	env := setupTestEnv(t)
	env.addBook(t, "Dune", "Frank Herbert", library.StatusReading, 40)
	env.addBook(t, "Emma", "Jane Austen", library.StatusRead, 100)
	env.addBook(t, "Neuromancer", "William Gibson", library.StatusWishList, 0)

	t.Run("returns every book newest first with counts", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/books", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[BooksResponse](t, w)
		assert.Equal(t, 3, resp.Count)
		assert.Equal(t, "Neuromancer", resp.Books[0].Title)
		require.Len(t, resp.CurrentlyReading, 1)
		assert.Equal(t, "Dune", resp.CurrentlyReading[0].Title)
		assert.Equal(t, 3, resp.Counts[library.FilterAll])
		assert.Equal(t, 1, resp.Counts[library.Filter(library.StatusRead)])
	})

	t.Run("filters by query and status", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/books?q=dune", nil)
		resp := decode[BooksResponse](t, w)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Dune", resp.Books[0].Title)

		w = env.do(t, http.MethodGet, "/api/books?filter=Wish+List", nil)
		resp = decode[BooksResponse](t, w)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Neuromancer", resp.Books[0].Title)
		assert.Equal(t, 3, resp.Counts[library.FilterAll], "counts ignore the active filter")
	})

	t.Run("rejects an unknown filter", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/books?filter=Abandoned", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_CreateBook(t *testing.T) {
	t.Run("creates a book and files it under lists", func(t *testing.T) {
		env := setupTestEnv(t)
		list := env.addList(t, "Favorites")

		w := env.do(t, http.MethodPost, "/api/books", map[string]any{
			"title":    "  Dune ",
			"author":   "Frank Herbert",
			"status":   "Reading",
			"progress": 42,
			"list_ids": []string{list.ID},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := decode[CreateBookResponse](t, w)
		assert.NotEmpty(t, resp.Book.ID)
		assert.Equal(t, "Dune", resp.Book.Title)
		assert.Equal(t, 42, resp.Book.Progress)
		require.Len(t, resp.Lists, 1)
		assert.True(t, resp.Lists[0].Added)

		stored, ok := env.collection.List(list.ID)
		require.True(t, ok)
		assert.True(t, stored.Contains(resp.Book.ID))
	})

	t.Run("reports partial failure with 207", func(t *testing.T) {
		env := setupTestEnv(t)
		list := env.addList(t, "Favorites")

		w := env.do(t, http.MethodPost, "/api/books", map[string]any{
			"title":    "Emma",
			"author":   "Jane Austen",
			"list_ids": []string{list.ID, "missing"},
		})
		require.Equal(t, http.StatusMultiStatus, w.Code)

		resp := decode[CreateBookResponse](t, w)
		require.Len(t, resp.Lists, 2)
		assert.True(t, resp.Lists[0].Added)
		assert.False(t, resp.Lists[1].Added)
		assert.Contains(t, resp.Lists[1].Error, "not found")

		_, ok := env.collection.Book(resp.Book.ID)
		assert.True(t, ok, "the book survives a failed membership")
	})

	t.Run("rejects a blank title", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/books", map[string]any{"title": "  ", "author": "Anon"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
		assert.Empty(t, env.collection.Books())
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/books", "not an object")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_GetBook(t *testing.T) {
	env := setupTestEnv(t)
	book := env.addBook(t, "Dune", "Frank Herbert", library.StatusWishList, 0)

	w := env.do(t, http.MethodGet, "/api/books/"+book.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dune", decode[library.Book](t, w).Title)

	w = env.do(t, http.MethodGet, "/api/books/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBooksController_UpdateBook(t *testing.T) {
	t.Run("marking read completes progress everywhere", func(t *testing.T) {
		env := setupTestEnv(t)
		book := env.addBook(t, "Dune", "Frank Herbert", library.StatusWishList, 0)
		list := env.addList(t, "Favorites")
		require.NoError(t, env.collection.AddBookToList(context.Background(), list.ID, book.ID))

		w := env.do(t, http.MethodPatch, "/api/books/"+book.ID, map[string]any{"status": "Read"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		updated := decode[library.Book](t, w)
		assert.Equal(t, library.StatusRead, updated.Status)
		assert.Equal(t, 100, updated.Progress)

		stored, _ := env.collection.List(list.ID)
		require.Len(t, stored.Books, 1)
		assert.Equal(t, 100, stored.Books[0].Progress)
	})

	t.Run("unknown book is 404", func(t *testing.T) {
		env := setupTestEnv(t)
		w := env.do(t, http.MethodPatch, "/api/books/missing", map[string]any{"rating": 3})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		env := setupTestEnv(t)
		book := env.addBook(t, "Dune", "Frank Herbert", library.StatusWishList, 0)

		w := env.do(t, http.MethodPatch, "/api/books/"+book.ID, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		env := setupTestEnv(t)
		book := env.addBook(t, "Dune", "Frank Herbert", library.StatusWishList, 0)

		w := env.do(t, http.MethodPatch, "/api/books/"+book.ID, map[string]any{"status": "Abandoned"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_DeleteBook(t *testing.T) {
	env := setupTestEnv(t)
	book := env.addBook(t, "Dune", "Frank Herbert", library.StatusRead, 100)
	a := env.addList(t, "Favorites")
	b := env.addList(t, "Sci-Fi")
	for _, l := range []library.ReadingList{a, b} {
		require.NoError(t, env.collection.AddBookToList(context.Background(), l.ID, book.ID))
	}

	w := env.do(t, http.MethodDelete, "/api/books/"+book.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, l := range env.collection.Lists() {
		assert.False(t, l.Contains(book.ID), "list %s still holds the book", l.Name)
	}

	w = env.do(t, http.MethodDelete, "/api/books/"+book.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBooksController_RequiresLoadedCollection(t *testing.T) {
	db := setupTestDB(t)
	router := NewRouter(RouterConfig{Collection: collection.NewSynchronizer(db.Gateway()), Database: db})
	env := &testEnv{router: router}

	w := env.do(t, http.MethodGet, "/api/books", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/books", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
