package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/collection"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/library"
)

type testEnv struct {
	router     *gin.Engine
	collection *collection.Synchronizer
	db         *database.Database
}

// setupTestDB creates a fresh file-backed test database
func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "test.db"),
		Timeout:  5 * time.Second,
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// setupTestEnv builds a router over a loaded collection backed by sqlite.
func setupTestEnv(t *testing.T, configure ...func(*RouterConfig)) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	syncer := collection.NewSynchronizer(db.Gateway())
	require.NoError(t, syncer.Load(context.Background()))

	cfg := RouterConfig{
		Collection: syncer,
		Database:   db,
		Version:    "test",
	}
	for _, fn := range configure {
		fn(&cfg)
	}

	return &testEnv{router: NewRouter(cfg), collection: syncer, db: db}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) addBook(t *testing.T, title, author string, status library.Status, progress int) library.Book {
	t.Helper()
	result, err := e.collection.AddBook(context.Background(), library.BookFormData{
		Title:    title,
		Author:   author,
		Status:   status,
		Progress: progress,
	}, nil)
	require.NoError(t, err)
	return result.Book
}

func (e *testEnv) addList(t *testing.T, name string) library.ReadingList {
	t.Helper()
	list, err := e.collection.CreateReadingList(context.Background(), name)
	require.NoError(t, err)
	return list
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
