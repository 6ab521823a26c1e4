package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/library"
)

type fakeRefresher struct {
	calls int
	err   error
}

func (r *fakeRefresher) RunNow(ctx context.Context) error {
	r.calls++
	return r.err
}

func TestAdminController_Reload(t *testing.T) {
	t.Run("picks up rows written behind the collection", func(t *testing.T) {
		env := setupTestEnv(t)
		_, err := env.db.Gateway().CreateBook(context.Background(), library.BookFormData{
			Title: "Dune", Author: "Frank Herbert", Status: library.StatusRead, Progress: 100,
		})
		require.NoError(t, err)
		assert.Empty(t, env.collection.Books())

		w := env.do(t, http.MethodPost, "/api/admin/reload", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"books":1`)
		assert.Len(t, env.collection.Books(), 1)
	})

	t.Run("uses the refresher when configured", func(t *testing.T) {
		refresher := &fakeRefresher{}
		env := setupTestEnv(t, func(cfg *RouterConfig) { cfg.Refresher = refresher })

		w := env.do(t, http.MethodPost, "/api/admin/reload", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, refresher.calls)
	})

	t.Run("storage failure is 502", func(t *testing.T) {
		refresher := &fakeRefresher{err: library.NewStorageError("fetch books", errors.New("connection refused"))}
		env := setupTestEnv(t, func(cfg *RouterConfig) { cfg.Refresher = refresher })

		w := env.do(t, http.MethodPost, "/api/admin/reload", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestAdminController_PruneMemberships(t *testing.T) {
	t.Run("runs inline against storage", func(t *testing.T) {
		env := setupTestEnv(t)
		env.router = NewRouter(RouterConfig{Collection: env.collection, Pruner: env.db.Gateway()})

		w := env.do(t, http.MethodPost, "/api/admin/prune", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"deleted":0`)
	})

	t.Run("enqueues with a task queue", func(t *testing.T) {
		queue := &fakeTaskQueue{}
		env := setupTestEnv(t, func(cfg *RouterConfig) { cfg.TaskQueue = queue })

		w := env.do(t, http.MethodPost, "/api/admin/prune", nil)
		require.Equal(t, http.StatusAccepted, w.Code)
		require.Len(t, queue.enqueued, 1)
		assert.Equal(t, "prune_memberships", queue.enqueued[0].Config().Name)
	})

	t.Run("unconfigured is 503", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/admin/prune", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
