package entrypoint

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/library"
)

func TestCheckConnection(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database = config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "bookshelf.db"),
		Timeout:  5 * time.Second,
		LogLevel: "silent",
	}

	count, err := CheckConnection(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	db, err := database.NewDatabase(cfg.Database)
	require.NoError(t, err)
	_, err = db.Gateway().CreateBook(context.Background(), library.BookFormData{
		Title: "Dune", Author: "Frank Herbert", Status: library.StatusWishList,
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	count, err = CheckConnection(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCheckConnection_BadConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database = config.Database{Driver: config.DriverPostgres}

	_, err := CheckConnection(context.Background(), cfg)
	assert.ErrorContains(t, err, "open database")
}
