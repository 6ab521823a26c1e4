package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/collection"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/metadata"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

const initialLoadTimeout = 30 * time.Second

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT; SIGKILL can't be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server so no job outlives the database.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	gateway := db.Gateway()
	books := collection.NewSynchronizer(gateway)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), initialLoadTimeout)
	if err := books.Load(loadCtx); err != nil {
		log.Printf("WARNING: initial collection load failed: %v. API answers 503 until POST /api/admin/reload succeeds", err)
	}
	cancelLoad()

	refresher := scheduler.NewRefreshScheduler(books, gateway, cfg.Refresh.Schedule)

	routerCfg := http_controllers.RouterConfig{
		Collection: books,
		Database:   db,
		Refresher:  refresher,
		Pruner:     gateway,
		RateLimit:  cfg.RateLimit,
		Version:    version,
	}

	var enricher tasks.CoverEnricher
	if cfg.Metadata.Enabled {
		client := metadata.NewOpenLibraryClient(
			metadata.WithBaseURL(cfg.Metadata.OpenLibraryURL),
			metadata.WithUserAgent(cfg.Metadata.UserAgent),
			metadata.WithRateLimit(cfg.Metadata.RequestsPerSecond),
		)
		e := metadata.NewEnricher(client, books)
		enricher = e
		routerCfg.Enricher = e
		log.Printf("Cover enrichment enabled via %s", cfg.Metadata.OpenLibraryURL)
	}

	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		if cfg.Database.Path == "" {
			log.Fatalf("Task queue needs DATABASE_PATH to place its SQLite database")
		}
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromAppConfig(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewEnrichBookQueue(enricher),
			tasks.NewEnrichAllBooksQueue(enricher),
			tasks.NewPruneMembershipsQueue(gateway),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
		routerCfg.TaskQueue = taskClient
	}

	schedCtx, cancelSched := context.WithCancel(context.Background())
	defer cancelSched()
	if cfg.Refresh.Enabled {
		if err := refresher.Start(schedCtx); err != nil {
			log.Fatalf("Failed to start refresh scheduler: %v", err)
		}
	} else {
		log.Printf("[SCHEDULER] Refresh disabled")
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		refresher.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// CheckConnection opens the configured store and counts its books. It is
// the quickest way to confirm credentials and schema before serving.
func CheckConnection(ctx context.Context, cfg *config.Config) (int, error) {
	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return 0, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		return 0, fmt.Errorf("ping database: %w", err)
	}
	return db.Gateway().CountBooks(ctx)
}
