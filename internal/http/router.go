package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	if cfg.RateLimit.Enabled {
		router.Use(NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Collection, cfg.Version)
	booksController := NewBooksController(cfg.Collection)
	listsController := NewListsController(cfg.Collection)
	metadataController := NewMetadataController(cfg.Collection, cfg.TaskQueue, cfg.Enricher)
	adminController := NewAdminController(cfg.Collection, cfg.Refresher, cfg.Pruner, cfg.TaskQueue)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	router.POST("/api/admin/reload", adminController.Reload)
	router.POST("/api/admin/prune", adminController.PruneMemberships)

	api := router.Group("/api", RequireLoaded(cfg.Collection))

	// Books
	api.GET("/books", booksController.GetAllBooks)
	api.POST("/books", booksController.CreateBook)
	api.GET("/books/:id", booksController.GetBook)
	api.PATCH("/books/:id", booksController.UpdateBook)
	api.DELETE("/books/:id", booksController.DeleteBook)

	// Reading lists
	api.GET("/lists", listsController.GetAllLists)
	api.POST("/lists", listsController.CreateList)
	api.GET("/lists/:id", listsController.GetList)
	api.DELETE("/lists/:id", listsController.DeleteList)
	api.POST("/lists/:id/books", listsController.AddBook)
	api.DELETE("/lists/:id/books/:bookId", listsController.RemoveBook)

	// Cover enrichment
	api.POST("/books/:id/enrich", metadataController.EnrichBook)
	api.POST("/books/enrich-all", metadataController.EnrichAllMissing)
	router.GET("/api/tasks/:id", metadataController.GetTaskStatus)

	return router
}
