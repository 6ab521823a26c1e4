package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/metadata"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// MetadataController handles cover enrichment endpoints. Enrichment is
// enabled by a non-nil enricher; with a task queue the lookup runs in the
// background, otherwise inline.
type MetadataController struct {
	collection CollectionReader
	taskQueue  TaskQueue
	enricher   CoverEnricher
}

func NewMetadataController(collection CollectionReader, taskQueue TaskQueue, enricher CoverEnricher) *MetadataController {
	return &MetadataController{
		collection: collection,
		taskQueue:  taskQueue,
		enricher:   enricher,
	}
}

// EnrichBookRequest is the optional request body for enriching a book.
type EnrichBookRequest struct {
	ISBN string `json:"isbn,omitempty"`
}

// EnrichBookResponse is the response for an inline enrichment.
type EnrichBookResponse struct {
	Success       bool     `json:"success"`
	Book          any      `json:"book,omitempty"`
	FieldsUpdated []string `json:"fields_updated,omitempty"`
	Source        string   `json:"source,omitempty"`
	SearchMethod  string   `json:"search_method,omitempty"`
}

// EnrichBook handles POST /api/books/:id/enrich
func (mc *MetadataController) EnrichBook(c *gin.Context) {
	id := c.Param("id")
	if _, ok := mc.collection.Book(id); !ok {
		respondNotFound(c, "book")
		return
	}

	var req EnrichBookRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	if mc.enricher == nil {
		respondError(c, http.StatusServiceUnavailable, "metadata_disabled", "metadata enrichment is not enabled")
		return
	}

	if mc.taskQueue != nil {
		enqueue(c, mc.taskQueue, tasks.EnrichBookTask{BookID: id, ISBN: req.ISBN})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result, err := mc.enricher.EnrichBook(ctx, id, req.ISBN)
	if errors.Is(err, metadata.ErrNoMatch) {
		respondNotFound(c, "cover")
		return
	}
	if err != nil {
		respondDomainError(c, err, "enrich book")
		return
	}

	c.JSON(http.StatusOK, EnrichBookResponse{
		Success:       true,
		Book:          result.Book,
		FieldsUpdated: result.FieldsUpdated,
		Source:        result.Source,
		SearchMethod:  result.SearchMethod,
	})
}

// EnrichAllMissing handles POST /api/books/enrich-all. Requires the task
// queue.
func (mc *MetadataController) EnrichAllMissing(c *gin.Context) {
	if mc.enricher == nil {
		respondError(c, http.StatusServiceUnavailable, "metadata_disabled", "metadata enrichment is not enabled")
		return
	}
	if mc.taskQueue == nil {
		respondError(c, http.StatusServiceUnavailable, "tasks_disabled", "task queue is not enabled")
		return
	}
	enqueue(c, mc.taskQueue, tasks.EnrichAllBooksTask{})
}

// GetTaskStatus handles GET /api/tasks/:id
func (mc *MetadataController) GetTaskStatus(c *gin.Context) {
	if mc.taskQueue == nil {
		respondError(c, http.StatusServiceUnavailable, "tasks_disabled", "task queue is not enabled")
		return
	}

	taskID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := mc.taskQueue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func enqueue(c *gin.Context, queue TaskQueue, task backlite.Task) {
	taskType := task.Config().Name
	taskID, err := queue.Enqueue(task)
	if err != nil {
		respondInternalError(c, err, "enqueue "+taskType)
		return
	}

	log.Printf("[TASK] Enqueued %s task %s", taskType, taskID)
	respondAccepted(c, "task enqueued", gin.H{"task_id": taskID, "type": taskType})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
