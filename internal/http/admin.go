package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

type AdminController struct {
	collection Collection
	refresher  Refresher
	pruner     MembershipPruner
	taskQueue  TaskQueue
}

func NewAdminController(collection Collection, refresher Refresher, pruner MembershipPruner, taskQueue TaskQueue) *AdminController {
	return &AdminController{
		collection: collection,
		refresher:  refresher,
		pruner:     pruner,
		taskQueue:  taskQueue,
	}
}

// Reload handles POST /api/admin/reload. It is the way out of a failed
// initial load, so it is reachable before the collection is loaded.
func (ac *AdminController) Reload(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Minute)
	defer cancel()

	var err error
	if ac.refresher != nil {
		err = ac.refresher.RunNow(ctx)
	} else {
		err = ac.collection.Load(ctx)
	}
	if err != nil {
		respondDomainError(c, err, "reload collection")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "collection reloaded",
		"books":   len(ac.collection.Books()),
		"lists":   len(ac.collection.Lists()),
	})
}

// PruneMemberships handles POST /api/admin/prune. With a task queue the
// pruning runs in the background.
func (ac *AdminController) PruneMemberships(c *gin.Context) {
	if ac.taskQueue != nil {
		enqueue(c, ac.taskQueue, tasks.PruneMembershipsTask{})
		return
	}
	if ac.pruner == nil {
		respondError(c, http.StatusServiceUnavailable, "prune_disabled", "membership pruning is not configured")
		return
	}

	deleted, err := ac.pruner.PruneOrphanMemberships(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, "prune memberships")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "memberships pruned", "deleted": deleted})
}
