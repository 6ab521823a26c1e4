package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListsController struct {
	collection Collection
}

func NewListsController(collection Collection) *ListsController {
	return &ListsController{collection: collection}
}

type CreateListRequest struct {
	Name string `json:"name"`
}

type AddBookToListRequest struct {
	BookID string `json:"book_id"`
}

// GetAllLists handles GET /api/lists
func (lc *ListsController) GetAllLists(c *gin.Context) {
	lists := lc.collection.Lists()
	c.JSON(http.StatusOK, gin.H{"lists": lists, "count": len(lists)})
}

// GetList handles GET /api/lists/:id
func (lc *ListsController) GetList(c *gin.Context) {
	list, ok := lc.collection.List(c.Param("id"))
	if !ok {
		respondNotFound(c, "reading list")
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateList handles POST /api/lists
func (lc *ListsController) CreateList(c *gin.Context) {
	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	list, err := lc.collection.CreateReadingList(c.Request.Context(), req.Name)
	if err != nil {
		respondDomainError(c, err, "create reading list")
		return
	}
	respondCreated(c, list)
}

// DeleteList handles DELETE /api/lists/:id
func (lc *ListsController) DeleteList(c *gin.Context) {
	id := c.Param("id")
	if _, ok := lc.collection.List(id); !ok {
		respondNotFound(c, "reading list")
		return
	}

	if err := lc.collection.DeleteReadingList(c.Request.Context(), id); err != nil {
		respondDomainError(c, err, "delete reading list")
		return
	}
	respondSuccess(c, "reading list deleted")
}

// AddBook handles POST /api/lists/:id/books
func (lc *ListsController) AddBook(c *gin.Context) {
	listID := c.Param("id")

	var req AddBookToListRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == "" {
		respondBadRequest(c, "book_id is required")
		return
	}

	if list, ok := lc.collection.List(listID); ok && list.Contains(req.BookID) {
		respondError(c, http.StatusConflict, "already_member", "book is already in this list")
		return
	}

	if err := lc.collection.AddBookToList(c.Request.Context(), listID, req.BookID); err != nil {
		respondDomainError(c, err, "add book to list")
		return
	}

	list, _ := lc.collection.List(listID)
	c.JSON(http.StatusOK, list)
}

// RemoveBook handles DELETE /api/lists/:id/books/:bookId
func (lc *ListsController) RemoveBook(c *gin.Context) {
	listID := c.Param("id")
	bookID := c.Param("bookId")

	list, ok := lc.collection.List(listID)
	if !ok {
		respondNotFound(c, "reading list")
		return
	}
	if !list.Contains(bookID) {
		respondNotFound(c, "book in list")
		return
	}

	if err := lc.collection.RemoveBookFromList(c.Request.Context(), listID, bookID); err != nil {
		respondDomainError(c, err, "remove book from list")
		return
	}

	list, _ = lc.collection.List(listID)
	c.JSON(http.StatusOK, list)
}
