package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/filter"
	"github.com/mrlokans/bookshelf/internal/library"
)

type BooksController struct {
	collection Collection
}

func NewBooksController(collection Collection) *BooksController {
	return &BooksController{collection: collection}
}

// BooksResponse is the main grid: the filtered books plus the values shown
// around it.
type BooksResponse struct {
	Books            []library.Book         `json:"books"`
	Count            int                    `json:"count"`
	CurrentlyReading []library.Book         `json:"currently_reading"`
	Counts           map[library.Filter]int `json:"counts"`
}

// CreateBookRequest is the add-book form plus the lists to file the new book
// under.
type CreateBookRequest struct {
	library.BookFormData
	ListIDs []string `json:"list_ids"`
}

// ListOutcomeResponse reports one membership step of a book creation.
type ListOutcomeResponse struct {
	ListID string `json:"list_id"`
	Added  bool   `json:"added"`
	Error  string `json:"error,omitempty"`
}

type CreateBookResponse struct {
	Book  library.Book          `json:"book"`
	Lists []ListOutcomeResponse `json:"lists"`
}

// GetAllBooks handles GET /api/books?q=&filter=
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	f, err := library.ParseFilter(c.Query("filter"))
	if err != nil {
		respondDomainError(c, err, "list books")
		return
	}

	all := bc.collection.Books()
	visible := filter.Apply(all, c.Query("q"), f)

	c.JSON(http.StatusOK, BooksResponse{
		Books:            visible,
		Count:            len(visible),
		CurrentlyReading: filter.CurrentlyReading(all),
		Counts:           filter.Counts(all),
	})
}

// GetBook handles GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	book, ok := bc.collection.Book(c.Param("id"))
	if !ok {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook handles POST /api/books. A book that was created but could not
// be added to every requested list is answered with 207.
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	result, err := bc.collection.AddBook(c.Request.Context(), req.BookFormData, req.ListIDs)
	if err != nil {
		respondDomainError(c, err, "create book")
		return
	}

	resp := CreateBookResponse{
		Book:  result.Book,
		Lists: make([]ListOutcomeResponse, 0, len(result.Lists)),
	}
	for _, o := range result.Lists {
		resp.Lists = append(resp.Lists, ListOutcomeResponse{
			ListID: o.ListID,
			Added:  o.Added(),
			Error:  publicError(o.Err),
		})
	}

	if !result.Complete() {
		c.JSON(http.StatusMultiStatus, resp)
		return
	}
	respondCreated(c, resp)
}

// UpdateBook handles PATCH /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id := c.Param("id")
	if _, ok := bc.collection.Book(id); !ok {
		respondNotFound(c, "book")
		return
	}

	var update library.BookUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if update.IsEmpty() {
		respondBadRequest(c, "no fields to update")
		return
	}

	book, err := bc.collection.UpdateBook(c.Request.Context(), id, update)
	if err != nil {
		respondDomainError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook handles DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id := c.Param("id")
	if _, ok := bc.collection.Book(id); !ok {
		respondNotFound(c, "book")
		return
	}

	if err := bc.collection.DeleteBook(c.Request.Context(), id); err != nil {
		respondDomainError(c, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}
