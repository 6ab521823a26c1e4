package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookshelf/internal/library"
)

func TestRespondDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantNot    string
	}{
		{"validation", &library.ValidationError{Field: "title", Message: "title is required"}, http.StatusBadRequest, "validation_error", ""},
		{"not found", &library.NotFoundError{Kind: "book", ID: "b1"}, http.StatusNotFound, "not_found", ""},
		{"storage", library.NewStorageError("create book", errors.New("password authentication failed")), http.StatusBadGateway, "storage_error", "password"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "", "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondDomainError(c, tt.err, "test")

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode[ErrorResponse](t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantNot != "" {
				assert.NotContains(t, w.Body.String(), tt.wantNot)
			}
		})
	}
}

func TestPublicError(t *testing.T) {
	assert.Equal(t, "", publicError(nil))
	assert.Equal(t, "reading list l1 not found", publicError(&library.NotFoundError{Kind: "reading list", ID: "l1"}))
	assert.Equal(t, "storage error during add book to list",
		publicError(library.NewStorageError("add book to list", errors.New("disk I/O error"))))
}
