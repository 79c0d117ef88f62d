package handler

import (
	"go-mini-sites/internal/logger"
	"go-mini-sites/internal/middleware"
	"go-mini-sites/internal/service"
	"go-mini-sites/internal/view"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// BookHandler serves the bookstore.
type BookHandler struct {
	books service.BookServicer
	view  *view.View
	log   logger.Logger
}

// NewBookHandler creates a new BookHandler with the given dependencies.
func NewBookHandler(bs service.BookServicer, v *view.View, log logger.Logger) *BookHandler {
	return &BookHandler{books: bs, view: v, log: log}
}

func (h *BookHandler) index(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	index, err := h.books.Index(r.Context())
	if err != nil {
		return middleware.Internal(err)
	}
	return render(w, h.view, http.StatusOK, "books_index.html", map[string]interface{}{
		"Books":         index.Books,
		"Total":         index.Total,
		"AverageRating": index.AverageRating,
	})
}

func (h *BookHandler) detail(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	book, err := h.books.Detail(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return lookupError(err, "Book not found")
	}
	return render(w, h.view, http.StatusOK, "book_detail.html", map[string]interface{}{"Book": book})
}
