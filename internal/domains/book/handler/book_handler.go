package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves the read-only catalog endpoints
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks - GET /api/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{Total: len(books)})
}

// ListAvailableBooks - GET /api/books/available
func (h *Handler) ListAvailableBooks(c *gin.Context) {
	books, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{Total: len(books)})
}

// SearchBooks - GET /api/books/search?keyword=
func (h *Handler) SearchBooks(c *gin.Context) {
	books, err := h.service.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{Total: len(books)})
}

// GetBook - GET /api/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := model.ParseBookID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	book, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// ExportBooks - GET /api/books/export
func (h *Handler) ExportBooks(c *gin.Context) {
	f, err := h.service.Export(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("close export workbook")
		}
	}()

	filename := fmt.Sprintf("books-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)

	if _, err := f.WriteTo(c.Writer); err != nil {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("write export workbook")
	}
}
