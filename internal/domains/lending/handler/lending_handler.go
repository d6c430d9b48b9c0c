package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/lending/service"
	loanmodel "library-backend/internal/domains/loan/model"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

// Handler serves catalog writes, borrow/return and loan history. All of its
// routes sit behind the authentication gate.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ========================================
// CATALOG WRITES
// ========================================

// AddBook - POST /api/books
func (h *Handler) AddBook(c *gin.Context) {
	var req bookmodel.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validationf("invalid request body", err))
		return
	}

	book, err := h.service.AddBook(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// UpdateBook - PUT /api/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := bookmodel.ParseBookID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req bookmodel.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validationf("invalid request body", err))
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// DeleteBook - DELETE /api/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := bookmodel.ParseBookID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.DeleteBook(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// ========================================
// BORROW / RETURN
// ========================================

// Borrow - POST /api/books/:id/borrow
func (h *Handler) Borrow(c *gin.Context) {
	h.lend(c, h.service.Borrow)
}

// Return - POST /api/books/:id/return
func (h *Handler) Return(c *gin.Context) {
	h.lend(c, h.service.Return)
}

type lendFunc func(ctx context.Context, bookID uuid.UUID, requester string) (*loanmodel.Loan, error)

func (h *Handler) lend(c *gin.Context, op lendFunc) {
	requester, ok := requesterOf(c)
	if !ok {
		return
	}

	id, err := bookmodel.ParseBookID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	loan, err := op(c.Request.Context(), id, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, loan)
}

// ========================================
// LOAN HISTORY
// ========================================

// BookLoans - GET /api/books/:id/loans
func (h *Handler) BookLoans(c *gin.Context) {
	id, err := bookmodel.ParseBookID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	loans, err := h.service.BookHistory(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, loans, &response.Meta{Total: len(loans)})
}

// MyLoans - GET /api/loans/me?status=active|all (default active)
func (h *Handler) MyLoans(c *gin.Context) {
	requester, ok := requesterOf(c)
	if !ok {
		return
	}

	var (
		loans []loanmodel.Loan
		err   error
	)
	switch strings.ToLower(c.DefaultQuery("status", loanmodel.StatusActive)) {
	case loanmodel.StatusActive:
		loans, err = h.service.ActiveLoansForUser(c.Request.Context(), requester)
	case loanmodel.StatusAll:
		loans, err = h.service.LoansForUser(c.Request.Context(), requester)
	default:
		err = loanmodel.ErrInvalidStatus
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, loans, &response.Meta{Total: len(loans)})
}

// requesterOf writes 401 and reports false when the route was reached
// without an identity
func requesterOf(c *gin.Context) (string, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok || id.IsAnonymous() {
		response.Unauthorized(c, "authentication required")
		c.Abort()
		return "", false
	}
	return id.Subject, true
}
