package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/book/model"
)

// ServiceInterface - read side of the catalog. Writes that touch availability
// go through the lending service.
type ServiceInterface interface {
	List(ctx context.Context) ([]model.Book, error)
	ListAvailable(ctx context.Context) ([]model.Book, error)
	Search(ctx context.Context, keyword string) ([]model.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Export(ctx context.Context) (*excelize.File, error)
}
