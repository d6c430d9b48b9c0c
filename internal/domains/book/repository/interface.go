package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface - catalog store. Every read ignores soft-deleted rows.
type RepositoryInterface interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.Book, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// FindByIDForUpdate locks the row until the surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// ExistsByISBN ignores excludeID (uuid.Nil to check every book)
	ExistsByISBN(ctx context.Context, isbn string, excludeID uuid.UUID) (bool, error)

	// Create returns ErrISBNAlreadyExists on duplicates
	Create(ctx context.Context, book *model.Book) error

	// Update writes isbn, title, author and updated_at
	Update(ctx context.Context, book *model.Book) error

	// SetAvailability flips available from -> to. It reports false when the
	// row was not in the expected state, so callers never double-flip.
	SetAvailability(ctx context.Context, id uuid.UUID, from, to bool, at time.Time) (bool, error)

	// SoftDelete only removes an available book; false when nothing matched
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}
