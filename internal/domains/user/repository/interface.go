package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/user/model"
)

// Repository is the credential store
type Repository interface {
	// Create inserts a user.
	// Returns: ErrUsernameAlreadyExists / ErrEmailAlreadyExists on duplicates
	Create(ctx context.Context, u *model.User) error

	// FindByUsername returns ErrUserNotFound when absent
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID returns ErrUserNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// classifyUnique maps a unique violation detail to the matching sentinel
func classifyUnique(detail string) error {
	switch {
	case containsFold(detail, "username"):
		return model.ErrUsernameAlreadyExists
	case containsFold(detail, "email"):
		return model.ErrEmailAlreadyExists
	}
	return nil
}
