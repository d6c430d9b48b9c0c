package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"library-backend/internal/domains/user/model"
	"library-backend/pkg/database"
)

type sqliteRepository struct {
	db sqlx.ExtContext
}

// NewSQLiteRepository accepts *sqlx.DB or *sqlx.Tx
func NewSQLiteRepository(db sqlx.ExtContext) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.CreatedAt.UTC())
	if err != nil {
		if detail, ok := database.UniqueViolation(err); ok {
			if domainErr := classifyUnique(detail); domainErr != nil {
				return domainErr
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *sqliteRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *sqliteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *sqliteRepository) findOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	if err := sqlx.GetContext(ctx, r.db, &u, query, arg); err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}
