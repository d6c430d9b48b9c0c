package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/book/model"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	db database.Querier
}

// NewPostgresRepository accepts the pool or a transaction
func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Book, error) {
	query, args, err := buildListQuery(postgresDialect, filter)
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books query failed: %w", err)
	}

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return r.findOne(ctx, bookSelect+` WHERE id = $1 AND deleted_at IS NULL`, id)
}

// FindByIDForUpdate - SELECT ... FOR UPDATE (row lock)
func (r *postgresRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return r.findOne(ctx, bookSelect+` WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*model.Book, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	book, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Book])
	if err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) ExistsByISBN(ctx context.Context, isbn string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1 AND id <> $2 AND deleted_at IS NULL)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, isbn, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check ISBN: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (id, isbn, title, author, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		book.ID, book.ISBN, book.Title, book.Author, book.Available, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return model.ErrISBNAlreadyExists
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books SET isbn = $2, title = $3, author = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, book.ID, book.ISBN, book.Title, book.Author, book.UpdatedAt)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return model.ErrISBNAlreadyExists
		}
		return fmt.Errorf("update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) SetAvailability(ctx context.Context, id uuid.UUID, from, to bool, at time.Time) (bool, error) {
	query := `
		UPDATE books SET available = $3, updated_at = $4
		WHERE id = $1 AND available = $2 AND deleted_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, id, from, to, at)
	if err != nil {
		return false, fmt.Errorf("set availability: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	query := `
		UPDATE books SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND available = TRUE AND deleted_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		return false, fmt.Errorf("soft delete book: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
