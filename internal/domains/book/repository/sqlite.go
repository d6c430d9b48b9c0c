package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"library-backend/internal/domains/book/model"
	"library-backend/pkg/database"
)

type sqliteRepository struct {
	db sqlx.ExtContext
}

// NewSQLiteRepository accepts *sqlx.DB or *sqlx.Tx
func NewSQLiteRepository(db sqlx.ExtContext) RepositoryInterface {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Book, error) {
	query, args, err := buildListQuery(sqliteDialect, filter)
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	books := []model.Book{}
	if err := sqlx.SelectContext(ctx, r.db, &books, query, args...); err != nil {
		return nil, fmt.Errorf("list books query failed: %w", err)
	}
	return books, nil
}

func (r *sqliteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var book model.Book
	err := sqlx.GetContext(ctx, r.db, &book, bookSelect+` WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &book, nil
}

// FindByIDForUpdate is a plain read: transactions start with BEGIN IMMEDIATE,
// so the database is already write-locked for the caller.
func (r *sqliteRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *sqliteRepository) ExistsByISBN(ctx context.Context, isbn string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE isbn = ? AND id <> ? AND deleted_at IS NULL)`
	var exists bool
	if err := sqlx.GetContext(ctx, r.db, &exists, query, isbn, excludeID); err != nil {
		return false, fmt.Errorf("failed to check ISBN: %w", err)
	}
	return exists, nil
}

func (r *sqliteRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (id, isbn, title, author, available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		book.ID, book.ISBN, book.Title, book.Author, book.Available, book.CreatedAt.UTC(), book.UpdatedAt.UTC(),
	)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return model.ErrISBNAlreadyExists
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *sqliteRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books SET isbn = ?, title = ?, author = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, book.ISBN, book.Title, book.Author, book.UpdatedAt.UTC(), book.ID)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return model.ErrISBNAlreadyExists
		}
		return fmt.Errorf("update book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if n == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *sqliteRepository) SetAvailability(ctx context.Context, id uuid.UUID, from, to bool, at time.Time) (bool, error) {
	query := `
		UPDATE books SET available = ?, updated_at = ?
		WHERE id = ? AND available = ? AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, to, at.UTC(), id, from)
	if err != nil {
		return false, fmt.Errorf("set availability: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set availability: %w", err)
	}
	return n == 1, nil
}

func (r *sqliteRepository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	query := `
		UPDATE books SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND available = 1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, at.UTC(), at.UTC(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete book: %w", err)
	}
	return n == 1, nil
}
