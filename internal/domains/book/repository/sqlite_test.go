package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/testutil"
)

func newBook(isbn, title, author string) *model.Book {
	now := time.Now().UTC()
	return &model.Book{
		ID:        uuid.New(),
		ISBN:      isbn,
		Title:     title,
		Author:    author,
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func seed(t *testing.T, repo RepositoryInterface, books ...*model.Book) {
	t.Helper()
	for _, b := range books {
		require.NoError(t, repo.Create(context.Background(), b))
	}
}

func titles(books []model.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestSQLiteListAndSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(testutil.NewSQLite(t, t.TempDir()))

	gopl := newBook("9780134190440", "The Go Programming Language", "Alan Donovan")
	sicp := newBook("9780262510875", "Structure and Interpretation", "Harold Abelson")
	tapl := newBook("9780262162098", "Types and Programming Languages", "Benjamin Pierce")
	seed(t, repo, gopl, sicp, tapl)

	ok, err := repo.SetAvailability(ctx, sicp.ID, true, false, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	all, err := repo.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Structure and Interpretation", "The Go Programming Language", "Types and Programming Languages"}, titles(all))

	available, err := repo.List(ctx, model.ListFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"The Go Programming Language", "Types and Programming Languages"}, titles(available))

	byTitle, err := repo.List(ctx, model.ListFilter{Keyword: "PROGRAMMING"})
	require.NoError(t, err)
	assert.Len(t, byTitle, 2)

	byAuthor, err := repo.List(ctx, model.ListFilter{Keyword: "abelson"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Structure and Interpretation"}, titles(byAuthor))

	wildcard, err := repo.List(ctx, model.ListFilter{Keyword: "%"})
	require.NoError(t, err)
	assert.Empty(t, wildcard)
}

func TestSQLiteFindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(testutil.NewSQLite(t, t.TempDir()))
	b := newBook("9780134190440", "GOPL", "Donovan")
	seed(t, repo, b)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ISBN, got.ISBN)
	assert.True(t, got.Available)
	assert.Nil(t, got.DeletedAt)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestSQLiteISBNUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(testutil.NewSQLite(t, t.TempDir()))
	a := newBook("9780134190440", "A", "X")
	b := newBook("9780262510875", "B", "Y")
	seed(t, repo, a, b)

	err := repo.Create(ctx, newBook("9780134190440", "Dup", "Z"))
	assert.ErrorIs(t, err, model.ErrISBNAlreadyExists)

	exists, err := repo.ExistsByISBN(ctx, a.ISBN, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByISBN(ctx, a.ISBN, a.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	b.ISBN = a.ISBN
	assert.ErrorIs(t, repo.Update(ctx, b), model.ErrISBNAlreadyExists)
}

func TestSQLiteSetAvailabilityIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(testutil.NewSQLite(t, t.TempDir()))
	b := newBook("9780134190440", "GOPL", "Donovan")
	seed(t, repo, b)

	ok, err := repo.SetAvailability(ctx, b.ID, true, false, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	// already unavailable
	ok, err = repo.SetAvailability(ctx, b.ID, true, false, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(testutil.NewSQLite(t, t.TempDir()))
	onLoan := newBook("9780134190440", "GOPL", "Donovan")
	free := newBook("9780262510875", "SICP", "Abelson")
	seed(t, repo, onLoan, free)

	_, err := repo.SetAvailability(ctx, onLoan.ID, true, false, time.Now())
	require.NoError(t, err)

	ok, err := repo.SoftDelete(ctx, onLoan.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.SoftDelete(ctx, free.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.FindByID(ctx, free.ID)
	assert.ErrorIs(t, err, model.ErrBookNotFound)

	// the ISBN of a deleted book can be reused
	assert.NoError(t, repo.Create(ctx, newBook(free.ISBN, "SICP 2e", "Abelson")))
}
