package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/internal/shared/testutil"
)

func newCatalog(t *testing.T) (*BookService, repository.RepositoryInterface) {
	t.Helper()
	repo := repository.NewSQLiteRepository(testutil.NewSQLite(t, t.TempDir()))
	return NewService(repo), repo
}

func addBook(t *testing.T, repo repository.RepositoryInterface, isbn, title, author string) *model.Book {
	t.Helper()
	now := time.Now().UTC()
	b := &model.Book{ID: uuid.New(), ISBN: isbn, Title: title, Author: author, Available: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestCatalogReads(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCatalog(t)

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	gopl := addBook(t, repo, "9780134190440", "The Go Programming Language", "Alan Donovan")
	addBook(t, repo, "9780262510875", "SICP", "Harold Abelson")

	_, err = repo.SetAvailability(ctx, gopl.ID, true, false, time.Now())
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	available, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "SICP", available[0].Title)

	found, err := svc.Search(ctx, "  donovan ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, gopl.ID, found[0].ID)

	blank, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, blank, 2)
}

func TestCatalogGet(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCatalog(t)
	b := addBook(t, repo, "9780134190440", "GOPL", "Donovan")

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "GOPL", got.Title)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrBookNotFound)

	_, err = svc.Get(ctx, uuid.Nil)
	assert.ErrorIs(t, err, model.ErrInvalidBookID)
}

func TestCatalogExport(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCatalog(t)
	b := addBook(t, repo, "9780134190440", "GOPL", "Donovan")

	f, err := svc.Export(ctx)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, b.ID.String(), rows[1][0])
	assert.Equal(t, "9780134190440", rows[1][1])
	assert.Equal(t, "GOPL", rows[1][2])
	assert.Equal(t, "TRUE", rows[1][4])
}

func TestExportEmptyCatalog(t *testing.T) {
	f, err := buildBooksExcelFile(nil)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, exportSheet, f.GetSheetName(0))
	v, err := f.GetCellValue(exportSheet, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Title", v)
}
