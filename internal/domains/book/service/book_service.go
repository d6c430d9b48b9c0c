package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
)

const exportSheet = "Books"

var exportHeaders = []string{"ID", "ISBN", "Title", "Author", "Available", "Created At", "Updated At"}

// BookService - Implements ServiceInterface
type BookService struct {
	repo repository.RepositoryInterface
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface) *BookService {
	return &BookService{repo: repo}
}

// List returns every catalog book ordered by title
func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	return s.list(ctx, model.ListFilter{})
}

func (s *BookService) ListAvailable(ctx context.Context) ([]model.Book, error) {
	return s.list(ctx, model.ListFilter{AvailableOnly: true})
}

// Search matches keyword against title or author, ignoring case. A blank
// keyword behaves like List.
func (s *BookService) Search(ctx context.Context, keyword string) ([]model.Book, error) {
	return s.list(ctx, model.ListFilter{Keyword: strings.TrimSpace(keyword)})
}

func (s *BookService) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if id == uuid.Nil {
		return nil, model.ErrInvalidBookID
	}
	return s.repo.FindByID(ctx, id)
}

// Export renders the whole catalog as a single-sheet workbook
func (s *BookService) Export(ctx context.Context) (*excelize.File, error) {
	books, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	f, err := buildBooksExcelFile(books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}

	log.Info().Int("books", len(books)).Msg("catalog exported")
	return f, nil
}

func (s *BookService) list(ctx context.Context, filter model.ListFilter) ([]model.Book, error) {
	books, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, nil
}

func buildBooksExcelFile(books []model.Book) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	// Row 1: header
	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(exportHeaders))
	if err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle)
	}

	// Data rows start at row 2
	for i, b := range books {
		row := []any{
			b.ID.String(),
			b.ISBN,
			b.Title,
			b.Author,
			b.Available,
			b.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			b.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(exportSheet, "A", lastCol, 18)

	return f, nil
}
