package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/book/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubCatalog struct {
	books   []model.Book
	keyword string
}

func (s *stubCatalog) List(context.Context) ([]model.Book, error) { return s.books, nil }

func (s *stubCatalog) ListAvailable(context.Context) ([]model.Book, error) {
	out := []model.Book{}
	for _, b := range s.books {
		if b.Available {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubCatalog) Search(_ context.Context, keyword string) ([]model.Book, error) {
	s.keyword = keyword
	return s.books, nil
}

func (s *stubCatalog) Get(_ context.Context, id uuid.UUID) (*model.Book, error) {
	for _, b := range s.books {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (s *stubCatalog) Export(context.Context) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "ID"); err != nil {
		return nil, err
	}
	return f, nil
}

func newRouter(svc *stubCatalog) *gin.Engine {
	h := NewHandler(svc)
	r := gin.New()
	r.GET("/api/books", h.ListBooks)
	r.GET("/api/books/available", h.ListAvailableBooks)
	r.GET("/api/books/search", h.SearchBooks)
	r.GET("/api/books/export", h.ExportBooks)
	r.GET("/api/books/:id", h.GetBook)
	return r
}

func get(r http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func sampleBooks() []model.Book {
	now := time.Now().UTC()
	return []model.Book{
		{ID: uuid.New(), ISBN: "9780134190440", Title: "GOPL", Author: "Donovan", Available: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), ISBN: "9780262510875", Title: "SICP", Author: "Abelson", Available: false, CreatedAt: now, UpdatedAt: now},
	}
}

func TestListEndpoints(t *testing.T) {
	svc := &stubCatalog{books: sampleBooks()}
	r := newRouter(svc)

	w, body := get(r, "/api/books")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], 2)
	assert.EqualValues(t, 2, body["meta"].(map[string]any)["total"])

	_, body = get(r, "/api/books/available")
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "GOPL", data[0].(map[string]any)["title"])

	w, _ = get(r, "/api/books/search?keyword=go")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "go", svc.keyword)
}

func TestGetBook(t *testing.T) {
	books := sampleBooks()
	r := newRouter(&stubCatalog{books: books})

	w, body := get(r, "/api/books/"+books[0].ID.String())
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "9780134190440", data["isbn"])
	assert.NotContains(t, data, "deleted_at")

	w, body = get(r, "/api/books/"+uuid.NewString())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NOT_FOUND", body["error"].(map[string]any)["code"])

	w, body = get(r, "/api/books/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", body["error"].(map[string]any)["code"])
}

func TestExportBooks(t *testing.T) {
	r := newRouter(&stubCatalog{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books/export", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", v)
}
