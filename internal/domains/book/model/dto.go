package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// isbn column width
const maxISBNLength = 32

// ============ REQUEST DTOs ============

// CreateBookRequest - POST /api/books
type CreateBookRequest struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

func (r *CreateBookRequest) Normalize() {
	r.ISBN = strings.TrimSpace(r.ISBN)
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r, bookFieldRules(&r.ISBN, &r.Title, &r.Author)...)
}

// UpdateBookRequest - PUT /api/books/:id. Overwrites all three fields.
type UpdateBookRequest struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

func (r *UpdateBookRequest) Normalize() {
	r.ISBN = strings.TrimSpace(r.ISBN)
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r, bookFieldRules(&r.ISBN, &r.Title, &r.Author)...)
}

func bookFieldRules(isbn, title, author *string) []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(isbn,
			validation.Required.Error("isbn is required"),
			validation.RuneLength(1, maxISBNLength),
		),
		validation.Field(title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
	}
}

// ParseBookID parses the :id path parameter
func ParseBookID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidBookID
	}
	return id, nil
}

// ============ RESPONSE DTOs ============

type DeleteBookResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
