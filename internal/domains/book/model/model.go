package model

import (
	"time"

	"github.com/google/uuid"
)

// ============ ENTITIES ============

// Book - catalog entry. Available is false exactly while an active loan
// exists; only the lending service changes it.
type Book struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ISBN      string     `json:"isbn" db:"isbn"`
	Title     string     `json:"title" db:"title"`
	Author    string     `json:"author" db:"author"`
	Available bool       `json:"available" db:"available"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"` // Soft delete
}

// ListFilter narrows catalog listings. The zero value lists every book.
type ListFilter struct {
	AvailableOnly bool
	Keyword       string // case-insensitive match on title or author
}
