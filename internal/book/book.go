package book

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a book entity.
type Book struct {
	UID           uuid.UUID `json:"uid" db:"uid"`
	Title         *string   `json:"title" db:"title"`
	Author        *string   `json:"author" db:"author"`
	Publisher     *string   `json:"publisher" db:"publisher"`
	PublishedDate *string   `json:"published_date" db:"published_date"`
	PageCount     *int      `json:"page_count" db:"page_count"`
	Language      *string   `json:"language" db:"language"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CreateInput is the body accepted by POST /api/v1/books.
// title, author and publisher must be present and non-null; empty strings are accepted.
type CreateInput struct {
	Title         *string `json:"title" validate:"required"`
	Author        *string `json:"author" validate:"required"`
	Publisher     *string `json:"publisher" validate:"required"`
	PublishedDate *string `json:"published_date"`
	PageCount     *int    `json:"page_count"`
	Language      *string `json:"language"`
}

// UpdateInput is the body accepted by PATCH /api/v1/books/{uid}.
// Only keys present in the request are applied; an explicit null clears the field.
type UpdateInput struct {
	Title     Optional[string] `json:"title"`
	Author    Optional[string] `json:"author"`
	Publisher Optional[string] `json:"publisher"`
	PageCount Optional[int]    `json:"page_count"`
	Language  Optional[string] `json:"language"`
}

// Empty reports whether no field was supplied.
func (in UpdateInput) Empty() bool {
	return !in.Title.Set && !in.Author.Set && !in.Publisher.Set && !in.PageCount.Set && !in.Language.Set
}

// Apply assigns every supplied field to b.
func (in UpdateInput) Apply(b *Book) {
	in.Title.assign(&b.Title)
	in.Author.assign(&b.Author)
	in.Publisher.assign(&b.Publisher)
	in.PageCount.assign(&b.PageCount)
	in.Language.assign(&b.Language)
}

func ptr[T any](v T) *T {
	return &v
}
