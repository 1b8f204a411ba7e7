package book

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service provides book-related business logic.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() uuid.UUID
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the uid generator.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a new book service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every book, newest first.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get returns a book by its uid.
func (s *Service) Get(ctx context.Context, uid uuid.UUID) (Book, error) {
	return s.repo.Get(ctx, uid)
}

// Create builds a new record with a fresh uid and timestamps and persists it.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	now := s.now()
	b := Book{
		UID:           s.newID(),
		Title:         in.Title,
		Author:        in.Author,
		Publisher:     in.Publisher,
		PublishedDate: in.PublishedDate,
		PageCount:     in.PageCount,
		Language:      in.Language,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.repo.Create(ctx, b)
}

// Update applies the supplied fields to an existing book.
// An input with no fields returns the stored book without writing.
func (s *Service) Update(ctx context.Context, uid uuid.UUID, in UpdateInput) (Book, error) {
	if in.Empty() {
		return s.repo.Get(ctx, uid)
	}
	now := s.now()
	return s.repo.Update(ctx, uid, func(b *Book) {
		in.Apply(b)
		b.UpdatedAt = now
	})
}

// Delete removes a book.
func (s *Service) Delete(ctx context.Context, uid uuid.UUID) error {
	return s.repo.Delete(ctx, uid)
}
