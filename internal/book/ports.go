package book

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
// Every call runs on its own scoped session acquired from the pool.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, uid uuid.UUID) (Book, error)
	Create(ctx context.Context, b Book) (Book, error)
	// Update loads the book, passes it to apply and writes it back, all on one session.
	Update(ctx context.Context, uid uuid.UUID, apply func(*Book)) (Book, error)
	Delete(ctx context.Context, uid uuid.UUID) error
}
