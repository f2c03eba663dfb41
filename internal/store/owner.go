package store

import (
	"context"

	"github.com/osu-parks/parks-api/internal/domain"
)

// OwnerStore defines the interface for owner data persistence.
type OwnerStore interface {
	// List returns every owner. An empty result is not an error.
	List(ctx context.Context) ([]*domain.Owner, error)

	// GetByID retrieves an owner by its ID.
	// Returns ErrOwnerNotFound if the owner does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Owner, error)

	// Create inserts an owner and returns it as stored.
	Create(ctx context.Context, owner *domain.Owner) (*domain.Owner, error)

	// Update applies changes and returns the owner as stored.
	// Returns ErrOwnerNotFound if the owner does not exist.
	Update(ctx context.Context, id int64, changes domain.OwnerChanges) (*domain.Owner, error)

	// Delete removes an owner. Returns ErrOwnerNotFound if the owner does not
	// exist and *domain.ForeignKeyViolationError while parks reference it.
	Delete(ctx context.Context, id int64) error
}
