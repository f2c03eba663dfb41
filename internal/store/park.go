package store

import (
	"context"

	"github.com/osu-parks/parks-api/internal/domain"
)

// ParkStore defines the interface for park data persistence.
type ParkStore interface {
	// List returns the parks matching filter. An empty result is not an error.
	// Returns *domain.InvalidAmenityError if an amenity filter names an unknown amenity.
	List(ctx context.Context, filter domain.ParkFilter) ([]*domain.Park, error)

	// GetByID retrieves a park by its ID.
	// Returns ErrParkNotFound if the park does not exist and
	// *domain.IntegrityViolationError if more than one row matches.
	GetByID(ctx context.Context, id int64) (*domain.Park, error)

	// ListByOwner returns the parks of an owner.
	// Returns ErrOwnerNotFound if the owner does not exist.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Park, error)

	// Create inserts a park and returns it as stored.
	// Returns *domain.ForeignKeyViolationError if the owner does not exist.
	Create(ctx context.Context, park *domain.Park) (*domain.Park, error)

	// Update applies changes and returns the park as stored.
	// Empty changes leave the park untouched.
	// Returns ErrParkNotFound if the park does not exist.
	Update(ctx context.Context, id int64, changes domain.ParkChanges) (*domain.Park, error)

	// Delete removes a park. Returns ErrParkNotFound if the park does not exist.
	Delete(ctx context.Context, id int64) error
}
