package postgres

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/osu-parks/parks-api/internal/domain"
	"github.com/osu-parks/parks-api/internal/platform/logger"
	"github.com/osu-parks/parks-api/internal/query"
	"github.com/osu-parks/parks-api/internal/redact"
	"github.com/osu-parks/parks-api/internal/store"
)

const parkBaseColumns = "ID, NAME, STREET_ADDRESS, CITY, STATE, ZIP, LATITUDE, LONGITUDE, OWNER_ID"

// PostgresParkStore implements the store.ParkStore interface
// using a PostgreSQL database as the storage backend.
type PostgresParkStore struct {
	db         store.DBTX
	schema     *domain.Schema
	logger     *slog.Logger
	amenities  []string
	selectBase string
}

// NewPostgresParkStore creates a new PostgreSQL implementation of the ParkStore interface.
// The schema decides which amenity columns are read and written.
// If logger is nil, a default logger will be used.
func NewPostgresParkStore(db store.DBTX, schema *domain.Schema, logger *slog.Logger) *PostgresParkStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if schema == nil {
		panic("schema cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	cols := parkBaseColumns
	if ac := schema.AmenityColumns(); len(ac) > 0 {
		cols += ", " + strings.Join(ac, ", ")
	}

	return &PostgresParkStore{
		db:         db,
		schema:     schema,
		logger:     logger.With(slog.String("component", "park_store")),
		amenities:  schema.Amenities(),
		selectBase: "SELECT " + cols + "\nFROM PARKS",
	}
}

// Ensure PostgresParkStore implements store.ParkStore interface
var _ store.ParkStore = (*PostgresParkStore)(nil)

// List implements store.ParkStore.List.
// Amenity filters are compiled before any statement runs.
func (s *PostgresParkStore) List(ctx context.Context, filter domain.ParkFilter) ([]*domain.Park, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	b := query.NewBuilder()
	if filter.Name != "" {
		b.Where("NAME = ?", filter.Name)
	}
	if filter.City != "" {
		b.Where("CITY = ?", filter.City)
	}
	if filter.State != "" {
		b.Where("STATE = ?", filter.State)
	}
	if filter.Zip != "" {
		b.Where("ZIP = ?", filter.Zip)
	}

	all, err := query.CompileAmenityFilter(s.schema, filter.AmenitiesAll, query.ModeAll)
	if err != nil {
		return nil, err
	}
	some, err := query.CompileAmenityFilter(s.schema, filter.AmenitiesSome, query.ModeSome)
	if err != nil {
		return nil, err
	}
	b.Raw(all).Raw(some)

	parks, err := s.queryParks(ctx, b.Select(s.selectBase)+"\nORDER BY ID", b.Args())
	if err != nil {
		log.Error("failed to list parks", slog.String("error", redact.Error(err)))
		return nil, err
	}

	log.Debug("parks listed", slog.Int("count", len(parks)))
	return parks, nil
}

// GetByID implements store.ParkStore.GetByID.
func (s *PostgresParkStore) GetByID(ctx context.Context, id int64) (*domain.Park, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	b := query.NewBuilder().Where("ID = ?", id)
	parks, err := s.queryParks(ctx, b.Select(s.selectBase), b.Args())
	if err != nil {
		log.Error("failed to get park by ID",
			slog.String("error", redact.Error(err)),
			slog.Int64("park_id", id))
		return nil, err
	}

	switch len(parks) {
	case 0:
		log.Debug("park not found", slog.Int64("park_id", id))
		return nil, store.ErrParkNotFound
	case 1:
		return parks[0], nil
	default:
		log.Error("multiple parks share an ID",
			slog.Int64("park_id", id),
			slog.Int("count", len(parks)))
		return nil, &domain.IntegrityViolationError{Resource: domain.ResourcePark, Detail: domain.ErrMultipleResults}
	}
}

// ListByOwner implements store.ParkStore.ListByOwner.
func (s *PostgresParkStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Park, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM OWNERS WHERE ID = $1", ownerID).Scan(&count); err != nil {
		log.Error("failed to check owner existence",
			slog.String("error", redact.Error(err)),
			slog.Int64("owner_id", ownerID))
		return nil, err
	}
	if count == 0 {
		log.Debug("owner not found", slog.Int64("owner_id", ownerID))
		return nil, store.ErrOwnerNotFound
	}

	b := query.NewBuilder().Where("OWNER_ID = ?", ownerID)
	parks, err := s.queryParks(ctx, b.Select(s.selectBase)+"\nORDER BY ID", b.Args())
	if err != nil {
		log.Error("failed to list parks by owner",
			slog.String("error", redact.Error(err)),
			slog.Int64("owner_id", ownerID))
		return nil, err
	}
	return parks, nil
}

// Create implements store.ParkStore.Create.
// The park is validated before any statement runs; the stored park is re-fetched
// after the insert.
func (s *PostgresParkStore) Create(ctx context.Context, park *domain.Park) (*domain.Park, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validateNew(park); err != nil {
		log.Debug("park validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	cols := []string{"NAME", "STREET_ADDRESS", "CITY", "STATE", "ZIP", "LATITUDE", "LONGITUDE", "OWNER_ID"}
	b := query.NewBuilder()
	placeholders := []string{
		b.Bind(park.Name),
		b.Bind(park.Location.StreetAddress),
		b.Bind(park.Location.City),
		b.Bind(park.Location.State),
		b.Bind(strconv.Itoa(park.Location.Zip)),
		b.Bind(park.Location.Latitude),
		b.Bind(park.Location.Longitude),
		b.Bind(park.OwnerID),
	}
	for _, name := range s.amenities {
		col, _ := s.schema.AmenityColumn(name)
		cols = append(cols, col)
		placeholders = append(placeholders, b.Bind(flag(park.HasAmenity(name))))
	}

	stmt := "INSERT INTO PARKS (" + strings.Join(cols, ", ") + ")\nVALUES (" +
		strings.Join(placeholders, ", ") + ")\nRETURNING ID"

	var id int64
	if err := s.db.QueryRowContext(ctx, stmt, b.Args()...).Scan(&id); err != nil {
		mapped := MapWriteError(err, domain.OpInsert, domain.ResourcePark)
		if mapped != err {
			log.Debug("owner missing during park creation", slog.Int64("owner_id", park.OwnerID))
			return nil, mapped
		}
		log.Error("failed to create park", slog.String("error", redact.Error(err)))
		return nil, err
	}

	log.Info("park created", slog.Int64("park_id", id))
	return s.GetByID(ctx, id)
}

// Update implements store.ParkStore.Update.
// Empty changes run no mutating statement and return the current park.
func (s *PostgresParkStore) Update(ctx context.Context, id int64, changes domain.ParkChanges) (*domain.Park, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if changes.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	b := query.NewBuilder()
	if err := s.assignChanges(b, changes); err != nil {
		log.Debug("park validation failed during update", slog.String("error", err.Error()))
		return nil, err
	}
	if !b.HasAssignments() {
		return s.GetByID(ctx, id)
	}

	stmt := "UPDATE PARKS SET " + b.SetClause() + " WHERE ID = " + b.Bind(id)
	result, err := s.db.ExecContext(ctx, stmt, b.Args()...)
	if err != nil {
		mapped := MapWriteError(err, domain.OpUpdate, domain.ResourcePark)
		if mapped != err {
			log.Debug("owner missing during park update", slog.Int64("park_id", id))
			return nil, mapped
		}
		log.Error("failed to update park",
			slog.String("error", redact.Error(err)),
			slog.Int64("park_id", id))
		return nil, err
	}
	if err := CheckRowsAffected(result, store.ErrParkNotFound); err != nil {
		return nil, err
	}

	log.Info("park updated", slog.Int64("park_id", id))
	return s.GetByID(ctx, id)
}

// Delete implements store.ParkStore.Delete.
func (s *PostgresParkStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM PARKS WHERE ID = $1", id)
	if err != nil {
		log.Error("failed to delete park",
			slog.String("error", redact.Error(err)),
			slog.Int64("park_id", id))
		return MapWriteError(err, domain.OpDelete, domain.ResourcePark)
	}
	if err := CheckRowsAffected(result, store.ErrParkNotFound); err != nil {
		return err
	}

	log.Info("park deleted", slog.Int64("park_id", id))
	return nil
}

func (s *PostgresParkStore) queryParks(ctx context.Context, stmt string, args []any) ([]*domain.Park, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	return scanParks(rows, s.amenities)
}

func (s *PostgresParkStore) validateNew(park *domain.Park) error {
	if park == nil {
		return domain.NewMalformedRequest("park attributes are required")
	}
	if strings.TrimSpace(park.Name) == "" {
		return domain.NewMalformedRequest("park name must not be empty")
	}
	return s.checkAmenities(park.Amenities)
}

func (s *PostgresParkStore) checkAmenities(names []string) error {
	for _, name := range names {
		if _, ok := s.schema.AmenityColumn(name); !ok {
			return &domain.InvalidAmenityError{Name: name}
		}
	}
	return nil
}

// assignChanges records one assignment per supplied field. A supplied amenity
// list sets every listed amenity and clears the rest.
func (s *PostgresParkStore) assignChanges(b *query.Builder, c domain.ParkChanges) error {
	if c.Name != nil {
		if strings.TrimSpace(*c.Name) == "" {
			return domain.NewMalformedRequest("park name must not be empty")
		}
		b.Assign("NAME", *c.Name)
	}
	if c.StreetAddress != nil {
		b.Assign("STREET_ADDRESS", *c.StreetAddress)
	}
	if c.City != nil {
		b.Assign("CITY", *c.City)
	}
	if c.State != nil {
		b.Assign("STATE", *c.State)
	}
	if c.Zip != nil {
		b.Assign("ZIP", strconv.Itoa(*c.Zip))
	}
	if c.Latitude != nil {
		b.Assign("LATITUDE", *c.Latitude)
	}
	if c.Longitude != nil {
		b.Assign("LONGITUDE", *c.Longitude)
	}
	if c.OwnerID != nil {
		b.Assign("OWNER_ID", *c.OwnerID)
	}
	if c.Amenities != nil {
		if err := s.checkAmenities(*c.Amenities); err != nil {
			return err
		}
		wanted := domain.Park{Amenities: *c.Amenities}
		for _, name := range s.amenities {
			col, _ := s.schema.AmenityColumn(name)
			b.Assign(col, flag(wanted.HasAmenity(name)))
		}
	}
	return nil
}
