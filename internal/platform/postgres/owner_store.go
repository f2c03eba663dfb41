package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/osu-parks/parks-api/internal/domain"
	"github.com/osu-parks/parks-api/internal/platform/logger"
	"github.com/osu-parks/parks-api/internal/query"
	"github.com/osu-parks/parks-api/internal/redact"
	"github.com/osu-parks/parks-api/internal/store"
)

const ownerSelectBase = "SELECT ID, NAME\nFROM OWNERS"

// PostgresOwnerStore implements the store.OwnerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresOwnerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOwnerStore creates a new PostgreSQL implementation of the OwnerStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresOwnerStore(db store.DBTX, logger *slog.Logger) *PostgresOwnerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresOwnerStore{
		db:     db,
		logger: logger.With(slog.String("component", "owner_store")),
	}
}

// Ensure PostgresOwnerStore implements store.OwnerStore interface
var _ store.OwnerStore = (*PostgresOwnerStore)(nil)

// List implements store.OwnerStore.List.
func (s *PostgresOwnerStore) List(ctx context.Context) ([]*domain.Owner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	owners, err := s.queryOwners(ctx, ownerSelectBase+"\nORDER BY ID", nil)
	if err != nil {
		log.Error("failed to list owners", slog.String("error", redact.Error(err)))
		return nil, err
	}
	return owners, nil
}

// GetByID implements store.OwnerStore.GetByID.
func (s *PostgresOwnerStore) GetByID(ctx context.Context, id int64) (*domain.Owner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	b := query.NewBuilder().Where("ID = ?", id)
	owners, err := s.queryOwners(ctx, b.Select(ownerSelectBase), b.Args())
	if err != nil {
		log.Error("failed to get owner by ID",
			slog.String("error", redact.Error(err)),
			slog.Int64("owner_id", id))
		return nil, err
	}

	switch len(owners) {
	case 0:
		log.Debug("owner not found", slog.Int64("owner_id", id))
		return nil, store.ErrOwnerNotFound
	case 1:
		return owners[0], nil
	default:
		log.Error("multiple owners share an ID",
			slog.Int64("owner_id", id),
			slog.Int("count", len(owners)))
		return nil, &domain.IntegrityViolationError{Resource: domain.ResourceOwner, Detail: domain.ErrMultipleResults}
	}
}

// Create implements store.OwnerStore.Create.
func (s *PostgresOwnerStore) Create(ctx context.Context, owner *domain.Owner) (*domain.Owner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if owner == nil {
		return nil, domain.NewMalformedRequest("owner attributes are required")
	}
	if strings.TrimSpace(owner.Name) == "" {
		return nil, domain.NewMalformedRequest("ownerName must not be empty")
	}

	var id int64
	err := s.db.QueryRowContext(ctx, "INSERT INTO OWNERS (NAME)\nVALUES ($1)\nRETURNING ID", owner.Name).Scan(&id)
	if err != nil {
		log.Error("failed to create owner", slog.String("error", redact.Error(err)))
		return nil, err
	}

	log.Info("owner created", slog.Int64("owner_id", id))
	return s.GetByID(ctx, id)
}

// Update implements store.OwnerStore.Update.
// Empty changes run no mutating statement and return the current owner.
func (s *PostgresOwnerStore) Update(ctx context.Context, id int64, changes domain.OwnerChanges) (*domain.Owner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if changes.IsEmpty() {
		return s.GetByID(ctx, id)
	}
	if strings.TrimSpace(*changes.Name) == "" {
		return nil, domain.NewMalformedRequest("ownerName must not be empty")
	}

	b := query.NewBuilder().Assign("NAME", *changes.Name)
	stmt := "UPDATE OWNERS SET " + b.SetClause() + " WHERE ID = " + b.Bind(id)

	result, err := s.db.ExecContext(ctx, stmt, b.Args()...)
	if err != nil {
		log.Error("failed to update owner",
			slog.String("error", redact.Error(err)),
			slog.Int64("owner_id", id))
		return nil, err
	}
	if err := CheckRowsAffected(result, store.ErrOwnerNotFound); err != nil {
		return nil, err
	}

	log.Info("owner updated", slog.Int64("owner_id", id))
	return s.GetByID(ctx, id)
}

// Delete implements store.OwnerStore.Delete.
// Owners still referenced by parks cannot be deleted.
func (s *PostgresOwnerStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM OWNERS WHERE ID = $1", id)
	if err != nil {
		mapped := MapWriteError(err, domain.OpDelete, domain.ResourceOwner)
		if mapped != err {
			log.Debug("owner still has parks", slog.Int64("owner_id", id))
			return mapped
		}
		log.Error("failed to delete owner",
			slog.String("error", redact.Error(err)),
			slog.Int64("owner_id", id))
		return err
	}
	if err := CheckRowsAffected(result, store.ErrOwnerNotFound); err != nil {
		return err
	}

	log.Info("owner deleted", slog.Int64("owner_id", id))
	return nil
}

func (s *PostgresOwnerStore) queryOwners(ctx context.Context, stmt string, args []any) ([]*domain.Owner, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	return scanOwners(rows)
}

func scanOwners(rows *sql.Rows) ([]*domain.Owner, error) {
	defer func() { _ = rows.Close() }()

	owners := []*domain.Owner{}
	for rows.Next() {
		var o domain.Owner
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, store.NewStoreError(domain.ResourceOwner, "scan", "failed to scan row", err)
		}
		owners = append(owners, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(domain.ResourceOwner, "scan", "failed to iterate rows", err)
	}
	return owners, nil
}
