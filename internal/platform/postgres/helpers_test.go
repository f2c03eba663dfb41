package postgres

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/osu-parks/parks-api/internal/domain"
	"github.com/stretchr/testify/require"
)

var parkColumns = []string{
	"ID", "NAME", "STREET_ADDRESS", "CITY", "STATE", "ZIP", "LATITUDE", "LONGITUDE", "OWNER_ID",
	"FISHING", "TENNIS",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSchema(t *testing.T) *domain.Schema {
	t.Helper()
	s, err := domain.NewSchema([]string{"fishing", "tennis"})
	require.NoError(t, err)
	return s
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func averyParkRow(rows *sqlmock.Rows, id int64) *sqlmock.Rows {
	return rows.AddRow(id, "Avery Park", "1310 SW Avery Park Dr", "Corvallis", "OR",
		"97333", "44.552283", "-123.272011", int64(2), int64(1), "0")
}

func averyPark(id int64) *domain.Park {
	return &domain.Park{
		ID:   id,
		Name: "Avery Park",
		Location: domain.Location{
			StreetAddress: "1310 SW Avery Park Dr",
			City:          "Corvallis",
			State:         "OR",
			Zip:           97333,
			Latitude:      44.552283,
			Longitude:     -123.272011,
		},
		OwnerID:   2,
		Amenities: []string{"fishing"},
	}
}
