package postgres

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/osu-parks/parks-api/internal/domain"
	"github.com/osu-parks/parks-api/internal/store"
)

// rawPark mirrors a PARKS row as scanned. Numeric and flag columns stay as
// strings until toPark converts them.
type rawPark struct {
	ID            int64
	Name          string
	StreetAddress string
	City          string
	State         string
	Zip           string
	Latitude      string
	Longitude     string
	OwnerID       int64
	Flags         []string
}

func (r *rawPark) scanTargets() []any {
	targets := []any{
		&r.ID, &r.Name, &r.StreetAddress, &r.City, &r.State,
		&r.Zip, &r.Latitude, &r.Longitude, &r.OwnerID,
	}
	for i := range r.Flags {
		targets = append(targets, &r.Flags[i])
	}
	return targets
}

// toPark coerces a raw row into a domain.Park. amenities must be in the same
// order as the flag columns were selected.
func toPark(r rawPark, amenities []string) (*domain.Park, error) {
	zip, err := parseZip(r.Zip)
	if err != nil {
		return nil, coercionError(r.ID, "ZIP", r.Zip)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Latitude), 64)
	if err != nil {
		return nil, coercionError(r.ID, "LATITUDE", r.Latitude)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.Longitude), 64)
	if err != nil {
		return nil, coercionError(r.ID, "LONGITUDE", r.Longitude)
	}

	p := &domain.Park{
		ID:   r.ID,
		Name: r.Name,
		Location: domain.Location{
			StreetAddress: r.StreetAddress,
			City:          r.City,
			State:         r.State,
			Zip:           zip,
			Latitude:      lat,
			Longitude:     lon,
		},
		OwnerID:   r.OwnerID,
		Amenities: []string{},
	}
	for i, flag := range r.Flags {
		switch strings.TrimSpace(flag) {
		case "1":
			p.Amenities = append(p.Amenities, amenities[i])
		case "0":
		default:
			return nil, coercionError(r.ID, domain.ColumnName(amenities[i]), flag)
		}
	}
	return p, nil
}

// parseZip reads a stored zip. ZIP+4 values keep their five-digit prefix.
func parseZip(raw string) (int, error) {
	v := strings.TrimSpace(raw)
	if base, ext, ok := strings.Cut(v, "-"); ok && len(base) == 5 && len(ext) == 4 {
		if _, err := strconv.Atoi(ext); err != nil {
			return 0, err
		}
		v = base
	}
	return strconv.Atoi(v)
}

func coercionError(id int64, column, value string) error {
	return &domain.IntegrityViolationError{
		Resource: domain.ResourcePark,
		Detail:   fmt.Sprintf("park %d has invalid %s value %q", id, column, value),
	}
}

// scanParks reads every row, closing rows on return.
func scanParks(rows *sql.Rows, amenities []string) ([]*domain.Park, error) {
	defer func() { _ = rows.Close() }()

	parks := []*domain.Park{}
	for rows.Next() {
		r := rawPark{Flags: make([]string, len(amenities))}
		if err := rows.Scan(r.scanTargets()...); err != nil {
			return nil, store.NewStoreError(domain.ResourcePark, "scan", "failed to scan row", err)
		}
		p, err := toPark(r, amenities)
		if err != nil {
			return nil, err
		}
		parks = append(parks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(domain.ResourcePark, "scan", "failed to iterate rows", err)
	}
	return parks, nil
}

// flag renders membership as the stored 0/1 value.
func flag(set bool) int {
	if set {
		return 1
	}
	return 0
}
