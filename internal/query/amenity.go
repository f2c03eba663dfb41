package query

import (
	"fmt"
	"strings"

	"github.com/osu-parks/parks-api/internal/domain"
)

// Mode selects how amenity predicates combine.
type Mode string

const (
	// ModeSome matches parks offering at least one listed amenity.
	ModeSome Mode = "some"
	// ModeAll matches parks offering every listed amenity.
	ModeAll Mode = "all"
)

// CompileAmenityFilter builds the predicate fragment for an amenity filter,
// e.g. AND (FISHING = 1 OR TENNIS = 1). Names are checked in order and the first
// one the schema does not recognize fails with *domain.InvalidAmenityError.
// An empty list compiles to the empty string.
func CompileAmenityFilter(schema *domain.Schema, names []string, mode Mode) (string, error) {
	var sep string
	switch mode {
	case ModeSome:
		sep = " OR "
	case ModeAll:
		sep = " AND "
	default:
		return "", fmt.Errorf("%w: unknown amenity filter mode %q", domain.ErrValidation, mode)
	}

	if len(names) == 0 {
		return "", nil
	}

	preds := make([]string, 0, len(names))
	for _, name := range names {
		col, ok := schema.AmenityColumn(name)
		if !ok {
			return "", &domain.InvalidAmenityError{Name: name}
		}
		preds = append(preds, col+" = 1")
	}

	return "AND (" + strings.Join(preds, sep) + ")", nil
}
