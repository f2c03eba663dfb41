package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Resource type identifiers as they appear in JSON:API documents.
const (
	ResourcePark  = "park"
	ResourceOwner = "owner"
)

// DefaultAmenities lists the amenity identifiers recognized by a stock deployment.
var DefaultAmenities = []string{
	"ballfield",
	"barbequeGrills",
	"basketballCourts",
	"bikePaths",
	"boatRamps",
	"dogsAllowed",
	"drinkingWater",
	"fishing",
	"hikingTrails",
	"horseshoes",
	"naturalArea",
	"offleashDogPark",
	"openFields",
	"picnicShelters",
	"picnicTables",
	"playArea",
	"restrooms",
	"scenicViewPoint",
	"soccerFields",
	"tennisCourts",
	"volleyball",
}

var defaultAttributes = map[string][]string{
	ResourcePark:  {"name", "location", "amenities"},
	ResourceOwner: {"ownerName"},
}

var identifierPattern = regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`)

// Schema is the immutable description of recognized amenities and the
// attributes each resource exposes. It is built once at startup and shared.
type Schema struct {
	amenities  []string
	columns    map[string]string
	attributes map[string][]string
}

// NewSchema builds a Schema recognizing the given camelCase amenity identifiers.
// Identifiers must be unique and match ^[a-z][A-Za-z0-9]*$, which keeps every
// derived column name a safe SQL identifier.
func NewSchema(amenities []string) (*Schema, error) {
	s := &Schema{
		amenities:  make([]string, 0, len(amenities)),
		columns:    make(map[string]string, len(amenities)),
		attributes: make(map[string][]string, len(defaultAttributes)),
	}

	for _, name := range amenities {
		if !identifierPattern.MatchString(name) {
			return nil, fmt.Errorf("%w: amenity identifier %q", ErrInvalidFormat, name)
		}
		if _, dup := s.columns[name]; dup {
			return nil, fmt.Errorf("%w: duplicate amenity identifier %q", ErrInvalidFormat, name)
		}
		s.amenities = append(s.amenities, name)
		s.columns[name] = ColumnName(name)
	}

	for resource, attrs := range defaultAttributes {
		s.attributes[resource] = append([]string(nil), attrs...)
	}

	return s, nil
}

// DefaultSchema returns a Schema built from DefaultAmenities.
func DefaultSchema() *Schema {
	s, err := NewSchema(DefaultAmenities)
	if err != nil {
		panic(fmt.Sprintf("default schema: %v", err))
	}
	return s
}

// AmenityColumn returns the column backing an amenity identifier.
func (s *Schema) AmenityColumn(name string) (string, bool) {
	col, ok := s.columns[name]
	return col, ok
}

// Amenities returns the recognized amenity identifiers in declaration order.
func (s *Schema) Amenities() []string {
	return append([]string(nil), s.amenities...)
}

// AmenityColumns returns the amenity columns in declaration order.
func (s *Schema) AmenityColumns() []string {
	cols := make([]string, len(s.amenities))
	for i, name := range s.amenities {
		cols[i] = s.columns[name]
	}
	return cols
}

// Attributes returns the attribute allow-list for a resource type.
func (s *Schema) Attributes(resource string) []string {
	return append([]string(nil), s.attributes[resource]...)
}

// AllowsAttribute reports whether resource documents may carry attr.
func (s *Schema) AllowsAttribute(resource, attr string) bool {
	for _, a := range s.attributes[resource] {
		if a == attr {
			return true
		}
	}
	return false
}

// ColumnName converts a camelCase identifier to its UPPER_SNAKE column name.
func ColumnName(identifier string) string {
	var b strings.Builder
	b.Grow(len(identifier) + 4)
	for i, r := range identifier {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
