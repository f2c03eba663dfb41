package domain

// Location is where a park is.
type Location struct {
	StreetAddress string
	City          string
	State         string
	Zip           int
	Latitude      float64
	Longitude     float64
}

// Park is a public park with exactly one owner.
// Amenities holds the identifiers of the amenity flags that are set.
type Park struct {
	ID        int64
	Name      string
	Location  Location
	OwnerID   int64
	Amenities []string
}

// HasAmenity reports whether the park offers the named amenity.
func (p *Park) HasAmenity(name string) bool {
	for _, a := range p.Amenities {
		if a == name {
			return true
		}
	}
	return false
}

// ParkChanges is a sparse set of park fields to update. Nil fields are left untouched.
// A non-nil Amenities replaces the full amenity set: listed amenities are set,
// every other recognized amenity is cleared.
type ParkChanges struct {
	Name          *string
	StreetAddress *string
	City          *string
	State         *string
	Zip           *int
	Latitude      *float64
	Longitude     *float64
	OwnerID       *int64
	Amenities     *[]string
}

// IsEmpty reports whether no field is set.
func (c ParkChanges) IsEmpty() bool {
	return c.Name == nil && c.StreetAddress == nil && c.City == nil && c.State == nil &&
		c.Zip == nil && c.Latitude == nil && c.Longitude == nil && c.OwnerID == nil &&
		c.Amenities == nil
}

// ParkFilter narrows a park listing. Empty fields do not filter.
// Name, City, State and Zip match exactly. AmenitiesAll requires every listed
// amenity; AmenitiesSome requires at least one.
type ParkFilter struct {
	Name          string
	City          string
	State         string
	Zip           string
	AmenitiesAll  []string
	AmenitiesSome []string
}
