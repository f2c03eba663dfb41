package jsonapi

import (
	"strconv"

	ddjsonapi "github.com/DataDog/jsonapi"
	"github.com/osu-parks/parks-api/internal/domain"
)

type locationAttribute struct {
	StreetAddress string  `json:"streetAddress"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Zip           int     `json:"zip"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

type ownerRef struct {
	ID string `jsonapi:"primary,owner"`
}

type parkResource struct {
	ID        string             `jsonapi:"primary,park"`
	Name      *string            `jsonapi:"attribute" json:"name,omitempty"`
	Location  *locationAttribute `jsonapi:"attribute" json:"location,omitempty"`
	Amenities *[]string          `jsonapi:"attribute" json:"amenities,omitempty"`
	Owner     *ownerRef          `jsonapi:"relationship" json:"owner,omitempty"`

	self string
}

// Link implements ddjsonapi.Linkable.
func (r *parkResource) Link() *ddjsonapi.Link {
	return &ddjsonapi.Link{Self: r.self}
}

type ownerResource struct {
	ID        string  `jsonapi:"primary,owner"`
	OwnerName *string `jsonapi:"attribute" json:"ownerName,omitempty"`

	self string
}

// Link implements ddjsonapi.Linkable.
func (r *ownerResource) Link() *ddjsonapi.Link {
	return &ddjsonapi.Link{Self: r.self}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (s *Serializer) parkResource(p *domain.Park) *parkResource {
	id := formatID(p.ID)
	r := &parkResource{
		ID:    id,
		Owner: &ownerRef{ID: formatID(p.OwnerID)},
		self:  s.resourceURL(ParksPath, id),
	}

	if s.schema.AllowsAttribute(domain.ResourcePark, "name") {
		name := p.Name
		r.Name = &name
	}
	if s.schema.AllowsAttribute(domain.ResourcePark, "location") {
		r.Location = &locationAttribute{
			StreetAddress: p.Location.StreetAddress,
			City:          p.Location.City,
			State:         p.Location.State,
			Zip:           p.Location.Zip,
			Latitude:      p.Location.Latitude,
			Longitude:     p.Location.Longitude,
		}
	}
	if s.schema.AllowsAttribute(domain.ResourcePark, "amenities") {
		amenities := append([]string{}, p.Amenities...)
		r.Amenities = &amenities
	}
	return r
}

func (s *Serializer) ownerResource(o *domain.Owner) *ownerResource {
	id := formatID(o.ID)
	r := &ownerResource{ID: id, self: s.resourceURL(OwnersPath, id)}
	if s.schema.AllowsAttribute(domain.ResourceOwner, "ownerName") {
		name := o.Name
		r.OwnerName = &name
	}
	return r
}
