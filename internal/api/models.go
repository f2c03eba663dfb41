package api

import (
	"encoding/json"
	"slices"

	"github.com/osu-parks/parks-api/internal/domain"
)

// resourceDocument is a JSON:API request document holding a single resource.
type resourceDocument struct {
	Data *resourceObject `json:"data"`
}

// resourceObject keeps attributes raw so absent members can be told apart
// from members set to their zero value.
type resourceObject struct {
	Type          string                  `json:"type"`
	ID            *string                 `json:"id"`
	Attributes    json.RawMessage         `json:"attributes"`
	Relationships map[string]relationship `json:"relationships"`
}

type relationship struct {
	Data *resourceIdentifier `json:"data"`
}

type resourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// parkAttributes is the attributes member of a park request.
// Nil fields were not supplied.
type parkAttributes struct {
	Name      *string          `json:"name"      validate:"omitempty,min=1"`
	Location  *locationPayload `json:"location"`
	Amenities *[]string        `json:"amenities" validate:"omitempty,dive,min=1"`
}

type locationPayload struct {
	StreetAddress *string  `json:"streetAddress" validate:"omitempty,min=1"`
	City          *string  `json:"city"          validate:"omitempty,min=1"`
	State         *string  `json:"state"         validate:"omitempty,min=1"`
	Zip           *int     `json:"zip"           validate:"omitempty,min=0,max=99999"`
	Latitude      *float64 `json:"latitude"      validate:"omitempty,min=-90,max=90"`
	Longitude     *float64 `json:"longitude"     validate:"omitempty,min=-180,max=180"`
}

var locationKeys = []string{"streetAddress", "city", "state", "zip", "latitude", "longitude"}

// UnmarshalJSON rejects members that are not location fields.
func (l *locationPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &domain.MalformedRequestError{Reason: "location must be an object", Err: err}
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !slices.Contains(locationKeys, k) {
			return domain.NewMalformedRequest("unknown location attribute %q", k)
		}
	}

	type plain locationPayload
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*l = locationPayload(p)
	return nil
}

// ownerAttributes is the attributes member of an owner request.
type ownerAttributes struct {
	OwnerName *string `json:"ownerName" validate:"omitempty,min=1"`
}

// toPark builds a new park. Every attribute except amenities is required.
func (a parkAttributes) toPark(ownerID *int64) (*domain.Park, error) {
	if a.Name == nil {
		return nil, domain.NewMalformedRequest("name is required")
	}
	if a.Location == nil {
		return nil, domain.NewMalformedRequest("location is required")
	}
	loc := a.Location
	switch {
	case loc.StreetAddress == nil:
		return nil, domain.NewMalformedRequest("location.streetAddress is required")
	case loc.City == nil:
		return nil, domain.NewMalformedRequest("location.city is required")
	case loc.State == nil:
		return nil, domain.NewMalformedRequest("location.state is required")
	case loc.Zip == nil:
		return nil, domain.NewMalformedRequest("location.zip is required")
	case loc.Latitude == nil:
		return nil, domain.NewMalformedRequest("location.latitude is required")
	case loc.Longitude == nil:
		return nil, domain.NewMalformedRequest("location.longitude is required")
	}
	if ownerID == nil {
		return nil, domain.NewMalformedRequest("owner relationship is required")
	}

	park := &domain.Park{
		Name: *a.Name,
		Location: domain.Location{
			StreetAddress: *loc.StreetAddress,
			City:          *loc.City,
			State:         *loc.State,
			Zip:           *loc.Zip,
			Latitude:      *loc.Latitude,
			Longitude:     *loc.Longitude,
		},
		OwnerID: *ownerID,
	}
	if a.Amenities != nil {
		park.Amenities = *a.Amenities
	}
	return park, nil
}

// toChanges builds a sparse park update.
func (a parkAttributes) toChanges(ownerID *int64) domain.ParkChanges {
	changes := domain.ParkChanges{
		Name:      a.Name,
		OwnerID:   ownerID,
		Amenities: a.Amenities,
	}
	if loc := a.Location; loc != nil {
		changes.StreetAddress = loc.StreetAddress
		changes.City = loc.City
		changes.State = loc.State
		changes.Zip = loc.Zip
		changes.Latitude = loc.Latitude
		changes.Longitude = loc.Longitude
	}
	return changes
}

// TokenRequest defines the payload for the token endpoint.
type TokenRequest struct {
	ClientID     string `json:"clientId"     validate:"required"`
	ClientSecret string `json:"clientSecret" validate:"required"`
}

// TokenResponse defines the successful response of the token endpoint.
type TokenResponse struct {
	// Token is the bearer token required by write routes.
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 time the token expires.
	ExpiresAt string `json:"expiresAt"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
