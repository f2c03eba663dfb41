package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/osu-parks/parks-api/internal/api/shared"
	"github.com/osu-parks/parks-api/internal/domain"
)

// Path parameter names.
const (
	ParamParkID  = "parkId"
	ParamOwnerID = "ownerId"
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// getPathID extracts a positive integer id from the URL path. Ids that cannot
// name a stored row yield notFound.
func getPathID(r *http.Request, paramName string, notFound error) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, paramName), 10, 64)
	if err != nil || id < 1 {
		return 0, notFound
	}
	return id, nil
}

// decodeResource reads a single-resource request document of resourceType.
// For updates pathID is the id from the URL; a body id must match it. Creates
// pass a nil pathID and must not carry an id.
func decodeResource(w http.ResponseWriter, r *http.Request, resourceType string, pathID *int64) (*resourceObject, error) {
	var doc resourceDocument
	if err := shared.DecodeJSON(w, r, &doc); err != nil {
		return nil, &domain.MalformedRequestError{Reason: "request body is not a valid JSON:API document", Err: err}
	}
	obj := doc.Data
	if obj == nil {
		return nil, domain.NewMalformedRequest("data is required")
	}
	if obj.Type == "" {
		return nil, domain.NewMalformedRequest("data.type is required")
	}
	if obj.Type != resourceType {
		return nil, ErrTypeMismatch
	}

	if obj.ID != nil {
		if pathID == nil {
			return nil, domain.NewMalformedRequest("client-generated ids are not supported")
		}
		if *obj.ID != strconv.FormatInt(*pathID, 10) {
			return nil, ErrIDMismatch
		}
	}
	return obj, nil
}

// decodeAttributes unmarshals the attributes member into v after checking
// every key against the schema allow-list for resourceType. Absent or null
// attributes leave v untouched and report false.
func decodeAttributes(obj *resourceObject, schema *domain.Schema, resourceType string, v any) (bool, error) {
	if len(obj.Attributes) == 0 || string(obj.Attributes) == "null" {
		return false, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(obj.Attributes, &raw); err != nil {
		return false, &domain.MalformedRequestError{Reason: "attributes must be an object", Err: err}
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !schema.AllowsAttribute(resourceType, k) {
			return false, domain.NewMalformedRequest("unknown attribute %q, expected one of: %s",
				k, strings.Join(schema.Attributes(resourceType), ", "))
		}
	}

	if err := json.Unmarshal(obj.Attributes, v); err != nil {
		var malformed *domain.MalformedRequestError
		if errors.As(err, &malformed) {
			return false, malformed
		}
		return false, &domain.MalformedRequestError{Reason: "attributes have the wrong type", Err: err}
	}
	return true, nil
}

// ownerRelationship returns the owner id from a park's relationships, or nil
// when the relationship is not supplied.
func ownerRelationship(obj *resourceObject) (*int64, error) {
	for name := range obj.Relationships {
		if name != domain.ResourceOwner {
			return nil, domain.NewMalformedRequest("unknown relationship %q", name)
		}
	}

	rel, ok := obj.Relationships[domain.ResourceOwner]
	if !ok {
		return nil, nil
	}
	if rel.Data == nil {
		return nil, domain.NewMalformedRequest("a park must have an owner")
	}
	if rel.Data.Type != domain.ResourceOwner {
		return nil, domain.NewMalformedRequest("owner relationship must reference type %q", domain.ResourceOwner)
	}
	id, err := strconv.ParseInt(rel.Data.ID, 10, 64)
	if err != nil || id < 1 {
		return nil, domain.NewMalformedRequest("owner relationship id %q is invalid", rel.Data.ID)
	}
	return &id, nil
}
