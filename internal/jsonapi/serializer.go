package jsonapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	ddjsonapi "github.com/DataDog/jsonapi"
	"github.com/osu-parks/parks-api/internal/domain"
	"github.com/osu-parks/parks-api/internal/query"
)

// MediaType is the JSON:API media type.
const MediaType = "application/vnd.api+json"

// Resource collection paths relative to the API base URL.
const (
	ParksPath  = "parks"
	OwnersPath = "owners"
)

// Collection describes the request a collection document answers.
type Collection struct {
	// Path is the collection path relative to the base URL, e.g. "parks"
	// or "owners/2/parks".
	Path string
	// Query is the original query string, echoed into the self link.
	Query url.Values
	// Page is the requested page; the zero Page renders no pagination.
	Page query.Page
	// Meta describes the rendered page.
	Meta query.PageMeta
}

// Serializer renders domain values as JSON:API documents.
type Serializer struct {
	schema  *domain.Schema
	baseURL string
}

// NewSerializer creates a Serializer whose links are rooted at baseURL.
func NewSerializer(schema *domain.Schema, baseURL string) *Serializer {
	if schema == nil {
		panic("schema cannot be nil")
	}
	return &Serializer{schema: schema, baseURL: strings.TrimRight(baseURL, "/")}
}

// Park renders a single park document.
func (s *Serializer) Park(p *domain.Park) ([]byte, error) {
	r := s.parkResource(p)
	return ddjsonapi.Marshal(r, ddjsonapi.MarshalLinks(&ddjsonapi.Link{Self: r.self}))
}

// Parks renders a park collection document.
func (s *Serializer) Parks(parks []*domain.Park, c Collection) ([]byte, error) {
	resources := make([]*parkResource, len(parks))
	for i, p := range parks {
		resources[i] = s.parkResource(p)
	}
	return s.marshalCollection(resources, c)
}

// Owner renders a single owner document.
func (s *Serializer) Owner(o *domain.Owner) ([]byte, error) {
	r := s.ownerResource(o)
	return ddjsonapi.Marshal(r, ddjsonapi.MarshalLinks(&ddjsonapi.Link{Self: r.self}))
}

// Owners renders an owner collection document.
func (s *Serializer) Owners(owners []*domain.Owner, c Collection) ([]byte, error) {
	resources := make([]*ownerResource, len(owners))
	for i, o := range owners {
		resources[i] = s.ownerResource(o)
	}
	return s.marshalCollection(resources, c)
}

// ParkURL is the canonical location of a park.
func (s *Serializer) ParkURL(id int64) string {
	return s.resourceURL(ParksPath, formatID(id))
}

// OwnerURL is the canonical location of an owner.
func (s *Serializer) OwnerURL(id int64) string {
	return s.resourceURL(OwnersPath, formatID(id))
}

func (s *Serializer) resourceURL(path, id string) string {
	return s.baseURL + "/" + path + "/" + id
}

func (s *Serializer) marshalCollection(v any, c Collection) ([]byte, error) {
	b, err := ddjsonapi.Marshal(v, s.collectionOptions(c)...)
	if err != nil {
		return nil, err
	}
	return renamePreviousLink(b)
}

// renamePreviousLink renames the top-level "previous" link to "prev", the
// pagination member name JSON:API defines.
func renamePreviousLink(doc []byte) ([]byte, error) {
	if !bytes.Contains(doc, []byte(`"previous"`)) {
		return doc, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(doc, &top); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	var links map[string]json.RawMessage
	if err := json.Unmarshal(top["links"], &links); err != nil {
		return nil, fmt.Errorf("failed to decode document links: %w", err)
	}
	prev, ok := links["previous"]
	if !ok {
		return doc, nil
	}
	delete(links, "previous")
	links["prev"] = prev

	rawLinks, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document links: %w", err)
	}
	top["links"] = rawLinks
	return json.Marshal(top)
}

func (s *Serializer) collectionOptions(c Collection) []ddjsonapi.MarshalOption {
	links := &ddjsonapi.Link{Self: s.collectionURL(c.Path, c.Query)}
	if c.Page.IsZero() {
		return []ddjsonapi.MarshalOption{ddjsonapi.MarshalLinks(links)}
	}

	m := c.Meta
	links.First = s.pageURL(c, 1)
	links.Last = s.pageURL(c, m.LastPage())
	if m.HasPrev() {
		links.Previous = s.pageURL(c, min(m.CurrentPageNumber-1, m.LastPage()))
	}
	if m.HasNext() {
		links.Next = s.pageURL(c, m.CurrentPageNumber+1)
	}

	return []ddjsonapi.MarshalOption{
		ddjsonapi.MarshalLinks(links),
		ddjsonapi.MarshalMeta(map[string]any{
			"totalResults":      m.TotalResults,
			"totalPages":        m.TotalPages,
			"currentPageNumber": m.CurrentPageNumber,
			"currentPageSize":   m.CurrentPageSize,
		}),
	}
}

func (s *Serializer) collectionURL(path string, q url.Values) string {
	u := s.baseURL + "/" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (s *Serializer) pageURL(c Collection, number int) string {
	q := url.Values{}
	for k, v := range c.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(query.ParamPageNumber, strconv.Itoa(number))
	q.Set(query.ParamPageSize, strconv.Itoa(c.Page.Size))
	return s.collectionURL(c.Path, q)
}
