package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/osu-parks/parks-api/internal/config"
	"github.com/osu-parks/parks-api/internal/domain"
	"github.com/osu-parks/parks-api/internal/jsonapi"
)

const testBaseURL = "http://localhost:8080/api/v1"

var errNotStubbed = errors.New("not stubbed")

type mockParkStore struct {
	ListFn        func(ctx context.Context, filter domain.ParkFilter) ([]*domain.Park, error)
	GetByIDFn     func(ctx context.Context, id int64) (*domain.Park, error)
	ListByOwnerFn func(ctx context.Context, ownerID int64) ([]*domain.Park, error)
	CreateFn      func(ctx context.Context, park *domain.Park) (*domain.Park, error)
	UpdateFn      func(ctx context.Context, id int64, changes domain.ParkChanges) (*domain.Park, error)
	DeleteFn      func(ctx context.Context, id int64) error
}

func (m *mockParkStore) List(ctx context.Context, filter domain.ParkFilter) ([]*domain.Park, error) {
	if m.ListFn == nil {
		return nil, errNotStubbed
	}
	return m.ListFn(ctx, filter)
}

func (m *mockParkStore) GetByID(ctx context.Context, id int64) (*domain.Park, error) {
	if m.GetByIDFn == nil {
		return nil, errNotStubbed
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockParkStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Park, error) {
	if m.ListByOwnerFn == nil {
		return nil, errNotStubbed
	}
	return m.ListByOwnerFn(ctx, ownerID)
}

func (m *mockParkStore) Create(ctx context.Context, park *domain.Park) (*domain.Park, error) {
	if m.CreateFn == nil {
		return nil, errNotStubbed
	}
	return m.CreateFn(ctx, park)
}

func (m *mockParkStore) Update(ctx context.Context, id int64, changes domain.ParkChanges) (*domain.Park, error) {
	if m.UpdateFn == nil {
		return nil, errNotStubbed
	}
	return m.UpdateFn(ctx, id, changes)
}

func (m *mockParkStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn == nil {
		return errNotStubbed
	}
	return m.DeleteFn(ctx, id)
}

type mockOwnerStore struct {
	ListFn    func(ctx context.Context) ([]*domain.Owner, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.Owner, error)
	CreateFn  func(ctx context.Context, owner *domain.Owner) (*domain.Owner, error)
	UpdateFn  func(ctx context.Context, id int64, changes domain.OwnerChanges) (*domain.Owner, error)
	DeleteFn  func(ctx context.Context, id int64) error
}

func (m *mockOwnerStore) List(ctx context.Context) ([]*domain.Owner, error) {
	if m.ListFn == nil {
		return nil, errNotStubbed
	}
	return m.ListFn(ctx)
}

func (m *mockOwnerStore) GetByID(ctx context.Context, id int64) (*domain.Owner, error) {
	if m.GetByIDFn == nil {
		return nil, errNotStubbed
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockOwnerStore) Create(ctx context.Context, owner *domain.Owner) (*domain.Owner, error) {
	if m.CreateFn == nil {
		return nil, errNotStubbed
	}
	return m.CreateFn(ctx, owner)
}

func (m *mockOwnerStore) Update(ctx context.Context, id int64, changes domain.OwnerChanges) (*domain.Owner, error) {
	if m.UpdateFn == nil {
		return nil, errNotStubbed
	}
	return m.UpdateFn(ctx, id, changes)
}

func (m *mockOwnerStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn == nil {
		return errNotStubbed
	}
	return m.DeleteFn(ctx, id)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testPages = config.PaginationConfig{DefaultPageSize: 10, MaxPageSize: 50}

// newTestRouter mounts the park and owner handlers the way the server does,
// without authentication.
func newTestRouter(parks *mockParkStore, owners *mockOwnerStore) http.Handler {
	schema := domain.DefaultSchema()
	serializer := jsonapi.NewSerializer(schema, testBaseURL)
	ph := NewParkHandler(parks, schema, serializer, testPages, discardLogger())
	oh := NewOwnerHandler(owners, schema, serializer, testPages, discardLogger())

	r := chi.NewRouter()
	r.Route("/parks", func(r chi.Router) {
		r.Get("/", ph.List)
		r.Post("/", ph.Create)
		r.Get("/{parkId}", ph.Get)
		r.Patch("/{parkId}", ph.Update)
		r.Delete("/{parkId}", ph.Delete)
	})
	r.Route("/owners", func(r chi.Router) {
		r.Get("/", oh.List)
		r.Post("/", oh.Create)
		r.Get("/{ownerId}", oh.Get)
		r.Patch("/{ownerId}", oh.Update)
		r.Delete("/{ownerId}", oh.Delete)
		r.Get("/{ownerId}/parks", ph.ListByOwner)
	})
	return r
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", jsonapi.MediaType)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return doc
}

// errorDetail returns the detail of the single error in an error document.
func errorDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	doc := decodeBody(t, w)
	errs, ok := doc["errors"].([]any)
	require.True(t, ok, "expected an error document, got %s", w.Body.String())
	require.Len(t, errs, 1)
	detail, _ := errs[0].(map[string]any)["detail"].(string)
	return detail
}

func testPark(id int64) *domain.Park {
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
		Amenities: []string{"ballfield", "fishing"},
	}
}

func testParks(n int) []*domain.Park {
	parks := make([]*domain.Park, n)
	for i := range parks {
		parks[i] = testPark(int64(i + 1))
	}
	return parks
}
