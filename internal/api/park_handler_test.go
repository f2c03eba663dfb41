package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osu-parks/parks-api/internal/domain"
	"github.com/osu-parks/parks-api/internal/jsonapi"
	"github.com/osu-parks/parks-api/internal/store"
)

const createParkBody = `{
  "data": {
    "type": "park",
    "attributes": {
      "name": "Avery Park",
      "location": {
        "streetAddress": "1310 SW Avery Park Dr",
        "city": "Corvallis",
        "state": "OR",
        "zip": 97333,
        "latitude": 44.552283,
        "longitude": -123.272011
      },
      "amenities": ["ballfield", "fishing"]
    },
    "relationships": {"owner": {"data": {"type": "owner", "id": "2"}}}
  }
}`

func TestParkHandlerList(t *testing.T) {
	t.Run("passes normalized filters to the store", func(t *testing.T) {
		var got domain.ParkFilter
		parks := &mockParkStore{ListFn: func(_ context.Context, f domain.ParkFilter) ([]*domain.Park, error) {
			got = f
			return testParks(2), nil
		}}

		w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodGet,
			"/parks?filter[city]=Corvallis&filter[amenities][all]=fishing,ballfield", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, jsonapi.MediaType, w.Header().Get("Content-Type"))
		assert.Equal(t, "Corvallis", got.City)
		assert.Equal(t, []string{"fishing", "ballfield"}, got.AmenitiesAll)

		doc := decodeBody(t, w)
		assert.Len(t, doc["data"], 2)
		assert.NotContains(t, doc, "meta")
	})

	t.Run("ignores undeclared keys that normalize to a filter", func(t *testing.T) {
		var cities []string
		parks := &mockParkStore{ListFn: func(_ context.Context, f domain.ParkFilter) ([]*domain.Park, error) {
			cities = append(cities, f.City)
			return testParks(1), nil
		}}
		router := newTestRouter(parks, &mockOwnerStore{})

		for i := 0; i < 10; i++ {
			w := serve(t, router, http.MethodGet, "/parks?filter[city]=Corvallis&city=Albany", "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}
		for _, c := range cities {
			assert.Equal(t, "Corvallis", c)
		}
	})

	t.Run("paginates the result", func(t *testing.T) {
		parks := &mockParkStore{ListFn: func(context.Context, domain.ParkFilter) ([]*domain.Park, error) {
			return testParks(25), nil
		}}
		router := newTestRouter(parks, &mockOwnerStore{})

		w := serve(t, router, http.MethodGet, "/parks?page[size]=10&page[number]=3", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		doc := decodeBody(t, w)
		assert.Len(t, doc["data"], 5)
		meta := doc["meta"].(map[string]any)
		assert.Equal(t, float64(25), meta["totalResults"])
		assert.Equal(t, float64(3), meta["totalPages"])

		w = serve(t, router, http.MethodGet, "/parks?page[size]=10&page[number]=10", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		doc = decodeBody(t, w)
		assert.Empty(t, doc["data"])
		assert.Equal(t, float64(25), doc["meta"].(map[string]any)["totalResults"])
	})

	tests := []struct {
		name    string
		target  string
		listErr error
		want    int
	}{
		{name: "empty filter value", target: "/parks?filter[city]=", want: http.StatusBadRequest},
		{name: "non-numeric zip filter", target: "/parks?filter[zip]=abc", want: http.StatusBadRequest},
		{name: "bad page number", target: "/parks?page[number]=zero", want: http.StatusBadRequest},
		{name: "page size below one", target: "/parks?page[size]=0", want: http.StatusBadRequest},
		{
			name:    "unknown amenity",
			target:  "/parks?filter[amenities][some]=jacuzzi",
			listErr: &domain.InvalidAmenityError{Name: "jacuzzi"},
			want:    http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parks := &mockParkStore{ListFn: func(context.Context, domain.ParkFilter) ([]*domain.Park, error) {
				return nil, tt.listErr
			}}
			w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodGet, tt.target, "")
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestParkHandlerGet(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		park       *domain.Park
		err        error
		wantStatus int
		wantDetail string
	}{
		{name: "found", target: "/parks/7", park: testPark(7), wantStatus: http.StatusOK},
		{name: "missing", target: "/parks/7", err: store.ErrParkNotFound, wantStatus: http.StatusNotFound, wantDetail: "Park not found"},
		{name: "non-numeric id", target: "/parks/abc", wantStatus: http.StatusNotFound, wantDetail: "Park not found"},
		{
			name:       "duplicate rows",
			target:     "/parks/7",
			err:        &domain.IntegrityViolationError{Resource: "park", Detail: domain.ErrMultipleResults},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			parks := &mockParkStore{GetByIDFn: func(_ context.Context, id int64) (*domain.Park, error) {
				calls++
				assert.Equal(t, int64(7), id)
				return tt.park, tt.err
			}}

			w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodGet, tt.target, "")

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, errorDetail(t, w))
				return
			}
			assert.Equal(t, 1, calls)
			data := decodeBody(t, w)["data"].(map[string]any)
			assert.Equal(t, "7", data["id"])
			assert.Equal(t, "park", data["type"])
		})
	}
}

func TestParkHandlerCreate(t *testing.T) {
	t.Run("creates and re-fetches", func(t *testing.T) {
		var got *domain.Park
		parks := &mockParkStore{CreateFn: func(_ context.Context, p *domain.Park) (*domain.Park, error) {
			got = p
			created := *p
			created.ID = 42
			return &created, nil
		}}

		w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodPost, "/parks", createParkBody)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, testBaseURL+"/parks/42", w.Header().Get("Location"))
		require.NotNil(t, got)
		assert.Equal(t, "Avery Park", got.Name)
		assert.Equal(t, 97333, got.Location.Zip)
		assert.Equal(t, int64(2), got.OwnerID)
		assert.Equal(t, []string{"ballfield", "fishing"}, got.Amenities)

		doc := decodeBody(t, w)
		assert.Equal(t, testBaseURL+"/parks/42", doc["links"].(map[string]any)["self"])
		assert.Equal(t, "42", doc["data"].(map[string]any)["id"])
	})

	tests := []struct {
		name      string
		body      string
		createErr error
		want      int
	}{
		{name: "invalid json", body: `{"data":`, want: http.StatusBadRequest},
		{name: "missing data", body: `{}`, want: http.StatusBadRequest},
		{name: "missing type", body: `{"data":{"attributes":{"name":"x"}}}`, want: http.StatusBadRequest},
		{name: "wrong type", body: `{"data":{"type":"owner","attributes":{"ownerName":"x"}}}`, want: http.StatusConflict},
		{name: "client id", body: `{"data":{"type":"park","id":"9","attributes":{"name":"x"}}}`, want: http.StatusBadRequest},
		{name: "missing attributes", body: `{"data":{"type":"park"}}`, want: http.StatusBadRequest},
		{name: "unknown attribute", body: `{"data":{"type":"park","attributes":{"name":"x","ownerId":2}}}`, want: http.StatusBadRequest},
		{name: "empty name", body: `{"data":{"type":"park","attributes":{"name":""}}}`, want: http.StatusBadRequest},
		{name: "wrong attribute type", body: `{"data":{"type":"park","attributes":{"name":5}}}`, want: http.StatusBadRequest},
		{name: "missing location", body: `{"data":{"type":"park","attributes":{"name":"x"},"relationships":{"owner":{"data":{"type":"owner","id":"2"}}}}}`, want: http.StatusBadRequest},
		{
			name: "missing owner",
			body: `{"data":{"type":"park","attributes":{"name":"x","location":{"streetAddress":"a","city":"b","state":"OR","zip":1,"latitude":1,"longitude":1}}}}`,
			want: http.StatusBadRequest,
		},
		{
			name:      "owner does not exist",
			body:      createParkBody,
			createErr: &domain.ForeignKeyViolationError{Op: domain.OpInsert, Resource: domain.ResourcePark},
			want:      http.StatusNotFound,
		},
		{
			name:      "unknown amenity",
			body:      createParkBody,
			createErr: &domain.InvalidAmenityError{Name: "fishing"},
			want:      http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parks := &mockParkStore{CreateFn: func(context.Context, *domain.Park) (*domain.Park, error) {
				if tt.createErr == nil {
					t.Fatal("store must not be called")
				}
				return nil, tt.createErr
			}}
			w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodPost, "/parks", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Empty(t, w.Header().Get("Location"))
		})
	}
}

func TestParkHandlerUpdate(t *testing.T) {
	t.Run("passes only supplied fields", func(t *testing.T) {
		var got domain.ParkChanges
		parks := &mockParkStore{UpdateFn: func(_ context.Context, id int64, c domain.ParkChanges) (*domain.Park, error) {
			assert.Equal(t, int64(7), id)
			got = c
			p := testPark(7)
			p.Location.City = *c.City
			return p, nil
		}}

		body := `{"data":{"type":"park","id":"7","attributes":{"location":{"city":"Albany"}}}}`
		w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodPatch, "/parks/7", body)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NotNil(t, got.City)
		assert.Equal(t, "Albany", *got.City)
		assert.Nil(t, got.Name)
		assert.Nil(t, got.Zip)
		assert.Nil(t, got.Amenities)
		assert.Nil(t, got.OwnerID)
	})

	t.Run("empty attributes are a no-op update", func(t *testing.T) {
		var got domain.ParkChanges
		parks := &mockParkStore{UpdateFn: func(_ context.Context, _ int64, c domain.ParkChanges) (*domain.Park, error) {
			got = c
			return testPark(7), nil
		}}

		w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodPatch, "/parks/7",
			`{"data":{"type":"park","attributes":{}}}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, got.IsEmpty())
	})

	t.Run("names the unknown location attribute", func(t *testing.T) {
		parks := &mockParkStore{UpdateFn: func(context.Context, int64, domain.ParkChanges) (*domain.Park, error) {
			t.Fatal("store must not be called")
			return nil, nil
		}}

		w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodPatch, "/parks/7",
			`{"data":{"type":"park","attributes":{"location":{"city":"Albany","bogus":"x"}}}}`)

		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Contains(t, errorDetail(t, w), `unknown location attribute "bogus"`)
	})

	t.Run("owner relationship changes the owner", func(t *testing.T) {
		var got domain.ParkChanges
		parks := &mockParkStore{UpdateFn: func(_ context.Context, _ int64, c domain.ParkChanges) (*domain.Park, error) {
			got = c
			return testPark(7), nil
		}}

		w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodPatch, "/parks/7",
			`{"data":{"type":"park","relationships":{"owner":{"data":{"type":"owner","id":"5"}}}}}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NotNil(t, got.OwnerID)
		assert.Equal(t, int64(5), *got.OwnerID)
	})

	tests := []struct {
		name      string
		target    string
		body      string
		updateErr error
		want      int
	}{
		{name: "id mismatch", target: "/parks/7", body: `{"data":{"type":"park","id":"8","attributes":{}}}`, want: http.StatusConflict},
		{name: "type mismatch", target: "/parks/7", body: `{"data":{"type":"owner","attributes":{}}}`, want: http.StatusConflict},
		{name: "empty city", target: "/parks/7", body: `{"data":{"type":"park","attributes":{"location":{"city":""}}}}`, want: http.StatusBadRequest},
		{name: "unknown location attribute", target: "/parks/7", body: `{"data":{"type":"park","attributes":{"location":{"bogus":"x"}}}}`, want: http.StatusBadRequest},
		{name: "location not an object", target: "/parks/7", body: `{"data":{"type":"park","attributes":{"location":"Corvallis"}}}`, want: http.StatusBadRequest},
		{name: "latitude out of range", target: "/parks/7", body: `{"data":{"type":"park","attributes":{"location":{"latitude":91}}}}`, want: http.StatusBadRequest},
		{name: "null owner", target: "/parks/7", body: `{"data":{"type":"park","relationships":{"owner":{"data":null}}}}`, want: http.StatusBadRequest},
		{name: "bad owner id", target: "/parks/7", body: `{"data":{"type":"park","relationships":{"owner":{"data":{"type":"owner","id":"x"}}}}}`, want: http.StatusBadRequest},
		{name: "unknown relationship", target: "/parks/7", body: `{"data":{"type":"park","relationships":{"city":{"data":null}}}}`, want: http.StatusBadRequest},
		{name: "non-numeric id", target: "/parks/x", body: `{"data":{"type":"park"}}`, want: http.StatusNotFound},
		{name: "missing park", target: "/parks/7", body: `{"data":{"type":"park","attributes":{"name":"x"}}}`, updateErr: store.ErrParkNotFound, want: http.StatusNotFound},
		{
			name:      "missing owner",
			target:    "/parks/7",
			body:      `{"data":{"type":"park","relationships":{"owner":{"data":{"type":"owner","id":"99"}}}}}`,
			updateErr: &domain.ForeignKeyViolationError{Op: domain.OpUpdate, Resource: domain.ResourcePark},
			want:      http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parks := &mockParkStore{UpdateFn: func(context.Context, int64, domain.ParkChanges) (*domain.Park, error) {
				if tt.updateErr == nil {
					t.Fatal("store must not be called")
				}
				return nil, tt.updateErr
			}}
			w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodPatch, tt.target, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestParkHandlerDelete(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "deleted", target: "/parks/7", want: http.StatusNoContent},
		{name: "missing", target: "/parks/7", err: store.ErrParkNotFound, want: http.StatusNotFound},
		{name: "non-numeric id", target: "/parks/seven", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parks := &mockParkStore{DeleteFn: func(_ context.Context, id int64) error {
				assert.Equal(t, int64(7), id)
				return tt.err
			}}
			w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodDelete, tt.target, "")
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			if tt.want == http.StatusNoContent {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestParkHandlerListByOwner(t *testing.T) {
	t.Run("lists the owner's parks", func(t *testing.T) {
		parks := &mockParkStore{ListByOwnerFn: func(_ context.Context, ownerID int64) ([]*domain.Park, error) {
			assert.Equal(t, int64(2), ownerID)
			return testParks(3), nil
		}}

		w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodGet, "/owners/2/parks", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		doc := decodeBody(t, w)
		assert.Len(t, doc["data"], 3)
		assert.Equal(t, testBaseURL+"/owners/2/parks", doc["links"].(map[string]any)["self"])
	})

	t.Run("owner without parks", func(t *testing.T) {
		parks := &mockParkStore{ListByOwnerFn: func(context.Context, int64) ([]*domain.Park, error) {
			return []*domain.Park{}, nil
		}}
		w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodGet, "/owners/2/parks", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Empty(t, decodeBody(t, w)["data"])
	})

	t.Run("missing owner", func(t *testing.T) {
		parks := &mockParkStore{ListByOwnerFn: func(context.Context, int64) ([]*domain.Park, error) {
			return nil, store.ErrOwnerNotFound
		}}
		w := serve(t, newTestRouter(parks, &mockOwnerStore{}), http.MethodGet, "/owners/2/parks", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Owner not found", errorDetail(t, w))
	})
}

func TestParkHandlerUnknownAttributeDetail(t *testing.T) {
	w := serve(t, newTestRouter(&mockParkStore{}, &mockOwnerStore{}), http.MethodPost, "/parks",
		`{"data":{"type":"park","attributes":{"name":"x","ownerId":2}}}`)

	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, errorDetail(t, w),
		`unknown attribute "ownerId", expected one of: name, location, amenities`)
}
