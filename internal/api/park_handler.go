package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/osu-parks/parks-api/internal/api/shared"
	"github.com/osu-parks/parks-api/internal/config"
	"github.com/osu-parks/parks-api/internal/domain"
	"github.com/osu-parks/parks-api/internal/jsonapi"
	"github.com/osu-parks/parks-api/internal/platform/logger"
	"github.com/osu-parks/parks-api/internal/query"
	"github.com/osu-parks/parks-api/internal/store"
)

// ParkHandler handles park-related HTTP requests
type ParkHandler struct {
	parks      store.ParkStore
	schema     *domain.Schema
	serializer *jsonapi.Serializer
	pages      config.PaginationConfig
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewParkHandler creates a new ParkHandler
func NewParkHandler(
	parks store.ParkStore,
	schema *domain.Schema,
	serializer *jsonapi.Serializer,
	pages config.PaginationConfig,
	logger *slog.Logger,
) *ParkHandler {
	if parks == nil || schema == nil || serializer == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("parks, schema and serializer are required for ParkHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ParkHandler{
		parks:      parks,
		schema:     schema,
		serializer: serializer,
		pages:      pages,
		validator:  newValidator(),
		logger:     logger.With(slog.String("component", "park_handler")),
	}
}

// List handles GET /parks.
func (h *ParkHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	filter, err := query.ParseParkFilters(values)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	page, err := query.ParsePage(values, h.pages.DefaultPageSize, h.pages.MaxPageSize)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	parks, err := h.parks.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.respondCollection(w, r, parks, jsonapi.ParksPath, values, page)
}

// ListByOwner handles GET /owners/{ownerId}/parks.
func (h *ParkHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := getPathID(r, ParamOwnerID, store.ErrOwnerNotFound)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	values := r.URL.Query()
	page, err := query.ParsePage(values, h.pages.DefaultPageSize, h.pages.MaxPageSize)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	parks, err := h.parks.ListByOwner(r.Context(), ownerID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	path := jsonapi.OwnersPath + "/" + strconv.FormatInt(ownerID, 10) + "/" + jsonapi.ParksPath
	h.respondCollection(w, r, parks, path, values, page)
}

// Get handles GET /parks/{parkId}.
func (h *ParkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, ParamParkID, store.ErrParkNotFound)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	park, err := h.parks.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.respondPark(w, r, http.StatusOK, park)
}

// Create handles POST /parks.
func (h *ParkHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	obj, err := decodeResource(w, r, domain.ResourcePark, nil)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	attrs, present, err := h.decodeParkAttributes(obj)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !present {
		HandleAPIError(w, r, domain.NewMalformedRequest("park attributes are required"))
		return
	}
	ownerID, err := ownerRelationship(obj)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	park, err := attrs.toPark(ownerID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	created, err := h.parks.Create(r.Context(), park)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("park created", slog.Int64("park_id", created.ID))
	w.Header().Set("Location", h.serializer.ParkURL(created.ID))
	h.respondPark(w, r, http.StatusCreated, created)
}

// Update handles PATCH /parks/{parkId}. Only supplied members change.
func (h *ParkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, ParamParkID, store.ErrParkNotFound)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	obj, err := decodeResource(w, r, domain.ResourcePark, &id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	attrs, _, err := h.decodeParkAttributes(obj)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	ownerID, err := ownerRelationship(obj)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	updated, err := h.parks.Update(r.Context(), id, attrs.toChanges(ownerID))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.respondPark(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /parks/{parkId}.
func (h *ParkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, ParamParkID, store.ErrParkNotFound)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.parks.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ParkHandler) decodeParkAttributes(obj *resourceObject) (parkAttributes, bool, error) {
	var attrs parkAttributes
	present, err := decodeAttributes(obj, h.schema, domain.ResourcePark, &attrs)
	if err != nil || !present {
		return attrs, present, err
	}
	if err := h.validator.Struct(attrs); err != nil {
		return attrs, true, SanitizeValidationError(err)
	}
	return attrs, true, nil
}

func (h *ParkHandler) respondPark(w http.ResponseWriter, r *http.Request, status int, park *domain.Park) {
	doc, err := h.serializer.Park(park)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithDocument(w, r, status, doc)
}

func (h *ParkHandler) respondCollection(
	w http.ResponseWriter,
	r *http.Request,
	parks []*domain.Park,
	path string,
	values url.Values,
	page query.Page,
) {
	rows, meta := query.PageSlice(parks, page)
	doc, err := h.serializer.Parks(rows, jsonapi.Collection{Path: path, Query: values, Page: page, Meta: meta})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithDocument(w, r, http.StatusOK, doc)
}
