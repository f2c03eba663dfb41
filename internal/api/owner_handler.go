package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/osu-parks/parks-api/internal/api/shared"
	"github.com/osu-parks/parks-api/internal/config"
	"github.com/osu-parks/parks-api/internal/domain"
	"github.com/osu-parks/parks-api/internal/jsonapi"
	"github.com/osu-parks/parks-api/internal/platform/logger"
	"github.com/osu-parks/parks-api/internal/query"
	"github.com/osu-parks/parks-api/internal/store"
)

// OwnerHandler handles owner-related HTTP requests
type OwnerHandler struct {
	owners     store.OwnerStore
	schema     *domain.Schema
	serializer *jsonapi.Serializer
	pages      config.PaginationConfig
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(
	owners store.OwnerStore,
	schema *domain.Schema,
	serializer *jsonapi.Serializer,
	pages config.PaginationConfig,
	logger *slog.Logger,
) *OwnerHandler {
	if owners == nil || schema == nil || serializer == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("owners, schema and serializer are required for OwnerHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OwnerHandler{
		owners:     owners,
		schema:     schema,
		serializer: serializer,
		pages:      pages,
		validator:  newValidator(),
		logger:     logger.With(slog.String("component", "owner_handler")),
	}
}

// List handles GET /owners.
func (h *OwnerHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := query.ParsePage(values, h.pages.DefaultPageSize, h.pages.MaxPageSize)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	owners, err := h.owners.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	rows, meta := query.PageSlice(owners, page)
	doc, err := h.serializer.Owners(rows, jsonapi.Collection{
		Path:  jsonapi.OwnersPath,
		Query: values,
		Page:  page,
		Meta:  meta,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithDocument(w, r, http.StatusOK, doc)
}

// Get handles GET /owners/{ownerId}.
func (h *OwnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, ParamOwnerID, store.ErrOwnerNotFound)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	owner, err := h.owners.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.respondOwner(w, r, http.StatusOK, owner)
}

// Create handles POST /owners.
func (h *OwnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	obj, err := decodeResource(w, r, domain.ResourceOwner, nil)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	attrs, present, err := h.decodeOwnerAttributes(obj)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !present {
		HandleAPIError(w, r, domain.NewMalformedRequest("owner attributes are required"))
		return
	}
	if attrs.OwnerName == nil {
		HandleAPIError(w, r, domain.NewMalformedRequest("ownerName is required"))
		return
	}

	created, err := h.owners.Create(r.Context(), &domain.Owner{Name: *attrs.OwnerName})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("owner created", slog.Int64("owner_id", created.ID))
	w.Header().Set("Location", h.serializer.OwnerURL(created.ID))
	h.respondOwner(w, r, http.StatusCreated, created)
}

// Update handles PATCH /owners/{ownerId}.
func (h *OwnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, ParamOwnerID, store.ErrOwnerNotFound)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	obj, err := decodeResource(w, r, domain.ResourceOwner, &id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if len(obj.Relationships) > 0 {
		HandleAPIError(w, r, domain.NewMalformedRequest("owners have no writable relationships"))
		return
	}
	attrs, _, err := h.decodeOwnerAttributes(obj)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	updated, err := h.owners.Update(r.Context(), id, domain.OwnerChanges{Name: attrs.OwnerName})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.respondOwner(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /owners/{ownerId}. Owners with parks cannot be deleted.
func (h *OwnerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, ParamOwnerID, store.ErrOwnerNotFound)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.owners.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *OwnerHandler) decodeOwnerAttributes(obj *resourceObject) (ownerAttributes, bool, error) {
	var attrs ownerAttributes
	present, err := decodeAttributes(obj, h.schema, domain.ResourceOwner, &attrs)
	if err != nil || !present {
		return attrs, present, err
	}
	if err := h.validator.Struct(attrs); err != nil {
		return attrs, true, SanitizeValidationError(err)
	}
	return attrs, true, nil
}

func (h *OwnerHandler) respondOwner(w http.ResponseWriter, r *http.Request, status int, owner *domain.Owner) {
	doc, err := h.serializer.Owner(owner)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithDocument(w, r, status, doc)
}
