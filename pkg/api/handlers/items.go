package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mercator-hq/atoz/pkg/api/types"
	"mercator-hq/atoz/pkg/listing"
)

// ItemsHandler serves listing and item endpoints.
type ItemsHandler struct {
	service      *listing.Service
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewItemsHandler creates an items handler. maxBodyBytes bounds POST
// bodies; zero disables the limit.
func NewItemsHandler(service *listing.Service, maxBodyBytes int64, logger *slog.Logger) *ItemsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemsHandler{
		service:      service,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.With("component", "api.items"),
	}
}

// List handles GET /v1/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// AdminList handles GET /admin/v1/items. Admin listings may request any
// status and keep an explicit orderby in alphabetic mode.
func (h *ItemsHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *ItemsHandler) list(w http.ResponseWriter, r *http.Request, admin bool) {
	req, err := parseListRequest(r.URL.Query(), admin)
	if err != nil {
		var pe *paramError
		if errors.As(err, &pe) {
			writeError(w, types.NewInvalidRequestError(pe.Error(), pe.param, types.CodeInvalidValue))
			return
		}
		handleError(w, r, h.logger, err)
		return
	}
	req.BaseURL = linkBase(r.URL)

	res, err := h.service.List(r.Context(), req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	_ = writeJSON(w, http.StatusOK, types.NewListResponse(res))
}

// Get handles GET /v1/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, item)
}

// Create handles POST /v1/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req types.CreateItemRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handleError(w, r, h.logger, err)
			return
		}
		writeError(w, types.NewInvalidRequestError("request body is not valid JSON: "+err.Error(), "", types.CodeInvalidJSON))
		return
	}

	item := req.Item()
	if err := h.service.Put(r.Context(), item); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", "/v1/items/"+item.ID)
	_ = writeJSON(w, http.StatusCreated, item)
}

// Delete handles DELETE /v1/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
