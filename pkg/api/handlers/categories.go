package handlers

import (
	"log/slog"
	"net/http"

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/api/types"
	"mercator-hq/atoz/pkg/capability"
	"mercator-hq/atoz/pkg/listing"
)

// CategoriesHandler serves category metadata and letter navigation.
type CategoriesHandler struct {
	registry   *capability.Registry
	service    *listing.Service
	paramNames []string
	feature    string
	logger     *slog.Logger
}

// NewCategoriesHandler creates a categories handler. paramNames are the
// filter parameter names in priority order; the first is used in links.
func NewCategoriesHandler(registry *capability.Registry, service *listing.Service, feature string, paramNames []string, logger *slog.Logger) *CategoriesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if feature == "" {
		feature = alpha.Feature
	}
	if len(paramNames) == 0 {
		paramNames = alpha.DefaultParamNames
	}
	return &CategoriesHandler{
		registry:   registry,
		service:    service,
		paramNames: paramNames,
		feature:    feature,
		logger:     logger.With("component", "api.categories"),
	}
}

// List handles GET /v1/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	names := h.registry.Categories()
	resp := types.CategoriesResponse{
		Categories: make([]types.Category, 0, len(names)),
		Version:    h.registry.Version(),
		LoadedAt:   h.registry.LoadedAt(),
	}
	for _, name := range names {
		resp.Categories = append(resp.Categories, types.Category{
			Name:          name,
			Features:      h.registry.Features(name),
			AlphaSortable: h.registry.Supports(name, h.feature),
		})
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// Links handles GET /v1/categories/{category}/links. The navigation
// points at base, taken from the "base" parameter and defaulting to
// /v1/items?category={category}.
func (h *CategoriesHandler) Links(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	values := r.URL.Query()

	raw, _ := alpha.ReadParam(values, h.paramNames...)
	current := alpha.Normalize(raw)

	base, err := linksBase(values.Get("base"), category)
	if err != nil {
		writeError(w, types.NewInvalidRequestError("base must be a relative or absolute URL", "base", types.CodeInvalidValue))
		return
	}

	links := h.service.Links(category, base, current)
	if links == nil {
		writeError(w, types.NewNotFoundError(
			"category "+category+" does not support alphabetic listing",
			types.CodeAlphaUnsupported,
		))
		return
	}

	_ = writeJSON(w, http.StatusOK, types.LinksResponse{
		Category: category,
		Current:  current.Value(),
		Links:    links,
	})
}
