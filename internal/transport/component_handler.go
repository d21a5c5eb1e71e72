package transport

import (
	"net/http"
	"strings"

	"pc-catalog/internal/domain"
	"pc-catalog/internal/middleware"
	"pc-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateComponentRequest represents the component creation payload
type CreateComponentRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description *string          `json:"description"`
	Image       *string          `json:"image" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0,lt=1000000"`
	SKU         string           `json:"sku" validate:"required,max=100"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
}

// UpdateComponentRequest represents a partial component update
type UpdateComponentRequest struct {
	Name        *string                 `json:"name" validate:"omitempty,min=1,max=255"`
	Description domain.Optional[string] `json:"description"`
	Image       domain.Optional[string] `json:"image" validate:"omitempty,max=500"`
	Price       *decimal.Decimal        `json:"price" validate:"omitempty,gte=0,lt=1000000"`
	SKU         *string                 `json:"sku" validate:"omitempty,min=1,max=100"`
	Category    *string                 `json:"category" validate:"omitempty,min=1,max=100"`
}

// ComponentHandler handles HTTP requests for the component catalog
type ComponentHandler struct {
	componentService service.ComponentService
	logger           *zap.Logger
}

// NewComponentHandler creates a new ComponentHandler
func NewComponentHandler(componentService service.ComponentService, logger *zap.Logger) *ComponentHandler {
	return &ComponentHandler{
		componentService: componentService,
		logger:           logger,
	}
}

// RegisterRoutes registers the component routes for every category
func (h *ComponentHandler) RegisterRoutes(r chi.Router, writeGuard ...func(http.Handler) http.Handler) {
	r.Route("/components/{kind}", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(writeGuard...).Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)

			r.Group(func(r chi.Router) {
				r.Use(writeGuard...)
				r.Put("/", h.Update)
				r.Patch("/", h.Update)
				r.Delete("/", h.Delete)
			})
		})
	})
}

// kindAndID reads the category and, when withID is set, the component id.
// It answers the request itself and returns ok=false on bad input.
func (h *ComponentHandler) kindAndID(w http.ResponseWriter, r *http.Request, withID bool) (domain.ComponentKind, int64, bool) {
	kind, ok := domain.ParseComponentKind(chi.URLParam(r, "kind"))
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "unknown component category")
		return "", 0, false
	}
	if !withID {
		return kind, 0, true
	}

	id, err := parseID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid component id")
		return "", 0, false
	}
	return kind, id, true
}

// List returns every component of a category
func (h *ComponentHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, _, ok := h.kindAndID(w, r, false)
	if !ok {
		return
	}

	components, err := h.componentService.List(r.Context(), kind)
	if err != nil {
		respondServiceError(w, h.logger, err, "list components")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, components)
}

// Get returns one component
func (h *ComponentHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.kindAndID(w, r, true)
	if !ok {
		return
	}

	component, err := h.componentService.Get(r.Context(), kind, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get component")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, component)
}

// Create adds a component to a category
func (h *ComponentHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind, _, ok := h.kindAndID(w, r, false)
	if !ok {
		return
	}

	var req CreateComponentRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, h.logger, err)
		return
	}

	if kind.Classified() && (req.Category == nil || strings.TrimSpace(*req.Category) == "") {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{{
			Field:   "category",
			Message: "This field is required",
		}})
		return
	}

	component, err := h.componentService.Create(r.Context(), &domain.Component{
		Kind:        kind,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       *req.Price,
		SKU:         req.SKU,
		Category:    req.Category,
	})
	if err != nil {
		respondServiceError(w, h.logger, err, "create component")
		return
	}

	h.logger.Info("Component created",
		zap.String("kind", string(kind)),
		zap.Int64("component_id", component.ID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, component)
}

// Update handles partial component updates for both PUT and PATCH
func (h *ComponentHandler) Update(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.kindAndID(w, r, true)
	if !ok {
		return
	}

	var req UpdateComponentRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, h.logger, err)
		return
	}

	component, err := h.componentService.Update(r.Context(), kind, id, domain.ComponentPatch{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		SKU:         req.SKU,
		Category:    req.Category,
	})
	if err != nil {
		respondServiceError(w, h.logger, err, "update component")
		return
	}

	h.logger.Info("Component updated",
		zap.String("kind", string(kind)),
		zap.Int64("component_id", component.ID),
	)
	middleware.RespondWithJSON(w, http.StatusOK, component)
}

// Delete removes a component that no product references
func (h *ComponentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.kindAndID(w, r, true)
	if !ok {
		return
	}

	if err := h.componentService.Delete(r.Context(), kind, id); err != nil {
		respondServiceError(w, h.logger, err, "delete component")
		return
	}

	h.logger.Info("Component deleted",
		zap.String("kind", string(kind)),
		zap.Int64("component_id", id),
	)
	w.WriteHeader(http.StatusNoContent)
}
