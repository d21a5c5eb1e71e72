package transport

import (
	"net/http"

	"pc-catalog/internal/domain"
	"pc-catalog/internal/middleware"
	"pc-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRefs carries the component references of a create request
type ProductRefs struct {
	RAM             *int64 `json:"ram" validate:"omitempty,gt=0"`
	CoolerAIO       *int64 `json:"cooler_aio" validate:"omitempty,gt=0"`
	SSD             *int64 `json:"ssd" validate:"omitempty,gt=0"`
	HardDisk        *int64 `json:"hard_disk" validate:"omitempty,gt=0"`
	ReaderWriter    *int64 `json:"reader_writer" validate:"omitempty,gt=0"`
	Motherboard     *int64 `json:"motherboard" validate:"omitempty,gt=0"`
	GraphicsCard    *int64 `json:"graphics_card" validate:"omitempty,gt=0"`
	OperatingSystem *int64 `json:"operating_system" validate:"omitempty,gt=0"`
	Processor       *int64 `json:"processor" validate:"omitempty,gt=0"`
	Housing         *int64 `json:"housing" validate:"omitempty,gt=0"`
	CaseFan         *int64 `json:"case_fan" validate:"omitempty,gt=0"`
}

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name         string           `json:"name" validate:"required,max=255"`
	Description  *string          `json:"description"`
	Image        *string          `json:"image" validate:"omitempty,max=500"`
	Images       []string         `json:"images" validate:"omitempty,dive,required,max=500"`
	Price        *decimal.Decimal `json:"price" validate:"required,gte=0,lt=100000000"`
	OldPrice     *decimal.Decimal `json:"old_price" validate:"omitempty,gte=0,lt=100000000"`
	DeliveryTime *int             `json:"delivery_time" validate:"omitempty,gte=0,lte=2147483647"`
	SKU          *string          `json:"sku" validate:"omitempty,max=100"`
	ProductRefs
}

func (req CreateProductRequest) toProduct() *domain.Product {
	product := &domain.Product{
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Price:        *req.Price,
		OldPrice:     req.OldPrice,
		DeliveryTime: req.DeliveryTime,
		SKU:          req.SKU,

		RAM:             req.RAM,
		CoolerAIO:       req.CoolerAIO,
		SSD:             req.SSD,
		HardDisk:        req.HardDisk,
		ReaderWriter:    req.ReaderWriter,
		Motherboard:     req.Motherboard,
		GraphicsCard:    req.GraphicsCard,
		OperatingSystem: req.OperatingSystem,
		Processor:       req.Processor,
		Housing:         req.Housing,
		CaseFan:         req.CaseFan,
	}
	if req.Images != nil {
		product.Images = domain.ImageList(req.Images)
	}
	return product
}

// ProductRefUpdates carries the component references of an update request.
// An explicit null detaches the component.
type ProductRefUpdates struct {
	RAM             domain.Optional[int64] `json:"ram" validate:"omitempty,gt=0"`
	CoolerAIO       domain.Optional[int64] `json:"cooler_aio" validate:"omitempty,gt=0"`
	SSD             domain.Optional[int64] `json:"ssd" validate:"omitempty,gt=0"`
	HardDisk        domain.Optional[int64] `json:"hard_disk" validate:"omitempty,gt=0"`
	ReaderWriter    domain.Optional[int64] `json:"reader_writer" validate:"omitempty,gt=0"`
	Motherboard     domain.Optional[int64] `json:"motherboard" validate:"omitempty,gt=0"`
	GraphicsCard    domain.Optional[int64] `json:"graphics_card" validate:"omitempty,gt=0"`
	OperatingSystem domain.Optional[int64] `json:"operating_system" validate:"omitempty,gt=0"`
	Processor       domain.Optional[int64] `json:"processor" validate:"omitempty,gt=0"`
	Housing         domain.Optional[int64] `json:"housing" validate:"omitempty,gt=0"`
	CaseFan         domain.Optional[int64] `json:"case_fan" validate:"omitempty,gt=0"`
}

func (u ProductRefUpdates) byKind() map[domain.ComponentKind]domain.Optional[int64] {
	all := map[domain.ComponentKind]domain.Optional[int64]{
		domain.KindRAM:             u.RAM,
		domain.KindCoolerAIO:       u.CoolerAIO,
		domain.KindSSD:             u.SSD,
		domain.KindHardDisk:        u.HardDisk,
		domain.KindReaderWriter:    u.ReaderWriter,
		domain.KindMotherboard:     u.Motherboard,
		domain.KindGraphicsCard:    u.GraphicsCard,
		domain.KindOperatingSystem: u.OperatingSystem,
		domain.KindProcessor:       u.Processor,
		domain.KindHousing:         u.Housing,
		domain.KindCaseFan:         u.CaseFan,
	}

	refs := make(map[domain.ComponentKind]domain.Optional[int64])
	for kind, ref := range all {
		if ref.Set {
			refs[kind] = ref
		}
	}
	return refs
}

// UpdateProductRequest represents a partial product update. Name and price
// sent as null are ignored.
type UpdateProductRequest struct {
	Name         *string                          `json:"name" validate:"omitempty,min=1,max=255"`
	Description  domain.Optional[string]          `json:"description"`
	Image        domain.Optional[string]          `json:"image" validate:"omitempty,max=500"`
	Images       domain.Optional[[]string]        `json:"images" validate:"omitempty,dive,required,max=500"`
	Price        *decimal.Decimal                 `json:"price" validate:"omitempty,gte=0,lt=100000000"`
	OldPrice     domain.Optional[decimal.Decimal] `json:"old_price" validate:"omitempty,gte=0,lt=100000000"`
	DeliveryTime domain.Optional[int]             `json:"delivery_time" validate:"omitempty,gte=0,lte=2147483647"`
	SKU          domain.Optional[string]          `json:"sku" validate:"omitempty,max=100"`
	ProductRefUpdates
}

func (req UpdateProductRequest) toPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Images:       req.Images,
		Price:        req.Price,
		OldPrice:     req.OldPrice,
		DeliveryTime: req.DeliveryTime,
		SKU:          req.SKU,
		Refs:         req.byKind(),
	}
}

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes. writeGuard wraps every
// mutating route.
func (h *ProductHandler) RegisterRoutes(r chi.Router, writeGuard ...func(http.Handler) http.Handler) {
	r.Route("/products", func(r chi.Router) {
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

// List returns all products with their basic features
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns one product with labelled features
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, h.logger, err)
		return
	}

	product, err := h.productService.Create(r.Context(), req.toProduct())
	if err != nil {
		respondServiceError(w, h.logger, err, "create product")
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles partial product updates for both PUT and PATCH
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, h.logger, err)
		return
	}

	product, err := h.productService.Update(r.Context(), id, req.toPatch())
	if err != nil {
		respondServiceError(w, h.logger, err, "update product")
		return
	}

	h.logger.Info("Product updated", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete product")
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}
