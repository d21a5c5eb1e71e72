package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pc-catalog/internal/domain"
	"pc-catalog/internal/repository"

	"golang.org/x/sync/errgroup"
)

// ProductService defines the interface for product business logic
type ProductService interface {
	List(ctx context.Context) ([]*domain.ProductSummary, error)
	Get(ctx context.Context, id int64) (*domain.ProductDetail, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	productRepo   repository.ProductRepository
	componentRepo repository.ComponentRepository
	now           func() time.Time
}

// NewProductService creates a new instance of ProductService
func NewProductService(
	productRepo repository.ProductRepository,
	componentRepo repository.ComponentRepository,
) ProductService {
	return &productService{
		productRepo:   productRepo,
		componentRepo: componentRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// List returns every product with the names of its basic components
func (s *productService) List(ctx context.Context) ([]*domain.ProductSummary, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	names, err := s.resolveNames(ctx, products, domain.SummaryFeatureKinds)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.ProductSummary, len(products))
	for i, product := range products {
		summaries[i] = domain.NewProductSummary(product, names)
	}

	return summaries, nil
}

// Get returns a single product with its labelled features
func (s *productService) Get(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	resolved, err := s.resolveComponents(ctx, product, domain.DetailFeatureKinds)
	if err != nil {
		return nil, err
	}

	return domain.NewProductDetail(product, resolved), nil
}

// Create stores a new product. Only allow-listed fields of product are kept.
func (s *productService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	now := s.now()
	product.ID = 0
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// Update applies a partial update to an existing product
func (s *productService) Update(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	patch.Apply(product)
	product.UpdatedAt = s.now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Delete removes a product; its components are left untouched
func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// resolveNames looks up, per kind, the names of every component referenced
// by products. Kinds are queried concurrently, one batched query each.
func (s *productService) resolveNames(ctx context.Context, products []*domain.Product, kinds []domain.ComponentKind) (map[domain.ComponentKind]domain.ComponentNames, error) {
	results := make([]domain.ComponentNames, len(kinds))

	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		ids := referencedIDs(products, kind)
		if len(ids) == 0 {
			continue
		}

		g.Go(func() error {
			names, err := s.componentRepo.FindNamesByIDs(ctx, kind, ids)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", kind, err)
			}
			results[i] = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[domain.ComponentKind]domain.ComponentNames, len(kinds))
	for i, kind := range kinds {
		if results[i] != nil {
			names[kind] = results[i]
		}
	}
	return names, nil
}

// resolveComponents fetches the components product references among kinds,
// one concurrent lookup per kind. A reference to a missing row is treated as
// unresolved.
func (s *productService) resolveComponents(ctx context.Context, product *domain.Product, kinds []domain.ComponentKind) (map[domain.ComponentKind]*domain.Component, error) {
	results := make([]*domain.Component, len(kinds))

	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		id, ok := product.RefID(kind)
		if !ok {
			continue
		}

		g.Go(func() error {
			component, err := s.componentRepo.FindByID(ctx, kind, id)
			if errors.Is(err, repository.ErrComponentNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", kind, err)
			}
			results[i] = component
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := make(map[domain.ComponentKind]*domain.Component, len(kinds))
	for i, kind := range kinds {
		if results[i] != nil {
			resolved[kind] = results[i]
		}
	}
	return resolved, nil
}

func referencedIDs(products []*domain.Product, kind domain.ComponentKind) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, product := range products {
		id, ok := product.RefID(kind)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
