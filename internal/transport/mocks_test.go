package transport

import (
	"context"

	"pc-catalog/internal/domain"
	"pc-catalog/internal/repository"
)

// Mock services for testing
type mockProductService struct {
	products    map[int64]*domain.Product
	summaries   []*domain.ProductSummary
	details     map[int64]*domain.ProductDetail
	lastCreated *domain.Product
	lastPatch   *domain.ProductPatch
	err         error
}

func newMockProductService() *mockProductService {
	return &mockProductService{
		products: make(map[int64]*domain.Product),
		details:  make(map[int64]*domain.ProductDetail),
	}
}

func (m *mockProductService) List(ctx context.Context) ([]*domain.ProductSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summaries, nil
}

func (m *mockProductService) Get(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	detail, ok := m.details[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return detail, nil
}

func (m *mockProductService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	m.lastCreated = product
	if m.err != nil {
		return nil, m.err
	}
	product.ID = int64(len(m.products) + 1)
	m.products[product.ID] = product
	return product, nil
}

func (m *mockProductService) Update(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	m.lastPatch = &patch
	if m.err != nil {
		return nil, m.err
	}
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	patch.Apply(product)
	return product, nil
}

func (m *mockProductService) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

type mockComponentService struct {
	components  map[int64]*domain.Component
	lastCreated *domain.Component
	err         error
}

func newMockComponentService() *mockComponentService {
	return &mockComponentService{components: make(map[int64]*domain.Component)}
}

func (m *mockComponentService) List(ctx context.Context, kind domain.ComponentKind) ([]*domain.Component, error) {
	var components []*domain.Component
	for _, c := range m.components {
		if c.Kind == kind {
			components = append(components, c)
		}
	}
	return components, nil
}

func (m *mockComponentService) Get(ctx context.Context, kind domain.ComponentKind, id int64) (*domain.Component, error) {
	c, ok := m.components[id]
	if !ok || c.Kind != kind {
		return nil, repository.ErrComponentNotFound
	}
	return c, nil
}

func (m *mockComponentService) Create(ctx context.Context, component *domain.Component) (*domain.Component, error) {
	m.lastCreated = component
	if m.err != nil {
		return nil, m.err
	}
	component.ID = int64(len(m.components) + 1)
	m.components[component.ID] = component
	return component, nil
}

func (m *mockComponentService) Update(ctx context.Context, kind domain.ComponentKind, id int64, patch domain.ComponentPatch) (*domain.Component, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, err := m.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(c)
	return c, nil
}

func (m *mockComponentService) Delete(ctx context.Context, kind domain.ComponentKind, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, err := m.Get(ctx, kind, id); err != nil {
		return err
	}
	delete(m.components, id)
	return nil
}
