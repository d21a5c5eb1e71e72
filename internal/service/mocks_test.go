package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pc-catalog/internal/domain"
	"pc-catalog/internal/repository"
)

// Mock repositories for testing
type mockProductRepository struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	nextID   int64
	err      error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[int64]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	product.ID = m.nextID
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	found := *product
	return &found, nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	products := make([]*domain.Product, 0, len(m.products))
	for _, product := range m.products {
		p := *product
		products = append(products, &p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

type mockComponentRepository struct {
	mu         sync.Mutex
	components map[domain.ComponentKind]map[int64]*domain.Component
	nextID     int64
	lookups    int
	err        error
}

func newMockComponentRepository() *mockComponentRepository {
	return &mockComponentRepository{components: make(map[domain.ComponentKind]map[int64]*domain.Component)}
}

// add stores a component directly and returns its id.
func (m *mockComponentRepository) add(kind domain.ComponentKind, name string) int64 {
	c := &domain.Component{Kind: kind, Name: name, SKU: name}
	if err := m.Create(context.Background(), c); err != nil {
		panic(err)
	}
	return c.ID
}

func (m *mockComponentRepository) Create(ctx context.Context, component *domain.Component) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !component.Kind.Valid() {
		return repository.ErrUnknownComponentKind
	}
	for _, existing := range m.components[component.Kind] {
		if existing.SKU == component.SKU {
			return repository.ErrDuplicateSKU
		}
	}
	if m.components[component.Kind] == nil {
		m.components[component.Kind] = make(map[int64]*domain.Component)
	}
	m.nextID++
	component.ID = m.nextID
	stored := *component
	m.components[component.Kind][component.ID] = &stored
	return nil
}

func (m *mockComponentRepository) Update(ctx context.Context, component *domain.Component) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.components[component.Kind][component.ID]; !exists {
		return repository.ErrComponentNotFound
	}
	for id, existing := range m.components[component.Kind] {
		if id != component.ID && existing.SKU == component.SKU {
			return repository.ErrDuplicateSKU
		}
	}
	stored := *component
	m.components[component.Kind][component.ID] = &stored
	return nil
}

func (m *mockComponentRepository) Delete(ctx context.Context, kind domain.ComponentKind, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.components[kind][id]; !exists {
		return repository.ErrComponentNotFound
	}
	delete(m.components[kind], id)
	return nil
}

func (m *mockComponentRepository) FindByID(ctx context.Context, kind domain.ComponentKind, id int64) (*domain.Component, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.err != nil {
		return nil, m.err
	}
	component, exists := m.components[kind][id]
	if !exists {
		return nil, repository.ErrComponentNotFound
	}
	found := *component
	return &found, nil
}

func (m *mockComponentRepository) List(ctx context.Context, kind domain.ComponentKind) ([]*domain.Component, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	components := make([]*domain.Component, 0, len(m.components[kind]))
	for _, component := range m.components[kind] {
		c := *component
		components = append(components, &c)
	}
	sort.Slice(components, func(i, j int) bool { return components[i].ID < components[j].ID })
	return components, nil
}

func (m *mockComponentRepository) FindNamesByIDs(ctx context.Context, kind domain.ComponentKind, ids []int64) (domain.ComponentNames, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.err != nil {
		return nil, m.err
	}
	names := make(domain.ComponentNames, len(ids))
	for _, id := range ids {
		if component, exists := m.components[kind][id]; exists {
			names[id] = component.Name
		}
	}
	return names, nil
}

var errBoom = errors.New("connection reset")
