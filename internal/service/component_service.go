package service

import (
	"context"
	"fmt"
	"time"

	"pc-catalog/internal/domain"
	"pc-catalog/internal/repository"
)

// ComponentService defines the interface for component catalog operations
type ComponentService interface {
	List(ctx context.Context, kind domain.ComponentKind) ([]*domain.Component, error)
	Get(ctx context.Context, kind domain.ComponentKind, id int64) (*domain.Component, error)
	Create(ctx context.Context, component *domain.Component) (*domain.Component, error)
	Update(ctx context.Context, kind domain.ComponentKind, id int64, patch domain.ComponentPatch) (*domain.Component, error)
	Delete(ctx context.Context, kind domain.ComponentKind, id int64) error
}

type componentService struct {
	componentRepo repository.ComponentRepository
	now           func() time.Time
}

// NewComponentService creates a new instance of ComponentService
func NewComponentService(componentRepo repository.ComponentRepository) ComponentService {
	return &componentService{
		componentRepo: componentRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func checkKind(kind domain.ComponentKind) error {
	if !kind.Valid() {
		return repository.ErrUnknownComponentKind
	}
	return nil
}

func (s *componentService) List(ctx context.Context, kind domain.ComponentKind) ([]*domain.Component, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	components, err := s.componentRepo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	return components, nil
}

func (s *componentService) Get(ctx context.Context, kind domain.ComponentKind, id int64) (*domain.Component, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	component, err := s.componentRepo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get component: %w", err)
	}
	return component, nil
}

// Create stores a new component. Category is dropped for kinds that do not
// carry one.
func (s *componentService) Create(ctx context.Context, component *domain.Component) (*domain.Component, error) {
	if err := checkKind(component.Kind); err != nil {
		return nil, err
	}

	if !component.Kind.Classified() {
		component.Category = nil
	}

	now := s.now()
	component.ID = 0
	component.CreatedAt = now
	component.UpdatedAt = now

	if err := s.componentRepo.Create(ctx, component); err != nil {
		return nil, fmt.Errorf("failed to create component: %w", err)
	}
	return component, nil
}

func (s *componentService) Update(ctx context.Context, kind domain.ComponentKind, id int64, patch domain.ComponentPatch) (*domain.Component, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	component, err := s.componentRepo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get component: %w", err)
	}

	patch.Apply(component)
	component.UpdatedAt = s.now()

	if err := s.componentRepo.Update(ctx, component); err != nil {
		return nil, fmt.Errorf("failed to update component: %w", err)
	}
	return component, nil
}

// Delete removes a component unless a product still references it
func (s *componentService) Delete(ctx context.Context, kind domain.ComponentKind, id int64) error {
	if err := checkKind(kind); err != nil {
		return err
	}

	if err := s.componentRepo.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("failed to delete component: %w", err)
	}
	return nil
}
