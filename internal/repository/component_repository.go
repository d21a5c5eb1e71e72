package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pc-catalog/internal/domain"
)

// ComponentRepository defines the interface for component catalog data access.
// Every method is scoped to a single kind, i.e. a single table.
type ComponentRepository interface {
	Create(ctx context.Context, component *domain.Component) error
	Update(ctx context.Context, component *domain.Component) error
	Delete(ctx context.Context, kind domain.ComponentKind, id int64) error
	FindByID(ctx context.Context, kind domain.ComponentKind, id int64) (*domain.Component, error)
	List(ctx context.Context, kind domain.ComponentKind) ([]*domain.Component, error)
	FindNamesByIDs(ctx context.Context, kind domain.ComponentKind, ids []int64) (domain.ComponentNames, error)
}

type componentRepository struct {
	db *sql.DB
}

// NewComponentRepository creates a new instance of ComponentRepository
func NewComponentRepository(db *sql.DB) ComponentRepository {
	return &componentRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// table returns the table for kind. Table names only ever come from the
// fixed kind registry, never from request input.
func table(kind domain.ComponentKind) (string, error) {
	if !kind.Valid() {
		return "", ErrUnknownComponentKind
	}
	return kind.Table(), nil
}

func componentColumns(kind domain.ComponentKind) []string {
	columns := []string{"id", "name", "description", "image", "price", "sku", "created_at", "updated_at"}
	if kind.Classified() {
		columns = append(columns, "category")
	}
	return columns
}

func scanComponent(row rowScanner, kind domain.ComponentKind) (*domain.Component, error) {
	component := &domain.Component{Kind: kind}
	dest := []interface{}{
		&component.ID,
		&component.Name,
		&component.Description,
		&component.Image,
		&component.Price,
		&component.SKU,
		&component.CreatedAt,
		&component.UpdatedAt,
	}
	if kind.Classified() {
		dest = append(dest, &component.Category)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	component.CreatedAt = component.CreatedAt.UTC()
	component.UpdatedAt = component.UpdatedAt.UTC()
	return component, nil
}

// Create inserts a new component and replaces *component with the stored row
func (r *componentRepository) Create(ctx context.Context, component *domain.Component) error {
	tbl, err := table(component.Kind)
	if err != nil {
		return err
	}

	columns := componentColumns(component.Kind)[1:]
	args := []interface{}{
		component.Name,
		component.Description,
		component.Image,
		component.Price,
		component.SKU,
		component.CreatedAt,
		component.UpdatedAt,
	}
	if component.Kind.Classified() {
		args = append(args, component.Category)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		tbl, strings.Join(columns, ", "), placeholders(1, len(columns)),
		strings.Join(componentColumns(component.Kind), ", "),
	)

	stored, err := scanComponent(r.db.QueryRowContext(ctx, query, args...), component.Kind)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSKU
		}
		return fmt.Errorf("failed to create %s component: %w", component.Kind, err)
	}

	*component = *stored
	return nil
}

// Update writes every mutable column of an existing component
func (r *componentRepository) Update(ctx context.Context, component *domain.Component) error {
	tbl, err := table(component.Kind)
	if err != nil {
		return err
	}

	set := []string{"name = $2", "description = $3", "image = $4", "price = $5", "sku = $6"}
	args := []interface{}{
		component.ID,
		component.Name,
		component.Description,
		component.Image,
		component.Price,
		component.SKU,
	}
	if component.Kind.Classified() {
		set = append(set, "category = $7")
		args = append(args, component.Category)
	}

	query := fmt.Sprintf(
		`UPDATE %s SET %s, updated_at = CURRENT_TIMESTAMP WHERE id = $1 RETURNING %s`,
		tbl, strings.Join(set, ", "), strings.Join(componentColumns(component.Kind), ", "),
	)

	stored, err := scanComponent(r.db.QueryRowContext(ctx, query, args...), component.Kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrComponentNotFound
		}
		if isUniqueViolation(err) {
			return ErrDuplicateSKU
		}
		return fmt.Errorf("failed to update %s component: %w", component.Kind, err)
	}

	*component = *stored
	return nil
}

// Delete removes a component. Rows still referenced by a product are kept.
func (r *componentRepository) Delete(ctx context.Context, kind domain.ComponentKind, id int64) error {
	tbl, err := table(kind)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tbl), id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrComponentInUse
		}
		return fmt.Errorf("failed to delete %s component: %w", kind, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrComponentNotFound
	}

	return nil
}

// FindByID retrieves a component of the given kind
func (r *componentRepository) FindByID(ctx context.Context, kind domain.ComponentKind, id int64) (*domain.Component, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, strings.Join(componentColumns(kind), ", "), tbl)

	component, err := scanComponent(r.db.QueryRowContext(ctx, query, id), kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrComponentNotFound
		}
		return nil, fmt.Errorf("failed to find %s component by ID: %w", kind, err)
	}

	return component, nil
}

// List retrieves every component of the given kind ordered by name
func (r *componentRepository) List(ctx context.Context, kind domain.ComponentKind) ([]*domain.Component, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY name ASC, id ASC`, strings.Join(componentColumns(kind), ", "), tbl)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s components: %w", kind, err)
	}
	defer rows.Close()

	components := []*domain.Component{}
	for rows.Next() {
		component, err := scanComponent(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s component: %w", kind, err)
		}
		components = append(components, component)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s components: %w", kind, err)
	}

	return components, nil
}

// FindNamesByIDs resolves many ids of one kind in a single query. Ids with no
// matching row are absent from the result.
func (r *componentRepository) FindNamesByIDs(ctx context.Context, kind domain.ComponentKind, ids []int64) (domain.ComponentNames, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	names := make(domain.ComponentNames, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, name FROM %s WHERE id = ANY($1)`, tbl), ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s components: %w", kind, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan %s component name: %w", kind, err)
		}
		names[id] = name
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s component names: %w", kind, err)
	}

	return names, nil
}

// placeholders renders "$from, ..., $(from+n-1)".
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}
