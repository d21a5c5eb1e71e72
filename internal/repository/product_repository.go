package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pc-catalog/internal/domain"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// productWritableColumns lists the columns a client may set, in the order
// productWritableValues returns their values.
var productWritableColumns = func() []string {
	columns := []string{"name", "description", "image", "images", "price", "old_price", "delivery_time", "sku"}
	for _, kind := range domain.ProductComponentKinds {
		columns = append(columns, kind.ProductColumn())
	}
	return columns
}()

var productSelectColumns = "id, " + strings.Join(productWritableColumns, ", ") + ", created_at, updated_at"

func productWritableValues(p *domain.Product) []interface{} {
	values := []interface{}{p.Name, p.Description, p.Image, p.Images, p.Price, p.OldPrice, p.DeliveryTime, p.SKU}
	for _, kind := range domain.ProductComponentKinds {
		values = append(values, *p.Ref(kind))
	}
	return values
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	dest := []interface{}{
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Image,
		&p.Images,
		&p.Price,
		&p.OldPrice,
		&p.DeliveryTime,
		&p.SKU,
	}
	for _, kind := range domain.ProductComponentKinds {
		dest = append(dest, p.Ref(kind))
	}
	dest = append(dest, &p.CreatedAt, &p.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

// writeError maps constraint violations raised by a product write.
func writeError(op string, err error) error {
	if refErr, ok := referenceErrorFor(err); ok {
		return refErr
	}
	return fmt.Errorf("failed to %s product: %w", op, err)
}

// Create inserts a new product and replaces *product with the stored row,
// so prices and timestamps carry the precision the columns kept.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	columns := append(append([]string{}, productWritableColumns...), "created_at", "updated_at")
	args := append(productWritableValues(product), product.CreatedAt, product.UpdatedAt)

	query := fmt.Sprintf(
		`INSERT INTO products (%s) VALUES (%s) RETURNING %s`,
		strings.Join(columns, ", "), placeholders(1, len(columns)), productSelectColumns,
	)

	stored, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return writeError("create", err)
	}

	*product = *stored
	return nil
}

// Update overwrites every writable column of an existing product and
// replaces *product with the stored row
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	set := make([]string, len(productWritableColumns))
	for i, column := range productWritableColumns {
		set[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}

	query := fmt.Sprintf(
		`UPDATE products SET %s, updated_at = CURRENT_TIMESTAMP WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), productSelectColumns,
	)
	args := append([]interface{}{product.ID}, productWritableValues(product)...)

	stored, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return writeError("update", err)
	}

	*product = *stored
	return nil
}

// Delete removes a product from the database using parameterized queries
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productSelectColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves every product in insertion order
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productSelectColumns + ` FROM products ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
