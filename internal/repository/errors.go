package repository

import (
	"errors"
	"fmt"
	"strings"

	"pc-catalog/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	// products foreign keys are named fk_products_<column without _id>
	productReferencePrefix = "fk_products_"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrComponentNotFound    = errors.New("component not found")
	ErrUnknownComponentKind = errors.New("unknown component kind")
	ErrDuplicateSKU         = errors.New("a component with this sku already exists")
	ErrComponentInUse       = errors.New("component is referenced by a product")
)

// ReferenceError reports a product reference to a component row that does
// not exist.
type ReferenceError struct {
	Kind domain.ComponentKind
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s references a missing %s component", e.Kind.ProductField(), e.Kind)
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == pgForeignKeyViolation
}

// referenceErrorFor maps a products foreign key violation to the offending
// component kind.
func referenceErrorFor(err error) (*ReferenceError, bool) {
	pgErr, ok := asPgError(err)
	if !ok || pgErr.Code != pgForeignKeyViolation {
		return nil, false
	}
	for _, kind := range domain.ProductComponentKinds {
		column := strings.TrimSuffix(kind.ProductColumn(), "_id")
		if pgErr.ConstraintName == productReferencePrefix+column {
			return &ReferenceError{Kind: kind}, true
		}
	}
	return nil, false
}
