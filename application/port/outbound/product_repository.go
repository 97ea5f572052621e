package outbound

import (
	"context"

	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/entity"
)

// StatsAggregate is the result of the single aggregate pass over products.
// SumPricesWithStock only sums prices of records that are in stock and carry
// a valid non-negative price.
type StatsAggregate struct {
	TotalProducts      int64
	TotalStock         int64
	OutOfStockCount    int64
	SumPricesWithStock float64
}

// ProductRepository is the product record store.
//
// SKU uniqueness is enforced by the store's index: Create and Update return
// a conflict error on a duplicate non-empty SKU, they never pre-check.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error

	// List returns one page of matching products plus the exact total count
	// of everything the filter matches.
	List(ctx context.Context, f query.ProductFilter, s query.Sort, pg query.Page) ([]entity.Product, int64, error)

	// Iterate streams every matching product through fn in stable order
	// without materialising the full set. A non-nil error from fn stops the
	// iteration and is returned unchanged.
	Iterate(ctx context.Context, f query.ProductFilter, fn func(*entity.Product) error) error

	// AggregateStats computes the dashboard aggregate in a single
	// database-side pass.
	AggregateStats(ctx context.Context) (*StatsAggregate, error)
}
