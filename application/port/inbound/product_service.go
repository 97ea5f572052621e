package inbound

import (
	"context"

	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/entity"
)

// ProductInput carries a create or update payload. Nil fields are "not
// supplied": on create they take the documented defaults, on update they
// leave the stored value untouched.
type ProductInput struct {
	Brand       *string            `json:"brand"`
	SKU         *string            `json:"sku"`
	Category    *string            `json:"category"`
	Description *string            `json:"description"`
	Inventory   *int               `json:"inventory"`
	Price       *float64           `json:"price"`
	Metafields  *entity.Metafields `json:"metafields"`
	Images      *[]entity.Image    `json:"images"`
}

// ProductService exposes product record operations to the transport layer.
type ProductService interface {
	List(ctx context.Context, f query.ProductFilter, s query.Sort, pg query.Page) ([]entity.Product, int64, error)
	Get(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, in ProductInput, actor entity.Principal) (*entity.Product, error)
	Update(ctx context.Context, id string, in ProductInput, actor entity.Principal) (*entity.Product, error)
	Delete(ctx context.Context, id string, actor entity.Principal) error
}
