package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/horolog/horolog/application/port/inbound"
	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/apperror"
	"github.com/horolog/horolog/domain/entity"
	"github.com/horolog/horolog/infrastructure/service/logger"
)

// significantFields are the product fields tracked in audit change diffs.
// Changes to anything else are deliberately not recorded.
var significantFields = []string{"brand", "sku", "inventory", "price"}

// ProductUseCase implements product CRUD. Every completed mutation is handed
// to the audit recorder after the store write finishes; the recorder never
// delays or fails the response.
type ProductUseCase struct {
	products outbound.ProductRepository
	audit    outbound.AuditRecorder
	log      logger.Logger
}

func NewProductUseCase(products outbound.ProductRepository, audit outbound.AuditRecorder, log logger.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, audit: audit, log: log}
}

func (uc *ProductUseCase) List(ctx context.Context, f query.ProductFilter, s query.Sort, pg query.Page) ([]entity.Product, int64, error) {
	return uc.products.List(ctx, f, s, pg)
}

func (uc *ProductUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	return uc.products.GetByID(ctx, id)
}

func (uc *ProductUseCase) Create(ctx context.Context, in inbound.ProductInput, actor entity.Principal) (*entity.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &entity.Product{
		ID:        uuid.NewString(),
		Images:    []entity.Image{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(p, in)

	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Record(entity.ActionCreate, p, actor, nil)
	uc.log.Info(ctx, "product created", map[string]interface{}{"product_id": p.ID, "sku": p.SKU})
	return p, nil
}

func (uc *ProductUseCase) Update(ctx context.Context, id string, in inbound.ProductInput, actor entity.Principal) (*entity.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	// Snapshot before the write; the diff compares against it afterwards.
	before, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	after := *before
	after.Images = append([]entity.Image(nil), before.Images...)
	applyInput(&after, in)
	after.UpdatedAt = time.Now().UTC()

	if err := uc.products.Update(ctx, &after); err != nil {
		return nil, err
	}

	uc.audit.Record(entity.ActionUpdate, &after, actor, diffSignificant(before, &after))
	uc.log.Info(ctx, "product updated", map[string]interface{}{"product_id": after.ID, "sku": after.SKU})
	return &after, nil
}

func (uc *ProductUseCase) Delete(ctx context.Context, id string, actor entity.Principal) error {
	// Fetch first so the audit entry can snapshot brand/sku of what is
	// about to disappear.
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.products.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Record(entity.ActionDelete, p, actor, nil)
	uc.log.Info(ctx, "product deleted", map[string]interface{}{"product_id": id, "sku": p.SKU})
	return nil
}

func validateInput(in inbound.ProductInput) error {
	if in.Inventory != nil && *in.Inventory < 0 {
		return apperror.InvalidInput("inventory must be >= 0")
	}
	if in.Price != nil && *in.Price < 0 {
		return apperror.InvalidInput("price must be >= 0")
	}
	return nil
}

// applyInput copies supplied fields onto p. Text fields are trimmed; an
// explicit empty string is a valid value and clears the field.
func applyInput(p *entity.Product, in inbound.ProductInput) {
	if in.Brand != nil {
		p.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Inventory != nil {
		p.Inventory = *in.Inventory
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Metafields != nil {
		p.Metafields = *in.Metafields
	}
	if in.Images != nil {
		p.Images = append([]entity.Image(nil), (*in.Images)...)
	}
}

// diffSignificant compares the tracked fields before and after an update and
// returns a change map holding only the fields that actually differ.
func diffSignificant(before, after *entity.Product) map[string]entity.FieldChange {
	changes := make(map[string]entity.FieldChange)
	for _, field := range significantFields {
		switch field {
		case "brand":
			if before.Brand != after.Brand {
				changes[field] = entity.FieldChange{From: before.Brand, To: after.Brand}
			}
		case "sku":
			if before.SKU != after.SKU {
				changes[field] = entity.FieldChange{From: before.SKU, To: after.SKU}
			}
		case "inventory":
			if before.Inventory != after.Inventory {
				changes[field] = entity.FieldChange{From: before.Inventory, To: after.Inventory}
			}
		case "price":
			if before.Price != after.Price {
				changes[field] = entity.FieldChange{From: before.Price, To: after.Price}
			}
		}
	}
	return changes
}
