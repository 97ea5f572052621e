package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/horolog/horolog/application/port/inbound"
	"github.com/horolog/horolog/domain/apperror"
	"github.com/horolog/horolog/domain/entity"
	"github.com/horolog/horolog/infrastructure/service/logger"
)

func strptr(s string) *string { return &s }

func intptr(i int) *int { return &i }

func floatptr(f float64) *float64 { return &f }

var testActor = entity.Principal{ID: "admin-1", Name: "Ada", Email: "ada@example.com"}

func newProductUseCase(repo *mockProductRepository, rec *stubRecorder) *ProductUseCase {
	return NewProductUseCase(repo, rec, logger.NewNop())
}

func TestProductUseCase_Create(t *testing.T) {
	t.Run("creates and records audit entry without changes", func(t *testing.T) {
		repo := new(mockProductRepository)
		rec := &stubRecorder{}
		uc := newProductUseCase(repo, rec)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil)

		p, err := uc.Create(context.Background(), inbound.ProductInput{
			Brand:     strptr("  Seiko  "),
			SKU:       strptr("SRPD55K1"),
			Inventory: intptr(5),
			Price:     floatptr(295),
		}, testActor)

		assert.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "Seiko", p.Brand, "text fields are trimmed")
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)

		if assert.Len(t, rec.calls, 1) {
			call := rec.calls[0]
			assert.Equal(t, entity.ActionCreate, call.action)
			assert.Equal(t, testActor, call.actor)
			assert.Equal(t, p.ID, call.product.ID)
			assert.Nil(t, call.changes)
		}
		repo.AssertExpectations(t)
	})

	t.Run("rejects negative inventory", func(t *testing.T) {
		repo := new(mockProductRepository)
		rec := &stubRecorder{}
		uc := newProductUseCase(repo, rec)

		_, err := uc.Create(context.Background(), inbound.ProductInput{
			Brand:     strptr("Seiko"),
			Inventory: intptr(-1),
		}, testActor)

		assert.True(t, apperror.Is(err, apperror.CodeInvalidInput))
		assert.Empty(t, rec.calls, "failed mutations must not be audited")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		repo := new(mockProductRepository)
		uc := newProductUseCase(repo, &stubRecorder{})

		_, err := uc.Create(context.Background(), inbound.ProductInput{
			Price: floatptr(-0.01),
		}, testActor)

		assert.True(t, apperror.Is(err, apperror.CodeInvalidInput))
	})

	t.Run("store failure is returned and not audited", func(t *testing.T) {
		repo := new(mockProductRepository)
		rec := &stubRecorder{}
		uc := newProductUseCase(repo, rec)

		repo.On("Create", mock.Anything, mock.Anything).Return(apperror.Conflict("sku already exists"))

		_, err := uc.Create(context.Background(), inbound.ProductInput{SKU: strptr("DUP-1")}, testActor)

		assert.True(t, apperror.Is(err, apperror.CodeConflict))
		assert.Empty(t, rec.calls)
	})
}

func TestProductUseCase_Update(t *testing.T) {
	existing := func() *entity.Product {
		return &entity.Product{
			ID:        "p-1",
			Brand:     "Seiko",
			SKU:       "SRPD55K1",
			Category:  "Dive",
			Inventory: 5,
			Price:     295,
		}
	}

	t.Run("diff holds only changed significant fields", func(t *testing.T) {
		repo := new(mockProductRepository)
		rec := &stubRecorder{}
		uc := newProductUseCase(repo, rec)

		repo.On("GetByID", mock.Anything, "p-1").Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		p, err := uc.Update(context.Background(), "p-1", inbound.ProductInput{
			Inventory:   intptr(3),
			Price:       floatptr(279.5),
			Description: strptr("now on sale"), // not a tracked field
		}, testActor)

		assert.NoError(t, err)
		assert.Equal(t, 3, p.Inventory)

		if assert.Len(t, rec.calls, 1) {
			changes := rec.calls[0].changes
			assert.Equal(t, entity.ActionUpdate, rec.calls[0].action)
			assert.Len(t, changes, 2)
			assert.Equal(t, entity.FieldChange{From: 5, To: 3}, changes["inventory"])
			assert.Equal(t, entity.FieldChange{From: 295.0, To: 279.5}, changes["price"])
			assert.NotContains(t, changes, "brand")
			assert.NotContains(t, changes, "description")
		}
	})

	t.Run("no-op update yields empty diff", func(t *testing.T) {
		repo := new(mockProductRepository)
		rec := &stubRecorder{}
		uc := newProductUseCase(repo, rec)

		repo.On("GetByID", mock.Anything, "p-1").Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		_, err := uc.Update(context.Background(), "p-1", inbound.ProductInput{
			Brand: strptr("Seiko"),
		}, testActor)

		assert.NoError(t, err)
		if assert.Len(t, rec.calls, 1) {
			assert.Empty(t, rec.calls[0].changes)
		}
	})

	t.Run("unsupplied fields stay untouched", func(t *testing.T) {
		repo := new(mockProductRepository)
		rec := &stubRecorder{}
		uc := newProductUseCase(repo, rec)

		repo.On("GetByID", mock.Anything, "p-1").Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		p, err := uc.Update(context.Background(), "p-1", inbound.ProductInput{
			Brand: strptr("Grand Seiko"),
		}, testActor)

		assert.NoError(t, err)
		assert.Equal(t, "Grand Seiko", p.Brand)
		assert.Equal(t, "SRPD55K1", p.SKU)
		assert.Equal(t, 5, p.Inventory)
	})

	t.Run("missing product returns not found", func(t *testing.T) {
		repo := new(mockProductRepository)
		rec := &stubRecorder{}
		uc := newProductUseCase(repo, rec)

		repo.On("GetByID", mock.Anything, "ghost").Return(nil, apperror.NotFound("product", "ghost"))

		_, err := uc.Update(context.Background(), "ghost", inbound.ProductInput{}, testActor)

		assert.True(t, apperror.Is(err, apperror.CodeNotFound))
		assert.Empty(t, rec.calls)
	})
}

func TestProductUseCase_Delete(t *testing.T) {
	t.Run("audits snapshot of deleted product", func(t *testing.T) {
		repo := new(mockProductRepository)
		rec := &stubRecorder{}
		uc := newProductUseCase(repo, rec)

		repo.On("GetByID", mock.Anything, "p-1").Return(&entity.Product{
			ID: "p-1", Brand: "Casio", SKU: "A158WA-1",
		}, nil)
		repo.On("Delete", mock.Anything, "p-1").Return(nil)

		err := uc.Delete(context.Background(), "p-1", testActor)

		assert.NoError(t, err)
		if assert.Len(t, rec.calls, 1) {
			call := rec.calls[0]
			assert.Equal(t, entity.ActionDelete, call.action)
			assert.Equal(t, "Casio", call.product.Brand)
			assert.Equal(t, "A158WA-1", call.product.SKU)
			assert.Nil(t, call.changes)
		}
	})

	t.Run("missing product returns not found without audit", func(t *testing.T) {
		repo := new(mockProductRepository)
		rec := &stubRecorder{}
		uc := newProductUseCase(repo, rec)

		repo.On("GetByID", mock.Anything, "ghost").Return(nil, apperror.NotFound("product", "ghost"))

		err := uc.Delete(context.Background(), "ghost", testActor)

		assert.True(t, apperror.Is(err, apperror.CodeNotFound))
		assert.Empty(t, rec.calls)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
