package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/domain/apperror"
)

func TestStatsUseCase_Dashboard(t *testing.T) {
	t.Run("computes compound store value", func(t *testing.T) {
		// Three products: 5 in stock at 100, 2 in stock at 50, one out of
		// stock. Stock total 7, price sum over in-stock 150, value 1050.
		repo := new(mockProductRepository)
		repo.On("AggregateStats", mock.Anything).Return(&outbound.StatsAggregate{
			TotalProducts:      3,
			TotalStock:         7,
			OutOfStockCount:    1,
			SumPricesWithStock: 150,
		}, nil)

		stats, err := NewStatsUseCase(repo).Dashboard(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalProducts)
		assert.Equal(t, int64(7), stats.TotalStock)
		assert.Equal(t, int64(1), stats.OutOfStockCount)
		assert.Equal(t, 1050.0, stats.TotalStoreValue)
	})

	t.Run("rounds value to two decimals", func(t *testing.T) {
		repo := new(mockProductRepository)
		repo.On("AggregateStats", mock.Anything).Return(&outbound.StatsAggregate{
			TotalProducts:      2,
			TotalStock:         3,
			SumPricesWithStock: 33.333,
		}, nil)

		stats, err := NewStatsUseCase(repo).Dashboard(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 100.0, stats.TotalStoreValue)
	})

	t.Run("empty store yields zeros", func(t *testing.T) {
		repo := new(mockProductRepository)
		repo.On("AggregateStats", mock.Anything).Return(&outbound.StatsAggregate{}, nil)

		stats, err := NewStatsUseCase(repo).Dashboard(context.Background())

		assert.NoError(t, err)
		assert.Zero(t, stats.TotalProducts)
		assert.Zero(t, stats.TotalStoreValue)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo := new(mockProductRepository)
		repo.On("AggregateStats", mock.Anything).Return(nil, apperror.StoreUnavailable("stats aggregate", assert.AnError))

		_, err := NewStatsUseCase(repo).Dashboard(context.Background())

		assert.True(t, apperror.Is(err, apperror.CodeStoreUnavailable))
	})
}
