package usecase

import (
	"context"
	"math"

	"github.com/horolog/horolog/application/port/inbound"
	"github.com/horolog/horolog/application/port/outbound"
)

// StatsUseCase computes the dashboard summary from a single aggregate pass.
type StatsUseCase struct {
	products outbound.ProductRepository
}

func NewStatsUseCase(products outbound.ProductRepository) *StatsUseCase {
	return &StatsUseCase{products: products}
}

func (uc *StatsUseCase) Dashboard(ctx context.Context) (*inbound.Stats, error) {
	agg, err := uc.products.AggregateStats(ctx)
	if err != nil {
		return nil, err
	}

	// Store valuation: total units in stock times the sum of prices over
	// in-stock products. Out-of-stock items contribute units of zero and no
	// price, so they drop out of both factors.
	value := float64(agg.TotalStock) * agg.SumPricesWithStock

	return &inbound.Stats{
		TotalProducts:   agg.TotalProducts,
		TotalStock:      agg.TotalStock,
		TotalStoreValue: math.Round(value*100) / 100,
		OutOfStockCount: agg.OutOfStockCount,
	}, nil
}
