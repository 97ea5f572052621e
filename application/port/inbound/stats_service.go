package inbound

import "context"

// Stats is the dashboard summary. TotalStoreValue is the total stock
// multiplied by the sum of prices over in-stock products, rounded to two
// decimals.
type Stats struct {
	TotalProducts   int64   `json:"totalProducts"`
	TotalStock      int64   `json:"totalStock"`
	TotalStoreValue float64 `json:"totalStoreValue"`
	OutOfStockCount int64   `json:"outOfStockCount"`
}

type StatsService interface {
	Dashboard(ctx context.Context) (*Stats, error)
}
