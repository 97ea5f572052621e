package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/entity"
	"github.com/horolog/horolog/infrastructure/service/logger"
	"github.com/horolog/horolog/metrics"
)

// flushEvery bounds how much CSV output can sit in buffers before it is
// committed to the transport.
const flushEvery = 100

var exportHeader = []string{"Brand", "SKU", "Category", "Inventory", "Price", "Total Value", "Description"}

// Flusher is implemented by writers that can push buffered output to the
// client, e.g. an http.ResponseWriter.
type Flusher interface {
	Flush()
}

// ExportUseCase streams the matching product set as CSV, one row at a time
// over a store cursor. The result is deterministic for a given filter and an
// unchanged store.
type ExportUseCase struct {
	products outbound.ProductRepository
	log      logger.Logger
}

func NewExportUseCase(products outbound.ProductRepository, log logger.Logger) *ExportUseCase {
	return &ExportUseCase{products: products, log: log}
}

// Filename builds the attachment name for an export started now.
func Filename(now time.Time) string {
	return fmt.Sprintf("inventory-export-%d.csv", now.UnixMilli())
}

func (uc *ExportUseCase) StreamCSV(ctx context.Context, f query.ProductFilter, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	rows := 0
	err := uc.products.Iterate(ctx, f, func(p *entity.Product) error {
		totalValue := float64(p.Inventory) * p.Price
		record := []string{
			p.Brand,
			p.SKU,
			p.Category,
			strconv.Itoa(p.Inventory),
			formatAmount(p.Price),
			formatAmount(totalValue),
			p.Description,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
		rows++
		if rows%flushEvery == 0 {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if fl, ok := w.(Flusher); ok {
				fl.Flush()
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	metrics.ExportRows(rows)
	uc.log.Info(ctx, "export completed", map[string]interface{}{"rows": rows})
	return nil
}

// formatAmount prints monetary values without a fixed scale, matching how
// they round-trip through JSON.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
