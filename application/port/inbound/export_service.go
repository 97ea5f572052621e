package inbound

import (
	"context"
	"io"

	"github.com/horolog/horolog/application/query"
)

// ExportService streams row-oriented exports of the product set.
type ExportService interface {
	// StreamCSV writes a header row followed by one row per matching
	// product, flushing incrementally so output never accumulates in
	// memory. Once anything has been written, an error means the stream is
	// truncated; it cannot be converted into an error response.
	StreamCSV(ctx context.Context, f query.ProductFilter, w io.Writer) error
}
