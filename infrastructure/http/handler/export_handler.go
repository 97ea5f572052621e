package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/horolog/horolog/application/port/inbound"
	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/application/usecase"
	"github.com/horolog/horolog/infrastructure/http/response"
	"github.com/horolog/horolog/infrastructure/service/logger"
)

type ExportHandler struct {
	export inbound.ExportService
	log    logger.Logger
}

func NewExportHandler(export inbound.ExportService, log logger.Logger) *ExportHandler {
	return &ExportHandler{export: export, log: log}
}

// CSV streams the filtered product set as a CSV attachment. Query validation
// happens before the first byte is written; after that an error can only
// truncate the stream, so the connection is aborted instead of answering
// with a misleading status.
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	f := query.BuildProductFilter(params)
	// Sort and page parameters are not used by the exporter but malformed
	// ones are still rejected up front.
	if _, err := query.BuildPage(params, query.DefaultProductLimit); err != nil {
		response.FromError(w, err)
		return
	}

	filename := usecase.Filename(time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.export.StreamCSV(r.Context(), f, w); err != nil {
		h.log.Error(r.Context(), "csv export aborted mid-stream", err, map[string]interface{}{
			"filename": filename,
		})
		panic(http.ErrAbortHandler)
	}
}
