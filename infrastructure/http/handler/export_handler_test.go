package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/infrastructure/service/logger"
)

type fakeExportService struct {
	payload string
	err     error
	gotF    query.ProductFilter
}

func (f *fakeExportService) StreamCSV(ctx context.Context, filter query.ProductFilter, w io.Writer) error {
	f.gotF = filter
	if _, err := io.WriteString(w, f.payload); err != nil {
		return err
	}
	return f.err
}

func TestExportHandler_CSV(t *testing.T) {
	t.Run("sets attachment headers and streams body", func(t *testing.T) {
		svc := &fakeExportService{payload: "Brand,SKU\nSeiko,SRPD55K1\n"}
		h := NewExportHandler(svc, logger.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/export/csv?search=diver", nil)
		rec := httptest.NewRecorder()
		h.CSV(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		disposition := rec.Header().Get("Content-Disposition")
		assert.True(t, strings.HasPrefix(disposition, `attachment; filename="inventory-export-`))
		assert.True(t, strings.HasSuffix(disposition, `.csv"`))
		assert.Equal(t, svc.payload, rec.Body.String())
		assert.Equal(t, query.ProductFilter{Search: "diver"}, svc.gotF)
	})

	t.Run("malformed query is rejected before streaming", func(t *testing.T) {
		svc := &fakeExportService{payload: "should not appear"}
		h := NewExportHandler(svc, logger.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/export/csv?limit=abc", nil)
		rec := httptest.NewRecorder()
		h.CSV(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
	})

	t.Run("mid-stream failure aborts the connection", func(t *testing.T) {
		svc := &fakeExportService{payload: "Brand,SKU\n", err: io.ErrUnexpectedEOF}
		h := NewExportHandler(svc, logger.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/export/csv", nil)
		rec := httptest.NewRecorder()

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.CSV(rec, req)
		})
	})
}
