package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jlozanoc/go-juzgado-backend/internal/http/middleware"
	"github.com/jlozanoc/go-juzgado-backend/internal/report"
	"github.com/jlozanoc/go-juzgado-backend/internal/services"
)

// StatisticsService defines the reporting operations consumed by HTTP
// handlers.
type StatisticsService interface {
	// Compute builds the full statistics report for an optional date window.
	Compute(ctx context.Context, startDate, endDate *time.Time) (*services.Report, error)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// parseDateQuery accepts RFC 3339 timestamps or plain dates ("2006-01-02").
// A missing or blank parameter yields nil, meaning an open bound.
func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return &t, nil
}

// GetStatistics handles GET /statistics?startDate=&endDate=.
func (h *Handlers) GetStatistics(c *gin.Context) {
	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	rep, err := h.statsSvc.Compute(c.Request.Context(), start, end)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, rep)
}

// DownloadStatisticsReport handles GET /statistics/report. It renders the
// same report as GetStatistics into an Excel workbook and serves it as an
// attachment.
func (h *Handlers) DownloadStatisticsReport(c *gin.Context) {
	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	rep, err := h.statsSvc.Compute(c.Request.Context(), start, end)
	if err != nil {
		failService(c, err)
		return
	}

	buf, err := report.GenerateStatisticsExcel(rep, start, end)
	if err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("excel generation failed")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not generate report")
		return
	}

	filename := fmt.Sprintf("estadisticas_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf)
}
