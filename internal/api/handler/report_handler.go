package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vendops/inventory-admin/internal/api/metrics"
	"github.com/vendops/inventory-admin/internal/api/view"
	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

// ReportHandler serves daily records and report exports.
type ReportHandler struct {
	reports ports.ReportService
	today   func() string
}

func NewReportHandler(reports ports.ReportService, today func() string) *ReportHandler {
	return &ReportHandler{reports: reports, today: today}
}

// SaveReport snapshots today's totals and resets the fleet.
//
// @Summary      Save today's report
// @Description  Aggregates the selected machines into today's record (replacing an earlier one) and resets the fleet.
// @Tags         records
// @Produce      json
// @Success      200  {object}  saveReportResponse
// @Failure      401  {object}  successResponse
// @Failure      500  {object}  successResponse
// @Router       /save-report [post]
func (h *ReportHandler) SaveReport(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.ReportSaveDuration)
	rec, err := h.reports.SaveReport(c.Request().Context())
	timer.ObserveDuration()
	if err != nil {
		return err
	}

	metrics.ReportsSavedTotal.WithLabelValues("manual").Inc()
	return c.JSON(http.StatusOK, saveReportResponse{Success: true, Record: rec})
}

func (h *ReportHandler) ListRecords(c echo.Context) error {
	records, err := h.reports.ListRecords(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.PageRecords, view.RecordsPage{
		Admin:   adminName(c),
		Records: records,
		Today:   h.today(),
	})
}

func (h *ReportHandler) ShowRecord(c echo.Context) error {
	rec, err := h.reports.GetRecord(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrRecordNotFound) {
		return c.Redirect(http.StatusSeeOther, "/records")
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.PageRecord, view.RecordPage{
		Admin:  adminName(c),
		Record: *rec,
		Names:  rec.Totals.Names(),
	})
}

// DeleteRecord removes one daily record.
//
// @Summary      Delete a record
// @Tags         records
// @Produce      json
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  successResponse
// @Failure      404  {object}  successResponse
// @Failure      500  {object}  successResponse
// @Router       /record/{id} [delete]
func (h *ReportHandler) DeleteRecord(c echo.Context) error {
	err := h.reports.DeleteRecord(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, successResponse{Error: "record not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// GenerateReport streams a text or PDF report for one date, or for every
// date when allDates is "on".
func (h *ReportHandler) GenerateReport(c echo.Context) error {
	var form generateReportForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	in := ports.ExportInput{
		Format: domain.ReportFormat(strings.ToLower(strings.TrimSpace(form.Type))),
		Mode:   domain.SelectSingle,
		Date:   strings.TrimSpace(form.Date),
	}
	if form.AllDates == "on" {
		in.Mode = domain.SelectAll
	}

	res, err := h.reports.Export(c.Request().Context(), in)
	switch {
	case errors.Is(err, domain.ErrInvalidReportFormat):
		return echo.NewHTTPError(http.StatusBadRequest, "report type must be txt or pdf")
	case errors.Is(err, domain.ErrInvalidSelection):
		return echo.NewHTTPError(http.StatusBadRequest, "choose a date (YYYY-MM-DD) or all dates")
	case errors.Is(err, domain.ErrNoRecords):
		return echo.NewHTTPError(http.StatusNotFound, "no records for the selected dates")
	case err != nil:
		return err
	}

	// Render before committing headers so a failed document still reaches
	// the error handler.
	var buf bytes.Buffer
	if err := res.Write(&buf); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	metrics.ExportsTotal.WithLabelValues(string(in.Format), string(in.Mode)).Inc()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.Filename))
	return c.Blob(http.StatusOK, res.ContentType, buf.Bytes())
}
