// This file implements the compliance report endpoints. The JSON form
// returns the built register sections for on-screen display; the CSV and
// PDF forms stream rendered downloads.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ignisguard/server/internal/metrics"
	"github.com/ignisguard/server/internal/report"
	"github.com/ignisguard/server/internal/service"
)

// ReportHandler handles compliance report requests.
type ReportHandler struct {
	reports service.ReportService
	csv     *report.CSVRenderer
	pdf     *report.PDFRenderer
	logger  *slog.Logger
}

// NewReportHandler creates a new report handler. photos supplies evidence
// thumbnails for PDF rendering.
func NewReportHandler(reports service.ReportService, photos report.PhotoFetcher, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		csv:     report.NewCSVRenderer(),
		pdf:     report.NewPDFRenderer(photos),
		logger:  logger,
	}
}

// Compliance handles GET /api/reports/compliance, returning the register
// sections as JSON. The optional type query parameter restricts the report
// to one equipment category; synonyms are normalized.
func (h *ReportHandler) Compliance(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Compliance(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.ReportsGenerated.WithLabelValues("json").Inc()
	respondJSON(w, http.StatusOK, rep)
}

// ComplianceCSV handles GET /api/reports/compliance.csv.
func (h *ReportHandler) ComplianceCSV(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, h.csv)
}

// CompliancePDF handles GET /api/reports/compliance.pdf.
func (h *ReportHandler) CompliancePDF(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, h.pdf)
}

// download builds the report and streams it through the given renderer.
func (h *ReportHandler) download(w http.ResponseWriter, r *http.Request, renderer report.Renderer) {
	rep, err := h.reports.Compliance(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	format := renderer.Format()
	filename := fmt.Sprintf("compliance-report-%s.%s", rep.GeneratedAt.Format("2006-01-02"), format)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	start := time.Now()
	written, err := renderer.Render(r.Context(), rep, w)
	if err != nil {
		// Headers are already sent; log and abort the stream.
		h.logger.Error("report render failed", "format", format, "error", err)
		return
	}

	metrics.ReportsGenerated.WithLabelValues(string(format)).Inc()
	h.logger.Info("report generated",
		"format", format,
		"sections", len(rep.Sections),
		"bytes", written,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
