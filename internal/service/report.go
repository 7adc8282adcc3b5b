// This file implements the compliance report service: loading the fleet
// with per-asset inspection histories and handing it to the report builder.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ignisguard/server/internal/domain"
	"github.com/ignisguard/server/internal/report"
)

// ReportStore is the persistence contract the report service depends on.
type ReportStore interface {
	ListAssets(ctx context.Context, inspectorID *uuid.UUID) ([]domain.Asset, error)
	FindAllInspections(ctx context.Context) ([]domain.Inspection, error)
}

// ReportService builds compliance report data.
type ReportService interface {
	// Compliance builds the register, optionally restricted to one
	// normalized asset type.
	Compliance(ctx context.Context, typeFilter string) (report.Report, error)
}

type reportService struct {
	store  ReportStore
	logger *slog.Logger
	now    func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(store ReportStore, logger *slog.Logger) ReportService {
	return &reportService{store: store, logger: logger, now: time.Now}
}

// Compliance builds the register.
func (s *reportService) Compliance(ctx context.Context, typeFilter string) (report.Report, error) {
	const op = "report.compliance"

	assets, err := s.store.ListAssets(ctx, nil)
	if err != nil {
		return report.Report{}, domain.Internal(err, op, "failed to list assets")
	}

	// One history query for the whole fleet, grouped in memory. Rows come
	// back newest-first and grouping preserves that order per asset.
	inspections, err := s.store.FindAllInspections(ctx)
	if err != nil {
		return report.Report{}, domain.Internal(err, op, "failed to load inspection history")
	}
	byAsset := make(map[uuid.UUID][]domain.Inspection)
	for _, insp := range inspections {
		byAsset[insp.AssetID] = append(byAsset[insp.AssetID], insp)
	}

	withHistory := make([]report.AssetWithHistory, 0, len(assets))
	for _, a := range assets {
		withHistory = append(withHistory, report.AssetWithHistory{
			Asset:       a,
			Inspections: byAsset[a.ID],
		})
	}

	filter := domain.NormalizeCategory(typeFilter)
	rep := report.Build(withHistory, filter, s.now())

	s.logger.Info("compliance report built",
		"sections", len(rep.Sections),
		"assets", len(assets),
		"filter", filter,
	)
	return rep, nil
}
