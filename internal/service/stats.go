// This file implements the statistics service: loading the scoped rows and
// handing them to the pure aggregators in the domain package.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ignisguard/server/internal/domain"
)

// StatsStore is the persistence contract the statistics service depends on.
type StatsStore interface {
	FindInspectionsByInspector(ctx context.Context, inspectorID uuid.UUID) ([]domain.Inspection, error)
	FindAssetTypes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	ListAssets(ctx context.Context, inspectorID *uuid.UUID) ([]domain.Asset, error)
}

// StatsService defines aggregation operations.
type StatsService interface {
	// ForInspector summarizes one inspector's own inspection history.
	ForInspector(ctx context.Context, inspectorID uuid.UUID) (domain.AggregateResult, error)

	// ForFleet summarizes the whole fleet by current asset status.
	ForFleet(ctx context.Context) (domain.AggregateResult, error)
}

type statsService struct {
	store  StatsStore
	logger *slog.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(store StatsStore, logger *slog.Logger) StatsService {
	return &statsService{store: store, logger: logger}
}

// ForInspector summarizes one inspector's own inspection history.
func (s *statsService) ForInspector(ctx context.Context, inspectorID uuid.UUID) (domain.AggregateResult, error) {
	const op = "stats.for_inspector"

	inspections, err := s.store.FindInspectionsByInspector(ctx, inspectorID)
	if err != nil {
		return domain.AggregateResult{}, domain.Internal(err, op, "failed to load inspections")
	}

	// One batched type lookup instead of a query per row.
	seen := make(map[uuid.UUID]struct{}, len(inspections))
	ids := make([]uuid.UUID, 0, len(inspections))
	for _, insp := range inspections {
		if _, ok := seen[insp.AssetID]; ok {
			continue
		}
		seen[insp.AssetID] = struct{}{}
		ids = append(ids, insp.AssetID)
	}

	types := map[uuid.UUID]string{}
	if len(ids) > 0 {
		types, err = s.store.FindAssetTypes(ctx, ids)
		if err != nil {
			return domain.AggregateResult{}, domain.Internal(err, op, "failed to resolve asset types")
		}
	}

	return domain.AggregateInspections(inspections, types), nil
}

// ForFleet summarizes the whole fleet by current asset status.
func (s *statsService) ForFleet(ctx context.Context) (domain.AggregateResult, error) {
	const op = "stats.for_fleet"

	assets, err := s.store.ListAssets(ctx, nil)
	if err != nil {
		return domain.AggregateResult{}, domain.Internal(err, op, "failed to list assets")
	}

	return domain.AggregateAssets(assets), nil
}
