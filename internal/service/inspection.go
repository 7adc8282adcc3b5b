// Package service contains the business logic layer.
//
// This file implements the inspection recorder and the re-inspection lock
// queries: validating submissions, deriving asset status from inspection
// outcomes, and applying the paired inspection+asset write atomically.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ignisguard/server/internal/domain"
	"github.com/ignisguard/server/internal/metrics"
	"github.com/ignisguard/server/internal/repository"
)

// =============================================================================
// Store Contract
// =============================================================================

// InspectionStore is the persistence contract the recorder depends on.
// *repository.Repository satisfies it; tests substitute fakes.
type InspectionStore interface {
	FindAssetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error)
	FindAssetBySerial(ctx context.Context, serial string) (*domain.Asset, error)
	FindLatestInspectionForAsset(ctx context.Context, assetID uuid.UUID) (*domain.Inspection, error)
	FindInspectionByID(ctx context.Context, id uuid.UUID) (*domain.Inspection, error)
	FindInspectionsForAsset(ctx context.Context, assetID uuid.UUID, inspectorID *uuid.UUID) ([]domain.Inspection, error)

	// The paired writes below are atomic: either both the inspection and the
	// asset update persist, or neither does.
	CreateInspectionWithAssetUpdate(ctx context.Context, insp *domain.Inspection, update domain.AssetStatusUpdate) error
	UpdateInspectionWithAssetUpdate(ctx context.Context, insp *domain.Inspection, update domain.AssetStatusUpdate) error
}

// =============================================================================
// Interface Definition
// =============================================================================

// InspectionService defines inspection-related operations.
type InspectionService interface {
	// LockStatus evaluates the re-inspection lock for the asset with the
	// given serial number, as seen by the requesting principal.
	// Returns domain.ENOTFOUND if the asset does not exist.
	LockStatus(ctx context.Context, serial string, p domain.Principal) (domain.LockDecision, error)

	// Record validates and persists a new inspection, updating the owning
	// asset's derived status and maintenance dates as a side effect.
	// Returns domain.EINVALID for validation errors, domain.ENOTFOUND for a
	// missing asset, and a *domain.LockedError when the asset is inside its
	// lock window for this principal.
	Record(ctx context.Context, params domain.RecordInspectionParams) (*domain.Inspection, error)

	// Revise corrects an existing inspection in place. It does not re-run
	// the lock check; callers are expected to have authorized the edit
	// (admin-only at the routing layer). The original inspection date is
	// preserved unless explicitly supplied.
	Revise(ctx context.Context, params domain.ReviseInspectionParams) (*domain.Inspection, error)

	// GetByID retrieves one inspection.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Inspection, error)

	// HistoryForAsset returns an asset's inspection history newest-first.
	// Inspectors see only their own inspections; admins see everything.
	HistoryForAsset(ctx context.Context, assetID uuid.UUID, p domain.Principal) ([]domain.Inspection, error)

	// LatestForAsset returns the asset's most recent inspection regardless
	// of who performed it, or nil when none exists. The QR scan screen uses
	// this to show who last inspected and when.
	LatestForAsset(ctx context.Context, assetID uuid.UUID) (*domain.Inspection, error)
}

// =============================================================================
// Implementation
// =============================================================================

type inspectionService struct {
	store  InspectionStore
	logger *slog.Logger
	now    func() time.Time
}

// NewInspectionService creates a new InspectionService.
func NewInspectionService(store InspectionStore, logger *slog.Logger) InspectionService {
	return &inspectionService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// LockStatus evaluates the lock without side effects; safe to call
// repeatedly.
func (s *inspectionService) LockStatus(ctx context.Context, serial string, p domain.Principal) (domain.LockDecision, error) {
	const op = "inspection.lock_status"

	asset, err := s.store.FindAssetBySerial(ctx, serial)
	if err != nil {
		return domain.LockDecision{}, mapAssetErr(err, op, serial)
	}

	last, err := s.store.FindLatestInspectionForAsset(ctx, asset.ID)
	if err != nil {
		return domain.LockDecision{}, domain.Internal(err, op, "failed to load inspection history")
	}

	return domain.EvaluateLock(asset, last, p, s.now()), nil
}

// Record validates and persists a new inspection.
func (s *inspectionService) Record(ctx context.Context, params domain.RecordInspectionParams) (*domain.Inspection, error) {
	const op = "inspection.record"

	if err := validateSubmission(op, params.Status, params.EvidencePhotos); err != nil {
		return nil, err
	}

	asset, err := s.store.FindAssetByID(ctx, params.AssetID)
	if err != nil {
		return nil, mapAssetErr(err, op, params.AssetID.String())
	}

	last, err := s.store.FindLatestInspectionForAsset(ctx, asset.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load inspection history")
	}

	now := s.now()
	decision := domain.EvaluateLock(asset, last, params.Inspector, now)
	if decision.Locked {
		metrics.LockDenials.Inc()
		s.logger.Info("inspection denied by lock",
			"asset", asset.SerialNumber,
			"inspector", params.Inspector.ID,
			"remaining_hours", decision.RemainingHours,
		)
		return nil, domain.LockedErrorFor(decision)
	}
	if decision.AdminOverride {
		metrics.AdminOverrides.Inc()
		s.logger.Info("admin lock override",
			"asset", asset.SerialNumber,
			"admin", params.Inspector.ID,
		)
	}

	nextDue := now.AddDate(0, 1, 0) // flat one-month cadence for all types
	insp := &domain.Inspection{
		ID:             uuid.New(),
		AssetID:        asset.ID,
		InspectorID:    params.Inspector.ID,
		InspectionDate: now,
		Status:         params.Status,
		Findings:       params.Findings,
		EvidencePhotos: params.EvidencePhotos,
		InspectorName:  params.Inspector.Name,
		AssetSerial:    asset.SerialNumber,
	}
	update := domain.AssetStatusUpdate{
		AssetID:            asset.ID,
		Status:             domain.StatusForOutcome(params.Status),
		LastInspectionDate: &now,
		NextInspectionDue:  &nextDue,
		Maintenance:        params.Maintenance,
	}

	if err := s.store.CreateInspectionWithAssetUpdate(ctx, insp, update); err != nil {
		return nil, domain.Internal(err, op, "failed to record inspection")
	}

	metrics.InspectionsRecorded.WithLabelValues(string(params.Status)).Inc()
	s.logger.Info("inspection recorded",
		"inspection", insp.ID,
		"asset", asset.SerialNumber,
		"status", insp.Status,
	)
	return insp, nil
}

// Revise corrects an existing inspection in place.
func (s *inspectionService) Revise(ctx context.Context, params domain.ReviseInspectionParams) (*domain.Inspection, error) {
	const op = "inspection.revise"

	if err := validateSubmission(op, params.Status, params.EvidencePhotos); err != nil {
		return nil, err
	}

	insp, err := s.store.FindInspectionByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, repository.ErrInspectionNotFound) {
			return nil, domain.NotFound(op, "inspection", params.ID.String())
		}
		return nil, domain.Internal(err, op, "failed to load inspection")
	}

	insp.Status = params.Status
	insp.Findings = params.Findings
	insp.EvidencePhotos = params.EvidencePhotos
	if params.InspectionDate != nil {
		insp.InspectionDate = *params.InspectionDate
	}

	// Corrections re-derive the asset status but never bump the last or next
	// inspection dates; the lock window stays anchored to the original event.
	update := domain.AssetStatusUpdate{
		AssetID:     insp.AssetID,
		Status:      domain.StatusForOutcome(params.Status),
		Maintenance: params.Maintenance,
	}

	if err := s.store.UpdateInspectionWithAssetUpdate(ctx, insp, update); err != nil {
		return nil, domain.Internal(err, op, "failed to revise inspection")
	}

	s.logger.Info("inspection revised", "inspection", insp.ID, "status", insp.Status)
	return insp, nil
}

// GetByID retrieves one inspection.
func (s *inspectionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inspection, error) {
	const op = "inspection.get"

	insp, err := s.store.FindInspectionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInspectionNotFound) {
			return nil, domain.NotFound(op, "inspection", id.String())
		}
		return nil, domain.Internal(err, op, "failed to load inspection")
	}
	return insp, nil
}

// HistoryForAsset returns an asset's inspection history newest-first.
func (s *inspectionService) HistoryForAsset(ctx context.Context, assetID uuid.UUID, p domain.Principal) ([]domain.Inspection, error) {
	const op = "inspection.history"

	if _, err := s.store.FindAssetByID(ctx, assetID); err != nil {
		return nil, mapAssetErr(err, op, assetID.String())
	}

	var scope *uuid.UUID
	if !p.IsAdmin() {
		id := p.ID
		scope = &id
	}

	history, err := s.store.FindInspectionsForAsset(ctx, assetID, scope)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load inspection history")
	}
	return history, nil
}

// LatestForAsset returns the newest inspection for the asset, nil when the
// asset has never been inspected.
func (s *inspectionService) LatestForAsset(ctx context.Context, assetID uuid.UUID) (*domain.Inspection, error) {
	const op = "inspection.latest"

	latest, err := s.store.FindLatestInspectionForAsset(ctx, assetID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load inspection history")
	}
	return latest, nil
}

// =============================================================================
// Helpers
// =============================================================================

func validateSubmission(op string, status domain.InspectionStatus, photos []string) error {
	if !status.IsValid() {
		return domain.Invalid(op, "status must be one of Pass, Fail or Maintenance")
	}
	if len(photos) > domain.MaxEvidencePhotos {
		return domain.Invalid(op, "at most 6 evidence photos are allowed")
	}
	for _, key := range photos {
		if key == "" {
			return domain.Invalid(op, "evidence photo references must be non-empty")
		}
	}
	return nil
}

func mapAssetErr(err error, op, ref string) error {
	if errors.Is(err, repository.ErrAssetNotFound) {
		return domain.NotFound(op, "asset", ref)
	}
	return domain.Internal(err, op, "failed to load asset")
}
