// This file implements the asset registry: registration, lookup and admin
// edits of fire-safety equipment.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ignisguard/server/internal/domain"
	"github.com/ignisguard/server/internal/metrics"
	"github.com/ignisguard/server/internal/repository"
)

// AssetStore is the persistence contract the registry depends on.
type AssetStore interface {
	CreateAsset(ctx context.Context, a *domain.Asset) error
	FindAssetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error)
	FindAssetBySerial(ctx context.Context, serial string) (*domain.Asset, error)
	ListAssets(ctx context.Context, inspectorID *uuid.UUID) ([]domain.Asset, error)
	UpdateAssetStatic(ctx context.Context, p domain.UpdateAssetParams) error
	SoftDeleteAsset(ctx context.Context, id uuid.UUID) error
}

// AssetService defines asset registry operations.
type AssetService interface {
	// Create registers a new asset. Returns domain.ECONFLICT when the serial
	// number is already taken.
	Create(ctx context.Context, params domain.CreateAssetParams) (*domain.Asset, error)

	// GetByID retrieves an asset.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error)

	// GetBySerial retrieves an asset by serial number (the QR scan path).
	GetBySerial(ctx context.Context, serial string) (*domain.Asset, error)

	// List returns assets visible to the principal: the full fleet for
	// admins, only inspected assets for inspectors.
	List(ctx context.Context, p domain.Principal) ([]domain.Asset, error)

	// Update applies admin edits to static fields. The derived status and
	// inspection dates are owned by the recorder and cannot be set here.
	Update(ctx context.Context, params domain.UpdateAssetParams) (*domain.Asset, error)

	// Delete soft-deletes an asset; it disappears from all queries.
	Delete(ctx context.Context, id uuid.UUID) error
}

type assetService struct {
	store   AssetStore
	baseURL string
	logger  *slog.Logger
}

// NewAssetService creates a new AssetService. baseURL is encoded into each
// asset's QR scan URL.
func NewAssetService(store AssetStore, baseURL string, logger *slog.Logger) AssetService {
	return &assetService{
		store:   store,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Create registers a new asset.
func (s *assetService) Create(ctx context.Context, params domain.CreateAssetParams) (*domain.Asset, error) {
	const op = "asset.create"

	serial := strings.TrimSpace(params.SerialNumber)
	if serial == "" {
		return nil, domain.Invalid(op, "serial_number is required")
	}
	if strings.TrimSpace(params.Type) == "" {
		return nil, domain.Invalid(op, "type is required")
	}
	if strings.TrimSpace(params.Location) == "" {
		return nil, domain.Invalid(op, "location is required")
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = domain.DefaultName(params.Type, serial)
	}
	unit := params.Unit
	if unit == "" {
		unit = "KG"
	}
	specs := params.Specifications
	if specs == nil {
		specs = map[string]string{}
	}

	asset := &domain.Asset{
		ID:               uuid.New(),
		Name:             name,
		Type:             params.Type,
		SerialNumber:     serial,
		Location:         params.Location,
		Make:             params.Make,
		MfgYear:          params.MfgYear,
		Capacity:         params.Capacity,
		Unit:             unit,
		InstallationDate: params.InstallationDate,
		Specifications:   specs,
		Status:           domain.AssetStatusPending,
		QRCodeURL:        domain.QRCodeURLFor(s.baseURL, serial),
		CreatedBy:        params.CreatedBy,
	}

	if err := s.store.CreateAsset(ctx, asset); err != nil {
		if errors.Is(err, repository.ErrDuplicateSerial) {
			return nil, domain.Errorf(domain.ECONFLICT, op, "an asset with serial number %q already exists", serial)
		}
		return nil, domain.Internal(err, op, "failed to register asset")
	}

	metrics.AssetsRegistered.Inc()
	s.logger.Info("asset registered", "asset", asset.ID, "serial", serial, "type", asset.Type)
	return asset, nil
}

// GetByID retrieves an asset.
func (s *assetService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	asset, err := s.store.FindAssetByID(ctx, id)
	if err != nil {
		return nil, mapAssetErr(err, "asset.get", id.String())
	}
	return asset, nil
}

// GetBySerial retrieves an asset by serial number.
func (s *assetService) GetBySerial(ctx context.Context, serial string) (*domain.Asset, error) {
	asset, err := s.store.FindAssetBySerial(ctx, serial)
	if err != nil {
		return nil, mapAssetErr(err, "asset.get_by_serial", serial)
	}
	return asset, nil
}

// List returns assets visible to the principal.
func (s *assetService) List(ctx context.Context, p domain.Principal) ([]domain.Asset, error) {
	const op = "asset.list"

	var scope *uuid.UUID
	if !p.IsAdmin() {
		id := p.ID
		scope = &id
	}

	assets, err := s.store.ListAssets(ctx, scope)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list assets")
	}
	return assets, nil
}

// Update applies admin edits to static fields.
func (s *assetService) Update(ctx context.Context, params domain.UpdateAssetParams) (*domain.Asset, error) {
	const op = "asset.update"

	if err := s.store.UpdateAssetStatic(ctx, params); err != nil {
		return nil, mapAssetErr(err, op, params.ID.String())
	}

	asset, err := s.store.FindAssetByID(ctx, params.ID)
	if err != nil {
		return nil, mapAssetErr(err, op, params.ID.String())
	}

	s.logger.Info("asset updated", "asset", asset.ID, "serial", asset.SerialNumber)
	return asset, nil
}

// Delete soft-deletes an asset.
func (s *assetService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "asset.delete"

	if err := s.store.SoftDeleteAsset(ctx, id); err != nil {
		return mapAssetErr(err, op, id.String())
	}

	s.logger.Info("asset deleted", "asset", id)
	return nil
}
