// This file implements the asset registry endpoints: CRUD plus the QR scan
// path that looks an asset up by serial number.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ignisguard/server/internal/auth"
	"github.com/ignisguard/server/internal/domain"
	"github.com/ignisguard/server/internal/service"
)

// AssetHandler handles asset registry requests.
type AssetHandler struct {
	assets      service.AssetService
	inspections service.InspectionService
	logger      *slog.Logger
}

// NewAssetHandler creates a new asset handler.
func NewAssetHandler(assets service.AssetService, inspections service.InspectionService, logger *slog.Logger) *AssetHandler {
	return &AssetHandler{assets: assets, inspections: inspections, logger: logger}
}

type createAssetRequest struct {
	Name             string            `json:"name"`
	Type             string            `json:"type"`
	SerialNumber     string            `json:"serial_number"`
	Location         string            `json:"location"`
	Make             string            `json:"make"`
	MfgYear          int               `json:"mfg_year"`
	Capacity         float64           `json:"capacity"`
	Unit             string            `json:"unit"`
	InstallationDate string            `json:"installation_date"`
	Specifications   map[string]string `json:"specifications"`
}

// Create handles POST /api/assets.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAssetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	installed, err := parseDate(req.InstallationDate)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("asset.create", "installation_date must be YYYY-MM-DD"))
		return
	}

	params := domain.CreateAssetParams{
		Name:             req.Name,
		Type:             req.Type,
		SerialNumber:     req.SerialNumber,
		Location:         req.Location,
		Make:             req.Make,
		MfgYear:          req.MfgYear,
		Capacity:         req.Capacity,
		Unit:             req.Unit,
		InstallationDate: installed,
		Specifications:   req.Specifications,
	}
	if p, ok := auth.GetPrincipal(r.Context()); ok {
		id := p.ID
		params.CreatedBy = &id
	}

	asset, err := h.assets.Create(r.Context(), params)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, toAssetResponse(asset))
}

// List handles GET /api/assets. Admins see the fleet; inspectors see only
// assets they have inspected.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.GetPrincipal(r.Context())

	assets, err := h.assets.List(r.Context(), p)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"assets": toAssetResponses(assets),
	})
}

// Get handles GET /api/assets/{id}.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	asset, err := h.assets.GetByID(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toAssetResponse(asset))
}

// GetBySerial handles GET /api/assets/serial/{serial}, the QR scan path.
// The response includes the asset's latest inspection and its inspection
// checklist so the scan screen can render the form without further round
// trips.
func (h *AssetHandler) GetBySerial(w http.ResponseWriter, r *http.Request) {
	serial := r.PathValue("serial")

	asset, err := h.assets.GetBySerial(r.Context(), serial)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	resp := map[string]interface{}{
		"asset":     toAssetResponse(asset),
		"checklist": domain.ChecklistFor(asset),
	}

	if latest, err := h.inspections.LatestForAsset(r.Context(), asset.ID); err == nil && latest != nil {
		insp := toInspectionResponse(latest)
		resp["latest_inspection"] = insp
	}

	respondJSON(w, http.StatusOK, resp)
}

type updateAssetRequest struct {
	Name             string            `json:"name"`
	Location         string            `json:"location"`
	Make             string            `json:"make"`
	MfgYear          int               `json:"mfg_year"`
	Capacity         float64           `json:"capacity"`
	Unit             string            `json:"unit"`
	InstallationDate string            `json:"installation_date"`
	Specifications   map[string]string `json:"specifications"`
}

// Update handles PUT /api/assets/{id}.
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var req updateAssetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	installed, err := parseDate(req.InstallationDate)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("asset.update", "installation_date must be YYYY-MM-DD"))
		return
	}

	asset, err := h.assets.Update(r.Context(), domain.UpdateAssetParams{
		ID:               id,
		Name:             req.Name,
		Location:         req.Location,
		Make:             req.Make,
		MfgYear:          req.MfgYear,
		Capacity:         req.Capacity,
		Unit:             req.Unit,
		InstallationDate: installed,
		Specifications:   req.Specifications,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toAssetResponse(asset))
}

// Delete handles DELETE /api/assets/{id}.
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if err := h.assets.Delete(r.Context(), id); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathUUID parses a UUID path segment.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.Invalid("", name+" must be a valid UUID")
	}
	return id, nil
}
