// This file implements the inspection endpoints: recording, revising,
// history, and the re-inspection lock status used by the scan flow.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ignisguard/server/internal/auth"
	"github.com/ignisguard/server/internal/domain"
	"github.com/ignisguard/server/internal/service"
)

// InspectionHandler handles inspection requests.
type InspectionHandler struct {
	inspections service.InspectionService
	logger      *slog.Logger
}

// NewInspectionHandler creates a new inspection handler.
func NewInspectionHandler(inspections service.InspectionService, logger *slog.Logger) *InspectionHandler {
	return &InspectionHandler{inspections: inspections, logger: logger}
}

// maintenanceDatesRequest carries the optional service dates an inspection
// may record. Omitted fields leave the asset's stored dates unchanged.
type maintenanceDatesRequest struct {
	LastHydroTestDate string `json:"last_hydro_test_date"`
	NextHydroTestDue  string `json:"next_hydro_test_due"`
	LastRefilledDate  string `json:"last_refilled_date"`
	NextRefillDue     string `json:"next_refill_due"`
	DischargeDate     string `json:"discharge_date"`
}

func (m maintenanceDatesRequest) toDomain() (domain.MaintenanceDates, error) {
	var out domain.MaintenanceDates
	var err error

	if out.LastHydroTestDate, err = parseDate(m.LastHydroTestDate); err != nil {
		return out, err
	}
	if out.NextHydroTestDue, err = parseDate(m.NextHydroTestDue); err != nil {
		return out, err
	}
	if out.LastRefilledDate, err = parseDate(m.LastRefilledDate); err != nil {
		return out, err
	}
	if out.NextRefillDue, err = parseDate(m.NextRefillDue); err != nil {
		return out, err
	}
	if out.DischargeDate, err = parseDate(m.DischargeDate); err != nil {
		return out, err
	}
	return out, nil
}

type recordInspectionRequest struct {
	AssetID        string                  `json:"asset_id"`
	Status         string                  `json:"status"`
	Findings       domain.Findings         `json:"findings"`
	EvidencePhotos []string                `json:"evidence_photos"`
	Maintenance    maintenanceDatesRequest `json:"maintenance"`
}

// Record handles POST /api/inspections.
func (h *InspectionHandler) Record(w http.ResponseWriter, r *http.Request) {
	const op = "inspection.record"

	var req recordInspectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	assetID, err := parseUUIDField(req.AssetID, "asset_id", op)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	maintenance, err := req.Maintenance.toDomain()
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "maintenance dates must be YYYY-MM-DD"))
		return
	}

	p, _ := auth.GetPrincipal(r.Context())

	insp, err := h.inspections.Record(r.Context(), domain.RecordInspectionParams{
		AssetID:        assetID,
		Inspector:      p,
		Status:         domain.InspectionStatus(req.Status),
		Findings:       req.Findings,
		EvidencePhotos: req.EvidencePhotos,
		Maintenance:    maintenance,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, toInspectionResponse(insp))
}

type reviseInspectionRequest struct {
	Status         string                  `json:"status"`
	Findings       domain.Findings         `json:"findings"`
	EvidencePhotos []string                `json:"evidence_photos"`
	Maintenance    maintenanceDatesRequest `json:"maintenance"`
	InspectionDate string                  `json:"inspection_date"`
}

// Revise handles PUT /api/inspections/{id}. Admin only; routing enforces it.
func (h *InspectionHandler) Revise(w http.ResponseWriter, r *http.Request) {
	const op = "inspection.revise"

	id, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var req reviseInspectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	maintenance, err := req.Maintenance.toDomain()
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "maintenance dates must be YYYY-MM-DD"))
		return
	}

	inspectionDate, err := parseDate(req.InspectionDate)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "inspection_date must be YYYY-MM-DD"))
		return
	}

	insp, err := h.inspections.Revise(r.Context(), domain.ReviseInspectionParams{
		ID:             id,
		Status:         domain.InspectionStatus(req.Status),
		Findings:       req.Findings,
		EvidencePhotos: req.EvidencePhotos,
		Maintenance:    maintenance,
		InspectionDate: inspectionDate,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toInspectionResponse(insp))
}

// Get handles GET /api/inspections/{id}.
func (h *InspectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	insp, err := h.inspections.GetByID(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toInspectionResponse(insp))
}

// History handles GET /api/assets/{id}/inspections. Inspectors see only
// their own inspections; admins see the full history.
func (h *InspectionHandler) History(w http.ResponseWriter, r *http.Request) {
	assetID, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	p, _ := auth.GetPrincipal(r.Context())

	history, err := h.inspections.HistoryForAsset(r.Context(), assetID, p)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"inspections": toInspectionResponses(history),
	})
}

// LockStatus handles GET /api/assets/serial/{serial}/lock. The decision is
// evaluated for the calling principal, so an admin sees admin_override
// where an inspector sees locked.
func (h *InspectionHandler) LockStatus(w http.ResponseWriter, r *http.Request) {
	serial := r.PathValue("serial")

	p, _ := auth.GetPrincipal(r.Context())

	decision, err := h.inspections.LockStatus(r.Context(), serial, p)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toLockResponse(decision))
}

// parseUUIDField parses a UUID body field with a field-specific message.
func parseUUIDField(s, name, op string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.Invalid(op, name+" must be a valid UUID")
	}
	return id, nil
}
