// This file holds the JSON wire representations of the domain types.
// Domain structs stay free of transport tags; conversion happens here.
package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignisguard/server/internal/domain"
)

// dateOnly is the wire format for maintenance and service dates. Instants
// (created_at, inspection timestamps) stay RFC 3339.
const dateOnly = "2006-01-02"

type assetResponse struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	Type             string            `json:"type"`
	SerialNumber     string            `json:"serial_number"`
	Location         string            `json:"location"`
	Make             string            `json:"make,omitempty"`
	MfgYear          int               `json:"mfg_year,omitempty"`
	Capacity         float64           `json:"capacity,omitempty"`
	Unit             string            `json:"unit,omitempty"`
	InstallationDate *string           `json:"installation_date,omitempty"`
	Specifications   map[string]string `json:"specifications,omitempty"`

	LastHydroTestDate *string `json:"last_hydro_test_date,omitempty"`
	NextHydroTestDue  *string `json:"next_hydro_test_due,omitempty"`
	LastRefilledDate  *string `json:"last_refilled_date,omitempty"`
	NextRefillDue     *string `json:"next_refill_due,omitempty"`
	DischargeDate     *string `json:"discharge_date,omitempty"`

	Status             string  `json:"status"`
	LastInspectionDate *string `json:"last_inspection_date,omitempty"`
	NextInspectionDue  *string `json:"next_inspection_due,omitempty"`

	QRCodeURL string    `json:"qr_code_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAssetResponse(a *domain.Asset) assetResponse {
	return assetResponse{
		ID:               a.ID,
		Name:             a.Name,
		Type:             a.Type,
		SerialNumber:     a.SerialNumber,
		Location:         a.Location,
		Make:             a.Make,
		MfgYear:          a.MfgYear,
		Capacity:         a.Capacity,
		Unit:             a.Unit,
		InstallationDate: dateString(a.InstallationDate),
		Specifications:   a.Specifications,

		LastHydroTestDate: dateString(a.LastHydroTestDate),
		NextHydroTestDue:  dateString(a.NextHydroTestDue),
		LastRefilledDate:  dateString(a.LastRefilledDate),
		NextRefillDue:     dateString(a.NextRefillDue),
		DischargeDate:     dateString(a.DischargeDate),

		Status:             string(a.Status),
		LastInspectionDate: instantString(a.LastInspectionDate),
		NextInspectionDue:  dateString(a.NextInspectionDue),

		QRCodeURL: a.QRCodeURL,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAssetResponses(assets []domain.Asset) []assetResponse {
	out := make([]assetResponse, len(assets))
	for i := range assets {
		out[i] = toAssetResponse(&assets[i])
	}
	return out
}

type inspectionResponse struct {
	ID             uuid.UUID       `json:"id"`
	AssetID        uuid.UUID       `json:"asset_id"`
	AssetSerial    string          `json:"asset_serial,omitempty"`
	InspectorID    uuid.UUID       `json:"inspector_id"`
	InspectorName  string          `json:"inspector_name,omitempty"`
	InspectionDate time.Time       `json:"inspection_date"`
	Status         string          `json:"status"`
	Findings       domain.Findings `json:"findings"`
	EvidencePhotos []string        `json:"evidence_photos,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toInspectionResponse(insp *domain.Inspection) inspectionResponse {
	return inspectionResponse{
		ID:             insp.ID,
		AssetID:        insp.AssetID,
		AssetSerial:    insp.AssetSerial,
		InspectorID:    insp.InspectorID,
		InspectorName:  insp.InspectorName,
		InspectionDate: insp.InspectionDate,
		Status:         string(insp.Status),
		Findings:       insp.Findings,
		EvidencePhotos: insp.EvidencePhotos,
		CreatedAt:      insp.CreatedAt,
		UpdatedAt:      insp.UpdatedAt,
	}
}

func toInspectionResponses(inspections []domain.Inspection) []inspectionResponse {
	out := make([]inspectionResponse, len(inspections))
	for i := range inspections {
		out[i] = toInspectionResponse(&inspections[i])
	}
	return out
}

type lockResponse struct {
	Locked         bool                `json:"locked"`
	RemainingHours float64             `json:"remaining_hours,omitempty"`
	AdminOverride  bool                `json:"admin_override,omitempty"`
	BlockedBy      *inspectionResponse `json:"blocked_by,omitempty"`
}

func toLockResponse(d domain.LockDecision) lockResponse {
	resp := lockResponse{
		Locked:         d.Locked,
		RemainingHours: d.RemainingHours,
		AdminOverride:  d.AdminOverride,
	}
	if d.BlockedBy != nil {
		insp := toInspectionResponse(d.BlockedBy)
		resp.BlockedBy = &insp
	}
	return resp
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(domain.NormalizeRole(u.Role)),
	}
}

// dateString formats an optional date without time-of-day.
func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateOnly)
	return &s
}

// instantString formats an optional timestamp with full precision.
func instantString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// parseDate parses an optional "YYYY-MM-DD" request field.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
