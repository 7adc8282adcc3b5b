package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignisguard/server/internal/domain"
)

// ErrInspectionNotFound is returned when an inspection does not exist.
var ErrInspectionNotFound = errors.New("inspection not found")

const inspectionColumns = `
	i.id, i.asset_id, i.inspector_id, i.inspection_date, i.status,
	i.findings, i.evidence_photos, i.created_at, i.updated_at,
	u.name, a.serial_number`

const inspectionJoins = `
	FROM inspections i
	JOIN users u ON u.id = i.inspector_id
	JOIN assets a ON a.id = i.asset_id`

func scanInspection(row interface{ Scan(...interface{}) error }) (*domain.Inspection, error) {
	var (
		insp     domain.Inspection
		status   string
		findings = nullRaw()
		photos   pq.StringArray
	)
	err := row.Scan(
		&insp.ID, &insp.AssetID, &insp.InspectorID, &insp.InspectionDate,
		&status, findings, &photos, &insp.CreatedAt, &insp.UpdatedAt,
		&insp.InspectorName, &insp.AssetSerial,
	)
	if err != nil {
		return nil, err
	}

	insp.Status = domain.InspectionStatus(status)
	insp.EvidencePhotos = []string(photos)
	if err := unmarshalJSON(*findings, &insp.Findings); err != nil {
		return nil, fmt.Errorf("decode findings: %w", err)
	}
	return &insp, nil
}

// CreateInspection inserts a new inspection row.
func (q *Queries) CreateInspection(ctx context.Context, insp *domain.Inspection) error {
	findings, err := marshalJSON(insp.Findings)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO inspections (id, asset_id, inspector_id, inspection_date, status, findings, evidence_photos)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err = q.db.QueryRowContext(ctx, query,
		insp.ID, insp.AssetID, insp.InspectorID, insp.InspectionDate,
		string(insp.Status), findings, pq.Array(insp.EvidencePhotos),
	).Scan(&insp.CreatedAt, &insp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert inspection: %w", err)
	}
	return nil
}

// UpdateInspection overwrites the correctable fields of an inspection in
// place. The inspection date is written as supplied by the caller, which is
// expected to preserve the original unless an explicit override was given.
func (q *Queries) UpdateInspection(ctx context.Context, insp *domain.Inspection) error {
	findings, err := marshalJSON(insp.Findings)
	if err != nil {
		return err
	}

	const query = `
		UPDATE inspections
		SET status = $2, findings = $3, evidence_photos = $4,
		    inspection_date = $5, updated_at = now()
		WHERE id = $1`

	res, err := q.db.ExecContext(ctx, query,
		insp.ID, string(insp.Status), findings,
		pq.Array(insp.EvidencePhotos), insp.InspectionDate,
	)
	if err != nil {
		return fmt.Errorf("update inspection: %w", err)
	}
	return requireRow(res, ErrInspectionNotFound)
}

// FindInspectionByID returns one inspection with inspector and asset
// references resolved.
func (q *Queries) FindInspectionByID(ctx context.Context, id uuid.UUID) (*domain.Inspection, error) {
	query := `SELECT` + inspectionColumns + inspectionJoins + ` WHERE i.id = $1`
	insp, err := scanInspection(q.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInspectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find inspection: %w", err)
	}
	return insp, nil
}

// FindLatestInspectionForAsset returns the most recent inspection for an
// asset, or nil when none exists.
func (q *Queries) FindLatestInspectionForAsset(ctx context.Context, assetID uuid.UUID) (*domain.Inspection, error) {
	query := `SELECT` + inspectionColumns + inspectionJoins + `
		WHERE i.asset_id = $1
		ORDER BY i.created_at DESC
		LIMIT 1`
	insp, err := scanInspection(q.db.QueryRowContext(ctx, query, assetID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find latest inspection: %w", err)
	}
	return insp, nil
}

// FindInspectionsForAsset returns an asset's inspection history newest-first.
// When inspectorID is non-nil the history is restricted to that inspector.
func (q *Queries) FindInspectionsForAsset(ctx context.Context, assetID uuid.UUID, inspectorID *uuid.UUID) ([]domain.Inspection, error) {
	query := `SELECT` + inspectionColumns + inspectionJoins + `
		WHERE i.asset_id = $1`
	args := []interface{}{assetID}
	if inspectorID != nil {
		query += ` AND i.inspector_id = $2`
		args = append(args, *inspectorID)
	}
	query += ` ORDER BY i.created_at DESC`

	return q.queryInspections(ctx, query, args...)
}

// FindInspectionsByInspector returns every inspection performed by one user,
// newest-first.
func (q *Queries) FindInspectionsByInspector(ctx context.Context, inspectorID uuid.UUID) ([]domain.Inspection, error) {
	query := `SELECT` + inspectionColumns + inspectionJoins + `
		WHERE i.inspector_id = $1
		ORDER BY i.created_at DESC`
	return q.queryInspections(ctx, query, inspectorID)
}

// FindAllInspections returns every inspection newest-first, for fleet-wide
// report assembly.
func (q *Queries) FindAllInspections(ctx context.Context) ([]domain.Inspection, error) {
	query := `SELECT` + inspectionColumns + inspectionJoins + ` ORDER BY i.created_at DESC`
	return q.queryInspections(ctx, query)
}

// FindAssetTypes resolves asset ids to their raw type strings, for
// aggregation without re-querying per row. Missing ids are simply absent
// from the result.
func (q *Queries) FindAssetTypes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	const query = `SELECT id, type FROM assets WHERE id = ANY($1)`
	rows, err := q.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("find asset types: %w", err)
	}
	defer rows.Close()

	types := make(map[uuid.UUID]string, len(ids))
	for rows.Next() {
		var (
			id uuid.UUID
			t  string
		)
		if err := rows.Scan(&id, &t); err != nil {
			return nil, err
		}
		types[id] = t
	}
	return types, rows.Err()
}

func (q *Queries) queryInspections(ctx context.Context, query string, args ...interface{}) ([]domain.Inspection, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query inspections: %w", err)
	}
	defer rows.Close()

	var inspections []domain.Inspection
	for rows.Next() {
		insp, err := scanInspection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inspection: %w", err)
		}
		inspections = append(inspections, *insp)
	}
	return inspections, rows.Err()
}
