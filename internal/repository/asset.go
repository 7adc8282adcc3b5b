package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ignisguard/server/internal/domain"
)

// assetColumns is the select list shared by all asset queries.
const assetColumns = `
	id, name, type, serial_number, location, make, mfg_year, capacity, unit,
	installation_date, specifications,
	last_hydro_test_date, next_hydro_test_due, last_refilled_date,
	next_refill_due, discharge_date,
	status, last_inspection_date, next_inspection_due,
	qr_code_url, created_by, created_at, updated_at`

// ErrAssetNotFound is returned when an asset does not exist or is
// soft-deleted. A vanished asset is "not found", never a zero-value asset.
var ErrAssetNotFound = errors.New("asset not found")

// ErrDuplicateSerial is returned when a serial number is already registered.
var ErrDuplicateSerial = errors.New("serial number already registered")

func scanAsset(row interface{ Scan(...interface{}) error }) (*domain.Asset, error) {
	var (
		a        domain.Asset
		mfgYear  sql.NullInt64
		capacity sql.NullFloat64
		specs    = nullRaw()
		makeStr  sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.Type, &a.SerialNumber, &a.Location, &makeStr,
		&mfgYear, &capacity, &a.Unit,
		&a.InstallationDate, specs,
		&a.LastHydroTestDate, &a.NextHydroTestDue, &a.LastRefilledDate,
		&a.NextRefillDue, &a.DischargeDate,
		&a.Status, &a.LastInspectionDate, &a.NextInspectionDue,
		&a.QRCodeURL, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Make = makeStr.String
	a.MfgYear = int(mfgYear.Int64)
	a.Capacity = capacity.Float64
	a.Specifications = map[string]string{}
	if err := unmarshalJSON(*specs, &a.Specifications); err != nil {
		return nil, fmt.Errorf("decode specifications: %w", err)
	}
	return &a, nil
}

// CreateAsset inserts a new asset row.
func (q *Queries) CreateAsset(ctx context.Context, a *domain.Asset) error {
	specs, err := marshalJSON(a.Specifications)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO assets (
			id, name, type, serial_number, location, make, mfg_year, capacity,
			unit, installation_date, specifications, status, qr_code_url, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, 0), NULLIF($8, 0.0), $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`

	err = q.db.QueryRowContext(ctx, query,
		a.ID, a.Name, a.Type, a.SerialNumber, a.Location, a.Make, a.MfgYear,
		a.Capacity, a.Unit, a.InstallationDate, specs, a.Status, a.QRCodeURL,
		a.CreatedBy,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSerial
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// FindAssetByID returns a live asset by id.
func (q *Queries) FindAssetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	query := `SELECT` + assetColumns + ` FROM assets WHERE id = $1 AND deleted_at IS NULL`
	a, err := scanAsset(q.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find asset by id: %w", err)
	}
	return a, nil
}

// FindAssetBySerial returns a live asset by its serial number.
func (q *Queries) FindAssetBySerial(ctx context.Context, serial string) (*domain.Asset, error) {
	query := `SELECT` + assetColumns + ` FROM assets WHERE serial_number = $1 AND deleted_at IS NULL`
	a, err := scanAsset(q.db.QueryRowContext(ctx, query, serial))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find asset by serial: %w", err)
	}
	return a, nil
}

// ListAssets returns live assets newest-first. When inspectorID is non-nil
// only assets that inspector has inspected are returned.
func (q *Queries) ListAssets(ctx context.Context, inspectorID *uuid.UUID) ([]domain.Asset, error) {
	query := `SELECT` + assetColumns + ` FROM assets WHERE deleted_at IS NULL ORDER BY created_at DESC`
	args := []interface{}{}
	if inspectorID != nil {
		query = `SELECT DISTINCT` + assetColumns + `
			FROM assets
			WHERE deleted_at IS NULL
			  AND id IN (SELECT asset_id FROM inspections WHERE inspector_id = $1)
			ORDER BY created_at DESC`
		args = append(args, *inspectorID)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

// UpdateAssetStatic applies admin edits to an asset's static fields.
// Specifications are merged key-wise in SQL so concurrent edits to distinct
// keys don't clobber each other.
func (q *Queries) UpdateAssetStatic(ctx context.Context, p domain.UpdateAssetParams) error {
	specs, err := marshalJSON(p.Specifications)
	if err != nil {
		return err
	}

	const query = `
		UPDATE assets SET
			name = COALESCE(NULLIF($2, ''), name),
			location = COALESCE(NULLIF($3, ''), location),
			make = COALESCE(NULLIF($4, ''), make),
			mfg_year = COALESCE(NULLIF($5, 0), mfg_year),
			capacity = COALESCE(NULLIF($6, 0.0), capacity),
			unit = COALESCE(NULLIF($7, ''), unit),
			installation_date = COALESCE($8, installation_date),
			specifications = specifications || $9,
			updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := q.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Location, p.Make, p.MfgYear, p.Capacity, p.Unit,
		p.InstallationDate, specs,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return requireRow(res, ErrAssetNotFound)
}

// ApplyAssetStatusUpdate writes the recorder's derived status and any
// supplied maintenance dates. Nil date fields are omitted from the SET
// clause entirely, so previously recorded dates are never nulled out.
func (q *Queries) ApplyAssetStatusUpdate(ctx context.Context, u domain.AssetStatusUpdate) error {
	sets := []string{"status = $2", "updated_at = now()"}
	args := []interface{}{u.AssetID, string(u.Status)}

	add := func(column string, v *time.Time) {
		if v != nil {
			args = append(args, *v)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	add("last_inspection_date", u.LastInspectionDate)
	add("next_inspection_due", u.NextInspectionDue)
	add("last_hydro_test_date", u.Maintenance.LastHydroTestDate)
	add("next_hydro_test_due", u.Maintenance.NextHydroTestDue)
	add("last_refilled_date", u.Maintenance.LastRefilledDate)
	add("next_refill_due", u.Maintenance.NextRefillDue)
	add("discharge_date", u.Maintenance.DischargeDate)

	query := fmt.Sprintf(
		"UPDATE assets SET %s WHERE id = $1 AND deleted_at IS NULL",
		strings.Join(sets, ", "),
	)

	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("apply asset status update: %w", err)
	}
	return requireRow(res, ErrAssetNotFound)
}

// SoftDeleteAsset marks an asset deleted. Deleted assets are invisible to
// every other query.
func (q *Queries) SoftDeleteAsset(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE assets SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	res, err := q.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete asset: %w", err)
	}
	return requireRow(res, ErrAssetNotFound)
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
