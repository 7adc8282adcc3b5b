package repository

import (
	"context"

	"github.com/ignisguard/server/internal/domain"
)

// CreateInspectionWithAssetUpdate persists a new inspection and applies the
// derived asset update as a single transaction. Either both writes land or
// neither does.
func (r *Repository) CreateInspectionWithAssetUpdate(ctx context.Context, insp *domain.Inspection, update domain.AssetStatusUpdate) error {
	return r.ExecTx(ctx, func(q *Queries) error {
		if err := q.CreateInspection(ctx, insp); err != nil {
			return err
		}
		return q.ApplyAssetStatusUpdate(ctx, update)
	})
}

// UpdateInspectionWithAssetUpdate overwrites an inspection and re-applies the
// derived asset update as a single transaction.
func (r *Repository) UpdateInspectionWithAssetUpdate(ctx context.Context, insp *domain.Inspection, update domain.AssetStatusUpdate) error {
	return r.ExecTx(ctx, func(q *Queries) error {
		if err := q.UpdateInspection(ctx, insp); err != nil {
			return err
		}
		return q.ApplyAssetStatusUpdate(ctx, update)
	})
}
