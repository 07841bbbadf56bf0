package postgres

import (
	"context"
	"time"

	"github.com/flexprice/propbill/internal/domain/feetype"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/postgres"
	"github.com/flexprice/propbill/internal/types"
)

const feeTypeColumns = `id, name, status, created_at, updated_at, created_by, updated_by`

type feeTypeRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewFeeTypeRepository(db *postgres.DB, logger *logger.Logger) feetype.Repository {
	return &feeTypeRepository{db: db, logger: logger}
}

// Create relies on the unique index over published names to reject duplicates
func (r *feeTypeRepository) Create(ctx context.Context, f *feetype.FeeType) error {
	query := `
		INSERT INTO fee_types (
			id, name, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating fee type",
		"fee_type_id", f.ID,
		"name", f.Name,
	)

	_, err := r.db.NamedExecContext(ctx, query, f)
	return wrapError(err, "Fee type", f.Name)
}

func (r *feeTypeRepository) Get(ctx context.Context, id string) (*feetype.FeeType, error) {
	var f feetype.FeeType
	query := `SELECT ` + feeTypeColumns + ` FROM fee_types WHERE id = $1 AND status = $2`
	if err := r.db.GetContext(ctx, &f, query, id, types.StatusPublished); err != nil {
		return nil, wrapError(err, "Fee type", id)
	}
	return &f, nil
}

func (r *feeTypeRepository) List(ctx context.Context) ([]*feetype.FeeType, error) {
	query := `SELECT ` + feeTypeColumns + ` FROM fee_types WHERE status = $1 ORDER BY name`

	var feeTypes []*feetype.FeeType
	if err := r.db.SelectContext(ctx, &feeTypes, query, types.StatusPublished); err != nil {
		return nil, wrapError(err, "Fee type", "")
	}
	return feeTypes, nil
}

func (r *feeTypeRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE fee_types SET
			status = $1,
			updated_at = $2,
			updated_by = $3
		WHERE id = $4 AND status = $5`

	r.logger.Debugw("deleting fee type", "fee_type_id", id)

	res, err := r.db.ExecContext(ctx, query,
		types.StatusDeleted,
		time.Now().UTC(),
		types.GetUserID(ctx),
		id,
		types.StatusPublished,
	)
	if err != nil {
		return wrapError(err, "Fee type", id)
	}
	return notFoundIfNoRows(res, "Fee type", id)
}
