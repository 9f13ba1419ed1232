// Package assetrepo manages repository layer of portfolio assets.
package assetrepo

import (
	"context"
	"database/sql"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/dbpkg"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates asset repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns asset RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const assetColumns = `
	id, asset_name, asset_type, asset_value, interest_rate, purchase_date, maturity_date, created_at`

const createQuery = `
INSERT INTO
    assets (asset_name, asset_type, asset_value, interest_rate, purchase_date, maturity_date)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING` + assetColumns

// Create creates the asset and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAssetParams) (domain.Asset, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Name,
		arg.Type,
		arg.Value,
		arg.InterestRate,
		arg.PurchaseDate,
		arg.MaturityDate,
	)

	a, err := scanAsset(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)
		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT` + assetColumns + `
FROM assets
WHERE id = $1
`

// Get returns the asset with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Asset, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAsset(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAssetNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT` + assetColumns + `
FROM assets
ORDER BY id
`

// List returns all assets ordered by creation.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Asset, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Asset{}

	for rows.Next() {
		var a domain.Asset
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Type,
			&a.Value,
			&a.InterestRate,
			&a.PurchaseDate,
			&a.MaturityDate,
			&a.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const deleteQuery = `
DELETE FROM assets
WHERE id = $1
`

// Delete removes the asset with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrAssetNotFound
	}

	return nil
}

func scanAsset(row *sql.Row) (domain.Asset, error) {
	var a domain.Asset

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Type,
		&a.Value,
		&a.InterestRate,
		&a.PurchaseDate,
		&a.MaturityDate,
		&a.CreatedAt,
	)

	return a, err
}
