package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core/device"
)

type tokenRow struct {
	ID        string       `db:"id"`
	Token     string       `db:"token"`
	CreatedAt sql.NullTime `db:"created_at"`
}

type deviceRepository struct {
	db *sqlx.DB
}

var _ device.Repository = (*deviceRepository)(nil) // interface compliance check

func NewDeviceRepository(db *sqlx.DB) *deviceRepository {
	return &deviceRepository{db: db}
}

func (repo deviceRepository) CreateDeviceToken(ctx context.Context, tok device.Token) (device.Token, error) {
	tok.ID = uuid.New().String()

	query, args, err := psql.Insert("tokens").
		Columns("id", "token", "created_at").
		Values(tok.ID, tok.Token, sql.NullTime{Time: tok.CreatedAt.UTC(), Valid: !tok.CreatedAt.IsZero()}).
		ToSql()
	if err != nil {
		return device.Token{}, errors.Wrap(err, "building insert query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return device.Token{}, errors.Wrap(err, "inserting device token")
	}
	return tok, nil
}

func (repo deviceRepository) QueryAllDeviceTokens(ctx context.Context) ([]device.Token, error) {
	query, args, err := psql.Select("id", "token", "created_at").
		From("tokens").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building select query")
	}

	var rows []tokenRow
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying device tokens")
	}
	toks := make([]device.Token, 0, len(rows))
	for _, row := range rows {
		toks = append(toks, device.Token{ID: row.ID, Token: row.Token, CreatedAt: row.CreatedAt.Time})
	}
	return toks, nil
}
