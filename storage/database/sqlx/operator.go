package sqlxrepos

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core/operator"
)

type operatorRow struct {
	ID           string       `db:"id"`
	Email        string       `db:"email"`
	IsActive     bool         `db:"is_active"`
	PasswordHash []byte       `db:"password_hash"`
	CreatedAt    sql.NullTime `db:"created_at"`
	LastLogin    sql.NullTime `db:"last_login"`
}

var operatorColumns = []string{"id", "email", "is_active", "password_hash", "created_at", "last_login"}

type operatorRepository struct {
	db *sqlx.DB
}

var _ operator.Repository = (*operatorRepository)(nil) // interface compliance check

func NewOperatorRepository(db *sqlx.DB) *operatorRepository {
	return &operatorRepository{db: db}
}

func (repo operatorRepository) fromRow(row operatorRow) operator.Operator {
	return operator.Operator{
		ID:           row.ID,
		Email:        row.Email,
		IsActive:     row.IsActive,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.Time,
		LastLogin:    row.LastLogin.Time,
	}
}

func (repo operatorRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return operator.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo operatorRepository) CreateOperator(ctx context.Context, op operator.Operator) (operator.Operator, error) {
	op.ID = uuid.New().String()

	query, args, err := psql.Insert("operators").
		Columns(operatorColumns...).
		Values(
			op.ID, op.Email, op.IsActive, op.PasswordHash,
			sql.NullTime{Time: op.CreatedAt.UTC(), Valid: !op.CreatedAt.IsZero()},
			sql.NullTime{Time: op.LastLogin.UTC(), Valid: !op.LastLogin.IsZero()},
		).
		ToSql()
	if err != nil {
		return operator.Operator{}, errors.Wrap(err, "building insert query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return operator.Operator{}, errors.Wrap(err, "inserting operator")
	}
	return op, nil
}

func (repo operatorRepository) GetOperatorByID(ctx context.Context, id string) (operator.Operator, error) {
	return repo.get(ctx, sq.Eq{"id": id})
}

func (repo operatorRepository) GetOperatorByEmail(ctx context.Context, email string) (operator.Operator, error) {
	return repo.get(ctx, sq.Eq{"email": email})
}

func (repo operatorRepository) get(ctx context.Context, pred sq.Eq) (operator.Operator, error) {
	query, args, err := psql.Select(operatorColumns...).
		From("operators").
		Where(pred).
		ToSql()
	if err != nil {
		return operator.Operator{}, errors.Wrap(err, "building select query")
	}

	var row operatorRow
	if err = repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return operator.Operator{}, repo.trapNoRowsErr(err, "getting operator")
	}
	return repo.fromRow(row), nil
}

func (repo operatorRepository) UpdateOperator(ctx context.Context, op operator.Operator) (operator.Operator, error) {
	query, args, err := psql.Update("operators").
		Set("email", op.Email).
		Set("is_active", op.IsActive).
		Set("password_hash", op.PasswordHash).
		Set("last_login", sql.NullTime{Time: op.LastLogin.UTC(), Valid: !op.LastLogin.IsZero()}).
		Where(sq.Eq{"id": op.ID}).
		ToSql()
	if err != nil {
		return operator.Operator{}, errors.Wrap(err, "building update query")
	}

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return operator.Operator{}, errors.Wrap(err, "updating operator")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return operator.Operator{}, operator.ErrNotFound
	}
	return op, nil
}
