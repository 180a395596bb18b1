package sqlxrepos

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core/submission"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type submissionRow struct {
	ID                string       `db:"id"`
	WordpressURL      string       `db:"wordpress_url"`
	WordpressUsername string       `db:"wordpress_username"`
	WordpressPassword string       `db:"wordpress_password"`
	WhatsappNumber    string       `db:"whatsapp_number"`
	Package           string       `db:"package"`
	ReceiptFile       string       `db:"receipt_file"`
	ReceiptFileName   string       `db:"receipt_file_name"`
	ReceiptFileType   string       `db:"receipt_file_type"`
	ReceiptURL        string       `db:"receipt_url"`
	CreatedAt         sql.NullTime `db:"created_at"`
	UserID            string       `db:"user_id"`
	Status            string       `db:"status"`
	NetworkCode       string       `db:"network_code"`
}

var submissionColumns = []string{
	"id", "wordpress_url", "wordpress_username", "wordpress_password", "whatsapp_number",
	"package", "receipt_file", "receipt_file_name", "receipt_file_type", "receipt_url",
	"created_at", "user_id", "status", "network_code",
}

type submissionRepository struct {
	db *sqlx.DB
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *sqlx.DB) *submissionRepository {
	return &submissionRepository{db: db}
}

func (repo submissionRepository) toRow(sub submission.Submission) submissionRow {
	return submissionRow{
		ID:                sub.ID,
		WordpressURL:      sub.WordpressURL,
		WordpressUsername: sub.WordpressUsername,
		WordpressPassword: sub.WordpressPassword,
		WhatsappNumber:    sub.WhatsappNumber,
		Package:           sub.Package,
		ReceiptFile:       sub.ReceiptFile,
		ReceiptFileName:   sub.ReceiptFileName,
		ReceiptFileType:   sub.ReceiptFileType,
		ReceiptURL:        sub.ReceiptURL,
		CreatedAt:         sql.NullTime{Time: sub.CreatedAt.UTC(), Valid: !sub.CreatedAt.IsZero()},
		UserID:            sub.UserID,
		Status:            string(sub.Status),
		NetworkCode:       sub.NetworkCode,
	}
}

func (repo submissionRepository) fromRow(row submissionRow) submission.Submission {
	return submission.Submission{
		ID:                row.ID,
		WordpressURL:      row.WordpressURL,
		WordpressUsername: row.WordpressUsername,
		WordpressPassword: row.WordpressPassword,
		WhatsappNumber:    row.WhatsappNumber,
		Package:           row.Package,
		ReceiptFile:       row.ReceiptFile,
		ReceiptFileName:   row.ReceiptFileName,
		ReceiptFileType:   row.ReceiptFileType,
		ReceiptURL:        row.ReceiptURL,
		CreatedAt:         row.CreatedAt.Time,
		UserID:            row.UserID,
		Status:            submission.Status(row.Status),
		NetworkCode:       row.NetworkCode,
	}
}

// trapNoRowsErr maps psql "no rows" err to submission.ErrNotFound
func (repo submissionRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return submission.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo submissionRepository) CreateSubmission(ctx context.Context, sub submission.Submission) (submission.Submission, error) {
	sub.ID = uuid.New().String()
	row := repo.toRow(sub)

	query, args, err := psql.Insert("submissions").
		Columns(submissionColumns...).
		Values(
			row.ID, row.WordpressURL, row.WordpressUsername, row.WordpressPassword, row.WhatsappNumber,
			row.Package, row.ReceiptFile, row.ReceiptFileName, row.ReceiptFileType, row.ReceiptURL,
			row.CreatedAt, row.UserID, row.Status, row.NetworkCode,
		).
		ToSql()
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "building insert query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return submission.Submission{}, errors.Wrap(err, "inserting submission")
	}
	return sub, nil
}

func (repo submissionRepository) QueryAllSubmissions(ctx context.Context) ([]submission.Submission, error) {
	query, args, err := psql.Select(submissionColumns...).
		From("submissions").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building select query")
	}

	var rows []submissionRow
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	subs := make([]submission.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, repo.fromRow(row))
	}
	return subs, nil
}

func (repo submissionRepository) GetSubmissionByID(ctx context.Context, id string) (submission.Submission, error) {
	query, args, err := psql.Select(submissionColumns...).
		From("submissions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "building select query")
	}

	var row submissionRow
	if err = repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return submission.Submission{}, repo.trapNoRowsErr(err, "getting submission")
	}
	return repo.fromRow(row), nil
}

func (repo submissionRepository) UpdateSubmissionStatus(ctx context.Context, id string, status submission.Status) (submission.Submission, error) {
	query, args, err := psql.Update("submissions").
		Set("status", string(status)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "building update query")
	}

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "updating submission status")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return submission.Submission{}, submission.ErrNotFound
	}
	return repo.GetSubmissionByID(ctx, id)
}

func (repo submissionRepository) DeleteSubmissionsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := psql.Delete("submissions").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "deleting submissions")
	}
	return nil
}
