package sqlxrepos

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core/course"
)

type courseRow struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Features       pq.StringArray `db:"features"`
	WhatsappNumber string         `db:"whatsapp_number"`
	Price          string         `db:"price"`
	CreatedAt      sql.NullTime   `db:"created_at"`
}

var courseColumns = []string{"id", "title", "description", "features", "whatsapp_number", "price", "created_at"}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) fromRow(row courseRow) course.Course {
	return course.Course{
		ID:             row.ID,
		Title:          row.Title,
		Description:    row.Description,
		Features:       row.Features,
		WhatsappNumber: row.WhatsappNumber,
		Price:          row.Price,
		CreatedAt:      row.CreatedAt.Time,
	}
}

func (repo courseRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	crs.ID = uuid.New().String()

	query, args, err := psql.Insert("courses").
		Columns(courseColumns...).
		Values(
			crs.ID, crs.Title, crs.Description, pq.StringArray(crs.Features),
			crs.WhatsappNumber, crs.Price,
			sql.NullTime{Time: crs.CreatedAt.UTC(), Valid: !crs.CreatedAt.IsZero()},
		).
		ToSql()
	if err != nil {
		return course.Course{}, errors.Wrap(err, "building insert query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	query, args, err := psql.Select(courseColumns...).
		From("courses").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building select query")
	}

	var rows []courseRow
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, repo.fromRow(row))
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	query, args, err := psql.Select(courseColumns...).
		From("courses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return course.Course{}, errors.Wrap(err, "building select query")
	}

	var row courseRow
	if err = repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "getting course")
	}
	return repo.fromRow(row), nil
}

func (repo courseRepository) ReplaceCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	query, args, err := psql.Update("courses").
		Set("title", crs.Title).
		Set("description", crs.Description).
		Set("features", pq.StringArray(crs.Features)).
		Set("whatsapp_number", crs.WhatsappNumber).
		Set("price", crs.Price).
		Where(sq.Eq{"id": crs.ID}).
		ToSql()
	if err != nil {
		return course.Course{}, errors.Wrap(err, "building update query")
	}

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "replacing course")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}

func (repo courseRepository) DeleteCoursesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := psql.Delete("courses").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return nil
}
