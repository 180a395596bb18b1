package course

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		ReplaceCourse(ctx context.Context, crs Course) (Course, error)
		DeleteCoursesByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	crs := Course{
		Title:          nc.Title,
		Description:    nc.Description,
		Features:       nc.Features,
		WhatsappNumber: nc.WhatsappNumber,
		Price:          nc.Price,
		CreatedAt:      time.Now().UTC(),
	}
	return svc.repo.CreateCourse(ctx, crs)
}

// QueryAll returns every course with duplicate ids collapsed (first-seen wins).
func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	courses, err := svc.repo.QueryAllCourses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return Dedupe(courses), nil
}

// QueryPublic backs the public listing: an empty or erroring store degrades
// gracefully to the hardcoded fallback catalog, which is never persisted.
func (svc *Service) QueryPublic(ctx context.Context) []Course {
	courses, err := svc.QueryAll(ctx)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("querying public courses: %v", err), err)
		return DefaultCourses()
	}
	if len(courses) == 0 {
		return DefaultCourses()
	}
	return courses
}

func (svc *Service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

// Replace overwrites a course's editable fields wholesale, keeping its id and
// creation timestamp.
func (svc *Service) Replace(ctx context.Context, id string, uc UpdateCourse) (Course, error) {
	existing, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	existing.Title = uc.Title
	existing.Description = uc.Description
	existing.Features = uc.Features
	existing.WhatsappNumber = uc.WhatsappNumber
	existing.Price = uc.Price
	return svc.repo.ReplaceCourse(ctx, existing)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteCoursesByID(ctx, ids...)
}
