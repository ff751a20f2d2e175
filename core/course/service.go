package course

import (
	"context"
	"errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")
)

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course, exec ...core.DBExecutor) (Course, error)
		GetCourseByID(ctx context.Context, id string, exec ...core.DBExecutor) (Course, error)
		// QueryCourses returns courses filtered to the given subjects
		// (all subjects when empty), ordered by path_position ascending.
		QueryCourses(ctx context.Context, subjects []string, exec ...core.DBExecutor) ([]Course, error)
		// QueryPurchasedCourses returns courses the user holds a completed
		// purchase for, filtered and ordered like QueryCourses.
		QueryPurchasedCourses(ctx context.Context, userID string, subjects []string, exec ...core.DBExecutor) ([]Course, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, crs Course) (Course, error) {
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) Query(ctx context.Context, subjects []string) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, subjects)
}
