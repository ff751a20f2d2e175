package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
)

type courseRepository struct {
	exec core.DBExecutor
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(exec core.DBExecutor) *courseRepository {
	return &courseRepository{exec: exec}
}

func (repo courseRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

// trapNoRowsErr maps psql "no rows" err to course.ErrNotFound
func (repo courseRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course, exec ...core.DBExecutor) (course.Course, error) {
	crs.ID = uuid.New().String()
	now := time.Now().UTC()
	if crs.CreatedAt.IsZero() {
		crs.CreatedAt = now
	}
	if crs.UpdatedAt.IsZero() {
		crs.UpdatedAt = now
	}
	if crs.Prerequisites == nil {
		crs.Prerequisites = pq.StringArray{}
	}
	if crs.UnlockRequiredCourses == nil {
		crs.UnlockRequiredCourses = pq.StringArray{}
	}

	_, err := repo.getExec(exec).NamedExecContext(ctx, `
		INSERT INTO courses (id, title, subject, path_position, prerequisites, unlock_min_progress, unlock_required_courses, created_at, updated_at)
		VALUES (:id, :title, :subject, :path_position, :prerequisites, :unlock_min_progress, :unlock_required_courses, :created_at, :updated_at)`,
		crs,
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id string, exec ...core.DBExecutor) (course.Course, error) {
	var crs course.Course
	err := repo.getExec(exec).GetContext(ctx, &crs, `SELECT * FROM courses WHERE id = $1`, id)
	if err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "getting course")
	}
	return crs, nil
}

func (repo courseRepository) QueryCourses(ctx context.Context, subjects []string, exec ...core.DBExecutor) ([]course.Course, error) {
	q := `SELECT * FROM courses`
	args := make([]interface{}, 0, 1)
	if len(subjects) > 0 {
		q += ` WHERE subject = ANY($1)`
		args = append(args, pq.Array(subjects))
	}
	q += ` ORDER BY path_position`

	courses := make([]course.Course, 0)
	if err := repo.getExec(exec).SelectContext(ctx, &courses, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return courses, nil
}

func (repo courseRepository) QueryPurchasedCourses(ctx context.Context, userID string, subjects []string, exec ...core.DBExecutor) ([]course.Course, error) {
	q := `
		SELECT c.* FROM courses c
		INNER JOIN purchases p ON p.course_id = c.id
		WHERE p.user_id = $1 AND p.status = $2`
	args := []interface{}{userID, course.PurchaseCompleted}
	if len(subjects) > 0 {
		q += ` AND c.subject = ANY($3)`
		args = append(args, pq.Array(subjects))
	}
	q += ` ORDER BY c.path_position`

	courses := make([]course.Course, 0)
	if err := repo.getExec(exec).SelectContext(ctx, &courses, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying purchased courses")
	}
	return courses, nil
}
