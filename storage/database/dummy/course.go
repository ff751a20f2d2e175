package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db.course}
}

// CreatePurchase is a test seeding helper.
func (repo *courseRepository) CreatePurchase(p course.Purchase) course.Purchase {
	repo.db.Lock()
	defer repo.db.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	repo.db.purchases[p.ID] = &p
	return p
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course, exec ...core.DBExecutor) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if crs.ID == "" {
		crs.ID = uuid.New().String()
	}
	repo.db.table[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string, exec ...core.DBExecutor) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if crs, ok := repo.db.table[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) QueryCourses(ctx context.Context, subjects []string, exec ...core.DBExecutor) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(subjects, nil), nil
}

func (repo *courseRepository) QueryPurchasedCourses(ctx context.Context, userID string, subjects []string, exec ...core.DBExecutor) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	owned := make(map[string]bool)
	for _, p := range repo.db.purchases {
		if p.UserID == userID && p.Status == course.PurchaseCompleted {
			owned[p.CourseID] = true
		}
	}
	return repo.query(subjects, owned), nil
}

// query filters and orders courses by path position; owned limits results
// to the given course IDs when non-nil.
func (repo *courseRepository) query(subjects []string, owned map[string]bool) []course.Course {
	wanted := make(map[string]bool, len(subjects))
	for _, subj := range subjects {
		wanted[subj] = true
	}

	courses := make([]course.Course, 0, len(repo.db.table))
	for _, crs := range repo.db.table {
		if len(wanted) > 0 && !wanted[crs.Subject] {
			continue
		}
		if owned != nil && !owned[crs.ID] {
			continue
		}
		courses = append(courses, *crs)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].PathPosition < courses[j].PathPosition })
	return courses
}
