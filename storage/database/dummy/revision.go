package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/revision"
)

type scheduleRepository struct {
	db *revisionTable
}

var _ revision.ScheduleRepository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) *scheduleRepository {
	return &scheduleRepository{db: db.revision}
}

func (repo *scheduleRepository) CreateSchedule(ctx context.Context, sched revision.Schedule, exec ...core.DBExecutor) (revision.Schedule, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sched.ID = uuid.New().String()
	repo.db.schedules[sched.ID] = &sched
	return sched, nil
}

func (repo *scheduleRepository) GetActiveSchedule(ctx context.Context, userID string, exec ...core.DBExecutor) (revision.Schedule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, sched := range repo.db.schedules {
		if sched.UserID == userID && sched.IsActive() {
			return *sched, nil
		}
	}
	return revision.Schedule{}, revision.ErrScheduleNotFound
}

func (repo *scheduleRepository) SoftDeleteSchedule(ctx context.Context, id string, deletedAt time.Time, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	sched, ok := repo.db.schedules[id]
	if !ok || sched.DeletedAt.Valid {
		return revision.ErrScheduleNotFound
	}
	sched.Status = revision.ScheduleDeleted
	sched.DeletedAt = null.TimeFrom(deletedAt.UTC())
	sched.UpdatedAt = deletedAt.UTC()
	return nil
}

type sessionRepository struct {
	db *revisionTable
}

var _ revision.SessionRepository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *DB) *sessionRepository {
	return &sessionRepository{db: db.revision}
}

func (repo *sessionRepository) BulkInsertSessions(ctx context.Context, sessions []revision.Session, exec ...core.DBExecutor) ([]revision.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i := range sessions {
		sessions[i].ID = uuid.New().String()
		sess := sessions[i]
		repo.db.sessions[sess.ID] = &sess
	}
	return sessions, nil
}

func (repo *sessionRepository) GetSessionByID(ctx context.Context, id string, exec ...core.DBExecutor) (revision.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sess, ok := repo.db.sessions[id]; ok {
		return *sess, nil
	}
	return revision.Session{}, revision.ErrSessionNotFound
}

func (repo *sessionRepository) QuerySessions(ctx context.Context, scheduleID string, from, to time.Time, exec ...core.DBExecutor) ([]revision.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	sessions := make([]revision.Session, 0)
	for _, sess := range repo.db.sessions {
		if sess.ScheduleID != scheduleID {
			continue
		}
		if !from.IsZero() && sess.SessionDate.Before(from) {
			continue
		}
		if !to.IsZero() && sess.SessionDate.After(to) {
			continue
		}
		sessions = append(sessions, *sess)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].SessionDate.Equal(sessions[j].SessionDate) {
			return sessions[i].SessionDate.Before(sessions[j].SessionDate)
		}
		return sessions[i].StartTime < sessions[j].StartTime
	})
	return sessions, nil
}

func (repo *sessionRepository) UpdateSessionStatus(
	ctx context.Context, id, status string, notes null.String, completedAt null.Time, exec ...core.DBExecutor,
) (revision.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sess, ok := repo.db.sessions[id]
	if !ok {
		return revision.Session{}, revision.ErrSessionNotFound
	}
	sess.Status = status
	sess.CompletionNotes = notes
	sess.CompletedAt = completedAt
	return *sess, nil
}
