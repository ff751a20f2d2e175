package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/revision"
)

type scheduleRepository struct {
	exec core.DBExecutor
}

var _ revision.ScheduleRepository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(exec core.DBExecutor) *scheduleRepository {
	return &scheduleRepository{exec: exec}
}

func (repo scheduleRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

// trapNoRowsErr maps psql "no rows" err to revision.ErrScheduleNotFound
func (repo scheduleRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return revision.ErrScheduleNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo scheduleRepository) CreateSchedule(ctx context.Context, sched revision.Schedule, exec ...core.DBExecutor) (revision.Schedule, error) {
	sched.ID = uuid.New().String()
	_, err := repo.getExec(exec).NamedExecContext(ctx, `
		INSERT INTO revision_schedules (id, user_id, name, weekly_hours, selected_days, start_date, end_date, status, study_technique, daily_start_time, created_at, updated_at, deleted_at)
		VALUES (:id, :user_id, :name, :weekly_hours, :selected_days, :start_date, :end_date, :status, :study_technique, :daily_start_time, :created_at, :updated_at, :deleted_at)`,
		sched,
	)
	if err != nil {
		return revision.Schedule{}, errors.Wrap(err, "inserting schedule")
	}
	return sched, nil
}

func (repo scheduleRepository) GetActiveSchedule(ctx context.Context, userID string, exec ...core.DBExecutor) (revision.Schedule, error) {
	var sched revision.Schedule
	err := repo.getExec(exec).GetContext(ctx, &sched, `
		SELECT * FROM revision_schedules
		WHERE user_id = $1 AND status = $2 AND deleted_at IS NULL`,
		userID, revision.ScheduleActive,
	)
	if err != nil {
		return revision.Schedule{}, repo.trapNoRowsErr(err, "getting active schedule")
	}
	return sched, nil
}

func (repo scheduleRepository) SoftDeleteSchedule(ctx context.Context, id string, deletedAt time.Time, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec).ExecContext(ctx, `
		UPDATE revision_schedules
		SET status = $1, deleted_at = $2, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL`,
		revision.ScheduleDeleted, deletedAt.UTC(), id,
	)
	if err != nil {
		return errors.Wrap(err, "soft-deleting schedule")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return revision.ErrScheduleNotFound
	}
	return nil
}

type sessionRepository struct {
	exec core.DBExecutor
}

var _ revision.SessionRepository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(exec core.DBExecutor) *sessionRepository {
	return &sessionRepository{exec: exec}
}

func (repo sessionRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

// trapNoRowsErr maps psql "no rows" err to revision.ErrSessionNotFound
func (repo sessionRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return revision.ErrSessionNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo sessionRepository) BulkInsertSessions(ctx context.Context, sessions []revision.Session, exec ...core.DBExecutor) ([]revision.Session, error) {
	if len(sessions) == 0 {
		return sessions, nil
	}
	now := time.Now().UTC()
	for i := range sessions {
		sessions[i].ID = uuid.New().String()
		if sessions[i].CreatedAt.IsZero() {
			sessions[i].CreatedAt = now
		}
	}
	_, err := repo.getExec(exec).NamedExecContext(ctx, `
		INSERT INTO revision_sessions (id, schedule_id, course_id, subject, session_date, start_time, end_time, duration_minutes, status, session_type, completion_notes, completed_at, created_at)
		VALUES (:id, :schedule_id, :course_id, :subject, :session_date, :start_time, :end_time, :duration_minutes, :status, :session_type, :completion_notes, :completed_at, :created_at)`,
		sessions,
	)
	if err != nil {
		return nil, errors.Wrap(err, "inserting sessions")
	}
	return sessions, nil
}

func (repo sessionRepository) GetSessionByID(ctx context.Context, id string, exec ...core.DBExecutor) (revision.Session, error) {
	var sess revision.Session
	err := repo.getExec(exec).GetContext(ctx, &sess, `SELECT * FROM revision_sessions WHERE id = $1`, id)
	if err != nil {
		return revision.Session{}, repo.trapNoRowsErr(err, "getting session")
	}
	return sess, nil
}

func (repo sessionRepository) QuerySessions(ctx context.Context, scheduleID string, from, to time.Time, exec ...core.DBExecutor) ([]revision.Session, error) {
	q := `SELECT * FROM revision_sessions WHERE schedule_id = $1`
	args := []interface{}{scheduleID}
	if !from.IsZero() {
		args = append(args, from)
		q += ` AND session_date >= $2`
	}
	if !to.IsZero() {
		args = append(args, to)
		if from.IsZero() {
			q += ` AND session_date <= $2`
		} else {
			q += ` AND session_date <= $3`
		}
	}
	q += ` ORDER BY session_date, start_time`

	sessions := make([]revision.Session, 0)
	if err := repo.getExec(exec).SelectContext(ctx, &sessions, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	return sessions, nil
}

func (repo sessionRepository) UpdateSessionStatus(
	ctx context.Context, id, status string, notes null.String, completedAt null.Time, exec ...core.DBExecutor,
) (revision.Session, error) {
	row := repo.getExec(exec).QueryRowxContext(ctx, `
		UPDATE revision_sessions
		SET status = $1, completion_notes = $2, completed_at = $3
		WHERE id = $4
		RETURNING *`,
		status, notes, completedAt, id,
	)
	var sess revision.Session
	if err := row.StructScan(&sess); err != nil {
		return revision.Session{}, repo.trapNoRowsErr(err, "updating session status")
	}
	return sess, nil
}
