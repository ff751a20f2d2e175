package revision

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/mail"
	"sort"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/track"
	"github.com/trezcool/darasa/core/user"
)

var (
	// errors
	ErrScheduleNotFound     = errors.New("revision schedule not found")
	ErrSessionNotFound      = errors.New("revision session not found")
	ErrActiveScheduleExists = errors.New("an active revision schedule already exists")
)

var nowFunc = time.Now // mockable

// Technique block lengths, in minutes.
const (
	pomodoroStudyMinutes = 25
	pomodoroShortBreak   = 5
	pomodoroLongBreak    = 15

	sixtyTenStudyMinutes = 60
	sixtyTenBreakMinutes = 10
)

const defaultDailyStartTime = "16:00"

type (
	ScheduleRepository interface {
		CreateSchedule(ctx context.Context, sched Schedule, exec ...core.DBExecutor) (Schedule, error)
		// GetActiveSchedule returns the user's active, non-deleted schedule
		// or ErrScheduleNotFound.
		GetActiveSchedule(ctx context.Context, userID string, exec ...core.DBExecutor) (Schedule, error)
		SoftDeleteSchedule(ctx context.Context, id string, deletedAt time.Time, exec ...core.DBExecutor) error
	}

	SessionRepository interface {
		BulkInsertSessions(ctx context.Context, sessions []Session, exec ...core.DBExecutor) ([]Session, error)
		GetSessionByID(ctx context.Context, id string, exec ...core.DBExecutor) (Session, error)
		// QuerySessions returns a schedule's sessions within [from, to],
		// ordered by date then start time. Zero bounds are open-ended.
		QuerySessions(ctx context.Context, scheduleID string, from, to time.Time, exec ...core.DBExecutor) ([]Session, error)
		UpdateSessionStatus(ctx context.Context, id, status string, notes null.String, completedAt null.Time, exec ...core.DBExecutor) (Session, error)
	}

	// CourseCatalog is the slice of the course repository the scheduler needs;
	// satisfied by course.Repository.
	CourseCatalog interface {
		QueryCourses(ctx context.Context, subjects []string, exec ...core.DBExecutor) ([]course.Course, error)
		QueryPurchasedCourses(ctx context.Context, userID string, subjects []string, exec ...core.DBExecutor) ([]course.Course, error)
	}

	// UserDirectory resolves the requesting user; satisfied by user.Repository.
	UserDirectory interface {
		GetUserByID(ctx context.Context, id string, exec ...core.DBExecutor) (user.User, error)
		GetUserRole(ctx context.Context, id string, exec ...core.DBExecutor) (string, error)
	}

	// PerformanceReader supplies the weakness signal; satisfied by track.Repository.
	PerformanceReader interface {
		QueryTopicPerformance(ctx context.Context, userID string, exec ...core.DBExecutor) ([]track.TopicPerformance, error)
	}

	Service struct {
		db          core.DB
		schedules   ScheduleRepository
		sessions    SessionRepository
		courses     CourseCatalog
		users       UserDirectory
		performance PerformanceReader
		mailSvc     core.EmailService
		logger      core.Logger
		conf        *core.Config
	}
)

func NewService(
	db core.DB,
	schedules ScheduleRepository,
	sessions SessionRepository,
	courses CourseCatalog,
	users UserDirectory,
	performance PerformanceReader,
	mailSvc core.EmailService,
	logger core.Logger,
	conf *core.Config,
) *Service {
	return &Service{
		db:          db,
		schedules:   schedules,
		sessions:    sessions,
		courses:     courses,
		users:       users,
		performance: performance,
		mailSvc:     mailSvc,
		logger:      logger,
		conf:        conf,
	}
}

// CreateSchedule persists a new active schedule for the user and generates
// its study/break sessions over the schedule's date range. Both writes
// happen in one transaction: a schedule row without its sessions cannot be
// left behind. A setup with no eligible courses still creates the schedule,
// with zero sessions (logged, not an error).
func (svc *Service) CreateSchedule(ctx context.Context, userID string, data Setup) (Schedule, []Session, error) {
	if _, err := svc.schedules.GetActiveSchedule(ctx, userID); err == nil {
		return Schedule{}, nil, core.NewValidationError(ErrActiveScheduleExists)
	} else if !errors.Is(err, ErrScheduleNotFound) {
		return Schedule{}, nil, pkgerrors.Wrap(err, "checking for active schedule")
	}

	startDate, err := time.Parse(dateFormat, data.StartDate)
	if err != nil {
		return Schedule{}, nil, pkgerrors.Wrap(err, "parsing start date")
	}
	var endDate null.Time
	if data.EndDate != "" {
		end, err := time.Parse(dateFormat, data.EndDate)
		if err != nil {
			return Schedule{}, nil, pkgerrors.Wrap(err, "parsing end date")
		}
		if end.Before(startDate) {
			return Schedule{}, nil, core.NewValidationError(
				errors.New("end date precedes start date"),
				core.FieldError{Field: "end_date", Error: "must not precede start_date"},
			)
		}
		endDate = null.TimeFrom(end)
	}

	technique := data.StudyTechnique
	if technique == "" {
		technique = TechniqueRotation
	}
	startTime := data.DailyStartTime
	if startTime == "" {
		startTime = defaultDailyStartTime
	}

	now := nowFunc().UTC()
	sched := Schedule{
		UserID:         userID,
		Name:           data.Name,
		WeeklyHours:    data.WeeklyHours,
		SelectedDays:   data.SelectedDays,
		StartDate:      startDate,
		EndDate:        endDate,
		Status:         ScheduleActive,
		StudyTechnique: technique,
		DailyStartTime: startTime,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	sessions, err := svc.generateSessions(ctx, userID, sched, data.SelectedSubjects)
	if err != nil {
		return Schedule{}, nil, err
	}

	err = core.Atomic(ctx, svc.db, func(tx core.DBExecutor) error {
		sched, err = svc.schedules.CreateSchedule(ctx, sched, tx)
		if err != nil {
			return pkgerrors.Wrap(err, "inserting schedule")
		}
		if len(sessions) == 0 {
			return nil
		}
		for i := range sessions {
			sessions[i].ScheduleID = sched.ID
		}
		sessions, err = svc.sessions.BulkInsertSessions(ctx, sessions, tx)
		return pkgerrors.Wrap(err, "inserting sessions")
	})
	if err != nil {
		return Schedule{}, nil, err
	}

	svc.sendScheduleCreatedEmail(ctx, userID, sched, len(sessions))
	return sched, sessions, nil
}

// generateSessions resolves the eligible course pool, orders it by the
// user's per-subject weakness score and packs every selected day in the
// date range with study/break blocks for the schedule's technique.
// No I/O failures here are fatal except the role and course lookups.
func (svc *Service) generateSessions(ctx context.Context, userID string, sched Schedule, subjects []string) ([]Session, error) {
	role, err := svc.users.GetUserRole(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "resolving user role")
	}

	var eligible []course.Course
	if user.IsStaff(role) {
		eligible, err = svc.courses.QueryCourses(ctx, subjects)
	} else {
		eligible, err = svc.courses.QueryPurchasedCourses(ctx, userID, subjects)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "resolving eligible courses")
	}
	if len(eligible) == 0 {
		svc.logger.Warn(fmt.Sprintf("no eligible courses for user %s; no revision sessions generated", userID))
		return nil, nil
	}

	svc.sortByWeakness(ctx, userID, eligible, subjects)

	startMin, err := parseClock(sched.DailyStartTime)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parsing daily start time")
	}

	endDate := sched.EndDate.Time
	if !sched.EndDate.Valid {
		endDate = sched.StartDate.AddDate(0, 0, svc.horizonDays())
	}

	selectedDays := make(map[string]bool, len(sched.SelectedDays))
	for _, day := range sched.SelectedDays {
		selectedDays[day] = true
	}
	minutesPerDay := sched.WeeklyHours * 60 / float64(len(sched.SelectedDays))

	var sessions []Session
	courseIdx := 0
	for d := sched.StartDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		if !selectedDays[weekdayName(d.Weekday())] {
			continue
		}
		crs := eligible[courseIdx%len(eligible)]
		courseIdx++
		sessions = append(sessions, packDay(crs, d, startMin, minutesPerDay, sched.StudyTechnique)...)
	}
	return sessions, nil
}

// sortByWeakness reorders eligible courses so subjects with the highest
// summed error rate come first. Unscored subjects keep their catalog order
// at the end. A failed performance lookup degrades to catalog order.
func (svc *Service) sortByWeakness(ctx context.Context, userID string, eligible []course.Course, subjects []string) {
	perfs, err := svc.performance.QueryTopicPerformance(ctx, userID)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("fetching topic performance for user %s failed; keeping catalog order", userID), err)
		return
	}

	selected := make(map[string]bool, len(subjects))
	for _, subj := range subjects {
		selected[subj] = true
	}
	weights := make(map[string]float64)
	for _, wt := range track.WeakTopics(perfs) {
		if selected[wt.Subject] {
			weights[wt.Subject] = wt.ErrorRate
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return weights[eligible[i].Subject] > weights[eligible[j].Subject]
	})
}

// packDay emits one day's blocks starting at startMin (minutes since
// midnight). The packing loop completes at least one full study+break pair
// before checking the budget, so a day may overshoot by at most one
// technique unit; it stops early rather than crossing midnight.
func packDay(crs course.Course, date time.Time, startMin int, minutesPerDay float64, technique string) []Session {
	var sessions []Session
	cursor := startMin

	emit := func(sessType string, duration int) bool {
		if duration <= 0 || cursor+duration > minutesPerClockDay {
			return false
		}
		sessions = append(sessions, Session{
			CourseID:        crs.ID,
			Subject:         crs.Subject,
			SessionDate:     date,
			StartTime:       formatClock(cursor),
			EndTime:         formatClock(cursor + duration),
			DurationMinutes: duration,
			Status:          SessionScheduled,
			SessionType:     sessType,
		})
		cursor += duration
		return true
	}

	switch technique {
	case TechniquePomodoro:
		var total float64
		for reps := 1; ; reps++ {
			if !emit(SessionTypeStudy, pomodoroStudyMinutes) {
				break
			}
			brk := pomodoroShortBreak
			if reps%4 == 0 {
				brk = pomodoroLongBreak
			}
			if !emit(SessionTypeBreak, brk) {
				break
			}
			total += float64(pomodoroStudyMinutes + brk)
			if total >= minutesPerDay {
				break
			}
		}
	case TechniqueSixtyTen:
		var total float64
		for {
			if !emit(SessionTypeStudy, sixtyTenStudyMinutes) {
				break
			}
			if !emit(SessionTypeBreak, sixtyTenBreakMinutes) {
				break
			}
			total += float64(sixtyTenStudyMinutes + sixtyTenBreakMinutes)
			if total >= minutesPerDay {
				break
			}
		}
	default: // subject rotation: the whole budget in a single block
		emit(SessionTypeStudy, int(math.Round(minutesPerDay)))
	}
	return sessions
}

func (svc *Service) horizonDays() int {
	if svc.conf != nil && svc.conf.Revision.DefaultHorizonDays > 0 {
		return svc.conf.Revision.DefaultHorizonDays
	}
	return 84
}

// ResetActiveSchedule soft-deletes the user's active schedule by stamping
// DeletedAt. Generated sessions are left untouched. A missing active
// schedule is a warning, not an error.
func (svc *Service) ResetActiveSchedule(ctx context.Context, userID string) error {
	sched, err := svc.schedules.GetActiveSchedule(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			svc.logger.Warn(fmt.Sprintf("no active schedule for user %s; nothing to reset", userID))
			return nil
		}
		return pkgerrors.Wrap(err, "finding active schedule")
	}
	if err = svc.schedules.SoftDeleteSchedule(ctx, sched.ID, nowFunc().UTC()); err != nil {
		return pkgerrors.Wrap(err, "soft-deleting schedule")
	}
	return nil
}

func (svc *Service) ActiveSchedule(ctx context.Context, userID string) (Schedule, error) {
	return svc.schedules.GetActiveSchedule(ctx, userID)
}

func (svc *Service) Sessions(ctx context.Context, scheduleID string, from, to time.Time) ([]Session, error) {
	return svc.sessions.QuerySessions(ctx, scheduleID, from, to)
}

// Complete marks a session done, stamping the completion time and optional
// notes. Completing an already completed session is a no-op returning it as is.
func (svc *Service) Complete(ctx context.Context, sessionID, notes string) (Session, error) {
	sess, err := svc.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if sess.Status == SessionCompleted {
		return sess, nil
	}
	return svc.sessions.UpdateSessionStatus(
		ctx, sessionID, SessionCompleted,
		null.NewString(notes, notes != ""),
		null.TimeFrom(nowFunc().UTC()),
	)
}

func (svc *Service) sendScheduleCreatedEmail(ctx context.Context, userID string, sched Schedule, sessionCount int) {
	if svc.mailSvc == nil {
		return
	}
	usr, err := svc.users.GetUserByID(ctx, userID)
	if err != nil || usr.Email == "" {
		return
	}

	endDate := "open-ended"
	if sched.EndDate.Valid {
		endDate = sched.EndDate.Time.Format(dateFormat)
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Your revision schedule is ready",
		TemplateName: "revision-schedule-created",
		TemplateData: map[string]interface{}{
			"UserName":     usr.Name,
			"ScheduleName": sched.Name,
			"SessionCount": sessionCount,
			"StartDate":    sched.StartDate.Format(dateFormat),
			"EndDate":      endDate,
		},
	})
}
