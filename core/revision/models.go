package revision

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

// Schedule statuses
const (
	ScheduleActive  = "active"
	ScheduleDeleted = "deleted"
)

// Session statuses
const (
	SessionScheduled = "scheduled"
	SessionCompleted = "completed"
)

// Session types
const (
	SessionTypeStudy = "study"
	SessionTypeBreak = "break"
)

// Study techniques
const (
	TechniquePomodoro = "pomodoro"
	TechniqueSixtyTen = "60_10_rule"
	TechniqueRotation = "subject_rotation"
)

var AllTechniques = []string{TechniquePomodoro, TechniqueSixtyTen, TechniqueRotation}

const dateFormat = "2006-01-02"

// Schedule is a user's revision plan. At most one schedule per user is
// active and not soft-deleted at any time; a reset stamps DeletedAt rather
// than removing the row.
type Schedule struct {
	ID             string         `json:"id" db:"id"`
	UserID         string         `json:"user_id" db:"user_id"`
	Name           string         `json:"name" db:"name"`
	WeeklyHours    float64        `json:"weekly_hours" db:"weekly_hours"`
	SelectedDays   pq.StringArray `json:"selected_days" db:"selected_days"`
	StartDate      time.Time      `json:"start_date" db:"start_date"`
	EndDate        null.Time      `json:"end_date" db:"end_date"`
	Status         string         `json:"status" db:"status"`
	StudyTechnique string         `json:"study_technique" db:"study_technique"`
	DailyStartTime string         `json:"daily_start_time" db:"daily_start_time"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"` // UTC
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"` // UTC
	DeletedAt      null.Time      `json:"deleted_at" db:"deleted_at"`
}

func (s Schedule) IsActive() bool {
	return s.Status == ScheduleActive && !s.DeletedAt.Valid
}

// Session is one generated study or break block. Immutable once generated,
// except for the completion fields updated when the user marks progress.
type Session struct {
	ID              string      `json:"id" db:"id"`
	ScheduleID      string      `json:"schedule_id" db:"schedule_id"`
	CourseID        string      `json:"course_id" db:"course_id"`
	Subject         string      `json:"subject" db:"subject"`
	SessionDate     time.Time   `json:"session_date" db:"session_date"`
	StartTime       string      `json:"start_time" db:"start_time"` // HH:MM
	EndTime         string      `json:"end_time" db:"end_time"`     // HH:MM
	DurationMinutes int         `json:"duration_minutes" db:"duration_minutes"`
	Status          string      `json:"status" db:"status"`
	SessionType     string      `json:"session_type" db:"session_type"`
	CompletionNotes null.String `json:"completion_notes" db:"completion_notes"`
	CompletedAt     null.Time   `json:"completed_at" db:"completed_at"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"` // UTC
}

// Setup contains information needed to create a new Schedule.
type Setup struct {
	Name             string   `json:"name" validate:"required"`
	WeeklyHours      float64  `json:"weekly_hours" validate:"required,gt=0,lte=80"`
	SelectedDays     []string `json:"selected_days" validate:"required,min=1,max=7,unique,weekdays"`
	SelectedSubjects []string `json:"selected_subjects" validate:"required,min=1"`
	StartDate        string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	StudyTechnique   string   `json:"study_technique" validate:"omitempty,studytechnique"`
	DailyStartTime   string   `json:"daily_start_time" validate:"omitempty,timeofday"`
}

func (s *Setup) Validate(validate *validator.Validate) error {
	s.Name = core.CleanString(s.Name)
	for i, day := range s.SelectedDays {
		s.SelectedDays[i] = core.CleanString(day, true /* lower */)
	}
	for i, subj := range s.SelectedSubjects {
		s.SelectedSubjects[i] = core.CleanString(subj)
	}
	s.StudyTechnique = core.CleanString(s.StudyTechnique, true /* lower */)
	s.DailyStartTime = core.CleanString(s.DailyStartTime)

	return validate.Struct(s)
}

// CompleteSession is the payload for marking a session done.
type CompleteSession struct {
	Notes string `json:"notes"`
}
