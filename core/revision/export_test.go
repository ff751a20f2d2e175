package revision

// Hooks exported for external tests (package revision_test).

var NowFunc = &nowFunc

const (
	PomodoroStudyMinutes = pomodoroStudyMinutes
	PomodoroShortBreak   = pomodoroShortBreak
	PomodoroLongBreak    = pomodoroLongBreak
)
