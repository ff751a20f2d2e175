package revision

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerClockDay = 24 * 60

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// IsWeekdayName reports whether name is a lowercase english weekday name.
func IsWeekdayName(name string) bool {
	_, ok := weekdayNames[name]
	return ok
}

func weekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	return hours*60 + minutes, nil
}

// formatClock converts minutes since midnight back to "HH:MM",
// wrapping modulo 24 hours.
func formatClock(minutes int) string {
	minutes = ((minutes % minutesPerClockDay) + minutesPerClockDay) % minutesPerClockDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutesToTime adds delta minutes to an "HH:MM" wall-clock time,
// wrapping modulo 24 hours. Callers that must not cross midnight have to
// bound delta themselves; the session generator stops a day's packing
// before the wrap instead.
func AddMinutesToTime(hhmm string, delta int) (string, error) {
	minutes, err := parseClock(hhmm)
	if err != nil {
		return "", err
	}
	return formatClock(minutes + delta), nil
}
