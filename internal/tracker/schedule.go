package tracker

import (
	"time"

	"github.com/balkashynov/taskmaster/internal/config"
	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/parser"
)

func clockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// SessionTypeAt picks the session type whose window contains now. Before
// the morning start there is none.
func SessionTypeAt(now time.Time, times config.SessionTimes) (models.SessionType, bool) {
	morning, err1 := parser.ParseClock(times.Morning)
	afternoon, err2 := parser.ParseClock(times.Afternoon)
	evening, err3 := parser.ParseClock(times.Evening)
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}

	m := clockMinutes(now)
	switch {
	case m >= evening:
		return models.SessionEvening, true
	case m >= afternoon:
		return models.SessionAfternoon, true
	case m >= morning:
		return models.SessionMorning, true
	}
	return "", false
}

// WithinWorkingHours reports whether a session may start at now: from the
// morning start until the end of day.
func WithinWorkingHours(now time.Time, s config.Settings) bool {
	start, err := parser.ParseClock(s.SessionTimes.Morning)
	if err != nil {
		return true
	}
	end, err := parser.ParseClock(s.EndOfDay)
	if err != nil {
		return true
	}

	m := clockMinutes(now)
	if start < end {
		return m >= start && m < end
	}
	return m >= start || m < end
}
