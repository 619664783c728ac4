package tracker

import (
	"time"

	"github.com/balkashynov/taskmaster/internal/models"
)

const maxStreak = 365

// Streak counts consecutive days, ending today, on which at least one
// session was started. A day without a started session today means 0.
func Streak(sessions []models.Session, today time.Time) int {
	started := make(map[string]bool)
	for _, s := range sessions {
		if s.StartTime != nil {
			started[s.Date] = true
		}
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	streak := 0
	for streak < maxStreak && started[day.Format(models.DateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// TotalMinutes is the derived duration of every completed session.
func TotalMinutes(sessions []models.Session) int {
	total := 0
	for _, s := range sessions {
		if s.Status == models.SessionCompleted {
			total += DeriveSessionDuration(s)
		}
	}
	return total
}

// DayMinutes is the derived duration of the completed sessions on date.
func DayMinutes(sessions []models.Session, date string) int {
	total := 0
	for _, s := range sessions {
		if s.Date == date && s.Status == models.SessionCompleted {
			total += DeriveSessionDuration(s)
		}
	}
	return total
}

// Progress is minutes as a percentage of target, capped at 100, plus any
// minutes beyond the target.
func Progress(minutes, target int) (percent float64, over int) {
	if target <= 0 {
		return 0, 0
	}
	percent = float64(minutes) / float64(target) * 100
	if percent > 100 {
		percent = 100
	}
	if minutes > target {
		over = minutes - target
	}
	return percent, over
}
