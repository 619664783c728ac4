// Package tracker keeps session totals consistent with their slots and
// implements the session and slot lifecycle on top of package timer.
package tracker

import (
	"time"

	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/timer"
)

// RecomputeTotal returns a copy of session whose TotalDuration is the sum of
// its completed slots' durations.
func RecomputeTotal(session models.Session) models.Session {
	total := 0
	for _, slot := range session.Slots {
		if slot.Status != models.SlotCompleted || slot.Duration <= 0 {
			continue
		}
		total += slot.Duration
	}
	out := session.Clone()
	out.TotalDuration = total
	return out
}

// SlotMinutes is the duration of a slot in whole minutes. Completed slots
// with both timestamps are recomputed from them; anything else falls back to
// the stored Duration.
func SlotMinutes(slot models.Slot) int {
	if slot.Status == models.SlotCompleted && slot.StartTime != nil && slot.EndTime != nil {
		return timer.FinalMinutes(*slot.StartTime, *slot.EndTime, slot.TotalPauseDuration)
	}
	if slot.Duration < 0 {
		return 0
	}
	return slot.Duration
}

// DeriveSessionDuration sums SlotMinutes over the session's slots.
func DeriveSessionDuration(session models.Session) int {
	total := 0
	for _, slot := range session.Slots {
		total += SlotMinutes(slot)
	}
	return total
}

// LiveSessionSeconds is the session's worked time at now: derived minutes
// of every non-active slot plus the live elapsed seconds of the active one.
func LiveSessionSeconds(session models.Session, now time.Time) int64 {
	var total int64
	for _, slot := range session.Slots {
		if slot.Status == models.SlotActive {
			if elapsed, err := timer.LiveElapsedSeconds(slot, now); err == nil {
				total += elapsed
			}
			continue
		}
		total += int64(SlotMinutes(slot)) * 60
	}
	return total
}
