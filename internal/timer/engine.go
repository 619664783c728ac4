// Package timer derives slot elapsed and paused time from timestamps and
// drives the slot lifecycle. Every function takes the current instant as an
// argument and returns an updated copy instead of mutating its input.
package timer

import (
	"time"

	"github.com/balkashynov/taskmaster/internal/models"
)

// pauseDuration converts accumulated pause seconds into a time.Duration.
func pauseDuration(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// wholeSeconds floors d to whole seconds, clamping negatives to zero.
func wholeSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}

// FinalMinutes is the duration of a finished slot in whole minutes:
// (end - start) minus the accumulated pause, floored, never negative.
func FinalMinutes(start, end time.Time, pauseSeconds float64) int {
	d := end.Sub(start) - pauseDuration(pauseSeconds)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// LiveElapsedSeconds returns the active time of a running slot. While the
// slot is paused the value is frozen at the moment the pause began.
func LiveElapsedSeconds(slot models.Slot, now time.Time) (int64, error) {
	if slot.Status != models.SlotActive {
		return 0, invalidState("read elapsed time of", slot, "slot is not active")
	}
	if slot.StartTime == nil {
		return 0, invalidState("read elapsed time of", slot, "start time is missing")
	}

	ref := now
	if slot.PauseStartTime != nil {
		ref = *slot.PauseStartTime
	}
	return wholeSeconds(ref.Sub(*slot.StartTime) - pauseDuration(slot.TotalPauseDuration)), nil
}

// LiveElapsedPauseSeconds returns how long the current pause has lasted,
// or zero when the slot is not paused.
func LiveElapsedPauseSeconds(slot models.Slot, now time.Time) int64 {
	if slot.PauseStartTime == nil {
		return 0
	}
	return wholeSeconds(now.Sub(*slot.PauseStartTime))
}

// Start moves a pending slot to active.
func Start(slot models.Slot, now time.Time) (models.Slot, error) {
	if slot.Status != models.SlotPending {
		return slot, invalidState("start", slot, "only pending slots can be started")
	}
	started := now
	slot.Status = models.SlotActive
	slot.StartTime = &started
	slot.PauseStartTime = nil
	return slot, nil
}

// TogglePause pauses a running slot or resumes a paused one. Resuming folds
// the closed pause interval into TotalPauseDuration. Status is unchanged.
func TogglePause(slot models.Slot, now time.Time) (models.Slot, error) {
	if slot.Status != models.SlotActive {
		return slot, invalidState("pause", slot, "slot is not active")
	}
	if slot.StartTime == nil {
		return slot, invalidState("pause", slot, "start time is missing")
	}

	if slot.PauseStartTime != nil {
		slot.TotalPauseDuration += closedPauseSeconds(*slot.PauseStartTime, now)
		slot.PauseStartTime = nil
		return slot, nil
	}

	paused := now
	slot.PauseStartTime = &paused
	return slot, nil
}

// Complete finalizes an active slot: any open pause is closed, the duration
// is computed in whole minutes and frozen.
func Complete(slot models.Slot, now time.Time) (models.Slot, error) {
	if slot.Status != models.SlotActive {
		return slot, invalidState("complete", slot, "slot is not active")
	}
	if slot.StartTime == nil {
		return slot, invalidState("complete", slot, "start time is missing")
	}

	if slot.PauseStartTime != nil {
		slot.TotalPauseDuration += closedPauseSeconds(*slot.PauseStartTime, now)
		slot.PauseStartTime = nil
	}

	ended := now
	slot.Status = models.SlotCompleted
	slot.EndTime = &ended
	slot.Duration = FinalMinutes(*slot.StartTime, ended, slot.TotalPauseDuration)
	return slot, nil
}

// Cancel abandons a slot that never started.
func Cancel(slot models.Slot) (models.Slot, error) {
	if slot.Status != models.SlotPending {
		return slot, invalidState("cancel", slot, "only pending slots can be cancelled")
	}
	slot.Status = models.SlotCancelled
	return slot, nil
}

// closedPauseSeconds is the length of a pause interval in seconds; a clock
// that moved backwards contributes nothing.
func closedPauseSeconds(pauseStart, now time.Time) float64 {
	d := now.Sub(pauseStart)
	if d <= 0 {
		return 0
	}
	return d.Seconds()
}
