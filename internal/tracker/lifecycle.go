package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/timer"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrSessionActive       = errors.New("another session is already active")
	ErrSessionExists       = errors.New("session already exists for this date")
	ErrSessionNotActive    = errors.New("session is not active")
	ErrDescriptionRequired = errors.New("slot description is required")
)

// ErrSlotActive is returned when a slot would start while another slot in
// the same session is running. It also matches timer.ErrInvalidState.
var ErrSlotActive = &timer.InvalidStateError{
	Op:     "start",
	Status: models.SlotPending,
	Reason: "another slot in this session is active",
}

// ActiveSession returns the first active session.
func ActiveSession(sessions []models.Session) (models.Session, bool) {
	for _, s := range sessions {
		if s.Status == models.SessionActive {
			return s, true
		}
	}
	return models.Session{}, false
}

// ActiveSlot returns the session's active slot.
func ActiveSlot(session models.Session) (models.Slot, bool) {
	for _, slot := range session.Slots {
		if slot.Status == models.SlotActive {
			return slot, true
		}
	}
	return models.Slot{}, false
}

// SessionsOn returns the sessions dated date, in day order.
func SessionsOn(sessions []models.Session, date string) []models.Session {
	var out []models.Session
	for _, t := range models.SessionTypes {
		for _, s := range sessions {
			if s.Date == date && s.Type == t {
				out = append(out, s)
			}
		}
	}
	return out
}

// FindSession looks a session up by id or by a unique id prefix.
func FindSession(sessions []models.Session, id string) (models.Session, error) {
	var match []models.Session
	for _, s := range sessions {
		if s.ID == id {
			return s, nil
		}
		if id != "" && strings.HasPrefix(s.ID, id) {
			match = append(match, s)
		}
	}
	switch len(match) {
	case 0:
		return models.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	case 1:
		return match[0], nil
	}
	return models.Session{}, fmt.Errorf("session id %q is ambiguous", id)
}

// Replace returns a copy of sessions with the entry sharing updated's id
// swapped out, or updated appended when no entry matches.
func Replace(sessions []models.Session, updated models.Session) []models.Session {
	out := make([]models.Session, 0, len(sessions)+1)
	found := false
	for _, s := range sessions {
		if s.ID == updated.ID {
			out = append(out, updated)
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, updated)
	}
	return out
}

// NextSlotName numbers slots across all sessions of a day: slot-1, slot-2, ...
func NextSlotName(sessions []models.Session, date string) string {
	count := 0
	for _, s := range sessions {
		if s.Date == date {
			count += len(s.Slots)
		}
	}
	return fmt.Sprintf("slot-%d", count+1)
}

// StartSession opens a new active session of type t on date. It fails when
// any session is already active or the date already has a session of t.
func StartSession(sessions []models.Session, t models.SessionType, date string, now time.Time) ([]models.Session, models.Session, error) {
	if !t.Valid() {
		return sessions, models.Session{}, fmt.Errorf("unknown session type %q", t)
	}
	if active, ok := ActiveSession(sessions); ok {
		return sessions, models.Session{}, fmt.Errorf("%w: %s session on %s", ErrSessionActive, active.Type, active.Date)
	}
	for _, s := range sessions {
		if s.Date == date && s.Type == t {
			return sessions, models.Session{}, fmt.Errorf("%w: %s on %s", ErrSessionExists, t, date)
		}
	}

	started := now
	session := models.Session{
		ID:        uuid.NewString(),
		Type:      t,
		Date:      date,
		StartTime: &started,
		Status:    models.SessionActive,
		Slots:     []models.Slot{},
	}
	return Replace(sessions, session), session, nil
}

// EndSession completes an active session. A running slot is completed at
// now first, then the total is recomputed.
func EndSession(session models.Session, now time.Time) (models.Session, error) {
	if session.Status != models.SessionActive {
		return session, fmt.Errorf("%w: status is %s", ErrSessionNotActive, session.Status)
	}

	out := session.Clone()
	for i, slot := range out.Slots {
		if slot.Status != models.SlotActive {
			continue
		}
		done, err := timer.Complete(slot, now)
		if err != nil {
			return session, fmt.Errorf("complete %s: %w", slot.Name, err)
		}
		out.Slots[i] = done
	}

	ended := now
	out.EndTime = &ended
	out.Status = models.SessionCompleted
	return RecomputeTotal(out), nil
}

// CancelSession abandons a pending or active session. It is rejected while
// a slot is running so no tracked time is silently dropped.
func CancelSession(session models.Session) (models.Session, error) {
	switch session.Status {
	case models.SessionPending, models.SessionActive:
	default:
		return session, fmt.Errorf("cannot cancel session in status %q", session.Status)
	}
	if slot, ok := ActiveSlot(session); ok {
		return session, fmt.Errorf("cannot cancel session while %s is active: end it first", slot.Name)
	}

	out := session.Clone()
	out.Status = models.SessionCancelled
	return out, nil
}

// AddSlot appends a pending slot to an active session, starting it right
// away when startNow is set.
func AddSlot(session models.Session, name, description string, estimate int, startNow bool, now time.Time) (models.Session, models.Slot, error) {
	if session.Status != models.SessionActive {
		return session, models.Slot{}, fmt.Errorf("%w: status is %s", ErrSessionNotActive, session.Status)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return session, models.Slot{}, ErrDescriptionRequired
	}
	if estimate < 0 {
		estimate = 0
	}

	slot := models.Slot{
		ID:                uuid.NewString(),
		SessionID:         session.ID,
		Name:              name,
		Description:       description,
		EstimatedDuration: estimate,
		Status:            models.SlotPending,
	}

	out := session.Clone()
	out.Slots = append(out.Slots, slot)
	if !startNow {
		return out, slot, nil
	}

	started, err := StartSlot(out, slot.ID, now)
	if err != nil {
		return session, models.Slot{}, err
	}
	slot, _ = findSlot(started, slot.ID)
	return started, slot, nil
}

// StartSlot activates a pending slot. Only one slot per session may be active.
func StartSlot(session models.Session, slotID string, now time.Time) (models.Session, error) {
	if session.Status != models.SessionActive {
		return session, fmt.Errorf("%w: status is %s", ErrSessionNotActive, session.Status)
	}
	if active, ok := ActiveSlot(session); ok && active.ID != slotID {
		return session, ErrSlotActive
	}
	return updateSlot(session, slotID, func(slot models.Slot) (models.Slot, error) {
		return timer.Start(slot, now)
	})
}

// TogglePause pauses or resumes the given slot.
func TogglePause(session models.Session, slotID string, now time.Time) (models.Session, error) {
	return updateSlot(session, slotID, func(slot models.Slot) (models.Slot, error) {
		return timer.TogglePause(slot, now)
	})
}

// CompleteSlot finalizes the given slot and recomputes the session total.
func CompleteSlot(session models.Session, slotID string, now time.Time) (models.Session, error) {
	out, err := updateSlot(session, slotID, func(slot models.Slot) (models.Slot, error) {
		return timer.Complete(slot, now)
	})
	if err != nil {
		return session, err
	}
	return RecomputeTotal(out), nil
}

// CancelSlot abandons a pending slot.
func CancelSlot(session models.Session, slotID string) (models.Session, error) {
	return updateSlot(session, slotID, timer.Cancel)
}

// FindSlot resolves a slot by id or by name (e.g. "slot-3").
func FindSlot(session models.Session, ref string) (models.Slot, error) {
	for _, slot := range session.Slots {
		if slot.ID == ref || slot.Name == ref {
			return slot, nil
		}
	}
	return models.Slot{}, fmt.Errorf("%w: %s", ErrSlotNotFound, ref)
}

func findSlot(session models.Session, slotID string) (models.Slot, int) {
	for i, slot := range session.Slots {
		if slot.ID == slotID {
			return slot, i
		}
	}
	return models.Slot{}, -1
}

func updateSlot(session models.Session, slotID string, fn func(models.Slot) (models.Slot, error)) (models.Session, error) {
	slot, idx := findSlot(session, slotID)
	if idx < 0 {
		return session, fmt.Errorf("%w: %s", ErrSlotNotFound, slotID)
	}
	updated, err := fn(slot)
	if err != nil {
		return session, err
	}
	out := session.Clone()
	out.Slots[idx] = updated
	return out, nil
}
