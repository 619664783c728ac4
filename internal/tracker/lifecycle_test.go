package tracker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/timer"
)

const today = "2025-06-15"

func startedSession(t *testing.T) models.Session {
	t.Helper()
	_, session, err := StartSession(nil, models.SessionMorning, today, t0)
	require.NoError(t, err)
	return session
}

func TestStartSession(t *testing.T) {
	sessions, session, err := StartSession(nil, models.SessionMorning, today, t0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, models.SessionActive, session.Status)
	assert.Equal(t, today, session.Date)
	require.NotNil(t, session.StartTime)
	assert.Equal(t, t0, *session.StartTime)
}

func TestStartSession_RejectsSecondActive(t *testing.T) {
	sessions, _, err := StartSession(nil, models.SessionMorning, today, t0)
	require.NoError(t, err)

	_, _, err = StartSession(sessions, models.SessionAfternoon, today, at(60))
	assert.ErrorIs(t, err, ErrSessionActive)
}

func TestStartSession_RejectsDuplicateType(t *testing.T) {
	sessions, session, err := StartSession(nil, models.SessionMorning, today, t0)
	require.NoError(t, err)
	ended, err := EndSession(session, at(60))
	require.NoError(t, err)
	sessions = Replace(sessions, ended)

	_, _, err = StartSession(sessions, models.SessionMorning, today, at(120))
	assert.ErrorIs(t, err, ErrSessionExists)

	_, _, err = StartSession(sessions, models.SessionMorning, "2025-06-16", at(120))
	assert.NoError(t, err, "same type on another day is fine")
}

func TestStartSession_RejectsUnknownType(t *testing.T) {
	_, _, err := StartSession(nil, models.SessionType("night"), today, t0)
	assert.Error(t, err)
}

func TestAddSlot_RequiresDescription(t *testing.T) {
	_, _, err := AddSlot(startedSession(t), "slot-1", "   ", 30, false, t0)
	assert.ErrorIs(t, err, ErrDescriptionRequired)
}

func TestAddSlot_StartNow(t *testing.T) {
	session, slot, err := AddSlot(startedSession(t), "slot-1", "read chapter 3", 45, true, at(10))
	require.NoError(t, err)

	assert.Equal(t, models.SlotActive, slot.Status)
	assert.Equal(t, "slot-1", slot.Name)
	assert.Equal(t, 45, slot.EstimatedDuration)
	require.Len(t, session.Slots, 1)
	assert.Equal(t, slot, session.Slots[0])
}

func TestAddSlot_RejectsInactiveSession(t *testing.T) {
	_, _, err := AddSlot(models.Session{Status: models.SessionCompleted}, "slot-1", "x", 0, false, t0)
	assert.ErrorIs(t, err, ErrSessionNotActive)
}

func TestStartSlot_SingleActiveInvariant(t *testing.T) {
	session, first, err := AddSlot(startedSession(t), "slot-1", "first", 0, true, t0)
	require.NoError(t, err)
	session, second, err := AddSlot(session, "slot-2", "second", 0, false, t0)
	require.NoError(t, err)

	_, err = StartSlot(session, second.ID, at(30))
	assert.ErrorIs(t, err, ErrSlotActive)
	assert.ErrorIs(t, err, timer.ErrInvalidState)

	_, _, err = AddSlot(session, "slot-3", "third", 0, true, at(30))
	assert.ErrorIs(t, err, ErrSlotActive, "start-now goes through the same check")

	session, err = CompleteSlot(session, first.ID, at(600))
	require.NoError(t, err)
	session, err = StartSlot(session, second.ID, at(600))
	require.NoError(t, err)

	active, ok := ActiveSlot(session)
	require.True(t, ok)
	assert.Equal(t, second.ID, active.ID)
}

func TestCompleteSlot_RecomputesTotal(t *testing.T) {
	session, slot, err := AddSlot(startedSession(t), "slot-1", "work", 0, true, t0)
	require.NoError(t, err)

	session, err = TogglePause(session, slot.ID, at(600))
	require.NoError(t, err)
	session, err = TogglePause(session, slot.ID, at(900))
	require.NoError(t, err)
	session, err = CompleteSlot(session, slot.ID, at(1500))
	require.NoError(t, err)

	assert.Equal(t, 20, session.Slots[0].Duration)
	assert.Equal(t, 20, session.TotalDuration)
}

func TestCompleteSlot_UnknownSlot(t *testing.T) {
	_, err := CompleteSlot(startedSession(t), "missing", t0)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCompleteSlot_Twice(t *testing.T) {
	session, slot, err := AddSlot(startedSession(t), "slot-1", "work", 0, true, t0)
	require.NoError(t, err)
	session, err = CompleteSlot(session, slot.ID, at(300))
	require.NoError(t, err)

	again, err := CompleteSlot(session, slot.ID, at(900))
	assert.ErrorIs(t, err, timer.ErrInvalidState)
	assert.Equal(t, 5, again.TotalDuration)
}

func TestCancelSlot(t *testing.T) {
	session, slot, err := AddSlot(startedSession(t), "slot-1", "work", 0, false, t0)
	require.NoError(t, err)

	session, err = CancelSlot(session, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SlotCancelled, session.Slots[0].Status)

	_, err = StartSlot(session, slot.ID, at(10))
	assert.ErrorIs(t, err, timer.ErrInvalidState, "cancelled is terminal")
}

func TestEndSession_CompletesActiveSlot(t *testing.T) {
	session, slot, err := AddSlot(startedSession(t), "slot-1", "work", 0, true, t0)
	require.NoError(t, err)
	session, err = TogglePause(session, slot.ID, at(1200))
	require.NoError(t, err)

	ended, err := EndSession(session, at(1800))
	require.NoError(t, err)

	assert.Equal(t, models.SessionCompleted, ended.Status)
	require.NotNil(t, ended.EndTime)
	assert.Equal(t, models.SlotCompleted, ended.Slots[0].Status)
	assert.Equal(t, 20, ended.Slots[0].Duration, "pause-aware duration")
	assert.Equal(t, 20, ended.TotalDuration)
	assert.Equal(t, models.SlotActive, session.Slots[0].Status, "input is not modified")

	_, err = EndSession(ended, at(1900))
	assert.ErrorIs(t, err, ErrSessionNotActive)
}

func TestCancelSession(t *testing.T) {
	session, slot, err := AddSlot(startedSession(t), "slot-1", "work", 0, true, t0)
	require.NoError(t, err)

	_, err = CancelSession(session)
	require.Error(t, err, "active slot blocks cancellation")

	session, err = CompleteSlot(session, slot.ID, at(60))
	require.NoError(t, err)
	cancelled, err := CancelSession(session)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCancelled, cancelled.Status)

	_, err = CancelSession(cancelled)
	assert.Error(t, err)
}

func TestFindSlot_ByNameOrID(t *testing.T) {
	session, slot, err := AddSlot(startedSession(t), "slot-4", "work", 0, false, t0)
	require.NoError(t, err)

	byName, err := FindSlot(session, "slot-4")
	require.NoError(t, err)
	assert.Equal(t, slot.ID, byName.ID)

	byID, err := FindSlot(session, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, "slot-4", byID.Name)

	_, err = FindSlot(session, "slot-9")
	assert.True(t, errors.Is(err, ErrSlotNotFound))
}

func TestNextSlotName(t *testing.T) {
	sessions := []models.Session{
		{Date: today, Slots: make([]models.Slot, 2)},
		{Date: today, Slots: make([]models.Slot, 1)},
		{Date: "2025-06-14", Slots: make([]models.Slot, 5)},
	}
	assert.Equal(t, "slot-4", NextSlotName(sessions, today))
	assert.Equal(t, "slot-1", NextSlotName(nil, today))
}

func TestSessionsOn_DayOrder(t *testing.T) {
	sessions := []models.Session{
		{ID: "e", Date: today, Type: models.SessionEvening},
		{ID: "m", Date: today, Type: models.SessionMorning},
		{ID: "x", Date: "2025-06-14", Type: models.SessionAfternoon},
	}
	got := SessionsOn(sessions, today)
	require.Len(t, got, 2)
	assert.Equal(t, "m", got[0].ID)
	assert.Equal(t, "e", got[1].ID)
}

func TestReplace(t *testing.T) {
	sessions := []models.Session{{ID: "a"}, {ID: "b"}}

	got := Replace(sessions, models.Session{ID: "b", TotalDuration: 9})
	require.Len(t, got, 2)
	assert.Equal(t, 9, got[1].TotalDuration)
	assert.Equal(t, 0, sessions[1].TotalDuration)

	got = Replace(sessions, models.Session{ID: "c"})
	assert.Len(t, got, 3)
}

func TestFindSession_ByPrefix(t *testing.T) {
	sessions := []models.Session{{ID: "abc123"}, {ID: "abd456"}}

	got, err := FindSession(sessions, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.ID)

	_, err = FindSession(sessions, "ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = FindSession(sessions, "zz")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
