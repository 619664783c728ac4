package models

// SessionType names the part of the day a session covers.
type SessionType string

const (
	SessionMorning   SessionType = "morning"
	SessionAfternoon SessionType = "afternoon"
	SessionEvening   SessionType = "evening"
)

// SessionTypes lists the session types in day order.
var SessionTypes = []SessionType{SessionMorning, SessionAfternoon, SessionEvening}

// Valid reports whether t is a known session type.
func (t SessionType) Valid() bool {
	switch t {
	case SessionMorning, SessionAfternoon, SessionEvening:
		return true
	}
	return false
}

type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

type SlotStatus string

const (
	SlotPending   SlotStatus = "pending"
	SlotActive    SlotStatus = "active"
	SlotCompleted SlotStatus = "completed"
	SlotCancelled SlotStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed.
func (s SlotStatus) IsTerminal() bool {
	return s == SlotCompleted || s == SlotCancelled
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskCompleted  TaskStatus = "completed"
	TaskIncomplete TaskStatus = "incomplete"
)

type LeaveType string

const (
	LeaveSick      LeaveType = "sick"
	LeaveMandatory LeaveType = "mandatory"
	LeavePersonal  LeaveType = "personal"
)

// Valid reports whether t is a known leave type.
func (t LeaveType) Valid() bool {
	switch t {
	case LeaveSick, LeaveMandatory, LeavePersonal:
		return true
	}
	return false
}

// DateLayout is the calendar date format used for session, task and leave dates.
const DateLayout = "2006-01-02"
