package models

import (
	"time"
)

// Session is one part of a calendar day (morning, afternoon or evening)
// holding the slots worked during it.
type Session struct {
	ID        string    `gorm:"primaryKey" json:"id" yaml:"id"`
	CreatedAt time.Time `json:"-" yaml:"-"`
	UpdatedAt time.Time `json:"-" yaml:"-"`

	UserID        string        `gorm:"not null;uniqueIndex:idx_session_user_date_type" json:"-" yaml:"-"`
	Date          string        `gorm:"not null;uniqueIndex:idx_session_user_date_type" json:"date" yaml:"date"`
	Type          SessionType   `gorm:"not null;uniqueIndex:idx_session_user_date_type" json:"type" yaml:"type"`
	StartTime     *time.Time    `json:"startTime" yaml:"startTime"`
	EndTime       *time.Time    `json:"endTime" yaml:"endTime"`
	Status        SessionStatus `gorm:"not null;default:pending" json:"status" yaml:"status"`
	TotalDuration int           `json:"totalDuration" yaml:"totalDuration"` // minutes

	// Relationships
	Slots []Slot `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"slots" yaml:"slots"`
}

// Slot is a single timed unit of work inside a session.
type Slot struct {
	ID        string `gorm:"primaryKey" json:"id" yaml:"id"`
	SessionID string `gorm:"index;not null" json:"-" yaml:"-"`
	Position  int    `gorm:"not null;default:0" json:"-" yaml:"-"`

	Name              string     `json:"name" yaml:"name"`
	Description       string     `gorm:"not null" json:"description" yaml:"description"`
	EstimatedDuration int        `json:"estimatedDuration" yaml:"estimatedDuration"` // minutes, informational
	Status            SlotStatus `gorm:"not null;default:pending" json:"status" yaml:"status"`
	StartTime         *time.Time `json:"startTime" yaml:"startTime"`
	EndTime           *time.Time `json:"endTime" yaml:"endTime"`
	PauseStartTime    *time.Time `json:"pauseStartTime" yaml:"pauseStartTime"`

	// TotalPauseDuration accumulates closed pause intervals, in seconds.
	TotalPauseDuration float64 `json:"totalPauseDuration" yaml:"totalPauseDuration"`
	// Duration is frozen at completion, in whole minutes.
	Duration int `json:"duration" yaml:"duration"`
}

// IsPaused reports whether the slot has an open pause interval.
func (s Slot) IsPaused() bool {
	return s.PauseStartTime != nil
}

// Clone returns a copy of the session whose slot slice can be modified
// without affecting the original.
func (s Session) Clone() Session {
	out := s
	if s.Slots != nil {
		out.Slots = make([]Slot, len(s.Slots))
		copy(out.Slots, s.Slots)
	}
	return out
}
