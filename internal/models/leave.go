package models

import "time"

// Leave records a day off
type Leave struct {
	ID        string    `gorm:"primaryKey" json:"id" yaml:"id"`
	CreatedAt time.Time `json:"-" yaml:"-"`

	UserID   string    `gorm:"index;not null" json:"-" yaml:"-"`
	Type     LeaveType `gorm:"not null" json:"type" yaml:"type"`
	Date     string    `gorm:"index;not null" json:"date" yaml:"date"`
	Reason   string    `json:"reason" yaml:"reason"`
	Document string    `json:"document,omitempty" yaml:"document,omitempty"`
	Approved bool      `gorm:"default:false" json:"approved" yaml:"approved"`
}
