package models

import (
	"time"

	"gorm.io/gorm"
)

// Task is an item on a day's task list
type Task struct {
	ID        string         `gorm:"primaryKey" json:"id" yaml:"id"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" yaml:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" yaml:"-"`

	UserID             string     `gorm:"index;not null" json:"-" yaml:"-"`
	Title              string     `gorm:"not null" json:"title" yaml:"title"`
	Description        string     `json:"description" yaml:"description"`
	Date               string     `gorm:"index;not null" json:"date" yaml:"date"`
	Status             TaskStatus `gorm:"default:pending" json:"status" yaml:"status"`
	IncompletionReason string     `json:"incompletionReason,omitempty" yaml:"incompletionReason,omitempty"`
}
