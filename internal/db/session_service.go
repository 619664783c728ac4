package db

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/balkashynov/taskmaster/internal/models"
)

// SessionRepository loads and stores a user's whole session collection.
type SessionRepository interface {
	Load(ctx context.Context, userID string) ([]models.Session, error)
	Save(ctx context.Context, userID string, sessions []models.Session) error
}

var _ SessionRepository = (*Store)(nil)

// Load returns every session of userID with its slots in creation order.
func (s *Store) Load(ctx context.Context, userID string) ([]models.Session, error) {
	var sessions []models.Session

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("date ASC, start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	for i := range sessions {
		if sessions[i].Slots == nil {
			sessions[i].Slots = []models.Slot{}
		}
	}
	return sessions, nil
}

// Save replaces the stored collection of userID with sessions in a single
// transaction. The argument is not modified.
func (s *Store) Save(ctx context.Context, userID string, sessions []models.Session) error {
	rows := make([]models.Session, len(sessions))
	for i, session := range sessions {
		row := session.Clone()
		row.UserID = userID
		for j := range row.Slots {
			row.Slots[j].SessionID = row.ID
			row.Slots[j].Position = j
		}
		rows[i] = row
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Session{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("session_id IN (?)", owned).Delete(&models.Slot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}

	slog.DebugContext(ctx, "sessions saved", "user", userID, "count", len(rows))
	return nil
}
