package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/balkashynov/taskmaster/internal/models"
)

// ErrLeaveNotFound is returned when a leave id does not resolve for the user.
var ErrLeaveNotFound = errors.New("leave not found")

// CreateLeaveRequest holds the data needed to record a leave
type CreateLeaveRequest struct {
	UserID   string
	Type     models.LeaveType
	Date     string
	Reason   string
	Document string
	Approved bool
}

// CreateLeave records a day off. Only one leave of a type per day is kept.
func (s *Store) CreateLeave(ctx context.Context, req CreateLeaveRequest) (*models.Leave, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("unknown leave type %q (use sick, mandatory or personal)", req.Type)
	}

	var existing int64
	err := s.db.WithContext(ctx).Model(&models.Leave{}).
		Where("user_id = ? AND date = ? AND type = ?", req.UserID, req.Date, req.Type).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("check leaves: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("a %s leave already exists for %s", req.Type, req.Date)
	}

	leave := models.Leave{
		ID:       uuid.NewString(),
		UserID:   req.UserID,
		Type:     req.Type,
		Date:     req.Date,
		Reason:   strings.TrimSpace(req.Reason),
		Document: strings.TrimSpace(req.Document),
		Approved: req.Approved,
	}
	if err := s.db.WithContext(ctx).Create(&leave).Error; err != nil {
		return nil, fmt.Errorf("create leave: %w", err)
	}
	return &leave, nil
}

// GetLeaves returns the user's leaves ordered by date
func (s *Store) GetLeaves(ctx context.Context, userID string) ([]models.Leave, error) {
	var leaves []models.Leave
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&leaves).Error
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return leaves, nil
}

// ApproveLeave marks a leave as approved
func (s *Store) ApproveLeave(ctx context.Context, userID, id string) (*models.Leave, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty id", ErrLeaveNotFound)
	}

	var leaves []models.Leave
	err := idPrefix(s.db.WithContext(ctx).Where("user_id = ?", userID), id).
		Limit(2).
		Find(&leaves).Error
	if err != nil {
		return nil, fmt.Errorf("get leave: %w", err)
	}
	if len(leaves) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrLeaveNotFound, id)
	}
	if len(leaves) > 1 {
		return nil, fmt.Errorf("leave id %q is ambiguous", id)
	}

	leave := leaves[0]
	if leave.Approved {
		return &leave, nil
	}
	if err := s.db.WithContext(ctx).Model(&leave).Update("approved", true).Error; err != nil {
		return nil, fmt.Errorf("approve leave: %w", err)
	}
	leave.Approved = true
	return &leave, nil
}
