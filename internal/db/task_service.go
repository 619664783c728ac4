package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balkashynov/taskmaster/internal/models"
)

// ErrTaskNotFound is returned when a task id does not resolve for the user.
var ErrTaskNotFound = errors.New("task not found")

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	UserID      string
	Title       string
	Description string
	Date        string
}

// CreateTask creates a new pending task
func (s *Store) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("task title is required")
	}

	task := models.Task{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Date:        req.Date,
		Status:      models.TaskPending,
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return &task, nil
}

// GetTasks returns the user's tasks, limited to date when it is non-empty
func (s *Store) GetTasks(ctx context.Context, userID, date string) ([]models.Task, error) {
	var tasks []models.Task

	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if err := q.Order("date ASC, created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// GetTaskByID retrieves a task by ID or by a unique ID prefix
func (s *Store) GetTaskByID(ctx context.Context, userID, id string) (*models.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty id", ErrTaskNotFound)
	}

	var tasks []models.Task

	err := idPrefix(s.db.WithContext(ctx).Where("user_id = ?", userID), id).
		Limit(2).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	switch len(tasks) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	case 1:
		return &tasks[0], nil
	default:
		return nil, fmt.Errorf("task id %q is ambiguous", id)
	}
}

// MarkTaskDone marks a task as completed and clears any incompletion reason
func (s *Store) MarkTaskDone(ctx context.Context, userID, id string) (*models.Task, error) {
	task, err := s.GetTaskByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	task.Status = models.TaskCompleted
	task.IncompletionReason = ""

	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// MarkTaskIncomplete records why a task was not finished
func (s *Store) MarkTaskIncomplete(ctx context.Context, userID, id, reason string) (*models.Task, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("a reason is required to mark a task incomplete")
	}

	task, err := s.GetTaskByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	task.Status = models.TaskIncomplete
	task.IncompletionReason = reason

	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// MarkTaskPending reopens a task
func (s *Store) MarkTaskPending(ctx context.Context, userID, id string) (*models.Task, error) {
	task, err := s.GetTaskByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if task.Status == models.TaskPending {
		return nil, fmt.Errorf("task %s is already pending", ShortID(task.ID))
	}

	task.Status = models.TaskPending
	task.IncompletionReason = ""

	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// RemoveTask deletes a task
func (s *Store) RemoveTask(ctx context.Context, userID, id string) (*models.Task, error) {
	task, err := s.GetTaskByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(task).Error; err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	return task, nil
}

// idPrefix narrows q to rows whose id starts with ref, taken literally.
func idPrefix(q *gorm.DB, ref string) *gorm.DB {
	return q.Where("substr(id, 1, length(?)) = ?", ref, ref)
}

// ShortID is the id prefix shown in listings and accepted as a reference
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
