package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/taskmaster/internal/models"
)

// ErrCancelled is returned when the user aborts a form.
var ErrCancelled = errors.New("cancelled")

func formTheme() *huh.Theme {
	t := huh.ThemeCharm()
	t.Focused.Title = t.Focused.Title.Foreground(lipgloss.Color(ColorAccentBright))
	t.Focused.Base = t.Focused.Base.BorderForeground(lipgloss.Color(ColorAccentMain))
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(lipgloss.Color(ColorPlaceholder))
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(lipgloss.Color(ColorError))
	return t
}

func runForm(form *huh.Form) error {
	err := form.WithTheme(formTheme()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

// SlotInput is what the slot form collects.
type SlotInput struct {
	Description string
	Estimate    int
	StartNow    bool
}

func validateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}

func validateOptionalMinutes(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a whole number of minutes")
	}
	return nil
}

// RunSlotForm asks for a new slot's description, planned minutes and
// whether to start it. canStart is false while another slot is active.
func RunSlotForm(name string, prefill SlotInput, canStart bool) (SlotInput, error) {
	description := prefill.Description
	estimate := ""
	if prefill.Estimate > 0 {
		estimate = strconv.Itoa(prefill.Estimate)
	}
	startNow := prefill.StartNow && canStart

	fields := []huh.Field{
		huh.NewInput().
			Title(fmt.Sprintf("What will you work on in %s?", name)).
			Value(&description).
			Validate(validateDescription),
		huh.NewInput().
			Title("Planned minutes (optional)").
			Placeholder("45").
			Value(&estimate).
			Validate(validateOptionalMinutes),
	}
	if canStart {
		fields = append(fields, huh.NewConfirm().
			Title("Start it now?").
			Value(&startNow))
	} else {
		fields = append(fields, huh.NewNote().
			Title("Another slot is active").
			Description("The slot will be created as pending. Complete the active slot first."))
	}

	if err := runForm(huh.NewForm(huh.NewGroup(fields...))); err != nil {
		return SlotInput{}, err
	}

	minutes, _ := strconv.Atoi(strings.TrimSpace(estimate))
	return SlotInput{
		Description: strings.TrimSpace(description),
		Estimate:    minutes,
		StartNow:    startNow,
	}, nil
}

// ReviewDecision is the outcome chosen for one task in the end-of-day review.
type ReviewDecision struct {
	TaskID string
	Status models.TaskStatus
	Reason string
}

// RunEndOfDayReview walks the pending tasks and asks, for each, whether it
// was completed or left incomplete (with a reason). Tasks left pending are
// omitted from the result.
func RunEndOfDayReview(tasks []models.Task) ([]ReviewDecision, error) {
	statuses := make([]models.TaskStatus, len(tasks))
	reasons := make([]string, len(tasks))

	var groups []*huh.Group
	for i, task := range tasks {
		statuses[i] = models.TaskCompleted

		title := task.Title
		if task.Description != "" {
			title += ": " + task.Description
		}
		groups = append(groups,
			huh.NewGroup(
				huh.NewSelect[models.TaskStatus]().
					Title(title).
					Options(
						huh.NewOption("Completed", models.TaskCompleted),
						huh.NewOption("Incomplete", models.TaskIncomplete),
						huh.NewOption("Leave pending", models.TaskPending),
					).
					Value(&statuses[i]),
			),
			huh.NewGroup(
				huh.NewText().
					Title(fmt.Sprintf("Why wasn't %q finished?", task.Title)).
					Value(&reasons[i]).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("a reason is required")
						}
						return nil
					}),
			).WithHideFunc(func() bool {
				return statuses[i] != models.TaskIncomplete
			}),
		)
	}

	if err := runForm(huh.NewForm(groups...)); err != nil {
		return nil, err
	}

	var decisions []ReviewDecision
	for i, task := range tasks {
		if statuses[i] == models.TaskPending {
			continue
		}
		decision := ReviewDecision{TaskID: task.ID, Status: statuses[i]}
		if statuses[i] == models.TaskIncomplete {
			decision.Reason = strings.TrimSpace(reasons[i])
		}
		decisions = append(decisions, decision)
	}
	return decisions, nil
}
