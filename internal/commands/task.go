package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskmaster/internal/db"
	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/parser"
	"github.com/balkashynov/taskmaster/internal/tui"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage the daily task list",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
		newTaskUndoneCmd(app),
		newTaskIncompleteCmd(app),
		newTaskRemoveCmd(app),
		newTaskReviewCmd(app),
	)

	return cmd
}

// dayFlag resolves a --date value, defaulting to today.
func (a *App) dayFlag(value string) (string, error) {
	if value == "" {
		return a.today(), nil
	}
	return parser.ParseDay(value, a.Now())
}

func newTaskAddCmd(app *App) *cobra.Command {
	var description, dateFlag string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task for a day",
		Long: `Add a task to a day's list (today by default).

Examples:
  taskmaster task add "Finish problem set 4"
  taskmaster task add "Read chapter 5" --date tomorrow -d "pages 80-120"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			day, err := app.dayFlag(dateFlag)
			if err != nil {
				return err
			}

			task, err := app.Store.CreateTask(cmd.Context(), db.CreateTaskRequest{
				UserID:      app.Settings.User,
				Title:       strings.Join(args, " "),
				Description: description,
				Date:        day,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", db.ShortID(task.ID), task.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "  Date: %s\n", task.Date)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Task details")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Day of the task (default today)")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var dateFlag string
	var all bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks for a day",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			day := ""
			if !all {
				var err error
				if day, err = app.dayFlag(dateFlag); err != nil {
					return err
				}
			}

			tasks, err := app.Store.GetTasks(cmd.Context(), app.Settings.User, day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found")
				return nil
			}
			printTasks(out, tasks)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to list (default today)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "List tasks of every day")

	return cmd
}

func taskIcon(status models.TaskStatus) string {
	switch status {
	case models.TaskCompleted:
		return "✅"
	case models.TaskIncomplete:
		return "❌"
	}
	return "○"
}

func printTasks(out io.Writer, tasks []models.Task) {
	done := 0
	for _, task := range tasks {
		if task.Status == models.TaskCompleted {
			done++
		}
		fmt.Fprintf(out, "%s %s %s %s\n", taskIcon(task.Status), db.ShortID(task.ID), task.Date, task.Title)
		if task.Description != "" {
			fmt.Fprintf(out, "    %s\n", task.Description)
		}
		if task.IncompletionReason != "" {
			fmt.Fprintf(out, "    reason: %s\n", task.IncompletionReason)
		}
	}
	fmt.Fprintf(out, "%d/%d done\n", done, len(tasks))
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			task, err := app.Store.MarkTaskDone(cmd.Context(), app.Settings.User, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Marked task %s as done: %s\n", db.ShortID(task.ID), task.Title)
			return nil
		},
	}
}

func newTaskUndoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undone <task-id>",
		Short: "Move a task back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			task, err := app.Store.MarkTaskPending(cmd.Context(), app.Settings.User, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "↩️  Marked task %s back to pending: %s\n", db.ShortID(task.ID), task.Title)
			return nil
		},
	}
}

func newTaskIncompleteCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "incomplete <task-id>",
		Short: "Mark a task as not finished, with a reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			task, err := app.Store.MarkTaskIncomplete(cmd.Context(), app.Settings.User, args[0], reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "❌ Marked task %s as incomplete: %s\n", db.ShortID(task.ID), task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Why the task was not finished")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"remove"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			task, err := app.Store.RemoveTask(cmd.Context(), app.Settings.User, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed task %s: %s\n", db.ShortID(task.ID), task.Title)
			return nil
		},
	}
}

func newTaskReviewCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "End-of-day review of pending tasks",
		Long: `Walk through the day's pending tasks and mark each completed or incomplete.
Incomplete tasks need a reason. Without a terminal the pending tasks are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			ctx := cmd.Context()
			day, err := app.dayFlag(dateFlag)
			if err != nil {
				return err
			}

			tasks, err := app.Store.GetTasks(ctx, app.Settings.User, day)
			if err != nil {
				return err
			}
			var pending []models.Task
			for _, task := range tasks {
				if task.Status == models.TaskPending {
					pending = append(pending, task)
				}
			}

			out := cmd.OutOrStdout()
			if len(pending) == 0 {
				fmt.Fprintf(out, "Nothing left to review for %s\n", day)
				return nil
			}
			if !app.IsInteractive() {
				fmt.Fprintf(out, "%d pending tasks for %s:\n", len(pending), day)
				printTasks(out, pending)
				fmt.Fprintln(out, "Use 'taskmaster task done <id>' or 'taskmaster task incomplete <id> -r <reason>'")
				return nil
			}

			decisions, err := tui.RunEndOfDayReview(pending)
			if err != nil {
				return err
			}
			for _, d := range decisions {
				switch d.Status {
				case models.TaskCompleted:
					_, err = app.Store.MarkTaskDone(ctx, app.Settings.User, d.TaskID)
				case models.TaskIncomplete:
					_, err = app.Store.MarkTaskIncomplete(ctx, app.Settings.User, d.TaskID, d.Reason)
				}
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Reviewed %d of %d pending tasks for %s\n", len(decisions), len(pending), day)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to review (default today)")

	return cmd
}
