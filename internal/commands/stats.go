package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/tracker"
	"github.com/balkashynov/taskmaster/internal/tui"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streak, daily progress and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessions, err := app.loadSessions(ctx)
			if err != nil {
				return err
			}
			tasks, err := app.Store.GetTasks(ctx, app.Settings.User, app.today())
			if err != nil {
				return err
			}
			leaves, err := app.Store.GetLeaves(ctx, app.Settings.User)
			if err != nil {
				return err
			}

			now := app.Now()
			today := app.today()
			minutes := tracker.DayMinutes(sessions, today)
			percent, over := tracker.Progress(minutes, app.Settings.DailyTargetMinutes)

			done := 0
			for _, t := range tasks {
				if t.Status == models.TaskCompleted {
					done++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "🔥 Streak: %d days\n", tracker.Streak(sessions, now))
			fmt.Fprintf(out, "📅 Today: %s of %s (%.0f%%)\n",
				tui.FormatMinutes(minutes), tui.FormatMinutes(app.Settings.DailyTargetMinutes), percent)
			if over > 0 {
				fmt.Fprintf(out, "   %s over target\n", tui.FormatMinutes(over))
			}
			if active, ok := tracker.ActiveSession(sessions); ok {
				fmt.Fprintf(out, "⏱️  %s session running: %s so far\n",
					tui.Capitalize(string(active.Type)), tui.FormatClock(tracker.LiveSessionSeconds(active, now)))
			}
			fmt.Fprintf(out, "✅ Tasks today: %d/%d done\n", done, len(tasks))
			fmt.Fprintf(out, "📊 Total tracked: %s\n", tui.FormatMinutes(tracker.TotalMinutes(sessions)))
			fmt.Fprintf(out, "🌴 Leaves recorded: %d\n", len(leaves))
			return nil
		},
	}
}
