package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskmaster/internal/db"
	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/parser"
	"github.com/balkashynov/taskmaster/internal/timer"
	"github.com/balkashynov/taskmaster/internal/tracker"
	"github.com/balkashynov/taskmaster/internal/tui"
)

// errNoActiveSession is returned by commands that need a running session.
var errNoActiveSession = errors.New("no active session: start one with 'taskmaster session start'")

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"s"},
		Short:   "Start, end and inspect sessions",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionEndCmd(app),
		newSessionCancelCmd(app),
		newSessionStatusCmd(app),
		newSessionListCmd(app),
	)

	return cmd
}

func newSessionStartCmd(app *App) *cobra.Command {
	var dateFlag string
	var force bool

	cmd := &cobra.Command{
		Use:   "start [morning|afternoon|evening]",
		Short: "Start a session",
		Long: `Start a session. Without a type, the session window containing the current
time is used (morning, afternoon or evening start times from the settings).

Examples:
  taskmaster session start
  taskmaster session start evening
  taskmaster session start morning --date yesterday --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessions, err := app.loadSessions(ctx)
			if err != nil {
				return err
			}
			now := app.Now()

			if !force && !tracker.WithinWorkingHours(now, app.Settings) {
				return fmt.Errorf("outside working hours (%s-%s); use --force to start anyway",
					app.Settings.SessionTimes.Morning, app.Settings.EndOfDay)
			}

			var sessionType models.SessionType
			if len(args) == 1 {
				sessionType = models.SessionType(strings.ToLower(args[0]))
			} else {
				t, ok := tracker.SessionTypeAt(now, app.Settings.SessionTimes)
				if !ok {
					return fmt.Errorf("no session window has opened yet (morning starts at %s); name a session type",
						app.Settings.SessionTimes.Morning)
				}
				sessionType = t
			}

			day := app.today()
			if dateFlag != "" {
				day, err = parser.ParseDay(dateFlag, now)
				if err != nil {
					return err
				}
			}

			sessions, session, err := tracker.StartSession(sessions, sessionType, day, now)
			if err != nil {
				return err
			}
			if err := app.saveSessions(ctx, sessions); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "▶️  Started %s session for %s\n", session.Type, session.Date)
			fmt.Fprintf(out, "Started at: %s\n", session.StartTime.Format("15:04:05"))
			fmt.Fprintln(out, "Add a slot with 'taskmaster slot add \"what you will work on\" --start'")
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Session date: today, yesterday, yyyy-mm-dd, dd/mm/yyyy, X days ago")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Start even outside working hours")

	return cmd
}

func newSessionEndCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the active session, completing any running slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessions, err := app.loadSessions(ctx)
			if err != nil {
				return err
			}
			session, ok := tracker.ActiveSession(sessions)
			if !ok {
				return errNoActiveSession
			}

			ended, err := tracker.EndSession(session, app.Now())
			if err != nil {
				return err
			}
			if err := app.saveSessions(ctx, tracker.Replace(sessions, ended)); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "⏹️  Ended %s session for %s\n", ended.Type, ended.Date)
			fmt.Fprintf(out, "Session total: %s across %d slots\n",
				tui.FormatMinutes(tracker.DeriveSessionDuration(ended)), countSlots(ended, models.SlotCompleted))
			return nil
		},
	}
}

func newSessionCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [session-id]",
		Short: "Cancel the active session, or a pending one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessions, err := app.loadSessions(ctx)
			if err != nil {
				return err
			}

			var session models.Session
			if len(args) == 1 {
				session, err = tracker.FindSession(sessions, args[0])
				if err != nil {
					return err
				}
			} else {
				var ok bool
				if session, ok = tracker.ActiveSession(sessions); !ok {
					return errNoActiveSession
				}
			}

			cancelled, err := tracker.CancelSession(session)
			if err != nil {
				return err
			}
			if err := app.saveSessions(ctx, tracker.Replace(sessions, cancelled)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "🚫 Cancelled %s session for %s\n", cancelled.Type, cancelled.Date)
			return nil
		},
	}
}

func newSessionStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active session and slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.loadSessions(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			session, ok := tracker.ActiveSession(sessions)
			if !ok {
				fmt.Fprintln(out, "No active session")
				return nil
			}

			now := app.Now()
			fmt.Fprintf(out, "⏱️  %s session for %s\n", tui.Capitalize(string(session.Type)), session.Date)
			fmt.Fprintf(out, "Started at: %s\n", session.StartTime.Format("15:04:05"))
			fmt.Fprintf(out, "Worked so far: %s\n", tui.FormatClock(tracker.LiveSessionSeconds(session, now)))

			slot, ok := tracker.ActiveSlot(session)
			if !ok {
				fmt.Fprintln(out, "No active slot")
				return nil
			}
			elapsed, err := timer.LiveElapsedSeconds(slot, now)
			if err != nil {
				return err
			}
			state := "running"
			if slot.IsPaused() {
				state = fmt.Sprintf("paused for %s", tui.FormatClock(timer.LiveElapsedPauseSeconds(slot, now)))
			}
			fmt.Fprintf(out, "Current slot: %s: %s (%s, %s)\n", slot.Name, slot.Description, tui.FormatClock(elapsed), state)
			return nil
		},
	}
}

func newSessionListCmd(app *App) *cobra.Command {
	var dateFlag string
	var all bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List sessions and their slots",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.loadSessions(cmd.Context())
			if err != nil {
				return err
			}
			now := app.Now()

			if !all {
				day := app.today()
				if dateFlag != "" {
					if day, err = parser.ParseDay(dateFlag, now); err != nil {
						return err
					}
				}
				sessions = tracker.SessionsOn(sessions, day)
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found")
				return nil
			}
			for _, s := range sessions {
				printSession(out, s, now)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to list (default today)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every session")

	return cmd
}

func printSession(out io.Writer, s models.Session, now time.Time) {
	total := tui.FormatMinutes(tracker.DeriveSessionDuration(s))
	if s.Status == models.SessionActive {
		total = tui.FormatClock(tracker.LiveSessionSeconds(s, now)) + " so far"
	}
	fmt.Fprintf(out, "%s %s %-9s %-9s %s\n", db.ShortID(s.ID), s.Date, s.Type, s.Status, total)
	for _, slot := range s.Slots {
		fmt.Fprintf(out, "  %-8s %-9s %-6s %s\n", slot.Name, slot.Status, slotValue(slot, now), slot.Description)
	}
}

func slotValue(slot models.Slot, now time.Time) string {
	switch slot.Status {
	case models.SlotCompleted:
		return tui.FormatMinutes(tracker.SlotMinutes(slot))
	case models.SlotActive:
		if elapsed, err := timer.LiveElapsedSeconds(slot, now); err == nil {
			return tui.FormatClock(elapsed)
		}
	}
	return "-"
}

func countSlots(s models.Session, status models.SlotStatus) int {
	n := 0
	for _, slot := range s.Slots {
		if slot.Status == status {
			n++
		}
	}
	return n
}
