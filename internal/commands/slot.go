package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/tracker"
	"github.com/balkashynov/taskmaster/internal/tui"
)

func newSlotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Add and time slots inside the active session",
	}

	cmd.AddCommand(
		newSlotAddCmd(app),
		newSlotStartCmd(app),
		newSlotPauseCmd(app),
		newSlotEndCmd(app),
		newSlotCancelCmd(app),
		newSlotWatchCmd(app),
	)

	return cmd
}

// activeSession loads the collection and returns the running session.
func (a *App) activeSession(ctx context.Context) ([]models.Session, models.Session, error) {
	sessions, err := a.loadSessions(ctx)
	if err != nil {
		return nil, models.Session{}, err
	}
	session, ok := tracker.ActiveSession(sessions)
	if !ok {
		return nil, models.Session{}, errNoActiveSession
	}
	return sessions, session, nil
}

// resolveSlot picks the slot named by args, or the active slot without one.
func resolveSlot(session models.Session, args []string) (models.Slot, error) {
	if len(args) > 0 {
		return tracker.FindSlot(session, args[0])
	}
	slot, ok := tracker.ActiveSlot(session)
	if !ok {
		return models.Slot{}, fmt.Errorf("no active slot in the %s session", session.Type)
	}
	return slot, nil
}

// watch opens the live timer on slotID, saving every change it makes.
func (a *App) watch(ctx context.Context, sessions []models.Session, session models.Session, slotID string) error {
	persist := func(updated models.Session) error {
		next := tracker.Replace(sessions, updated)
		if err := a.saveSessions(ctx, next); err != nil {
			return err
		}
		sessions = next
		return nil
	}
	_, err := a.runTimer(session, slotID, a.Now, persist)
	return err
}

func newSlotAddCmd(app *App) *cobra.Command {
	var estimate int
	var start, noUI bool

	cmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Add a slot to the active session",
		Long: `Add a slot to the active session. Slots are named slot-1, slot-2, ... in
the order they are created during the day.

Without a description an interactive form opens (when stdin is a terminal).

Examples:
  taskmaster slot add "Linear algebra, chapter 3" --estimate 45 --start
  taskmaster slot add`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessions, session, err := app.activeSession(ctx)
			if err != nil {
				return err
			}

			name := tracker.NextSlotName(sessions, session.Date)
			description := strings.TrimSpace(strings.Join(args, " "))

			if description == "" {
				if noUI || !app.IsInteractive() {
					return tracker.ErrDescriptionRequired
				}
				_, busy := tracker.ActiveSlot(session)
				input, err := tui.RunSlotForm(name, tui.SlotInput{Estimate: estimate, StartNow: start}, !busy)
				if err != nil {
					return err
				}
				description, estimate, start = input.Description, input.Estimate, input.StartNow
			}

			updated, slot, err := tracker.AddSlot(session, name, description, estimate, start, app.Now())
			if err != nil {
				return err
			}
			sessions = tracker.Replace(sessions, updated)
			if err := app.saveSessions(ctx, sessions); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "➕ Added %s: %s\n", slot.Name, slot.Description)
			if slot.EstimatedDuration > 0 {
				fmt.Fprintf(out, "  Planned: %s\n", tui.FormatMinutes(slot.EstimatedDuration))
			}
			if slot.Status != models.SlotActive {
				return nil
			}
			fmt.Fprintf(out, "⏱️  Started at: %s\n", slot.StartTime.Format("15:04:05"))
			if noUI || !app.IsInteractive() {
				return nil
			}
			return app.watch(ctx, sessions, updated, slot.ID)
		},
	}

	cmd.Flags().IntVarP(&estimate, "estimate", "e", 0, "Planned minutes")
	cmd.Flags().BoolVarP(&start, "start", "s", false, "Start the slot right away")
	cmd.Flags().BoolVar(&noUI, "no-ui", false, "Skip the form and the live timer")

	return cmd
}

func newSlotStartCmd(app *App) *cobra.Command {
	var noUI bool

	cmd := &cobra.Command{
		Use:   "start <slot>",
		Short: "Start a pending slot",
		Long: `Start a pending slot by name (slot-2) or id. Opens the live timer by default,
use --no-ui for a plain start.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessions, session, err := app.activeSession(ctx)
			if err != nil {
				return err
			}
			slot, err := tracker.FindSlot(session, args[0])
			if err != nil {
				return err
			}

			updated, err := tracker.StartSlot(session, slot.ID, app.Now())
			if err != nil {
				return err
			}
			sessions = tracker.Replace(sessions, updated)
			if err := app.saveSessions(ctx, sessions); err != nil {
				return err
			}

			if noUI || !app.IsInteractive() {
				slot, _ = tracker.FindSlot(updated, slot.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "⏱️  Started %s: %s\n", slot.Name, slot.Description)
				fmt.Fprintf(cmd.OutOrStdout(), "Started at: %s\n", slot.StartTime.Format("15:04:05"))
				return nil
			}
			return app.watch(ctx, sessions, updated, slot.ID)
		},
	}

	cmd.Flags().BoolVar(&noUI, "no-ui", false, "Start without the live timer")

	return cmd
}

func newSlotPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "pause [slot]",
		Aliases: []string{"resume"},
		Short:   "Pause or resume the active slot",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessions, session, err := app.activeSession(ctx)
			if err != nil {
				return err
			}
			slot, err := resolveSlot(session, args)
			if err != nil {
				return err
			}

			updated, err := tracker.TogglePause(session, slot.ID, app.Now())
			if err != nil {
				return err
			}
			if err := app.saveSessions(ctx, tracker.Replace(sessions, updated)); err != nil {
				return err
			}

			slot, _ = tracker.FindSlot(updated, slot.ID)
			if slot.IsPaused() {
				fmt.Fprintf(cmd.OutOrStdout(), "⏸️  Paused %s\n", slot.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "▶️  Resumed %s (paused %s in total)\n",
					slot.Name, tui.FormatClock(int64(slot.TotalPauseDuration)))
			}
			return nil
		},
	}
}

func newSlotEndCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "end [slot]",
		Aliases: []string{"done", "stop"},
		Short:   "Complete the active slot",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessions, session, err := app.activeSession(ctx)
			if err != nil {
				return err
			}
			slot, err := resolveSlot(session, args)
			if err != nil {
				return err
			}

			updated, err := tracker.CompleteSlot(session, slot.ID, app.Now())
			if err != nil {
				return err
			}
			if err := app.saveSessions(ctx, tracker.Replace(sessions, updated)); err != nil {
				return err
			}

			slot, _ = tracker.FindSlot(updated, slot.ID)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "⏹️  Ended %s: %s\n", slot.Name, slot.Description)
			fmt.Fprintf(out, "Slot duration: %s · session total: %s\n",
				tui.FormatMinutes(slot.Duration), tui.FormatMinutes(updated.TotalDuration))
			return nil
		},
	}
}

func newSlotCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <slot>",
		Short: "Cancel a pending slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessions, session, err := app.activeSession(ctx)
			if err != nil {
				return err
			}
			slot, err := tracker.FindSlot(session, args[0])
			if err != nil {
				return err
			}

			updated, err := tracker.CancelSlot(session, slot.ID)
			if err != nil {
				return err
			}
			if err := app.saveSessions(ctx, tracker.Replace(sessions, updated)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "🚫 Cancelled %s: %s\n", slot.Name, slot.Description)
			return nil
		},
	}
}

func newSlotWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [slot]",
		Short: "Open the live timer for the active slot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return fmt.Errorf("the live timer needs a terminal; use 'taskmaster session status'")
			}
			ctx := cmd.Context()
			sessions, session, err := app.activeSession(ctx)
			if err != nil {
				return err
			}
			slot, err := resolveSlot(session, args)
			if err != nil {
				return err
			}
			if slot.Status != models.SlotActive {
				return fmt.Errorf("%s is %s, only an active slot can be watched", slot.Name, slot.Status)
			}
			return app.watch(ctx, sessions, session, slot.ID)
		},
	}
}
