package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskmaster/internal/db"
	"github.com/balkashynov/taskmaster/internal/models"
)

func newLeaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Record days off",
	}

	cmd.AddCommand(
		newLeaveAddCmd(app),
		newLeaveListCmd(app),
		newLeaveApproveCmd(app),
	)

	return cmd
}

func newLeaveAddCmd(app *App) *cobra.Command {
	var dateFlag, reason, document string
	var approved bool

	cmd := &cobra.Command{
		Use:   "add <sick|mandatory|personal>",
		Short: "Record a leave",
		Long: `Record a leave for a day (today by default).

Examples:
  taskmaster leave add sick --reason "flu" --document note.pdf
  taskmaster leave add personal --date 2025-07-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			day, err := app.dayFlag(dateFlag)
			if err != nil {
				return err
			}

			leave, err := app.Store.CreateLeave(cmd.Context(), db.CreateLeaveRequest{
				UserID:   app.Settings.User,
				Type:     models.LeaveType(strings.ToLower(args[0])),
				Date:     day,
				Reason:   reason,
				Document: document,
				Approved: approved,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "🌴 Recorded %s leave %s for %s\n", leave.Type, db.ShortID(leave.ID), leave.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day of the leave (default today)")
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Reason")
	cmd.Flags().StringVar(&document, "document", "", "Supporting document path or reference")
	cmd.Flags().BoolVar(&approved, "approved", false, "Record the leave as already approved")

	return cmd
}

func newLeaveListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List recorded leaves",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			leaves, err := app.Store.GetLeaves(cmd.Context(), app.Settings.User)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(leaves) == 0 {
				fmt.Fprintln(out, "No leaves recorded")
				return nil
			}
			for _, l := range leaves {
				state := "pending"
				if l.Approved {
					state = "approved"
				}
				fmt.Fprintf(out, "%s %s %-9s %-8s %s\n", db.ShortID(l.ID), l.Date, l.Type, state, l.Reason)
			}
			return nil
		},
	}
}

func newLeaveApproveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <leave-id>",
		Short: "Approve a leave",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			leave, err := app.Store.ApproveLeave(cmd.Context(), app.Settings.User, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Approved %s leave for %s\n", leave.Type, leave.Date)
			return nil
		},
	}
}
