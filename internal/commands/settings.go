package commands

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/balkashynov/taskmaster/internal/config"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.loadSettings(); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "# %s\n", app.ConfigPath)
				if err := toml.NewEncoder(out).Encode(app.Settings); err != nil {
					return err
				}
				fmt.Fprintln(out, "# day-off-interval is informational: leaves are recorded with 'taskmaster leave add'")
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change one setting",
			Long: `Change one setting and save the settings file.

Keys:
  user, session-times.morning, session-times.afternoon, session-times.evening,
  end-of-day, day-off-interval, daily-target-minutes

day-off-interval is kept for reference and exported; no leave is scheduled
from it.

Example:
  taskmaster settings set session-times.morning 08:30`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.loadSettings(); err != nil {
					return err
				}
				updated, err := app.Settings.Set(args[0], args[1])
				if err != nil {
					return err
				}
				if err := config.Save(app.ConfigPath, updated); err != nil {
					return err
				}
				app.Settings = updated
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
				return nil
			},
		},
	)

	return cmd
}
