package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskmaster/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	var formatFlag, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as JSON or YAML",
		Long: `Export sessions, tasks, leaves and settings. Writes
taskmaster_data_<date>.<format> in the current directory unless --output is
given; use --output - for stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			sessions, err := app.loadSessions(ctx)
			if err != nil {
				return err
			}
			tasks, err := app.Store.GetTasks(ctx, app.Settings.User, "")
			if err != nil {
				return err
			}
			leaves, err := app.Store.GetLeaves(ctx, app.Settings.User)
			if err != nil {
				return err
			}

			now := app.Now()
			snap := export.Build(app.Settings, sessions, tasks, leaves, now)

			if output == "-" {
				return export.Write(cmd.OutOrStdout(), snap, format)
			}
			if output == "" {
				output = export.FileName(now, format)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			if err := export.Write(f, snap, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "📦 Exported %d sessions, %d tasks, %d leaves to %s\n",
				len(sessions), len(tasks), len(leaves), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout")

	return cmd
}
