package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/balkashynov/taskmaster/internal/config"
	"github.com/balkashynov/taskmaster/internal/db"
	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// App carries what every command needs: settings, storage and a clock.
type App struct {
	Settings   config.Settings
	ConfigPath string
	Store      *db.Store

	// Now is the clock used by every command.
	Now func() time.Time
	// IsInteractive decides whether forms and the live timer may open.
	IsInteractive func() bool

	runTimer func(models.Session, string, func() time.Time, tui.PersistFunc) (models.Session, error)

	dbPath  string
	verbose bool
	stderr  io.Writer
}

// NewApp returns an App that uses the wall clock and a TTY check on stdin.
func NewApp() *App {
	return &App{
		Now: time.Now,
		IsInteractive: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		runTimer: tui.RunSlotTimer,
		stderr:   os.Stderr,
	}
}

// NewRootCmd creates the top-level "taskmaster" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskmaster",
		Short: "A study session and slot timer",
		Long: `taskmaster tracks morning, afternoon and evening sessions split into timed
slots, along with a daily task list, leaves and progress stats.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.setupLogging()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&app.dbPath, "db", "", "SQLite database file (default ~/.taskmaster/taskmaster.db)")
	root.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "settings file (default ~/.taskmaster/config.toml)")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "log debug output and SQL statements")

	root.AddCommand(
		newSessionCmd(app),
		newSlotCmd(app),
		newTaskCmd(app),
		newLeaveCmd(app),
		newSettingsCmd(app),
		newStatsCmd(app),
		newExportCmd(app),
		newVersionCmd(),
	)
	root.SetHelpCommand(newHelpCmd())

	return root
}

func (a *App) setupLogging() {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	w := a.stderr
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadSettings reads the settings file once.
func (a *App) loadSettings() error {
	if a.ConfigPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		a.ConfigPath = p
	}
	settings, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	a.Settings = settings
	return nil
}

// open loads settings and opens the database unless already done.
func (a *App) open() error {
	if a.Store != nil {
		return nil
	}
	if err := a.loadSettings(); err != nil {
		return err
	}
	store, err := db.Open(db.Options{Path: a.dbPath, Verbose: a.verbose})
	if err != nil {
		return err
	}
	a.Store = store
	slog.Debug("store opened", "user", a.Settings.User, "config", a.ConfigPath)
	return nil
}

// Close releases the database.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	err := a.Store.Close()
	a.Store = nil
	return err
}

func (a *App) today() string {
	return a.Now().Format(models.DateLayout)
}

func (a *App) loadSessions(ctx context.Context) ([]models.Session, error) {
	if err := a.open(); err != nil {
		return nil, err
	}
	return a.Store.Load(ctx, a.Settings.User)
}

func (a *App) saveSessions(ctx context.Context, sessions []models.Session) error {
	if err := a.Store.Save(ctx, a.Settings.User, sessions); err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}
	return nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	app := NewApp()
	defer app.Close()
	return NewRootCmd(app).Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskmaster %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
