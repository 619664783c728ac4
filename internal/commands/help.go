package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show comprehensive help for taskmaster",
		Long:  `Display detailed help for all taskmaster commands and flags.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), helpText)
		},
	}
}

const helpText = `
taskmaster - study sessions, slot timer and daily tasks

GLOBAL FLAGS:
  --db <file>             SQLite database (default ~/.taskmaster/taskmaster.db)
  --config <file>         Settings file (default ~/.taskmaster/config.toml)
  -v, --verbose           Debug logging and SQL statements

SESSIONS:

  session start [type]    Start a morning|afternoon|evening session
    --date                Session day (today, yesterday, yyyy-mm-dd, 3 days ago)
    -f, --force           Start outside working hours
  session end             End the active session (completes a running slot)
  session cancel [id]     Cancel the active session
  session status          Show the running session and slot
  session ls              List a day's sessions with slot durations
    --date, -a/--all

SLOTS:

  slot add [description]  Add slot-N to the active session (form if empty)
    -e, --estimate        Planned minutes
    -s, --start           Start it right away
    --no-ui               No form, no live timer
  slot start <slot>       Start a pending slot and open the live timer
  slot pause [slot]       Pause or resume
  slot end [slot]         Complete the slot and update the session total
  slot cancel <slot>      Cancel a pending slot
  slot watch [slot]       Reopen the live timer

    Live timer keys:
      p/space       Pause or resume
      e             End the slot
      q/esc         Leave the timer, slot keeps running

TASKS:

  task add <title>        Add a task (--date, -d/--description)
  task ls                 List a day's tasks (--date, -a/--all)
  task done <id>          Mark completed
  task undone <id>        Back to pending
  task incomplete <id>    Mark not finished (-r/--reason required)
  task rm <id>            Delete
  task review             End-of-day review of pending tasks

LEAVES:

  leave add <type>        Record sick|mandatory|personal leave
    --date, -r/--reason, --document, --approved
  leave ls                List leaves
  leave approve <id>      Approve a leave

OTHER:

  stats                   Streak, today's progress and totals
  export                  JSON or YAML snapshot (-f yaml, -o file or -)
  settings show           Print the effective settings
  settings set <k> <v>    Change a setting
                          (day-off-interval is informational only)
  version                 Print version information
  help                    Show this help

`
