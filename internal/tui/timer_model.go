package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/timer"
	"github.com/balkashynov/taskmaster/internal/tracker"
)

// PersistFunc stores a session after the timer changed it.
type PersistFunc func(models.Session) error

type timerKeyMap struct {
	Pause key.Binding
	End   key.Binding
	Quit  key.Binding
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.End, k.Quit}
}

func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var timerKeys = timerKeyMap{
	Pause: key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p/space", "pause · resume")),
	End:   key.NewBinding(key.WithKeys("e", "s"), key.WithHelp("e", "end slot")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "exit (keep running)")),
}

// TimerModel is the live view of a session's active slot
type TimerModel struct {
	width  int
	height int

	session models.Session
	slotID  string
	now     func() time.Time
	persist PersistFunc

	keys timerKeyMap
	help help.Model

	// Animation state
	timerAnimation int

	err     error
	ended   bool // slot completed from the timer
	exiting bool // left without ending the slot
}

// timerTickMsg is sent every second to refresh the derived clocks
type timerTickMsg struct{}

// animationTickMsg is sent for faster animations
type animationTickMsg struct{}

// NewTimerModel creates a timer for slotID inside session. now is the clock
// used for every derived value; persist is called after each change.
func NewTimerModel(session models.Session, slotID string, now func() time.Time, persist PersistFunc) TimerModel {
	if now == nil {
		now = time.Now
	}
	return TimerModel{
		session: session,
		slotID:  slotID,
		now:     now,
		persist: persist,
		keys:    timerKeys,
		help:    help.New(),
	}
}

// Session returns the session as last changed by the timer.
func (m TimerModel) Session() models.Session {
	return m.session
}

// Ended reports whether the slot was completed from the timer.
func (m TimerModel) Ended() bool {
	return m.ended
}

// Err returns the last error raised by a key action.
func (m TimerModel) Err() error {
	return m.err
}

func (m TimerModel) slot() models.Slot {
	slot, _ := tracker.FindSlot(m.session, m.slotID)
	return slot
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// Init initializes the timer model
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(timerTick(), animationTick())
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		// Values are derived in View; the tick only triggers a redraw.
		if m.ended || m.exiting {
			return m, nil
		}
		return m, timerTick()

	case animationTickMsg:
		if m.ended || m.exiting {
			return m, nil
		}
		if !m.slot().IsPaused() {
			m.timerAnimation = (m.timerAnimation + 1) % 4
		}
		return m, animationTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Pause):
			updated, err := tracker.TogglePause(m.session, m.slotID, m.now())
			return m.apply(updated, err), nil

		case key.Matches(msg, m.keys.End):
			updated, err := tracker.CompleteSlot(m.session, m.slotID, m.now())
			m = m.apply(updated, err)
			if m.err != nil {
				return m, nil
			}
			m.ended = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit):
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// apply persists a changed session and keeps it only when the write succeeded.
func (m TimerModel) apply(updated models.Session, err error) TimerModel {
	if err != nil {
		m.err = err
		return m
	}
	if m.persist != nil {
		if err := m.persist(updated); err != nil {
			m.err = fmt.Errorf("failed to save session: %w", err)
			return m
		}
	}
	m.session = updated
	m.err = nil
	return m
}

// View renders the timer TUI
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - lipgloss.Height(helpBar) - 1

	// Check if screen is too narrow for split view
	if m.width < 90 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderTimerPanel(m.width, contentHeight),
			helpBar,
		)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2 // -2 for gap

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTimerPanel(leftWidth, contentHeight),
		"  ", // Gap
		m.renderSessionPanel(rightWidth, contentHeight),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		helpBar,
	)
}

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Align(lipgloss.Center).Width(width)
}

// renderTimerPanel renders the left timer panel
func (m TimerModel) renderTimerPanel(width, height int) string {
	slot := m.slot()
	now := m.now()
	var components []string

	headerText := ""
	headerColor := ColorAccentBright
	if slot.IsPaused() {
		headerText = "⏸  PAUSED  ⏸"
		headerColor = ColorWarning
	} else {
		animChars := []string{"⏱", "⏲", "⏱", "⏲"}
		animChar := animChars[m.timerAnimation]
		headerText = fmt.Sprintf("%s  TRACKING %s  %s", animChar, strings.ToUpper(slot.Name), animChar)
	}
	components = append(components, centered(width).
		Foreground(lipgloss.Color(headerColor)).
		Bold(true).
		Render(headerText))

	description := slot.Description
	if width > 4 {
		description = truncate(description, width-4)
	}
	components = append(components, centered(width).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Render(description))

	elapsed, err := timer.LiveElapsedSeconds(slot, now)
	if err != nil {
		elapsed = int64(tracker.SlotMinutes(slot)) * 60
	}
	components = append(components, m.renderCentered(renderBigClock(elapsed, ColorAccentBright), width))

	if slot.IsPaused() {
		pause := timer.LiveElapsedPauseSeconds(slot, now)
		components = append(components, centered(width).
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true).
			Render("paused for "+FormatClock(pause)))
	}

	info := ""
	if slot.StartTime != nil {
		info = fmt.Sprintf("Started at %s", slot.StartTime.Format("15:04:05"))
	}
	if slot.EstimatedDuration > 0 {
		info += fmt.Sprintf(" · planned %dm", slot.EstimatedDuration)
	}
	if slot.TotalPauseDuration > 0 {
		info += fmt.Sprintf(" · paused %s total", FormatClock(int64(slot.TotalPauseDuration)))
	}
	components = append(components, centered(width).
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Render(info))

	if m.err != nil {
		components = append(components, centered(width).
			Foreground(lipgloss.Color(ColorError)).
			Render("❌ "+m.err.Error()))
	}

	content := strings.Join(components, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m TimerModel) renderCentered(block string, width int) string {
	var b strings.Builder
	for i, line := range strings.Split(block, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(centered(width).Render(line))
	}
	return b.String()
}

// renderSessionPanel renders the right panel: the session's slots and totals
func (m TimerModel) renderSessionPanel(width, height int) string {
	var b strings.Builder
	now := m.now()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width-12).
		Padding(0, 1)
	title := fmt.Sprintf("%s session · %s", Capitalize(string(m.session.Type)), m.session.Date)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	completed := 0
	for _, slot := range m.session.Slots {
		icon, color := slotIcon(slot)
		if slot.Status == models.SlotCompleted {
			completed++
		}

		value := "-"
		switch slot.Status {
		case models.SlotCompleted:
			value = FormatMinutes(tracker.SlotMinutes(slot))
		case models.SlotActive:
			if s, err := timer.LiveElapsedSeconds(slot, now); err == nil {
				value = FormatClock(s)
			}
		}

		line := fmt.Sprintf("%s %-8s %-24s %s", icon, slot.Name, truncate(slot.Description, 24), value)
		b.WriteString(centered(width - 8).
			Foreground(lipgloss.Color(color)).
			Render(line))
		b.WriteString("\n")
	}

	separator := strings.Repeat("─", min(width-12, 40))
	b.WriteString("\n")
	b.WriteString(centered(width - 8).Foreground(lipgloss.Color(ColorBorder)).Render(separator))
	b.WriteString("\n\n")

	progress := 0
	if len(m.session.Slots) > 0 {
		progress = completed * 100 / len(m.session.Slots)
	}
	total := tracker.LiveSessionSeconds(m.session, now)
	summary := fmt.Sprintf("📊 %d/%d slots · %d%% · %s worked", completed, len(m.session.Slots), progress, FormatClock(total))
	b.WriteString(centered(width - 8).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Render(summary))

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func slotIcon(slot models.Slot) (string, string) {
	switch {
	case slot.Status == models.SlotActive && slot.IsPaused():
		return "⏸", ColorWarning
	case slot.Status == models.SlotActive:
		return "▶", ColorSuccess
	case slot.Status == models.SlotCompleted:
		return "✅", ColorSecondaryText
	case slot.Status == models.SlotCancelled:
		return "▪", ColorDisabledText
	}
	return "○", ColorPrimaryText
}

// truncate cuts s to n terminal cells, ending in "..." when shortened.
func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "...")
}

// renderHelpBar renders the help bar at the bottom
func (m TimerModel) renderHelpBar() string {
	return centered(m.width).
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render(m.help.View(m.keys))
}

// ASCII art for digits (5 rows each)
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock renders seconds as an ASCII art clock
func renderBigClock(seconds int64, color string) string {
	var lines [5]strings.Builder
	for _, char := range FormatClock(seconds) {
		if art, ok := bigDigits[char]; ok {
			for i := 0; i < 5; i++ {
				lines[i].WriteString(art[i])
				lines[i].WriteString(" ") // Space between digits
			}
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true)

	rendered := make([]string, 5)
	for i := range lines {
		rendered[i] = clockStyle.Render(lines[i].String())
	}
	return strings.Join(rendered, "\n")
}

// FormatClock renders seconds as MM:SS, or HH:MM:SS from one hour up
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatMinutes renders whole minutes as "1h 05m" or "45m"
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes >= 60 {
		return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// Capitalize upper-cases the first letter of s
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
