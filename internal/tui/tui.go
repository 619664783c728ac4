package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/tracker"
)

// RunSlotTimer opens the live timer for slotID and returns the session as
// it stood when the timer closed. now is the clock the timer reads. Every
// pause, resume and end is handed to persist before the view moves on.
func RunSlotTimer(session models.Session, slotID string, now func() time.Time, persist PersistFunc) (models.Session, error) {
	model := NewTimerModel(session, slotID, now, persist)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return session, err
	}

	timerModel, ok := finalModel.(TimerModel)
	if !ok {
		return session, fmt.Errorf("unexpected timer model %T", finalModel)
	}

	final := timerModel.Session()
	slot, _ := tracker.FindSlot(final, slotID)
	if timerModel.Ended() {
		fmt.Printf("⏹️  Ended %s: %s\n", slot.Name, slot.Description)
		fmt.Printf("📊 Slot duration: %s · session total: %s\n",
			FormatMinutes(slot.Duration), FormatMinutes(final.TotalDuration))
	} else {
		state := "running"
		if slot.IsPaused() {
			state = "paused"
		}
		fmt.Printf("\n💡 %s is still %s: %s\n", slot.Name, state, slot.Description)
		fmt.Printf("   Use 'taskmaster slot watch' to reopen the timer or 'taskmaster slot end' to finish it.\n")
	}

	return final, timerModel.Err()
}
