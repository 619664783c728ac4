// Package export writes a full snapshot of a user's data as JSON or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/balkashynov/taskmaster/internal/config"
	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/tracker"
)

// Format selects the snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q (use json or yaml)", s)
}

// Snapshot is everything stored for one user.
type Snapshot struct {
	User       string          `json:"user" yaml:"user"`
	ExportDate time.Time       `json:"exportDate" yaml:"exportDate"`
	Settings   SettingsExport  `json:"settings" yaml:"settings"`
	Sessions   []SessionExport `json:"sessions" yaml:"sessions"`
	Tasks      []models.Task   `json:"tasks" yaml:"tasks"`
	Leaves     []models.Leave  `json:"leaves" yaml:"leaves"`
	Summary    SummaryExport   `json:"summary" yaml:"summary"`
}

// SessionExport is a stored session plus its derived duration.
type SessionExport struct {
	models.Session `yaml:",inline"`

	DerivedDuration int `json:"derivedDuration" yaml:"derivedDuration"`
}

// SettingsExport mirrors config.Settings with export field names.
type SettingsExport struct {
	SessionTimes       config.SessionTimes `json:"sessionTimes" yaml:"sessionTimes"`
	EndOfDay           string              `json:"endOfDayTime" yaml:"endOfDayTime"`
	DayOffInterval     int                 `json:"dayOffInterval" yaml:"dayOffInterval"`
	DailyTargetMinutes int                 `json:"dailyTargetMinutes" yaml:"dailyTargetMinutes"`
}

// SummaryExport carries the headline figures at export time.
type SummaryExport struct {
	TotalMinutes int `json:"totalMinutes" yaml:"totalMinutes"`
	Streak       int `json:"streak" yaml:"streak"`
}

// Build assembles a snapshot. Durations come from tracker so the export
// agrees with every other view of the data.
func Build(settings config.Settings, sessions []models.Session, tasks []models.Task, leaves []models.Leave, now time.Time) Snapshot {
	out := Snapshot{
		User:       settings.User,
		ExportDate: now,
		Settings: SettingsExport{
			SessionTimes:       settings.SessionTimes,
			EndOfDay:           settings.EndOfDay,
			DayOffInterval:     settings.DayOffInterval,
			DailyTargetMinutes: settings.DailyTargetMinutes,
		},
		Sessions: make([]SessionExport, 0, len(sessions)),
		Tasks:    tasks,
		Leaves:   leaves,
		Summary: SummaryExport{
			TotalMinutes: tracker.TotalMinutes(sessions),
			Streak:       tracker.Streak(sessions, now),
		},
	}
	if out.Tasks == nil {
		out.Tasks = []models.Task{}
	}
	if out.Leaves == nil {
		out.Leaves = []models.Leave{}
	}
	for _, s := range sessions {
		out.Sessions = append(out.Sessions, SessionExport{
			Session:         s,
			DerivedDuration: tracker.DeriveSessionDuration(s),
		})
	}
	return out
}

// Write encodes snap to w.
func Write(w io.Writer, snap Snapshot, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// FileName is the default export file name for now.
func FileName(now time.Time, format Format) string {
	return fmt.Sprintf("taskmaster_data_%s.%s", now.Format(models.DateLayout), format)
}
