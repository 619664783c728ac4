// Package config loads and stores taskmaster settings in a TOML file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/balkashynov/taskmaster/internal/parser"
)

// Settings holds the user's preferences.
type Settings struct {
	// User keys every stored record.
	User         string       `toml:"user"`
	SessionTimes SessionTimes `toml:"session-times"`
	// EndOfDay is when the day closes; no sessions start after it.
	EndOfDay string `toml:"end-of-day"`
	// DayOffInterval is informational: it is exported but schedules nothing.
	DayOffInterval int `toml:"day-off-interval"`
	// DailyTargetMinutes drives the daily progress figure.
	DailyTargetMinutes int `toml:"daily-target-minutes"`
}

// SessionTimes holds the HH:MM start of each session type.
type SessionTimes struct {
	Morning   string `toml:"morning"`
	Afternoon string `toml:"afternoon"`
	Evening   string `toml:"evening"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		User: "default",
		SessionTimes: SessionTimes{
			Morning:   "09:00",
			Afternoon: "14:30",
			Evening:   "18:15",
		},
		EndOfDay:           "22:00",
		DayOffInterval:     15,
		DailyTargetMinutes: 600,
	}
}

// DefaultPath returns ~/.taskmaster/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".taskmaster", "config.toml"), nil
}

// Load reads settings from path. Keys the file does not define keep their
// default values; a missing file yields the defaults.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var fileCfg Settings
	meta, err := toml.Decode(string(data), &fileCfg)
	if err != nil {
		return Settings{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	merged := merge(settings, fileCfg, meta)
	if err := merged.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return merged, nil
}

func merge(base, file Settings, meta toml.MetaData) Settings {
	out := base
	if meta.IsDefined("user") {
		out.User = strings.TrimSpace(file.User)
	}
	if meta.IsDefined("session-times", "morning") {
		out.SessionTimes.Morning = strings.TrimSpace(file.SessionTimes.Morning)
	}
	if meta.IsDefined("session-times", "afternoon") {
		out.SessionTimes.Afternoon = strings.TrimSpace(file.SessionTimes.Afternoon)
	}
	if meta.IsDefined("session-times", "evening") {
		out.SessionTimes.Evening = strings.TrimSpace(file.SessionTimes.Evening)
	}
	if meta.IsDefined("end-of-day") {
		out.EndOfDay = strings.TrimSpace(file.EndOfDay)
	}
	if meta.IsDefined("day-off-interval") {
		out.DayOffInterval = file.DayOffInterval
	}
	if meta.IsDefined("daily-target-minutes") {
		out.DailyTargetMinutes = file.DailyTargetMinutes
	}
	return out
}

// Save writes settings to path, creating the directory if needed.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}

// Validate checks clock formats, ordering and numeric ranges.
func (s Settings) Validate() error {
	if s.User == "" {
		return fmt.Errorf("user must not be empty")
	}

	clocks := []struct {
		key   string
		value string
	}{
		{"session-times.morning", s.SessionTimes.Morning},
		{"session-times.afternoon", s.SessionTimes.Afternoon},
		{"session-times.evening", s.SessionTimes.Evening},
		{"end-of-day", s.EndOfDay},
	}
	minutes := make([]int, len(clocks))
	for i, c := range clocks {
		m, err := parser.ParseClock(c.value)
		if err != nil {
			return fmt.Errorf("%s: %w", c.key, err)
		}
		minutes[i] = m
	}
	if !(minutes[0] < minutes[1] && minutes[1] < minutes[2]) {
		return fmt.Errorf("session times must be in order: morning < afternoon < evening")
	}

	if s.DayOffInterval < 1 {
		return fmt.Errorf("day-off-interval must be at least 1")
	}
	if s.DailyTargetMinutes < 1 {
		return fmt.Errorf("daily-target-minutes must be at least 1")
	}
	return nil
}

// Keys lists the settings accepted by Set.
var Keys = []string{
	"user",
	"session-times.morning",
	"session-times.afternoon",
	"session-times.evening",
	"end-of-day",
	"day-off-interval",
	"daily-target-minutes",
}

// Set returns a copy of s with key changed to value. The result is validated.
func (s Settings) Set(key, value string) (Settings, error) {
	value = strings.TrimSpace(value)
	out := s

	switch key {
	case "user":
		out.User = value
	case "session-times.morning":
		out.SessionTimes.Morning = value
	case "session-times.afternoon":
		out.SessionTimes.Afternoon = value
	case "session-times.evening":
		out.SessionTimes.Evening = value
	case "end-of-day":
		out.EndOfDay = value
	case "day-off-interval", "daily-target-minutes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return s, fmt.Errorf("%s must be a whole number", key)
		}
		if key == "day-off-interval" {
			out.DayOffInterval = n
		} else {
			out.DailyTargetMinutes = n
		}
	default:
		return s, fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}

	if err := out.Validate(); err != nil {
		return s, err
	}
	return out, nil
}
