package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)

func TestParseDay(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", "2025-03-01"},
		{"today", "2025-03-01"},
		{" Yesterday ", "2025-02-28"},
		{"tomorrow", "2025-03-02"},
		{"2024-12-31", "2024-12-31"},
		{"29/02/2024", "2024-02-29"},
		{"3 days", "2025-03-04"},
		{"1 day ago", "2025-02-28"},
		{"2 weeks ago", "2025-02-15"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDay(tc.input, now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDay_Invalid(t *testing.T) {
	for _, input := range []string{"29/02/2025", "32/01/2025", "someday", "400 days", "2025-13-01"} {
		_, err := ParseDay(input, now)
		assert.Error(t, err, "input=%q", input)
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, 545, got)

	got, err = ParseClock("7:30")
	require.NoError(t, err)
	assert.Equal(t, 450, got)

	for _, bad := range []string{"24:00", "12:60", "noon", "1230", ""} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "input=%q", bad)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "18:15", FormatClock(18*60+15))
}
