package tui

// Palette shared by the live timer and the forms.
const (
	ColorBorder = "#3A3F55"

	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7" // finished slots, timer footnotes
	ColorDisabledText  = "#6D7383" // cancelled slots
	ColorPlaceholder   = "#8A90A2" // empty form inputs
	ColorHelpText      = "240"

	ColorAccentMain   = "#7C3AED" // panel borders, focused form field
	ColorAccentBright = "#A78BFA" // running clock, form titles

	// Slot and validation states
	ColorSuccess = "#22C55E" // running slot
	ColorWarning = "#F59E0B" // paused slot
	ColorError   = "#EF4444"
)
