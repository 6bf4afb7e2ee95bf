package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hollis/muster/internal/model"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	// One style per urgency class
	TaskNormal   lipgloss.Style
	TaskDueSoon  lipgloss.Style
	TaskOverdue  lipgloss.Style
	TaskDeferred lipgloss.Style

	// Overlays layered on top of the urgency style
	TaskDone     lipgloss.Style
	CursorRow    lipgloss.Style
	SelectedMark lipgloss.Style

	// Edit mode
	FieldLabel   lipgloss.Style
	FieldError   lipgloss.Style
	InputFocused lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusMode  lipgloss.Style
	StatusError lipgloss.Style

	// Help overlay
	HelpTitle   lipgloss.Style
	HelpSection lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		TaskNormal: lipgloss.NewStyle().
			Foreground(t.Foreground),

		TaskDueSoon: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		TaskOverdue: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		TaskDeferred: lipgloss.NewStyle().
			Foreground(t.Subtle),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true),

		CursorRow: lipgloss.NewStyle().
			Background(t.Highlight),

		SelectedMark: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		FieldLabel: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Width(12),

		FieldError: lipgloss.NewStyle().
			Foreground(t.Error).
			Italic(true),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Background(t.Highlight).
			Foreground(t.Foreground).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		StatusError: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		HelpTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(1),

		HelpSection: lipgloss.NewStyle().
			Foreground(t.Info).
			Bold(true).
			MarginTop(1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true).
			Width(12),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),
	}
}

// ForUrgency returns the task style matching an urgency class
func (s Styles) ForUrgency(u model.Urgency) lipgloss.Style {
	switch u {
	case model.UrgencyDueSoon:
		return s.TaskDueSoon
	case model.UrgencyOverdue:
		return s.TaskOverdue
	case model.UrgencyDeferred:
		return s.TaskDeferred
	default:
		return s.TaskNormal
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Default,
	Styles: NewStyles(Default),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Default,
		Nord,
		Gruvbox,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Default keeps close to standard terminal ANSI colors so it works on
// light and dark backgrounds alike.
var Default = Theme{
	Name: "default",

	Background: lipgloss.Color("0"),
	Foreground: lipgloss.Color("15"),
	Subtle:     lipgloss.Color("8"),
	Highlight:  lipgloss.Color("237"),
	Border:     lipgloss.Color("8"),

	Primary: lipgloss.Color("6"),
	Success: lipgloss.Color("2"),
	Warning: lipgloss.Color("3"),
	Error:   lipgloss.Color("1"),
	Info:    lipgloss.Color("4"),
}
