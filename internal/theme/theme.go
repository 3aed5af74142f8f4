package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the day detail content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// WeekHeaderStyle renders the Sun..Sat column labels above the grid.
var WeekHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGray)

// DayCellStyle is the base style for a day cell in the calendar grid.
var DayCellStyle = lipgloss.NewStyle().
	Padding(0, 1)

// TodayStyle marks the current date in the grid.
var TodayStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// SelectedDayStyle marks the cursor position in the grid.
var SelectedDayStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorYellow).
	Padding(0, 1)

// EmptyCellStyle fills grid slots outside the visible window.
var EmptyCellStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle).
	Padding(0, 1)

// Dot renders the colored marker shown next to an assessment. The color
// comes straight from the record (a hex string such as "#FF6B6B").
func Dot(color string) string {
	if color == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render("●")
}

// UrgencyStyle returns a color-coded style for a due date by how many days
// remain until it. Negative means overdue.
func UrgencyStyle(daysUntil int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case daysUntil < 0:
		return base.Foreground(ColorGray)
	case daysUntil <= 1:
		return base.Foreground(ColorRed)
	case daysUntil <= 3:
		return base.Foreground(ColorOrange)
	case daysUntil <= 7:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGreen)
	}
}

// NotificationStyle returns a style for the notification toggle label.
func NotificationStyle(enabled bool) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	if enabled {
		return base.Foreground(ColorGreen)
	}
	return base.Foreground(ColorGray)
}
