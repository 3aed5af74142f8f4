package app

import "github.com/charmbracelet/lipgloss"

// ApplyTheme forces the adaptive palette onto a dark or light background.
// "auto" leaves lipgloss's terminal detection alone.
func ApplyTheme(name string) {
	switch name {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}
