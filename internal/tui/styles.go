package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#6750A4", Dark: "#D0BCFF"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#1B6C3A", Dark: "#7DDC9B"}
	colorError   = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#F2B8B5"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#8A5100", Dark: "#FFB95C"}
	colorSubtle  = lipgloss.AdaptiveColor{Light: "#79747E", Dark: "#938F99"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#CAC4D0", Dark: "#49454F"}
)

type Styles struct {
	Title   lipgloss.Style
	Normal  lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Subtle  lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Border  lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Normal:  lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(colorSuccess),
		Warning: lipgloss.NewStyle().Foreground(colorWarning),
		Error:   lipgloss.NewStyle().Foreground(colorError),
		Subtle:  lipgloss.NewStyle().Foreground(colorSubtle),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1),
		Cell:    lipgloss.NewStyle().Padding(0, 1),
		Border:  lipgloss.NewStyle().Foreground(colorBorder),
	}
}

// StatusStyle colors a printer or job status.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "IDLE", "PRINTED", "COMPLETE":
		return s.Success
	case "PRINTING", "PENDING", "SPOOLING":
		return s.Warning
	case "STOPPED", "ABORTED", "CANCELLED", "DELETED", "ERROR", "OFFLINE":
		return s.Error
	default:
		return s.Subtle
	}
}
