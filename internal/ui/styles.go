package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskeasy/internal/task"
)

type styles struct {
	header   lipgloss.Style
	subtle   lipgloss.Style
	selected lipgloss.Style
	errText  lipgloss.Style
	formBox  lipgloss.Style
	dialog   lipgloss.Style
	label    lipgloss.Style
	priority map[task.Priority]lipgloss.Style
	status   map[task.Status]lipgloss.Style
}

func newStyles() styles {
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		selected: lipgloss.NewStyle().Bold(true),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		formBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		dialog: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1),
		label: lipgloss.NewStyle().Width(12),
		priority: map[task.Priority]lipgloss.Style{
			task.PriorityHigh:   badge.Foreground(lipgloss.Color("196")),
			task.PriorityMedium: badge.Foreground(lipgloss.Color("214")),
			task.PriorityLow:    badge.Foreground(lipgloss.Color("70")),
		},
		status: map[task.Status]lipgloss.Style{
			task.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
			task.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Strikethrough(true),
		},
	}
}

func (s styles) priorityBadge(p task.Priority) string {
	return s.priority[p].Render(p.Label())
}

func (s styles) statusBadge(st task.Status) string {
	return s.status[st].Render(st.Label())
}
