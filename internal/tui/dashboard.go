package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/jobtrack/internal/cooloff"
	"github.com/sadopc/jobtrack/internal/store"
	"github.com/sadopc/jobtrack/internal/tracker"
)

type dashboardModel struct {
	service *tracker.Service
	width   int
	height  int

	stats    tracker.Stats
	coolOffs []store.Application
	recent   []store.Application
}

func newDashboardModel(svc *tracker.Service) dashboardModel {
	return dashboardModel{service: svc}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	stats    tracker.Stats
	coolOffs []store.Application
	recent   []store.Application
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		stats, err := d.service.LoadStats()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		coolOffs, err := d.service.ActiveCoolOffs()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		if len(coolOffs) > 5 {
			coolOffs = coolOffs[:5]
		}
		page, err := d.service.LoadPage(1, 5)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return dashboardDataMsg{
			stats:    *stats,
			coolOffs: coolOffs,
			recent:   page.Applications,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.stats = msg.stats
		d.coolOffs = msg.coolOffs
		d.recent = msg.recent
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Refresh):
			return d, d.loadData()
		}
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	statsPanel := d.renderStatsPanel(contentWidth)
	coolOffPanel := d.renderCoolOffPanel(contentWidth)
	recentPanel := d.renderRecentPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, statsPanel, coolOffPanel, recentPanel)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	tileWidth := max(12, (w-8)/4)
	tile := func(value int, label string) string {
		return lipgloss.JoinVertical(lipgloss.Center,
			statValueStyle.Width(tileWidth).Render(fmt.Sprintf("%d", value)),
			statLabelStyle.Width(tileWidth).Render(label),
		)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		tile(d.stats.Total, "Tracked"),
		tile(d.stats.Interviewing, "Interviewing"),
		tile(d.stats.Offers, "Offers"),
		tile(d.stats.ActiveCoolOffs, "Cooling off"),
	)
	return panelStyle.Width(w).Render(row)
}

func (d dashboardModel) renderCoolOffPanel(w int) string {
	title := titleStyle.Render("Cool-off Windows")
	if len(d.coolOffs) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing cooling off. Every company is open again."),
		)
		return panelStyle.Width(w).Render(content)
	}

	today := todayUTC()
	var rows []string
	rows = append(rows, title)
	for _, a := range d.coolOffs {
		days := cooloff.DaysRemaining(a.CoolOffEnds, today)
		row := fmt.Sprintf("  %s %-24s %s  %s",
			statusBadge(a.Status),
			a.Company,
			formatDate(a.CoolOffEnds),
			warningStyle.Render(daysLeftLabel(days)),
		)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Applications")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No applications yet. Press 2 to go to Applications and add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, a := range d.recent {
		row := fmt.Sprintf("  %s %-24s %-24s %s",
			statusBadge(a.Status),
			a.Company,
			a.JobTitle,
			mutedStyle.Render(formatDate(a.AppliedDate)),
		)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
