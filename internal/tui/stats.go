package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/jobtrack/internal/store"
	"github.com/sadopc/jobtrack/internal/tracker"
)

type statsMode int

const (
	statsByStatus statsMode = iota
	statsByMonth
)

type statsModel struct {
	store   *store.Store
	service *tracker.Service
	width   int
	height  int

	mode  statsMode
	stats tracker.Stats
	apps  []store.Application

	chart barchart.Model
}

func newStatsModel(st *store.Store, svc *tracker.Service) statsModel {
	return statsModel{
		store:   st,
		service: svc,
		chart:   barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type statsDataMsg struct {
	stats tracker.Stats
	apps  []store.Application
}

func (s statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		stats, err := s.service.LoadStats()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		apps, err := s.store.AllApplications()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return statsDataMsg{stats: *stats, apps: apps}
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		s.stats = msg.stats
		s.apps = msg.apps
		s.buildChart()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right):
			if s.mode == statsByStatus {
				s.mode = statsByMonth
			} else {
				s.mode = statsByStatus
			}
			s.buildChart()
			return s, nil
		case key.Matches(msg, keys.Refresh):
			return s, s.refresh()
		}
	}
	return s, nil
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	if s.mode == statsByMonth {
		bars = s.monthBars()
	} else {
		bars = s.statusBars()
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s *statsModel) statusBars() []barchart.BarData {
	counts := s.statusCounts()
	var bars []barchart.BarData
	for _, st := range store.Statuses {
		style := lipgloss.NewStyle().Foreground(statusColor(st))
		bars = append(bars, barchart.BarData{
			Label: string(st),
			Values: []barchart.BarValue{
				{Name: string(st), Value: float64(counts[st]), Style: style},
			},
		})
	}
	return bars
}

// monthBars counts applications by applied month over the last six
// months, oldest first.
func (s *statsModel) monthBars() []barchart.BarData {
	counts := make(map[string]int)
	for _, a := range s.apps {
		counts[a.AppliedDate.Format("2006-01")]++
	}

	today := todayUTC()
	first := time.Date(today.Year(), today.Month()-5, 1, 0, 0, 0, 0, time.UTC)
	style := lipgloss.NewStyle().Foreground(colorPrimary)

	var bars []barchart.BarData
	for i := 0; i < 6; i++ {
		month := first.AddDate(0, i, 0)
		bars = append(bars, barchart.BarData{
			Label: month.Format("Jan"),
			Values: []barchart.BarValue{
				{Name: month.Format("2006-01"), Value: float64(counts[month.Format("2006-01")]), Style: style},
			},
		})
	}
	return bars
}

func (s statsModel) statusCounts() map[store.Status]int {
	counts := make(map[store.Status]int)
	for _, a := range s.apps {
		counts[a.Status]++
	}
	return counts
}

func (s statsModel) view() string {
	w := s.width - 4

	// Mode tabs
	statusTab := inactiveTabStyle.Render("By Status")
	monthTab := inactiveTabStyle.Render("By Month")
	if s.mode == statsByStatus {
		statusTab = activeTabStyle.Render("By Status")
	} else {
		monthTab = activeTabStyle.Render("By Month")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, statusTab, monthTab)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", modeTabs,
	)

	chartView := s.chart.View()
	tableView := s.renderSummaryTable()
	nav := mutedStyle.Render("  ←/→: switch chart")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", nav,
		),
	)
}

func (s statsModel) renderSummaryTable() string {
	if len(s.apps) == 0 {
		return mutedStyle.Render("  No applications to chart yet")
	}

	counts := s.statusCounts()
	var rows []string
	for _, st := range store.Statuses {
		rows = append(rows, fmt.Sprintf("  %s %-13s %4d", statusBadge(st), st, counts[st]))
	}
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %-15s %4d", "Total", s.stats.Total))
	rows = append(rows, fmt.Sprintf("  %-15s %4d", "Cooling off", s.stats.ActiveCoolOffs))
	return strings.Join(rows, "\n")
}
