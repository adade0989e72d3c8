package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/jobtrack/internal/migrate"
)

type migrateModel struct {
	runner *migrate.Runner
	width  int
	height int

	count    int // store record count, from the last verify
	verified bool
}

func newMigrateModel(r *migrate.Runner) migrateModel {
	return migrateModel{runner: r}
}

func (m *migrateModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type migrateDataMsg struct {
	count int
}

type migrationDoneMsg struct {
	migrated int
	err      error
}

// refresh re-counts the store so the screen reflects what is actually
// persisted, not what the last run reported.
func (m migrateModel) refresh() tea.Cmd {
	return func() tea.Msg {
		count, err := m.runner.Verify()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return migrateDataMsg{count: count}
	}
}

func (m migrateModel) runMigration() tea.Cmd {
	return func() tea.Msg {
		n, err := m.runner.Run()
		return migrationDoneMsg{migrated: n, err: err}
	}
}

func (m migrateModel) update(msg tea.Msg) (migrateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case migrateDataMsg:
		m.count = msg.count
		m.verified = true
		return m, nil

	case migrationDoneMsg:
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Migration failed: %v", msg.err), isError: true}
			}
		}
		return m, tea.Batch(
			m.refresh(),
			func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Migrated %d applications", msg.migrated)}
			},
		)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			if m.runner.State() == migrate.StateIdle || m.runner.State() == migrate.StateError {
				return m, m.runMigration()
			}
		case key.Matches(msg, keys.Verify), key.Matches(msg, keys.Refresh):
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m migrateModel) view() string {
	w := m.width - 4

	title := titleStyle.Render("Legacy Migration")
	source := mutedStyle.Render("Source: " + m.runner.Path())

	var stateLine, detail, controls string
	switch m.runner.State() {
	case migrate.StateIdle:
		stateLine = mutedStyle.Render("■  IDLE")
		detail = mutedStyle.Render("Reads the old JSON store and replaces the database with its records.")
		controls = mutedStyle.Render("enter: run migration  v: verify")
	case migrate.StateMigrating:
		stateLine = warningStyle.Render("●  MIGRATING")
		detail = mutedStyle.Render("Copying records...")
	case migrate.StateSuccess:
		stateLine = successStyle.Render("✓  SUCCESS")
		detail = successStyle.Render(fmt.Sprintf("Imported %d applications", m.runner.Migrated()))
		controls = mutedStyle.Render("v: verify")
	case migrate.StateError:
		stateLine = errorStyle.Render("✗  ERROR")
		if err := m.runner.Err(); err != nil {
			detail = errorStyle.Render(err.Error())
		}
		controls = mutedStyle.Render("enter: retry  v: verify")
	}

	var rows []string
	rows = append(rows, title, "", source, "", stateLine)
	if detail != "" {
		rows = append(rows, detail)
	}
	if m.verified {
		rows = append(rows, "", highlightStyle.Render(fmt.Sprintf("Store holds %d applications", m.count)))
	}
	if controls != "" {
		rows = append(rows, "", controls)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
