package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/jobtrack/internal/cooloff"
	"github.com/sadopc/jobtrack/internal/store"
	"github.com/sadopc/jobtrack/internal/tracker"
)

type applicationsModel struct {
	store   *store.Store
	service *tracker.Service
	width   int
	height  int

	apps     []store.Application
	total    int
	pageNum  int
	pageSize int
	cursor   int

	confirming bool // delete confirmation for the selected record

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"

	// Form field pointers (survive value copies)
	formCompany  *string
	formTitle    *string
	formLocation *string
	formStatus   *string
	formStart    *string

	editingID int64 // application ID being edited
}

func newApplicationsModel(st *store.Store, svc *tracker.Service) applicationsModel {
	company, title, location := "", "", ""
	status, start := string(store.StatusApplied), string(store.StartApplication)
	return applicationsModel{
		store:        st,
		service:      svc,
		pageNum:      1,
		pageSize:     store.DefaultPageSize,
		formCompany:  &company,
		formTitle:    &title,
		formLocation: &location,
		formStatus:   &status,
		formStart:    &start,
	}
}

func (m *applicationsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type applicationsDataMsg struct {
	apps    []store.Application
	total   int
	pageNum int
	size    int
}

func (m applicationsModel) refresh() tea.Cmd {
	pageNum := m.pageNum
	size := m.store.PageSize()
	return func() tea.Msg {
		page, err := m.service.LoadPage(pageNum, size)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return applicationsDataMsg{
			apps:    page.Applications,
			total:   page.TotalCount,
			pageNum: page.Page,
			size:    page.PageSize,
		}
	}
}

func (m applicationsModel) update(msg tea.Msg) (applicationsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case applicationsDataMsg:
		m.apps = msg.apps
		m.total = msg.total
		m.pageNum = msg.pageNum
		m.pageSize = msg.size
		if m.cursor >= len(m.apps) {
			m.cursor = max(0, len(m.apps)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m applicationsModel) updateList(msg tea.KeyMsg) (applicationsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.apps)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Left):
		if m.pageNum > 1 {
			m.pageNum--
			return m, m.refresh()
		}
	case key.Matches(msg, keys.Right):
		if m.pageNum < m.totalPages() {
			m.pageNum++
			return m, m.refresh()
		}
	case key.Matches(msg, keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, keys.New):
		return m.showNewForm()
	case key.Matches(msg, keys.Edit):
		if len(m.apps) > 0 {
			return m.showEditForm()
		}
	case key.Matches(msg, keys.Status):
		if len(m.apps) > 0 {
			return m.cycleStatus()
		}
	case key.Matches(msg, keys.Delete):
		if len(m.apps) > 0 {
			if m.store.ConfirmDelete() {
				m.confirming = true
				return m, nil
			}
			return m.deleteSelected()
		}
	}
	return m, nil
}

func (m applicationsModel) updateConfirm(msg tea.KeyMsg) (applicationsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirming = false
		return m.deleteSelected()
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m applicationsModel) deleteSelected() (applicationsModel, tea.Cmd) {
	a := m.apps[m.cursor]
	if err := m.service.DeleteApplication(a.ID); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Deleted %s at %s", a.JobTitle, a.Company)}
		},
	)
}

func (m applicationsModel) cycleStatus() (applicationsModel, tea.Cmd) {
	a := m.apps[m.cursor]
	updated, err := m.service.ChangeStatus(a.ID, nextStatus(a.Status))
	if err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("%s at %s is now %s", updated.JobTitle, updated.Company, updated.Status)}
		},
	)
}

func (m applicationsModel) showNewForm() (applicationsModel, tea.Cmd) {
	*m.formCompany = ""
	*m.formTitle = ""
	*m.formLocation = ""
	*m.formStatus = string(store.StatusApplied)
	*m.formStart = string(store.StartApplication)
	m.formType = "new"

	m.form = m.buildForm(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m applicationsModel) showEditForm() (applicationsModel, tea.Cmd) {
	a := m.apps[m.cursor]
	*m.formCompany = a.Company
	*m.formTitle = a.JobTitle
	*m.formLocation = a.Location
	*m.formStatus = string(a.Status)
	m.formType = "edit"
	m.editingID = a.ID

	m.form = m.buildForm(false)
	m.formActive = true
	return m, m.form.Init()
}

// buildForm reads whatever is in the form pointers, so rebuilding after a
// rejected save keeps the user's input. The cool-off start type is fixed
// at creation and only appears on the new-application form.
func (m applicationsModel) buildForm(withStart bool) *huh.Form {
	statusOptions := make([]huh.Option[string], len(store.Statuses))
	for i, s := range store.Statuses {
		statusOptions[i] = huh.NewOption(string(s), string(s))
	}

	fields := []huh.Field{
		huh.NewInput().Title("Company").Value(m.formCompany),
		huh.NewInput().Title("Job Title").Value(m.formTitle),
		huh.NewInput().Title("Location").Value(m.formLocation),
		huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(m.formStatus),
	}
	if withStart {
		fields = append(fields,
			huh.NewSelect[string]().Title("Cool-off counts from").
				Options(
					huh.NewOption("Application date", string(store.StartApplication)),
					huh.NewOption("Rejection date", string(store.StartRejection)),
				).Value(m.formStart),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
}

func (m applicationsModel) updateForm(msg tea.Msg) (applicationsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.submitForm()
	}

	return m, cmd
}

func (m applicationsModel) submitForm() (applicationsModel, tea.Cmd) {
	var saved *store.Application
	var err error
	switch m.formType {
	case "new":
		saved, err = m.service.CreateApplication(tracker.CreateApplicationInput{
			Company:          *m.formCompany,
			JobTitle:         *m.formTitle,
			Location:         *m.formLocation,
			Status:           store.Status(*m.formStatus),
			CoolOffStartType: store.CoolOffStartType(*m.formStart),
		})
	case "edit":
		status := store.Status(*m.formStatus)
		saved, err = m.service.UpdateApplication(m.editingID, tracker.UpdateApplicationInput{
			Company:  m.formCompany,
			JobTitle: m.formTitle,
			Location: m.formLocation,
			Status:   &status,
		})
	}

	if err != nil {
		// Rebuild the form around the entered values so nothing is lost.
		m.form = m.buildForm(m.formType == "new")
		return m, tea.Batch(
			m.form.Init(),
			func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			},
		)
	}

	m.formActive = false
	m.form = nil
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Saved %s at %s", saved.JobTitle, saved.Company)}
		},
	)
}

func (m applicationsModel) totalPages() int {
	if m.pageSize < 1 {
		return 1
	}
	return max((m.total+m.pageSize-1)/m.pageSize, 1)
}

func (m applicationsModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Application")
		if m.formType == "edit" {
			title = titleStyle.Render("Edit Application")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(m.width - 4).Render(content)
	}
	return m.renderList()
}

func (m applicationsModel) renderList() string {
	w := m.width - 4
	title := titleStyle.Render("Applications")

	if len(m.apps) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No applications yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	// Table header
	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-20s %-22s %-14s %-13s %-12s %s",
		"", "Company", "Job Title", "Location", "Status", "Applied", "Eligible"))
	rows = append(rows, header)

	today := todayUTC()
	for i, a := range m.apps {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		eligible := successStyle.Render("now")
		if days := cooloff.DaysRemaining(a.CoolOffEnds, today); days > 0 {
			eligible = warningStyle.Render(fmt.Sprintf("%s (%s)",
				a.CoolOffEnds.Format(store.DateLayout), daysLeftLabel(days)))
		}
		row := style.Render(fmt.Sprintf("%s%s %-20s %-22s %-14s %-13s %-12s",
			cursor, statusBadge(a.Status), a.Company, a.JobTitle, a.Location,
			a.Status, a.AppliedDate.Format(store.DateLayout))) + " " + eligible
		rows = append(rows, row)
	}

	rows = append(rows, "")
	if m.confirming {
		a := m.apps[m.cursor]
		rows = append(rows, errorStyle.Render(fmt.Sprintf("  Delete %s at %s? (y/n)", a.JobTitle, a.Company)))
	} else {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  Page %d/%d (%d total)", m.pageNum, m.totalPages(), m.total)))
		rows = append(rows, mutedStyle.Render("  n: new  e: edit  s: status  d: delete  ←/→: page"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
