package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/engine"
	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/storage"
)

// statusCycle drives the categorical filter key: each press advances to
// the next status, wrapping back to "no filter".
var statusCycle = []model.Status{
	"", model.StatusApplied, model.StatusInterview, model.StatusOffer,
	model.StatusRejected, model.StatusWithdrawn, model.StatusPending,
}

var priorityCycle = []model.Priority{
	"", model.PriorityHigh, model.PriorityMedium, model.PriorityLow,
}

var sourceCycle = []model.Source{
	"", model.SourceLinkedIn, model.SourceIndeed, model.SourceCompanyWebsite,
	model.SourceGlassdoor, model.SourceAngelList, model.SourceYC,
	model.SourceReferral, model.SourceOther,
}

var presetCycle = []engine.DatePreset{
	engine.PresetNone, engine.PresetToday, engine.PresetLast7Days,
	engine.PresetThisMonth, engine.PresetThisQuarter, engine.PresetThisYear,
	engine.PresetLast30Days, engine.PresetLast90Days,
}

var sortCycle = []engine.SortField{
	engine.SortByDate, engine.SortByCompany, engine.SortByTitle,
	engine.SortByStatus, engine.SortByPriority, engine.SortBySource,
	engine.SortByEmail, engine.SortByRelevance,
}

// visibleApplications is the projected set after filter and sort, before
// pagination. Selection and export scopes operate on this.
func (m Model) visibleApplications() []model.Application {
	return m.appsEngine.Project(m.Records, m.Apps.Criteria, m.Apps.Sort, m.clock())
}

func (m Model) applicationsPage() (pageItems []model.Application, totalPages int) {
	return engine.Paginate(m.visibleApplications(), m.Apps.Page, m.Apps.PageSize)
}

func (m Model) handleApplicationsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Apps.Searching {
		return m.handleSearchKey(msg), nil
	}
	if m.Form.Active {
		return m.handleFormKey(msg)
	}
	if m.Export.Phase != ExportClosed {
		return m.handleExportKey(msg)
	}
	if m.BulkActive {
		return m.handleBulkKey(msg)
	}

	pageItems, totalPages := m.applicationsPage()

	switch msg.String() {
	case "/":
		m.Apps.Searching = true
		m.searchInput.Focus()
		m.searchInput.SetValue(m.Apps.Criteria.Search)
		m.Status = StatusBar{Text: "search mode", IsError: false}
	case "f":
		m.Apps.Criteria.Status = nextInCycle(statusCycle, m.Apps.Criteria.Status)
		m.Apps.ResetPage()
	case "p":
		m.Apps.Criteria.Priority = nextInCycle(priorityCycle, m.Apps.Criteria.Priority)
		m.Apps.ResetPage()
	case "o":
		m.Apps.Criteria.Source = nextInCycle(sourceCycle, m.Apps.Criteria.Source)
		m.Apps.ResetPage()
	case "d":
		m.Apps.Criteria.Preset = nextInCycle(presetCycle, m.Apps.Criteria.Preset)
		m.Apps.ResetPage()
	case "F":
		m.Apps.Criteria = engine.Criteria{}
		m.Apps.ResetPage()
		m.Status = StatusBar{Text: "filters cleared", IsError: false}
	case "s":
		next := nextInCycle(sortCycle, m.Apps.Sort.Field)
		m.Apps.Sort = m.Apps.Sort.Toggle(next)
		m.Apps.ResetPage()
	case "S":
		if m.Apps.Sort.Field != "" {
			m.Apps.Sort = m.Apps.Sort.Toggle(m.Apps.Sort.Field)
			m.Apps.ResetPage()
		}
	case "j", "down":
		if m.Apps.Cursor < len(pageItems)-1 {
			m.Apps.Cursor++
		}
	case "k", "up":
		if m.Apps.Cursor > 0 {
			m.Apps.Cursor--
		}
	case "h", "left":
		if m.Apps.Page > 1 {
			m.Apps.Page--
			m.Apps.Cursor = 0
		}
	case "l", "right":
		if m.Apps.Page < totalPages {
			m.Apps.Page++
			m.Apps.Cursor = 0
		}
	case "z":
		m.Apps.PageSize = nextPageSize(m.Apps.PageSize)
		m.Apps.ResetPage()
		m.Status = StatusBar{Text: fmt.Sprintf("page size %d", m.Apps.PageSize), IsError: false}
	case " ":
		if m.Apps.Cursor < len(pageItems) {
			m.Apps.Selection.Toggle(pageItems[m.Apps.Cursor].ID)
		}
	case "x":
		visible := m.appsEngine.VisibleIDs(m.visibleApplications())
		m.Apps.Selection.SelectAll(visible)
		m.Status = StatusBar{Text: fmt.Sprintf("%d selected", m.Apps.Selection.Count()), IsError: false}
	case "u":
		m.Apps.Selection.Clear()
		m.Status = StatusBar{Text: "selection cleared", IsError: false}
	case "b":
		if m.Apps.Selection.Count() == 0 {
			m.Status = StatusBar{Text: "nothing selected for bulk action", IsError: true}
			return m, nil
		}
		m.BulkActive = true
		m.Status = StatusBar{Text: "bulk: status a/i/g/r/w/P, priority h/m/L, delete D, esc cancel", IsError: false}
	case "e":
		m = m.openExportDialog("applications")
	case "n":
		m = m.openForm()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Apps.Searching = false
		m.searchInput.Blur()
		m.Status = StatusBar{Text: "search closed", IsError: false}
		return m
	case "enter":
		m.Apps.Searching = false
		m.searchInput.Blur()
		return m
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	_ = cmd
	if m.searchInput.Value() != m.Apps.Criteria.Search {
		m.Apps.Criteria.Search = m.searchInput.Value()
		m.Apps.ResetPage()
	}
	return m
}

func (m Model) handleBulkKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var action engine.BulkAction
	switch msg.String() {
	case "esc":
		m.BulkActive = false
		m.Status = StatusBar{Text: "bulk action cancelled", IsError: false}
		return m, nil
	case "a":
		action = engine.BulkAction{Kind: engine.BulkSetStatus, Status: model.StatusApplied}
	case "i":
		action = engine.BulkAction{Kind: engine.BulkSetStatus, Status: model.StatusInterview}
	case "g":
		action = engine.BulkAction{Kind: engine.BulkSetStatus, Status: model.StatusOffer}
	case "r":
		action = engine.BulkAction{Kind: engine.BulkSetStatus, Status: model.StatusRejected}
	case "w":
		action = engine.BulkAction{Kind: engine.BulkSetStatus, Status: model.StatusWithdrawn}
	case "P":
		action = engine.BulkAction{Kind: engine.BulkSetStatus, Status: model.StatusPending}
	case "h":
		action = engine.BulkAction{Kind: engine.BulkSetPriority, Priority: model.PriorityHigh}
	case "m":
		action = engine.BulkAction{Kind: engine.BulkSetPriority, Priority: model.PriorityMedium}
	case "L":
		action = engine.BulkAction{Kind: engine.BulkSetPriority, Priority: model.PriorityLow}
	case "D":
		action = engine.BulkAction{Kind: engine.BulkDelete}
	default:
		return m, nil
	}

	m.BulkActive = false
	if m.Mutator == nil {
		m.Status = StatusBar{Text: "no record store attached", IsError: true}
		return m, nil
	}
	ids := m.Apps.Selection.IDs()
	return m, bulkCmd(m.Mutator, ids, action)
}

func bulkCmd(mut engine.Mutator, ids []string, action engine.BulkAction) tea.Cmd {
	return func() tea.Msg {
		return BulkDoneMsg{Outcome: engine.ApplyBulk(context.Background(), mut, ids, action)}
	}
}

func (m Model) loadApplicationsCmd() tea.Cmd {
	repo := m.Repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		records, err := repo.ListApplications(context.Background(), storage.ApplicationListFilter{})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		apps := make([]model.Application, 0, len(records))
		for _, rec := range records {
			apps = append(apps, rec.ToModel())
		}
		return ApplicationsLoadedMsg{Apps: apps}
	}
}

func nextInCycle[T comparable](cycle []T, current T) T {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func nextPageSize(current int) int {
	return nextInCycle(engine.PageSizes, current)
}
