package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/engine"
	"github.com/sandeepkv93/trackd/internal/model"
)

// The resumes view runs the reduced engine instance: search, status and
// date filtering only, no priority/source/email dimensions.

func (m Model) visibleResumes() []model.ResumeEntry {
	return m.resumeEngine.Project(m.ResumeRecords(), m.Resumes.Criteria, m.Resumes.Sort, m.clock())
}

func (m Model) resumesPage() (pageItems []model.ResumeEntry, totalPages int) {
	return engine.Paginate(m.visibleResumes(), m.Resumes.Page, m.Resumes.PageSize)
}

func (m Model) scopedResumes(scope engine.ExportScope) ([]model.ResumeEntry, error) {
	switch scope {
	case engine.ScopeAll:
		return m.ResumeRecords(), nil
	case engine.ScopeFiltered:
		return m.visibleResumes(), nil
	case engine.ScopeSelected:
		visible := m.visibleResumes()
		out := make([]model.ResumeEntry, 0, m.Resumes.Selection.Count())
		for _, entry := range visible {
			if m.Resumes.Selection.Has(entry.ApplicationID) {
				out = append(out, entry)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", engine.ErrBadScope, scope)
	}
}

func (m Model) handleResumesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Resumes.Searching {
		return m.handleResumeSearchKey(msg), nil
	}
	if m.Export.Phase != ExportClosed {
		return m.handleExportKey(msg)
	}

	pageItems, totalPages := m.resumesPage()

	switch msg.String() {
	case "/":
		m.Resumes.Searching = true
		m.searchInput.Focus()
		m.searchInput.SetValue(m.Resumes.Criteria.Search)
		m.Status = StatusBar{Text: "search mode", IsError: false}
	case "f":
		m.Resumes.Criteria.Status = nextInCycle(statusCycle, m.Resumes.Criteria.Status)
		m.Resumes.ResetPage()
	case "d":
		m.Resumes.Criteria.Preset = nextInCycle(presetCycle, m.Resumes.Criteria.Preset)
		m.Resumes.ResetPage()
	case "F":
		m.Resumes.Criteria = engine.Criteria{}
		m.Resumes.ResetPage()
		m.Status = StatusBar{Text: "filters cleared", IsError: false}
	case "s":
		next := nextInCycle(sortCycle, m.Resumes.Sort.Field)
		m.Resumes.Sort = m.Resumes.Sort.Toggle(next)
		m.Resumes.ResetPage()
	case "j", "down":
		if m.Resumes.Cursor < len(pageItems)-1 {
			m.Resumes.Cursor++
		}
	case "k", "up":
		if m.Resumes.Cursor > 0 {
			m.Resumes.Cursor--
		}
	case "h", "left":
		if m.Resumes.Page > 1 {
			m.Resumes.Page--
			m.Resumes.Cursor = 0
		}
	case "l", "right":
		if m.Resumes.Page < totalPages {
			m.Resumes.Page++
			m.Resumes.Cursor = 0
		}
	case " ":
		if m.Resumes.Cursor < len(pageItems) {
			m.Resumes.Selection.Toggle(pageItems[m.Resumes.Cursor].ApplicationID)
		}
	case "x":
		visible := m.resumeEngine.VisibleIDs(m.visibleResumes())
		m.Resumes.Selection.SelectAll(visible)
		m.Status = StatusBar{Text: fmt.Sprintf("%d selected", m.Resumes.Selection.Count()), IsError: false}
	case "u":
		m.Resumes.Selection.Clear()
		m.Status = StatusBar{Text: "selection cleared", IsError: false}
	case "e":
		m = m.openExportDialog("resumes")
	}
	return m, nil
}

func (m Model) handleResumeSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Resumes.Searching = false
		m.searchInput.Blur()
		m.Status = StatusBar{Text: "search closed", IsError: false}
		return m
	case "enter":
		m.Resumes.Searching = false
		m.searchInput.Blur()
		return m
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	_ = cmd
	if m.searchInput.Value() != m.Resumes.Criteria.Search {
		m.Resumes.Criteria.Search = m.searchInput.Value()
		m.Resumes.ResetPage()
	}
	return m
}
