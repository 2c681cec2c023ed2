package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/engine"
	"github.com/sandeepkv93/trackd/internal/model"
)

func (m Model) openExportDialog(entity string) Model {
	m.Export.Phase = ExportOpen
	m.Export.Err = ""
	m.Export.LastFile = ""
	m.Export.Format = m.Settings.DefaultFormat
	m.Export.Scope = engine.ScopeFiltered
	m.exportEntity = entity
	m.resetExportColumns()
	m.Status = StatusBar{Text: "export dialog open", IsError: false}
	return m
}

// handleExportKey runs the dialog while it is anywhere past closed.
// Validation failures keep the dialog open with the error shown; only
// esc or a successful write closes it.
func (m Model) handleExportKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Export.Phase == ExportWriting {
		// The write is in flight; only the done message moves us on.
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.Export.Phase = ExportClosed
		m.Status = StatusBar{Text: "export cancelled", IsError: false}
		return m, nil
	case "tab":
		if m.Export.Format == engine.FormatCSV {
			m.Export.Format = engine.FormatJSON
		} else {
			m.Export.Format = engine.FormatCSV
		}
		m.Export.Err = ""
	case "s":
		switch m.Export.Scope {
		case engine.ScopeAll:
			m.Export.Scope = engine.ScopeFiltered
		case engine.ScopeFiltered:
			m.Export.Scope = engine.ScopeSelected
		default:
			m.Export.Scope = engine.ScopeAll
		}
		m.Export.Err = ""
	case "enter":
		return m.startExport()
	default:
		if idx := columnDigit(msg.String()); idx >= 0 {
			cols := engine.AllColumns()
			if idx < len(cols) {
				m.Export.Columns[cols[idx]] = !m.Export.Columns[cols[idx]]
				m.Export.Err = ""
			}
		}
	}
	return m, nil
}

func (m Model) startExport() (Model, tea.Cmd) {
	m.Export.Phase = ExportValidating

	columns := m.Export.SelectedColumns()
	if len(columns) == 0 {
		m.Export.Phase = ExportOpen
		m.Export.Err = "select at least one column"
		m.Status = StatusBar{Text: "export needs at least one column", IsError: true}
		return m, nil
	}

	req := engine.ExportRequest{
		Entity:  m.exportEntity,
		Scope:   m.Export.Scope,
		Format:  m.Export.Format,
		Columns: columns,
	}

	var doc engine.Document
	var err error
	if m.exportEntity == "resumes" {
		var records []model.ResumeEntry
		records, err = m.scopedResumes(m.Export.Scope)
		if err == nil {
			doc, err = m.resumeEngine.Export(records, req, m.clock())
		}
	} else {
		var records []model.Application
		records, err = m.scopedApplications(m.Export.Scope)
		if err == nil {
			doc, err = m.appsEngine.Export(records, req, m.clock())
		}
	}
	if err != nil {
		m.Export.Phase = ExportOpen
		m.Export.Err = err.Error()
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	m.Export.Phase = ExportWriting
	dir := m.Settings.ExportDir
	return m, tea.Batch(m.exportSpinner.Tick, writeExportCmd(dir, doc))
}

func writeExportCmd(dir string, doc engine.Document) tea.Cmd {
	return func() tea.Msg {
		path, err := engine.WriteDocument(dir, doc)
		return ExportDoneMsg{Path: path, Records: doc.Records, Err: err}
	}
}

// scopedApplications resolves the export scope against current engine
// state: all records, the filtered+sorted visible set, or the selected
// subset of the visible set in visible order.
func (m Model) scopedApplications(scope engine.ExportScope) ([]model.Application, error) {
	switch scope {
	case engine.ScopeAll:
		return m.Records, nil
	case engine.ScopeFiltered:
		return m.visibleApplications(), nil
	case engine.ScopeSelected:
		visible := m.visibleApplications()
		out := make([]model.Application, 0, m.Apps.Selection.Count())
		for _, app := range visible {
			if m.Apps.Selection.Has(app.ID) {
				out = append(out, app)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", engine.ErrBadScope, scope)
	}
}

func (m Model) onExportDone(msg ExportDoneMsg) (Model, tea.Cmd) {
	m.Export.Phase = ExportClosed
	if msg.Err != nil {
		m.LastError = msg.Err
		m.Status = StatusBar{Text: "export failed: " + msg.Err.Error(), IsError: true}
		m.notify("Export Failed", msg.Err.Error(), "error")
		return m, nil
	}
	m.Export.LastFile = msg.Path
	text := fmt.Sprintf("exported %d record(s) to %s", msg.Records, msg.Path)
	m.Status = StatusBar{Text: text, IsError: false}
	m.notify("Export", text, "info")
	return m, nil
}

// columnDigit maps "1".."9" and "0" to column indexes 0..9.
func columnDigit(key string) int {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return -1
	}
	if key == "0" {
		return 9
	}
	return int(key[0] - '1')
}
