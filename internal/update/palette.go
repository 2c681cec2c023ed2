package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/commands"
	"github.com/sandeepkv93/trackd/internal/engine"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.CurrentView = ViewApplications
			m = m.openForm()
			m.formInputs[formFieldCompany].SetValue(a.Company)
			m.formInputs[formFieldTitle].SetValue(a.Title)
			return commands.Result{Message: fmt.Sprintf("form prefilled: %s / %s", a.Company, a.Title)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			if f.Status != "" {
				m.Apps.Criteria.Status = f.Status
			}
			if f.Priority != "" {
				m.Apps.Criteria.Priority = f.Priority
			}
			if f.Source != "" {
				m.Apps.Criteria.Source = f.Source
			}
			m.Apps.ResetPage()
			return commands.Result{Message: "filter applied: " + describeCriteria(m.Apps.Criteria)}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.Apps.Criteria.Search = s.Query
			m.Apps.ResetPage()
			return commands.Result{Message: fmt.Sprintf("searching %q", s.Query)}, nil
		},
		Sort: func(s commands.SortArgs) (commands.Result, error) {
			m.Apps.Sort = m.Apps.Sort.Toggle(s.Field)
			m.Apps.ResetPage()
			dir := "asc"
			if m.Apps.Sort.Desc {
				dir = "desc"
			}
			return commands.Result{Message: fmt.Sprintf("sorted by %s %s", s.Field, dir)}, nil
		},
		Export: func(e commands.ExportArgs) (commands.Result, error) {
			m = m.openExportDialog("applications")
			m.Export.Format = e.Format
			m.Export.Scope = e.Scope
			var next Model
			next, followUp = m.startExport()
			m = next
			if m.Export.Err != "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Export.Err}
			}
			return commands.Result{Message: fmt.Sprintf("exporting %s as %s", e.Scope, e.Format)}, nil
		},
		Contact: func(c commands.ContactArgs) (commands.Result, error) {
			next, cmd, err := m.addContact(c.Name, c.Role)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m = next
			followUp = cmd
			return commands.Result{Message: fmt.Sprintf("contact added: %s", c.Name)}, nil
		},
		Refer: func(r commands.ReferArgs) (commands.Result, error) {
			next, cmd, err := m.addReferral(r.ContactName, r.Body)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m = next
			followUp = cmd
			return commands.Result{Message: fmt.Sprintf("referral drafted via %s", r.ContactName)}, nil
		},
		Clear: func() (commands.Result, error) {
			m.Apps.Criteria = engine.Criteria{}
			m.Apps.Sort = engine.SortSpec{}
			m.Apps.Selection.Clear()
			m.Apps.ResetPage()
			return commands.Result{Message: "filters, sort and selection cleared"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m, followUp
}

func describeCriteria(c engine.Criteria) string {
	parts := make([]string, 0, 5)
	if c.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", c.Search))
	}
	if c.Status != "" {
		parts = append(parts, "status="+string(c.Status))
	}
	if c.Priority != "" {
		parts = append(parts, "priority="+string(c.Priority))
	}
	if c.Source != "" {
		parts = append(parts, "source="+string(c.Source))
	}
	if c.Preset != engine.PresetNone {
		parts = append(parts, "date="+string(c.Preset))
	}
	if c.From != nil || c.To != nil {
		parts = append(parts, "date=custom")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
