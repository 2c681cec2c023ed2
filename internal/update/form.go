package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/storage"
)

const formDateLayout = "2006-01-02"

const (
	formFieldCompany = iota
	formFieldTitle
	formFieldJobURL
	formFieldDateApplied
	formFieldEmail
	formFieldStatus
	formFieldPriority
	formFieldSource
	formFieldResume
	formFieldCount
)

// The notes textarea sits after the text inputs in the focus cycle.
const (
	formFieldNotes = formFieldCount
	formFocusCount = formFieldCount + 1
)

var formLabels = [formFieldCount]string{
	"company", "title", "job url", "date applied (YYYY-MM-DD)",
	"email used", "status", "priority", "source", "resume filename",
}

func newFormInputs() []textinput.Model {
	inputs := make([]textinput.Model, formFieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = formLabels[i]
		in.CharLimit = 200
		inputs[i] = in
	}
	return inputs
}

func (m Model) openForm() Model {
	m.Form = FormState{Active: true}
	m.formInputs = newFormInputs()
	m.formInputs[formFieldStatus].SetValue(string(model.StatusApplied))
	m.formInputs[formFieldPriority].SetValue(string(model.PriorityMedium))
	m.formInputs[formFieldSource].SetValue(string(model.SourceOther))
	m.formInputs[formFieldDateApplied].SetValue(m.clock().Format(formDateLayout))
	m.formInputs[formFieldCompany].Focus()
	m.notesArea.Reset()
	m.notesArea.Blur()
	m.Status = StatusBar{Text: "new application form", IsError: false}
	return m
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Form.Active = false
		m.Status = StatusBar{Text: "form cancelled", IsError: false}
		return m, nil
	case "tab":
		m.blurFormField()
		m.Form.Focus = (m.Form.Focus + 1) % formFocusCount
		m.focusFormField()
		return m, nil
	case "shift+tab":
		m.blurFormField()
		m.Form.Focus = (m.Form.Focus + formFocusCount - 1) % formFocusCount
		m.focusFormField()
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		// Inside the notes textarea enter inserts a newline; ctrl+s
		// submits from anywhere.
		if m.Form.Focus != formFieldNotes {
			return m.submitForm()
		}
	}
	var cmd tea.Cmd
	if m.Form.Focus == formFieldNotes {
		m.notesArea, cmd = m.notesArea.Update(msg)
	} else {
		m.formInputs[m.Form.Focus], cmd = m.formInputs[m.Form.Focus].Update(msg)
	}
	_ = cmd
	return m, nil
}

func (m *Model) focusFormField() {
	if m.Form.Focus == formFieldNotes {
		m.notesArea.Focus()
		return
	}
	m.formInputs[m.Form.Focus].Focus()
}

func (m *Model) blurFormField() {
	if m.Form.Focus == formFieldNotes {
		m.notesArea.Blur()
		return
	}
	m.formInputs[m.Form.Focus].Blur()
}

// submitForm validates into a model.Application; a failed field keeps
// the form open with the error on the status bar.
func (m Model) submitForm() (Model, tea.Cmd) {
	now := m.clock()

	dateRaw := strings.TrimSpace(m.formInputs[formFieldDateApplied].Value())
	dateApplied, err := time.Parse(formDateLayout, dateRaw)
	if err != nil {
		m.Form.Err = "date applied must be YYYY-MM-DD"
		m.Status = StatusBar{Text: m.Form.Err, IsError: true}
		return m, nil
	}

	app := model.Application{
		ID:             fmt.Sprintf("app-%d", now.UnixNano()),
		CompanyName:    strings.TrimSpace(m.formInputs[formFieldCompany].Value()),
		JobTitle:       strings.TrimSpace(m.formInputs[formFieldTitle].Value()),
		JobURL:         strings.TrimSpace(m.formInputs[formFieldJobURL].Value()),
		Status:         model.Status(strings.TrimSpace(m.formInputs[formFieldStatus].Value())),
		Priority:       model.Priority(strings.TrimSpace(m.formInputs[formFieldPriority].Value())),
		DateApplied:    dateApplied,
		EmailUsed:      strings.TrimSpace(m.formInputs[formFieldEmail].Value()),
		Source:         model.Source(strings.TrimSpace(m.formInputs[formFieldSource].Value())),
		Notes:          m.notesArea.Value(),
		ResumeFilename: strings.TrimSpace(m.formInputs[formFieldResume].Value()),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := app.Validate(); err != nil {
		m.Form.Err = err.Error()
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	m.Form = FormState{}
	text := fmt.Sprintf("added application: %s / %s", app.CompanyName, app.JobTitle)
	m.Status = StatusBar{Text: text, IsError: false}
	m.notify("Application", text, "info")

	if m.Repo == nil {
		m.Records = append(m.Records, app)
		return m, nil
	}
	return m, createApplicationCmd(m.Repo, app)
}

func createApplicationCmd(repo storage.Repository, app model.Application) tea.Cmd {
	return func() tea.Msg {
		if err := repo.CreateApplication(context.Background(), storage.ApplicationFromModel(app)); err != nil {
			return AppErrorMsg{Err: err}
		}
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
