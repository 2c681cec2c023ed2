package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/trackd/internal/engine"
	"github.com/sandeepkv93/trackd/internal/views"
)

func (m Model) renderApplicationsPanel() string {
	pageItems, totalPages := m.applicationsPage()
	rows := make([]views.ApplicationRowData, 0, len(pageItems))
	cursorID := ""
	for i, app := range pageItems {
		row := views.ApplicationRowData{
			ID:          app.ID,
			Company:     app.CompanyName,
			Title:       app.JobTitle,
			Status:      string(app.Status),
			Priority:    string(app.Priority),
			Source:      string(app.Source),
			DateApplied: app.DateApplied.Format("2006-01-02"),
			Selected:    m.Apps.Selection.Has(app.ID),
		}
		if i == m.Apps.Cursor {
			cursorID = app.ID
		}
		rows = append(rows, row)
	}

	search := m.Apps.Criteria.Search
	if m.Apps.Searching {
		search = m.searchInput.View()
	} else if search != "" {
		search = "search: " + search
	}

	return views.RenderApplicationsPanel(views.ApplicationsPanelData{
		SearchView:    search,
		FilterSummary: describeCriteria(m.Apps.Criteria),
		SortSummary:   describeSort(m.Apps.Sort),
		Rows:          rows,
		CursorID:      cursorID,
		Page:          engine.ClampPage(m.Apps.Page, totalPages),
		TotalPages:    totalPages,
		TotalRecords:  len(m.visibleApplications()),
		PageSize:      m.Apps.PageSize,
		SelectedCount: m.Apps.Selection.Count(),
	})
}

func (m Model) renderApplicationDetail() string {
	pageItems, _ := m.applicationsPage()
	if m.Apps.Cursor >= len(pageItems) {
		return views.RenderApplicationDetail(views.ApplicationDetailData{})
	}
	app := pageItems[m.Apps.Cursor]
	row := views.ApplicationRowData{
		ID:          app.ID,
		Company:     app.CompanyName,
		Title:       app.JobTitle,
		Status:      string(app.Status),
		Priority:    string(app.Priority),
		Source:      string(app.Source),
		DateApplied: app.DateApplied.Format("2006-01-02"),
	}
	contacts := make([]string, 0)
	for _, c := range m.contactsForCompany(app.CompanyName) {
		line := c.Name
		if c.Role != "" {
			line += " (" + c.Role + ")"
		}
		contacts = append(contacts, line)
	}
	referrals := make([]string, 0)
	for _, r := range m.referralsFor(app) {
		referrals = append(referrals, fmt.Sprintf("[%s] %s", r.Status, clipLine(r.Body, 60)))
	}
	return views.RenderApplicationDetail(views.ApplicationDetailData{
		Row:          &row,
		JobURL:       app.JobURL,
		EmailUsed:    app.EmailUsed,
		ResumeFile:   app.ResumeFilename,
		NotesPreview: views.RenderMarkdown(app.Notes),
		Contacts:     contacts,
		Referrals:    referrals,
	})
}

func (m Model) renderResumesPanel() string {
	pageItems, totalPages := m.resumesPage()
	rows := make([]views.ResumeRowData, 0, len(pageItems))
	cursorID := ""
	for i, entry := range pageItems {
		if i == m.Resumes.Cursor {
			cursorID = entry.ApplicationID
		}
		rows = append(rows, views.ResumeRowData{
			ID:          entry.ApplicationID,
			Filename:    entry.ResumeFilename,
			Company:     entry.CompanyName,
			Title:       entry.JobTitle,
			DateApplied: entry.DateApplied.Format("2006-01-02"),
			Selected:    m.Resumes.Selection.Has(entry.ApplicationID),
		})
	}

	search := m.Resumes.Criteria.Search
	if m.Resumes.Searching {
		search = m.searchInput.View()
	} else if search != "" {
		search = "search: " + search
	}

	return views.RenderResumesPanel(views.ResumesPanelData{
		SearchView:    search,
		FilterSummary: describeCriteria(m.Resumes.Criteria),
		Rows:          rows,
		CursorID:      cursorID,
		Page:          engine.ClampPage(m.Resumes.Page, totalPages),
		TotalPages:    totalPages,
		TotalRecords:  len(m.visibleResumes()),
		SelectedCount: m.Resumes.Selection.Count(),
	})
}

func (m Model) renderExportDialog() string {
	cols := make([]string, 0, len(engine.AllColumns()))
	for i, col := range engine.AllColumns() {
		mark := " "
		if m.Export.Columns[col] {
			mark = "x"
		}
		cols = append(cols, fmt.Sprintf("%d[%s]%s", (i+1)%10, mark, col.Label()))
	}
	phase := ""
	if m.Export.Phase == ExportWriting {
		phase = m.exportSpinner.View() + " writing"
	}
	return views.RenderExportDialog(views.ExportDialogData{
		Active:    m.Export.Phase != ExportClosed,
		Phase:     phase,
		Format:    string(m.Export.Format),
		Scope:     string(m.Export.Scope),
		Columns:   cols,
		ErrorText: m.Export.Err,
		Filename:  m.Export.LastFile,
	})
}

func (m Model) renderFormIfActive() string {
	if !m.Form.Active {
		return ""
	}
	fields := make([]views.FormFieldData, 0, formFocusCount)
	for i := range m.formInputs {
		field := views.FormFieldData{
			Label:   formLabels[i],
			View:    m.formInputs[i].View(),
			Focused: i == m.Form.Focus,
		}
		if i == m.Form.Focus && m.Form.Err != "" {
			field.Error = m.Form.Err
		}
		fields = append(fields, field)
	}
	notes := views.FormFieldData{
		Label:   "notes (markdown)",
		View:    m.notesArea.View(),
		Focused: m.Form.Focus == formFieldNotes,
	}
	if notes.Focused && m.Form.Err != "" {
		notes.Error = m.Form.Err
	}
	fields = append(fields, notes)
	return views.RenderApplicationForm(views.ApplicationFormData{Active: true, Fields: fields})
}

func (m Model) renderCalendarPanel() string {
	items := make([]views.CalendarAgendaItemData, 0, len(m.Calendar.Items))
	for _, item := range m.Calendar.Items {
		items = append(items, views.CalendarAgendaItemData{
			ID:    item.ID,
			Title: item.Title,
			Date:  item.Date,
			Time:  item.Time,
			Kind:  item.Kind,
		})
	}
	var selected *views.CalendarAgendaItemData
	if m.Calendar.Cursor < len(items) {
		selected = &items[m.Calendar.Cursor]
	}
	return views.RenderCalendarPanel(views.CalendarPanelData{
		TableView: m.calendarTable.View(),
		Items:     items,
		Selected:  selected,
	})
}

func (m Model) renderSettingsPanel() string {
	return views.RenderSettingsPanel(views.SettingsPanelData{
		PageSize:             m.Settings.PageSize,
		PageSizeOptions:      engine.PageSizes,
		ExportDir:            m.Settings.ExportDir,
		DefaultFormat:        string(m.Settings.DefaultFormat),
		DesktopNotifications: m.Settings.DesktopNotifications,
		FollowUpDays:         m.Settings.FollowUpDays,
		CursorRow:            m.Settings.CursorRow,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}

func clipLine(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func describeSort(s engine.SortSpec) string {
	if s.Field == "" {
		return ""
	}
	if s.Desc {
		return string(s.Field) + " desc"
	}
	return string(s.Field) + " asc"
}
