package update

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/scheduler"
	"github.com/sandeepkv93/trackd/internal/storage"
)

// rebuildAgenda derives the calendar view from current state: stored
// calendar events, one entry per scheduled follow-up, plus one per
// application in the interview stage keyed on its application date.
func (m *Model) rebuildAgenda() {
	items := make([]AgendaItem, 0, len(m.Events)+len(m.FollowUpLog)+len(m.Records))
	for _, ev := range m.Events {
		items = append(items, AgendaItem{
			ID:    ev.ID,
			Title: ev.Title,
			Date:  ev.StartAt.Format("2006-01-02"),
			Time:  ev.StartAt.Format("15:04"),
			Kind:  ev.Kind,
		})
	}
	for _, ev := range m.FollowUpLog {
		title := "follow up"
		if app, ok := m.findApplication(ev.ApplicationID); ok {
			title = "follow up: " + app.CompanyName
		}
		items = append(items, AgendaItem{
			ID:    ev.ID,
			Title: title,
			Date:  ev.TriggerAt.Format("2006-01-02"),
			Time:  ev.TriggerAt.Format("15:04"),
			Kind:  ev.Kind,
		})
	}
	for _, app := range m.Records {
		if app.Status != model.StatusInterview {
			continue
		}
		items = append(items, AgendaItem{
			ID:    "interview-" + app.ID,
			Title: app.CompanyName + " / " + app.JobTitle,
			Date:  app.DateApplied.Format("2006-01-02"),
			Time:  "--:--",
			Kind:  "interview",
		})
	}
	m.Calendar.Items = items
	if m.Calendar.Cursor >= len(items) {
		m.Calendar.Cursor = 0
	}

	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, table.Row{item.Date, item.Time, item.Kind, item.Title})
	}
	m.calendarTable.SetRows(rows)
}

func (m Model) handleCalendarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.Calendar.Cursor < len(m.Calendar.Items)-1 {
			m.Calendar.Cursor++
		}
	case "k", "up":
		if m.Calendar.Cursor > 0 {
			m.Calendar.Cursor--
		}
	}
	return m, nil
}

func (m Model) findApplication(id string) (model.Application, bool) {
	for _, app := range m.Records {
		if app.ID == id {
			return app, true
		}
	}
	return model.Application{}, false
}

func (m Model) onFollowUpDue(msg FollowUpDueMsg) (Model, tea.Cmd) {
	m.FollowUpLog = append(m.FollowUpLog, msg.Event)
	if len(m.FollowUpLog) > 50 {
		m.FollowUpLog = m.FollowUpLog[len(m.FollowUpLog)-50:]
	}
	m.rebuildAgenda()

	title := "Follow up"
	body := msg.Event.ApplicationID
	if app, ok := m.findApplication(msg.Event.ApplicationID); ok {
		body = app.CompanyName + " / " + app.JobTitle
	}
	m.Status = StatusBar{Text: "follow up due: " + body, IsError: false}
	m.notify(title, body, "info")

	cmds := make([]tea.Cmd, 0, 2)
	if m.Repo != nil {
		cmds = append(cmds, acknowledgeReminderCmd(m.Repo, msg.Event.ID))
	}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForFollowUpCmd(m.Scheduler.C()))
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) loadCalendarEventsCmd() tea.Cmd {
	if m.Repo == nil {
		return nil
	}
	repo := m.Repo
	return func() tea.Msg {
		records, err := repo.ListCalendarEvents(context.Background(), storage.CalendarEventListFilter{})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		events := make([]model.CalendarEvent, 0, len(records))
		for _, rec := range records {
			events = append(events, rec.ToModel())
		}
		return CalendarEventsLoadedMsg{Events: events}
	}
}

// acknowledgeReminderCmd marks the persisted reminder row done once the
// follow-up has been surfaced; a missing row is not an error, the event
// may have been scheduled without one.
func acknowledgeReminderCmd(repo storage.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.AcknowledgeReminder(context.Background(), id); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return AppErrorMsg{Err: err}
		}
		return nil
	}
}

func waitForFollowUpCmd(ch <-chan scheduler.FollowUpEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return FollowUpDueMsg{Event: ev}
	}
}
