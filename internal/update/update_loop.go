package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 5)
	for _, load := range []tea.Cmd{
		m.loadApplicationsCmd(),
		m.loadContactsCmd(),
		m.loadReferralsCmd(),
		m.loadCalendarEventsCmd(),
	} {
		if load != nil {
			cmds = append(cmds, load)
		}
	}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForFollowUpCmd(m.Scheduler.C()))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		keyStr := typed.String()

		// Modal states swallow everything except hard quit: text entry,
		// the export dialog (digits toggle columns) and bulk mode.
		capturing := m.Apps.Searching || m.Resumes.Searching || m.Form.Active ||
			m.Export.Phase != ExportClosed || m.BulkActive
		if capturing && keyStr != "ctrl+c" {
			return m.dispatchViewKey(typed)
		}

		switch keyStr {
		case ":":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Applications:
			m.CurrentView = ViewApplications
			return m, nil
		case m.Keys.Resumes:
			m.CurrentView = ViewResumes
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			m.rebuildAgenda()
			return m, nil
		case m.Keys.Settings:
			m.CurrentView = ViewSettings
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.dispatchViewKey(typed)

	case spinner.TickMsg:
		if m.Export.Phase == ExportWriting {
			var cmd tea.Cmd
			m.exportSpinner, cmd = m.exportSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewCalendar {
				m.rebuildAgenda()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case ApplicationsLoadedMsg:
		m.Records = typed.Apps
		m.Apps.Cursor = 0
		m.rebuildAgenda()
		return m, nil
	case ContactsLoadedMsg:
		m.Contacts = typed.Contacts
		return m, nil
	case ReferralsLoadedMsg:
		m.Referrals = typed.Referrals
		return m, nil
	case CalendarEventsLoadedMsg:
		m.Events = typed.Events
		m.rebuildAgenda()
		return m, nil
	case BulkDoneMsg:
		m.Status = StatusBar{Text: typed.Outcome.Summary(), IsError: !typed.Outcome.AllSucceeded()}
		m.notify("Bulk Action", typed.Outcome.Summary(), levelFromError(!typed.Outcome.AllSucceeded()))
		m.Apps.Selection.Clear()
		return m, m.loadApplicationsCmd()
	case ExportDoneMsg:
		return m.onExportDone(typed)
	case FollowUpDueMsg:
		return m.onFollowUpDue(typed)
	case SettingsSavedMsg:
		if typed.Err != nil {
			m.Status = StatusBar{Text: "settings save failed: " + typed.Err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: "settings saved", IsError: false}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) dispatchViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.CurrentView {
	case ViewApplications:
		next, cmd := m.handleApplicationsKey(msg)
		return next, cmd
	case ViewResumes:
		next, cmd := m.handleResumesKey(msg)
		return next, cmd
	case ViewCalendar:
		next, cmd := m.handleCalendarKey(msg)
		return next, cmd
	case ViewSettings:
		next, cmd := m.handleSettingsKey(msg)
		return next, cmd
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewApplications:
		leftPane = m.renderApplicationsPanel()
		rightPane = strings.TrimSpace(strings.Join([]string{
			m.renderApplicationDetail(),
			m.renderFormIfActive(),
			m.renderExportDialog(),
			m.renderCommandPalette(),
			m.renderHelpIfVisible(),
		}, "\n"))
	case ViewResumes:
		leftPane = m.renderResumesPanel()
		rightPane = strings.TrimSpace(strings.Join([]string{
			m.renderExportDialog(),
			m.renderCommandPalette(),
			m.renderHelpIfVisible(),
		}, "\n"))
	case ViewCalendar:
		leftPane = m.renderCalendarPanel()
		rightPane = m.renderHelpIfVisible()
	case ViewSettings:
		leftPane = m.renderSettingsPanel()
		rightPane = m.renderHelpIfVisible()
	}

	notificationView := ""
	if len(m.FollowUpLog) > 0 {
		last := m.FollowUpLog[len(m.FollowUpLog)-1]
		notificationView = fmt.Sprintf("last follow-up: %s @ %s", last.ApplicationID, last.TriggerAt.Format("15:04:05"))
	}
	notificationView = strings.TrimSpace(strings.Join([]string{
		notificationView,
		strings.TrimSpace(m.renderNotificationsView()),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("trackd | view: %s", m.CurrentView),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notificationView,
		Footer: fmt.Sprintf("keys: %s apps | %s resumes | %s cal | %s settings | : cmd | %s help | %s quit",
			m.Keys.Applications, m.Keys.Resumes, m.Keys.Calendar, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewApplications, ViewResumes, ViewCalendar, ViewSettings:
		return true
	default:
		return false
	}
}
