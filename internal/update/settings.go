package update

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/engine"
)

const settingsRowCount = 4

const (
	settingsRowPageSize = iota
	settingsRowExportDir
	settingsRowFormat
	settingsRowNotifications
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.Settings.CursorRow < settingsRowCount-1 {
			m.Settings.CursorRow++
		}
	case "k", "up":
		if m.Settings.CursorRow > 0 {
			m.Settings.CursorRow--
		}
	case "h", "left", "l", "right":
		m = m.changeSettingAtCursor(msg.String() == "l" || msg.String() == "right")
	case "enter":
		return m, m.saveSettingsCmd()
	}
	return m, nil
}

func (m Model) changeSettingAtCursor(forward bool) Model {
	switch m.Settings.CursorRow {
	case settingsRowPageSize:
		sizes := engine.PageSizes
		idx := 0
		for i, n := range sizes {
			if n == m.Settings.PageSize {
				idx = i
				break
			}
		}
		if forward {
			idx = (idx + 1) % len(sizes)
		} else {
			idx = (idx + len(sizes) - 1) % len(sizes)
		}
		m.Settings.PageSize = sizes[idx]
		m.Apps.PageSize = sizes[idx]
		m.Resumes.PageSize = sizes[idx]
		m.Apps.ResetPage()
		m.Resumes.ResetPage()
	case settingsRowFormat:
		if m.Settings.DefaultFormat == engine.FormatCSV {
			m.Settings.DefaultFormat = engine.FormatJSON
		} else {
			m.Settings.DefaultFormat = engine.FormatCSV
		}
	case settingsRowNotifications:
		m.Settings.DesktopNotifications = !m.Settings.DesktopNotifications
		m.DesktopEnabled = m.Settings.DesktopNotifications
	}
	return m
}

// saveSettingsCmd persists the settings rows through the key/value
// store. With no repository attached the change stays session-local.
func (m Model) saveSettingsCmd() tea.Cmd {
	repo := m.Repo
	if repo == nil {
		return func() tea.Msg { return SettingsSavedMsg{} }
	}
	settings := m.Settings
	return func() tea.Msg {
		ctx := context.Background()
		pairs := map[string]string{
			"page_size":             strconv.Itoa(settings.PageSize),
			"export_dir":            settings.ExportDir,
			"export_format":         string(settings.DefaultFormat),
			"desktop_notifications": strconv.FormatBool(settings.DesktopNotifications),
			"follow_up_days":        strconv.Itoa(settings.FollowUpDays),
		}
		for key, value := range pairs {
			if err := repo.PutSetting(ctx, key, value); err != nil {
				return SettingsSavedMsg{Err: err}
			}
		}
		return SettingsSavedMsg{}
	}
}

// LoadSettings overlays persisted settings onto the model. Unknown or
// malformed values are ignored and the defaults stand.
func (m Model) LoadSettings(ctx context.Context) Model {
	if m.Repo == nil {
		return m
	}
	if v, err := m.Repo.GetSetting(ctx, "page_size"); err == nil {
		if n, convErr := strconv.Atoi(v); convErr == nil && validPageSize(n) {
			m.Settings.PageSize = n
			m.Apps.PageSize = n
			m.Resumes.PageSize = n
		}
	}
	if v, err := m.Repo.GetSetting(ctx, "export_dir"); err == nil && v != "" {
		m.Settings.ExportDir = v
	}
	if v, err := m.Repo.GetSetting(ctx, "export_format"); err == nil {
		format := engine.ExportFormat(v)
		if format == engine.FormatCSV || format == engine.FormatJSON {
			m.Settings.DefaultFormat = format
		}
	}
	if v, err := m.Repo.GetSetting(ctx, "desktop_notifications"); err == nil {
		if b, convErr := strconv.ParseBool(v); convErr == nil {
			m.Settings.DesktopNotifications = b
			m.DesktopEnabled = b
		}
	}
	if v, err := m.Repo.GetSetting(ctx, "follow_up_days"); err == nil {
		if n, convErr := strconv.Atoi(v); convErr == nil && n >= 0 {
			m.Settings.FollowUpDays = n
		}
	}
	return m
}
