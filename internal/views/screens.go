package views

import (
	"fmt"
	"sort"
	"strings"
)

type ApplicationRowData struct {
	ID          string
	Company     string
	Title       string
	Status      string
	Priority    string
	Source      string
	DateApplied string
	Selected    bool
}

type ApplicationsPanelData struct {
	SearchView    string
	FilterSummary string
	SortSummary   string
	Rows          []ApplicationRowData
	CursorID      string
	Page          int
	TotalPages    int
	TotalRecords  int
	PageSize      int
	SelectedCount int
}

type ApplicationDetailData struct {
	Row          *ApplicationRowData
	JobURL       string
	EmailUsed    string
	ResumeFile   string
	NotesPreview string
	Contacts     []string
	Referrals    []string
}

type ResumeRowData struct {
	ID          string
	Filename    string
	Company     string
	Title       string
	DateApplied string
	Selected    bool
}

type ResumesPanelData struct {
	SearchView    string
	FilterSummary string
	Rows          []ResumeRowData
	CursorID      string
	Page          int
	TotalPages    int
	TotalRecords  int
	SelectedCount int
}

type ExportDialogData struct {
	Active    bool
	Phase     string
	Format    string
	Scope     string
	Columns   []string
	ErrorText string
	Filename  string
}

type FormFieldData struct {
	Label   string
	View    string
	Focused bool
	Error   string
}

type ApplicationFormData struct {
	Active bool
	Fields []FormFieldData
}

type CalendarAgendaItemData struct {
	ID    string
	Title string
	Date  string
	Time  string
	Kind  string
}

type CalendarPanelData struct {
	TableView string
	Items     []CalendarAgendaItemData
	Selected  *CalendarAgendaItemData
}

type SettingsPanelData struct {
	PageSize             int
	PageSizeOptions      []int
	ExportDir            string
	DefaultFormat        string
	DesktopNotifications bool
	FollowUpDays         int
	CursorRow            int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderApplicationsPanel(data ApplicationsPanelData) string {
	var b strings.Builder
	b.WriteString("applications:\n")
	b.WriteString(data.SearchView + "\n")
	if data.FilterSummary != "" {
		b.WriteString("filters: " + data.FilterSummary + "\n")
	}
	if data.SortSummary != "" {
		b.WriteString("sort: " + data.SortSummary + "\n")
	}
	b.WriteString("actions: [/]search [f]status [p]priority [o]source [d]preset [space]select [x]all [u]clear [b]bulk [e]export [n]new\n")

	if len(data.Rows) == 0 {
		b.WriteString("(no matching applications)\n")
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.CursorID {
			cursor = ">"
		}
		mark := " "
		if row.Selected {
			mark = "*"
		}
		b.WriteString(fmt.Sprintf("%s%s %-20s %-26s %-10s %-7s %s\n",
			cursor, mark, clip(row.Company, 20), clip(row.Title, 26), row.Status, row.Priority, row.DateApplied))
	}

	b.WriteString(fmt.Sprintf("page %d/%d | %d records | %d/page", data.Page, data.TotalPages, data.TotalRecords, data.PageSize))
	if data.SelectedCount > 0 {
		b.WriteString(fmt.Sprintf(" | %d selected", data.SelectedCount))
	}
	return strings.TrimSpace(b.String())
}

func RenderApplicationDetail(data ApplicationDetailData) string {
	if data.Row == nil {
		return "detail:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString(fmt.Sprintf("%s / %s\n", data.Row.Company, data.Row.Title))
	b.WriteString(fmt.Sprintf("status: %s | priority: %s | source: %s\n", data.Row.Status, data.Row.Priority, data.Row.Source))
	b.WriteString(fmt.Sprintf("applied: %s\n", data.Row.DateApplied))
	if data.JobURL != "" {
		b.WriteString("url: " + data.JobURL + "\n")
	}
	if data.EmailUsed != "" {
		b.WriteString("email: " + data.EmailUsed + "\n")
	}
	if data.ResumeFile != "" {
		b.WriteString("resume: " + data.ResumeFile + "\n")
	}
	if len(data.Contacts) > 0 {
		b.WriteString("contacts:\n")
		for _, line := range data.Contacts {
			b.WriteString("  - " + line + "\n")
		}
	}
	if len(data.Referrals) > 0 {
		b.WriteString("referrals:\n")
		for _, line := range data.Referrals {
			b.WriteString("  - " + line + "\n")
		}
	}
	if data.NotesPreview != "" {
		b.WriteString("\nnotes:\n" + data.NotesPreview + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderResumesPanel(data ResumesPanelData) string {
	var b strings.Builder
	b.WriteString("resumes:\n")
	b.WriteString(data.SearchView + "\n")
	if data.FilterSummary != "" {
		b.WriteString("filters: " + data.FilterSummary + "\n")
	}
	b.WriteString("actions: [/]search [f]status [d]preset [space]select [x]all [e]export\n")

	if len(data.Rows) == 0 {
		b.WriteString("(no matching resumes)\n")
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.CursorID {
			cursor = ">"
		}
		mark := " "
		if row.Selected {
			mark = "*"
		}
		b.WriteString(fmt.Sprintf("%s%s %-28s %-18s %-22s %s\n",
			cursor, mark, clip(row.Filename, 28), clip(row.Company, 18), clip(row.Title, 22), row.DateApplied))
	}

	b.WriteString(fmt.Sprintf("page %d/%d | %d records", data.Page, data.TotalPages, data.TotalRecords))
	if data.SelectedCount > 0 {
		b.WriteString(fmt.Sprintf(" | %d selected", data.SelectedCount))
	}
	return strings.TrimSpace(b.String())
}

func RenderExportDialog(data ExportDialogData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nexport:\n")
	b.WriteString("keys: [tab]format [s]scope [1-9]columns [enter]write [esc]cancel\n")
	b.WriteString(fmt.Sprintf("format: %s | scope: %s\n", data.Format, data.Scope))
	b.WriteString("columns: " + strings.Join(data.Columns, ", ") + "\n")
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	if data.Phase != "" {
		b.WriteString("phase: " + data.Phase + "\n")
	}
	if data.Filename != "" {
		b.WriteString("file: " + data.Filename + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderApplicationForm(data ApplicationFormData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nnew application:\n")
	b.WriteString("keys: [tab]next field [enter]save [ctrl+s]save from notes [esc]cancel\n")
	for _, field := range data.Fields {
		marker := " "
		if field.Focused {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", marker, field.Label, field.View))
		if field.Error != "" {
			b.WriteString("  error: " + field.Error + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("calendar:\n")
	b.WriteString("actions: [j/k]agenda [enter]open application\n")
	b.WriteString(data.TableView + "\n")

	grouped := make(map[string][]CalendarAgendaItemData)
	keys := make([]string, 0)
	for _, item := range data.Items {
		if _, ok := grouped[item.Date]; !ok {
			keys = append(keys, item.Date)
		}
		grouped[item.Date] = append(grouped[item.Date], item)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		b.WriteString("(agenda empty)")
		return b.String()
	}

	for _, day := range keys {
		b.WriteString(fmt.Sprintf("\n%s:\n", day))
		items := grouped[day]
		sort.SliceStable(items, func(i, j int) bool { return items[i].Time < items[j].Time })
		for _, item := range items {
			cursor := " "
			if data.Selected != nil && data.Selected.ID == item.ID {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s [%s] %s %s\n", cursor, strings.ToUpper(item.Kind), item.Time, item.Title))
		}
	}

	if data.Selected != nil {
		b.WriteString("\nagenda-metadata:\n")
		b.WriteString(fmt.Sprintf("id: %s\n", data.Selected.ID))
		b.WriteString(fmt.Sprintf("kind: %s\n", data.Selected.Kind))
		b.WriteString(fmt.Sprintf("when: %s %s\n", data.Selected.Date, data.Selected.Time))
	}
	return strings.TrimSpace(b.String())
}

func RenderSettingsPanel(data SettingsPanelData) string {
	opts := make([]string, 0, len(data.PageSizeOptions))
	for _, n := range data.PageSizeOptions {
		if n == data.PageSize {
			opts = append(opts, fmt.Sprintf("[%d]", n))
		} else {
			opts = append(opts, fmt.Sprintf("%d", n))
		}
	}

	rows := []string{
		"page size: " + strings.Join(opts, " "),
		"export dir: " + data.ExportDir,
		"default format: " + data.DefaultFormat,
		fmt.Sprintf("desktop notifications: %v", data.DesktopNotifications),
		fmt.Sprintf("follow-up after: %d days", data.FollowUpDays),
	}

	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("keys: [j/k]row [h/l]change [enter]save\n")
	for i, row := range rows {
		cursor := " "
		if i == data.CursorRow {
			cursor = ">"
		}
		b.WriteString(cursor + " " + row + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: :%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
