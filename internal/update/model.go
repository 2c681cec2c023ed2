package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/trackd/internal/engine"
	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/scheduler"
	"github.com/sandeepkv93/trackd/internal/storage"
)

type View string

const (
	ViewApplications View = "Applications"
	ViewResumes      View = "Resumes"
	ViewCalendar     View = "Calendar"
	ViewSettings     View = "Settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Applications string
	Resumes      string
	Calendar     string
	Settings     string
	Help         string
	Quit         string
}

// ListState is the per-view derived-state input: what the engine needs
// to project a visible page. Both list views carry one.
type ListState struct {
	Criteria  engine.Criteria
	Sort      engine.SortSpec
	Page      int
	PageSize  int
	Cursor    int
	Selection *engine.Selection
	Searching bool
}

// ResetPage implements the rule that any change to filters, search,
// sort or page size snaps the window back to the first page.
func (s *ListState) ResetPage() {
	s.Page = 1
	s.Cursor = 0
}

type ExportPhase string

const (
	ExportClosed     ExportPhase = "closed"
	ExportOpen       ExportPhase = "open"
	ExportValidating ExportPhase = "validating"
	ExportWriting    ExportPhase = "writing"
)

type ExportState struct {
	Phase    ExportPhase
	Format   engine.ExportFormat
	Scope    engine.ExportScope
	Columns  map[engine.Column]bool
	Err      string
	LastFile string
}

func (s ExportState) SelectedColumns() []engine.Column {
	out := make([]engine.Column, 0, len(s.Columns))
	for _, col := range engine.AllColumns() {
		if s.Columns[col] {
			out = append(out, col)
		}
	}
	return out
}

type FormState struct {
	Active bool
	Focus  int
	Err    string
}

type AgendaItem struct {
	ID    string
	Title string
	Date  string
	Time  string
	Kind  string
}

type CalendarState struct {
	Items  []AgendaItem
	Cursor int
}

type SettingsState struct {
	CursorRow            int
	PageSize             int
	ExportDir            string
	DefaultFormat        engine.ExportFormat
	DesktopNotifications bool
	FollowUpDays         int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type Model struct {
	CurrentView View

	Records   []model.Application
	Contacts  []model.Contact
	Referrals []model.ReferralMessage
	Events    []model.CalendarEvent

	Apps     ListState
	Resumes  ListState
	Export   ExportState
	Form     FormState
	Calendar CalendarState
	Settings SettingsState
	Palette  CommandPaletteState

	BulkActive bool

	Scheduler   *scheduler.Engine
	FollowUpLog []scheduler.FollowUpEvent

	Repo    storage.Repository
	Mutator engine.Mutator

	Status         StatusBar
	Keys           GlobalKeyMap
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Quitting       bool
	LastError      error

	appsEngine   engine.Engine[model.Application]
	resumeEngine engine.Engine[model.ResumeEntry]
	exportEntity string

	clock func() time.Time

	searchInput   textinput.Model
	commandInput  textinput.Model
	formInputs    []textinput.Model
	notesArea     textarea.Model
	calendarTable table.Model
	exportSpinner spinner.Model
	helpModel     help.Model
	notesViewport viewport.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ApplicationsLoadedMsg struct {
	Apps []model.Application
}

type ContactsLoadedMsg struct {
	Contacts []model.Contact
}

type ReferralsLoadedMsg struct {
	Referrals []model.ReferralMessage
}

type CalendarEventsLoadedMsg struct {
	Events []model.CalendarEvent
}

type BulkDoneMsg struct {
	Outcome engine.BulkOutcome
}

type ExportDoneMsg struct {
	Path    string
	Records int
	Err     error
}

type FollowUpDueMsg struct {
	Event scheduler.FollowUpEvent
}

type SettingsSavedMsg struct {
	Err error
}

func NewModel() Model {
	m := Model{
		CurrentView: ViewApplications,
		Apps: ListState{
			Page:      1,
			PageSize:  engine.DefaultPageSize,
			Selection: engine.NewSelection(),
		},
		Resumes: ListState{
			Page:      1,
			PageSize:  engine.DefaultPageSize,
			Selection: engine.NewSelection(),
		},
		Export: ExportState{
			Phase:  ExportClosed,
			Format: engine.FormatCSV,
			Scope:  engine.ScopeFiltered,
		},
		Settings: SettingsState{
			PageSize:      engine.DefaultPageSize,
			ExportDir:     ".",
			DefaultFormat: engine.FormatCSV,
			FollowUpDays:  7,
		},
		Keys: GlobalKeyMap{
			Applications: "1",
			Resumes:      "2",
			Calendar:     "3",
			Settings:     "4",
			Help:         "?",
			Quit:         "q",
		},
		notifier:     NoopDesktopNotifier{},
		appsEngine:   engine.Applications(),
		resumeEngine: engine.Resumes(),
		clock:        func() time.Time { return time.Now().UTC() },
	}
	m.resetExportColumns()
	m.initBubbleComponents()
	return m
}

func NewModelWithConfig(engineTimer *scheduler.Engine, repo storage.Repository, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModel()
	m.Scheduler = engineTimer
	m.Repo = repo
	if repo != nil {
		m.Mutator = storage.ApplicationMutator{Repo: repo}
	}
	if notifier != nil {
		m.notifier = notifier
	}
	m.DesktopEnabled = cfg.DesktopNotifications
	if cfg.PageSize > 0 {
		m.Apps.PageSize = cfg.PageSize
		m.Resumes.PageSize = cfg.PageSize
		m.Settings.PageSize = cfg.PageSize
	}
	if cfg.ExportDir != "" {
		m.Settings.ExportDir = cfg.ExportDir
	}
	if cfg.DefaultExportFormat != "" {
		m.Settings.DefaultFormat = cfg.DefaultExportFormat
		m.Export.Format = cfg.DefaultExportFormat
	}
	if cfg.FollowUpDays > 0 {
		m.Settings.FollowUpDays = cfg.FollowUpDays
	}
	return m
}

func (m *Model) resetExportColumns() {
	m.Export.Columns = make(map[engine.Column]bool)
	for _, col := range engine.AllColumns() {
		m.Export.Columns[col] = true
	}
}

func (m *Model) initBubbleComponents() {
	search := textinput.New()
	search.Placeholder = "search company, title, notes..."
	search.CharLimit = 120
	m.searchInput = search

	command := textinput.New()
	command.Placeholder = "add <company> / <title> | filter status:offer | contact <name> / <role> | export csv filtered"
	command.CharLimit = 200
	m.commandInput = command

	m.formInputs = newFormInputs()

	notes := textarea.New()
	notes.Placeholder = "notes (markdown)"
	m.notesArea = notes

	m.calendarTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Time", Width: 7},
			{Title: "Kind", Width: 10},
			{Title: "Title", Width: 34},
		}),
		table.WithHeight(8),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m.exportSpinner = sp

	m.helpModel = help.New()
	m.notesViewport = viewport.New(50, 8)
}

// ResumeRecords derives the resume list from the loaded applications.
// Applications without a resume filename contribute nothing.
func (m Model) ResumeRecords() []model.ResumeEntry {
	out := make([]model.ResumeEntry, 0, len(m.Records))
	for _, app := range m.Records {
		if app.ResumeFilename == "" {
			continue
		}
		out = append(out, model.ResumeEntryFromApplication(app))
	}
	return out
}
