package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/trackd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Applications, Action: "switch to Applications"},
		{Key: m.Keys.Resumes, Action: "switch to Resumes"},
		{Key: m.Keys.Calendar, Action: "switch to Calendar"},
		{Key: m.Keys.Settings, Action: "switch to Settings"},
		{Key: ":", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewApplications:
		return []KeyBinding{
			{Key: "/", Action: "search"},
			{Key: "f/p/o/d", Action: "cycle status/priority/source/date filter"},
			{Key: "F", Action: "clear filters"},
			{Key: "s/S", Action: "cycle sort field / flip direction"},
			{Key: "h/l", Action: "previous/next page"},
			{Key: "z", Action: "cycle page size"},
			{Key: "space", Action: "toggle select"},
			{Key: "x/u", Action: "select all visible / clear selection"},
			{Key: "b", Action: "bulk action on selection"},
			{Key: "e", Action: "export"},
			{Key: "n", Action: "new application"},
		}
	case ViewResumes:
		return []KeyBinding{
			{Key: "/", Action: "search"},
			{Key: "f/d", Action: "cycle status/date filter"},
			{Key: "s", Action: "cycle sort field"},
			{Key: "space", Action: "toggle select"},
			{Key: "x/u", Action: "select all visible / clear selection"},
			{Key: "e", Action: "export"},
		}
	case ViewCalendar:
		return []KeyBinding{
			{Key: "j/k", Action: "move agenda cursor"},
		}
	case ViewSettings:
		return []KeyBinding{
			{Key: "j/k", Action: "move row"},
			{Key: "h/l", Action: "change value"},
			{Key: "enter", Action: "save settings"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
