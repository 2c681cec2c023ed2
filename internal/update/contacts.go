package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/storage"
)

// cursorApplication returns the record under the applications cursor on
// the current page.
func (m Model) cursorApplication() (model.Application, bool) {
	pageItems, _ := m.applicationsPage()
	if m.Apps.Cursor >= len(pageItems) {
		return model.Application{}, false
	}
	return pageItems[m.Apps.Cursor], true
}

func (m Model) contactsForCompany(company string) []model.Contact {
	out := make([]model.Contact, 0)
	for _, c := range m.Contacts {
		if strings.EqualFold(c.Company, company) {
			out = append(out, c)
		}
	}
	return out
}

func (m Model) referralsFor(app model.Application) []model.ReferralMessage {
	out := make([]model.ReferralMessage, 0)
	for _, r := range m.Referrals {
		if strings.EqualFold(r.Company, app.CompanyName) && strings.EqualFold(r.JobTitle, app.JobTitle) {
			out = append(out, r)
		}
	}
	return out
}

func (m Model) findContactByName(name string) (model.Contact, bool) {
	for _, c := range m.Contacts {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return model.Contact{}, false
}

// addContact attaches a new contact to the company under the cursor.
func (m Model) addContact(name, role string) (Model, tea.Cmd, error) {
	app, ok := m.cursorApplication()
	if !ok {
		return m, nil, errors.New("no application under the cursor")
	}
	contact := model.Contact{
		ID:        fmt.Sprintf("contact-%d", m.clock().UnixNano()),
		Name:      name,
		Company:   app.CompanyName,
		Role:      role,
		CreatedAt: m.clock(),
	}
	if err := contact.Validate(); err != nil {
		return m, nil, err
	}
	if m.Repo == nil {
		m.Contacts = append(m.Contacts, contact)
		return m, nil, nil
	}
	return m, createContactCmd(m.Repo, contact), nil
}

// addReferral drafts a referral message from a known contact for the
// application under the cursor.
func (m Model) addReferral(contactName, body string) (Model, tea.Cmd, error) {
	app, ok := m.cursorApplication()
	if !ok {
		return m, nil, errors.New("no application under the cursor")
	}
	contact, ok := m.findContactByName(contactName)
	if !ok {
		return m, nil, fmt.Errorf("unknown contact: %s", contactName)
	}
	draft := model.ReferralMessage{
		ID:        fmt.Sprintf("ref-%d", m.clock().UnixNano()),
		ContactID: contact.ID,
		Company:   app.CompanyName,
		JobTitle:  app.JobTitle,
		Body:      body,
		Status:    model.ReferralDraft,
		CreatedAt: m.clock(),
	}
	if err := draft.Validate(); err != nil {
		return m, nil, err
	}
	if m.Repo == nil {
		m.Referrals = append(m.Referrals, draft)
		return m, nil, nil
	}
	return m, createReferralCmd(m.Repo, draft), nil
}

func (m Model) loadContactsCmd() tea.Cmd {
	if m.Repo == nil {
		return nil
	}
	repo := m.Repo
	return func() tea.Msg {
		records, err := repo.ListContacts(context.Background(), storage.ContactListFilter{})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		contacts := make([]model.Contact, 0, len(records))
		for _, rec := range records {
			contacts = append(contacts, rec.ToModel())
		}
		return ContactsLoadedMsg{Contacts: contacts}
	}
}

func (m Model) loadReferralsCmd() tea.Cmd {
	if m.Repo == nil {
		return nil
	}
	repo := m.Repo
	return func() tea.Msg {
		records, err := repo.ListReferralMessages(context.Background(), storage.ReferralListFilter{})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		referrals := make([]model.ReferralMessage, 0, len(records))
		for _, rec := range records {
			referrals = append(referrals, rec.ToModel())
		}
		return ReferralsLoadedMsg{Referrals: referrals}
	}
}

func createContactCmd(repo storage.Repository, contact model.Contact) tea.Cmd {
	return func() tea.Msg {
		if err := repo.CreateContact(context.Background(), storage.ContactFromModel(contact)); err != nil {
			return AppErrorMsg{Err: err}
		}
		records, err := repo.ListContacts(context.Background(), storage.ContactListFilter{})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		contacts := make([]model.Contact, 0, len(records))
		for _, rec := range records {
			contacts = append(contacts, rec.ToModel())
		}
		return ContactsLoadedMsg{Contacts: contacts}
	}
}

func createReferralCmd(repo storage.Repository, draft model.ReferralMessage) tea.Cmd {
	return func() tea.Msg {
		if err := repo.CreateReferralMessage(context.Background(), storage.ReferralMessageFromModel(draft)); err != nil {
			return AppErrorMsg{Err: err}
		}
		records, err := repo.ListReferralMessages(context.Background(), storage.ReferralListFilter{})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		referrals := make([]model.ReferralMessage, 0, len(records))
		for _, rec := range records {
			referrals = append(referrals, rec.ToModel())
		}
		return ReferralsLoadedMsg{Referrals: referrals}
	}
}
