package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "trackd-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func testApplication(id string, created time.Time) Application {
	return Application{
		ID:          id,
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
		JobID:       "ACME-42",
		JobURL:      "https://acme.example/jobs/42",
		Status:      "applied",
		Priority:    "high",
		DateApplied: created,
		EmailUsed:   "me@example.com",
		Source:      "linkedin",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestApplicationCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	app := testApplication("app-1", created)
	if err := repo.CreateApplication(ctx, app); err != nil {
		t.Fatalf("create application: %v", err)
	}

	got, err := repo.GetApplication(ctx, app.ID)
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if got.CompanyName != "Acme" || got.Status != "applied" {
		t.Fatalf("unexpected application: %#v", got)
	}
	if !got.DateApplied.Equal(created) {
		t.Fatalf("date applied drifted: %v != %v", got.DateApplied, created)
	}

	app.JobTitle = "Staff Engineer"
	app.Status = "interview"
	if err := repo.UpdateApplication(ctx, app); err != nil {
		t.Fatalf("update application: %v", err)
	}

	interviews, err := repo.ListApplications(ctx, ApplicationListFilter{Status: "interview"})
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	if len(interviews) != 1 || interviews[0].ID != app.ID {
		t.Fatalf("unexpected interview list: %#v", interviews)
	}

	if err := repo.DeleteApplication(ctx, app.ID); err != nil {
		t.Fatalf("delete application: %v", err)
	}
	_, err = repo.GetApplication(ctx, app.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestSetApplicationStatusAndPriority(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	if err := repo.CreateApplication(ctx, testApplication("app-set", created)); err != nil {
		t.Fatalf("create application: %v", err)
	}

	if err := repo.SetApplicationStatus(ctx, "app-set", "offer"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if err := repo.SetApplicationPriority(ctx, "app-set", "low"); err != nil {
		t.Fatalf("set priority: %v", err)
	}

	got, err := repo.GetApplication(ctx, "app-set")
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if got.Status != "offer" || got.Priority != "low" {
		t.Fatalf("unexpected status/priority: %#v", got)
	}

	if err := repo.SetApplicationStatus(ctx, "missing", "offer"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing id, got: %v", err)
	}
}

func TestContactCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	contact := Contact{
		ID:        "contact-1",
		Name:      "Dana",
		Company:   "Acme",
		Role:      "Engineering Manager",
		Email:     "dana@acme.example",
		CreatedAt: now,
	}
	if err := repo.CreateContact(ctx, contact); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	got, err := repo.GetContact(ctx, contact.ID)
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if got.Name != "Dana" {
		t.Fatalf("unexpected contact: %#v", got)
	}

	contact.Role = "Director"
	if err := repo.UpdateContact(ctx, contact); err != nil {
		t.Fatalf("update contact: %v", err)
	}

	list, err := repo.ListContacts(ctx, ContactListFilter{Company: "Acme"})
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(list) != 1 || list[0].Role != "Director" {
		t.Fatalf("unexpected contact list: %#v", list)
	}

	if err := repo.DeleteContact(ctx, contact.ID); err != nil {
		t.Fatalf("delete contact: %v", err)
	}
	_, err = repo.GetContact(ctx, contact.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestReferralMessageCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	contact := Contact{ID: "contact-ref", Name: "Dana", CreatedAt: now}
	if err := repo.CreateContact(ctx, contact); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	msg := ReferralMessage{
		ID:        "ref-1",
		ContactID: contact.ID,
		Company:   "Acme",
		JobTitle:  "Backend Engineer",
		Body:      "Hi Dana, would you refer me?",
		Status:    "draft",
		CreatedAt: now,
	}
	if err := repo.CreateReferralMessage(ctx, msg); err != nil {
		t.Fatalf("create referral: %v", err)
	}

	msg.Status = "sent"
	if err := repo.UpdateReferralMessage(ctx, msg); err != nil {
		t.Fatalf("update referral: %v", err)
	}

	sent, err := repo.ListReferralMessages(ctx, ReferralListFilter{ContactID: contact.ID, Status: "sent"})
	if err != nil {
		t.Fatalf("list referrals: %v", err)
	}
	if len(sent) != 1 || sent[0].ID != msg.ID {
		t.Fatalf("unexpected referral list: %#v", sent)
	}

	if err := repo.DeleteReferralMessage(ctx, msg.ID); err != nil {
		t.Fatalf("delete referral: %v", err)
	}
	_, err = repo.GetReferralMessage(ctx, msg.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestCalendarEventLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	events := []CalendarEvent{
		{ID: "cal-2", Title: "Acme onsite", StartAt: now.Add(48 * time.Hour), EndAt: now.Add(50 * time.Hour), Kind: "interview", CreatedAt: now},
		{ID: "cal-1", Title: "Beta phone screen", StartAt: now.Add(24 * time.Hour), EndAt: now.Add(25 * time.Hour), Kind: "interview", CreatedAt: now},
		CalendarEventFromModel(model.CalendarEvent{
			ID:      "cal-3",
			Title:   "Career fair",
			StartAt: now.Add(72 * time.Hour),
			EndAt:   now.Add(80 * time.Hour),
			Kind:    "networking",
		}, now),
	}
	for _, ev := range events {
		if err := repo.CreateCalendarEvent(ctx, ev); err != nil {
			t.Fatalf("create calendar event %s: %v", ev.ID, err)
		}
	}

	list, err := repo.ListCalendarEvents(ctx, CalendarEventListFilter{})
	if err != nil {
		t.Fatalf("list calendar events: %v", err)
	}
	if len(list) != 3 || list[0].ID != "cal-1" || list[2].ID != "cal-3" {
		t.Fatalf("expected start_at ordering, got: %#v", list)
	}
	if !list[0].StartAt.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("start time drifted: %v", list[0].StartAt)
	}

	interviews, err := repo.ListCalendarEvents(ctx, CalendarEventListFilter{Kind: "interview"})
	if err != nil {
		t.Fatalf("list interviews: %v", err)
	}
	if len(interviews) != 2 {
		t.Fatalf("expected 2 interviews, got: %#v", interviews)
	}

	if err := repo.DeleteCalendarEvent(ctx, "cal-2"); err != nil {
		t.Fatalf("delete calendar event: %v", err)
	}
	if err := repo.DeleteCalendarEvent(ctx, "cal-2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on double delete, got: %v", err)
	}
}

func TestReminderLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	if err := repo.CreateApplication(ctx, testApplication("app-rem", now)); err != nil {
		t.Fatalf("create application: %v", err)
	}

	rem := Reminder{
		ID:            "rem-1",
		ApplicationID: "app-rem",
		Kind:          "follow_up",
		TriggerAt:     now.Add(72 * time.Hour),
		CreatedAt:     now,
	}
	if err := repo.CreateReminder(ctx, rem); err != nil {
		t.Fatalf("create reminder: %v", err)
	}

	pending := false
	list, err := repo.ListReminders(ctx, ReminderListFilter{ApplicationID: "app-rem", Acknowledged: &pending})
	if err != nil {
		t.Fatalf("list reminders: %v", err)
	}
	if len(list) != 1 || list[0].Kind != "follow_up" {
		t.Fatalf("unexpected reminder list: %#v", list)
	}

	if err := repo.AcknowledgeReminder(ctx, rem.ID); err != nil {
		t.Fatalf("acknowledge reminder: %v", err)
	}
	list, err = repo.ListReminders(ctx, ReminderListFilter{ApplicationID: "app-rem", Acknowledged: &pending})
	if err != nil {
		t.Fatalf("list reminders after ack: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no pending reminders, got: %#v", list)
	}

	// Deleting the application cascades to its reminders.
	if err := repo.DeleteApplication(ctx, "app-rem"); err != nil {
		t.Fatalf("delete application: %v", err)
	}
	all, err := repo.ListReminders(ctx, ReminderListFilter{ApplicationID: "app-rem"})
	if err != nil {
		t.Fatalf("list reminders after cascade: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected cascade delete, got: %#v", all)
	}
}

func TestSettings(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.GetSetting(ctx, "page_size"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unset key, got: %v", err)
	}
	if err := repo.PutSetting(ctx, "page_size", "25"); err != nil {
		t.Fatalf("put setting: %v", err)
	}
	if err := repo.PutSetting(ctx, "page_size", "50"); err != nil {
		t.Fatalf("overwrite setting: %v", err)
	}
	got, err := repo.GetSetting(ctx, "page_size")
	if err != nil {
		t.Fatalf("get setting: %v", err)
	}
	if got != "50" {
		t.Fatalf("expected 50, got %q", got)
	}
}

func TestApplicationMutatorRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	if err := repo.CreateApplication(ctx, testApplication("app-mut", created)); err != nil {
		t.Fatalf("create application: %v", err)
	}

	mut := ApplicationMutator{Repo: repo}
	if err := mut.SetStatus(ctx, "app-mut", "interview"); err != nil {
		t.Fatalf("mutator set status: %v", err)
	}
	if err := mut.SetPriority(ctx, "app-mut", "low"); err != nil {
		t.Fatalf("mutator set priority: %v", err)
	}
	got, err := repo.GetApplication(ctx, "app-mut")
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if got.Status != "interview" || got.Priority != "low" {
		t.Fatalf("unexpected mutated record: %#v", got)
	}
	if err := mut.Delete(ctx, "app-mut"); err != nil {
		t.Fatalf("mutator delete: %v", err)
	}
	if _, err := repo.GetApplication(ctx, "app-mut"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
}
