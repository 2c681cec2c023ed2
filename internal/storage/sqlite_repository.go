package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) CreateApplication(ctx context.Context, in Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO applications (id, company_name, job_title, job_id, job_url, portal_url, status, priority,
			date_applied, email_used, source, notes, resume_filename, cover_letter_filename, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.CompanyName, in.JobTitle, in.JobID, in.JobURL, in.PortalURL, in.Status, in.Priority,
		mustTime(in.DateApplied), in.EmailUsed, in.Source, in.Notes, in.ResumeFilename, in.CoverLetterFilename,
		mustTime(in.CreatedAt), mustTime(in.UpdatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetApplication(ctx context.Context, id string) (Application, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, company_name, job_title, job_id, job_url, portal_url, status, priority,
			date_applied, email_used, source, notes, resume_filename, cover_letter_filename, created_at, updated_at
		FROM applications WHERE id = ?`, id)
	item, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateApplication(ctx context.Context, in Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE applications
		SET company_name = ?, job_title = ?, job_id = ?, job_url = ?, portal_url = ?, status = ?, priority = ?,
			date_applied = ?, email_used = ?, source = ?, notes = ?, resume_filename = ?, cover_letter_filename = ?,
			updated_at = ?
		WHERE id = ?`,
		in.CompanyName, in.JobTitle, in.JobID, in.JobURL, in.PortalURL, in.Status, in.Priority,
		mustTime(in.DateApplied), in.EmailUsed, in.Source, in.Notes, in.ResumeFilename, in.CoverLetterFilename,
		mustTime(in.UpdatedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteApplication(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// ListApplications returns the full set by default; the engine does all
// user-facing filtering client-side on the fetched snapshot.
func (r *SQLiteRepository) ListApplications(ctx context.Context, filter ApplicationListFilter) ([]Application, error) {
	query := `SELECT id, company_name, job_title, job_id, job_url, portal_url, status, priority,
		date_applied, email_used, source, notes, resume_filename, cover_letter_filename, created_at, updated_at
		FROM applications`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, filter.Source)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY date_applied DESC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Application, 0)
	for rows.Next() {
		item, scanErr := scanApplication(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SetApplicationStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE applications SET status = ?, updated_at = ? WHERE id = ?`,
		status, mustTime(time.Now().UTC()), id,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) SetApplicationPriority(ctx context.Context, id, priority string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE applications SET priority = ?, updated_at = ? WHERE id = ?`,
		priority, mustTime(time.Now().UTC()), id,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) CreateContact(ctx context.Context, in Contact) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (id, name, company, role, email, linkedin_url, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Company, in.Role, in.Email, in.LinkedInURL, in.Notes, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetContact(ctx context.Context, id string) (Contact, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, company, role, email, linkedin_url, notes, created_at
		FROM contacts WHERE id = ?`, id)
	item, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Contact{}, ErrNotFound
		}
		return Contact{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateContact(ctx context.Context, in Contact) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET name = ?, company = ?, role = ?, email = ?, linkedin_url = ?, notes = ?
		WHERE id = ?`,
		in.Name, in.Company, in.Role, in.Email, in.LinkedInURL, in.Notes, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteContact(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListContacts(ctx context.Context, filter ContactListFilter) ([]Contact, error) {
	query := `SELECT id, name, company, role, email, linkedin_url, notes, created_at FROM contacts`
	args := make([]any, 0, 3)
	if filter.Company != "" {
		query += ` WHERE company = ?`
		args = append(args, filter.Company)
	}
	query += ` ORDER BY name ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Contact, 0)
	for rows.Next() {
		item, scanErr := scanContact(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateReferralMessage(ctx context.Context, in ReferralMessage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO referral_messages (id, contact_id, company, job_title, body, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.ContactID, in.Company, in.JobTitle, in.Body, in.Status, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetReferralMessage(ctx context.Context, id string) (ReferralMessage, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, contact_id, company, job_title, body, status, created_at
		FROM referral_messages WHERE id = ?`, id)
	item, err := scanReferral(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ReferralMessage{}, ErrNotFound
		}
		return ReferralMessage{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateReferralMessage(ctx context.Context, in ReferralMessage) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE referral_messages SET contact_id = ?, company = ?, job_title = ?, body = ?, status = ?
		WHERE id = ?`,
		in.ContactID, in.Company, in.JobTitle, in.Body, in.Status, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteReferralMessage(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM referral_messages WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListReferralMessages(ctx context.Context, filter ReferralListFilter) ([]ReferralMessage, error) {
	query := `SELECT id, contact_id, company, job_title, body, status, created_at FROM referral_messages`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.ContactID != "" {
		clauses = append(clauses, "contact_id = ?")
		args = append(args, filter.ContactID)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReferralMessage, 0)
	for rows.Next() {
		item, scanErr := scanReferral(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateCalendarEvent(ctx context.Context, in CalendarEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calendar_events (id, title, start_at, end_at, kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, mustTime(in.StartAt), mustTime(in.EndAt), in.Kind, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) DeleteCalendarEvent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListCalendarEvents(ctx context.Context, filter CalendarEventListFilter) ([]CalendarEvent, error) {
	query := `SELECT id, title, start_at, end_at, kind, created_at FROM calendar_events`
	args := make([]any, 0, 3)
	if filter.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, filter.Kind)
	}
	query += ` ORDER BY start_at ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CalendarEvent, 0)
	for rows.Next() {
		item, scanErr := scanCalendarEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateReminder(ctx context.Context, in Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (id, application_id, kind, trigger_at, acknowledged, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.ApplicationID, in.Kind, mustTime(in.TriggerAt), boolInt(in.Acknowledged), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) DeleteReminder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListReminders(ctx context.Context, filter ReminderListFilter) ([]Reminder, error) {
	query := `SELECT id, application_id, kind, trigger_at, acknowledged, created_at FROM reminders`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.ApplicationID != "" {
		clauses = append(clauses, "application_id = ?")
		args = append(args, filter.ApplicationID)
	}
	if filter.Acknowledged != nil {
		clauses = append(clauses, "acknowledged = ?")
		args = append(args, boolInt(*filter.Acknowledged))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY trigger_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Reminder, 0)
	for rows.Next() {
		item, scanErr := scanReminder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) AcknowledgeReminder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reminders SET acknowledged = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepository) PutSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(s scanner) (Application, error) {
	var out Application
	var applied, created, updated string
	if err := s.Scan(&out.ID, &out.CompanyName, &out.JobTitle, &out.JobID, &out.JobURL, &out.PortalURL,
		&out.Status, &out.Priority, &applied, &out.EmailUsed, &out.Source, &out.Notes,
		&out.ResumeFilename, &out.CoverLetterFilename, &created, &updated); err != nil {
		return Application{}, err
	}
	dateApplied, err := parseRequiredTime(applied)
	if err != nil {
		return Application{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Application{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Application{}, err
	}
	out.DateApplied = dateApplied
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func scanContact(s scanner) (Contact, error) {
	var out Contact
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Company, &out.Role, &out.Email, &out.LinkedInURL, &out.Notes, &created); err != nil {
		return Contact{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Contact{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func scanReferral(s scanner) (ReferralMessage, error) {
	var out ReferralMessage
	var created string
	if err := s.Scan(&out.ID, &out.ContactID, &out.Company, &out.JobTitle, &out.Body, &out.Status, &created); err != nil {
		return ReferralMessage{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return ReferralMessage{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func scanCalendarEvent(s scanner) (CalendarEvent, error) {
	var out CalendarEvent
	var start, end, created string
	if err := s.Scan(&out.ID, &out.Title, &start, &end, &out.Kind, &created); err != nil {
		return CalendarEvent{}, err
	}
	startAt, err := parseRequiredTime(start)
	if err != nil {
		return CalendarEvent{}, err
	}
	endAt, err := parseRequiredTime(end)
	if err != nil {
		return CalendarEvent{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return CalendarEvent{}, err
	}
	out.StartAt = startAt
	out.EndAt = endAt
	out.CreatedAt = createdAt
	return out, nil
}

func scanReminder(s scanner) (Reminder, error) {
	var out Reminder
	var trigger, created string
	var ack int
	if err := s.Scan(&out.ID, &out.ApplicationID, &out.Kind, &trigger, &ack, &created); err != nil {
		return Reminder{}, err
	}
	triggerAt, err := parseRequiredTime(trigger)
	if err != nil {
		return Reminder{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Reminder{}, err
	}
	out.TriggerAt = triggerAt
	out.CreatedAt = createdAt
	out.Acknowledged = ack == 1
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
