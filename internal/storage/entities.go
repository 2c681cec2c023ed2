package storage

import (
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

type Application struct {
	ID                  string
	CompanyName         string
	JobTitle            string
	JobID               string
	JobURL              string
	PortalURL           string
	Status              string
	Priority            string
	DateApplied         time.Time
	EmailUsed           string
	Source              string
	Notes               string
	ResumeFilename      string
	CoverLetterFilename string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (a Application) ToModel() model.Application {
	return model.Application{
		ID:                  a.ID,
		CompanyName:         a.CompanyName,
		JobTitle:            a.JobTitle,
		JobID:               a.JobID,
		JobURL:              a.JobURL,
		PortalURL:           a.PortalURL,
		Status:              model.Status(a.Status),
		Priority:            model.Priority(a.Priority),
		DateApplied:         a.DateApplied,
		EmailUsed:           a.EmailUsed,
		Source:              model.Source(a.Source),
		Notes:               a.Notes,
		ResumeFilename:      a.ResumeFilename,
		CoverLetterFilename: a.CoverLetterFilename,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func ApplicationFromModel(a model.Application) Application {
	return Application{
		ID:                  a.ID,
		CompanyName:         a.CompanyName,
		JobTitle:            a.JobTitle,
		JobID:               a.JobID,
		JobURL:              a.JobURL,
		PortalURL:           a.PortalURL,
		Status:              string(a.Status),
		Priority:            string(a.Priority),
		DateApplied:         a.DateApplied,
		EmailUsed:           a.EmailUsed,
		Source:              string(a.Source),
		Notes:               a.Notes,
		ResumeFilename:      a.ResumeFilename,
		CoverLetterFilename: a.CoverLetterFilename,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

type Contact struct {
	ID          string
	Name        string
	Company     string
	Role        string
	Email       string
	LinkedInURL string
	Notes       string
	CreatedAt   time.Time
}

func (c Contact) ToModel() model.Contact {
	return model.Contact{
		ID:          c.ID,
		Name:        c.Name,
		Company:     c.Company,
		Role:        c.Role,
		Email:       c.Email,
		LinkedInURL: c.LinkedInURL,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
	}
}

func ContactFromModel(c model.Contact) Contact {
	return Contact{
		ID:          c.ID,
		Name:        c.Name,
		Company:     c.Company,
		Role:        c.Role,
		Email:       c.Email,
		LinkedInURL: c.LinkedInURL,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
	}
}

type ReferralMessage struct {
	ID        string
	ContactID string
	Company   string
	JobTitle  string
	Body      string
	Status    string
	CreatedAt time.Time
}

func (r ReferralMessage) ToModel() model.ReferralMessage {
	return model.ReferralMessage{
		ID:        r.ID,
		ContactID: r.ContactID,
		Company:   r.Company,
		JobTitle:  r.JobTitle,
		Body:      r.Body,
		Status:    model.ReferralStatus(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func ReferralMessageFromModel(r model.ReferralMessage) ReferralMessage {
	return ReferralMessage{
		ID:        r.ID,
		ContactID: r.ContactID,
		Company:   r.Company,
		JobTitle:  r.JobTitle,
		Body:      r.Body,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

type Reminder struct {
	ID            string
	ApplicationID string
	Kind          string
	TriggerAt     time.Time
	Acknowledged  bool
	CreatedAt     time.Time
}

type CalendarEvent struct {
	ID        string
	Title     string
	StartAt   time.Time
	EndAt     time.Time
	Kind      string
	CreatedAt time.Time
}

func (e CalendarEvent) ToModel() model.CalendarEvent {
	return model.CalendarEvent{
		ID:      e.ID,
		Title:   e.Title,
		StartAt: e.StartAt,
		EndAt:   e.EndAt,
		Kind:    e.Kind,
	}
}

func CalendarEventFromModel(e model.CalendarEvent, createdAt time.Time) CalendarEvent {
	return CalendarEvent{
		ID:        e.ID,
		Title:     e.Title,
		StartAt:   e.StartAt,
		EndAt:     e.EndAt,
		Kind:      e.Kind,
		CreatedAt: createdAt,
	}
}

type ApplicationListFilter struct {
	Status string
	Source string
	Limit  int
	Offset int
}

type ContactListFilter struct {
	Company string
	Limit   int
	Offset  int
}

type ReferralListFilter struct {
	ContactID string
	Status    string
	Limit     int
	Offset    int
}

type ReminderListFilter struct {
	ApplicationID string
	Acknowledged  *bool
	Limit         int
	Offset        int
}

type CalendarEventListFilter struct {
	Kind   string
	Limit  int
	Offset int
}
