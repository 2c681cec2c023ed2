package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateApplication(ctx context.Context, in Application) error
	GetApplication(ctx context.Context, id string) (Application, error)
	UpdateApplication(ctx context.Context, in Application) error
	DeleteApplication(ctx context.Context, id string) error
	ListApplications(ctx context.Context, filter ApplicationListFilter) ([]Application, error)
	SetApplicationStatus(ctx context.Context, id, status string) error
	SetApplicationPriority(ctx context.Context, id, priority string) error

	CreateContact(ctx context.Context, in Contact) error
	GetContact(ctx context.Context, id string) (Contact, error)
	UpdateContact(ctx context.Context, in Contact) error
	DeleteContact(ctx context.Context, id string) error
	ListContacts(ctx context.Context, filter ContactListFilter) ([]Contact, error)

	CreateReferralMessage(ctx context.Context, in ReferralMessage) error
	GetReferralMessage(ctx context.Context, id string) (ReferralMessage, error)
	UpdateReferralMessage(ctx context.Context, in ReferralMessage) error
	DeleteReferralMessage(ctx context.Context, id string) error
	ListReferralMessages(ctx context.Context, filter ReferralListFilter) ([]ReferralMessage, error)

	CreateCalendarEvent(ctx context.Context, in CalendarEvent) error
	DeleteCalendarEvent(ctx context.Context, id string) error
	ListCalendarEvents(ctx context.Context, filter CalendarEventListFilter) ([]CalendarEvent, error)

	CreateReminder(ctx context.Context, in Reminder) error
	DeleteReminder(ctx context.Context, id string) error
	ListReminders(ctx context.Context, filter ReminderListFilter) ([]Reminder, error)
	AcknowledgeReminder(ctx context.Context, id string) error

	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
}
