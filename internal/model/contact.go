package model

import (
	"errors"
	"strings"
	"time"
)

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

func (c Contact) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: contact id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("model: contact name is required")
	}
	return nil
}

type ReferralStatus string

const (
	ReferralDraft ReferralStatus = "draft"
	ReferralSent  ReferralStatus = "sent"
)

type ReferralMessage struct {
	ID        string
	ContactID string
	Company   string
	JobTitle  string
	Body      string
	Status    ReferralStatus
	CreatedAt time.Time
}

func (r ReferralMessage) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: referral message id is required")
	}
	if strings.TrimSpace(r.ContactID) == "" {
		return errors.New("model: referral message contact id is required")
	}
	if r.Status != ReferralDraft && r.Status != ReferralSent {
		return errors.New("model: invalid referral message status")
	}
	return nil
}

type CalendarEvent struct {
	ID      string
	Title   string
	StartAt time.Time
	EndAt   time.Time
	Kind    string
}
