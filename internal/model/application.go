package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid application status")
	ErrInvalidPriority = errors.New("model: invalid application priority")
	ErrInvalidSource   = errors.New("model: invalid application source")
)

type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
	StatusPending   Status = "pending"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusWithdrawn, StatusPending:
		return true
	default:
		return false
	}
}

// SortRank orders statuses for the status sort column. Unrecognized
// values rank 0 so bad data sinks to the bottom instead of erroring.
func (s Status) SortRank() int {
	switch s {
	case StatusOffer:
		return 6
	case StatusInterview:
		return 5
	case StatusApplied:
		return 4
	case StatusPending:
		return 3
	case StatusRejected:
		return 2
	case StatusWithdrawn:
		return 1
	default:
		return 0
	}
}

// RelevanceScore is the status contribution to the composite relevance
// sort. It is deliberately a different scale than SortRank.
func (s Status) RelevanceScore() int {
	switch s {
	case StatusOffer:
		return 10
	case StatusInterview:
		return 8
	case StatusApplied:
		return 6
	case StatusPending:
		return 4
	case StatusRejected:
		return 2
	case StatusWithdrawn:
		return 1
	default:
		return 0
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type Source string

const (
	SourceLinkedIn       Source = "linkedin"
	SourceIndeed         Source = "indeed"
	SourceCompanyWebsite Source = "company_website"
	SourceGlassdoor      Source = "glassdoor"
	SourceAngelList      Source = "angelist"
	SourceYC             Source = "yc"
	SourceReferral       Source = "referral"
	SourceOther          Source = "other"
)

func (s Source) IsValid() bool {
	switch s {
	case SourceLinkedIn, SourceIndeed, SourceCompanyWebsite, SourceGlassdoor,
		SourceAngelList, SourceYC, SourceReferral, SourceOther:
		return true
	default:
		return false
	}
}

type Application struct {
	ID                  string
	CompanyName         string
	JobTitle            string
	JobID               string
	JobURL              string
	PortalURL           string
	Status              Status
	Priority            Priority
	DateApplied         time.Time
	EmailUsed           string
	Source              Source
	Notes               string
	ResumeFilename      string
	CoverLetterFilename string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (a Application) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("model: application id is required")
	}
	if strings.TrimSpace(a.CompanyName) == "" {
		return errors.New("model: company name is required")
	}
	if strings.TrimSpace(a.JobTitle) == "" {
		return errors.New("model: job title is required")
	}
	if !a.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}
	if !a.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, a.Priority)
	}
	if !a.Source.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSource, a.Source)
	}
	if a.DateApplied.IsZero() {
		return errors.New("model: date applied is required")
	}
	return nil
}

// ResumeEntry is the reduced projection the Resumes view operates on.
type ResumeEntry struct {
	ApplicationID  string
	CompanyName    string
	JobTitle       string
	DateApplied    time.Time
	ResumeFilename string
	Status         Status
	Notes          string
}

func ResumeEntryFromApplication(a Application) ResumeEntry {
	return ResumeEntry{
		ApplicationID:  a.ID,
		CompanyName:    a.CompanyName,
		JobTitle:       a.JobTitle,
		DateApplied:    a.DateApplied,
		ResumeFilename: a.ResumeFilename,
		Status:         a.Status,
		Notes:          a.Notes,
	}
}
