package engine

import (
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

const exportDateLayout = "2006-01-02"

// Applications is the full-width engine instance used by the
// Applications view.
func Applications() Engine[model.Application] {
	return New(Fields[model.Application]{
		ID: func(a model.Application) string { return a.ID },
		SearchText: func(a model.Application) []string {
			return []string{a.CompanyName, a.JobTitle, a.JobID, a.EmailUsed, a.Notes}
		},
		Status:      func(a model.Application) model.Status { return a.Status },
		Priority:    func(a model.Application) model.Priority { return a.Priority },
		Source:      func(a model.Application) model.Source { return a.Source },
		DateApplied: func(a model.Application) time.Time { return a.DateApplied },
		Company:     func(a model.Application) string { return a.CompanyName },
		Title:       func(a model.Application) string { return a.JobTitle },
		Email:       func(a model.Application) string { return a.EmailUsed },
		ExportValue: applicationExportValue,
	})
}

// Resumes is the reduced instance for the Resumes view. Priority,
// source and email accessors stay nil, so those filter and sort
// dimensions are inert there.
func Resumes() Engine[model.ResumeEntry] {
	return New(Fields[model.ResumeEntry]{
		ID: func(r model.ResumeEntry) string { return r.ApplicationID },
		SearchText: func(r model.ResumeEntry) []string {
			return []string{r.CompanyName, r.JobTitle, r.ResumeFilename, r.Notes}
		},
		Status:      func(r model.ResumeEntry) model.Status { return r.Status },
		DateApplied: func(r model.ResumeEntry) time.Time { return r.DateApplied },
		Company:     func(r model.ResumeEntry) string { return r.CompanyName },
		Title:       func(r model.ResumeEntry) string { return r.JobTitle },
		ExportValue: resumeExportValue,
	})
}

func applicationExportValue(a model.Application, col Column) string {
	switch col {
	case ColCompany:
		return a.CompanyName
	case ColRole:
		return a.JobTitle
	case ColStatus:
		return string(a.Status)
	case ColPriority:
		return string(a.Priority)
	case ColDateApplied:
		return a.DateApplied.Format(exportDateLayout)
	case ColEmail:
		return a.EmailUsed
	case ColSource:
		return string(a.Source)
	case ColNotes:
		return a.Notes
	case ColJobURL:
		return a.JobURL
	case ColResumeFilename:
		return a.ResumeFilename
	default:
		return ""
	}
}

func resumeExportValue(r model.ResumeEntry, col Column) string {
	switch col {
	case ColCompany:
		return r.CompanyName
	case ColRole:
		return r.JobTitle
	case ColStatus:
		return string(r.Status)
	case ColDateApplied:
		return r.DateApplied.Format(exportDateLayout)
	case ColNotes:
		return r.Notes
	case ColResumeFilename:
		return r.ResumeFilename
	default:
		return ""
	}
}
