package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNoColumns  = errors.New("engine: export needs at least one column")
	ErrEmptyScope = errors.New("engine: export scope resolved to zero records")
	ErrBadFormat  = errors.New("engine: unsupported export format")
	ErrBadScope   = errors.New("engine: unsupported export scope")
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

type ExportScope string

const (
	ScopeAll      ExportScope = "all"
	ScopeFiltered ExportScope = "filtered"
	ScopeSelected ExportScope = "selected"
)

// Column is one exportable logical field. The set is closed; the user
// only toggles which members are included.
type Column string

const (
	ColCompany        Column = "company"
	ColRole           Column = "role"
	ColStatus         Column = "status"
	ColPriority       Column = "priority"
	ColDateApplied    Column = "date_applied"
	ColEmail          Column = "email"
	ColSource         Column = "source"
	ColNotes          Column = "notes"
	ColJobURL         Column = "job_url"
	ColResumeFilename Column = "resume_filename"
)

// AllColumns is the export column order; it also fixes CSV header order.
func AllColumns() []Column {
	return []Column{
		ColCompany, ColRole, ColStatus, ColPriority, ColDateApplied,
		ColEmail, ColSource, ColNotes, ColJobURL, ColResumeFilename,
	}
}

func (c Column) Label() string {
	switch c {
	case ColCompany:
		return "Company"
	case ColRole:
		return "Role"
	case ColStatus:
		return "Status"
	case ColPriority:
		return "Priority"
	case ColDateApplied:
		return "Date Applied"
	case ColEmail:
		return "Email"
	case ColSource:
		return "Source"
	case ColNotes:
		return "Notes"
	case ColJobURL:
		return "Job URL"
	case ColResumeFilename:
		return "Resume Filename"
	default:
		return string(c)
	}
}

type ExportRequest struct {
	Entity  string
	Scope   ExportScope
	Format  ExportFormat
	Columns []Column
}

// Document is a finished export artifact: deterministic filename plus
// serialized content, ready to be written to disk.
type Document struct {
	Filename string
	Content  []byte
	Records  int
}

type exportMetadata struct {
	ExportedAt  string `json:"exported_at"`
	Scope       string `json:"scope"`
	RecordCount int    `json:"record_count"`
}

type exportEnvelope struct {
	Meta exportMetadata      `json:"meta"`
	Data []map[string]string `json:"data"`
}

// Export serializes the already-scoped record list. Scope resolution
// (all vs filtered vs selected) happens at the caller, which owns those
// sets; validation still fails fast here before anything is built.
func (e Engine[T]) Export(records []T, req ExportRequest, now time.Time) (Document, error) {
	if len(req.Columns) == 0 {
		return Document{}, ErrNoColumns
	}
	switch req.Scope {
	case ScopeAll, ScopeFiltered, ScopeSelected:
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrBadScope, req.Scope)
	}
	if len(records) == 0 {
		return Document{}, ErrEmptyScope
	}

	var content []byte
	var err error
	switch req.Format {
	case FormatCSV:
		content = e.buildCSV(records, req.Columns)
	case FormatJSON:
		content, err = e.buildJSON(records, req.Columns, req.Scope, now)
		if err != nil {
			return Document{}, err
		}
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrBadFormat, req.Format)
	}

	entity := req.Entity
	if entity == "" {
		entity = "records"
	}
	return Document{
		Filename: fmt.Sprintf("%s-%s-%s.%s", entity, req.Scope, now.Format("2006-01-02"), req.Format),
		Content:  content,
		Records:  len(records),
	}, nil
}

// buildCSV always quotes every cell and doubles embedded quotes. Rows
// keep the order of the incoming scope.
func (e Engine[T]) buildCSV(records []T, columns []Column) []byte {
	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(csvQuote(col.Label()))
	}
	b.WriteByte('\n')
	for _, rec := range records {
		for i, col := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvQuote(e.exportValue(rec, col)))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func (e Engine[T]) buildJSON(records []T, columns []Column, scope ExportScope, now time.Time) ([]byte, error) {
	envelope := exportEnvelope{
		Meta: exportMetadata{
			ExportedAt:  now.UTC().Format(time.RFC3339),
			Scope:       string(scope),
			RecordCount: len(records),
		},
		Data: make([]map[string]string, 0, len(records)),
	}
	for _, rec := range records {
		row := make(map[string]string, len(columns))
		for _, col := range columns {
			row[col.Label()] = e.exportValue(rec, col)
		}
		envelope.Data = append(envelope.Data, row)
	}
	return json.MarshalIndent(envelope, "", "  ")
}

func (e Engine[T]) exportValue(rec T, col Column) string {
	if e.fields.ExportValue == nil {
		return ""
	}
	return e.fields.ExportValue(rec, col)
}

func csvQuote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
