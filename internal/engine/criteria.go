package engine

import (
	"strings"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

// DatePreset names a date-applied window resolved against the supplied
// evaluation time. Preset results are therefore not stable across days.
type DatePreset string

const (
	PresetNone        DatePreset = ""
	PresetToday       DatePreset = "today"
	PresetLast7Days   DatePreset = "last_7_days"
	PresetThisMonth   DatePreset = "this_month"
	PresetThisQuarter DatePreset = "this_quarter"
	PresetThisYear    DatePreset = "this_year"
	PresetLast30Days  DatePreset = "last_30_days"
	PresetLast90Days  DatePreset = "last_90_days"
)

func (p DatePreset) IsValid() bool {
	switch p {
	case PresetNone, PresetToday, PresetLast7Days, PresetThisMonth,
		PresetThisQuarter, PresetThisYear, PresetLast30Days, PresetLast90Days:
		return true
	default:
		return false
	}
}

// Criteria holds every user-controlled filter dimension. A zero value
// for a dimension matches everything; active dimensions are conjunctive.
type Criteria struct {
	Search   string
	Status   model.Status
	Priority model.Priority
	Source   model.Source
	Preset   DatePreset
	// Explicit bounds take precedence over Preset. Each bound applies
	// independently; To covers the whole calendar day it names.
	From *time.Time
	To   *time.Time
}

func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Status == "" && c.Priority == "" && c.Source == "" &&
		c.Preset == PresetNone && c.From == nil && c.To == nil
}

// DateWindow resolves the active date-range filter to concrete bounds.
// A nil bound means unbounded on that side.
func (c Criteria) DateWindow(now time.Time) (start, end *time.Time) {
	if c.From != nil || c.To != nil {
		if c.From != nil {
			s := startOfDay(*c.From)
			start = &s
		}
		if c.To != nil {
			e := endOfDay(*c.To)
			end = &e
		}
		return start, end
	}

	switch c.Preset {
	case PresetToday:
		s, e := startOfDay(now), endOfDay(now)
		return &s, &e
	case PresetLast7Days:
		s, e := now.AddDate(0, 0, -7), endOfDay(now)
		return &s, &e
	case PresetLast30Days:
		s, e := now.AddDate(0, 0, -30), endOfDay(now)
		return &s, &e
	case PresetLast90Days:
		s, e := now.AddDate(0, 0, -90), endOfDay(now)
		return &s, &e
	case PresetThisMonth:
		s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		e := endOfDay(now)
		return &s, &e
	case PresetThisQuarter:
		quarterStart := time.Month(((int(now.Month())-1)/3)*3 + 1)
		s := time.Date(now.Year(), quarterStart, 1, 0, 0, 0, 0, now.Location())
		e := endOfDay(now)
		return &s, &e
	case PresetThisYear:
		s := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		e := endOfDay(now)
		return &s, &e
	default:
		return nil, nil
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
