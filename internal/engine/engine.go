// Package engine derives the visible record set for a list view: it
// filters, sorts, paginates, tracks selection and feeds bulk actions and
// exports. Everything here is a pure in-memory transformation; the
// evaluation time is always passed in so behavior is reproducible.
package engine

import (
	"sort"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

// Fields adapts a record type to the engine. Accessors left nil make the
// matching filter dimension accept everything and the matching sort
// field compare equal, so the reduced Resumes instance shares all logic.
type Fields[T any] struct {
	ID          func(T) string
	SearchText  func(T) []string
	Status      func(T) model.Status
	Priority    func(T) model.Priority
	Source      func(T) model.Source
	DateApplied func(T) time.Time
	Company     func(T) string
	Title       func(T) string
	Email       func(T) string
	ExportValue func(T, Column) string
}

type Engine[T any] struct {
	fields Fields[T]
}

func New[T any](fields Fields[T]) Engine[T] {
	return Engine[T]{fields: fields}
}

// Project applies the filter pass then a stable sort and returns the
// visible set. The input slice is never mutated.
func (e Engine[T]) Project(records []T, c Criteria, spec SortSpec, now time.Time) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if e.Matches(rec, c, now) {
			out = append(out, rec)
		}
	}
	if spec.Field != "" {
		sort.SliceStable(out, func(i, j int) bool {
			cmp := e.compare(out[i], out[j], spec.Field, now)
			if spec.Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	return out
}

// Matches reports whether a record satisfies every active dimension.
func (e Engine[T]) Matches(rec T, c Criteria, now time.Time) bool {
	if c.Search != "" && e.fields.SearchText != nil {
		found := false
		for _, text := range e.fields.SearchText(rec) {
			if containsFold(text, c.Search) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.Status != "" && e.fields.Status != nil && e.fields.Status(rec) != c.Status {
		return false
	}
	if c.Priority != "" && e.fields.Priority != nil && e.fields.Priority(rec) != c.Priority {
		return false
	}
	if c.Source != "" && e.fields.Source != nil && e.fields.Source(rec) != c.Source {
		return false
	}

	start, end := c.DateWindow(now)
	if start != nil || end != nil {
		if e.fields.DateApplied == nil {
			return true
		}
		applied := e.fields.DateApplied(rec)
		if start != nil && applied.Before(*start) {
			return false
		}
		if end != nil && applied.After(*end) {
			return false
		}
	}
	return true
}

// RelevanceScore is the composite ranking: twice the priority rank, plus
// the status score, plus a recency bonus that decays linearly to zero at
// 30 days since the application date.
func (e Engine[T]) RelevanceScore(rec T, now time.Time) int {
	score := 0
	if e.fields.Priority != nil {
		score += 2 * e.fields.Priority(rec).Rank()
	}
	if e.fields.Status != nil {
		score += e.fields.Status(rec).RelevanceScore()
	}
	if e.fields.DateApplied != nil {
		days := int(now.Sub(e.fields.DateApplied(rec)).Hours() / 24)
		if days < 0 {
			days = 0
		}
		if recency := 30 - days; recency > 0 {
			score += recency
		}
	}
	return score
}

func (e Engine[T]) compare(a, b T, field SortField, now time.Time) int {
	switch field {
	case SortByCompany:
		return e.compareString(e.fields.Company, a, b)
	case SortByTitle:
		return e.compareString(e.fields.Title, a, b)
	case SortByEmail:
		return e.compareString(e.fields.Email, a, b)
	case SortBySource:
		if e.fields.Source == nil {
			return 0
		}
		return compareFold(string(e.fields.Source(a)), string(e.fields.Source(b)))
	case SortByDate:
		if e.fields.DateApplied == nil {
			return 0
		}
		return compareInt64(e.fields.DateApplied(a).UnixNano(), e.fields.DateApplied(b).UnixNano())
	case SortByStatus:
		if e.fields.Status == nil {
			return 0
		}
		return e.fields.Status(a).SortRank() - e.fields.Status(b).SortRank()
	case SortByPriority:
		if e.fields.Priority == nil {
			return 0
		}
		return e.fields.Priority(a).Rank() - e.fields.Priority(b).Rank()
	case SortByRelevance:
		return e.RelevanceScore(a, now) - e.RelevanceScore(b, now)
	default:
		return 0
	}
}

func (e Engine[T]) compareString(get func(T) string, a, b T) int {
	if get == nil {
		return 0
	}
	return compareFold(get(a), get(b))
}

func (e Engine[T]) RecordID(rec T) string {
	if e.fields.ID == nil {
		return ""
	}
	return e.fields.ID(rec)
}

// VisibleIDs projects the identifier list of an already-projected set,
// in order. Select-all operates on this, not on the current page.
func (e Engine[T]) VisibleIDs(visible []T) []string {
	out := make([]string, 0, len(visible))
	for _, rec := range visible {
		out = append(out, e.RecordID(rec))
	}
	return out
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
