package engine

import "strings"

type SortField string

const (
	SortByCompany   SortField = "company"
	SortByTitle     SortField = "title"
	SortByDate      SortField = "date_applied"
	SortByStatus    SortField = "status"
	SortByPriority  SortField = "priority"
	SortBySource    SortField = "source"
	SortByEmail     SortField = "email"
	SortByRelevance SortField = "relevance"
)

func (f SortField) IsValid() bool {
	switch f {
	case SortByCompany, SortByTitle, SortByDate, SortByStatus,
		SortByPriority, SortBySource, SortByEmail, SortByRelevance:
		return true
	default:
		return false
	}
}

type SortSpec struct {
	Field SortField
	Desc  bool
}

// Toggle implements the header-click rule: re-selecting the active field
// flips its direction, selecting a new field resets to ascending.
func (s SortSpec) Toggle(field SortField) SortSpec {
	if s.Field == field {
		return SortSpec{Field: field, Desc: !s.Desc}
	}
	return SortSpec{Field: field}
}

// compareFold is the shared case-insensitive string comparator.
func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
