package engine

import "sort"

// Selection tracks the set of selected record identifiers. It survives
// re-filtering and pagination on purpose; only select-all is scoped to
// the currently visible set.
type Selection struct {
	ids map[string]bool
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]bool)}
}

func (s *Selection) ensure() {
	if s.ids == nil {
		s.ids = make(map[string]bool)
	}
}

func (s *Selection) Toggle(id string) {
	if id == "" {
		return
	}
	s.ensure()
	if s.ids[id] {
		delete(s.ids, id)
		return
	}
	s.ids[id] = true
}

func (s *Selection) Has(id string) bool {
	return s.ids[id]
}

func (s *Selection) Count() int {
	return len(s.ids)
}

func (s *Selection) Clear() {
	s.ids = make(map[string]bool)
}

// IDs returns the selected identifiers in a stable order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AllSelected reports whether the selection is exactly the visible set.
// A superset left over from an earlier, wider filter does not count.
func (s *Selection) AllSelected(visibleIDs []string) bool {
	if len(visibleIDs) == 0 || len(s.ids) != len(visibleIDs) {
		return false
	}
	for _, id := range visibleIDs {
		if !s.ids[id] {
			return false
		}
	}
	return true
}

// SelectAll toggles: if the visible set is already exactly selected it
// clears, otherwise it replaces the selection with the visible set.
// Replacement, not union: a prior selection scope is discarded.
func (s *Selection) SelectAll(visibleIDs []string) {
	if s.AllSelected(visibleIDs) {
		s.Clear()
		return
	}
	s.ids = make(map[string]bool, len(visibleIDs))
	for _, id := range visibleIDs {
		if id != "" {
			s.ids[id] = true
		}
	}
}
