package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("a1")
	sel.Toggle("a2")
	if !sel.Has("a1") || !sel.Has("a2") || sel.Count() != 2 {
		t.Fatalf("unexpected selection after toggles: %v", sel.IDs())
	}
	sel.Toggle("a1")
	if sel.Has("a1") || sel.Count() != 1 {
		t.Fatal("second toggle must deselect")
	}
	sel.Toggle("")
	if sel.Count() != 1 {
		t.Fatal("empty id must be ignored")
	}
}

func TestSelectAllTogglesAgainstVisibleSet(t *testing.T) {
	sel := NewSelection()
	visible := []string{"a1", "a2", "a3"}

	sel.SelectAll(visible)
	if !sel.AllSelected(visible) {
		t.Fatalf("expected full visible selection, got %v", sel.IDs())
	}

	// Second select-all on the identical visible set clears.
	sel.SelectAll(visible)
	if sel.Count() != 0 {
		t.Fatalf("expected cleared selection, got %v", sel.IDs())
	}
}

func TestSelectAllReplacesPriorScope(t *testing.T) {
	sel := NewSelection()
	sel.SelectAll([]string{"a1", "a2"})

	// Narrowed filter: select-all replaces, it does not union.
	sel.SelectAll([]string{"a3"})
	if diff := cmp.Diff([]string{"a3"}, sel.IDs()); diff != "" {
		t.Fatalf("selection must be replaced (-want +got):\n%s", diff)
	}
}

func TestAllSelectedReflectsOnlyVisibleIDs(t *testing.T) {
	sel := NewSelection()
	sel.SelectAll([]string{"a1", "a2"})

	// Disjoint visible set: stale selection must not read as fully selected.
	if sel.AllSelected([]string{"b1", "b2"}) {
		t.Fatal("stale selection must not count as all-selected for a disjoint view")
	}
	// Superset selection over a narrower view does not count either.
	if sel.AllSelected([]string{"a1"}) {
		t.Fatal("superset selection must not count as all-selected")
	}
	if sel.AllSelected(nil) {
		t.Fatal("empty visible set is never all-selected")
	}
}

func TestSelectionSurvivesClearAndRebuild(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("a1")
	sel.Clear()
	if sel.Count() != 0 {
		t.Fatal("clear must empty the selection")
	}
	sel.Toggle("a2")
	if !sel.Has("a2") {
		t.Fatal("selection must be usable after clear")
	}
}
