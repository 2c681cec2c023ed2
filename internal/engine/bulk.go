package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sandeepkv93/trackd/internal/model"
)

var ErrUnknownBulkAction = errors.New("engine: unknown bulk action")

type BulkActionKind string

const (
	BulkSetStatus   BulkActionKind = "set_status"
	BulkSetPriority BulkActionKind = "set_priority"
	BulkDelete      BulkActionKind = "delete"
)

type BulkAction struct {
	Kind     BulkActionKind
	Status   model.Status
	Priority model.Priority
}

func (a BulkAction) Describe() string {
	switch a.Kind {
	case BulkSetStatus:
		return fmt.Sprintf("set status to %s", a.Status)
	case BulkSetPriority:
		return fmt.Sprintf("set priority to %s", a.Priority)
	case BulkDelete:
		return "delete"
	default:
		return string(a.Kind)
	}
}

// Mutator is the write side of the record store. One call per record;
// there is no transaction spanning a bulk action.
type Mutator interface {
	SetStatus(ctx context.Context, id string, status model.Status) error
	SetPriority(ctx context.Context, id string, priority model.Priority) error
	Delete(ctx context.Context, id string) error
}

type BulkFailure struct {
	ID  string
	Err error
}

type BulkOutcome struct {
	Action    BulkAction
	Attempted int
	Succeeded int
	Failures  []BulkFailure
}

// Summary reports "N of M" so a partial failure is visible to the user
// instead of being collapsed into unconditional success.
func (o BulkOutcome) Summary() string {
	if len(o.Failures) == 0 {
		return fmt.Sprintf("%s: %d record(s) updated", o.Action.Describe(), o.Succeeded)
	}
	return fmt.Sprintf("%s: %d of %d succeeded", o.Action.Describe(), o.Succeeded, o.Attempted)
}

func (o BulkOutcome) AllSucceeded() bool {
	return o.Attempted > 0 && o.Succeeded == o.Attempted
}

// ApplyBulk issues one mutation per identifier, concurrently, and joins
// before reporting. Individual failures never stop the remaining
// mutations and nothing is rolled back. Cancelling the context marks
// the not-yet-issued mutations as failed with ctx.Err().
func ApplyBulk(ctx context.Context, m Mutator, ids []string, action BulkAction) BulkOutcome {
	outcome := BulkOutcome{Action: action, Attempted: len(ids)}
	if len(ids) == 0 {
		return outcome
	}

	type result struct {
		id  string
		err error
	}

	results := make(chan result, len(ids))
	var wg sync.WaitGroup
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			results <- result{id: id, err: err}
			continue
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			results <- result{id: id, err: applyOne(ctx, m, id, action)}
		}(id)
	}
	wg.Wait()
	close(results)

	for res := range results {
		if res.err != nil {
			outcome.Failures = append(outcome.Failures, BulkFailure{ID: res.id, Err: res.err})
			continue
		}
		outcome.Succeeded++
	}
	sort.Slice(outcome.Failures, func(i, j int) bool {
		return outcome.Failures[i].ID < outcome.Failures[j].ID
	})
	return outcome
}

func applyOne(ctx context.Context, m Mutator, id string, action BulkAction) error {
	switch action.Kind {
	case BulkSetStatus:
		return m.SetStatus(ctx, id, action.Status)
	case BulkSetPriority:
		return m.SetPriority(ctx, id, action.Priority)
	case BulkDelete:
		return m.Delete(ctx, id)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBulkAction, action.Kind)
	}
}
