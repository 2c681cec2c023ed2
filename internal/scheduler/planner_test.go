package scheduler

import (
	"testing"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

func TestPlanFollowUpsSkipsClosedAndPastApplications(t *testing.T) {
	now, err := time.Parse(time.RFC3339, "2026-02-09T12:00:00Z")
	if err != nil {
		t.Fatalf("parse now: %v", err)
	}

	apps := []model.Application{
		{ID: "fresh", Status: model.StatusApplied, DateApplied: now.Add(-24 * time.Hour)},
		{ID: "stale", Status: model.StatusApplied, DateApplied: now.Add(-30 * 24 * time.Hour)},
		{ID: "closed", Status: model.StatusRejected, DateApplied: now.Add(-24 * time.Hour)},
		{ID: "gone", Status: model.StatusWithdrawn, DateApplied: now.Add(-24 * time.Hour)},
		{ID: "undated", Status: model.StatusApplied},
	}

	events := PlanFollowUps(apps, 7, now)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d: %#v", len(events), events)
	}
	ev := events[0]
	if ev.ApplicationID != "fresh" || ev.Kind != KindFollowUp {
		t.Fatalf("unexpected event: %#v", ev)
	}
	want := now.Add(6 * 24 * time.Hour)
	if !ev.TriggerAt.Equal(want) {
		t.Fatalf("unexpected trigger: got %v want %v", ev.TriggerAt, want)
	}
}

func TestPlanFollowUpsDisabled(t *testing.T) {
	apps := []model.Application{{ID: "a", Status: model.StatusApplied, DateApplied: time.Now()}}
	if events := PlanFollowUps(apps, 0, time.Now()); events != nil {
		t.Fatalf("expected nil for disabled follow-ups, got %#v", events)
	}
}
