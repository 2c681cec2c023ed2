package scheduler

import (
	"testing"
	"time"
)

func waitEvent(t *testing.T, ch <-chan FollowUpEvent, timeout time.Duration) FollowUpEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for follow-up event")
		return FollowUpEvent{}
	}
}

func TestNearerFollowUpPreemptsEarlierSchedule(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	// The offer chase is scheduled first but the interview prep is due
	// sooner; the wakeup must re-plan the pending wait.
	now := time.Now().UTC()
	offerChase := FollowUpEvent{
		ID:            "follow_up-app-offer",
		ApplicationID: "app-offer",
		Kind:          KindFollowUp,
		TriggerAt:     now.Add(150 * time.Millisecond),
	}
	interviewPrep := FollowUpEvent{
		ID:            "follow_up-app-interview",
		ApplicationID: "app-interview",
		Kind:          KindFollowUp,
		TriggerAt:     now.Add(40 * time.Millisecond),
	}
	if err := engine.Schedule(offerChase); err != nil {
		t.Fatalf("schedule offer chase: %v", err)
	}
	if err := engine.Schedule(interviewPrep); err != nil {
		t.Fatalf("schedule interview prep: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	if first.ApplicationID != "app-interview" {
		t.Fatalf("expected the nearer follow-up first, got %#v", first)
	}
	if first.Kind != KindFollowUp {
		t.Fatalf("kind lost in delivery: %#v", first)
	}
	second := waitEvent(t, engine.C(), time.Second)
	if second.ApplicationID != "app-offer" {
		t.Fatalf("expected the offer chase second, got %#v", second)
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected no drops with an active consumer, got %d", engine.Dropped())
	}
}

func TestDropsCountedWhenNobodyConsumes(t *testing.T) {
	engine := NewEngine(2)
	engine.Start()
	defer engine.Stop()

	due := time.Now().UTC().Add(20 * time.Millisecond)
	const scheduled = 10
	for i := 0; i < scheduled; i++ {
		ev := FollowUpEvent{
			ID:            "follow_up-batch",
			ApplicationID: "app-batch",
			Kind:          KindFollowUp,
			TriggerAt:     due,
		}
		if err := engine.Schedule(ev); err != nil {
			t.Fatalf("schedule follow-up %d: %v", i, err)
		}
	}

	// The buffer absorbs two; the rest hit the non-blocking send.
	time.Sleep(150 * time.Millisecond)
	if got := engine.Dropped(); got != scheduled-2 {
		t.Fatalf("expected %d dropped follow-ups, got %d", scheduled-2, got)
	}
}

func TestScheduleRejectsUnusableEvents(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(FollowUpEvent{ID: "follow_up-no-trigger", ApplicationID: "app-1"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime for zero trigger, got %v", err)
	}

	engine.Start()
	engine.Stop()
	err := engine.Schedule(FollowUpEvent{
		ID:            "follow_up-late",
		ApplicationID: "app-1",
		TriggerAt:     time.Now().UTC().Add(time.Minute),
	})
	if err == nil {
		t.Fatal("expected an error scheduling on a stopped engine")
	}
}
