package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// Several planning passes racing against each other, each scheduling
// follow-ups for its own slice of applications. Every event must come
// out exactly once with an active consumer draining the channel.
func TestConcurrentPlanningPassesDeliverEveryFollowUp(t *testing.T) {
	engine := NewEngine(2048)
	engine.Start()
	defer engine.Stop()

	const passes = 6
	const appsPerPass = 120
	total := passes * appsPerPass

	now := time.Now().UTC()
	var wg sync.WaitGroup
	wg.Add(passes)
	for p := 0; p < passes; p++ {
		p := p
		go func() {
			defer wg.Done()
			for i := 0; i < appsPerPass; i++ {
				appID := fmt.Sprintf("app-%d-%d", p, i)
				ev := FollowUpEvent{
					ID:            "follow_up-" + appID,
					ApplicationID: appID,
					Kind:          KindFollowUp,
					TriggerAt:     now.Add(time.Duration((p*7+i)%60+10) * time.Millisecond),
				}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("schedule %s: %v", appID, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, total)
	deadline := time.After(5 * time.Second)
	for len(seen) < total {
		select {
		case <-deadline:
			t.Fatalf("timeout draining follow-ups: seen=%d total=%d dropped=%d", len(seen), total, engine.Dropped())
		case ev := <-engine.C():
			if seen[ev.ID] {
				t.Fatalf("follow-up delivered twice: %s", ev.ID)
			}
			if ev.Kind != KindFollowUp {
				t.Fatalf("kind mangled in flight: %#v", ev)
			}
			seen[ev.ID] = true
		}
	}

	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with an active consumer, got %d", engine.Dropped())
	}
}
