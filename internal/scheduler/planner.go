package scheduler

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

const KindFollowUp = "follow_up"

// PlanFollowUps derives one follow-up event per application still in
// play, due a fixed number of days after the application date. Closed
// applications (rejected, withdrawn) and follow-ups already in the past
// produce nothing.
func PlanFollowUps(apps []model.Application, afterDays int, now time.Time) []FollowUpEvent {
	if afterDays <= 0 {
		return nil
	}

	events := make([]FollowUpEvent, 0, len(apps))
	for _, app := range apps {
		switch app.Status {
		case model.StatusRejected, model.StatusWithdrawn:
			continue
		}
		if app.DateApplied.IsZero() {
			continue
		}
		triggerAt := app.DateApplied.Add(time.Duration(afterDays) * 24 * time.Hour)
		if !triggerAt.After(now) {
			continue
		}
		events = append(events, FollowUpEvent{
			ID:            fmt.Sprintf("%s-%s", KindFollowUp, app.ID),
			ApplicationID: app.ID,
			Kind:          KindFollowUp,
			TriggerAt:     triggerAt,
		})
	}
	return events
}
