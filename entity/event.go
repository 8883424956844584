package entity

import (
	"context"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/request"
	"github.com/tandemchat/tandem-go/rest"
)

// ScheduledEvent is a guild scheduled event.
type ScheduledEvent struct {
	Data data.ScheduledEvent

	rest *rest.Client
}

// NewScheduledEvent wraps a scheduled event snapshot.
func NewScheduledEvent(client *rest.Client, d data.ScheduledEvent) ScheduledEvent {
	return ScheduledEvent{Data: d, rest: client}
}

func (e ScheduledEvent) Name() string { return e.Data.Name }

func (e ScheduledEvent) Description() string {
	if e.Data.Description == nil {
		return ""
	}
	return *e.Data.Description
}

// StartTime is when the event is scheduled to start.
func (e ScheduledEvent) StartTime() time.Time { return e.Data.StartTime }

// EndTime returns the scheduled end and whether one is set.
func (e ScheduledEvent) EndTime() (time.Time, bool) {
	if e.Data.EndTime == nil {
		return time.Time{}, false
	}
	return *e.Data.EndTime, true
}

func (e ScheduledEvent) Status() int { return e.Data.Status }

// Recurrence is the event's cron expression, "" for one-shot events.
func (e ScheduledEvent) Recurrence() string {
	if e.Data.Recurrence == nil {
		return ""
	}
	return *e.Data.Recurrence
}

// NextOccurrence computes the event's next start after the given
// time.  One-shot events occur at their start time or never again;
// recurring events follow their cron expression.  The second return
// is false when there is no next occurrence, including when the
// event is canceled or completed.
func (e ScheduledEvent) NextOccurrence(after time.Time) (time.Time, bool) {
	switch e.Data.Status {
	case data.EventCompleted, data.EventCanceled:
		return time.Time{}, false
	}
	if e.Data.Recurrence == nil {
		if after.Before(e.Data.StartTime) {
			return e.Data.StartTime, true
		}
		return time.Time{}, false
	}
	expr, err := cronexpr.Parse(*e.Data.Recurrence)
	if err != nil {
		return time.Time{}, false
	}
	if after.Before(e.Data.StartTime) {
		after = e.Data.StartTime
	}
	next := expr.Next(after)
	if next.IsZero() {
		return time.Time{}, false
	}
	if e.Data.EndTime != nil && next.After(*e.Data.EndTime) {
		return time.Time{}, false
	}
	return next, true
}

func (e ScheduledEvent) Edit(ctx context.Context, spec request.ScheduledEventEdit) (ScheduledEvent, error) {
	updated, err := e.rest.Guilds.ModifyScheduledEvent(ctx, e.Data.GuildID, e.Data.ID, spec.Request(), spec.Reason())
	if err != nil {
		return e, err
	}
	return NewScheduledEvent(e.rest, *updated), nil
}

func (e ScheduledEvent) Delete(ctx context.Context, reason string) error {
	return e.rest.Guilds.DeleteScheduledEvent(ctx, e.Data.GuildID, e.Data.ID, reason)
}
