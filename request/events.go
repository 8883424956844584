package request

import (
	"time"

	"github.com/tandemchat/tandem-go/data"
)

// ScheduledEventCreate creates a guild scheduled event.
type ScheduledEventCreate struct {
	f      fields
	reason string
}

func (b ScheduledEventCreate) WithName(name string) ScheduledEventCreate {
	b.f = b.f.with("name", name)
	return b
}

func (b ScheduledEventCreate) WithChannel(channelID data.ID) ScheduledEventCreate {
	b.f = b.f.with("channel_id", channelID)
	return b
}

func (b ScheduledEventCreate) WithDescription(description string) ScheduledEventCreate {
	b.f = b.f.with("description", description)
	return b
}

func (b ScheduledEventCreate) WithStartTime(t time.Time) ScheduledEventCreate {
	b.f = b.f.with("scheduled_start_time", t.UTC().Format(time.RFC3339))
	return b
}

func (b ScheduledEventCreate) WithEndTime(t time.Time) ScheduledEventCreate {
	b.f = b.f.with("scheduled_end_time", t.UTC().Format(time.RFC3339))
	return b
}

// WithRecurrence attaches a cron expression for recurring events.
func (b ScheduledEventCreate) WithRecurrence(expr string) ScheduledEventCreate {
	b.f = b.f.with("recurrence", expr)
	return b
}

func (b ScheduledEventCreate) WithReason(reason string) ScheduledEventCreate {
	b.reason = reason
	return b
}

func (b ScheduledEventCreate) Reason() string { return b.reason }

func (b ScheduledEventCreate) Request() map[string]interface{} { return b.f.request() }

// ScheduledEventEdit edits a guild scheduled event.
type ScheduledEventEdit struct {
	f      fields
	reason string
}

func (b ScheduledEventEdit) WithName(name string) ScheduledEventEdit {
	b.f = b.f.with("name", name)
	return b
}

func (b ScheduledEventEdit) WithChannel(channelID data.ID) ScheduledEventEdit {
	b.f = b.f.with("channel_id", channelID)
	return b
}

func (b ScheduledEventEdit) WithDescription(description string) ScheduledEventEdit {
	b.f = b.f.with("description", description)
	return b
}

// ClearDescription removes the description.
func (b ScheduledEventEdit) ClearDescription() ScheduledEventEdit {
	b.f = b.f.with("description", nil)
	return b
}

func (b ScheduledEventEdit) WithStartTime(t time.Time) ScheduledEventEdit {
	b.f = b.f.with("scheduled_start_time", t.UTC().Format(time.RFC3339))
	return b
}

func (b ScheduledEventEdit) WithEndTime(t time.Time) ScheduledEventEdit {
	b.f = b.f.with("scheduled_end_time", t.UTC().Format(time.RFC3339))
	return b
}

// ClearEndTime makes the event open-ended.
func (b ScheduledEventEdit) ClearEndTime() ScheduledEventEdit {
	b.f = b.f.with("scheduled_end_time", nil)
	return b
}

// WithStatus moves the event through its lifecycle (see the
// data.Event* constants).
func (b ScheduledEventEdit) WithStatus(status int) ScheduledEventEdit {
	b.f = b.f.with("status", status)
	return b
}

// WithRecurrence sets the cron recurrence.
func (b ScheduledEventEdit) WithRecurrence(expr string) ScheduledEventEdit {
	b.f = b.f.with("recurrence", expr)
	return b
}

// ClearRecurrence makes the event one-shot again.
func (b ScheduledEventEdit) ClearRecurrence() ScheduledEventEdit {
	b.f = b.f.with("recurrence", nil)
	return b
}

func (b ScheduledEventEdit) WithReason(reason string) ScheduledEventEdit {
	b.reason = reason
	return b
}

func (b ScheduledEventEdit) Reason() string { return b.reason }

func (b ScheduledEventEdit) Request() map[string]interface{} { return b.f.request() }
