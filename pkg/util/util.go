package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/harper/pkg/task"
	"google.golang.org/api/calendar/v3"
)

const (
	// KeyProperty is the private extended property holding the task key on an event.
	KeyProperty = "harper_key"

	deadlineDuration = 30 * time.Minute
	donePrefix       = "✓ "
)

// EventNeedsUpdate returns a patch holding the fields of target that differ from existing,
// or nil when the two already agree.
func EventNeedsUpdate(existingEvent *calendar.Event, targetEvent *calendar.Event) (*calendar.Event, error) {
	patch := &calendar.Event{}
	needsUpdate := false

	if existingEvent.Summary != targetEvent.Summary {
		patch.Summary = targetEvent.Summary
		needsUpdate = true
	}
	if existingEvent.Description != targetEvent.Description {
		patch.Description = targetEvent.Description
		needsUpdate = true
	}

	if existingEvent.Start == nil || existingEvent.End == nil {
		patch.Start = targetEvent.Start
		patch.End = targetEvent.End
		return patch, nil
	}
	existingStart, err := time.Parse(time.RFC3339, existingEvent.Start.DateTime)
	if err != nil {
		return nil, err
	}
	targetStart, err := time.Parse(time.RFC3339, targetEvent.Start.DateTime)
	if err != nil {
		return nil, err
	}
	existingEnd, err := time.Parse(time.RFC3339, existingEvent.End.DateTime)
	if err != nil {
		return nil, err
	}
	targetEnd, err := time.Parse(time.RFC3339, targetEvent.End.DateTime)
	if err != nil {
		return nil, err
	}
	if !existingStart.Equal(targetStart) || !existingEnd.Equal(targetEnd) {
		patch.Start = targetEvent.Start
		patch.End = targetEvent.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch, nil
	}
	return nil, nil
}

// ConvertTaskToCalendarEvent builds the agenda event for a deadline or event task.
// A deadline occupies the half hour starting at its due time.
func ConvertTaskToCalendarEvent(t task.Task) (*calendar.Event, error) {
	var start, end time.Time
	switch t.Kind {
	case task.DEADLINE:
		start, end = t.By, t.By.Add(deadlineDuration)
	case task.EVENT:
		start, end = t.Start, t.End
	default:
		return nil, fmt.Errorf("task %q has no date to put on a calendar", t.Description)
	}

	summary := t.Description
	if t.Done {
		summary = donePrefix + summary
	}

	var desc strings.Builder
	status := "pending"
	if t.Done {
		status = "completed"
	}
	fmt.Fprintf(&desc, "Status: %s\n", status)
	switch t.Kind {
	case task.DEADLINE:
		fmt.Fprintf(&desc, "Due: %s\n", task.FormatDateTime(t.By))
	case task.EVENT:
		fmt.Fprintf(&desc, "From: %s\nTo: %s\n", task.FormatDateTime(t.Start), task.FormatDateTime(t.End))
	}
	fmt.Fprintf(&desc, "ID: %s\n", t.Key())

	return &calendar.Event{
		Summary:     summary,
		Description: desc.String(),
		Start: &calendar.EventDateTime{
			DateTime: start.UTC().Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: end.UTC().Format(time.RFC3339),
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				KeyProperty: t.Key(),
			},
		},
	}, nil
}
