package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrisonrobin/harper/pkg/herrors"
)

// Kind identifies the variant of a Task.
type Kind string

const (
	TODO     Kind = "T"
	DEADLINE Kind = "D"
	EVENT    Kind = "E"
)

const (
	// DateTimeLayout is the layout for dates typed by the user and stored on disk (d/M/yyyy H:mm).
	DateTimeLayout = "2/1/2006 15:04"
	displayLayout  = "Jan 2 2006 15:04"
)

// keySpace namespaces the SHA1 UUIDs returned by Key.
var keySpace = uuid.MustParse("6f1d3c52-8a0e-4c8e-9b7a-2f5d0e4a9c11")

// Task is a tracked item. By is set for deadlines, Start and End for events.
type Task struct {
	Kind        Kind
	Description string
	Done        bool
	By          time.Time
	Start       time.Time
	End         time.Time
}

func NewToDo(description string, done bool) Task {
	return Task{Kind: TODO, Description: description, Done: done}
}

func NewDeadline(description string, done bool, by time.Time) Task {
	return Task{Kind: DEADLINE, Description: description, Done: done, By: by}
}

// NewEvent creates an event task. It does not check the order of start and end;
// callers that take user input use ValidateSpan first.
func NewEvent(description string, done bool, start, end time.Time) Task {
	return Task{Kind: EVENT, Description: description, Done: done, Start: start, End: end}
}

// ParseDateTime parses s using DateTimeLayout in local time.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w (%q)", herrors.ErrInvalidDateTime, s)
	}
	return t, nil
}

// FormatDateTime is the inverse of ParseDateTime.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// ValidateSpan rejects an event whose end is before its start.
func ValidateSpan(start, end time.Time) error {
	if end.Before(start) {
		return herrors.ErrInvalidEvent
	}
	return nil
}

func (t *Task) MarkDone() {
	t.Done = true
}

func (t *Task) MarkNotDone() {
	t.Done = false
}

// StatusIcon is "X" for a completed task and a blank otherwise.
func (t Task) StatusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

// String renders the task the way the task list shows it.
func (t Task) String() string {
	base := fmt.Sprintf("[%s][%s] %s", t.Kind, t.StatusIcon(), t.Description)
	switch t.Kind {
	case DEADLINE:
		return fmt.Sprintf("%s (by: %s)", base, t.By.Format(displayLayout))
	case EVENT:
		return fmt.Sprintf("%s (from: %s to: %s)", base, t.Start.Format(displayLayout), t.End.Format(displayLayout))
	}
	return base
}

// IsDated reports whether the task carries a date, which makes it eligible for the agenda.
func (t Task) IsDated() bool {
	return t.Kind == DEADLINE || t.Kind == EVENT
}

// Key is a stable identifier derived from the kind, description and dates.
// The completion flag is not part of it, so marking a task keeps its key.
func (t Task) Key() string {
	var b strings.Builder
	b.WriteString(string(t.Kind))
	b.WriteString("|")
	b.WriteString(t.Description)
	switch t.Kind {
	case DEADLINE:
		b.WriteString("|" + FormatDateTime(t.By))
	case EVENT:
		b.WriteString("|" + FormatDateTime(t.Start) + "|" + FormatDateTime(t.End))
	}
	return uuid.NewSHA1(keySpace, []byte(b.String())).String()
}

// Equal compares all fields, using time.Time.Equal for the dates.
func (t Task) Equal(o Task) bool {
	return t.Kind == o.Kind &&
		t.Description == o.Description &&
		t.Done == o.Done &&
		t.By.Equal(o.By) &&
		t.Start.Equal(o.Start) &&
		t.End.Equal(o.End)
}
