package agenda

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/harper/pkg/index"
	"github.com/harrisonrobin/harper/pkg/task"
	"github.com/harrisonrobin/harper/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

type fakeCalendar struct {
	events  map[string]*calendar.Event
	nextID  int
	patches int
	failOn  string
	gone    map[string]int
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{events: map[string]*calendar.Event{}}
}

func (f *fakeCalendar) GetEvent(id string) (*calendar.Event, error) {
	if ev, ok := f.events[id]; ok {
		return ev, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeCalendar) GetEventByKey(key string) (*calendar.Event, error) {
	for _, ev := range f.events {
		if ev.ExtendedProperties.Private[util.KeyProperty] == key {
			return ev, nil
		}
	}
	return nil, nil
}

func (f *fakeCalendar) InsertEvent(ev *calendar.Event) (*calendar.Event, error) {
	if ev.Summary == f.failOn {
		return nil, errors.New("quota exceeded")
	}
	f.nextID++
	stored := *ev
	stored.Id = fmt.Sprintf("ev%d", f.nextID)
	f.events[stored.Id] = &stored
	return &stored, nil
}

func (f *fakeCalendar) PatchEvent(id string, patch *calendar.Event) (*calendar.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, errors.New("not found")
	}
	f.patches++
	if patch.Summary != "" {
		ev.Summary = patch.Summary
	}
	if patch.Description != "" {
		ev.Description = patch.Description
	}
	if patch.Start != nil {
		ev.Start, ev.End = patch.Start, patch.End
	}
	return ev, nil
}

func (f *fakeCalendar) DeleteEvent(id string) error {
	if code, ok := f.gone[id]; ok {
		return &googleapi.Error{Code: code}
	}
	if _, ok := f.events[id]; !ok {
		return errors.New("not found")
	}
	delete(f.events, id)
	return nil
}

func setup(t *testing.T) (*fakeCalendar, *index.EventIndex, *Syncer) {
	t.Helper()
	cal := newFakeCalendar()
	idx, err := index.Open(filepath.Join(t.TempDir(), "events.json"))
	require.NoError(t, err)
	return cal, idx, NewSyncer(cal, idx, log.New(io.Discard))
}

func at(hour int) time.Time {
	return time.Date(2024, time.December, 2, hour, 0, 0, 0, time.Local)
}

func TestSync_CreatesDatedTasksOnly(t *testing.T) {
	cal, idx, s := setup(t)
	tasks := []task.Task{
		task.NewToDo("read book", false),
		task.NewDeadline("return book", false, at(18)),
		task.NewEvent("meeting", false, at(9), at(10)),
	}

	report, err := s.Sync(tasks)
	require.NoError(t, err)
	assert.Equal(t, Report{Created: 2}, report)
	assert.Len(t, cal.events, 2)
	assert.NotEmpty(t, idx.Get(tasks[1].Key()))
	assert.NotEmpty(t, idx.Get(tasks[2].Key()))
}

func TestSync_IsIdempotent(t *testing.T) {
	cal, _, s := setup(t)
	tasks := []task.Task{task.NewDeadline("return book", false, at(18))}

	_, err := s.Sync(tasks)
	require.NoError(t, err)
	report, err := s.Sync(tasks)
	require.NoError(t, err)
	assert.Equal(t, Report{Unchanged: 1}, report)
	assert.Len(t, cal.events, 1)
	assert.Zero(t, cal.patches)
}

func TestSync_PatchesCompletedTask(t *testing.T) {
	cal, _, s := setup(t)
	d := task.NewDeadline("return book", false, at(18))
	_, err := s.Sync([]task.Task{d})
	require.NoError(t, err)

	d.MarkDone()
	report, err := s.Sync([]task.Task{d})
	require.NoError(t, err)
	assert.Equal(t, Report{Patched: 1}, report)
	for _, ev := range cal.events {
		assert.Equal(t, "✓ return book", ev.Summary)
	}
}

func TestSync_RemovesStaleEvents(t *testing.T) {
	cal, idx, s := setup(t)
	old := task.NewDeadline("return book", false, at(18))
	_, err := s.Sync([]task.Task{old})
	require.NoError(t, err)

	moved, err := old.WithField("by 3/12/2024 18:00")
	require.NoError(t, err)
	report, err := s.Sync([]task.Task{moved})
	require.NoError(t, err)
	assert.Equal(t, Report{Created: 1, Deleted: 1}, report)
	assert.Len(t, cal.events, 1)
	assert.Empty(t, idx.Get(old.Key()))
	assert.Equal(t, []string{moved.Key()}, idx.Keys())
}

func TestSync_RecoversFromUnindexedEvent(t *testing.T) {
	cal, idx, s := setup(t)
	d := task.NewDeadline("return book", false, at(18))
	_, err := s.Sync([]task.Task{d})
	require.NoError(t, err)

	idx.Remove(d.Key())
	report, err := s.Sync([]task.Task{d})
	require.NoError(t, err)
	assert.Equal(t, Report{Unchanged: 1}, report)
	assert.Len(t, cal.events, 1)
	assert.NotEmpty(t, idx.Get(d.Key()))
}

func TestSync_CountsFailures(t *testing.T) {
	cal, _, s := setup(t)
	cal.failOn = "broken"
	tasks := []task.Task{
		task.NewDeadline("broken", false, at(18)),
		task.NewDeadline("fine", false, at(19)),
	}

	report, err := s.Sync(tasks)
	require.NoError(t, err)
	assert.Equal(t, Report{Created: 1, Failed: 1}, report)
	assert.Equal(t, "1 created, 0 updated, 0 unchanged, 0 removed, 1 failed", report.String())
}

func TestSync_DropsEventsDeletedOutsideHarper(t *testing.T) {
	for _, code := range []int{404, 410} {
		cal, idx, s := setup(t)
		d := task.NewDeadline("return book", false, at(18))
		_, err := s.Sync([]task.Task{d})
		require.NoError(t, err)

		eventID := idx.Get(d.Key())
		delete(cal.events, eventID)
		cal.gone = map[string]int{eventID: code}

		report, err := s.Sync(nil)
		require.NoError(t, err)
		assert.Equal(t, Report{Deleted: 1}, report, "code %d", code)
		assert.Empty(t, idx.Keys())

		report, err = s.Sync(nil)
		require.NoError(t, err)
		assert.Equal(t, Report{}, report)
	}
}

func TestSync_KeepsIndexWhenDeleteFails(t *testing.T) {
	cal, idx, s := setup(t)
	d := task.NewDeadline("return book", false, at(18))
	_, err := s.Sync([]task.Task{d})
	require.NoError(t, err)

	cal.gone = map[string]int{idx.Get(d.Key()): 500}
	report, err := s.Sync(nil)
	require.NoError(t, err)
	assert.Equal(t, Report{Failed: 1}, report)
	assert.Equal(t, []string{d.Key()}, idx.Keys())
}
