// Package agenda exports dated tasks to a calendar.
package agenda

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/harper/pkg/index"
	"github.com/harrisonrobin/harper/pkg/task"
	"github.com/harrisonrobin/harper/pkg/util"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

// Calendar is the subset of the calendar client the sync needs.
type Calendar interface {
	GetEvent(eventID string) (*calendar.Event, error)
	GetEventByKey(key string) (*calendar.Event, error)
	InsertEvent(event *calendar.Event) (*calendar.Event, error)
	PatchEvent(eventID string, patch *calendar.Event) (*calendar.Event, error)
	DeleteEvent(eventID string) error
}

// Report counts what a sync did.
type Report struct {
	Created   int
	Patched   int
	Unchanged int
	Deleted   int
	Failed    int
}

func (r Report) String() string {
	return fmt.Sprintf("%d created, %d updated, %d unchanged, %d removed, %d failed",
		r.Created, r.Patched, r.Unchanged, r.Deleted, r.Failed)
}

type Syncer struct {
	cal    Calendar
	idx    *index.EventIndex
	logger *log.Logger
}

func NewSyncer(cal Calendar, idx *index.EventIndex, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = log.Default()
	}
	return &Syncer{cal: cal, idx: idx, logger: logger}
}

// Sync makes the calendar mirror the dated tasks. Events whose task no longer
// exists are deleted. Per-task failures are logged and counted; the index is
// saved at the end either way.
func (s *Syncer) Sync(tasks []task.Task) (Report, error) {
	var report Report
	live := make(map[string]bool)

	for _, t := range tasks {
		if !t.IsDated() {
			continue
		}
		key := t.Key()
		if live[key] {
			continue
		}
		live[key] = true

		result, err := s.syncTask(key, t)
		if err != nil {
			s.logger.Warn("could not sync task", "task", t.Description, "err", err)
			report.Failed++
			continue
		}
		switch result {
		case created:
			report.Created++
		case patched:
			report.Patched++
		default:
			report.Unchanged++
		}
	}

	for _, key := range s.idx.Keys() {
		if live[key] {
			continue
		}
		eventID := s.idx.Get(key)
		if err := s.cal.DeleteEvent(eventID); err != nil && !isGone(err) {
			s.logger.Warn("could not delete stale event", "event", eventID, "err", err)
			report.Failed++
			continue
		}
		s.idx.Remove(key)
		report.Deleted++
	}

	if err := s.idx.Save(); err != nil {
		return report, fmt.Errorf("failed to save event index: %w", err)
	}
	return report, nil
}

// isGone reports whether the calendar says the event no longer exists,
// e.g. because it was deleted by hand.
func isGone(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
}

type outcome int

const (
	unchanged outcome = iota
	created
	patched
)

func (s *Syncer) syncTask(key string, t task.Task) (outcome, error) {
	target, err := util.ConvertTaskToCalendarEvent(t)
	if err != nil {
		return unchanged, err
	}

	var existing *calendar.Event
	if eventID := s.idx.Get(key); eventID != "" {
		existing, err = s.cal.GetEvent(eventID)
		if err != nil {
			s.logger.Debug("indexed event not found, searching by key", "event", eventID, "err", err)
			existing = nil
		}
	}
	if existing == nil {
		existing, err = s.cal.GetEventByKey(key)
		if err != nil {
			return unchanged, fmt.Errorf("error searching for event: %w", err)
		}
	}

	if existing == nil {
		ev, err := s.cal.InsertEvent(target)
		if err != nil {
			return unchanged, err
		}
		s.idx.Set(key, ev.Id)
		s.logger.Debug("created event", "task", t.Description, "event", ev.Id)
		return created, nil
	}

	s.idx.Set(key, existing.Id)
	patch, err := util.EventNeedsUpdate(existing, target)
	if err != nil {
		return unchanged, fmt.Errorf("could not compare task with its calendar event: %w", err)
	}
	if patch == nil {
		return unchanged, nil
	}
	if _, err := s.cal.PatchEvent(existing.Id, patch); err != nil {
		return unchanged, err
	}
	s.logger.Debug("patched event", "task", t.Description, "event", existing.Id)
	return patched, nil
}
