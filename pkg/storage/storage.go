// Package storage loads and saves the task list as a flat text file, one task per line.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrisonrobin/harper/pkg/herrors"
	"github.com/harrisonrobin/harper/pkg/task"
	"github.com/harrisonrobin/harper/pkg/tasklist"
)

const (
	separator     = " | "
	spanSeparator = " - "
)

type Storage struct {
	Path string
}

func New(path string) *Storage {
	return &Storage{Path: path}
}

// Load reads the data file. A missing file is an empty list.
func (s *Storage) Load() (*tasklist.TaskList, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return tasklist.New(), nil
		}
		return nil, fmt.Errorf("failed to read data file %s: %w", s.Path, err)
	}

	list := tasklist.New()
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := DecodeLine(line)
		if err != nil {
			return nil, &herrors.FileLoadingError{Path: s.Path, Line: i + 1, Err: err}
		}
		list.Add(t)
	}
	return list, nil
}

// Save overwrites the data file with the whole list. The file is written to a
// temporary sibling first and renamed into place.
func (s *Storage) Save(list *tasklist.TaskList) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var buf bytes.Buffer
	for _, t := range list.Tasks() {
		buf.WriteString(EncodeLine(t))
		buf.WriteByte('\n')
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

// EncodeLine renders a task in the data file format.
func EncodeLine(t task.Task) string {
	done := "0"
	if t.Done {
		done = "1"
	}
	fields := []string{string(t.Kind), done, t.Description}
	switch t.Kind {
	case task.DEADLINE:
		fields = append(fields, task.FormatDateTime(t.By))
	case task.EVENT:
		fields = append(fields, task.FormatDateTime(t.Start)+spanSeparator+task.FormatDateTime(t.End))
	}
	return strings.Join(fields, separator)
}

// DecodeLine parses one line of the data file. The date field is taken from the
// last separator, so descriptions may contain " | ".
func DecodeLine(line string) (task.Task, error) {
	parts := strings.SplitN(line, separator, 3)
	if len(parts) != 3 {
		return task.Task{}, errors.New("expected at least three fields")
	}
	kind, flag, rest := task.Kind(parts[0]), parts[1], parts[2]

	var done bool
	switch flag {
	case "0":
	case "1":
		done = true
	default:
		return task.Task{}, fmt.Errorf("completion flag must be 0 or 1, got %q", flag)
	}

	if kind == task.TODO {
		return task.NewToDo(rest, done), nil
	}
	if kind != task.DEADLINE && kind != task.EVENT {
		return task.Task{}, fmt.Errorf("unknown task type %q", kind)
	}

	cut := strings.LastIndex(rest, separator)
	if cut < 0 {
		return task.Task{}, fmt.Errorf("missing date field for type %q", kind)
	}
	description, when := rest[:cut], rest[cut+len(separator):]

	if kind == task.DEADLINE {
		by, err := task.ParseDateTime(when)
		if err != nil {
			return task.Task{}, err
		}
		return task.NewDeadline(description, done, by), nil
	}

	from, to, found := strings.Cut(when, spanSeparator)
	if !found {
		return task.Task{}, fmt.Errorf("event span %q must be \"<start> - <end>\"", when)
	}
	start, err := task.ParseDateTime(from)
	if err != nil {
		return task.Task{}, err
	}
	end, err := task.ParseDateTime(to)
	if err != nil {
		return task.Task{}, err
	}
	return task.NewEvent(description, done, start, end), nil
}
