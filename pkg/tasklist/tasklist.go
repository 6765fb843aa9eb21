// Package tasklist is the ordered, in-memory list of tasks for a session.
package tasklist

import (
	"fmt"
	"strings"

	"github.com/harrisonrobin/harper/pkg/herrors"
	"github.com/harrisonrobin/harper/pkg/task"
)

// TaskList is not safe for concurrent use.
type TaskList struct {
	tasks []task.Task
}

// Match is a task returned by Find together with its 1-based position in the list.
type Match struct {
	Position int
	Task     task.Task
}

func New(tasks ...task.Task) *TaskList {
	return &TaskList{tasks: append([]task.Task(nil), tasks...)}
}

func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in list order.
func (l *TaskList) Tasks() []task.Task {
	return append([]task.Task(nil), l.tasks...)
}

// Get returns the task at the 0-based index.
func (l *TaskList) Get(index int) (task.Task, error) {
	if err := l.checkIndex(index); err != nil {
		return task.Task{}, err
	}
	return l.tasks[index], nil
}

func (l *TaskList) Add(t task.Task) {
	l.tasks = append(l.tasks, t)
}

// Delete removes the task at index and shifts the later ones down.
func (l *TaskList) Delete(index int) (task.Task, error) {
	if err := l.checkIndex(index); err != nil {
		return task.Task{}, err
	}
	removed := l.tasks[index]
	l.tasks = append(l.tasks[:index], l.tasks[index+1:]...)
	return removed, nil
}

func (l *TaskList) Mark(index int, done bool) (task.Task, error) {
	if err := l.checkIndex(index); err != nil {
		return task.Task{}, err
	}
	if done {
		l.tasks[index].MarkDone()
	} else {
		l.tasks[index].MarkNotDone()
	}
	return l.tasks[index], nil
}

// Update applies fieldText (see task.Task.WithField) to the task at index.
func (l *TaskList) Update(index int, fieldText string) (task.Task, error) {
	if err := l.checkIndex(index); err != nil {
		return task.Task{}, err
	}
	updated, err := l.tasks[index].WithField(fieldText)
	if err != nil {
		return task.Task{}, err
	}
	l.tasks[index] = updated
	return updated, nil
}

// Find returns the tasks whose description contains keyword, in list order.
func (l *TaskList) Find(keyword string) []Match {
	var matches []Match
	for i, t := range l.tasks {
		if strings.Contains(t.Description, keyword) {
			matches = append(matches, Match{Position: i + 1, Task: t})
		}
	}
	return matches
}

// String renders every task on its own numbered line.
func (l *TaskList) String() string {
	var b strings.Builder
	for i, t := range l.tasks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderMatches renders the result of Find, numbered by list position.
// It returns an empty string when there are no matches.
func RenderMatches(matches []Match) string {
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("%d. %s", m.Position, m.Task))
	}
	return strings.Join(lines, "\n")
}

func (l *TaskList) checkIndex(index int) error {
	if index >= 0 && index < len(l.tasks) {
		return nil
	}
	if len(l.tasks) == 0 {
		return fmt.Errorf("%w (got %d, the list is empty)", herrors.ErrInvalidIndex, index+1)
	}
	return fmt.Errorf("%w (got %d, expected 1 to %d)", herrors.ErrInvalidIndex, index+1, len(l.tasks))
}
