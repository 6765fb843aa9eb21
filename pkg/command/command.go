// Package command holds the executable form of each input line.
package command

import (
	"github.com/harrisonrobin/harper/pkg/task"
	"github.com/harrisonrobin/harper/pkg/tasklist"
)

// UI receives the responses produced by commands.
type UI interface {
	ShowAdded(t task.Task, count int)
	ShowDeleted(t task.Task, count int)
	ShowMarked(t task.Task)
	ShowUpdated(t task.Task)
	ShowList(list *tasklist.TaskList)
	ShowMatches(matches []tasklist.Match)
	ShowGoodbye()
}

// Storage persists the whole list after a mutation.
type Storage interface {
	Save(list *tasklist.TaskList) error
}

// Command is one parsed input line.
type Command interface {
	Execute(list *tasklist.TaskList, ui UI, store Storage) error
	// IsExit reports whether the interpreter loop should stop after this command.
	IsExit() bool
}

type Exit struct{}

func (Exit) Execute(_ *tasklist.TaskList, ui UI, _ Storage) error {
	ui.ShowGoodbye()
	return nil
}

func (Exit) IsExit() bool { return true }

type List struct{}

func (List) Execute(list *tasklist.TaskList, ui UI, _ Storage) error {
	ui.ShowList(list)
	return nil
}

func (List) IsExit() bool { return false }

type Add struct {
	Task task.Task
}

func (c Add) Execute(list *tasklist.TaskList, ui UI, store Storage) error {
	list.Add(c.Task)
	if err := store.Save(list); err != nil {
		return err
	}
	ui.ShowAdded(c.Task, list.Len())
	return nil
}

func (Add) IsExit() bool { return false }

// Delete removes the task at the 0-based Index.
type Delete struct {
	Index int
}

func (c Delete) Execute(list *tasklist.TaskList, ui UI, store Storage) error {
	removed, err := list.Delete(c.Index)
	if err != nil {
		return err
	}
	if err := store.Save(list); err != nil {
		return err
	}
	ui.ShowDeleted(removed, list.Len())
	return nil
}

func (Delete) IsExit() bool { return false }

// Mark sets the completion flag of the task at the 0-based Index.
type Mark struct {
	Index int
	Done  bool
}

func (c Mark) Execute(list *tasklist.TaskList, ui UI, store Storage) error {
	marked, err := list.Mark(c.Index, c.Done)
	if err != nil {
		return err
	}
	if err := store.Save(list); err != nil {
		return err
	}
	ui.ShowMarked(marked)
	return nil
}

func (Mark) IsExit() bool { return false }

type Find struct {
	Keyword string
}

func (c Find) Execute(list *tasklist.TaskList, ui UI, _ Storage) error {
	ui.ShowMatches(list.Find(c.Keyword))
	return nil
}

func (Find) IsExit() bool { return false }

// Update changes one field of the task at the 0-based Index.
// FieldText is the field name followed by the new value.
type Update struct {
	Index     int
	FieldText string
}

func (c Update) Execute(list *tasklist.TaskList, ui UI, store Storage) error {
	updated, err := list.Update(c.Index, c.FieldText)
	if err != nil {
		return err
	}
	if err := store.Save(list); err != nil {
		return err
	}
	ui.ShowUpdated(updated)
	return nil
}

func (Update) IsExit() bool { return false }
