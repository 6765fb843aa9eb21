// Package ui renders command responses as plain text.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrisonrobin/harper/pkg/task"
	"github.com/harrisonrobin/harper/pkg/tasklist"
)

const divider = "____________________________________________________________"

type Ui struct {
	out io.Writer
}

func New(out io.Writer) *Ui {
	return &Ui{out: out}
}

func (u *Ui) ShowWelcome() {
	u.respond("Hello! I'm Harper", "What can I do for you?")
}

func (u *Ui) ShowGoodbye() {
	u.respond("Bye. Hope to see you again soon!")
}

func (u *Ui) ShowAdded(t task.Task, count int) {
	u.respond("Got it. I've added this task:", "  "+t.String(), countLine(count))
}

func (u *Ui) ShowDeleted(t task.Task, count int) {
	u.respond("Noted. I've removed this task:", "  "+t.String(), countLine(count))
}

func (u *Ui) ShowMarked(t task.Task) {
	if t.Done {
		u.respond("Nice! I've marked this task as done:", "  "+t.String())
		return
	}
	u.respond("OK, I've marked this task as not done yet:", "  "+t.String())
}

func (u *Ui) ShowUpdated(t task.Task) {
	u.respond("Got it. I've updated this task:", "  "+t.String())
}

func (u *Ui) ShowList(list *tasklist.TaskList) {
	if list.Len() == 0 {
		u.respond("There are no tasks in your list.")
		return
	}
	u.respond("Here are the tasks in your list:", list.String())
}

func (u *Ui) ShowMatches(matches []tasklist.Match) {
	if len(matches) == 0 {
		u.respond("No matching tasks found.")
		return
	}
	u.respond("Here are the matching tasks in your list:", tasklist.RenderMatches(matches))
}

func (u *Ui) ShowError(err error) {
	u.respond("OOPS!!! " + err.Error())
}

func (u *Ui) respond(lines ...string) {
	fmt.Fprintln(u.out, divider)
	for _, line := range lines {
		for _, l := range strings.Split(line, "\n") {
			fmt.Fprintln(u.out, " "+l)
		}
	}
	fmt.Fprintln(u.out, divider)
}

func countLine(count int) string {
	noun := "tasks"
	if count == 1 {
		noun = "task"
	}
	return fmt.Sprintf("Now you have %d %s in the list.", count, noun)
}
