// Package parser turns a line of user input into a command.
package parser

import (
	"strconv"
	"strings"

	"github.com/harrisonrobin/harper/pkg/command"
	"github.com/harrisonrobin/harper/pkg/herrors"
	"github.com/harrisonrobin/harper/pkg/task"
)

const (
	byMarker   = "/by"
	fromMarker = "/from"
	toMarker   = "/to"
)

// Parse converts a trimmed input line into a command. Keywords are case-sensitive
// and prefix keywords must be followed by a space.
func Parse(line string) (command.Command, error) {
	switch {
	case line == "bye":
		return command.Exit{}, nil
	case line == "list":
		return command.List{}, nil
	case strings.HasPrefix(line, "todo "):
		return parseToDo(line)
	case strings.HasPrefix(line, "deadline "):
		return parseDeadline(line)
	case strings.HasPrefix(line, "event "):
		return parseEvent(line)
	case strings.HasPrefix(line, "delete "):
		return parseDelete(line)
	case strings.HasPrefix(line, "mark "), strings.HasPrefix(line, "unmark "):
		return parseMark(line)
	case strings.HasPrefix(line, "find "):
		return parseFind(line)
	case strings.HasPrefix(line, "update "):
		return parseUpdate(line)
	}
	return nil, herrors.ErrInvalidCommand
}

func parseToDo(line string) (command.Command, error) {
	description := strings.TrimSpace(strings.TrimPrefix(line, "todo"))
	return command.Add{Task: task.NewToDo(description, false)}, nil
}

func parseDeadline(line string) (command.Command, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "deadline"))
	description, by, found := strings.Cut(rest, byMarker)
	if !found {
		return nil, herrors.ErrInvalidDeadline
	}
	description, by = strings.TrimSpace(description), strings.TrimSpace(by)
	if description == "" || by == "" {
		return nil, herrors.ErrInvalidDeadline
	}

	when, err := task.ParseDateTime(by)
	if err != nil {
		return nil, err
	}
	return command.Add{Task: task.NewDeadline(description, false, when)}, nil
}

func parseEvent(line string) (command.Command, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "event"))
	description, span, found := strings.Cut(rest, fromMarker)
	if !found {
		return nil, herrors.ErrInvalidEvent
	}
	from, to, found := strings.Cut(strings.TrimSpace(span), toMarker)
	description = strings.TrimSpace(description)
	if !found || description == "" {
		return nil, herrors.ErrInvalidEvent
	}
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return nil, herrors.ErrInvalidEvent
	}

	start, err := task.ParseDateTime(from)
	if err != nil {
		return nil, err
	}
	end, err := task.ParseDateTime(to)
	if err != nil {
		return nil, err
	}
	if err := task.ValidateSpan(start, end); err != nil {
		return nil, err
	}
	return command.Add{Task: task.NewEvent(description, false, start, end)}, nil
}

func parseDelete(line string) (command.Command, error) {
	_, arg, _ := strings.Cut(line, " ")
	index, err := parseIndex(arg)
	if err != nil {
		return nil, err
	}
	return command.Delete{Index: index}, nil
}

func parseMark(line string) (command.Command, error) {
	keyword, arg, _ := strings.Cut(line, " ")
	index, err := parseIndex(arg)
	if err != nil {
		return nil, err
	}
	return command.Mark{Index: index, Done: keyword == "mark"}, nil
}

func parseFind(line string) (command.Command, error) {
	_, keyword, _ := strings.Cut(line, " ")
	return command.Find{Keyword: strings.TrimSpace(keyword)}, nil
}

func parseUpdate(line string) (command.Command, error) {
	rest := strings.TrimPrefix(line, "update ")
	arg, fieldText, _ := strings.Cut(rest, " ")
	index, err := parseIndex(arg)
	if err != nil {
		return nil, err
	}
	fieldText = strings.TrimSpace(fieldText)
	if fieldText == "" {
		return nil, herrors.ErrInvalidUpdate
	}
	return command.Update{Index: index, FieldText: fieldText}, nil
}

// parseIndex converts a 1-based index token to a 0-based index.
// Range checks are left to the task list.
func parseIndex(token string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, herrors.ErrInvalidIndex
	}
	return n - 1, nil
}
