// Package herrors holds the errors returned while parsing and executing commands.
// The message of each error is what the user sees.
package herrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCommand  = errors.New("I'm sorry, but I don't know what that means :-(")
	ErrInvalidIndex    = errors.New("The task index is invalid! Please enter a number between 1 and the number of tasks.")
	ErrInvalidDeadline = errors.New("The deadline is invalid! Use: deadline <description> /by <d/M/yyyy H:mm>")
	ErrInvalidEvent    = errors.New("The event is invalid! Use: event <description> /from <d/M/yyyy H:mm> /to <d/M/yyyy H:mm>, with the end not before the start")
	ErrInvalidDateTime = errors.New("The date/time is invalid! Please use the format d/M/yyyy H:mm, e.g. 2/12/2024 18:00")
	ErrInvalidUpdate   = errors.New("The update is invalid! Use: update <index> <description|by|from|to> <new value>")
	ErrFileLoading     = errors.New("Error occurs during loading!")
)

// FileFormat describes the grammar of the data file.
const FileFormat = `Please make sure the content of the data file follows the expected format:
ToDo:     "T | [0 or 1] | [description]"
Deadline: "D | [0 or 1] | [description] | [by]"
Event:    "E | [0 or 1] | [description] | [start] - [end]"`

// FileLoadingError reports a data file line that does not follow FileFormat.
type FileLoadingError struct {
	Path string
	Line int
	Err  error
}

func (e *FileLoadingError) Error() string {
	msg := fmt.Sprintf("%s\n%s:%d", ErrFileLoading, e.Path, e.Line)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + "\n" + FileFormat
}

func (e *FileLoadingError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFileLoading}
	}
	return []error{ErrFileLoading, e.Err}
}
