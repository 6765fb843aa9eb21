// Package session runs the read-parse-execute loop over an input stream.
package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/harper/pkg/command"
	"github.com/harrisonrobin/harper/pkg/parser"
	"github.com/harrisonrobin/harper/pkg/tasklist"
)

// UI is the command UI plus error rendering.
type UI interface {
	command.UI
	ShowError(err error)
}

type Session struct {
	List   *tasklist.TaskList
	UI     UI
	Store  command.Storage
	Logger *log.Logger
}

// Run executes one command per line of in until an exit command or EOF.
// Lines have no length limit. Command errors are shown to the user and the
// loop continues; only a read failure is returned.
func (s *Session) Run(in io.Reader) error {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	reader := bufio.NewReader(in)
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("failed to read input: %w", readErr)
		}
		if readErr == io.EOF && raw == "" {
			return nil
		}

		line := strings.TrimSpace(raw)
		exit, err := s.Execute(line)
		if err != nil {
			logger.Debug("command failed", "input", line, "err", err)
			s.UI.ShowError(err)
		} else {
			logger.Debug("command executed", "input", line, "tasks", s.List.Len())
			if exit {
				return nil
			}
		}
		if readErr == io.EOF {
			return nil
		}
	}
}

// Execute parses and runs a single line and reports whether it was an exit command.
func (s *Session) Execute(line string) (bool, error) {
	cmd, err := parser.Parse(line)
	if err != nil {
		return false, err
	}
	if err := cmd.Execute(s.List, s.UI, s.Store); err != nil {
		return false, err
	}
	return cmd.IsExit(), nil
}
