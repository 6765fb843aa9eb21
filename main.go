package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/harper/pkg/agenda"
	"github.com/harrisonrobin/harper/pkg/auth"
	"github.com/harrisonrobin/harper/pkg/config"
	"github.com/harrisonrobin/harper/pkg/google"
	"github.com/harrisonrobin/harper/pkg/index"
	"github.com/harrisonrobin/harper/pkg/session"
	"github.com/harrisonrobin/harper/pkg/storage"
	"github.com/harrisonrobin/harper/pkg/task"
	"github.com/harrisonrobin/harper/pkg/ui"
)

func main() {
	// 1. Parse Flags
	dataFile := flag.String("file", "", "Path to the task data file (overrides config)")
	calendarName := flag.String("calendar", "", "Google Calendar name to export to (overrides config)")
	setCalendar := flag.String("set-calendar", "", "Set the default Google Calendar name")
	doAuth := flag.Bool("auth", false, "Authenticate with Google Calendar")
	doSync := flag.Bool("sync", false, "Export deadlines and events to Google Calendar and exit")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.Parse()

	// 2. Load config (Priority: Flag > Env > Config file > Default)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("could not load config", "err", err)
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *calendarName != "" {
		cfg.Calendar = *calendarName
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := newLogger(cfg.LogLevel)
	log.SetDefault(logger)

	// 3. Handle Set Calendar
	if *setCalendar != "" {
		if err := config.SetCalendar(*setCalendar); err != nil {
			logger.Fatal("could not save config", "err", err)
		}
		fmt.Printf("Default calendar set to: %s\n", *setCalendar)
		return
	}

	ctx := context.Background()

	// 4. Handle Authentication
	if *doAuth {
		if err := auth.ResetToken(); err != nil {
			logger.Fatal("could not reset token", "err", err)
		}
		if _, err := auth.GetCalendarService(ctx); err != nil {
			logger.Fatal("authentication failed", "err", err)
		}
		fmt.Println("Authentication successful!")
		return
	}

	store := storage.New(cfg.DataFile)
	list, err := store.Load()
	if err != nil {
		logger.Fatal("could not load tasks", "err", err)
	}
	logger.Debug("tasks loaded", "path", cfg.DataFile, "count", list.Len())

	// 5. Handle Agenda Export
	if *doSync {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		if err := syncAgenda(ctx, cfg.Calendar, list.Tasks(), logger); err != nil {
			logger.Error("sync failed", "err", err)
			os.Exit(1)
		}
		return
	}

	// 6. Interpreter loop
	out := ui.New(os.Stdout)
	out.ShowWelcome()
	s := &session.Session{List: list, UI: out, Store: store, Logger: logger}
	if err := s.Run(os.Stdin); err != nil {
		logger.Fatal("session ended", "err", err)
	}
}

func syncAgenda(ctx context.Context, calendarName string, tasks []task.Task, logger *log.Logger) error {
	idx, err := index.NewEventIndex()
	if err != nil {
		return fmt.Errorf("could not open event index: %w", err)
	}
	client, err := google.NewClient(ctx, calendarName)
	if err != nil {
		return err
	}
	report, err := agenda.NewSyncer(client, idx, logger).Sync(tasks)
	if err != nil {
		return err
	}
	fmt.Printf("Synced to %s: %s\n", calendarName, report)
	return nil
}

func newLogger(level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "harper",
	})
}
