package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/scheduler"
	"github.com/sandeepkv93/trackd/internal/storage"
	"github.com/sandeepkv93/trackd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "trackd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the sqlite database")
	flag.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "directory export files are written to")
	flag.IntVar(&cfg.FollowUpDays, "follow-up-days", cfg.FollowUpDays, "days after applying before a follow-up reminder fires (0 disables)")
	flag.BoolVar(&cfg.DesktopNotifications, "desktop-notifications", cfg.DesktopNotifications, "send desktop notifications for reminders and bulk results")
	flag.Parse()

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()

	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	timer := scheduler.NewEngine(cfg.SchedulerBuffer)
	timer.Start()
	defer timer.Stop()

	ctx := context.Background()
	m := update.NewModelWithConfig(timer, repo, update.ExecDesktopNotifier{}, cfg)
	m = m.LoadSettings(ctx)

	if err := seedFollowUps(ctx, repo, timer, m.Settings.FollowUpDays); err != nil {
		return fmt.Errorf("seed follow-ups: %w", err)
	}

	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// seedFollowUps plans a reminder for every open application whose
// follow-up point is still ahead, persists rows for the new ones, and
// arms the timer engine. Acknowledged rows stay quiet across restarts.
func seedFollowUps(ctx context.Context, repo storage.Repository, timer *scheduler.Engine, afterDays int) error {
	records, err := repo.ListApplications(ctx, storage.ApplicationListFilter{})
	if err != nil {
		return err
	}
	apps := make([]model.Application, 0, len(records))
	for _, rec := range records {
		apps = append(apps, rec.ToModel())
	}

	existing, err := repo.ListReminders(ctx, storage.ReminderListFilter{})
	if err != nil {
		return err
	}
	known := make(map[string]storage.Reminder, len(existing))
	for _, rem := range existing {
		known[rem.ID] = rem
	}

	now := time.Now().UTC()
	for _, ev := range scheduler.PlanFollowUps(apps, afterDays, now) {
		if rem, ok := known[ev.ID]; ok {
			if rem.Acknowledged {
				continue
			}
		} else {
			rem := storage.Reminder{
				ID:            ev.ID,
				ApplicationID: ev.ApplicationID,
				Kind:          ev.Kind,
				TriggerAt:     ev.TriggerAt,
				CreatedAt:     now,
			}
			if err := repo.CreateReminder(ctx, rem); err != nil {
				return err
			}
		}
		if err := timer.Schedule(ev); err != nil {
			return err
		}
	}
	return nil
}
