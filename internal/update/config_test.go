package update

import (
	"testing"

	"github.com/sandeepkv93/trackd/internal/engine"
)

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TRACKD_DB", "/tmp/apps.db")
	t.Setenv("TRACKD_EXPORT_DIR", "/tmp/exports")
	t.Setenv("TRACKD_EXPORT_FORMAT", "json")
	t.Setenv("TRACKD_PAGE_SIZE", "25")
	t.Setenv("TRACKD_FOLLOW_UP_DAYS", "10")
	t.Setenv("TRACKD_DESKTOP_NOTIFICATIONS", "yes")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DBPath != "/tmp/apps.db" || cfg.ExportDir != "/tmp/exports" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.DefaultExportFormat != engine.FormatJSON {
		t.Fatalf("unexpected format: %s", cfg.DefaultExportFormat)
	}
	if cfg.PageSize != 25 || cfg.FollowUpDays != 10 || !cfg.DesktopNotifications {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestRuntimeConfigRejectsBadValues(t *testing.T) {
	t.Setenv("TRACKD_PAGE_SIZE", "17")
	t.Setenv("TRACKD_EXPORT_FORMAT", "xml")
	t.Setenv("TRACKD_DESKTOP_NOTIFICATIONS", "maybe")

	base := DefaultRuntimeConfig()
	cfg := RuntimeConfigFromEnv(base)
	if cfg.PageSize != base.PageSize {
		t.Fatalf("page size should stay at default, got %d", cfg.PageSize)
	}
	if cfg.DefaultExportFormat != base.DefaultExportFormat {
		t.Fatalf("format should stay at default, got %s", cfg.DefaultExportFormat)
	}
	if cfg.DesktopNotifications != base.DesktopNotifications {
		t.Fatalf("notifications should stay at default")
	}
}
