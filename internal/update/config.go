package update

import (
	"os"
	"strconv"
	"strings"

	"github.com/sandeepkv93/trackd/internal/engine"
)

type RuntimeConfig struct {
	DBPath               string
	ExportDir            string
	DefaultExportFormat  engine.ExportFormat
	PageSize             int
	FollowUpDays         int
	DesktopNotifications bool
	SchedulerBuffer      int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:               "trackd.db",
		ExportDir:            ".",
		DefaultExportFormat:  engine.FormatCSV,
		PageSize:             engine.DefaultPageSize,
		FollowUpDays:         7,
		DesktopNotifications: false,
		SchedulerBuffer:      64,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TRACKD_DB")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("TRACKD_EXPORT_DIR")); v != "" {
		cfg.ExportDir = v
	}
	if v := strings.TrimSpace(strings.ToLower(os.Getenv("TRACKD_EXPORT_FORMAT"))); v != "" {
		format := engine.ExportFormat(v)
		if format == engine.FormatCSV || format == engine.FormatJSON {
			cfg.DefaultExportFormat = format
		}
	}
	if v, ok := getEnvInt("TRACKD_PAGE_SIZE"); ok && validPageSize(v) {
		cfg.PageSize = v
	}
	if v, ok := getEnvInt("TRACKD_FOLLOW_UP_DAYS"); ok && v >= 0 {
		cfg.FollowUpDays = v
	}
	if v, ok := getEnvBool("TRACKD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TRACKD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func validPageSize(n int) bool {
	for _, size := range engine.PageSizes {
		if n == size {
			return true
		}
	}
	return false
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
