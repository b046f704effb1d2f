// Package config loads settings from ~/.config/beads-tui/config.toml with
// BTUI_* environment overrides. Env wins over file, file wins over defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	BdBin  string // BTUI_BD_BIN (default "bd")
	DbPath string // BTUI_DB_PATH (optional, bd picks its own default)

	DefaultDuration float64 // BTUI_DEFAULT_DURATION, effort units for unestimated issues (default 1)
	HoursPerDay     float64 // BTUI_HOURS_PER_DAY, effort units mapped onto one day (default 8)
	Calendar        string  // BTUI_CALENDAR, "calendar" or "business" (default "calendar")
	ProjectStart    time.Time

	NATSURL      string        // BTUI_NATS_URL (optional, empty = polling watch)
	PollInterval time.Duration // BTUI_POLL_INTERVAL (default 5s)

	// Report settings
	ReportS3Bucket   string // BTUI_REPORT_S3_BUCKET (enables S3 when set)
	ReportS3Endpoint string // BTUI_REPORT_S3_ENDPOINT (custom endpoint for MinIO)
	ReportS3Region   string // BTUI_REPORT_S3_REGION (default "us-east-1")
	ReportS3Key      string // BTUI_REPORT_S3_KEY (default "beads-tui/schedule.jsonl")
}

// fileConfig mirrors Config with TOML-friendly field types.
type fileConfig struct {
	BdBin           string  `toml:"bd_bin"`
	DbPath          string  `toml:"db_path"`
	DefaultDuration float64 `toml:"default_duration"`
	HoursPerDay     float64 `toml:"hours_per_day"`
	Calendar        string  `toml:"calendar"`
	ProjectStart    string  `toml:"project_start"`
	NATSURL         string  `toml:"nats_url"`
	PollInterval    string  `toml:"poll_interval"`

	Report struct {
		S3Bucket   string `toml:"s3_bucket"`
		S3Endpoint string `toml:"s3_endpoint"`
		S3Region   string `toml:"s3_region"`
		S3Key      string `toml:"s3_key"`
	} `toml:"report"`
}

// Path returns the config file location: BTUI_CONFIG if set, otherwise
// ~/.config/beads-tui/config.toml.
func Path() (string, error) {
	if p := os.Getenv("BTUI_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "beads-tui", "config.toml"), nil
}

// Load reads the config file (if present) and applies environment overrides.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	c := &Config{
		BdBin:            firstNonEmpty(os.Getenv("BTUI_BD_BIN"), fc.BdBin, "bd"),
		DbPath:           firstNonEmpty(os.Getenv("BTUI_DB_PATH"), fc.DbPath),
		Calendar:         firstNonEmpty(os.Getenv("BTUI_CALENDAR"), fc.Calendar, "calendar"),
		NATSURL:          firstNonEmpty(os.Getenv("BTUI_NATS_URL"), fc.NATSURL),
		ReportS3Bucket:   firstNonEmpty(os.Getenv("BTUI_REPORT_S3_BUCKET"), fc.Report.S3Bucket),
		ReportS3Endpoint: firstNonEmpty(os.Getenv("BTUI_REPORT_S3_ENDPOINT"), fc.Report.S3Endpoint),
		ReportS3Region:   firstNonEmpty(os.Getenv("BTUI_REPORT_S3_REGION"), fc.Report.S3Region, "us-east-1"),
		ReportS3Key:      firstNonEmpty(os.Getenv("BTUI_REPORT_S3_KEY"), fc.Report.S3Key, "beads-tui/schedule.jsonl"),
	}

	var err error
	c.DefaultDuration, err = floatSetting("BTUI_DEFAULT_DURATION", fc.DefaultDuration, 1)
	if err != nil {
		return nil, err
	}
	c.HoursPerDay, err = floatSetting("BTUI_HOURS_PER_DAY", fc.HoursPerDay, 8)
	if err != nil {
		return nil, err
	}
	if c.Calendar != "calendar" && c.Calendar != "business" {
		return nil, fmt.Errorf("BTUI_CALENDAR: %q is not \"calendar\" or \"business\"", c.Calendar)
	}

	startStr := firstNonEmpty(os.Getenv("BTUI_PROJECT_START"), fc.ProjectStart)
	if startStr != "" {
		t, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return nil, fmt.Errorf("BTUI_PROJECT_START: %w", err)
		}
		c.ProjectStart = t
	}

	pollStr := firstNonEmpty(os.Getenv("BTUI_POLL_INTERVAL"), fc.PollInterval, "5s")
	c.PollInterval, err = time.ParseDuration(pollStr)
	if err != nil {
		return nil, fmt.Errorf("BTUI_POLL_INTERVAL: %w", err)
	}

	return c, nil
}

func floatSetting(envKey string, fileVal, fallback float64) (float64, error) {
	if s := os.Getenv(envKey); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", envKey, err)
		}
		return v, nil
	}
	if fileVal > 0 {
		return fileVal, nil
	}
	return fallback, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
