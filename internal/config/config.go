package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Sheets  SheetsConfig
	Alert   AlertConfig
	Monitor MonitorConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration for the spreadsheet import source.
// Import is disabled when CredentialsPath or SpreadsheetID is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ReadRange       string
}

// AlertConfig contains settings for the health alert webhook. Alerting is
// disabled when WebhookURL is empty.
type AlertConfig struct {
	WebhookURL string
	AuthToken  string
}

// MonitorConfig holds settings for the scheduled herd health scan. The scan
// is disabled when TenantID is empty.
type MonitorConfig struct {
	CronSchedule string
	Timezone     string
	TenantID     string
	LookbackDays int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	lookbackDays, err := strconv.Atoi(getenvWithDefault("MONITOR_LOOKBACK_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("MONITOR_LOOKBACK_DAYS must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "herdtrack"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_WEIGHTS_ID"),
			ReadRange:       getenvWithDefault("GOOGLE_SHEET_WEIGHTS_RANGE", "Weights!A2:E"),
		},
		Alert: AlertConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
			AuthToken:  os.Getenv("ALERT_WEBHOOK_TOKEN"),
		},
		Monitor: MonitorConfig{
			CronSchedule: getenvWithDefault("MONITOR_CRON_SCHEDULE", "0 6 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
			TenantID:     os.Getenv("MONITOR_TENANT_ID"),
			LookbackDays: lookbackDays,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	// Sheet import is optional, but a partial configuration is a mistake.
	if c.SheetImportEnabled() && c.Sheets.ReadRange == "" {
		return errors.New("GOOGLE_SHEET_WEIGHTS_RANGE must not be empty")
	}
	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_WEIGHTS_ID is set")
	}

	if c.Monitor.CronSchedule == "" {
		return errors.New("MONITOR_CRON_SCHEDULE must be provided")
	}
	if c.Monitor.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if c.Monitor.LookbackDays <= 0 {
		return errors.New("MONITOR_LOOKBACK_DAYS must be positive")
	}

	return nil
}

// SheetImportEnabled reports whether the spreadsheet import source is fully
// configured.
func (c *Config) SheetImportEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

// AlertingEnabled reports whether the health alert webhook is configured.
func (c *Config) AlertingEnabled() bool {
	return c.Alert.WebhookURL != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
