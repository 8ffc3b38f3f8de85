package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Farm     FarmConfig
	Auth     AuthConfig
	MongoDB  MongoDBConfig
	Sheets   SheetsConfig
	Schedule ScheduleConfig
	WhatsApp WhatsAppConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string
}

// FarmConfig describes the farms and the zone their calendar follows.
type FarmConfig struct {
	Farms    []string
	Timezone string
	SeedDemo bool
}

// AuthConfig seeds the first administrator account.
type AuthConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// MongoDBConfig holds settings for MongoDB. An empty URI keeps sessions in
// memory and disables archive persistence.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether a MongoDB connection was configured.
func (c MongoDBConfig) Enabled() bool { return c.URI != "" }

// SheetsConfig contains configuration required to export archives to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the archive export is configured.
func (c SheetsConfig) Enabled() bool { return c.CredentialsPath != "" && c.SpreadsheetID != "" }

// ScheduleConfig holds cron expressions for background jobs.
type ScheduleConfig struct {
	ArchiveCron string
	DigestCron  string
}

// WhatsAppConfig contains credentials for the Meta WhatsApp Cloud API used to
// deliver the weekly digest.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	ManagerID     string
}

// Enabled reports whether digest delivery is configured.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != "" && c.ManagerID != ""
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
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Farm: FarmConfig{
			Farms:    splitList(getenvWithDefault("FARMS", "Altamira,LlanoGrande")),
			Timezone: getenvWithDefault("TIMEZONE", "America/Bogota"),
			SeedDemo: getenvBool("SEED_DEMO_DATA", false),
		},
		Auth: AuthConfig{
			AdminName:     getenvWithDefault("ADMIN_NAME", "Administrator"),
			AdminEmail:    getenvWithDefault("ADMIN_EMAIL", "admin@fincapiza.com"),
			AdminPassword: getenvWithDefault("ADMIN_PASSWORD", "admin123"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "farmledger"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Schedule: ScheduleConfig{
			ArchiveCron: getenvWithDefault("ARCHIVE_CRON_SCHEDULE", "5 0 * * *"),
			DigestCron:  getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 7 * * 1"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			ManagerID:     os.Getenv("WHATSAPP_MANAGER_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and consistent.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil {
		return fmt.Errorf("invalid APP_PORT %q: must be a number", c.Server.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid APP_PORT %d: must be between 1 and 65535", port)
	}

	if len(c.Farm.Farms) == 0 {
		return errors.New("FARMS must list at least one farm")
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	switch {
	case c.Auth.AdminEmail == "":
		return errors.New("ADMIN_EMAIL must be provided")
	case c.Auth.AdminPassword == "":
		return errors.New("ADMIN_PASSWORD must be provided")
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if _, err := cron.ParseStandard(c.Schedule.ArchiveCron); err != nil {
		return fmt.Errorf("invalid ARCHIVE_CRON_SCHEDULE %q: %w", c.Schedule.ArchiveCron, err)
	}
	if _, err := cron.ParseStandard(c.Schedule.DigestCron); err != nil {
		return fmt.Errorf("invalid DIGEST_CRON_SCHEDULE %q: %w", c.Schedule.DigestCron, err)
	}

	w := c.WhatsApp
	set := 0
	for _, v := range []string{w.AccessToken, w.PhoneNumberID, w.ManagerID} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return errors.New("WHATSAPP_TOKEN, WHATSAPP_PHONE_NUMBER_ID and WHATSAPP_MANAGER_ID must be provided together")
	}
	if w.Enabled() && (w.BaseURL == "" || w.APIVersion == "") {
		return errors.New("WHATSAPP_BASE_URL and WHATSAPP_API_VERSION must not be empty")
	}

	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Farm.Timezone == "" {
		return nil, errors.New("TIMEZONE must be provided")
	}
	loc, err := time.LoadLocation(c.Farm.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Farm.Timezone, err)
	}
	return loc, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
