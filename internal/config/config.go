package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/workday"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	OAuth2Google OAuth2GoogleConfig
	SMTP         SMTPConfig
	Workday      WorkdayConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// WorkdayConfig carries the office-day boundaries as raw env values;
// WorkdayRules parses them into a workday.Config.
type WorkdayConfig struct {
	UTCOffset      string // e.g. "+05:30"
	ShiftStart     string // "HH:MM"
	LateThreshold  string
	ShiftEnd       string
	BreakStart     string
	BreakEnd       string
	HalfDayMinimum string // Go duration, e.g. "4h"
	StandardShift  string
	DailyCap       string
}

func Load() (*Config, error) {
	// A missing .env file is fine when the environment is injected directly,
	// e.g. in containers.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workpulse"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	jwtRefreshExpiration := getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h")
	jwtAccessExpiration := getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h")

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: jwtRefreshExpiration,
		AccessExpiration:  jwtAccessExpiration,
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// SMTP configuration (optional; email sending is skipped when Host is unset)
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@workpulse.io"),
		FromName: getEnv("SMTP_FROM_NAME", "WorkPulse"),
	}

	// Workday configuration
	config.Workday = WorkdayConfig{
		UTCOffset:      getEnv("OFFICE_UTC_OFFSET", "+05:30"),
		ShiftStart:     getEnv("SHIFT_START", "09:00"),
		LateThreshold:  getEnv("LATE_THRESHOLD", "09:30"),
		ShiftEnd:       getEnv("SHIFT_END", "18:00"),
		BreakStart:     getEnv("BREAK_START", "13:00"),
		BreakEnd:       getEnv("BREAK_END", "14:00"),
		HalfDayMinimum: getEnv("HALF_DAY_MINIMUM", "4h"),
		StandardShift:  getEnv("STANDARD_SHIFT", "8h15m"),
		DailyCap:       getEnv("DAILY_CAP", "9h"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := c.WorkdayRules(); err != nil {
		return err
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// WorkdayRules parses the workday env values into the office-day rules used
// by the attendance engine.
func (c *Config) WorkdayRules() (workday.Config, error) {
	rules := workday.Default()

	offset, err := parseUTCOffset(c.Workday.UTCOffset)
	if err != nil {
		return workday.Config{}, fmt.Errorf("invalid OFFICE_UTC_OFFSET: %w", err)
	}
	rules.Location = time.FixedZone("OFFICE", int(offset.Seconds()))

	boundaries := []struct {
		raw  string
		name string
		dst  *time.Duration
	}{
		{c.Workday.ShiftStart, "SHIFT_START", &rules.ShiftStart},
		{c.Workday.LateThreshold, "LATE_THRESHOLD", &rules.LateThreshold},
		{c.Workday.ShiftEnd, "SHIFT_END", &rules.ShiftEnd},
		{c.Workday.BreakStart, "BREAK_START", &rules.BreakStart},
		{c.Workday.BreakEnd, "BREAK_END", &rules.BreakEnd},
	}
	for _, b := range boundaries {
		d, err := parseClock(b.raw)
		if err != nil {
			return workday.Config{}, fmt.Errorf("invalid %s: %w", b.name, err)
		}
		*b.dst = d
	}

	durations := []struct {
		raw  string
		name string
		dst  *time.Duration
	}{
		{c.Workday.HalfDayMinimum, "HALF_DAY_MINIMUM", &rules.HalfDayMinimum},
		{c.Workday.StandardShift, "STANDARD_SHIFT", &rules.StandardShift},
		{c.Workday.DailyCap, "DAILY_CAP", &rules.DailyCap},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return workday.Config{}, fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*d.dst = parsed
	}

	return rules, nil
}

// parseClock parses "HH:MM" into an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// parseUTCOffset parses "+05:30" / "-03:00" style offsets.
func parseUTCOffset(s string) (time.Duration, error) {
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, fmt.Errorf("offset %q must look like +05:30", s)
	}
	d, err := parseClock(s[1:])
	if err != nil {
		return 0, fmt.Errorf("offset %q must look like +05:30", s)
	}
	if s[0] == '-' {
		d = -d
	}
	return d, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
