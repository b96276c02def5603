package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	DBURL    string
	SeedData bool
	LogLevel string
	Location *time.Location

	JWTSecret string
	JWTExpiry time.Duration

	CORSOrigins []string
	SlowRequest time.Duration

	Report ReportConfig
	Twilio TwilioConfig
}

type ReportConfig struct {
	Cron string
	Dir  string
	Days int
}

type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
	To          string
}

// Enabled reports whether enough credentials are present to send SMS.
func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.PhoneNumber != "" && t.To != ""
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_URL", "")
	v.SetDefault("SEED_DATA", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SLOW_REQUEST_MS", 200)
	v.SetDefault("REPORT_CRON", "0 21 * * *")
	v.SetDefault("REPORT_DIR", "")
	v.SetDefault("REPORT_DAYS", 7)
	v.SetDefault("TWILIO_ACCOUNT_SID", "")
	v.SetDefault("TWILIO_AUTH_TOKEN", "")
	v.SetDefault("TWILIO_PHONE_NUMBER", "")
	v.SetDefault("REPORT_SMS_TO", "")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	days := v.GetInt("REPORT_DAYS")
	if days < 1 || days > 366 {
		return nil, fmt.Errorf("REPORT_DAYS must be between 1 and 366, got %d", days)
	}

	cfg := &Config{
		Port:        v.GetString("PORT"),
		DBURL:       v.GetString("DB_URL"),
		SeedData:    v.GetBool("SEED_DATA"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Location:    loc,
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTExpiry:   time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		SlowRequest: time.Duration(v.GetInt("SLOW_REQUEST_MS")) * time.Millisecond,
		Report: ReportConfig{
			Cron: strings.TrimSpace(v.GetString("REPORT_CRON")),
			Dir:  v.GetString("REPORT_DIR"),
			Days: days,
		},
		Twilio: TwilioConfig{
			AccountSID:  v.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:   v.GetString("TWILIO_AUTH_TOKEN"),
			PhoneNumber: v.GetString("TWILIO_PHONE_NUMBER"),
			To:          v.GetString("REPORT_SMS_TO"),
		},
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	// An empty variable falls back to the default schedule, so "off" is
	// the way to disable it.
	if strings.EqualFold(cfg.Report.Cron, "off") {
		cfg.Report.Cron = ""
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
