package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is read from the environment, optionally seeded by a .env file.
type Config struct {
	Port        string   `env:"PORT,default=4000"`
	LogLevel    string   `env:"LOG_LEVEL,default=info"`
	LogFormat   string   `env:"LOG_FORMAT,default=text"`
	CORSOrigins []string `env:"CORS_ORIGINS,default=http://localhost:3000"`

	StoreDriver   string `env:"STORE_DRIVER,default=postgres"`
	DatabaseURL   string `env:"DB_URL"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE,default=barbershop"`
	RedisURL      string `env:"REDIS_URL"`

	JWTSecret      string `env:"JWT_SECRET"`
	JWTExpiryHours int    `env:"JWT_EXPIRY_HOURS,default=24"`
	DashboardUser  string `env:"DASHBOARD_USER"`
	DashboardPass  string `env:"DASHBOARD_PASS"`

	RateLimitMax    int           `env:"RATE_LIMIT_MAX,default=10"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW,default=15m"`

	Timezone         string `env:"TIMEZONE,default=Europe/Lisbon"`
	CleanupSchedule  string `env:"CLEANUP_SCHEDULE,default=0 0 * * *"`
	ReminderSchedule string `env:"REMINDER_SCHEDULE,default=38 18 * * *"`
	CleanupOnStart   bool   `env:"CLEANUP_ON_START,default=false"`

	BusinessName     string `env:"BUSINESS_NAME,default=TIO BARBAS!"`
	BusinessLocation string `env:"BUSINESS_LOCATION,default=Rua do Camelo n2 4780-456 Guimarães"`
	BusinessPhone    string `env:"BUSINESS_PHONE,default=+351912050222"`
	PhoneCountryCode string `env:"PHONE_COUNTRY_CODE,default=+351"`

	SMTPHost string `env:"SMTP_HOST,default=smtp.gmail.com"`
	SMTPPort string `env:"SMTP_PORT,default=587"`
	SMTPUser string `env:"GMAIL_USER"`
	SMTPPass string `env:"GMAIL_PASS"`

	TwilioAccountSID  string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `env:"TWILIO_PHONE_NUMBER"`

	location *time.Location
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required settings and resolves the timezone.
func (c *Config) Validate() error {
	var problems []string
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.DashboardUser == "" || c.DashboardPass == "" {
		problems = append(problems, "DASHBOARD_USER and DASHBOARD_PASS are required")
	}
	if c.JWTExpiryHours <= 0 {
		problems = append(problems, "JWT_EXPIRY_HOURS must be positive")
	}
	if c.RateLimitMax <= 0 || c.RateLimitWindow <= 0 {
		problems = append(problems, "RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}

	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			problems = append(problems, "DB_URL is required when STORE_DRIVER=postgres")
		}
	case "mongo":
		if c.MongoURI == "" {
			problems = append(problems, "MONGO_URI is required when STORE_DRIVER=mongo")
		}
	case "memory":
	default:
		problems = append(problems, fmt.Sprintf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid TIMEZONE %q", c.Timezone))
	}
	c.location = loc

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// Location is the business timezone resolved by Validate.
func (c *Config) Location() *time.Location {
	return c.location
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

func (c *Config) EmailEnabled() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}
