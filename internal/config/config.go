// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type FirestoreConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RazorpayConfig struct {
	KeyID         string `yaml:"key_id"`
	KeySecret     string `yaml:"key_secret"`
	WebhookSecret string `yaml:"webhook_secret"`
	Currency      string `yaml:"currency"`
}

type PaymentConfig struct {
	Razorpay RazorpayConfig `yaml:"razorpay"`
}

// PlanConfig is one entry of the static membership plan catalog.
type PlanConfig struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Price      int64  `yaml:"price"` // major currency units
	Duration   string `yaml:"duration"`
	ExpiryDays int    `yaml:"expiry_days"`
}

type AdminConfig struct {
	Whitelist      []string      `yaml:"whitelist"` // admin email addresses
	SessionSecret  string        `yaml:"session_secret"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	OTPTTL         time.Duration `yaml:"otp_ttl"`
	OTPMaxAttempts int           `yaml:"otp_max_attempts"`
}

type MailConfig struct {
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`
	From   string `yaml:"from"`
}

type RateLimitTier struct {
	Limit  int           `yaml:"limit"`
	Window time.Duration `yaml:"window"`
}

type RateLimitConfig struct {
	General RateLimitTier `yaml:"general"`
	Strict  RateLimitTier `yaml:"strict"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Firestore FirestoreConfig `yaml:"firestore"`
	Redis     RedisConfig     `yaml:"redis"`
	Payment   PaymentConfig   `yaml:"payment"`
	Plans     []PlanConfig    `yaml:"plans"`
	Admin     AdminConfig     `yaml:"admin"`
	Mail      MailConfig      `yaml:"mail"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML config at path and applies defaults, env-var
// secret overrides and minimal validation.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Secrets may come from the environment instead of the file.
	overrideFromEnv(&cfg.Payment.Razorpay.KeyID, "RAZORPAY_KEY_ID")
	overrideFromEnv(&cfg.Payment.Razorpay.KeySecret, "RAZORPAY_KEY_SECRET")
	overrideFromEnv(&cfg.Payment.Razorpay.WebhookSecret, "RAZORPAY_WEBHOOK_SECRET")
	overrideFromEnv(&cfg.Admin.SessionSecret, "ADMIN_SESSION_SECRET")
	overrideFromEnv(&cfg.Mail.APIKey, "MAIL_API_KEY")
	overrideFromEnv(&cfg.Redis.Password, "REDIS_PASSWORD")

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 15 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Payment.Razorpay.Currency == "" {
		cfg.Payment.Razorpay.Currency = "INR"
	}
	if len(cfg.Plans) == 0 {
		cfg.Plans = DefaultPlans()
	}
	if cfg.Admin.SessionTTL <= 0 {
		cfg.Admin.SessionTTL = 30 * time.Minute
	}
	if cfg.Admin.OTPTTL <= 0 {
		cfg.Admin.OTPTTL = 5 * time.Minute
	}
	if cfg.Admin.OTPMaxAttempts <= 0 {
		cfg.Admin.OTPMaxAttempts = 5
	}
	if cfg.RateLimit.General.Limit <= 0 {
		cfg.RateLimit.General.Limit = 100
	}
	if cfg.RateLimit.General.Window <= 0 {
		cfg.RateLimit.General.Window = 15 * time.Minute
	}
	if cfg.RateLimit.Strict.Limit <= 0 {
		cfg.RateLimit.Strict.Limit = 5
	}
	if cfg.RateLimit.Strict.Window <= 0 {
		cfg.RateLimit.Strict.Window = 15 * time.Minute
	}

	// Minimal validation
	if cfg.Payment.Razorpay.KeyID == "" || cfg.Payment.Razorpay.KeySecret == "" {
		return nil, errors.New("payment.razorpay.key_id and key_secret are required")
	}
	if cfg.Payment.Razorpay.WebhookSecret == "" {
		return nil, errors.New("payment.razorpay.webhook_secret is required")
	}
	if cfg.Firestore.ProjectID == "" {
		return nil, errors.New("firestore.project_id is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if len(cfg.Admin.Whitelist) == 0 {
		return nil, errors.New("admin.whitelist must list at least one address")
	}
	for i, p := range cfg.Plans {
		if p.ID == "" || p.Price <= 0 || p.ExpiryDays <= 0 {
			return nil, fmt.Errorf("plans[%d]: id, price and expiry_days are required", i)
		}
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// DefaultPlans is the membership catalog shipped with the service. A config
// file may replace it wholesale but individual entries are never merged.
func DefaultPlans() []PlanConfig {
	return []PlanConfig{
		{ID: "1year", Name: "Annual Membership", Price: 358, Duration: "1 Year", ExpiryDays: 365},
		{ID: "2year", Name: "Two Year Membership", Price: 649, Duration: "2 Years", ExpiryDays: 730},
		{ID: "3year", Name: "Three Year Membership", Price: 899, Duration: "3 Years", ExpiryDays: 1095},
	}
}

func overrideFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
